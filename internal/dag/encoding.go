package dag

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlNode is the on-disk form of a node. A node is either a leaf
// (kind + index or value) or a call (op + children); the kind of a call
// node is inferred from its arity.
type yamlNode struct {
	Kind     string   `yaml:"kind,omitempty"`
	Op       string   `yaml:"op,omitempty"`
	Value    *float64 `yaml:"value,omitempty"`
	Index    *int     `yaml:"index,omitempty"`
	Children []int    `yaml:"children,omitempty"`
}

// yamlGraph is the on-disk form of a Graph. The node list is in
// dependency order and the last node is the root.
type yamlGraph struct {
	Variables  int        `yaml:"variables"`
	Parameters []float64  `yaml:"parameters,omitempty"`
	Nodes      []yamlNode `yaml:"nodes"`
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	m["add"] = OpSum
	return m
}()

// FromYAML decodes and validates a graph description.
func FromYAML(data []byte) (*Graph, error) {
	var yg yamlGraph
	if err := yaml.Unmarshal(data, &yg); err != nil {
		return nil, fmt.Errorf("dag: decode graph: %w", err)
	}
	g := &Graph{NumVars: yg.Variables, Parameters: yg.Parameters}
	for k, yn := range yg.Nodes {
		n, err := g.decodeNode(k, yn)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, n)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) decodeNode(k int, yn yamlNode) (Node, error) {
	if yn.Op != "" {
		op, ok := opByName[yn.Op]
		if !ok {
			return Node{}, fmt.Errorf("dag: node %d: unknown operator %q", k, yn.Op)
		}
		kind := KindCall
		if unaryOps[op] {
			kind = KindCallUnary
		}
		return Node{Kind: kind, Op: op, Children: yn.Children}, nil
	}
	switch yn.Kind {
	case "variable", "var":
		if yn.Index == nil {
			return Node{}, fmt.Errorf("dag: node %d: variable needs an index", k)
		}
		return Node{Kind: KindVariable, Index: *yn.Index}, nil
	case "parameter", "param":
		if yn.Index == nil {
			return Node{}, fmt.Errorf("dag: node %d: parameter needs an index", k)
		}
		return Node{Kind: KindParameter, Index: *yn.Index}, nil
	case "subexpression", "subexpr":
		if yn.Index == nil {
			return Node{}, fmt.Errorf("dag: node %d: subexpression needs an index", k)
		}
		if *yn.Index >= g.NumSubs {
			g.NumSubs = *yn.Index + 1
		}
		return Node{Kind: KindSubexpr, Index: *yn.Index}, nil
	case "constant", "const", "":
		if yn.Value == nil {
			return Node{}, fmt.Errorf("dag: node %d: constant needs a value", k)
		}
		g.Constants = append(g.Constants, *yn.Value)
		return Node{Kind: KindConstant, Index: len(g.Constants) - 1}, nil
	}
	return Node{}, fmt.Errorf("dag: node %d: unknown kind %q", k, yn.Kind)
}
