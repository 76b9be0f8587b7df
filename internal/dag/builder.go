package dag

import "fmt"

// Ref is a builder handle to a node position.
type Ref int

// Builder assembles a Graph in dependency order. Methods append nodes and
// return references usable as children of later nodes; Finish validates
// the result.
//
// Example:
//
//	b := dag.NewBuilder(2)
//	x, y := b.Var(0), b.Var(1)
//	g, err := b.Finish(b.Add(b.Mul(x, x), y))
type Builder struct {
	g Graph
}

// NewBuilder creates a builder for a graph over nvars decision variables.
func NewBuilder(nvars int) *Builder {
	return &Builder{g: Graph{NumVars: nvars}}
}

func (b *Builder) push(n Node) Ref {
	b.g.Nodes = append(b.g.Nodes, n)
	return Ref(len(b.g.Nodes) - 1)
}

// Var references decision variable i.
func (b *Builder) Var(i int) Ref {
	return b.push(Node{Kind: KindVariable, Index: i})
}

// Const appends a literal constant.
func (b *Builder) Const(c float64) Ref {
	b.g.Constants = append(b.g.Constants, c)
	return b.push(Node{Kind: KindConstant, Index: len(b.g.Constants) - 1})
}

// Param appends a parameter with the given default value.
func (b *Builder) Param(v float64) Ref {
	b.g.Parameters = append(b.g.Parameters, v)
	return b.push(Node{Kind: KindParameter, Index: len(b.g.Parameters) - 1})
}

// Subexpr references externally evaluated subexpression i.
func (b *Builder) Subexpr(i int) Ref {
	if i >= b.g.NumSubs {
		b.g.NumSubs = i + 1
	}
	return b.push(Node{Kind: KindSubexpr, Index: i})
}

func refs(rs []Ref) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = int(r)
	}
	return out
}

// Add appends an n-ary sum node.
func (b *Builder) Add(xs ...Ref) Ref {
	return b.push(Node{Kind: KindCall, Op: OpSum, Children: refs(xs)})
}

// Sub appends x - y.
func (b *Builder) Sub(x, y Ref) Ref {
	return b.push(Node{Kind: KindCall, Op: OpSub, Children: []int{int(x), int(y)}})
}

// Mul appends an n-ary product node.
func (b *Builder) Mul(xs ...Ref) Ref {
	return b.push(Node{Kind: KindCall, Op: OpMul, Children: refs(xs)})
}

// Div appends x / y.
func (b *Builder) Div(x, y Ref) Ref {
	return b.push(Node{Kind: KindCall, Op: OpDiv, Children: []int{int(x), int(y)}})
}

// Pow appends x ^ y.
func (b *Builder) Pow(x, y Ref) Ref {
	return b.push(Node{Kind: KindCall, Op: OpPow, Children: []int{int(x), int(y)}})
}

// Unary appends a unary call.
func (b *Builder) Unary(op Op, x Ref) Ref {
	return b.push(Node{Kind: KindCallUnary, Op: op, Children: []int{int(x)}})
}

// Call appends an n-ary call with an explicit operator id, typically a
// user-registered one.
func (b *Builder) Call(op Op, xs ...Ref) Ref {
	return b.push(Node{Kind: KindCall, Op: op, Children: refs(xs)})
}

// Finish validates the graph with root as its final node. The root must
// be the last appended node; anything after it would be dead.
func (b *Builder) Finish(root Ref) (*Graph, error) {
	if int(root) != len(b.g.Nodes)-1 {
		return nil, fmt.Errorf("dag: root %d is not the final node (%d nodes)", root, len(b.g.Nodes))
	}
	g := b.g
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}
