// Package dag describes expression graphs consumed by the relaxation
// engine.
//
// A Graph is an ordered sequence of nodes in dependency order: every
// child occupies a strictly earlier position than its parent, so a single
// forward walk visits children before parents. The engine treats a
// validated Graph as immutable shared-read-only input.
package dag

import "fmt"

// Kind classifies a node.
type Kind int

const (
	KindConstant Kind = iota // literal from Graph.Constants
	KindParameter            // adjustable scalar from Graph.Parameters
	KindVariable             // decision variable
	KindSubexpr              // externally evaluated subexpression result
	KindCall                 // n-ary operator application
	KindCallUnary            // unary operator application
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindParameter:
		return "parameter"
	case KindVariable:
		return "variable"
	case KindSubexpr:
		return "subexpression"
	case KindCall:
		return "call"
	case KindCallUnary:
		return "unary call"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Op identifies an operator. Built-in operators are the named constants;
// user-registered operators start at UserOpBase.
type Op int

const (
	OpSum Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNeg
	OpExp
	OpLog
	OpSqrt
	OpAbs
	OpCosh
	OpTanh
	OpAtan
	OpSinh
	OpAsin
	OpAcos
	OpTan
	OpSin
	OpCos

	// UserOpBase is the first operator id available to user-registered
	// functions.
	UserOpBase Op = 1000
)

var opNames = map[Op]string{
	OpSum: "sum", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpPow: "pow",
	OpNeg: "neg", OpExp: "exp", OpLog: "log", OpSqrt: "sqrt", OpAbs: "abs",
	OpCosh: "cosh", OpTanh: "tanh", OpAtan: "atan", OpSinh: "sinh",
	OpAsin: "asin", OpAcos: "acos", OpTan: "tan", OpSin: "sin", OpCos: "cos",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	if o >= UserOpBase {
		return fmt.Sprintf("user(%d)", int(o-UserOpBase))
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// IsUser reports whether the operator id belongs to the user range.
func (o Op) IsUser() bool { return o >= UserOpBase }

// Node is one entry of the evaluation order.
type Node struct {
	Kind     Kind
	Op       Op    // call nodes only
	Index    int   // constant/parameter/variable/subexpression index
	Children []int // call nodes: positions of the operands, in order
}

// Graph is a validated expression DAG. The last node is the root.
type Graph struct {
	Nodes      []Node
	Constants  []float64
	Parameters []float64
	NumVars    int
	NumSubs    int
}

// Root returns the position of the root node.
func (g *Graph) Root() int {
	return len(g.Nodes) - 1
}

// unaryOps lists the built-in operators valid on a unary call node.
var unaryOps = map[Op]bool{
	OpNeg: true, OpExp: true, OpLog: true, OpSqrt: true, OpAbs: true,
	OpCosh: true, OpTanh: true, OpAtan: true, OpSinh: true, OpAsin: true,
	OpAcos: true, OpTan: true, OpSin: true, OpCos: true,
}

// Validate checks the dependency-order invariant, node kinds, operator
// ids, arities, and index bounds. The engine assumes a graph that passed
// Validate and treats violations found later as fatal.
func (g *Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("dag: empty graph")
	}
	for k, n := range g.Nodes {
		switch n.Kind {
		case KindConstant:
			if n.Index < 0 || n.Index >= len(g.Constants) {
				return fmt.Errorf("dag: node %d: constant index %d out of range", k, n.Index)
			}
		case KindParameter:
			if n.Index < 0 || n.Index >= len(g.Parameters) {
				return fmt.Errorf("dag: node %d: parameter index %d out of range", k, n.Index)
			}
		case KindVariable:
			if n.Index < 0 || n.Index >= g.NumVars {
				return fmt.Errorf("dag: node %d: variable index %d out of range", k, n.Index)
			}
		case KindSubexpr:
			if n.Index < 0 || n.Index >= g.NumSubs {
				return fmt.Errorf("dag: node %d: subexpression index %d out of range", k, n.Index)
			}
		case KindCall, KindCallUnary:
			if err := g.validateCall(k, n); err != nil {
				return err
			}
		default:
			return fmt.Errorf("dag: node %d: unknown kind %d", k, int(n.Kind))
		}
	}
	return nil
}

func (g *Graph) validateCall(k int, n Node) error {
	for _, c := range n.Children {
		if c < 0 || c >= k {
			return fmt.Errorf("dag: node %d: child %d breaks dependency order", k, c)
		}
	}
	if n.Kind == KindCallUnary {
		if len(n.Children) != 1 {
			return fmt.Errorf("dag: node %d: unary %s with %d children", k, n.Op, len(n.Children))
		}
		if !unaryOps[n.Op] && !n.Op.IsUser() {
			return fmt.Errorf("dag: node %d: unknown unary operator %s", k, n.Op)
		}
		return nil
	}
	switch n.Op {
	case OpSum, OpMul:
		if len(n.Children) < 2 {
			return fmt.Errorf("dag: node %d: %s needs at least 2 children, got %d", k, n.Op, len(n.Children))
		}
	case OpSub, OpDiv, OpPow:
		if len(n.Children) != 2 {
			return fmt.Errorf("dag: node %d: %s needs exactly 2 children, got %d", k, n.Op, len(n.Children))
		}
	default:
		if !n.Op.IsUser() {
			return fmt.Errorf("dag: node %d: unknown operator %s", k, n.Op)
		}
		if len(n.Children) < 1 {
			return fmt.Errorf("dag: node %d: user call with no children", k)
		}
	}
	return nil
}
