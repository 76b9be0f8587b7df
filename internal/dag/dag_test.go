package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderProducesDependencyOrder(t *testing.T) {
	b := NewBuilder(2)
	x, y := b.Var(0), b.Var(1)
	root := b.Add(b.Mul(x, x), y)
	g, err := b.Finish(root)
	require.NoError(t, err)

	assert.Equal(t, 2, g.NumVars)
	assert.Equal(t, int(root), g.Root())
	require.NoError(t, g.Validate())

	// x*x + y: two variables, one product, one sum.
	assert.Len(t, g.Nodes, 4)
	assert.Equal(t, KindCall, g.Nodes[g.Root()].Kind)
	assert.Equal(t, OpSum, g.Nodes[g.Root()].Op)
}

func TestBuilderRejectsNonFinalRoot(t *testing.T) {
	b := NewBuilder(1)
	x := b.Var(0)
	b.Unary(OpExp, x)
	_, err := b.Finish(x)
	assert.Error(t, err)
}

func TestBuilderConstantsAndParameters(t *testing.T) {
	b := NewBuilder(1)
	c := b.Const(2.5)
	p := b.Param(10)
	g, err := b.Finish(b.Add(c, p, b.Var(0)))
	require.NoError(t, err)

	assert.Equal(t, []float64{2.5}, g.Constants)
	assert.Equal(t, []float64{10}, g.Parameters)
}

func TestBuilderSubexpr(t *testing.T) {
	b := NewBuilder(1)
	s := b.Subexpr(2)
	g, err := b.Finish(b.Add(s, b.Var(0)))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumSubs)
}

func TestValidateRejectsMalformedGraphs(t *testing.T) {
	tests := []struct {
		name string
		g    Graph
	}{
		{"empty", Graph{}},
		{"variable out of range", Graph{
			NumVars: 1,
			Nodes:   []Node{{Kind: KindVariable, Index: 3}},
		}},
		{"constant out of range", Graph{
			Nodes: []Node{{Kind: KindConstant, Index: 0}},
		}},
		{"forward reference", Graph{
			NumVars: 1,
			Nodes: []Node{
				{Kind: KindCallUnary, Op: OpExp, Children: []int{1}},
				{Kind: KindVariable, Index: 0},
			},
		}},
		{"unary arity", Graph{
			NumVars: 1,
			Nodes: []Node{
				{Kind: KindVariable, Index: 0},
				{Kind: KindCallUnary, Op: OpExp, Children: []int{0, 0}},
			},
		}},
		{"sub arity", Graph{
			NumVars: 1,
			Nodes: []Node{
				{Kind: KindVariable, Index: 0},
				{Kind: KindCall, Op: OpSub, Children: []int{0}},
			},
		}},
		{"unknown operator", Graph{
			NumVars: 1,
			Nodes: []Node{
				{Kind: KindVariable, Index: 0},
				{Kind: KindCall, Op: Op(999), Children: []int{0, 0}},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.g.Validate())
		})
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "sum", OpSum.String())
	assert.Equal(t, "cos", OpCos.String())
	assert.Equal(t, "user(3)", (UserOpBase + 3).String())
	assert.True(t, (UserOpBase + 3).IsUser())
	assert.False(t, OpMul.IsUser())
}

func TestFromYAML(t *testing.T) {
	src := []byte(`
variables: 2
parameters: [0.5]
nodes:
  - {kind: var, index: 0}
  - {kind: var, index: 1}
  - {kind: param, index: 0}
  - {op: mul, children: [0, 1]}
  - {op: exp, children: [3]}
  - {op: add, children: [2, 4]}
`)
	g, err := FromYAML(src)
	require.NoError(t, err)

	assert.Equal(t, 2, g.NumVars)
	assert.Equal(t, []float64{0.5}, g.Parameters)
	require.Len(t, g.Nodes, 6)
	assert.Equal(t, KindCallUnary, g.Nodes[4].Kind)
	assert.Equal(t, OpExp, g.Nodes[4].Op)
	assert.Equal(t, OpSum, g.Nodes[5].Op)
}

func TestFromYAMLConstants(t *testing.T) {
	src := []byte(`
variables: 1
nodes:
  - {kind: var, index: 0}
  - {value: 3.5}
  - {op: pow, children: [0, 1]}
`)
	g, err := FromYAML(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5}, g.Constants)
	assert.Equal(t, KindCall, g.Nodes[2].Kind)
}

func TestFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad yaml", "nodes: ["},
		{"unknown op", "variables: 1\nnodes:\n  - {kind: var, index: 0}\n  - {op: frobnicate, children: [0]}"},
		{"variable without index", "variables: 1\nnodes:\n  - {kind: var}"},
		{"constant without value", "variables: 1\nnodes:\n  - {kind: const}"},
		{"invalid graph", "variables: 1\nnodes:\n  - {kind: var, index: 5}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}
