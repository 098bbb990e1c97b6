package formatter

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/shape"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const sample = `
kind: vec
elems:
  - {kind: singleton, sort: Int}
  - kind: choice
    alts:
      b: {kind: unit}
      a: {kind: bool}
`

func sampleNode(t *testing.T) *shape.Node {
	t.Helper()
	n, err := shape.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	return n
}

func TestSlots(t *testing.T) {
	t.Parallel()
	slots, err := Slots(sampleNode(t), logic.NewBuilder(), nil)
	require.NoError(t, err)

	want := []Slot{
		{Index: 0, Path: "$[0]", Sort: "Int"},
		{Index: 1, Path: "$[1]#a", Sort: "Bool"},
		{Index: 2, Path: "$[1].a", Sort: "Bool"},
		{Index: 3, Path: "$[1]#b", Sort: "Bool"},
	}
	assert.Equal(t, want, slots)
}

func TestSlotsPaths(t *testing.T) {
	t.Parallel()
	n, err := shape.Decode(strings.NewReader(`
kind: pair
first:
  kind: map
  entries:
    k: {kind: option, value: {kind: bool}}
second:
  kind: array
  index: {kind: singleton, sort: Int}
  elem: {kind: product, elems: [{kind: bool}, {kind: unit}, {kind: singleton, sort: (_ BitVec 4)}]}
`))
	require.NoError(t, err)

	slots, err := Slots(n, logic.NewBuilder(), nil)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "$.first.k?", slots[0].Path)
	assert.Equal(t, "$.second[*][0]", slots[1].Path)
	assert.Equal(t, "(Array Int Bool)", slots[1].Sort)
	assert.Equal(t, "$.second[*][2]", slots[2].Path)
	assert.Equal(t, "(Array Int (_ BitVec 4))", slots[2].Sort)
}

func TestSlotsExprCountMismatch(t *testing.T) {
	t.Parallel()
	_, err := Slots(sampleNode(t), logic.NewBuilder(), []logic.Expr{logic.BoolConst{Val: true}})
	assert.Error(t, err)
}

func TestFormatLayout(t *testing.T) {
	t.Parallel()
	slots, err := Slots(sampleNode(t), logic.NewBuilder(), nil)
	require.NoError(t, err)

	expected := `layout: vec of 2
 --> test.yaml
  |
0 | $[0]    Int
1 | $[1]#a  Bool
2 | $[1].a  Bool
3 | $[1]#b  Bool
  = 4 leaves

`
	result := GenerateFormattedReport([]Report{{
		Kind:   LayoutReport,
		Source: "test.yaml",
		Shape:  Summary(sampleNode(t)),
		Slots:  slots,
	}})
	assert.Equal(t, expected, result)
}

func TestFormatInvariant(t *testing.T) {
	t.Parallel()
	exprs := []logic.Expr{
		logic.Var{Name: "x0", S: logic.Int()},
		logic.Var{Name: "x1", S: logic.Bool()},
		logic.Var{Name: "x2", S: logic.Bool()},
		logic.Var{Name: "x3", S: logic.Bool()},
	}
	slots, err := Slots(sampleNode(t), logic.NewBuilder(), exprs)
	require.NoError(t, err)

	expected := `invariant: vec of 2
 --> test.yaml
  |
0 | $[0]    Int   x0
1 | $[1]#a  Bool  x1
2 | $[1].a  Bool  x2
3 | $[1]#b  Bool  x3
  |
  = ((_ at-most 1) x1 x3)
  = ((_ at-least 1) x1 x3)
  = 2 invariants over 4 leaves

`
	result := GenerateFormattedReport([]Report{{
		Kind:   InvariantReport,
		Source: "test.yaml",
		Shape:  "vec of 2",
		Slots:  slots,
		Exprs:  []string{"((_ at-most 1) x1 x3)", "((_ at-least 1) x1 x3)"},
	}})
	assert.Equal(t, expected, result)
}

func TestFormatMerge(t *testing.T) {
	t.Parallel()
	merged := Report{
		Kind:   MergeReport,
		Source: "left + right",
		Shape:  "vec of 1",
		Slots:  []Slot{{Index: 0, Path: "$[0]", Sort: "Int", Expr: "(ite c l0 r0)"}},
		Merged: true,
		Shared: 1,
		Ites:   1,
	}
	separate := Report{Kind: MergeReport, Source: "left + right", Shape: "vec of 1"}

	expected := `merge: vec of 1
 --> left + right
  |
0 | $[0]  Int  (ite c l0 r0)
  = merged: 1 leaves, 1 shared, 1 ite

merge: vec of 1
 --> left + right
  = incompatible shapes: states kept separate

`
	assert.Equal(t, expected, GenerateFormattedReport([]Report{merged, separate}))
}

func TestSummary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		node shape.Node
		want string
	}{
		{shape.Node{Kind: shape.KindSingleton, Sort: "Int"}, "singleton Int"},
		{shape.Node{Kind: shape.KindBool}, "bool"},
		{shape.Node{Kind: shape.KindOption}, "option (none)"},
		{shape.Node{Kind: shape.KindProduct, Elems: []*shape.Node{{Kind: shape.KindUnit}}}, "product of 1"},
		{shape.Node{Kind: shape.KindMap}, "map of 0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Summary(&tt.node))
	}
}

func TestCalculateMaxIndexWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, calculateMaxIndexWidth(0))
	assert.Equal(t, 1, calculateMaxIndexWidth(10))
	assert.Equal(t, 2, calculateMaxIndexWidth(11))
	assert.Equal(t, 3, calculateMaxIndexWidth(101))
}
