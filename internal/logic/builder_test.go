package logic

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		sort Sort
		want string
	}{
		{"bool", Bool(), "Bool"},
		{"int", Int(), "Int"},
		{"bitvec", BitVec(8), "(_ BitVec 8)"},
		{"array", Array([]Sort{Int(), Bool()}, BitVec(4)), "(Array Int Bool (_ BitVec 4))"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.sort.String())
		})
	}
}

func TestSortEqual(t *testing.T) {
	t.Parallel()
	assert.True(t, Bool().Equal(Bool()))
	assert.False(t, Bool().Equal(Int()))
	assert.False(t, BitVec(8).Equal(BitVec(16)))
	assert.True(t, Array([]Sort{Int()}, Bool()).Equal(Array([]Sort{Int()}, Bool())))
	assert.False(t, Array([]Sort{Int()}, Bool()).Equal(Array([]Sort{Bool()}, Bool())))
	assert.False(t, Array([]Sort{Int()}, Bool()).Equal(Array([]Sort{Int(), Int()}, Bool())))
}

func TestBuilderApplications(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	p := Var{Name: "p", S: Bool()}
	q := Var{Name: "q", S: Bool()}
	x := Var{Name: "x", S: Int()}
	y := Var{Name: "y", S: Int()}
	arr := Var{Name: "a", S: Array([]Sort{Int()}, Bool())}

	imp, err := Implies(b, p, q)
	require.NoError(t, err)
	assert.Equal(t, "(=> p q)", imp.String())
	assert.True(t, imp.Sort().Equal(Bool()))

	ite, err := Ite(b, p, x, y)
	require.NoError(t, err)
	assert.Equal(t, "(ite p x y)", ite.String())
	assert.True(t, ite.Sort().Equal(Int()))

	sel, err := Select(b, arr, []Expr{x})
	require.NoError(t, err)
	assert.Equal(t, "(select a x)", sel.String())
	assert.True(t, sel.Sort().Equal(Bool()))

	am, err := AtMost(b, 1, []Expr{p, q})
	require.NoError(t, err)
	al, err := AtLeast(b, 1, []Expr{p, q})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"((_ at-most 1) p q)", "((_ at-least 1) p q)"}, Strings([]Expr{am, al})); diff != "" {
		t.Errorf("cardinality terms mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderRejectsIllSorted(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	p := Var{Name: "p", S: Bool()}
	x := Var{Name: "x", S: Int()}
	arr := Var{Name: "a", S: Array([]Sort{Int()}, Bool())}

	tests := []struct {
		name string
		fn   Function
		args []Expr
	}{
		{"implies on int", Function{Kind: FnImplies}, []Expr{p, x}},
		{"ite branches differ", Function{Kind: FnIte}, []Expr{p, p, x}},
		{"ite non-bool condition", Function{Kind: FnIte}, []Expr{x, x, x}},
		{"select wrong index sort", Function{Kind: FnSelect}, []Expr{arr, p}},
		{"select on scalar", Function{Kind: FnSelect}, []Expr{x, x}},
		{"at-most over int", Function{Kind: FnAtMost, K: 1}, []Expr{x}},
		{"eq differing sorts", Function{Kind: FnEq}, []Expr{p, x}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := b.Embed(tt.fn, tt.args)
			require.Error(t, err)
			var embedErr *EmbedError
			assert.True(t, errors.As(err, &embedErr))
			assert.Equal(t, tt.fn.String(), embedErr.Op)
		})
	}
}

func TestRestrictedBuilder(t *testing.T) {
	t.Parallel()
	b := NewRestrictedBuilder(KindBool, KindInt)

	_, err := BoolSort(b)
	assert.NoError(t, err)

	_, err = b.EmbedSort(BitVec(8))
	assert.Error(t, err)

	_, err = ArraySort(b, []Sort{Int()}, Bool())
	var embedErr *EmbedError
	require.True(t, errors.As(err, &embedErr))
	assert.Equal(t, "sort", embedErr.Op)
}
