package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/transform"
	"github.com/hguenther/smtrs/internal/transition"
)

type anyVec = composite.Vec[composite.Composite]

func intLeaf() composite.Singleton { return composite.Singleton{S: logic.Int()} }

func TestFresh(t *testing.T) {
	t.Parallel()
	em := logic.NewBuilder()
	v := composite.Product{
		intLeaf(),
		composite.Bool{},
		composite.Array[composite.Singleton, composite.Composite]{Index: intLeaf(), Elem: composite.Bool{}},
	}

	vars, err := Fresh(v, "x", em)
	require.NoError(t, err)
	require.Len(t, vars, 3)

	assert.Equal(t, []string{"x0", "x1", "x2"}, logic.Strings(vars))
	want := []logic.Sort{
		logic.Int(),
		logic.Bool(),
		logic.Array([]logic.Sort{logic.Int()}, logic.Bool()),
	}
	got := make([]logic.Sort, len(vars))
	for i, e := range vars {
		got[i] = e.Sort()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("leaf sorts mismatch (-want +got):\n%s", diff)
	}
}

func TestFreshEmbedError(t *testing.T) {
	t.Parallel()
	em := logic.NewRestrictedBuilder(logic.KindBool)
	_, err := Fresh(composite.Product{composite.Bool{}, intLeaf()}, "x", em)
	var embedErr *logic.EmbedError
	assert.ErrorAs(t, err, &embedErr)
}

func TestAssumptions(t *testing.T) {
	t.Parallel()
	em := logic.NewBuilder()
	v := composite.NewChoice(
		composite.Alt[string, composite.Composite]{Key: "a", Val: composite.Bool{}},
		composite.Alt[string, composite.Composite]{Key: "b", Val: intLeaf()},
	)
	base, err := Fresh(v, "s", em)
	require.NoError(t, err)

	inv, err := New(v).Assumptions(base, em)
	require.NoError(t, err)
	assert.Equal(t, []string{"((_ at-most 1) s0 s2)", "((_ at-least 1) s0 s2)"}, logic.Strings(inv))
}

func TestStep(t *testing.T) {
	t.Parallel()
	em := logic.NewBuilder()
	v := anyVec{intLeaf(), composite.Product{intLeaf(), intLeaf()}}
	base, err := Fresh(v, "v", em)
	require.NoError(t, err)

	s, err := Step(New(v), transition.Transition[anyVec, composite.Composite](transition.GetVecElem[composite.Composite]{Which: 1}), em)
	require.NoError(t, err)
	leaves, err := s.Materialize(base, em)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, logic.Strings(leaves))

	assert.Panics(t, func() {
		_, _ = Step(New(intLeaf()), transition.Transition[anyVec, composite.Composite](transition.GetVecElem[composite.Composite]{Which: 0}), em)
	})
}

func TestVars(t *testing.T) {
	t.Parallel()
	em := logic.NewBuilder()
	c := logic.Var{Name: "c", S: logic.Bool()}
	a := logic.Var{Name: "a", S: logic.Bool()}
	b := logic.Var{Name: "b", S: logic.Bool()}
	ite, err := logic.Ite(em, c, a, b)
	require.NoError(t, err)
	and, err := logic.And(em, a, c)
	require.NoError(t, err)

	vars := Vars(ite, and, b, logic.BoolConst{Val: true})
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestMaterializeSizeMismatchPanics(t *testing.T) {
	t.Parallel()
	s := State{Value: composite.Product{intLeaf(), intLeaf()}, Leaves: transform.Id(3)}
	assert.Panics(t, func() { _, _ = s.Materialize(nil, logic.NewBuilder()) })
}
