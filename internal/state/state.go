// Package state couples composite values with the transformations that
// compute their leaves, and merges such pairs at control-flow joins.
package state

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v2"

	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/transform"
	"github.com/hguenther/smtrs/internal/transition"
)

// State is a composite value together with the transformation computing its
// leaves from a base array.
type State struct {
	Value  composite.Composite
	Leaves *transform.Transformation
}

// New returns the state whose leaves are the first slots of the base array.
func New(v composite.Composite) State {
	return State{Value: v, Leaves: transform.Id(v.NumElem())}
}

// Fresh allocates one variable per leaf of v, named prefix followed by the
// leaf index and sorted by the leaf's sort.
func Fresh(v composite.Composite, prefix string, em logic.Embed) ([]logic.Expr, error) {
	sorts, err := composite.Sorts(v, em)
	if err != nil {
		return nil, err
	}
	out := make([]logic.Expr, len(sorts))
	for i, s := range sorts {
		out[i] = logic.Var{Name: fmt.Sprintf("%s%d", prefix, i), S: s}
	}
	return out, nil
}

// Materialize evaluates the leaves of s over base.
func (s State) Materialize(base []logic.Expr, em logic.Embed) ([]logic.Expr, error) {
	if s.Leaves.Size() != s.Value.NumElem() {
		panic(fmt.Sprintf("state: transformation has %d slots, value has %d leaves", s.Leaves.Size(), s.Value.NumElem()))
	}
	return s.Leaves.Materialize(base, em)
}

// Assumptions returns the invariants of the value over its leaves.
func (s State) Assumptions(base []logic.Expr, em logic.Embed) ([]logic.Expr, error) {
	leaves, err := s.Materialize(base, em)
	if err != nil {
		return nil, err
	}
	return composite.Invariants(s.Value, em, composite.SliceLeaves(leaves))
}

// Step applies a transition to a state whose value has shape S.
func Step[S, T composite.Composite](s State, t transition.Transition[S, T], em logic.Embed) (State, error) {
	v, ok := s.Value.(S)
	if !ok {
		panic(fmt.Sprintf("state: transition expects %T, value is %T", *new(S), s.Value))
	}
	res, leaves, err := t.Apply(transition.Borrowed(&v), s.Leaves, em)
	if err != nil {
		return State{}, err
	}
	return State{Value: res.Get(), Leaves: leaves}, nil
}

// Vars returns the distinct variables occurring in exprs, ordered by name.
func Vars(exprs ...logic.Expr) []logic.Var {
	seen := set.New[string](len(exprs))
	var out []logic.Var
	var walk func(e logic.Expr)
	walk = func(e logic.Expr) {
		switch e := e.(type) {
		case logic.Var:
			if seen.Insert(e.Name) {
				out = append(out, e)
			}
		case logic.App:
			for _, arg := range e.Args {
				walk(arg)
			}
		}
	}
	for _, e := range exprs {
		walk(e)
	}
	slices.SortFunc(out, func(a, b logic.Var) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}
