package composite

import (
	"fmt"

	"github.com/hguenther/smtrs/internal/logic"
)

// Composite is a structured value with a flat leaf encoding.
type Composite interface {
	// NumElem returns the number of leaf slots. It depends only on shape.
	NumElem() int
	// ElemSort returns the sort of leaf i. It panics if i is out of range.
	ElemSort(i int, em logic.Embed) (logic.Sort, error)
	// Combine merges the shapes of two values. The second result is false
	// when the values are structurally incompatible.
	Combine(other Composite) (Composite, bool)
	// CombineElem walks the leaves of both values in the order Combine lays
	// out the merged value and reports every leaf to m, advancing cur.
	CombineElem(other Composite, m LeafMerger, cur *Cursors)
	// Invariant appends the constraints every valid encoding satisfies.
	// off is the absolute position of the value's first leaf and is advanced
	// past all of its leaves.
	Invariant(em logic.Embed, leaf LeafFunc, off *int, res *[]logic.Expr) error
	// Equal reports structural equality.
	Equal(other Composite) bool
	// Clone returns a copy that shares nothing mutable with the receiver.
	Clone() Composite
}

// LeafMerger receives the leaf positions visited by CombineElem. Exactly one
// method is invoked per leaf of the merged value.
type LeafMerger interface {
	// Both is called for a leaf present on both sides.
	Both(left, right, merged int)
	// OnlyLeft is called for a leaf that only the left value has.
	OnlyLeft(left, merged int)
	// OnlyRight is called for a leaf that only the right value has.
	OnlyRight(right, merged int)
}

// Cursors are the positions in the left, right and merged flat arrays.
// Each cursor advances once per leaf consumed from its side.
type Cursors struct {
	Left   int
	Right  int
	Merged int
}

func (c *Cursors) both(m LeafMerger) {
	m.Both(c.Left, c.Right, c.Merged)
	c.Left++
	c.Right++
	c.Merged++
}

func (c *Cursors) onlyLeft(m LeafMerger, n int) {
	for i := 0; i < n; i++ {
		m.OnlyLeft(c.Left, c.Merged)
		c.Left++
		c.Merged++
	}
}

func (c *Cursors) onlyRight(m LeafMerger, n int) {
	for i := 0; i < n; i++ {
		m.OnlyRight(c.Right, c.Merged)
		c.Right++
		c.Merged++
	}
}

// FoldFuncs are the accumulator-threading callbacks of Fold.
type FoldFuncs[Acc any] struct {
	Both      func(acc Acc, left, right, merged int) Acc
	OnlyLeft  func(acc Acc, left, merged int) Acc
	OnlyRight func(acc Acc, right, merged int) Acc
}

type folder[Acc any] struct {
	fns FoldFuncs[Acc]
	acc Acc
}

func (f *folder[Acc]) Both(left, right, merged int) {
	f.acc = f.fns.Both(f.acc, left, right, merged)
}

func (f *folder[Acc]) OnlyLeft(left, merged int) {
	f.acc = f.fns.OnlyLeft(f.acc, left, merged)
}

func (f *folder[Acc]) OnlyRight(right, merged int) {
	f.acc = f.fns.OnlyRight(f.acc, right, merged)
}

// Fold runs CombineElem on l and r, threading an accumulator through the
// callbacks, and returns the final accumulator.
func Fold[Acc any](l, r Composite, fns FoldFuncs[Acc], init Acc, cur *Cursors) Acc {
	f := &folder[Acc]{fns: fns, acc: init}
	l.CombineElem(r, f, cur)
	return f.acc
}

// LeafFunc returns the expression occupying the flat slot i.
type LeafFunc func(i int, em logic.Embed) (logic.Expr, error)

// Offset returns a LeafFunc that reads f shifted by n slots.
func Offset(f LeafFunc, n int) LeafFunc {
	return func(i int, em logic.Embed) (logic.Expr, error) {
		return f(i+n, em)
	}
}

// SliceLeaves returns a LeafFunc reading from a materialized flat array.
func SliceLeaves(exprs []logic.Expr) LeafFunc {
	return func(i int, _ logic.Embed) (logic.Expr, error) {
		if i < 0 || i >= len(exprs) {
			invalidIndex(i, len(exprs))
		}
		return exprs[i], nil
	}
}

// Sorts returns the sort of every leaf of c, in leaf order.
func Sorts(c Composite, em logic.Embed) ([]logic.Sort, error) {
	n := c.NumElem()
	out := make([]logic.Sort, 0, n)
	for i := 0; i < n; i++ {
		s, err := c.ElemSort(i, em)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Invariants collects the invariants of c, whose leaves start at slot 0 of
// leaf.
func Invariants(c Composite, em logic.Embed, leaf LeafFunc) ([]logic.Expr, error) {
	var res []logic.Expr
	off := 0
	if err := c.Invariant(em, leaf, &off, &res); err != nil {
		return nil, err
	}
	if off != c.NumElem() {
		panic(fmt.Sprintf("composite: invariant of %T consumed %d of %d leaves", c, off, c.NumElem()))
	}
	return res, nil
}

// Equal reports whether a and b have the same structure.
func Equal(a, b Composite) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// CloneAs clones c and keeps its static type.
func CloneAs[T Composite](c T) T {
	return c.Clone().(T)
}

func combineAs[T Composite](a, b T) (T, bool) {
	res, ok := a.Combine(b)
	if !ok {
		var zero T
		return zero, false
	}
	return res.(T), true
}

func sameShape[T Composite](self T, other Composite) T {
	o, ok := other.(T)
	if !ok {
		panic(fmt.Sprintf("composite: CombineElem on mismatched shapes %T and %T", self, other))
	}
	return o
}

func invalidIndex(i, n int) {
	panic(fmt.Sprintf("composite: leaf index %d out of range [0, %d)", i, n))
}

// skip advances the invariant offset over leaves that carry no constraint.
func skip(c Composite, off *int) {
	*off += c.NumElem()
}
