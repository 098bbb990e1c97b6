package transition

import (
	"fmt"

	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/transform"
)

// GetVecElem projects element Which of a vector.
type GetVecElem[T composite.Composite] struct {
	Which int
}

func (g GetVecElem[T]) Apply(src OptRef[composite.Vec[T]], in *transform.Transformation, _ logic.Embed) (OptRef[T], *transform.Transformation, error) {
	vec := src.Get()
	checkElem(g.Which, len(vec))
	checkInput(vec, in)

	off := vec.LeafOffset(g.Which)
	out := transform.View(off, vec[g.Which].NumElem(), in)
	if src.IsOwned() {
		return Owned(vec[g.Which]), out, nil
	}
	return Borrowed(&vec[g.Which]), out, nil
}

// SetVecElem replaces element Which of a vector with a new element.
//
// The input leaves are laid out as the vector's leaves followed by the new
// element's leaves, which is the layout of the pair (vector, element). The
// result reuses the untouched prefix and suffix of the vector's leaves.
type SetVecElem[T composite.Composite] struct {
	Which int
}

func (s SetVecElem[T]) Apply(src OptRef[composite.Pair[composite.Vec[T], T]], in *transform.Transformation, _ logic.Embed) (OptRef[composite.Vec[T]], *transform.Transformation, error) {
	args := src.Get()
	checkElem(s.Which, len(args.First))
	checkInput(args, in)

	vlen := args.First.NumElem()
	off := args.First.LeafOffset(s.Which)
	old := args.First[s.Which].NumElem()
	out := transform.Concat(
		transform.View(0, off, in),
		transform.View(vlen, args.Second.NumElem(), in),
		transform.View(off+old, vlen-off-old, in),
	)

	var vec composite.Vec[T]
	if src.IsOwned() {
		vec = args.First
		vec[s.Which] = args.Second
	} else {
		vec = composite.CloneAs(args.First)
		vec[s.Which] = composite.CloneAs(args.Second)
	}
	return Owned(vec), out, nil
}

func checkElem(which, n int) {
	if which < 0 || which >= n {
		panic(fmt.Sprintf("transition: element %d out of range [0, %d)", which, n))
	}
}

func checkInput(v composite.Composite, in *transform.Transformation) {
	if in.Size() != v.NumElem() {
		panic(fmt.Sprintf("transition: input has %d slots, value %T has %d leaves", in.Size(), v, v.NumElem()))
	}
}
