package transition

import (
	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/transform"
)

// GetArrayElem reads an array at an index value. The input leaves are the
// array's leaves followed by the index value's leaves. Every element leaf
// becomes a select of that array leaf at the index leaves.
type GetArrayElem[I, T composite.Composite] struct{}

func (GetArrayElem[I, T]) Apply(src OptRef[composite.Pair[composite.Array[I, T], I]], in *transform.Transformation, _ logic.Embed) (OptRef[T], *transform.Transformation, error) {
	args := src.Get()
	if !args.First.Index.Equal(args.Second) {
		panic("transition: array index shape does not match the index value")
	}
	checkInput(args, in)

	elemN := args.First.Elem.NumElem()
	idxN := args.Second.NumElem()
	read := func(base []logic.Expr, _ int, e logic.Expr, em logic.Embed) (logic.Expr, error) {
		index := make([]logic.Expr, idxN)
		for i := 0; i < idxN; i++ {
			el, err := in.Get(base, elemN+i, em)
			if err != nil {
				return nil, err
			}
			index[i] = el
		}
		return logic.Select(em, e, index)
	}
	out := transform.MapByElem(read, transform.View(0, elemN, in))

	if src.IsOwned() {
		return Owned(args.First.Elem), out, nil
	}
	return Borrowed(&src.ref.First.Elem), out, nil
}
