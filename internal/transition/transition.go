package transition

import (
	"github.com/hguenther/smtrs/internal/composite"
	"github.com/hguenther/smtrs/internal/logic"
	"github.com/hguenther/smtrs/internal/transform"
)

// Transition maps a value of shape S to a value of shape T.
//
// in must describe the leaves of src over some base array. The returned
// transformation describes the leaves of the result over the same base.
type Transition[S, T composite.Composite] interface {
	Apply(src OptRef[S], in *transform.Transformation, em logic.Embed) (OptRef[T], *transform.Transformation, error)
}

// Func adapts a function to the Transition interface.
type Func[S, T composite.Composite] func(src OptRef[S], in *transform.Transformation, em logic.Embed) (OptRef[T], *transform.Transformation, error)

func (f Func[S, T]) Apply(src OptRef[S], in *transform.Transformation, em logic.Embed) (OptRef[T], *transform.Transformation, error) {
	return f(src, in, em)
}

// Seq runs First and then Second on its result.
type Seq[A, B, C composite.Composite] struct {
	First  Transition[A, B]
	Second Transition[B, C]
}

// Then composes two transitions.
func Then[A, B, C composite.Composite](first Transition[A, B], second Transition[B, C]) Seq[A, B, C] {
	return Seq[A, B, C]{First: first, Second: second}
}

func (s Seq[A, B, C]) Apply(src OptRef[A], in *transform.Transformation, em logic.Embed) (OptRef[C], *transform.Transformation, error) {
	mid, tr, err := s.First.Apply(src, in, em)
	if err != nil {
		return OptRef[C]{}, nil, err
	}
	return s.Second.Apply(mid, tr, em)
}
