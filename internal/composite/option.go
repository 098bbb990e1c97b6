package composite

import "github.com/hguenther/smtrs/internal/logic"

// Option holds zero or one value. An empty option has no leaves.
type Option[T Composite] struct {
	val T
	ok  bool
}

// Some wraps v.
func Some[T Composite](v T) Option[T] {
	return Option[T]{val: v, ok: true}
}

// None returns the empty option.
func None[T Composite]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool { return o.ok }

// Value returns the payload and whether there is one.
func (o Option[T]) Value() (T, bool) {
	return o.val, o.ok
}

func (o Option[T]) NumElem() int {
	if !o.ok {
		return 0
	}
	return o.val.NumElem()
}

func (o Option[T]) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	if !o.ok {
		invalidIndex(i, 0)
	}
	return o.val.ElemSort(i, em)
}

// Combine treats an empty side as absent: the other side wins.
func (o Option[T]) Combine(other Composite) (Composite, bool) {
	r, ok := other.(Option[T])
	if !ok {
		return nil, false
	}
	switch {
	case !o.ok && !r.ok:
		return None[T](), true
	case !o.ok:
		return Some(CloneAs(r.val)), true
	case !r.ok:
		return Some(CloneAs(o.val)), true
	}
	v, ok := combineAs(o.val, r.val)
	if !ok {
		return nil, false
	}
	return Some(v), true
}

func (o Option[T]) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	r := sameShape(o, other)
	switch {
	case !o.ok && !r.ok:
	case !o.ok:
		cur.onlyRight(m, r.val.NumElem())
	case !r.ok:
		cur.onlyLeft(m, o.val.NumElem())
	default:
		o.val.CombineElem(r.val, m, cur)
	}
}

func (o Option[T]) Invariant(em logic.Embed, leaf LeafFunc, off *int, res *[]logic.Expr) error {
	if !o.ok {
		return nil
	}
	return o.val.Invariant(em, leaf, off, res)
}

func (o Option[T]) Equal(other Composite) bool {
	r, ok := other.(Option[T])
	if !ok || o.ok != r.ok {
		return false
	}
	return !o.ok || o.val.Equal(r.val)
}

func (o Option[T]) Clone() Composite {
	if !o.ok {
		return None[T]()
	}
	return Some(CloneAs(o.val))
}
