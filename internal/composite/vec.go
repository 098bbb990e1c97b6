package composite

import "github.com/hguenther/smtrs/internal/logic"

// Vec is an ordered sequence. Its leaves are the concatenation of the
// elements' leaves.
type Vec[T Composite] []T

func (v Vec[T]) NumElem() int {
	n := 0
	for _, el := range v {
		n += el.NumElem()
	}
	return n
}

// LeafOffset returns the flat position of the first leaf of element i.
func (v Vec[T]) LeafOffset(i int) int {
	off := 0
	for _, el := range v[:i] {
		off += el.NumElem()
	}
	return off
}

func (v Vec[T]) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	acc := 0
	for _, el := range v {
		n := el.NumElem()
		if i >= acc && i < acc+n {
			return el.ElemSort(i-acc, em)
		}
		acc += n
	}
	invalidIndex(i, acc)
	return logic.Sort{}, nil
}

// Combine merges elements pairwise; the tail of the longer vector is kept.
func (v Vec[T]) Combine(other Composite) (Composite, bool) {
	o, ok := other.(Vec[T])
	if !ok {
		return nil, false
	}
	res := make(Vec[T], 0, max(len(v), len(o)))
	for i := 0; i < min(len(v), len(o)); i++ {
		el, ok := combineAs(v[i], o[i])
		if !ok {
			return nil, false
		}
		res = append(res, el)
	}
	for _, el := range v[min(len(v), len(o)):] {
		res = append(res, CloneAs(el))
	}
	for _, el := range o[min(len(v), len(o)):] {
		res = append(res, CloneAs(el))
	}
	return res, true
}

func (v Vec[T]) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	o := sameShape(v, other)
	common := min(len(v), len(o))
	for i := 0; i < common; i++ {
		v[i].CombineElem(o[i], m, cur)
	}
	for _, el := range v[common:] {
		cur.onlyLeft(m, el.NumElem())
	}
	for _, el := range o[common:] {
		cur.onlyRight(m, el.NumElem())
	}
}

func (v Vec[T]) Invariant(em logic.Embed, leaf LeafFunc, off *int, res *[]logic.Expr) error {
	for _, el := range v {
		if err := el.Invariant(em, leaf, off, res); err != nil {
			return err
		}
	}
	return nil
}

func (v Vec[T]) Equal(other Composite) bool {
	o, ok := other.(Vec[T])
	if !ok || len(v) != len(o) {
		return false
	}
	for i := range v {
		if !v[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (v Vec[T]) Clone() Composite {
	if v == nil {
		return Vec[T](nil)
	}
	out := make(Vec[T], len(v))
	for i, el := range v {
		out[i] = CloneAs(el)
	}
	return out
}
