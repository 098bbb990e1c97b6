package composite

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hguenther/smtrs/internal/logic"
)

// Alt is one alternative of a Choice.
type Alt[K cmp.Ordered, T Composite] struct {
	Key K
	Val T
}

// Choice is a tagged union over the alternatives that may be active.
// Each alternative is encoded as a boolean selector leaf followed by the
// alternative's own leaves; alternatives are laid out in ascending key order.
type Choice[K cmp.Ordered, T Composite] struct {
	alts []Alt[K, T]
}

// NewChoice builds a choice. Keys must be distinct.
func NewChoice[K cmp.Ordered, T Composite](alts ...Alt[K, T]) Choice[K, T] {
	sorted := slices.Clone(alts)
	slices.SortFunc(sorted, func(a, b Alt[K, T]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Key == sorted[i].Key {
			panic(fmt.Sprintf("composite: duplicate choice alternative %v", sorted[i].Key))
		}
	}
	return Choice[K, T]{alts: sorted}
}

func (c Choice[K, T]) Len() int { return len(c.alts) }

// Alternatives returns a copy of the alternatives in key order.
func (c Choice[K, T]) Alternatives() []Alt[K, T] {
	return slices.Clone(c.alts)
}

// Get returns the payload of alternative k.
func (c Choice[K, T]) Get(k K) (T, bool) {
	i, ok := c.find(k)
	if !ok {
		var zero T
		return zero, false
	}
	return c.alts[i].Val, true
}

// SelectorOffset returns the flat position of the selector leaf of k.
// The payload starts one slot later.
func (c Choice[K, T]) SelectorOffset(k K) (int, bool) {
	i, ok := c.find(k)
	if !ok {
		return 0, false
	}
	off := 0
	for _, a := range c.alts[:i] {
		off += 1 + a.Val.NumElem()
	}
	return off, true
}

func (c Choice[K, T]) find(k K) (int, bool) {
	return slices.BinarySearchFunc(c.alts, k, func(a Alt[K, T], k K) int {
		return cmp.Compare(a.Key, k)
	})
}

func (c Choice[K, T]) NumElem() int {
	n := 0
	for _, a := range c.alts {
		n += 1 + a.Val.NumElem()
	}
	return n
}

func (c Choice[K, T]) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	acc := 0
	for _, a := range c.alts {
		if i == acc {
			return logic.BoolSort(em)
		}
		acc++
		n := a.Val.NumElem()
		if i >= acc && i < acc+n {
			return a.Val.ElemSort(i-acc, em)
		}
		acc += n
	}
	invalidIndex(i, acc)
	return logic.Sort{}, nil
}

// Combine merge-joins the alternatives by key. Shared alternatives must
// merge; the others are carried over.
func (c Choice[K, T]) Combine(other Composite) (Composite, bool) {
	o, ok := other.(Choice[K, T])
	if !ok {
		return nil, false
	}
	res := make([]Alt[K, T], 0, len(c.alts)+len(o.alts))
	i, j := 0, 0
	for i < len(c.alts) && j < len(o.alts) {
		l, r := c.alts[i], o.alts[j]
		switch cmp.Compare(l.Key, r.Key) {
		case 0:
			v, ok := combineAs(l.Val, r.Val)
			if !ok {
				return nil, false
			}
			res = append(res, Alt[K, T]{Key: l.Key, Val: v})
			i++
			j++
		case -1:
			res = append(res, Alt[K, T]{Key: l.Key, Val: CloneAs(l.Val)})
			i++
		default:
			res = append(res, Alt[K, T]{Key: r.Key, Val: CloneAs(r.Val)})
			j++
		}
	}
	for _, a := range c.alts[i:] {
		res = append(res, Alt[K, T]{Key: a.Key, Val: CloneAs(a.Val)})
	}
	for _, a := range o.alts[j:] {
		res = append(res, Alt[K, T]{Key: a.Key, Val: CloneAs(a.Val)})
	}
	return Choice[K, T]{alts: res}, true
}

func (c Choice[K, T]) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	o := sameShape(c, other)
	i, j := 0, 0
	for i < len(c.alts) && j < len(o.alts) {
		l, r := c.alts[i], o.alts[j]
		switch cmp.Compare(l.Key, r.Key) {
		case 0:
			cur.both(m)
			l.Val.CombineElem(r.Val, m, cur)
			i++
			j++
		case -1:
			cur.onlyLeft(m, 1+l.Val.NumElem())
			i++
		default:
			cur.onlyRight(m, 1+r.Val.NumElem())
			j++
		}
	}
	for _, a := range c.alts[i:] {
		cur.onlyLeft(m, 1+a.Val.NumElem())
	}
	for _, a := range o.alts[j:] {
		cur.onlyRight(m, 1+a.Val.NumElem())
	}
}

// Invariant guards every alternative's invariants with its selector and
// requires exactly one selector to hold.
func (c Choice[K, T]) Invariant(em logic.Embed, leaf LeafFunc, off *int, res *[]logic.Expr) error {
	selectors := make([]logic.Expr, 0, len(c.alts))
	for _, a := range c.alts {
		sel, err := leaf(*off, em)
		if err != nil {
			return err
		}
		*off++

		start := len(*res)
		if err := a.Val.Invariant(em, leaf, off, res); err != nil {
			return err
		}
		for i := start; i < len(*res); i++ {
			guarded, err := logic.Implies(em, sel, (*res)[i])
			if err != nil {
				return err
			}
			(*res)[i] = guarded
		}
		selectors = append(selectors, sel)
	}

	atMost, err := logic.AtMost(em, 1, selectors)
	if err != nil {
		return err
	}
	atLeast, err := logic.AtLeast(em, 1, selectors)
	if err != nil {
		return err
	}
	*res = append(*res, atMost, atLeast)
	return nil
}

func (c Choice[K, T]) Equal(other Composite) bool {
	o, ok := other.(Choice[K, T])
	if !ok || len(c.alts) != len(o.alts) {
		return false
	}
	for i := range c.alts {
		if c.alts[i].Key != o.alts[i].Key || !c.alts[i].Val.Equal(o.alts[i].Val) {
			return false
		}
	}
	return true
}

func (c Choice[K, T]) Clone() Composite {
	alts := make([]Alt[K, T], len(c.alts))
	for i, a := range c.alts {
		alts[i] = Alt[K, T]{Key: a.Key, Val: CloneAs(a.Val)}
	}
	return Choice[K, T]{alts: alts}
}
