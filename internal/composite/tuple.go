package composite

import (
	"fmt"

	"github.com/hguenther/smtrs/internal/logic"
)

// Pair is a two-component product.
type Pair[A Composite, B Composite] struct {
	First  A
	Second B
}

// NewPair builds a pair.
func NewPair[A Composite, B Composite](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (p Pair[A, B]) NumElem() int {
	return p.First.NumElem() + p.Second.NumElem()
}

func (p Pair[A, B]) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	n := p.First.NumElem()
	if i >= n {
		return p.Second.ElemSort(i-n, em)
	}
	return p.First.ElemSort(i, em)
}

func (p Pair[A, B]) Combine(other Composite) (Composite, bool) {
	o, ok := other.(Pair[A, B])
	if !ok {
		return nil, false
	}
	first, ok := combineAs(p.First, o.First)
	if !ok {
		return nil, false
	}
	second, ok := combineAs(p.Second, o.Second)
	if !ok {
		return nil, false
	}
	return Pair[A, B]{First: first, Second: second}, true
}

func (p Pair[A, B]) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	o := sameShape(p, other)
	p.First.CombineElem(o.First, m, cur)
	p.Second.CombineElem(o.Second, m, cur)
}

func (p Pair[A, B]) Invariant(em logic.Embed, leaf LeafFunc, off *int, res *[]logic.Expr) error {
	if err := p.First.Invariant(em, leaf, off, res); err != nil {
		return err
	}
	return p.Second.Invariant(em, leaf, off, res)
}

func (p Pair[A, B]) Equal(other Composite) bool {
	o, ok := other.(Pair[A, B])
	return ok && p.First.Equal(o.First) && p.Second.Equal(o.Second)
}

func (p Pair[A, B]) Clone() Composite {
	return Pair[A, B]{First: CloneAs(p.First), Second: CloneAs(p.Second)}
}

// Product is a fixed-arity tuple of heterogeneous components. Unlike Vec,
// two products only merge when they have the same arity.
type Product []Composite

func (p Product) NumElem() int {
	n := 0
	for _, c := range p {
		n += c.NumElem()
	}
	return n
}

func (p Product) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	acc := 0
	for _, c := range p {
		n := c.NumElem()
		if i >= acc && i < acc+n {
			return c.ElemSort(i-acc, em)
		}
		acc += n
	}
	invalidIndex(i, acc)
	return logic.Sort{}, nil
}

func (p Product) Combine(other Composite) (Composite, bool) {
	o, ok := other.(Product)
	if !ok || len(p) != len(o) {
		return nil, false
	}
	res := make(Product, len(p))
	for i := range p {
		c, ok := p[i].Combine(o[i])
		if !ok {
			return nil, false
		}
		res[i] = c
	}
	return res, true
}

func (p Product) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	o := sameShape(p, other)
	if len(p) != len(o) {
		panic(fmt.Sprintf("composite: CombineElem on products of arity %d and %d", len(p), len(o)))
	}
	for i := range p {
		p[i].CombineElem(o[i], m, cur)
	}
}

func (p Product) Invariant(em logic.Embed, leaf LeafFunc, off *int, res *[]logic.Expr) error {
	for _, c := range p {
		if err := c.Invariant(em, leaf, off, res); err != nil {
			return err
		}
	}
	return nil
}

func (p Product) Equal(other Composite) bool {
	o, ok := other.(Product)
	if !ok || len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (p Product) Clone() Composite {
	out := make(Product, len(p))
	for i, c := range p {
		out[i] = c.Clone()
	}
	return out
}
