package composite

import "github.com/hguenther/smtrs/internal/logic"

// Singleton is a single leaf of a fixed sort.
type Singleton struct {
	S logic.Sort
}

func (Singleton) NumElem() int { return 1 }

func (s Singleton) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	if i != 0 {
		invalidIndex(i, 1)
	}
	return em.EmbedSort(s.S)
}

// Combine succeeds only when both leaves have the same sort. Leaf contents
// are never compared; merging them is the job of CombineElem's caller.
func (s Singleton) Combine(other Composite) (Composite, bool) {
	o, ok := other.(Singleton)
	if !ok || !s.S.Equal(o.S) {
		return nil, false
	}
	return Singleton{S: s.S}, true
}

func (s Singleton) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	sameShape(s, other)
	cur.both(m)
}

func (s Singleton) Invariant(_ logic.Embed, _ LeafFunc, off *int, _ *[]logic.Expr) error {
	skip(s, off)
	return nil
}

func (s Singleton) Equal(other Composite) bool {
	o, ok := other.(Singleton)
	return ok && s.S.Equal(o.S)
}

func (s Singleton) Clone() Composite { return s }

// Bool is a single boolean leaf. Two booleans always merge.
type Bool struct{}

func (Bool) NumElem() int { return 1 }

func (Bool) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	if i != 0 {
		invalidIndex(i, 1)
	}
	return logic.BoolSort(em)
}

func (Bool) Combine(other Composite) (Composite, bool) {
	if _, ok := other.(Bool); !ok {
		return nil, false
	}
	return Bool{}, true
}

func (b Bool) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	sameShape(b, other)
	cur.both(m)
}

func (b Bool) Invariant(_ logic.Embed, _ LeafFunc, off *int, _ *[]logic.Expr) error {
	skip(b, off)
	return nil
}

func (Bool) Equal(other Composite) bool {
	_, ok := other.(Bool)
	return ok
}

func (b Bool) Clone() Composite { return b }

// Unit has no leaves.
type Unit struct{}

func (Unit) NumElem() int { return 0 }

func (Unit) ElemSort(i int, _ logic.Embed) (logic.Sort, error) {
	invalidIndex(i, 0)
	return logic.Sort{}, nil
}

func (Unit) Combine(other Composite) (Composite, bool) {
	if _, ok := other.(Unit); !ok {
		return nil, false
	}
	return Unit{}, true
}

func (u Unit) CombineElem(other Composite, _ LeafMerger, _ *Cursors) {
	sameShape(u, other)
}

func (Unit) Invariant(logic.Embed, LeafFunc, *int, *[]logic.Expr) error {
	return nil
}

func (Unit) Equal(other Composite) bool {
	_, ok := other.(Unit)
	return ok
}

func (u Unit) Clone() Composite { return u }
