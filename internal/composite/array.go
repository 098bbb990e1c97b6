package composite

import "github.com/hguenther/smtrs/internal/logic"

// Array is a logic array indexed by values of shape I holding values of
// shape T. Only the element is flattened: each element leaf becomes one
// array-sorted leaf whose index sorts are the leaf sorts of Index.
type Array[I Composite, T Composite] struct {
	Index I
	Elem  T
}

func (a Array[I, T]) NumElem() int {
	return a.Elem.NumElem()
}

func (a Array[I, T]) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	elem, err := a.Elem.ElemSort(i, em)
	if err != nil {
		return logic.Sort{}, err
	}
	index, err := Sorts(a.Index, em)
	if err != nil {
		return logic.Sort{}, err
	}
	return logic.ArraySort(em, index, elem)
}

// Combine requires identical index shapes.
func (a Array[I, T]) Combine(other Composite) (Composite, bool) {
	o, ok := other.(Array[I, T])
	if !ok || !a.Index.Equal(o.Index) {
		return nil, false
	}
	elem, ok := combineAs(a.Elem, o.Elem)
	if !ok {
		return nil, false
	}
	return Array[I, T]{Index: CloneAs(a.Index), Elem: elem}, true
}

func (a Array[I, T]) CombineElem(other Composite, m LeafMerger, cur *Cursors) {
	o := sameShape(a, other)
	a.Elem.CombineElem(o.Elem, m, cur)
}

// Invariant emits nothing: element invariants would need quantification
// over the index.
func (a Array[I, T]) Invariant(_ logic.Embed, _ LeafFunc, off *int, _ *[]logic.Expr) error {
	skip(a, off)
	return nil
}

func (a Array[I, T]) Equal(other Composite) bool {
	o, ok := other.(Array[I, T])
	return ok && a.Index.Equal(o.Index) && a.Elem.Equal(o.Elem)
}

func (a Array[I, T]) Clone() Composite {
	return Array[I, T]{Index: CloneAs(a.Index), Elem: CloneAs(a.Elem)}
}
