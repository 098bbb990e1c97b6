package composite

import (
	"cmp"
	"slices"

	"github.com/hguenther/smtrs/internal/logic"
)

// MapEntry is one key/value pair of a Map.
type MapEntry[K cmp.Ordered, T Composite] struct {
	Key K
	Val T
}

// Map is a key-ordered mapping. Leaves are laid out in ascending key order.
// Map values are immutable; Set returns a new map.
type Map[K cmp.Ordered, T Composite] struct {
	entries []MapEntry[K, T]
}

// NewMap builds a Map from a Go map.
func NewMap[K cmp.Ordered, T Composite](m map[K]T) Map[K, T] {
	entries := make([]MapEntry[K, T], 0, len(m))
	for k, v := range m {
		entries = append(entries, MapEntry[K, T]{Key: k, Val: v})
	}
	slices.SortFunc(entries, func(a, b MapEntry[K, T]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return Map[K, T]{entries: entries}
}

func (m Map[K, T]) Len() int { return len(m.entries) }

// Keys returns the keys in ascending order.
func (m Map[K, T]) Keys() []K {
	keys := make([]K, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in key order.
func (m Map[K, T]) Entries() []MapEntry[K, T] {
	return slices.Clone(m.entries)
}

func (m Map[K, T]) find(k K) (int, bool) {
	return slices.BinarySearchFunc(m.entries, k, func(e MapEntry[K, T], k K) int {
		return cmp.Compare(e.Key, k)
	})
}

// Get returns the value stored under k.
func (m Map[K, T]) Get(k K) (T, bool) {
	i, ok := m.find(k)
	if !ok {
		var zero T
		return zero, false
	}
	return m.entries[i].Val, true
}

// Set returns a copy of m with k bound to v.
func (m Map[K, T]) Set(k K, v T) Map[K, T] {
	i, ok := m.find(k)
	entries := slices.Clone(m.entries)
	if ok {
		entries[i].Val = v
	} else {
		entries = slices.Insert(entries, i, MapEntry[K, T]{Key: k, Val: v})
	}
	return Map[K, T]{entries: entries}
}

// LeafOffset returns the flat position of the first leaf stored under k.
func (m Map[K, T]) LeafOffset(k K) (int, bool) {
	i, ok := m.find(k)
	if !ok {
		return 0, false
	}
	off := 0
	for _, e := range m.entries[:i] {
		off += e.Val.NumElem()
	}
	return off, true
}

func (m Map[K, T]) NumElem() int {
	n := 0
	for _, e := range m.entries {
		n += e.Val.NumElem()
	}
	return n
}

func (m Map[K, T]) ElemSort(i int, em logic.Embed) (logic.Sort, error) {
	acc := 0
	for _, e := range m.entries {
		n := e.Val.NumElem()
		if i >= acc && i < acc+n {
			return e.Val.ElemSort(i-acc, em)
		}
		acc += n
	}
	invalidIndex(i, acc)
	return logic.Sort{}, nil
}

// Combine takes the union of the keys. Values under shared keys must merge.
func (m Map[K, T]) Combine(other Composite) (Composite, bool) {
	o, ok := other.(Map[K, T])
	if !ok {
		return nil, false
	}
	res := make([]MapEntry[K, T], 0, len(m.entries)+len(o.entries))
	i, j := 0, 0
	for i < len(m.entries) && j < len(o.entries) {
		l, r := m.entries[i], o.entries[j]
		switch cmp.Compare(l.Key, r.Key) {
		case 0:
			v, ok := combineAs(l.Val, r.Val)
			if !ok {
				return nil, false
			}
			res = append(res, MapEntry[K, T]{Key: l.Key, Val: v})
			i++
			j++
		case -1:
			res = append(res, MapEntry[K, T]{Key: l.Key, Val: CloneAs(l.Val)})
			i++
		default:
			res = append(res, MapEntry[K, T]{Key: r.Key, Val: CloneAs(r.Val)})
			j++
		}
	}
	for _, e := range m.entries[i:] {
		res = append(res, MapEntry[K, T]{Key: e.Key, Val: CloneAs(e.Val)})
	}
	for _, e := range o.entries[j:] {
		res = append(res, MapEntry[K, T]{Key: e.Key, Val: CloneAs(e.Val)})
	}
	return Map[K, T]{entries: res}, true
}

func (m Map[K, T]) CombineElem(other Composite, lm LeafMerger, cur *Cursors) {
	o := sameShape(m, other)
	i, j := 0, 0
	for i < len(m.entries) && j < len(o.entries) {
		l, r := m.entries[i], o.entries[j]
		switch cmp.Compare(l.Key, r.Key) {
		case 0:
			l.Val.CombineElem(r.Val, lm, cur)
			i++
			j++
		case -1:
			cur.onlyLeft(lm, l.Val.NumElem())
			i++
		default:
			cur.onlyRight(lm, r.Val.NumElem())
			j++
		}
	}
	for _, e := range m.entries[i:] {
		cur.onlyLeft(lm, e.Val.NumElem())
	}
	for _, e := range o.entries[j:] {
		cur.onlyRight(lm, e.Val.NumElem())
	}
}

func (m Map[K, T]) Invariant(em logic.Embed, leaf LeafFunc, off *int, res *[]logic.Expr) error {
	for _, e := range m.entries {
		if err := e.Val.Invariant(em, leaf, off, res); err != nil {
			return err
		}
	}
	return nil
}

func (m Map[K, T]) Equal(other Composite) bool {
	o, ok := other.(Map[K, T])
	if !ok || len(m.entries) != len(o.entries) {
		return false
	}
	for i := range m.entries {
		if m.entries[i].Key != o.entries[i].Key || !m.entries[i].Val.Equal(o.entries[i].Val) {
			return false
		}
	}
	return true
}

func (m Map[K, T]) Clone() Composite {
	entries := make([]MapEntry[K, T], len(m.entries))
	for i, e := range m.entries {
		entries[i] = MapEntry[K, T]{Key: e.Key, Val: CloneAs(e.Val)}
	}
	return Map[K, T]{entries: entries}
}
