package transform

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-set/v2"

	"github.com/hguenther/smtrs/internal/logic"
)

// Kind identifies the node type of a Transformation.
type Kind int

const (
	_ Kind = iota
	KindID
	KindView
	KindConcat
	KindConstant
	KindMap
	KindWrite
	KindMapByElem
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "Id"
	case KindView:
		return "View"
	case KindConcat:
		return "Concat"
	case KindConstant:
		return "Constant"
	case KindMap:
		return "Map"
	case KindWrite:
		return "Write"
	case KindMapByElem:
		return "MapByElem"
	default:
		return "?"
	}
}

// MapFunc computes a whole output array from the parent's whole output.
// It must be pure: its result is cached.
type MapFunc func(in []logic.Expr, em logic.Embed) ([]logic.Expr, error)

// ElemFunc computes one output slot from the parent's slot at idx. It also
// receives the base array for reading auxiliary slots.
type ElemFunc func(base []logic.Expr, idx int, e logic.Expr, em logic.Embed) (logic.Expr, error)

// Transformation is a node of the DAG. Nodes are shared by pointer.
type Transformation struct {
	kind Kind
	size int

	// View: offset into children[0].
	// Write: write offset and replaced size; children are source, target.
	offset   int
	replaced int

	children []*Transformation
	consts   []logic.Expr

	mapFn  MapFunc
	elemFn ElemFunc
	cache  *mapCache
}

type mapCache struct {
	mu  sync.Mutex
	out []logic.Expr
}

// Kind returns the node type.
func (t *Transformation) Kind() Kind { return t.kind }

// Size returns the length of the array the node describes.
func (t *Transformation) Size() int { return t.size }

// Children returns the direct sub-nodes.
func (t *Transformation) Children() []*Transformation { return t.children }

var empty = &Transformation{kind: KindID}

// Id is the identity over the first n base slots.
func Id(n int) *Transformation {
	if n == 0 {
		return empty
	}
	return &Transformation{kind: KindID, size: n}
}

// View selects slots [off, off+n) of t.
func View(off, n int, t *Transformation) *Transformation {
	if off < 0 || n < 0 || off+n > t.size {
		panic(fmt.Sprintf("transform: view [%d, %d) out of range [0, %d)", off, off+n, t.size))
	}
	if n == 0 {
		return empty
	}
	if off == 0 && n == t.size {
		return t
	}
	return &Transformation{kind: KindView, size: n, offset: off, children: []*Transformation{t}}
}

// Concat concatenates parts in order. Nested concatenations are inlined and
// empty parts dropped.
func Concat(parts ...*Transformation) *Transformation {
	var flat []*Transformation
	size := 0
	for _, p := range parts {
		if p.size == 0 {
			continue
		}
		size += p.size
		if p.kind == KindConcat {
			flat = append(flat, p.children...)
		} else {
			flat = append(flat, p)
		}
	}
	switch len(flat) {
	case 0:
		return empty
	case 1:
		return flat[0]
	}
	return &Transformation{kind: KindConcat, size: size, children: flat}
}

// Constant is a fixed array independent of the base array.
func Constant(exprs []logic.Expr) *Transformation {
	if len(exprs) == 0 {
		return empty
	}
	cp := make([]logic.Expr, len(exprs))
	copy(cp, exprs)
	return &Transformation{kind: KindConstant, size: len(cp), consts: cp}
}

// Map applies fn to the whole output of parent, producing size slots.
func Map(size int, fn MapFunc, parent *Transformation) *Transformation {
	return &Transformation{
		kind:     KindMap,
		size:     size,
		mapFn:    fn,
		children: []*Transformation{parent},
		cache:    &mapCache{},
	}
}

// Write replaces the replaced slots of target starting at off with the
// output of source.
func Write(off, replaced int, source, target *Transformation) *Transformation {
	if off < 0 || replaced < 0 || off+replaced > target.size {
		panic(fmt.Sprintf("transform: write [%d, %d) out of range [0, %d)", off, off+replaced, target.size))
	}
	return &Transformation{
		kind:     KindWrite,
		size:     target.size - replaced + source.size,
		offset:   off,
		replaced: replaced,
		children: []*Transformation{source, target},
	}
}

// MapByElem applies fn to every slot of parent.
func MapByElem(fn ElemFunc, parent *Transformation) *Transformation {
	return &Transformation{
		kind:     KindMapByElem,
		size:     parent.size,
		elemFn:   fn,
		children: []*Transformation{parent},
	}
}

// ClearCache drops the cached output of every Map node reachable from t.
func (t *Transformation) ClearCache() {
	seen := set.New[*Transformation](0)
	t.clearCache(seen)
}

func (t *Transformation) clearCache(seen *set.Set[*Transformation]) {
	if !seen.Insert(t) {
		return
	}
	if t.cache != nil {
		t.cache.mu.Lock()
		t.cache.out = nil
		t.cache.mu.Unlock()
	}
	for _, c := range t.children {
		c.clearCache(seen)
	}
}

// Get returns slot idx of the array t describes over base.
func (t *Transformation) Get(base []logic.Expr, idx int, em logic.Embed) (logic.Expr, error) {
	if idx < 0 || idx >= t.size {
		panic(fmt.Sprintf("transform: index %d out of range [0, %d) of %s", idx, t.size, t.kind))
	}
	switch t.kind {
	case KindID:
		return base[idx], nil

	case KindView:
		return t.children[0].Get(base, t.offset+idx, em)

	case KindConcat:
		acc := 0
		for _, c := range t.children {
			if idx < acc+c.size {
				return c.Get(base, idx-acc, em)
			}
			acc += c.size
		}

	case KindConstant:
		return t.consts[idx], nil

	case KindMap:
		out, err := t.mapped(base, em)
		if err != nil {
			return nil, err
		}
		return out[idx], nil

	case KindWrite:
		src, trg := t.children[0], t.children[1]
		switch {
		case idx < t.offset:
			return trg.Get(base, idx, em)
		case idx < t.offset+src.size:
			return src.Get(base, idx-t.offset, em)
		default:
			return trg.Get(base, idx-src.size+t.replaced, em)
		}

	case KindMapByElem:
		e, err := t.children[0].Get(base, idx, em)
		if err != nil {
			return nil, err
		}
		return t.elemFn(base, idx, e, em)
	}
	panic(fmt.Sprintf("transform: malformed %s node", t.kind))
}

// mapped returns the cached output of a Map node, computing it on a miss.
func (t *Transformation) mapped(base []logic.Expr, em logic.Embed) ([]logic.Expr, error) {
	t.cache.mu.Lock()
	defer t.cache.mu.Unlock()
	if t.cache.out != nil {
		return t.cache.out, nil
	}
	parent := t.children[0]
	in, err := parent.ToSlice(base, 0, parent.size, em)
	if err != nil {
		return nil, err
	}
	out, err := t.mapFn(in, em)
	if err != nil {
		return nil, err
	}
	if len(out) != t.size {
		panic(fmt.Sprintf("transform: map function produced %d slots, want %d", len(out), t.size))
	}
	t.cache.out = out
	return out, nil
}

// AsSlice returns slots [off, off+n) as a view into existing storage when
// they lie in one contiguous region. The result must not be modified.
func (t *Transformation) AsSlice(base []logic.Expr, off, n int) ([]logic.Expr, bool) {
	if off < 0 || n < 0 || off+n > t.size {
		panic(fmt.Sprintf("transform: slice [%d, %d) out of range [0, %d)", off, off+n, t.size))
	}
	switch t.kind {
	case KindID:
		return base[off : off+n], true

	case KindView:
		return t.children[0].AsSlice(base, t.offset+off, n)

	case KindConcat:
		acc := 0
		for _, c := range t.children {
			if off < acc+c.size {
				if off-acc+n > c.size {
					return nil, false
				}
				return c.AsSlice(base, off-acc, n)
			}
			acc += c.size
		}
		return nil, n == 0

	case KindConstant:
		return t.consts[off : off+n], true

	case KindMap:
		t.cache.mu.Lock()
		defer t.cache.mu.Unlock()
		if t.cache.out == nil {
			return nil, false
		}
		return t.cache.out[off : off+n], true

	case KindWrite:
		src, trg := t.children[0], t.children[1]
		switch {
		case off+n <= t.offset:
			return trg.AsSlice(base, off, n)
		case off >= t.offset && off+n <= t.offset+src.size:
			return src.AsSlice(base, off-t.offset, n)
		case off >= t.offset+src.size:
			return trg.AsSlice(base, off-src.size+t.replaced, n)
		}
	}
	return nil, false
}

// ToSlice returns slots [off, off+n), sharing storage when AsSlice can and
// otherwise building a fresh slice slot by slot.
func (t *Transformation) ToSlice(base []logic.Expr, off, n int, em logic.Embed) ([]logic.Expr, error) {
	if s, ok := t.AsSlice(base, off, n); ok {
		return s, nil
	}
	out := make([]logic.Expr, n)
	for i := 0; i < n; i++ {
		e, err := t.Get(base, off+i, em)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// Materialize evaluates the whole array t describes over base.
func (t *Transformation) Materialize(base []logic.Expr, em logic.Embed) ([]logic.Expr, error) {
	return t.ToSlice(base, 0, t.size, em)
}
