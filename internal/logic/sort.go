package logic

import (
	"fmt"
	"strings"
)

// SortKind identifies the theory a sort belongs to.
type SortKind int

const (
	_ SortKind = iota
	KindBool
	KindInt
	KindReal
	KindBitVec
	KindArray
)

func (k SortKind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindReal:
		return "Real"
	case KindBitVec:
		return "BitVec"
	case KindArray:
		return "Array"
	default:
		return "?"
	}
}

// Sort is the type of a logic expression.
// Width is only meaningful for bit-vectors; Index and Elem only for arrays.
type Sort struct {
	Kind  SortKind
	Width int
	Index []Sort
	Elem  *Sort
}

// Bool returns the boolean sort.
func Bool() Sort { return Sort{Kind: KindBool} }

// Int returns the unbounded integer sort.
func Int() Sort { return Sort{Kind: KindInt} }

// Real returns the real sort.
func Real() Sort { return Sort{Kind: KindReal} }

// BitVec returns the bit-vector sort of the given width.
func BitVec(width int) Sort { return Sort{Kind: KindBitVec, Width: width} }

// Array returns the sort of arrays from the index sorts to elem.
func Array(index []Sort, elem Sort) Sort {
	idx := make([]Sort, len(index))
	copy(idx, index)
	return Sort{Kind: KindArray, Index: idx, Elem: &elem}
}

// Equal reports whether two sorts are identical.
func (s Sort) Equal(other Sort) bool {
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case KindBitVec:
		return s.Width == other.Width
	case KindArray:
		if len(s.Index) != len(other.Index) {
			return false
		}
		for i := range s.Index {
			if !s.Index[i].Equal(other.Index[i]) {
				return false
			}
		}
		if s.Elem == nil || other.Elem == nil {
			return s.Elem == other.Elem
		}
		return s.Elem.Equal(*other.Elem)
	default:
		return true
	}
}

func (s Sort) String() string {
	switch s.Kind {
	case KindBitVec:
		return fmt.Sprintf("(_ BitVec %d)", s.Width)
	case KindArray:
		parts := make([]string, 0, len(s.Index)+1)
		for _, idx := range s.Index {
			parts = append(parts, idx.String())
		}
		elem := "?"
		if s.Elem != nil {
			elem = s.Elem.String()
		}
		parts = append(parts, elem)
		return "(Array " + strings.Join(parts, " ") + ")"
	default:
		return s.Kind.String()
	}
}
