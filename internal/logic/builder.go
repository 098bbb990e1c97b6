package logic

import (
	"github.com/pkg/errors"
)

// Builder is the reference Embed. It builds App terms and checks that every
// application is well sorted.
type Builder struct {
	// Theories restricts the sort kinds the builder accepts.
	// A nil map accepts every kind.
	Theories map[SortKind]bool
}

// NewBuilder creates a builder accepting every sort kind.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewRestrictedBuilder creates a builder that only accepts the given kinds.
func NewRestrictedBuilder(kinds ...SortKind) *Builder {
	theories := make(map[SortKind]bool, len(kinds))
	for _, k := range kinds {
		theories[k] = true
	}
	return &Builder{Theories: theories}
}

func (b *Builder) EmbedSort(s Sort) (Sort, error) {
	if err := b.checkSort(s); err != nil {
		return Sort{}, &EmbedError{Op: "sort", Err: err}
	}
	return s, nil
}

func (b *Builder) checkSort(s Sort) error {
	if b.Theories != nil && !b.Theories[s.Kind] {
		return errors.Errorf("unsupported sort %s", s)
	}
	switch s.Kind {
	case KindBitVec:
		if s.Width <= 0 {
			return errors.Errorf("invalid bit-vector width %d", s.Width)
		}
	case KindArray:
		if len(s.Index) == 0 || s.Elem == nil {
			return errors.Errorf("malformed array sort %s", s)
		}
		for _, idx := range s.Index {
			if err := b.checkSort(idx); err != nil {
				return errors.Wrapf(err, "array index of %s", s)
			}
		}
		if err := b.checkSort(*s.Elem); err != nil {
			return errors.Wrapf(err, "array element of %s", s)
		}
	case KindBool, KindInt, KindReal:
	default:
		return errors.Errorf("unknown sort kind %d", s.Kind)
	}
	return nil
}

func (b *Builder) Embed(fn Function, args []Expr) (Expr, error) {
	srt, err := b.resultSort(fn, args)
	if err != nil {
		return nil, &EmbedError{Op: fn.String(), Err: err}
	}
	cp := make([]Expr, len(args))
	copy(cp, args)
	return App{Fn: fn, Args: cp, S: srt}, nil
}

func (b *Builder) resultSort(fn Function, args []Expr) (Sort, error) {
	switch fn.Kind {
	case FnNot:
		if len(args) != 1 {
			return Sort{}, errors.Errorf("expected 1 argument, got %d", len(args))
		}
		return Bool(), requireBool(args)
	case FnAnd, FnOr:
		return Bool(), requireBool(args)
	case FnImplies:
		if len(args) != 2 {
			return Sort{}, errors.Errorf("expected 2 arguments, got %d", len(args))
		}
		return Bool(), requireBool(args)
	case FnAtMost, FnAtLeast:
		if fn.K < 0 {
			return Sort{}, errors.Errorf("negative bound %d", fn.K)
		}
		return Bool(), requireBool(args)
	case FnIte:
		if len(args) != 3 {
			return Sort{}, errors.Errorf("expected 3 arguments, got %d", len(args))
		}
		if !args[0].Sort().Equal(Bool()) {
			return Sort{}, errors.Errorf("condition %s is not boolean", args[0])
		}
		if !args[1].Sort().Equal(args[2].Sort()) {
			return Sort{}, errors.Errorf("branches differ in sort: %s vs %s", args[1].Sort(), args[2].Sort())
		}
		return args[1].Sort(), nil
	case FnEq:
		if len(args) != 2 {
			return Sort{}, errors.Errorf("expected 2 arguments, got %d", len(args))
		}
		if !args[0].Sort().Equal(args[1].Sort()) {
			return Sort{}, errors.Errorf("operands differ in sort: %s vs %s", args[0].Sort(), args[1].Sort())
		}
		return Bool(), nil
	case FnSelect:
		if len(args) < 2 {
			return Sort{}, errors.Errorf("select needs an array and at least one index")
		}
		arr := args[0].Sort()
		if arr.Kind != KindArray {
			return Sort{}, errors.Errorf("select on non-array %s", arr)
		}
		if len(arr.Index) != len(args)-1 {
			return Sort{}, errors.Errorf("array %s takes %d indices, got %d", arr, len(arr.Index), len(args)-1)
		}
		for i, idx := range args[1:] {
			if !idx.Sort().Equal(arr.Index[i]) {
				return Sort{}, errors.Errorf("index %d has sort %s, want %s", i, idx.Sort(), arr.Index[i])
			}
		}
		return *arr.Elem, nil
	default:
		return Sort{}, errors.Errorf("unknown function %d", fn.Kind)
	}
}

func requireBool(args []Expr) error {
	for i, arg := range args {
		if !arg.Sort().Equal(Bool()) {
			return errors.Errorf("argument %d (%s) is not boolean", i, arg)
		}
	}
	return nil
}
