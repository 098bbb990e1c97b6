package transition

import "github.com/hguenther/smtrs/internal/composite"

// OptRef holds either a borrowed value or one the holder owns. Borrowed
// values must not be modified; IntoOwned clones them first.
type OptRef[T composite.Composite] struct {
	ref   *T
	owned T
}

// Borrowed wraps a value the holder does not own.
func Borrowed[T composite.Composite](v *T) OptRef[T] {
	return OptRef[T]{ref: v}
}

// Owned wraps a value the holder may modify.
func Owned[T composite.Composite](v T) OptRef[T] {
	return OptRef[T]{owned: v}
}

// IsOwned reports whether the value is owned.
func (r OptRef[T]) IsOwned() bool { return r.ref == nil }

// Get returns the value for reading.
func (r OptRef[T]) Get() T {
	if r.ref != nil {
		return *r.ref
	}
	return r.owned
}

// IntoOwned returns a value the caller may modify, cloning a borrowed one.
func (r OptRef[T]) IntoOwned() T {
	if r.ref != nil {
		return composite.CloneAs(*r.ref)
	}
	return r.owned
}
