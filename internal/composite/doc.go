// Package composite maps structured program values onto flat sequences of
// logic leaves.
//
// Every shape (scalars, vectors, ordered maps, options, tagged choices,
// arrays, tuples, unit) implements Composite. A value's leaves are numbered
// 0..NumElem()-1 in a fixed traversal order, and that same order is used by
// ElemSort, CombineElem and Invariant, so a caller can lay out, merge and
// constrain a flat expression array without ever looking inside the value.
//
// Combine is partial. A false second result means the two values cannot be
// represented by one encoding and must be kept apart; it is not an error.
// Out-of-range leaf indices are caller bugs and panic.
package composite
