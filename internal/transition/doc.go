// Package transition implements value-level operations that keep a
// composite value and the transformation computing its leaves in step.
//
// A transition receives a value together with a transformation describing
// that value's leaves over some base array, and returns the new value with a
// transformation describing the new value's leaves over the same base array.
package transition
