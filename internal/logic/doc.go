// Package logic defines the embedding interface between the state-encoding
// layer and a decision procedure.
//
// The encoding layer never builds solver terms directly. It asks an Embed
// to realize sorts and function applications, and treats the returned Expr
// values as opaque leaves. Builder is the reference embedding: it constructs
// a small sort-checked term tree and is what the tests and the command line
// tool use. Evaluator gives those terms a concrete meaning under a Model so
// that encodings can be checked without a solver.
//
// Supported functions:
//   - boolean connectives: not, and, or, implies, ite, eq
//   - cardinality: at-most-k and at-least-k over boolean arguments
//   - array select with one or more index arguments
package logic
