// Package transform describes how a flat array of logic expressions is
// computed from a base array, without materializing it.
//
// A Transformation is an immutable node in a shared DAG. Nodes hold no base
// array; every evaluation takes it as an argument. The smart constructors
// normalize trivial cases (empty views, full views, nested or single-part
// concatenations) so repeated composition does not grow the graph.
//
// Map nodes memoize their output for the last base array they were
// evaluated against. Callers that evaluate a graph against a different base
// array must call ClearCache first; the cache is guarded by a mutex, but
// clearing it while another goroutine evaluates against a different base
// array is still a caller error.
package transform
