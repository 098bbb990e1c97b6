// Package shape reads and writes YAML descriptions of composite values.
//
// A description is a tree of nodes, each naming its kind:
//
//	kind: vec
//	elems:
//	  - kind: singleton
//	    sort: Int
//	  - kind: choice
//	    alts:
//	      ok: {kind: bool}
//	      err: {kind: unit}
//
// Sorts use SMT-LIB notation: Bool, Int, Real, (_ BitVec 32) and
// (Array Int Bool).
package shape
