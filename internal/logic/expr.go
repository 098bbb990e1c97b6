package logic

import (
	"fmt"
	"strings"
)

// Expr is an opaque logic expression produced by an Embed.
type Expr interface {
	isExpr()
	Sort() Sort
	String() string
}

// Var is a free variable of a fixed sort.
type Var struct {
	Name string
	S    Sort
}

func (Var) isExpr() {}
func (v Var) Sort() Sort { return v.S }
func (v Var) String() string { return v.Name }

// BoolConst is a boolean literal.
type BoolConst struct {
	Val bool
}

func (BoolConst) isExpr() {}
func (BoolConst) Sort() Sort { return Bool() }
func (c BoolConst) String() string {
	return fmt.Sprintf("%t", c.Val)
}

// IntConst is an integer literal.
type IntConst struct {
	Val int64
}

func (IntConst) isExpr() {}
func (IntConst) Sort() Sort { return Int() }
func (c IntConst) String() string {
	return fmt.Sprintf("%d", c.Val)
}

// FuncKind enumerates the function symbols an Embed must support.
type FuncKind int

const (
	_ FuncKind = iota
	FnNot
	FnAnd
	FnOr
	FnImplies
	FnIte
	FnEq
	FnAtMost
	FnAtLeast
	FnSelect
)

// Function is a function symbol. K is the bound of the cardinality
// functions and is ignored by the others.
type Function struct {
	Kind FuncKind
	K    int
}

func (f Function) String() string {
	switch f.Kind {
	case FnNot:
		return "not"
	case FnAnd:
		return "and"
	case FnOr:
		return "or"
	case FnImplies:
		return "=>"
	case FnIte:
		return "ite"
	case FnEq:
		return "="
	case FnAtMost:
		return fmt.Sprintf("(_ at-most %d)", f.K)
	case FnAtLeast:
		return fmt.Sprintf("(_ at-least %d)", f.K)
	case FnSelect:
		return "select"
	default:
		return "?"
	}
}

// App is the application of a function symbol to arguments.
type App struct {
	Fn   Function
	Args []Expr
	S    Sort
}

func (App) isExpr() {}
func (a App) Sort() Sort { return a.S }
func (a App) String() string {
	parts := make([]string, 0, len(a.Args)+1)
	parts = append(parts, a.Fn.String())
	for _, arg := range a.Args {
		parts = append(parts, arg.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Strings renders a list of expressions, one string per element.
func Strings(exprs []Expr) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = e.String()
	}
	return out
}
