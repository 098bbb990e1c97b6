package logic

import "fmt"

// Embed realizes sorts and function applications in a concrete logic.
// Implementations report their own failures through the returned error;
// callers propagate those errors without interpretation.
type Embed interface {
	EmbedSort(s Sort) (Sort, error)
	Embed(fn Function, args []Expr) (Expr, error)
}

// EmbedError is a failure reported by an embedding.
type EmbedError struct {
	Op  string
	Err error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("embed %s: %v", e.Op, e.Err)
}

func (e *EmbedError) Unwrap() error {
	return e.Err
}

// BoolSort realizes the boolean sort.
func BoolSort(em Embed) (Sort, error) {
	return em.EmbedSort(Bool())
}

// ArraySort realizes the array sort from index to elem.
func ArraySort(em Embed, index []Sort, elem Sort) (Sort, error) {
	return em.EmbedSort(Array(index, elem))
}

func Not(em Embed, e Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnNot}, []Expr{e})
}

func And(em Embed, es ...Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnAnd}, es)
}

func Or(em Embed, es ...Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnOr}, es)
}

// Implies builds lhs => rhs.
func Implies(em Embed, lhs, rhs Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnImplies}, []Expr{lhs, rhs})
}

// Ite builds if cond then a else b.
func Ite(em Embed, cond, a, b Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnIte}, []Expr{cond, a, b})
}

func Eq(em Embed, a, b Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnEq}, []Expr{a, b})
}

// AtMost holds when at most k of the boolean arguments are true.
func AtMost(em Embed, k int, es []Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnAtMost, K: k}, es)
}

// AtLeast holds when at least k of the boolean arguments are true.
func AtLeast(em Embed, k int, es []Expr) (Expr, error) {
	return em.Embed(Function{Kind: FnAtLeast, K: k}, es)
}

// Select reads arr at the given index expressions.
func Select(em Embed, arr Expr, index []Expr) (Expr, error) {
	args := make([]Expr, 0, len(index)+1)
	args = append(args, arr)
	args = append(args, index...)
	return em.Embed(Function{Kind: FnSelect}, args)
}
