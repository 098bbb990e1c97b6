package logic

import (
	"errors"
	"fmt"
)

// ErrUnbound is returned when an expression mentions a variable the model
// does not assign.
var ErrUnbound = errors.New("unbound variable")

// Evaluator computes the concrete value of expressions under a Model.
type Evaluator struct{}

// NewEvaluator creates a new evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Eval evaluates expr in the given model.
func (ev *Evaluator) Eval(expr Expr, m *Model) (Value, error) {
	switch e := expr.(type) {
	case BoolConst:
		return BoolValue{Val: e.Val}, nil

	case IntConst:
		return IntValue{Val: e.Val}, nil

	case Var:
		val := m.Get(e.Name)
		if val == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnbound, e.Name)
		}
		return val, nil

	case App:
		return ev.evalApp(e, m)

	default:
		return nil, fmt.Errorf("cannot evaluate %T", expr)
	}
}

// EvalBool evaluates expr and requires a boolean result.
func (ev *Evaluator) EvalBool(expr Expr, m *Model) (bool, error) {
	val, err := ev.Eval(expr, m)
	if err != nil {
		return false, err
	}
	b, ok := val.(BoolValue)
	if !ok {
		return false, fmt.Errorf("%s evaluated to non-boolean %s", expr, val)
	}
	return b.Val, nil
}

func (ev *Evaluator) evalApp(e App, m *Model) (Value, error) {
	// ite only evaluates the taken branch
	if e.Fn.Kind == FnIte {
		cond, err := ev.EvalBool(e.Args[0], m)
		if err != nil {
			return nil, err
		}
		if cond {
			return ev.Eval(e.Args[1], m)
		}
		return ev.Eval(e.Args[2], m)
	}

	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		val, err := ev.Eval(arg, m)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}

	switch e.Fn.Kind {
	case FnNot:
		b, err := boolArgs(args)
		if err != nil {
			return nil, err
		}
		return BoolValue{Val: !b[0]}, nil

	case FnAnd:
		b, err := boolArgs(args)
		if err != nil {
			return nil, err
		}
		for _, v := range b {
			if !v {
				return BoolValue{Val: false}, nil
			}
		}
		return BoolValue{Val: true}, nil

	case FnOr:
		b, err := boolArgs(args)
		if err != nil {
			return nil, err
		}
		for _, v := range b {
			if v {
				return BoolValue{Val: true}, nil
			}
		}
		return BoolValue{Val: false}, nil

	case FnImplies:
		b, err := boolArgs(args)
		if err != nil {
			return nil, err
		}
		return BoolValue{Val: !b[0] || b[1]}, nil

	case FnEq:
		return BoolValue{Val: args[0].Equal(args[1])}, nil

	case FnAtMost, FnAtLeast:
		b, err := boolArgs(args)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, v := range b {
			if v {
				count++
			}
		}
		if e.Fn.Kind == FnAtMost {
			return BoolValue{Val: count <= e.Fn.K}, nil
		}
		return BoolValue{Val: count >= e.Fn.K}, nil

	case FnSelect:
		arr, ok := args[0].(ArrayValue)
		if !ok {
			return nil, fmt.Errorf("select on non-array value %s", args[0])
		}
		return arr.Lookup(args[1:]), nil
	}

	return nil, fmt.Errorf("cannot evaluate function %s", e.Fn)
}

func boolArgs(args []Value) ([]bool, error) {
	out := make([]bool, len(args))
	for i, arg := range args {
		b, ok := arg.(BoolValue)
		if !ok {
			return nil, fmt.Errorf("argument %d (%s) is not boolean", i, arg)
		}
		out[i] = b.Val
	}
	return out, nil
}
