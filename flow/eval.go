// SPDX-License-Identifier: MIT

package flow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/crnc/symbol"
)

// Env binds species and parameters to numeric values for Eval.
// The zero Env is empty and usable.
type Env struct {
	values map[uint64]float64
}

// NewEnv returns an empty Env.
func NewEnv() *Env { return &Env{values: make(map[uint64]float64)} }

// Bind assigns v to sym, replacing any earlier binding.
func (e *Env) Bind(sym symbol.Symbol, v float64) *Env {
	if e.values == nil {
		e.values = make(map[uint64]float64)
	}
	e.values[sym.Variant()] = v
	return e
}

// Lookup returns the value bound to sym.
func (e *Env) Lookup(sym symbol.Symbol) (float64, bool) {
	if e == nil {
		return 0, false
	}
	v, ok := e.values[sym.Variant()]
	return v, ok
}

// Eval computes the numeric value of f under env (which may be nil).
// Errors: *NotNumericError for unbound symbols, ErrDomain for invalid
// operations.
func Eval(f Flow, env *Env) (float64, error) {
	switch v := f.(type) {
	case *Number:
		return v.Float64(), nil
	case *SpeciesRef:
		if x, ok := env.Lookup(v.sym); ok {
			return x, nil
		}
		return 0, &NotNumericError{Sym: v.sym}
	case *Param:
		if x, ok := env.Lookup(v.sym); ok {
			return x, nil
		}
		return 0, &NotNumericError{Sym: v.sym}
	case *Op:
		return evalOp(v, env)
	}
	return 0, fmt.Errorf("flow: unexpected node %T: %w", f, ErrDomain)
}

func evalOp(o *Op, env *Env) (float64, error) {
	xs := make([]float64, len(o.args))
	for i, a := range o.args {
		x, err := Eval(a, env)
		if err != nil {
			return 0, err
		}
		xs[i] = x
	}

	switch o.op {
	case OpAdd:
		acc := 0.0
		for _, x := range xs {
			acc += x
		}
		return acc, nil
	case OpMul:
		acc := 1.0
		for _, x := range xs {
			acc *= x
		}
		return acc, nil
	case OpSub:
		return xs[0] - xs[1], nil
	case OpNeg:
		return -xs[0], nil
	case OpDiv:
		if xs[1] == 0 {
			return 0, fmt.Errorf("flow: division by zero in %s: %w", o, ErrDomain)
		}
		return xs[0] / xs[1], nil
	case OpPow:
		r := math.Pow(xs[0], xs[1])
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, fmt.Errorf("flow: %s is not finite: %w", o, ErrDomain)
		}
		return r, nil
	case OpExp:
		return math.Exp(xs[0]), nil
	case OpLog:
		if xs[0] <= 0 {
			return 0, fmt.Errorf("flow: log of %g: %w", xs[0], ErrDomain)
		}
		return math.Log(xs[0]), nil
	case OpSqrt:
		if xs[0] < 0 {
			return 0, fmt.Errorf("flow: sqrt of %g: %w", xs[0], ErrDomain)
		}
		return math.Sqrt(xs[0]), nil
	case OpAbs:
		return math.Abs(xs[0]), nil
	}
	return 0, fmt.Errorf("flow: unknown operator %q: %w", o.op, ErrDomain)
}
