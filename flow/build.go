// SPDX-License-Identifier: MIT

package flow

import (
	"fmt"
	"math"
	"math/big"

	"github.com/katalvlaran/crnc/symbol"
)

var ratOne = big.NewRat(1, 1)

// Num returns the integer constant n.
func Num(n int64) *Number { return &Number{val: new(big.Rat).SetInt64(n)} }

// Frac returns the rational constant p/q. It panics if q == 0.
func Frac(p, q int64) *Number {
	if q == 0 {
		panic("flow: zero denominator")
	}
	return &Number{val: big.NewRat(p, q)}
}

// Float returns the exact binary value of f. It panics on NaN or Inf.
func Float(f float64) *Number {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		panic(fmt.Sprintf("flow: non-finite constant %v", f))
	}
	return &Number{val: r}
}

// NewFloat is Float for untrusted input: NaN and ±Inf give ErrDomain.
func NewFloat(f float64) (*Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("flow: non-finite constant %v: %w", f, ErrDomain)
	}
	return Float(f), nil
}

// Rat wraps a copy of r.
func Rat(r *big.Rat) *Number { return &Number{val: new(big.Rat).Set(r)} }

// Ref references the value of species s.
func Ref(s symbol.Symbol) *SpeciesRef { return &SpeciesRef{sym: s} }

// NewParam returns a parameter; nonneg declares it is never negative.
func NewParam(s symbol.Symbol, nonneg bool) *Param { return &Param{sym: s, nonneg: nonneg} }

// Add returns the raw sum of terms (0 when empty).
func Add(terms ...Flow) Flow {
	switch len(terms) {
	case 0:
		return Num(0)
	case 1:
		return terms[0]
	}
	return &Op{op: OpAdd, args: append([]Flow(nil), terms...)}
}

// Mul returns the raw product of factors (1 when empty).
func Mul(factors ...Flow) Flow {
	switch len(factors) {
	case 0:
		return Num(1)
	case 1:
		return factors[0]
	}
	return &Op{op: OpMul, args: append([]Flow(nil), factors...)}
}

// Sub returns a - b.
func Sub(a, b Flow) Flow { return &Op{op: OpSub, args: []Flow{a, b}} }

// Div returns a / b.
func Div(a, b Flow) Flow { return &Op{op: OpDiv, args: []Flow{a, b}} }

// Pow returns a ^ b.
func Pow(a, b Flow) Flow { return &Op{op: OpPow, args: []Flow{a, b}} }

// Neg returns -a.
func Neg(a Flow) Flow { return &Op{op: OpNeg, args: []Flow{a}} }

// Call applies a one-argument function operator.
func Call(op Operator, arg Flow) (Flow, error) {
	if !op.IsFunction() {
		return nil, fmt.Errorf("flow: %q is not a function: %w", op, ErrArity)
	}
	return &Op{op: op, args: []Flow{arg}}, nil
}

// Apply builds an operator node, validating arity.
func Apply(op Operator, args ...Flow) (Flow, error) {
	switch {
	case op == OpAdd || op == OpMul:
		if len(args) == 0 {
			return nil, fmt.Errorf("flow: %q needs arguments: %w", op, ErrArity)
		}
		if op == OpAdd {
			return Add(args...), nil
		}
		return Mul(args...), nil
	case op == OpSub || op == OpDiv || op == OpPow:
		if len(args) != 2 {
			return nil, fmt.Errorf("flow: %q takes 2 arguments, got %d: %w", op, len(args), ErrArity)
		}
		return &Op{op: op, args: []Flow{args[0], args[1]}}, nil
	case op == OpNeg || op.IsFunction():
		if len(args) != 1 {
			return nil, fmt.Errorf("flow: %q takes 1 argument, got %d: %w", op, len(args), ErrArity)
		}
		return &Op{op: op, args: []Flow{args[0]}}, nil
	}
	return nil, fmt.Errorf("flow: unknown operator %q: %w", op, ErrArity)
}
