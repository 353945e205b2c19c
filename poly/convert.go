// SPDX-License-Identifier: MIT

package poly

import "github.com/katalvlaran/crnc/flow"

// maxPower bounds the integer exponents that FromFlow expands.
const maxPower = 64

// FromFlow converts f into polynomial form.
//
// Behavior highlights:
//   - Species-free sub-expressions become coefficients, whatever their shape.
//   - Sums and products are distributed; x^n is expanded for integer 0 ≤ n ≤ 64.
//   - Division by a species-containing expression, non-integer or negative
//     powers of species, and functions of species are rejected.
//
// Errors:
//   - *NotPolynomialError (wraps ErrNotPolynomial) naming the sub-expression.
func FromFlow(f flow.Flow) (Poly, error) {
	return fromNormal(flow.Normalize(f))
}

func fromNormal(f flow.Flow) (Poly, error) {
	if !flow.HasSpecies(f) {
		return Constant(f), nil
	}
	switch v := f.(type) {
	case *flow.SpeciesRef:
		return Var(v.Symbol()), nil
	case *flow.Op:
		return fromOp(v)
	}
	return Poly{}, &NotPolynomialError{Expr: f, Reason: "unsupported node"}
}

func fromOp(o *flow.Op) (Poly, error) {
	args := o.Args()
	switch o.Operator() {
	case flow.OpAdd:
		out := Zero()
		for _, a := range args {
			p, err := fromNormal(a)
			if err != nil {
				return Poly{}, err
			}
			out = out.Add(p)
		}
		return out, nil
	case flow.OpMul:
		out := Constant(flow.Num(1))
		for _, a := range args {
			p, err := fromNormal(a)
			if err != nil {
				return Poly{}, err
			}
			out = out.Mul(p)
		}
		return out, nil
	case flow.OpSub:
		a, err := fromNormal(args[0])
		if err != nil {
			return Poly{}, err
		}
		b, err := fromNormal(args[1])
		if err != nil {
			return Poly{}, err
		}
		return a.Add(b.Neg()), nil
	case flow.OpNeg:
		a, err := fromNormal(args[0])
		if err != nil {
			return Poly{}, err
		}
		return a.Neg(), nil
	case flow.OpPow:
		n, ok := args[1].(*flow.Number)
		if !ok || !n.IsInt() || n.Sign() < 0 || !n.Rat().Num().IsInt64() || n.Rat().Num().Int64() > maxPower {
			return Poly{}, &NotPolynomialError{Expr: o, Reason: "exponent must be a small nonnegative integer"}
		}
		base, err := fromNormal(args[0])
		if err != nil {
			return Poly{}, err
		}
		return base.PowInt(int(n.Rat().Num().Int64())), nil
	case flow.OpDiv:
		return Poly{}, &NotPolynomialError{Expr: o, Reason: "division by a species or by zero"}
	}
	return Poly{}, &NotPolynomialError{Expr: o, Reason: "function of a species"}
}
