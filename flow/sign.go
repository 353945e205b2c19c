// SPDX-License-Identifier: MIT

package flow

// Sign is the outcome of static sign analysis.
type Sign int

const (
	// SignUnknown means the sign cannot be proven statically.
	SignUnknown Sign = iota

	// SignNonneg means the flow is provably ≥ 0.
	SignNonneg

	// SignNonpos means the flow is provably ≤ 0.
	SignNonpos
)

func (s Sign) String() string {
	switch s {
	case SignNonneg:
		return "nonnegative"
	case SignNonpos:
		return "nonpositive"
	}
	return "indeterminate"
}

func (s Sign) flip() Sign {
	switch s {
	case SignNonneg:
		return SignNonpos
	case SignNonpos:
		return SignNonneg
	}
	return SignUnknown
}

// SignOf decides the sign of f without evaluating it.
//
// Rules (on the normal form):
//   - numbers by value; zero counts as nonnegative;
//   - species values are nonnegative; parameters only when declared so;
//   - sums need all terms of one sign; products and quotients multiply signs;
//   - x^n is nonnegative for even integer n or nonnegative x, nonpositive for
//     odd n and nonpositive x;
//   - exp, sqrt and abs are nonnegative; log of a number by comparison with 1.
func SignOf(f Flow) Sign { return signOf(Normalize(f)) }

func signOf(f Flow) Sign {
	switch v := f.(type) {
	case *Number:
		if v.Sign() < 0 {
			return SignNonpos
		}
		return SignNonneg
	case *SpeciesRef:
		return SignNonneg
	case *Param:
		if v.nonneg {
			return SignNonneg
		}
		return SignUnknown
	case *Op:
		return signOfOp(v)
	}
	return SignUnknown
}

func signOfOp(o *Op) Sign {
	switch o.op {
	case OpAdd:
		acc := signOf(o.args[0])
		for _, a := range o.args[1:] {
			if signOf(a) != acc {
				return SignUnknown
			}
		}
		return acc
	case OpMul, OpDiv:
		if o.op == OpDiv {
			if n, ok := o.args[1].(*Number); ok && n.IsZero() {
				return SignUnknown
			}
		}
		acc := SignNonneg
		for _, a := range o.args {
			switch signOf(a) {
			case SignUnknown:
				return SignUnknown
			case SignNonpos:
				acc = acc.flip()
			}
		}
		return acc
	case OpNeg:
		return signOf(o.args[0]).flip()
	case OpSub:
		a, b := signOf(o.args[0]), signOf(o.args[1])
		if a == SignNonneg && b == SignNonpos {
			return SignNonneg
		}
		if a == SignNonpos && b == SignNonneg {
			return SignNonpos
		}
		return SignUnknown
	case OpPow:
		base := signOf(o.args[0])
		e, ok := o.args[1].(*Number)
		if ok && e.IsInt() && e.val.Num().Bit(0) == 0 {
			return SignNonneg
		}
		if base == SignNonneg {
			return SignNonneg
		}
		if ok && e.IsInt() && base == SignNonpos {
			return SignNonpos
		}
		return SignUnknown
	case OpExp, OpSqrt, OpAbs:
		return SignNonneg
	case OpLog:
		if n, ok := o.args[0].(*Number); ok && n.Sign() > 0 {
			if n.val.Cmp(ratOne) >= 0 {
				return SignNonneg
			}
			return SignNonpos
		}
	}
	return SignUnknown
}
