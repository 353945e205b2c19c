// SPDX-License-Identifier: MIT

package flow

import (
	"math/big"
	"sort"
)

// maxFoldExponent bounds exact integer powers of rationals during folding.
const maxFoldExponent = 256

// Normalize returns the canonical simplified form of f.
//
// Implementation:
//   - Stage 1: normalize arguments bottom-up.
//   - Stage 2: rewrite neg/sub/div into mul/add/pow form.
//   - Stage 3: flatten nested sums and products, fold numeric constants,
//     collect like terms (sum) and like bases (product), sort by canonical key.
//   - Stage 4: fold functions whose result is exact (exp 0, log 1, sqrt of a
//     perfect square, abs of a number).
//
// Determinism:
//   - Operand order depends only on variant-based keys, never on map order.
//
// Complexity:
//   - Time O(n log n) per node in the number of operands.
func Normalize(f Flow) Flow {
	op, ok := f.(*Op)
	if !ok {
		return f
	}
	args := make([]Flow, len(op.args))
	for i, a := range op.args {
		args[i] = Normalize(a)
	}

	switch op.op {
	case OpAdd:
		return normAdd(args)
	case OpSub:
		return normAdd([]Flow{args[0], normMul([]Flow{Num(-1), args[1]})})
	case OpNeg:
		return normMul([]Flow{Num(-1), args[0]})
	case OpMul:
		return normMul(args)
	case OpDiv:
		return normDiv(args[0], args[1])
	case OpPow:
		return normPow(args[0], args[1])
	}
	return normCall(op.op, args[0])
}

// Equal reports whether a and b have the same normal form.
func Equal(a, b Flow) bool { return Normalize(a).key() == Normalize(b).key() }

// Value returns the statically known numeric value of f, if any.
func Value(f Flow) (*big.Rat, bool) {
	if n, ok := Normalize(f).(*Number); ok {
		return n.Rat(), true
	}
	return nil, false
}

// IsZero reports whether f normalizes to the constant 0.
func IsZero(f Flow) bool {
	n, ok := Normalize(f).(*Number)
	return ok && n.IsZero()
}

func flatten(op Operator, args []Flow) []Flow {
	out := make([]Flow, 0, len(args))
	for _, a := range args {
		if inner, ok := a.(*Op); ok && inner.op == op {
			out = append(out, inner.args...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// splitCoef separates a leading numeric factor from a normalized term.
func splitCoef(t Flow) (*big.Rat, Flow) {
	if m, ok := t.(*Op); ok && m.op == OpMul {
		if n, ok := m.args[0].(*Number); ok {
			rest := m.args[1:]
			if len(rest) == 1 {
				return n.val, rest[0]
			}
			return n.val, &Op{op: OpMul, args: rest}
		}
	}
	return ratOne, t
}

// scaleTerm rebuilds coef*rest in normalized shape.
func scaleTerm(coef *big.Rat, rest Flow) Flow {
	if coef.Cmp(ratOne) == 0 {
		return rest
	}
	c := &Number{val: new(big.Rat).Set(coef)}
	if m, ok := rest.(*Op); ok && m.op == OpMul {
		return &Op{op: OpMul, args: append([]Flow{c}, m.args...)}
	}
	return &Op{op: OpMul, args: []Flow{c, rest}}
}

func normAdd(args []Flow) Flow {
	type group struct {
		coef *big.Rat
		rest Flow
	}
	sum := new(big.Rat)
	groups := make(map[string]*group)
	var keys []string

	for _, t := range flatten(OpAdd, args) {
		if n, ok := t.(*Number); ok {
			sum.Add(sum, n.val)
			continue
		}
		c, rest := splitCoef(t)
		k := rest.key()
		g, seen := groups[k]
		if !seen {
			g = &group{coef: new(big.Rat), rest: rest}
			groups[k] = g
			keys = append(keys, k)
		}
		g.coef.Add(g.coef, c)
	}
	sort.Strings(keys)

	terms := make([]Flow, 0, len(keys)+1)
	for _, k := range keys {
		g := groups[k]
		if g.coef.Sign() == 0 {
			continue
		}
		terms = append(terms, scaleTerm(g.coef, g.rest))
	}
	if sum.Sign() != 0 {
		terms = append(terms, &Number{val: sum})
	}

	switch len(terms) {
	case 0:
		return Num(0)
	case 1:
		return terms[0]
	}
	return &Op{op: OpAdd, args: terms}
}

// splitPow separates base and numeric exponent of a normalized factor.
func splitPow(f Flow) (Flow, *big.Rat) {
	if p, ok := f.(*Op); ok && p.op == OpPow {
		if e, ok := p.args[1].(*Number); ok {
			return p.args[0], e.val
		}
	}
	return f, ratOne
}

func normMul(args []Flow) Flow {
	type power struct {
		base Flow
		exp  *big.Rat
	}
	coef := big.NewRat(1, 1)
	powers := make(map[string]*power)
	var keys []string

	for _, f := range flatten(OpMul, args) {
		if n, ok := f.(*Number); ok {
			coef.Mul(coef, n.val)
			continue
		}
		base, exp := splitPow(f)
		k := base.key()
		p, seen := powers[k]
		if !seen {
			p = &power{base: base, exp: new(big.Rat)}
			powers[k] = p
			keys = append(keys, k)
		}
		p.exp.Add(p.exp, exp)
	}
	if coef.Sign() == 0 {
		return Num(0)
	}
	sort.Strings(keys)

	factors := make([]Flow, 0, len(keys))
	for _, k := range keys {
		p := powers[k]
		if p.exp.Sign() == 0 {
			continue
		}
		if n, ok := p.base.(*Number); ok && p.exp.IsInt() {
			if v, ok := ratPow(n.val, p.exp); ok {
				coef.Mul(coef, v)
				continue
			}
		}
		if p.exp.Cmp(ratOne) == 0 {
			factors = append(factors, p.base)
			continue
		}
		factors = append(factors, &Op{op: OpPow, args: []Flow{p.base, &Number{val: p.exp}}})
	}
	if coef.Sign() == 0 {
		return Num(0)
	}

	switch {
	case len(factors) == 0:
		return &Number{val: coef}
	case coef.Cmp(ratOne) == 0 && len(factors) == 1:
		return factors[0]
	case coef.Cmp(ratOne) == 0:
		return &Op{op: OpMul, args: factors}
	}
	return &Op{op: OpMul, args: append([]Flow{&Number{val: coef}}, factors...)}
}

func normDiv(a, b Flow) Flow {
	if n, ok := b.(*Number); ok && n.IsZero() {
		return &Op{op: OpDiv, args: []Flow{a, b}}
	}
	return normMul([]Flow{a, normPow(b, Num(-1))})
}

func normPow(a, b Flow) Flow {
	bn, bNum := b.(*Number)
	if bNum && bn.IsZero() {
		return Num(1)
	}
	if bNum && bn.IsOne() {
		return a
	}
	if an, ok := a.(*Number); ok {
		if an.IsOne() {
			return Num(1)
		}
		if bNum && bn.IsInt() {
			if v, ok := ratPow(an.val, bn.val); ok {
				return &Number{val: v}
			}
		}
	}
	if bNum && bn.IsInt() {
		if inner, ok := a.(*Op); ok {
			switch inner.op {
			case OpPow:
				if e, ok := inner.args[1].(*Number); ok {
					return normPow(inner.args[0], &Number{val: new(big.Rat).Mul(e.val, bn.val)})
				}
			case OpMul:
				parts := make([]Flow, len(inner.args))
				for i, f := range inner.args {
					parts[i] = normPow(f, bn)
				}
				return normMul(parts)
			}
		}
	}
	return &Op{op: OpPow, args: []Flow{a, b}}
}

func normCall(op Operator, a Flow) Flow {
	if n, ok := a.(*Number); ok {
		switch op {
		case OpExp:
			if n.IsZero() {
				return Num(1)
			}
		case OpLog:
			if n.IsOne() {
				return Num(0)
			}
		case OpAbs:
			return &Number{val: new(big.Rat).Abs(n.val)}
		case OpSqrt:
			if v, ok := ratSqrt(n.val); ok {
				return &Number{val: v}
			}
		}
	}
	if op == OpAbs {
		if inner, ok := a.(*Op); ok && inner.op == OpAbs {
			return a
		}
	}
	return &Op{op: op, args: []Flow{a}}
}

// ratPow computes r^e for an integer e, refusing 0^negative and huge exponents.
func ratPow(r, e *big.Rat) (*big.Rat, bool) {
	if !e.IsInt() || !e.Num().IsInt64() {
		return nil, false
	}
	n := e.Num().Int64()
	if n > maxFoldExponent || n < -maxFoldExponent {
		return nil, false
	}
	if n < 0 {
		if r.Sign() == 0 {
			return nil, false
		}
		r = new(big.Rat).Inv(r)
		n = -n
	}
	num := new(big.Int).Exp(r.Num(), big.NewInt(n), nil)
	den := new(big.Int).Exp(r.Denom(), big.NewInt(n), nil)
	return new(big.Rat).SetFrac(num, den), true
}

// ratSqrt returns the exact square root of a nonnegative perfect-square rational.
func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num := new(big.Int).Sqrt(r.Num())
	den := new(big.Int).Sqrt(r.Denom())
	if new(big.Int).Mul(num, num).Cmp(r.Num()) != 0 || new(big.Int).Mul(den, den).Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}
