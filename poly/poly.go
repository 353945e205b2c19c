// SPDX-License-Identifier: MIT

package poly

import (
	"sort"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// Poly is a sum of monomials with like terms collected, no zero terms, and
// terms in the fixed graded order. The zero value is the zero polynomial.
type Poly struct {
	terms []Monomial
}

// Zero returns the zero polynomial.
func Zero() Poly { return Poly{} }

// Constant returns the polynomial c (species-free).
func Constant(c flow.Flow) Poly { return FromMonomials(NewMonomial(c)) }

// Var returns the polynomial 1·s.
func Var(s symbol.Symbol) Poly {
	return FromMonomials(NewMonomial(flow.Num(1), Factor{Species: s, Power: 1}))
}

// FromMonomials sums ms, collecting like terms.
//
// Implementation:
//   - Stage 1: bucket monomials by factor key, keeping first-seen order of coefficients.
//   - Stage 2: each bucket's coefficient is the normalized sum of its members.
//   - Stage 3: drop zero coefficients and sort by the graded term order.
func FromMonomials(ms ...Monomial) Poly {
	type bucket struct {
		factors []Factor
		coeffs  []flow.Flow
	}
	buckets := make(map[string]*bucket, len(ms))
	var keys []string
	for _, m := range ms {
		k := m.factorKey()
		b, ok := buckets[k]
		if !ok {
			b = &bucket{factors: m.Factors}
			buckets[k] = b
			keys = append(keys, k)
		}
		b.coeffs = append(b.coeffs, m.Coeff)
	}

	terms := make([]Monomial, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		m := Monomial{Coeff: flow.Normalize(flow.Add(b.coeffs...)), Factors: b.factors}
		if m.IsZero() {
			continue
		}
		terms = append(terms, m)
	}
	sort.SliceStable(terms, func(i, j int) bool { return monomialLess(terms[i], terms[j]) })

	return Poly{terms: terms}
}

// Terms returns the monomials in canonical order.
func (p Poly) Terms() []Monomial { return append([]Monomial(nil), p.terms...) }

// Len is the number of nonzero terms.
func (p Poly) Len() int { return len(p.terms) }

// IsZero reports whether p has no terms.
func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// Add returns p + o.
func (p Poly) Add(o Poly) Poly {
	ms := make([]Monomial, 0, len(p.terms)+len(o.terms))
	ms = append(ms, p.terms...)
	ms = append(ms, o.terms...)
	return FromMonomials(ms...)
}

// Mul returns p · o by full distribution.
func (p Poly) Mul(o Poly) Poly {
	ms := make([]Monomial, 0, len(p.terms)*len(o.terms))
	for _, a := range p.terms {
		for _, b := range o.terms {
			ms = append(ms, a.Mul(b))
		}
	}
	return FromMonomials(ms...)
}

// Scale multiplies every coefficient by the species-free flow c.
func (p Poly) Scale(c flow.Flow) Poly {
	ms := make([]Monomial, len(p.terms))
	for i, m := range p.terms {
		ms[i] = m.Scale(c)
	}
	return FromMonomials(ms...)
}

// Neg returns -p.
func (p Poly) Neg() Poly { return p.Scale(flow.Num(-1)) }

// PowInt returns p^n for n >= 0.
func (p Poly) PowInt(n int) Poly {
	out := Constant(flow.Num(1))
	for i := 0; i < n; i++ {
		out = out.Mul(p)
	}
	return out
}

// Filter keeps the terms for which keep returns true.
func (p Poly) Filter(keep func(Monomial) bool) Poly {
	var ms []Monomial
	for _, m := range p.terms {
		if keep(m) {
			ms = append(ms, m)
		}
	}
	return Poly{terms: ms}
}

// Substitute replaces species by polynomials and re-expands.
func (p Poly) Substitute(repl func(s symbol.Symbol) (Poly, bool)) Poly {
	out := Zero()
	for _, m := range p.terms {
		term := Constant(m.Coeff)
		for _, f := range m.Factors {
			base, ok := repl(f.Species)
			if !ok {
				base = Var(f.Species)
			}
			term = term.Mul(base.PowInt(f.Power))
		}
		out = out.Add(term)
	}
	return out
}

// Diff returns the partial derivative ∂p/∂s.
func (p Poly) Diff(s symbol.Symbol) Poly {
	var ms []Monomial
	for _, m := range p.terms {
		n := m.Power(s)
		if n == 0 {
			continue
		}
		fs := make([]Factor, len(m.Factors))
		for i, f := range m.Factors {
			if f.Species.Same(s) {
				f.Power--
			}
			fs[i] = f
		}
		ms = append(ms, NewMonomial(flow.Mul(flow.Num(int64(n)), m.Coeff), fs...))
	}
	return FromMonomials(ms...)
}

// Species lists the species of p in first-occurrence order.
func (p Poly) Species() []symbol.Symbol {
	var out []symbol.Symbol
	seen := make(map[uint64]bool)
	for _, m := range p.terms {
		for _, f := range m.Factors {
			if !seen[f.Species.Variant()] {
				seen[f.Species.Variant()] = true
				out = append(out, f.Species)
			}
		}
	}
	return out
}

// ToFlow re-expands p into a normalized flow.
func (p Poly) ToFlow() flow.Flow {
	parts := make([]flow.Flow, len(p.terms))
	for i, m := range p.terms {
		parts[i] = flow.Mul(m.Coeff, m.Product())
	}
	return flow.Normalize(flow.Add(parts...))
}

// Equal compares the re-expanded flows.
func (p Poly) Equal(o Poly) bool { return flow.Equal(p.ToFlow(), o.ToFlow()) }

// Format renders terms in canonical order joined by + / -.
func (p Poly) Format(st *symbol.Style) string {
	if len(p.terms) == 0 {
		return "0"
	}
	out := ""
	for i, m := range p.terms {
		s := m.Format(st)
		switch {
		case i == 0:
			out = s
		case m.Sign() == flow.SignNonpos:
			out += " - " + m.Neg().Format(st)
		default:
			out += " + " + s
		}
	}
	return out
}

func (p Poly) String() string { return p.Format(nil) }
