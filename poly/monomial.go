// SPDX-License-Identifier: MIT

package poly

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// Factor is a species raised to a positive power.
type Factor struct {
	Species symbol.Symbol
	Power   int
}

// Monomial is Coeff · Π Factors. Coeff never references species; Factors
// are sorted by species variant with no repeats.
type Monomial struct {
	Coeff   flow.Flow
	Factors []Factor
}

// NewMonomial canonicalizes factors (merging repeats, dropping zero powers)
// and normalizes the coefficient.
func NewMonomial(coeff flow.Flow, factors ...Factor) Monomial {
	merged := make(map[uint64]*Factor, len(factors))
	var order []uint64
	for _, f := range factors {
		v := f.Species.Variant()
		if m, ok := merged[v]; ok {
			m.Power += f.Power
			continue
		}
		cp := f
		merged[v] = &cp
		order = append(order, v)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]Factor, 0, len(order))
	for _, v := range order {
		if merged[v].Power != 0 {
			out = append(out, *merged[v])
		}
	}
	return Monomial{Coeff: flow.Normalize(coeff), Factors: out}
}

// IsZero reports whether the coefficient normalizes to 0.
func (m Monomial) IsZero() bool { return flow.IsZero(m.Coeff) }

// Degree is the total power.
func (m Monomial) Degree() int {
	d := 0
	for _, f := range m.Factors {
		d += f.Power
	}
	return d
}

// Power returns the exponent of s (0 if absent).
func (m Monomial) Power(s symbol.Symbol) int {
	for _, f := range m.Factors {
		if f.Species.Same(s) {
			return f.Power
		}
	}
	return 0
}

// Has reports whether s is among the factors.
func (m Monomial) Has(s symbol.Symbol) bool { return m.Power(s) > 0 }

// Sign is the static sign of the coefficient.
func (m Monomial) Sign() flow.Sign { return flow.SignOf(m.Coeff) }

// Scale multiplies the coefficient by c.
func (m Monomial) Scale(c flow.Flow) Monomial {
	return Monomial{Coeff: flow.Normalize(flow.Mul(c, m.Coeff)), Factors: m.Factors}
}

// Neg flips the coefficient sign.
func (m Monomial) Neg() Monomial { return m.Scale(flow.Num(-1)) }

// Mul multiplies two monomials.
func (m Monomial) Mul(o Monomial) Monomial {
	fs := make([]Factor, 0, len(m.Factors)+len(o.Factors))
	fs = append(fs, m.Factors...)
	fs = append(fs, o.Factors...)
	return NewMonomial(flow.Mul(m.Coeff, o.Coeff), fs...)
}

// Product returns Π Factors as a flow (1 if there are none).
func (m Monomial) Product() flow.Flow {
	parts := make([]flow.Flow, 0, len(m.Factors))
	for _, f := range m.Factors {
		ref := flow.Flow(flow.Ref(f.Species))
		if f.Power != 1 {
			ref = flow.Pow(ref, flow.Num(int64(f.Power)))
		}
		parts = append(parts, ref)
	}
	return flow.Mul(parts...)
}

// ToFlow returns Coeff · Π Factors, normalized.
func (m Monomial) ToFlow() flow.Flow {
	return flow.Normalize(flow.Mul(m.Coeff, m.Product()))
}

// Format renders the monomial, e.g. "2*a*b^2".
func (m Monomial) Format(st *symbol.Style) string { return m.ToFlow().Format(st) }

func (m Monomial) factorKey() string {
	var b strings.Builder
	for _, f := range m.Factors {
		b.WriteString(strconv.FormatUint(f.Species.Variant(), 10))
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(f.Power))
		b.WriteByte(',')
	}
	return b.String()
}

// monomialLess is the fixed term order: total degree descending, then
// factors compared pairwise (earlier species first, higher power first).
func monomialLess(a, b Monomial) bool {
	if da, db := a.Degree(), b.Degree(); da != db {
		return da > db
	}
	for i := 0; i < len(a.Factors) && i < len(b.Factors); i++ {
		fa, fb := a.Factors[i], b.Factors[i]
		if fa.Species.Variant() != fb.Species.Variant() {
			return fa.Species.Variant() < fb.Species.Variant()
		}
		if fa.Power != fb.Power {
			return fa.Power > fb.Power
		}
	}
	return len(a.Factors) < len(b.Factors)
}
