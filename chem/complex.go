// SPDX-License-Identifier: MIT

package chem

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// Term is one species with its multiplicity inside a Complex.
type Term struct {
	Species symbol.Symbol
	Count   int
}

// Complex is a multiset of species kept in canonical order (by variant).
// Methods never mutate the receiver.
type Complex []Term

// NewComplex builds a complex; repeated symbols add up.
func NewComplex(syms ...symbol.Symbol) Complex {
	var c Complex
	for _, s := range syms {
		c = c.With(s, 1)
	}
	return c
}

// Count returns the multiplicity of s.
func (c Complex) Count(s symbol.Symbol) int {
	for _, t := range c {
		if t.Species.Same(s) {
			return t.Count
		}
	}
	return 0
}

// Size is the total number of species units.
func (c Complex) Size() int {
	n := 0
	for _, t := range c {
		n += t.Count
	}
	return n
}

// With returns c plus n units of s. n must be positive.
func (c Complex) With(s symbol.Symbol, n int) Complex {
	if n <= 0 {
		panic(ErrBadCount)
	}
	out := make(Complex, 0, len(c)+1)
	found := false
	for _, t := range c {
		if t.Species.Same(s) {
			t.Count += n
			found = true
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, Term{Species: s, Count: n})
		sort.Slice(out, func(i, j int) bool { return symbol.Less(out[i].Species, out[j].Species) })
	}
	return out
}

// Without returns c minus one unit of s, or false if s is absent.
func (c Complex) Without(s symbol.Symbol) (Complex, bool) {
	out := make(Complex, 0, len(c))
	found := false
	for _, t := range c {
		if !found && t.Species.Same(s) {
			found = true
			if t.Count == 1 {
				continue
			}
			t.Count--
		}
		out = append(out, t)
	}
	return out, found
}

// Species lists the distinct species in canonical order.
func (c Complex) Species() []symbol.Symbol {
	out := make([]symbol.Symbol, len(c))
	for i, t := range c {
		out[i] = t.Species
	}
	return out
}

// Flow returns the product of species values raised to their multiplicities.
func (c Complex) Flow() flow.Flow {
	factors := make([]flow.Flow, 0, len(c))
	for _, t := range c {
		ref := flow.Flow(flow.Ref(t.Species))
		if t.Count > 1 {
			ref = flow.Pow(ref, flow.Num(int64(t.Count)))
		}
		factors = append(factors, ref)
	}
	return flow.Mul(factors...)
}

// Equal reports multiset equality.
func (c Complex) Equal(o Complex) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if !c[i].Species.Same(o[i].Species) || c[i].Count != o[i].Count {
			return false
		}
	}
	return true
}

// Format renders "2a + b", or "Ø" for the empty complex.
func (c Complex) Format(st *symbol.Style) string {
	if len(c) == 0 {
		return "Ø"
	}
	parts := make([]string, len(c))
	for i, t := range c {
		name := st.Format(t.Species)
		if t.Count > 1 {
			name = strconv.Itoa(t.Count) + name
		}
		parts[i] = name
	}
	return strings.Join(parts, " + ")
}
