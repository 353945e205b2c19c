// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// CRN is a set of species with the reactions among them and the initial
// value of each species (0 unless set).
type CRN struct {
	species   []Species
	index     map[uint64]int
	reactions []ReactionValue
	initial   map[uint64]flow.Flow
}

// NewCRN validates that reactions only mention declared species.
func NewCRN(species []Species, reactions []ReactionValue) (*CRN, error) {
	c := &CRN{
		species:   make([]Species, 0, len(species)),
		index:     make(map[uint64]int, len(species)),
		reactions: append([]ReactionValue(nil), reactions...),
		initial:   make(map[uint64]flow.Flow),
	}
	for _, sp := range species {
		if _, dup := c.index[sp.Symbol.Variant()]; dup {
			return nil, fmt.Errorf("CRN %q: %w", sp.Symbol.Name(), ErrDuplicateSpecies)
		}
		c.index[sp.Symbol.Variant()] = len(c.species)
		c.species = append(c.species, sp)
	}
	for _, r := range reactions {
		for _, s := range r.Species() {
			if !c.Has(s) {
				return nil, fmt.Errorf("CRN reaction %s mentions %q: %w", r.Format(nil), s.Name(), ErrUnknownSpecies)
			}
		}
	}
	return c, nil
}

// Has reports whether s is declared.
func (c *CRN) Has(s symbol.Symbol) bool {
	_, ok := c.index[s.Variant()]
	return ok
}

// Species returns the declared species in declaration order.
func (c *CRN) Species() []Species { return append([]Species(nil), c.species...) }

// Reactions returns the reactions in insertion order.
func (c *CRN) Reactions() []ReactionValue { return append([]ReactionValue(nil), c.reactions...) }

// SetInitial records the initial value flow of s.
func (c *CRN) SetInitial(s symbol.Symbol, f flow.Flow) error {
	if !c.Has(s) {
		return fmt.Errorf("CRN initial value for %q: %w", s.Name(), ErrUnknownSpecies)
	}
	c.initial[s.Variant()] = f
	return nil
}

// Initial returns the initial value flow of s (0 if unset).
func (c *CRN) Initial(s symbol.Symbol) flow.Flow {
	if f, ok := c.initial[s.Variant()]; ok {
		return f
	}
	return flow.Num(0)
}

// Derivative returns the raw (unnormalized) flow d s/dt: the sum over
// reactions of net stoichiometry times rate, in reaction order.
func (c *CRN) Derivative(s symbol.Symbol) flow.Flow {
	var terms []flow.Flow
	for _, r := range c.reactions {
		n := r.Stoich(s)
		if n == 0 {
			continue
		}
		terms = append(terms, flow.Mul(flow.Num(int64(n)), r.RateFlow()))
	}
	return flow.Add(terms...)
}

// Format lists the reactions one per line.
func (c *CRN) Format(st *symbol.Style) string {
	var b strings.Builder
	for _, r := range c.reactions {
		b.WriteString(r.Format(st))
		b.WriteByte('\n')
	}
	return b.String()
}
