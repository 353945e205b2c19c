// SPDX-License-Identifier: MIT

package chem

import (
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// RateKind distinguishes mass-action from general rate laws.
type RateKind int

const (
	// KindMassAction: rate = k · Π reactant^multiplicity.
	KindMassAction RateKind = iota

	// KindGeneral: rate is an arbitrary flow.
	KindGeneral
)

// RateLaw is a reaction rate.
type RateLaw struct {
	kind RateKind
	rate flow.Flow
}

// MassAction returns a mass-action law with rate constant k.
func MassAction(k flow.Flow) RateLaw { return RateLaw{kind: KindMassAction, rate: k} }

// General returns a law whose rate is the flow f itself.
func General(f flow.Flow) RateLaw { return RateLaw{kind: KindGeneral, rate: f} }

// Kind reports the law kind.
func (r RateLaw) Kind() RateKind { return r.kind }

// Rate returns the rate constant (mass action) or the rate flow (general).
func (r RateLaw) Rate() flow.Flow { return r.rate }

// Flow returns the instantaneous rate given the reactants.
func (r RateLaw) Flow(reactants Complex) flow.Flow {
	if r.kind == KindGeneral {
		return r.rate
	}
	if len(reactants) == 0 {
		return r.rate
	}
	return flow.Mul(r.rate, reactants.Flow())
}

// Format renders "{k}" for mass action and "{{f}}" for general laws.
func (r RateLaw) Format(st *symbol.Style) string {
	if r.kind == KindGeneral {
		return "{{" + r.rate.Format(st) + "}}"
	}
	return "{" + r.rate.Format(st) + "}"
}

// ReactionValue is a reaction: reactants -> products at a given rate.
type ReactionValue struct {
	Reactants Complex
	Products  Complex
	Rate      RateLaw
}

// NewReaction builds a reaction value.
func NewReaction(reactants, products Complex, rate RateLaw) ReactionValue {
	return ReactionValue{Reactants: reactants, Products: products, Rate: rate}
}

// Stoich returns the net change of s per reaction event.
func (r ReactionValue) Stoich(s symbol.Symbol) int {
	return r.Products.Count(s) - r.Reactants.Count(s)
}

// Species lists reactant species then product-only species.
func (r ReactionValue) Species() []symbol.Symbol {
	out := r.Reactants.Species()
	for _, s := range r.Products.Species() {
		if r.Reactants.Count(s) == 0 {
			out = append(out, s)
		}
	}
	return out
}

// RateFlow is the instantaneous rate of the reaction.
func (r ReactionValue) RateFlow() flow.Flow { return r.Rate.Flow(r.Reactants) }

// Format renders "a + b -> c {k}".
func (r ReactionValue) Format(st *symbol.Style) string {
	return r.Reactants.Format(st) + " -> " + r.Products.Format(st) + " " + r.Rate.Format(st)
}
