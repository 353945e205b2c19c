// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/poly"
	"github.com/katalvlaran/crnc/symbol"
)

// Split suffixes appended to the display name of a split variable.
const (
	PlusSuffix  = "⁺"
	MinusSuffix = "⁻"
)

// Positivized is the output of Positivize.
type Positivized struct {
	// ODEs has every split variable as a Pos entry directly followed by its
	// Neg entry, in the order of the input list.
	ODEs []poly.PolyODE

	// Equations holds the initial values of ODE variables: x⁺ = x0, x⁻ = 0.
	Equations []poly.Equation

	// Recovered maps every input variable to its value in the new system
	// (x⁺ − x⁻ when split, x otherwise), in input order.
	Recovered []poly.Equation

	// Substs lists the splits in input order.
	Substs []poly.Subst
}

// Recover returns the recovery flow of an input variable.
func (p *Positivized) Recover(sym symbol.Symbol) (flow.Flow, bool) {
	for _, eq := range p.Recovered {
		if eq.Var.Same(sym) {
			return eq.Value, true
		}
	}
	return nil, false
}

// Equation returns the initial-value equation of an output variable.
func (p *Positivized) Equation(sym symbol.Symbol) (poly.Equation, bool) {
	for _, eq := range p.Equations {
		if eq.Var.Same(sym) {
			return eq, true
		}
	}
	return poly.Equation{}, false
}

// Positivize rewrites a polynomial system so that every ODE has only
// nonnegative monomials, except degradation terms of the ODE's own variable.
//
// A variable x is split into x⁺ and x⁻ (x = x⁺ − x⁻) when, after earlier
// splits are substituted, its ODE has a nonpositive monomial that does not
// contain x. Splitting one variable can introduce such monomials elsewhere,
// so the split set is grown to a fixpoint. Then
//
//	∂x⁺ = nonnegative monomials of ∂x
//	∂x⁻ = −(nonpositive monomials of ∂x)
//
// Implementation:
//   - Stage 1: Check every monomial sign; indeterminate → *SignError.
//   - Stage 2: Grow the split set until no unsplit ODE needs splitting.
//   - Stage 3: Emit ODEs, initial equations, recoveries and substitutions.
//
// New symbols come from gen and keep the original name plus PlusSuffix or
// MinusSuffix. Input ODEs must be Unsplit.
func Positivize(odes []poly.PolyODE, eqs []poly.Equation, gen *symbol.Generator, opts ...Option) (res *Positivized, err error) {
	o := buildOptions(opts)
	defer func(start time.Time) { o.Metrics.observe(StagePositivize, start, err) }(time.Now())
	if gen == nil {
		return nil, fmt.Errorf("Positivize: generator: %w", ErrNilInput)
	}
	for _, ode := range odes {
		if ode.Split != poly.Unsplit {
			return nil, &StructureError{Var: ode.Var, Reason: "input is already " + ode.Split.String()}
		}
	}

	// Stage 2: split set to fixpoint.
	substs := make(map[uint64]poly.Subst)
	repl := func(s symbol.Symbol) (poly.Poly, bool) {
		sub, ok := substs[s.Variant()]
		if !ok {
			return poly.Poly{}, false
		}
		return poly.Var(sub.Plus).Add(poly.Var(sub.Minus).Neg()), true
	}
	for changed := true; changed; {
		changed = false
		for _, ode := range odes {
			if _, done := substs[ode.Var.Variant()]; done {
				continue
			}
			need, serr := needsSplit(ode.Var, ode.Poly.Substitute(repl))
			if serr != nil {
				return nil, serr
			}
			if need {
				substs[ode.Var.Variant()] = poly.Subst{
					Original: ode.Var,
					Plus:     gen.New(ode.Var.Name() + PlusSuffix),
					Minus:    gen.New(ode.Var.Name() + MinusSuffix),
				}
				changed = true
			}
		}
	}

	// Stage 3: emit.
	initial := make(map[uint64]flow.Flow, len(eqs))
	for _, eq := range eqs {
		initial[eq.Var.Variant()] = eq.Value
	}
	substFlow := func(f flow.Flow) flow.Flow {
		return flow.Normalize(flow.Substitute(f, func(s symbol.Symbol) (flow.Flow, bool) {
			sub, ok := substs[s.Variant()]
			if !ok {
				return nil, false
			}
			return sub.Recovery(), true
		}))
	}

	res = &Positivized{}
	for _, ode := range odes {
		p := ode.Poly.Substitute(repl)
		if cerr := checkSigns(ode.Var, p); cerr != nil {
			return nil, cerr
		}
		x0, ok := initial[ode.Var.Variant()]
		if !ok {
			x0 = flow.Num(0)
		}
		sub, split := substs[ode.Var.Variant()]
		if !split {
			res.ODEs = append(res.ODEs, poly.PolyODE{Var: ode.Var, Origin: ode.Var, Poly: p, Split: poly.Unsplit})
			res.Equations = append(res.Equations, poly.Equation{Var: ode.Var, Value: substFlow(x0)})
			res.Recovered = append(res.Recovered, poly.Equation{Var: ode.Var, Value: flow.Ref(ode.Var)})
			continue
		}

		pos := p.Filter(func(m poly.Monomial) bool { return m.Sign() == flow.SignNonneg })
		neg := p.Filter(func(m poly.Monomial) bool { return m.Sign() == flow.SignNonpos }).Neg()
		res.ODEs = append(res.ODEs,
			poly.PolyODE{Var: sub.Plus, Origin: ode.Var, Poly: pos, Split: poly.Pos},
			poly.PolyODE{Var: sub.Minus, Origin: ode.Var, Poly: neg, Split: poly.Neg},
		)
		res.Equations = append(res.Equations,
			poly.Equation{Var: sub.Plus, Value: substFlow(x0)},
			poly.Equation{Var: sub.Minus, Value: flow.Num(0)},
		)
		res.Recovered = append(res.Recovered, poly.Equation{Var: ode.Var, Value: flow.Normalize(sub.Recovery())})
		res.Substs = append(res.Substs, sub)
	}
	o.Metrics.addSplits(len(res.Substs))

	st := o.Style.Fork()
	var b strings.Builder
	b.WriteString(poly.FormatODEs(res.ODEs, st))
	b.WriteString(poly.FormatEquations(res.Equations, st))
	for _, sub := range res.Substs {
		b.WriteString(sub.Format(st))
		b.WriteByte('\n')
	}
	o.dump(StagePositivize, b.String())
	return res, nil
}

// needsSplit reports whether p has a nonpositive, nonzero monomial lacking v.
func needsSplit(v symbol.Symbol, p poly.Poly) (bool, error) {
	if err := checkSigns(v, p); err != nil {
		return false, err
	}
	for _, m := range p.Terms() {
		if m.Sign() == flow.SignNonpos && !m.IsZero() && !m.Has(v) {
			return true, nil
		}
	}
	return false, nil
}

func checkSigns(v symbol.Symbol, p poly.Poly) error {
	for _, m := range p.Terms() {
		if m.Sign() == flow.SignUnknown {
			return signError(v, m)
		}
	}
	return nil
}

func signError(v symbol.Symbol, m poly.Monomial) *SignError {
	return &SignError{Var: v, Term: m.Format(nil), Coeff: m.Coeff.Format(nil)}
}
