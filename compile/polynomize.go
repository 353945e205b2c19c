// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"
	"time"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/poly"
	"github.com/katalvlaran/crnc/symbol"
)

// Derivative is the raw symbolic derivative of one species.
type Derivative struct {
	Var  symbol.Symbol
	Flow flow.Flow
}

// Polynomized is the output of Polynomize.
type Polynomized struct {
	// ODEs has one Unsplit entry per species in CRN order, followed by one
	// per auxiliary variable in creation order.
	ODEs []poly.PolyODE

	// Equations holds the initial value of every ODE variable.
	Equations []poly.Equation

	// Auxiliary defines each auxiliary variable over the original species,
	// e.g. exp1 = exp(a).
	Auxiliary []poly.Equation
}

// DeriveFlows returns d s/dt = Σ_r stoich_r(s)·rate_r for every species,
// in CRN order, without simplification.
func DeriveFlows(crn *chem.CRN) []Derivative {
	species := crn.Species()
	out := make([]Derivative, len(species))
	for i, sp := range species {
		out[i] = Derivative{Var: sp.Symbol, Flow: crn.Derivative(sp.Symbol)}
	}
	return out
}

// Polynomize converts the CRN's derivatives into polynomial ODEs and its
// initial values into normalized equations.
//
// Derivatives that contain exp, log, sqrt, reciprocals or non-integer powers
// of species are recast: each such sub-expression g becomes a fresh variable
// y (named from gen) with y = g(0) as initial equation and a polynomial ODE
// from the chain rule, e.g. y = exp(p) gives ∂y = y·∂p and y = 1/p gives
// ∂y = −y²·∂p. Identical sub-expressions share one variable.
//
// Implementation:
//   - Stage 1: DeriveFlows.
//   - Stage 2: Normalize and recast every derivative, then expand it with
//     poly.FromFlow.
//   - Stage 3: Normalize every initial value.
//   - Stage 4: Derive the ODE and initial value of each auxiliary variable.
//
// Errors:
//   - ErrNilInput for a nil CRN or generator.
//   - *poly.NotPolynomialError (ErrNotPolynomial) naming the sub-expression
//     that cannot be recast (abs, species in an exponent, division by a
//     literal zero), wrapped with the species name.
func Polynomize(crn *chem.CRN, gen *symbol.Generator, opts ...Option) (res *Polynomized, err error) {
	o := buildOptions(opts)
	defer func(start time.Time) { o.Metrics.observe(StagePolynomize, start, err) }(time.Now())
	if crn == nil || gen == nil {
		return nil, fmt.Errorf("Polynomize: %w", ErrNilInput)
	}

	rc := newRecaster(gen)
	res = &Polynomized{}
	odes := make(map[uint64]poly.Poly)
	initial := make(map[uint64]flow.Flow)
	for _, d := range DeriveFlows(crn) {
		f, perr := rc.recast(flow.Normalize(d.Flow))
		if perr != nil {
			return nil, fmt.Errorf("Polynomize: ∂%s: %w", d.Var.Name(), perr)
		}
		p, perr := poly.FromFlow(f)
		if perr != nil {
			return nil, fmt.Errorf("Polynomize: ∂%s: %w", d.Var.Name(), perr)
		}
		x0 := flow.Normalize(crn.Initial(d.Var))
		odes[d.Var.Variant()] = p
		initial[d.Var.Variant()] = x0
		res.ODEs = append(res.ODEs, poly.PolyODE{Var: d.Var, Origin: d.Var, Poly: p, Split: poly.Unsplit})
		res.Equations = append(res.Equations, poly.Equation{Var: d.Var, Value: x0})
	}

	// Stage 4: auxiliaries only depend on species and earlier auxiliaries.
	defs := make(map[uint64]flow.Flow)
	for _, v := range rc.vars {
		p, perr := v.derivative(odes)
		if perr != nil {
			return nil, fmt.Errorf("Polynomize: ∂%s: %w", v.sym.Name(), perr)
		}
		x0 := flow.Normalize(flow.Substitute(v.def, lookup(initial)))
		def := flow.Normalize(flow.Substitute(v.def, lookup(defs)))
		odes[v.sym.Variant()] = p
		initial[v.sym.Variant()] = x0
		defs[v.sym.Variant()] = def
		res.ODEs = append(res.ODEs, poly.PolyODE{Var: v.sym, Origin: v.sym, Poly: p, Split: poly.Unsplit})
		res.Equations = append(res.Equations, poly.Equation{Var: v.sym, Value: x0})
		res.Auxiliary = append(res.Auxiliary, poly.Equation{Var: v.sym, Value: def})
	}

	st := o.Style.Fork()
	o.dump(StagePolynomize, poly.FormatODEs(res.ODEs, st)+
		poly.FormatEquations(res.Equations, st)+
		poly.FormatEquations(res.Auxiliary, st))
	return res, nil
}

// lookup adapts a variant-keyed table to flow.Substitute.
func lookup(table map[uint64]flow.Flow) func(symbol.Symbol) (flow.Flow, bool) {
	return func(s symbol.Symbol) (flow.Flow, bool) {
		f, ok := table[s.Variant()]
		return f, ok
	}
}
