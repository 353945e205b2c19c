// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/poly"
	"github.com/katalvlaran/crnc/symbol"
)

// ToReactions synthesizes a mass-action network whose ODEs are odes.
//
// For each ODE in order:
//   - a Pos entry must be directly followed by the Neg entry of the same
//     origin; the pair gets an annihilation x⁺ + x⁻ -> Ø at rate 1;
//   - a nonnegative monomial c·F becomes F -> F + x {c};
//   - a nonpositive monomial c·F with x in F becomes F -> F − x {−c};
//   - zero monomials are skipped.
//
// Errors:
//   - *StructureError (ErrStructure) for a broken Pos/Neg pair or a
//     nonpositive monomial not containing its variable.
//   - *SignError (ErrSignIndeterminate) for an indeterminate coefficient.
func ToReactions(odes []poly.PolyODE, opts ...Option) (out []chem.ReactionValue, err error) {
	o := buildOptions(opts)
	defer func(start time.Time) { o.Metrics.observe(StageHungarize, start, err) }(time.Now())

	for i := 0; i < len(odes); i++ {
		ode := odes[i]
		switch ode.Split {
		case poly.Neg:
			return nil, &StructureError{Var: ode.Var, Reason: "neg entry without preceding pos"}
		case poly.Pos:
			if i+1 >= len(odes) || odes[i+1].Split != poly.Neg || !odes[i+1].Origin.Same(ode.Origin) {
				return nil, &StructureError{Var: ode.Var, Reason: fmt.Sprintf("pos of %s not followed by its neg", ode.Origin.Name())}
			}
			neg := odes[i+1]
			out = append(out, chem.NewReaction(
				chem.NewComplex(ode.Var, neg.Var), nil, chem.MassAction(flow.Num(1)),
			))
			if out, err = appendMonomialReactions(out, ode); err != nil {
				return nil, err
			}
			if out, err = appendMonomialReactions(out, neg); err != nil {
				return nil, err
			}
			i++
		default:
			if out, err = appendMonomialReactions(out, ode); err != nil {
				return nil, err
			}
		}
	}
	o.Metrics.addReactions(len(out))

	st := o.Style.Fork()
	var b strings.Builder
	for _, r := range out {
		b.WriteString(r.Format(st))
		b.WriteByte('\n')
	}
	o.dump(StageHungarize, b.String())
	return out, nil
}

func appendMonomialReactions(out []chem.ReactionValue, ode poly.PolyODE) ([]chem.ReactionValue, error) {
	for _, m := range ode.Poly.Terms() {
		if m.IsZero() {
			continue
		}
		r, err := monomialReaction(ode.Var, m)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func monomialReaction(v symbol.Symbol, m poly.Monomial) (chem.ReactionValue, error) {
	reactants := factorComplex(m.Factors)
	switch m.Sign() {
	case flow.SignNonneg:
		return chem.NewReaction(reactants, reactants.With(v, 1), chem.MassAction(m.Coeff)), nil
	case flow.SignNonpos:
		products, ok := reactants.Without(v)
		if !ok {
			return chem.ReactionValue{}, &StructureError{
				Var:    v,
				Reason: fmt.Sprintf("degradation term %s does not contain %s", m.Format(nil), v.Name()),
			}
		}
		return chem.NewReaction(reactants, products, chem.MassAction(flow.Normalize(flow.Neg(m.Coeff)))), nil
	}
	return chem.ReactionValue{}, signError(v, m)
}

// factorComplex expands x^n factors into n copies of x.
func factorComplex(fs []poly.Factor) chem.Complex {
	var c chem.Complex
	for _, f := range fs {
		c = c.With(f.Species, f.Power)
	}
	return c
}
