// SPDX-License-Identifier: MIT

package compile

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/netlist"
	"github.com/katalvlaran/crnc/poly"
	"github.com/katalvlaran/crnc/state"
	"github.com/katalvlaran/crnc/symbol"
)

// Result bundles everything MassCompileSample produced.
type Result struct {
	Sample      *netlist.Sample
	Polynomized *Polynomized
	Positivized *Positivized
	Reactions   []chem.ReactionValue
}

// MassCompileSample compiles the reactions relevant to sample into a
// mass-action network over a fresh output sample.
//
// Implementation:
//   - Stage 1: Build a CRN from net.RelevantReactions(sample), with the
//     sample's means as initial values.
//   - Stage 2: Polynomize → Positivize → ToReactions (each dumped to the logger).
//     Auxiliary variables introduced by Polynomize become output species.
//   - Stage 3: Create the output sample (fresh symbol, same name, volume,
//     temperature and LNA). Every output variable's initial value is its
//     positivized equation evaluated with the Params env; covariance is
//     copied for variables that carry an original species' value.
//   - Stage 4: Emit new species, the sample, the reactions, then one report per
//     unsplit variable and one per split (labelled with the original name).
//
// Nothing is emitted when any stage fails.
//
// Errors:
//   - ErrNilInput; errors of the three stages.
//   - *InitialValueError wrapping ErrNotNumeric or ErrNegativeValue.
func MassCompileSample(net *netlist.Netlist, sample *netlist.Sample, gen *symbol.Generator, opts ...Option) (res *Result, err error) {
	o := buildOptions(opts)
	defer func(start time.Time) { o.Metrics.observe(StageMassCompile, start, err) }(time.Now())
	if net == nil || sample == nil || gen == nil {
		return nil, fmt.Errorf("MassCompileSample: %w", ErrNilInput)
	}
	name := sample.Symbol.Name()
	stageOpts := append(append([]Option(nil), opts...), withLabel(name))

	// Stage 1
	crn, err := sampleCRN(net, sample)
	if err != nil {
		return nil, fmt.Errorf("MassCompileSample(%q): %w", name, err)
	}

	// Stage 2
	pn, err := Polynomize(crn, gen, stageOpts...)
	if err != nil {
		return nil, fmt.Errorf("MassCompileSample(%q): %w", name, err)
	}
	pz, err := Positivize(pn.ODEs, pn.Equations, gen, stageOpts...)
	if err != nil {
		return nil, fmt.Errorf("MassCompileSample(%q): %w", name, err)
	}
	reactions, err := ToReactions(pz.ODEs, stageOpts...)
	if err != nil {
		return nil, fmt.Errorf("MassCompileSample(%q): %w", name, err)
	}

	// Stage 3
	out, species, err := outputSample(sample, crn, pz, gen.Fresh(sample.Symbol), o.Params)
	if err != nil {
		return nil, err
	}

	// Stage 4
	net.Emit(entries(net, species, out, reactions, pz, o.Style)...)

	return &Result{Sample: out, Polynomized: pn, Positivized: pz, Reactions: reactions}, nil
}

func sampleCRN(net *netlist.Netlist, sample *netlist.Sample) (*chem.CRN, error) {
	species := sample.StateMap.Species()
	crn, err := chem.NewCRN(species, net.RelevantReactions(sample))
	if err != nil {
		return nil, err
	}
	for _, sp := range species {
		mean, err := sample.StateMap.Mean(sp.Symbol)
		if err != nil {
			return nil, err
		}
		x0, err := flow.NewFloat(mean)
		if err != nil {
			return nil, &InitialValueError{Sample: sample.Symbol.Name(), Species: sp.Symbol.Name(), Value: mean, Err: err}
		}
		if err := crn.SetInitial(sp.Symbol, x0); err != nil {
			return nil, err
		}
	}
	return crn, nil
}

// outputSample evaluates initial values into a new sample. It returns the
// sample and its species in ODE order.
func outputSample(src *netlist.Sample, crn *chem.CRN, pz *Positivized, sym symbol.Symbol, params *flow.Env) (*netlist.Sample, []chem.Species, error) {
	out, err := netlist.NewSample(sym, src.Volume, src.Temperature, src.Lna())
	if err != nil {
		return nil, nil, err
	}

	molar := make(map[uint64]float64)
	for _, sp := range crn.Species() {
		molar[sp.Symbol.Variant()] = sp.MolarMass
	}

	species := make([]chem.Species, 0, len(pz.ODEs))
	carriers := make(map[int]symbol.Symbol) // output index → original species
	for i, ode := range pz.ODEs {
		eq, ok := pz.Equation(ode.Var)
		if !ok {
			eq = poly.Equation{Var: ode.Var, Value: flow.Num(0)}
		}
		v, err := flow.Eval(eq.Value, params)
		if err != nil {
			return nil, nil, &InitialValueError{Sample: src.Symbol.Name(), Species: ode.Var.Name(), Err: err}
		}
		if v < 0 {
			return nil, nil, &InitialValueError{Sample: src.Symbol.Name(), Species: ode.Var.Name(), Value: v, Err: ErrNegativeValue}
		}

		sp := chem.NewSpecies(ode.Var, molar[ode.Origin.Variant()])
		if err := out.StateMap.AddDimensionedSpecies(sp, v, 0, "M", out.Volume); err != nil {
			if errors.Is(err, state.ErrNegativeValue) {
				return nil, nil, &InitialValueError{Sample: src.Symbol.Name(), Species: ode.Var.Name(), Value: v, Err: err}
			}
			return nil, nil, fmt.Errorf("MassCompileSample(%q): %w", src.Symbol.Name(), err)
		}
		species = append(species, sp)
		if ode.Split != poly.Neg && src.StateMap.HasSpecies(ode.Origin) {
			carriers[i] = ode.Origin
		}
	}

	if out.Lna() && src.Lna() {
		if err := copyCovariance(out, src, carriers); err != nil {
			return nil, nil, err
		}
	}
	return out, species, nil
}

func copyCovariance(out, src *netlist.Sample, carriers map[int]symbol.Symbol) error {
	dst := out.StateMap.State()
	for i, a := range carriers {
		for j, b := range carriers {
			c, err := src.StateMap.Covar(a, b)
			if err != nil {
				return fmt.Errorf("MassCompileSample(%q): %w", src.Symbol.Name(), err)
			}
			if err := dst.SetCovar(i, j, c); err != nil {
				return fmt.Errorf("MassCompileSample(%q): %w", src.Symbol.Name(), err)
			}
		}
	}
	return nil
}

func entries(net *netlist.Netlist, species []chem.Species, out *netlist.Sample, reactions []chem.ReactionValue, pz *Positivized, st *symbol.Style) []netlist.Entry {
	known := make(map[uint64]bool)
	for _, sp := range net.SpeciesList() {
		known[sp.Symbol.Variant()] = true
	}

	var es []netlist.Entry
	for _, sp := range species {
		if !known[sp.Symbol.Variant()] {
			es = append(es, netlist.SpeciesEntry{Species: sp})
		}
	}
	es = append(es, netlist.SampleEntry{Sample: out})
	for _, r := range reactions {
		es = append(es, netlist.ReactionEntry{Reaction: r})
	}

	split := make(map[uint64]bool, len(pz.Substs))
	for _, sub := range pz.Substs {
		split[sub.Original.Variant()] = true
	}
	// A split variable is reported once, through its Subst, under its
	// original name; its Recovered equation would duplicate that report.
	for _, eq := range pz.Recovered {
		if !split[eq.Var.Variant()] {
			es = append(es, netlist.ReportEntry{Label: st.Format(eq.Var), Var: eq.Var, Value: eq.Value})
		}
	}
	for _, sub := range pz.Substs {
		es = append(es, netlist.ReportEntry{Label: st.Format(sub.Original), Var: sub.Original, Value: sub.Recovery()})
	}
	return es
}
