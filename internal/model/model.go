// SPDX-License-Identifier: MIT

// Package model loads a structured YAML description of a reaction network
// and one sample into a netlist.
//
//	sample: {name: s, volume: 1, volume_unit: mL, temperature: 298}
//	species:
//	  - {name: a, value: 2, unit: mM, variance: 0, molar_mass: 0}
//	params:
//	  - {name: k, nonneg: true}
//	reactions:
//	  - reactants: [a]
//	    products: [b]
//	    rate: {mass: {param: k}}
//	  - reactants: [b]
//	    rate: {general: {op: "*", args: [{num: 2}, {species: b}]}}
//
// Repeated names in reactants/products add multiplicity.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/netlist"
	"github.com/katalvlaran/crnc/state"
	"github.com/katalvlaran/crnc/symbol"
)

// Sentinel errors for model loading.
var (
	// ErrUnknownName indicates a reference to an undeclared species or param.
	ErrUnknownName = errors.New("model: unknown name")

	// ErrDuplicateName indicates a species or param declared twice.
	ErrDuplicateName = errors.New("model: duplicate name")

	// ErrBadExpr indicates an expression node with zero or several kinds set,
	// a wrong operator arity, or a non-finite number.
	ErrBadExpr = errors.New("model: malformed expression")

	// ErrBadRate indicates a rate with neither or both of mass and general.
	ErrBadRate = errors.New("model: rate must set exactly one of mass, general")
)

// File is the YAML document. Volume is in VolumeUnit (default L) and
// temperature in kelvin (0 means netlist.DefaultTemperature).
type File struct {
	Sample struct {
		Name        string  `yaml:"name"`
		Volume      float64 `yaml:"volume"`
		VolumeUnit  string  `yaml:"volume_unit"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"sample"`
	Species   []SpeciesDecl  `yaml:"species"`
	Params    []ParamDecl    `yaml:"params"`
	Reactions []ReactionDecl `yaml:"reactions"`
}

// SpeciesDecl declares a species with its initial amount in Unit.
type SpeciesDecl struct {
	Name      string  `yaml:"name"`
	Value     float64 `yaml:"value"`
	Unit      string  `yaml:"unit"`
	Variance  float64 `yaml:"variance"`
	MolarMass float64 `yaml:"molar_mass"`
}

// ParamDecl declares a symbolic parameter; Nonneg asserts it is never negative.
type ParamDecl struct {
	Name   string `yaml:"name"`
	Nonneg bool   `yaml:"nonneg"`
}

// ReactionDecl is one reaction; an empty side is Ø.
type ReactionDecl struct {
	Reactants []string `yaml:"reactants"`
	Products  []string `yaml:"products"`
	Rate      Rate     `yaml:"rate"`
}

// Rate is a mass-action constant or a general rate expression.
type Rate struct {
	Mass    *Expr `yaml:"mass"`
	General *Expr `yaml:"general"`
}

// Expr is one flow node: exactly one of Num, Species, Param or Op is set.
type Expr struct {
	Num     *float64 `yaml:"num"`
	Species string   `yaml:"species"`
	Param   string   `yaml:"param"`
	Op      string   `yaml:"op"`
	Args    []Expr   `yaml:"args"`
}

// Model is a loaded network.
type Model struct {
	Netlist *netlist.Netlist
	Sample  *netlist.Sample
	Params  map[string]*flow.Param

	species map[string]chem.Species
}

// Parse decodes a model document, rejecting unknown fields.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	return &f, nil
}

// LoadFile reads and builds the model at path.
func LoadFile(path string, gen *symbol.Generator, lna bool) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(f, gen, lna)
}

// Build creates symbols from gen and emits species, the sample and the
// reactions into a new netlist.
func Build(f *File, gen *symbol.Generator, lna bool) (*Model, error) {
	m := &Model{
		Netlist: netlist.New(),
		Params:  make(map[string]*flow.Param),
		species: make(map[string]chem.Species),
	}

	unit := f.Sample.VolumeUnit
	if unit == "" {
		unit = "L"
	}
	volume, err := state.NormalizeVolume(f.Sample.Volume, unit)
	if err != nil {
		return nil, fmt.Errorf("sample %q: %w", f.Sample.Name, err)
	}
	temperature := f.Sample.Temperature
	if temperature == 0 {
		temperature = netlist.DefaultTemperature
	}
	name := f.Sample.Name
	if name == "" {
		name = "sample"
	}
	m.Sample, err = netlist.NewSample(gen.New(name), volume, temperature, lna)
	if err != nil {
		return nil, err
	}

	for _, d := range f.Species {
		if _, dup := m.species[d.Name]; dup || m.Params[d.Name] != nil {
			return nil, fmt.Errorf("species %q: %w", d.Name, ErrDuplicateName)
		}
		sp := chem.NewSpecies(gen.New(d.Name), d.MolarMass)
		u := d.Unit
		if u == "" {
			u = "M"
		}
		if err := m.Sample.StateMap.AddDimensionedSpecies(sp, d.Value, d.Variance, u, volume); err != nil {
			return nil, fmt.Errorf("species %q: %w", d.Name, err)
		}
		m.species[d.Name] = sp
		m.Netlist.Emit(netlist.SpeciesEntry{Species: sp})
	}
	for _, d := range f.Params {
		if _, dup := m.species[d.Name]; dup || m.Params[d.Name] != nil {
			return nil, fmt.Errorf("param %q: %w", d.Name, ErrDuplicateName)
		}
		m.Params[d.Name] = flow.NewParam(gen.New(d.Name), d.Nonneg)
	}
	m.Netlist.Emit(netlist.SampleEntry{Sample: m.Sample})

	for i, d := range f.Reactions {
		r, err := m.reaction(d)
		if err != nil {
			return nil, fmt.Errorf("reaction %d: %w", i+1, err)
		}
		m.Netlist.Emit(netlist.ReactionEntry{Reaction: r})
	}
	return m, nil
}

// Env binds parameter values by name.
func (m *Model) Env(values map[string]float64) (*flow.Env, error) {
	env := flow.NewEnv()
	for name, v := range values {
		p, ok := m.Params[name]
		if !ok {
			return nil, fmt.Errorf("param %q: %w", name, ErrUnknownName)
		}
		env.Bind(p.Symbol(), v)
	}
	return env, nil
}

// Species returns the declared species by name.
func (m *Model) Species(name string) (chem.Species, bool) {
	sp, ok := m.species[name]
	return sp, ok
}

func (m *Model) complex(names []string) (chem.Complex, error) {
	var c chem.Complex
	for _, n := range names {
		sp, ok := m.species[n]
		if !ok {
			return nil, fmt.Errorf("species %q: %w", n, ErrUnknownName)
		}
		c = c.With(sp.Symbol, 1)
	}
	return c, nil
}

func (m *Model) reaction(d ReactionDecl) (chem.ReactionValue, error) {
	reactants, err := m.complex(d.Reactants)
	if err != nil {
		return chem.ReactionValue{}, err
	}
	products, err := m.complex(d.Products)
	if err != nil {
		return chem.ReactionValue{}, err
	}

	var rate chem.RateLaw
	switch {
	case d.Rate.Mass != nil && d.Rate.General == nil:
		f, err := m.expr(*d.Rate.Mass)
		if err != nil {
			return chem.ReactionValue{}, err
		}
		rate = chem.MassAction(f)
	case d.Rate.General != nil && d.Rate.Mass == nil:
		f, err := m.expr(*d.Rate.General)
		if err != nil {
			return chem.ReactionValue{}, err
		}
		rate = chem.General(f)
	default:
		return chem.ReactionValue{}, ErrBadRate
	}
	return chem.NewReaction(reactants, products, rate), nil
}

func (m *Model) expr(e Expr) (flow.Flow, error) {
	set := 0
	for _, ok := range []bool{e.Num != nil, e.Species != "", e.Param != "", e.Op != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%+v: %w", e, ErrBadExpr)
	}

	switch {
	case e.Num != nil:
		n, err := flow.NewFloat(*e.Num)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadExpr, err)
		}
		return n, nil
	case e.Species != "":
		sp, ok := m.species[e.Species]
		if !ok {
			return nil, fmt.Errorf("species %q: %w", e.Species, ErrUnknownName)
		}
		return flow.Ref(sp.Symbol), nil
	case e.Param != "":
		p, ok := m.Params[e.Param]
		if !ok {
			return nil, fmt.Errorf("param %q: %w", e.Param, ErrUnknownName)
		}
		return p, nil
	}

	args := make([]flow.Flow, len(e.Args))
	for i, a := range e.Args {
		f, err := m.expr(a)
		if err != nil {
			return nil, err
		}
		args[i] = f
	}
	f, err := flow.Apply(flow.Operator(e.Op), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadExpr, err)
	}
	return f, nil
}
