// SPDX-License-Identifier: MIT

package netlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/crnc/state"
	"github.com/katalvlaran/crnc/symbol"
)

// DefaultTemperature is room temperature in kelvin.
const DefaultTemperature = 293.15

// Sample is a volume of solution. Volume is in liters, Temperature in kelvin.
type Sample struct {
	Symbol      symbol.Symbol
	Volume      float64
	Temperature float64
	StateMap    *state.StateMap

	consumed bool
}

// NewSample returns an empty sample.
func NewSample(sym symbol.Symbol, volume, temperature float64, lna bool) (*Sample, error) {
	if volume < 0 {
		return nil, fmt.Errorf("NewSample(%q): volume %g: %w", sym.Name(), volume, ErrBadVolume)
	}
	if temperature <= 0 {
		return nil, fmt.Errorf("NewSample(%q): temperature %g: %w", sym.Name(), temperature, ErrBadTemperature)
	}
	return &Sample{
		Symbol:      sym,
		Volume:      volume,
		Temperature: temperature,
		StateMap:    state.NewStateMap(lna),
	}, nil
}

// Lna reports whether the sample tracks covariance.
func (s *Sample) Lna() bool { return s.StateMap.Lna() }

// Consumed reports whether the sample was mixed into another.
func (s *Sample) Consumed() bool { return s.consumed }

// MixSamples pours samples together into a new sample named sym.
//
// Implementation:
//   - Stage 1: Reject nil, consumed or repeated inputs.
//   - Stage 2: Total volume is the sum; temperature is volume-weighted
//     (the first input's when the total volume is 0).
//   - Stage 3: Fold every input's StateMap with Mix(total, input volume).
//   - Stage 4: Mark inputs consumed.
//
// The result carries LNA when the first input does.
func MixSamples(sym symbol.Symbol, samples ...*Sample) (*Sample, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("MixSamples(%q): %w", sym.Name(), ErrNoSamples)
	}
	seen := make(map[*Sample]bool, len(samples))
	var volume, heat float64
	for _, s := range samples {
		if s == nil {
			return nil, fmt.Errorf("MixSamples(%q): %w", sym.Name(), ErrNilSample)
		}
		if s.consumed || seen[s] {
			return nil, fmt.Errorf("MixSamples(%q): %q: %w", sym.Name(), s.Symbol.Name(), ErrConsumed)
		}
		seen[s] = true
		volume += s.Volume
		heat += s.Temperature * s.Volume
	}

	temperature := samples[0].Temperature
	if volume > 0 {
		temperature = heat / volume
	}
	out, err := NewSample(sym, volume, temperature, samples[0].Lna())
	if err != nil {
		return nil, err
	}
	for _, s := range samples {
		if err := out.StateMap.Mix(s.StateMap, volume, s.Volume); err != nil {
			return nil, fmt.Errorf("MixSamples(%q): %q: %w", sym.Name(), s.Symbol.Name(), err)
		}
	}
	for _, s := range samples {
		s.consumed = true
	}
	return out, nil
}

// SplitSample draws fraction of src's volume into a new sample named sym.
// Concentrations are unchanged; src keeps the remaining volume.
func SplitSample(sym symbol.Symbol, src *Sample, fraction float64) (*Sample, error) {
	if src == nil {
		return nil, fmt.Errorf("SplitSample(%q): %w", sym.Name(), ErrNilSample)
	}
	if src.consumed {
		return nil, fmt.Errorf("SplitSample(%q): %q: %w", sym.Name(), src.Symbol.Name(), ErrConsumed)
	}
	if !(fraction > 0 && fraction <= 1) {
		return nil, fmt.Errorf("SplitSample(%q): %g: %w", sym.Name(), fraction, ErrBadFraction)
	}
	part, err := NewSample(sym, src.Volume*fraction, src.Temperature, src.Lna())
	if err != nil {
		return nil, err
	}
	if err := part.StateMap.Split(src.StateMap); err != nil {
		return nil, fmt.Errorf("SplitSample(%q): %w", sym.Name(), err)
	}
	src.Volume -= part.Volume
	if fraction == 1 {
		src.consumed = true
	}
	return part, nil
}

// Format renders the sample header followed by its state.
func (s *Sample) Format(st *symbol.Style) string {
	var b strings.Builder
	b.WriteString("sample ")
	b.WriteString(st.Format(s.Symbol))
	b.WriteString(" {")
	b.WriteString(strconv.FormatFloat(s.Volume, 'g', -1, 64))
	b.WriteString(" L, ")
	b.WriteString(strconv.FormatFloat(s.Temperature, 'g', -1, 64))
	b.WriteString(" K}\n")
	b.WriteString(s.StateMap.Format(st))
	return b.String()
}
