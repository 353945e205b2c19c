// SPDX-License-Identifier: MIT

package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/symbol"
)

// StateMap binds an ordered species list to a State. Species i owns mean
// slot i and covariance row/column i.
type StateMap struct {
	species []chem.Species
	index   map[uint64]int // symbol variant → position
	state   *State
}

// NewStateMap returns an empty, initialized map.
func NewStateMap(lna bool) *StateMap {
	st, _ := NewState(0, lna)
	_ = st.InitZero()
	return &StateMap{index: make(map[uint64]int), state: st}
}

// Lna reports whether covariance is tracked.
func (m *StateMap) Lna() bool { return m.state.Lna() }

// Size is the number of species.
func (m *StateMap) Size() int { return len(m.species) }

// HasSpecies reports membership by symbol identity.
func (m *StateMap) HasSpecies(sym symbol.Symbol) bool {
	_, ok := m.index[sym.Variant()]
	return ok
}

// IndexOf returns the species position, or -1 when absent.
func (m *StateMap) IndexOf(sym symbol.Symbol) int {
	if i, ok := m.index[sym.Variant()]; ok {
		return i
	}
	return -1
}

// Species returns a copy of the species list in insertion order.
func (m *StateMap) Species() []chem.Species {
	return append([]chem.Species(nil), m.species...)
}

// State exposes the underlying buffer. It is replaced (not resized) when
// species are added, so do not hold it across AddDimensionedSpecies/Mix/Split.
func (m *StateMap) State() *State { return m.state }

// Mean returns the molarity of sym.
func (m *StateMap) Mean(sym symbol.Symbol) (float64, error) {
	i := m.IndexOf(sym)
	if i < 0 {
		return 0, fmt.Errorf("StateMap.Mean(%s): %w", sym, ErrUnknownSpecies)
	}
	return m.state.Mean(i)
}

// Covar returns the covariance of a and b.
func (m *StateMap) Covar(a, b symbol.Symbol) (float64, error) {
	i, j := m.IndexOf(a), m.IndexOf(b)
	if i < 0 || j < 0 {
		return 0, fmt.Errorf("StateMap.Covar(%s,%s): %w", a, b, ErrUnknownSpecies)
	}
	return m.state.Covar(i, j)
}

// AddDimensionedSpecies appends sp with the given amount expressed in
// dimension (see package units) inside volume liters. The amount is stored
// as molarity; variance is scaled by the square of the same factor and
// stored on the diagonal when LNA is on.
//
// Errors: ErrDuplicateSpecies, ErrNonFinite, ErrNegativeValue, ErrDimension,
// ErrBadVolume.
func (m *StateMap) AddDimensionedSpecies(sp chem.Species, value, variance float64, dimension string, volume float64) error {
	name := sp.Symbol.Name()
	if m.HasSpecies(sp.Symbol) {
		return fmt.Errorf("StateMap.AddDimensionedSpecies(%q): %w", name, ErrDuplicateSpecies)
	}
	for _, x := range [...]struct {
		what string
		v    float64
	}{{"mean", value}, {"variance", variance}, {"volume", volume}} {
		if math.IsNaN(x.v) || math.IsInf(x.v, 0) {
			return fmt.Errorf("StateMap.AddDimensionedSpecies(%q): %s %g: %w", name, x.what, x.v, ErrNonFinite)
		}
	}
	if value < 0 {
		return fmt.Errorf("StateMap.AddDimensionedSpecies(%q): mean %g: %w", name, value, ErrNegativeValue)
	}
	if variance < 0 {
		return fmt.Errorf("StateMap.AddDimensionedSpecies(%q): variance %g: %w", name, variance, ErrNegativeValue)
	}
	f, err := molarFactor(dimension, sp.MolarMass, volume)
	if err != nil {
		return fmt.Errorf("StateMap.AddDimensionedSpecies(%q): %w", name, err)
	}

	i, err := m.grow(sp)
	if err != nil {
		return err
	}
	m.state.data[i] = value * f
	if m.state.lna {
		m.state.data[m.state.covarAt(i, i)] = variance * f * f
	}
	return nil
}

// grow appends sp and extends the State by one slot.
func (m *StateMap) grow(sp chem.Species) (int, error) {
	next, err := m.state.Extend(1)
	if err != nil {
		return 0, fmt.Errorf("StateMap: %w", err)
	}
	i := len(m.species)
	m.species = append(m.species, sp)
	m.index[sp.Symbol.Variant()] = i
	m.state = next
	return i, nil
}

// merge adds every species of other missing here, in other's order.
// It returns, for each of other's species, its position in m.
func (m *StateMap) merge(other *StateMap) ([]int, error) {
	var missing []chem.Species
	for _, sp := range other.species {
		if !m.HasSpecies(sp.Symbol) {
			missing = append(missing, sp)
		}
	}
	if len(missing) > 0 {
		next, err := m.state.Extend(len(missing))
		if err != nil {
			return nil, fmt.Errorf("StateMap: %w", err)
		}
		for _, sp := range missing {
			m.index[sp.Symbol.Variant()] = len(m.species)
			m.species = append(m.species, sp)
		}
		m.state = next
	}

	pos := make([]int, len(other.species))
	for j, sp := range other.species {
		pos[j] = m.index[sp.Symbol.Variant()]
	}
	return pos, nil
}

// accumulate adds other's values scaled by ratio (covariance by ratio²).
func (m *StateMap) accumulate(other *StateMap, pos []int, ratio float64) {
	dst, src := m.state, other.state
	for j, i := range pos {
		dst.data[i] += src.data[j] * ratio
	}
	if !dst.lna || !src.lna {
		return
	}
	r2 := ratio * ratio
	for a, ia := range pos {
		for b, ib := range pos {
			dst.data[dst.covarAt(ia, ib)] += src.data[src.covarAt(a, b)] * r2
		}
	}
}

// Mix folds other into m as if volumes were poured together:
// each mean gains otherMean·otherVolume/thisVolume, and (when both sides
// carry LNA) each covariance gains otherCov·(otherVolume/thisVolume)².
// Species unknown to m are added first. thisVolume is the volume of the
// result; when it is 0 only the species lists are merged.
//
// Values are copied; other is not retained.
func (m *StateMap) Mix(other *StateMap, thisVolume, otherVolume float64) error {
	if other == m {
		return fmt.Errorf("StateMap.Mix: %w", ErrAliased)
	}
	if thisVolume < 0 || otherVolume < 0 {
		return fmt.Errorf("StateMap.Mix(%g,%g): %w", thisVolume, otherVolume, ErrNegativeValue)
	}
	pos, err := m.merge(other)
	if err != nil {
		return err
	}
	if thisVolume == 0 {
		return nil
	}
	m.accumulate(other, pos, otherVolume/thisVolume)
	return nil
}

// Split copies other's species and adds its values unscaled.
func (m *StateMap) Split(other *StateMap) error {
	if other == m {
		return fmt.Errorf("StateMap.Split: %w", ErrAliased)
	}
	pos, err := m.merge(other)
	if err != nil {
		return err
	}
	m.accumulate(other, pos, 1)
	return nil
}

// Clone returns an independent copy.
func (m *StateMap) Clone() *StateMap {
	out := &StateMap{
		species: append([]chem.Species(nil), m.species...),
		index:   make(map[uint64]int, len(m.index)),
		state:   m.state.Clone(),
	}
	for k, v := range m.index {
		out.index[k] = v
	}
	return out
}

// Format renders one "name = mean" line per species, plus the
// covariance matrix rows when LNA is on.
func (m *StateMap) Format(st *symbol.Style) string {
	var b strings.Builder
	for i, sp := range m.species {
		b.WriteString(st.Format(sp.Symbol))
		b.WriteString(" = ")
		b.WriteString(strconv.FormatFloat(m.state.data[i], 'g', -1, 64))
		b.WriteByte('\n')
	}
	if m.state.lna && len(m.species) > 0 {
		b.WriteString("covariance:\n")
		n := len(m.species)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if j > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(strconv.FormatFloat(m.state.data[m.state.covarAt(i, j)], 'g', -1, 64))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
