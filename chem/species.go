// SPDX-License-Identifier: MIT

package chem

import "github.com/katalvlaran/crnc/symbol"

// Species is a chemical species. MolarMass is in g/mol; 0 means unknown,
// which forbids mass-based quantities.
type Species struct {
	Symbol    symbol.Symbol
	MolarMass float64
}

// NewSpecies returns a species with an optional molar mass.
func NewSpecies(sym symbol.Symbol, molarMass float64) Species {
	return Species{Symbol: sym, MolarMass: molarMass}
}

// Format renders the species name.
func (s Species) Format(st *symbol.Style) string { return st.Format(s.Symbol) }
