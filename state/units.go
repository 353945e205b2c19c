// SPDX-License-Identifier: MIT

package state

import (
	"fmt"
	"math"
)

// quantity is the physical kind a dimension string denotes.
type quantity int

const (
	concentration quantity = iota
	moles
	mass
)

type unit struct {
	kind   quantity
	factor float64 // to mol/L, mol, or g respectively
}

var units = map[string]unit{
	"M":  {concentration, 1},
	"mM": {concentration, 1e-3},
	"uM": {concentration, 1e-6},
	"µM": {concentration, 1e-6},
	"μM": {concentration, 1e-6},
	"nM": {concentration, 1e-9},
	"pM": {concentration, 1e-12},

	"mol":  {moles, 1},
	"mmol": {moles, 1e-3},
	"umol": {moles, 1e-6},
	"µmol": {moles, 1e-6},
	"μmol": {moles, 1e-6},
	"nmol": {moles, 1e-9},
	"pmol": {moles, 1e-12},

	"kg": {mass, 1e3},
	"g":  {mass, 1},
	"mg": {mass, 1e-3},
	"ug": {mass, 1e-6},
	"µg": {mass, 1e-6},
	"μg": {mass, 1e-6},
	"ng": {mass, 1e-9},
}

var volumeUnits = map[string]float64{
	"L":  1,
	"mL": 1e-3,
	"uL": 1e-6,
	"µL": 1e-6,
	"μL": 1e-6,
	"nL": 1e-9,
}

// NormalizeVolume converts value in unit to liters.
func NormalizeVolume(value float64, unit string) (float64, error) {
	f, ok := volumeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("NormalizeVolume(%q): %w", unit, ErrDimension)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("NormalizeVolume(%g %s): %w", value, unit, ErrNonFinite)
	}
	if value < 0 {
		return 0, fmt.Errorf("NormalizeVolume(%g %s): %w", value, unit, ErrNegativeValue)
	}
	return value * f, nil
}

// molarFactor returns the multiplier from dimension to mol/L for a species
// of the given molar mass in volume liters.
func molarFactor(dimension string, molarMass, volume float64) (float64, error) {
	u, ok := units[dimension]
	if !ok {
		return 0, fmt.Errorf("unit %q: %w", dimension, ErrDimension)
	}
	switch u.kind {
	case concentration:
		return u.factor, nil
	case moles:
		if volume <= 0 {
			return 0, fmt.Errorf("unit %q in %g L: %w", dimension, volume, ErrBadVolume)
		}
		return u.factor / volume, nil
	default:
		if molarMass <= 0 {
			return 0, fmt.Errorf("unit %q without molar mass: %w", dimension, ErrDimension)
		}
		if volume <= 0 {
			return 0, fmt.Errorf("unit %q in %g L: %w", dimension, volume, ErrBadVolume)
		}
		return u.factor / molarMass / volume, nil
	}
}
