// SPDX-License-Identifier: MIT

package netlist

import "errors"

var (
	// ErrConsumed is returned when a sample already mixed away is used again.
	ErrConsumed = errors.New("netlist: sample already consumed")

	// ErrNoSamples is returned by MixSamples without inputs.
	ErrNoSamples = errors.New("netlist: no samples to mix")

	// ErrBadVolume indicates a negative volume.
	ErrBadVolume = errors.New("netlist: volume must be nonnegative")

	// ErrBadTemperature indicates a nonpositive absolute temperature.
	ErrBadTemperature = errors.New("netlist: temperature must be positive")

	// ErrBadFraction indicates a split fraction outside (0,1].
	ErrBadFraction = errors.New("netlist: fraction must be in (0,1]")

	// ErrNilSample indicates a nil *Sample argument.
	ErrNilSample = errors.New("netlist: nil sample")
)
