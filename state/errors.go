// SPDX-License-Identifier: MIT
// Package state: sentinel error set.
// Every message is prefixed with "state: ..."; wrap with fmt.Errorf("ctx: %w")
// at the detection site so callers keep errors.Is matching.

package state

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned for negative sizes or extensions.
	ErrBadShape = errors.New("state: invalid size")

	// ErrOutOfRange indicates a mean/covariance index outside the State.
	ErrOutOfRange = errors.New("state: index out of range")

	// ErrDimensionMismatch indicates an initializer of the wrong length.
	ErrDimensionMismatch = errors.New("state: dimension mismatch")

	// ErrReinitialized indicates a second InitZero/InitMeans/InitAll call.
	ErrReinitialized = errors.New("state: already initialized")

	// ErrNotInitialized indicates use of a State before initialization.
	ErrNotInitialized = errors.New("state: not initialized")

	// ErrNoCovariance indicates covariance access on a non-LNA State.
	ErrNoCovariance = errors.New("state: no covariance (LNA disabled)")

	// ErrDuplicateSpecies indicates adding a species already in the StateMap.
	ErrDuplicateSpecies = errors.New("state: duplicate species")

	// ErrUnknownSpecies indicates a lookup of a species not in the StateMap.
	ErrUnknownSpecies = errors.New("state: unknown species")

	// ErrNegativeValue indicates a negative mean or variance.
	ErrNegativeValue = errors.New("state: negative value")

	// ErrDimension indicates an unrecognized unit, or a mass unit for a
	// species without molar mass.
	ErrDimension = errors.New("state: unrecognized dimension")

	// ErrBadVolume indicates a nonpositive volume where one is required.
	ErrBadVolume = errors.New("state: volume must be positive")

	// ErrNonFinite indicates a NaN or infinite mean, variance or volume.
	ErrNonFinite = errors.New("state: value is not finite")

	// ErrAliased indicates merging a StateMap into itself.
	ErrAliased = errors.New("state: cannot merge a state map into itself")
)

// ---------- error context tags ----------

const (
	ctxMean     = "Mean"
	ctxSetMean  = "SetMean"
	ctxAddMean  = "AddMean"
	ctxCovar    = "Covar"
	ctxSetCovar = "SetCovar"
	ctxAddCovar = "AddCovar"
)

// stateErrorf attaches method and coordinates to a sentinel.
func stateErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("State.%s(%d,%d): %w", method, i, j, err)
}
