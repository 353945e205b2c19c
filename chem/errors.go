// SPDX-License-Identifier: MIT

package chem

import "errors"

// Sentinel errors for CRN construction.
var (
	// ErrUnknownSpecies indicates a reaction or initial value mentions an undeclared species.
	ErrUnknownSpecies = errors.New("chem: unknown species")

	// ErrDuplicateSpecies indicates a species declared twice in one CRN.
	ErrDuplicateSpecies = errors.New("chem: duplicate species")

	// ErrBadCount indicates a non-positive multiplicity in a complex.
	ErrBadCount = errors.New("chem: multiplicity must be positive")
)
