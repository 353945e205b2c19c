// SPDX-License-Identifier: MIT

// Package state holds the numeric state of a sample: the mean molar
// concentration of every species and, under the Linear Noise Approximation
// (LNA), their covariance.
//
// The package provides:
//
//   - State: a flat float64 buffer, means first, then (LNA only) an n×n
//     covariance block in row-major order (offset = n + i*n + j). A State is
//     initialized exactly once and grows only through Extend, which returns
//     a new, larger State.
//   - StateMap: the species list of one sample plus its reverse index and
//     State. Species enter through AddDimensionedSpecies (unit conversion,
//     duplicate and sign checks) or by merging another sample with Mix
//     (volume-scaled) or Split (unscaled).
//
// Errors are package sentinels ("state: ...") wrapped with the method and
// the offending species or index; match them with errors.Is.
//
// Covariance symmetry is the caller's responsibility: the engine writes
// both (i,j) and (j,i) when merging but never checks it.
package state
