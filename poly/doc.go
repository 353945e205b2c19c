// SPDX-License-Identifier: MIT

// Package poly is the canonical polynomial form of flows.
//
// A Poly is a sum of Monomials, each a species-free coefficient Flow times a
// product of species powers (Factors). Like terms are always collected and
// terms are kept in a fixed graded order (higher total degree first, then
// factors by species creation order), so two equal polynomials print the same.
//
// The package also carries the records exchanged between compiler stages:
// PolyODE (variable, right-hand side, split tag), Equation (symbol = flow)
// and Subst (an original variable split into a plus/minus pair).
//
// Conversion from flows (FromFlow) distributes products over sums, expands
// nonnegative integer powers, and keeps any species-free sub-expression as
// an opaque coefficient. Anything else is rejected with NotPolynomialError.
package poly
