// SPDX-License-Identifier: MIT

// Package crnc is a compiler for chemical reaction networks: it turns
// species and reactions with arbitrary symbolic rates into a literal
// mass-action network plus a numeric initial state.
//
// 🚀 What is inside?
//
//	• symbol/   – identities (Symbol, Generator) and display Style
//	• flow/     – symbolic expressions: normalize, sign, evaluate, substitute
//	• poly/     – polynomials over species, PolyODE, Equation, Subst
//	• chem/     – Species, Complex, RateLaw, ReactionValue, CRN
//	• state/    – State (mean + LNA covariance) and StateMap with unit handling
//	• netlist/  – Sample, mixing/splitting, the append-only Netlist sink
//	• compile/  – Polynomize → Positivize → ToReactions, MassCompileSample
//
// ✨ Guarantees
//
//   - Every emitted reaction has a provably nonnegative rate constant.
//   - Variables that can go negative are split as x = x⁺ − x⁻ and can be
//     read back through report entries.
//   - Signs are decided statically; anything indeterminate is an error.
//
// Quick start:
//
//	crnc compile examples/decay.yaml
//	crnc -c examples/crnc.yaml compile examples/oscillator.yaml
package crnc
