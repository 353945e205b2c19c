// SPDX-License-Identifier: MIT

// Package flow implements symbolic scalar expressions ("flows") over species
// values, named parameters and exact numeric constants.
//
// 🚀 What is a Flow?
//
//	A Flow is an immutable expression tree:
//	  • *Number      — exact rational constant (math/big.Rat)
//	  • *SpeciesRef  — instantaneous value of a species
//	  • *Param       — named symbolic constant (optionally assumed ≥ 0)
//	  • *Op          — operator over sub-flows (+ - * / ^ neg exp log sqrt abs)
//
// ✨ Key features:
//   - Normalize: canonical simplified form (flattening, numeric folding,
//     like-term collection, sorted operands) so equal flows compare equal.
//   - SignOf: static three-way sign decision (≥0, ≤0, unknown). There is no
//     runtime sign branching anywhere in this module.
//   - Eval: numeric evaluation under an Env of species/param bindings.
//   - Substitute: replace species references (used by variable splitting).
//
// ⚙️ Usage:
//
//	gen := symbol.NewGenerator()
//	x := gen.New("x")
//	k := flow.NewParam(gen.New("k"), true)
//	f := flow.Normalize(flow.Add(flow.Mul(k, flow.Ref(x)), flow.Mul(flow.Num(2), k, flow.Ref(x))))
//	fmt.Println(f) // 3*k*x
//
// Constructors build raw trees; call Normalize before comparing or
// classifying.
package flow
