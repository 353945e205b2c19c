// SPDX-License-Identifier: MIT

// Package netlist is the network-assembly sink of the compiler.
//
// 🚀 What it holds
//
//   - Sample: a named volume of solution (liters, kelvin) with its StateMap.
//     Samples are created empty, filled via the state package, combined with
//     MixSamples (volume-weighted, sources consumed) or portioned with
//     SplitSample.
//   - Netlist: an append-only, emission-ordered list of entries (species,
//     samples, reactions, reports). It is safe for concurrent Emit and read;
//     a compilation emits its entries in one call so readers never observe a
//     half-written result.
//
// ✨ Queries
//
//   - Reactions / Reports / Samples / SpeciesList filter entries by kind.
//   - RelevantReactions(sample) keeps the reactions whose every reactant and
//     product is present in the sample.
package netlist
