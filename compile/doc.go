// SPDX-License-Identifier: MIT

// Package compile turns a symbolic chemical reaction network into a literal
// mass-action network and a numeric sample state.
//
// Pipeline (per sample):
//
//	Polynomize   CRN            → polynomial ODEs + initial equations
//	                              (exp, log, sqrt and reciprocals recast as
//	                              auxiliary variables)
//	Positivize   polynomial ODEs → nonnegative ODEs (x = x⁺ − x⁻ splits)
//	ToReactions  nonnegative ODEs → mass-action reactions
//
// MassCompileSample runs the three stages over the reactions relevant to one
// netlist.Sample, builds a fresh output sample from the evaluated initial
// values, and emits species, sample, reactions and reports into the Netlist
// only when every stage succeeded.
//
// Signs are decided statically (flow.SignOf). A coefficient whose sign cannot
// be proven is a *SignError; a malformed ODE list is a *StructureError.
// Stage dumps go to the configured *log.Logger, headed
// "--- <stage> <sample> ---". Optional Prometheus metrics count stage
// outcomes, durations, emitted reactions and splits.
//
// Complexity:
//
//	– Polynomize:  O(R·S) derivative terms, then polynomial expansion.
//	– Positivize:  O(S) fixpoint rounds, each O(total monomials).
//	– ToReactions: O(total monomials).
//
// Example usage:
//
//	gen := symbol.NewGenerator()
//	out, err := compile.MassCompileSample(net, sample, gen,
//	    compile.WithParams(env),
//	    compile.WithLogger(log.Default()),
//	)
package compile
