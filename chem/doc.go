// SPDX-License-Identifier: MIT

// Package chem models chemical reaction networks: species, complexes
// (multisets of species), rate laws, reactions and the CRN that groups them.
//
// A CRN is the input of the compiler: every species' derivative is the sum,
// over reactions, of the net stoichiometry times the reaction rate. A rate is
// either mass action (k times the product of reactant values) or a general
// flow expression.
package chem
