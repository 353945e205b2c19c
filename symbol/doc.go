// SPDX-License-Identifier: MIT

// Package symbol provides globally unique, display-aware identifiers for
// species, parameters and samples.
//
// A Symbol pairs a human-readable name with a variant tag drawn from a
// Generator. Two symbols are the same entity iff their variants match; names
// may collide freely and are only disambiguated when rendered through a Style
// that carries an AlphaMap.
//
// Usage:
//
//	gen := symbol.NewGenerator()
//	a := gen.New("a")
//	b := gen.New("a") // distinct from a
//
//	st := symbol.NewStyle(symbol.WithAlphaMap())
//	fmt.Println(st.Format(a), st.Format(b)) // a a_1
//
// Concurrency:
//   - Generator is safe for concurrent use (single atomic counter).
//   - Style and AlphaMap belong to one rendering and are not synchronized.
package symbol
