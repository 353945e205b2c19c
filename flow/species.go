// SPDX-License-Identifier: MIT

package flow

import "github.com/katalvlaran/crnc/symbol"

// Species lists the species referenced by f in first-occurrence order,
// without duplicates.
func Species(f Flow) []symbol.Symbol {
	var out []symbol.Symbol
	seen := make(map[uint64]bool)
	walk(f, func(n Flow) {
		if r, ok := n.(*SpeciesRef); ok && !seen[r.sym.Variant()] {
			seen[r.sym.Variant()] = true
			out = append(out, r.sym)
		}
	})
	return out
}

// HasSpecies reports whether f references any species.
func HasSpecies(f Flow) bool {
	switch v := f.(type) {
	case *SpeciesRef:
		return true
	case *Op:
		for _, a := range v.args {
			if HasSpecies(a) {
				return true
			}
		}
	}
	return false
}

// Substitute replaces every species reference s for which repl returns ok
// with the returned flow. The result is not normalized.
func Substitute(f Flow, repl func(s symbol.Symbol) (Flow, bool)) Flow {
	switch v := f.(type) {
	case *SpeciesRef:
		if g, ok := repl(v.sym); ok {
			return g
		}
		return v
	case *Op:
		args := make([]Flow, len(v.args))
		changed := false
		for i, a := range v.args {
			args[i] = Substitute(a, repl)
			changed = changed || args[i] != a
		}
		if !changed {
			return v
		}
		return &Op{op: v.op, args: args}
	}
	return f
}

func walk(f Flow, visit func(Flow)) {
	visit(f)
	if o, ok := f.(*Op); ok {
		for _, a := range o.args {
			walk(a, visit)
		}
	}
}
