// SPDX-License-Identifier: MIT

package netlist

import (
	"strings"
	"sync"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// Entry is one item of a Netlist. The set of entry kinds is closed.
type Entry interface {
	Format(st *symbol.Style) string
	entry()
}

// SpeciesEntry declares a species.
type SpeciesEntry struct{ Species chem.Species }

// SampleEntry declares a sample.
type SampleEntry struct{ Sample *Sample }

// ReactionEntry declares a reaction.
type ReactionEntry struct{ Reaction chem.ReactionValue }

// ReportEntry names a quantity to observe. Label is the user-facing name,
// usually an original variable that was split.
type ReportEntry struct {
	Label string
	Var   symbol.Symbol
	Value flow.Flow
}

func (SpeciesEntry) entry()  {}
func (SampleEntry) entry()   {}
func (ReactionEntry) entry() {}
func (ReportEntry) entry()   {}

// Format renders "species a".
func (e SpeciesEntry) Format(st *symbol.Style) string { return "species " + e.Species.Format(st) }

// Format renders the sample header and state.
func (e SampleEntry) Format(st *symbol.Style) string { return e.Sample.Format(st) }

// Format renders the reaction.
func (e ReactionEntry) Format(st *symbol.Style) string { return e.Reaction.Format(st) }

// Format renders "report label = value".
func (e ReportEntry) Format(st *symbol.Style) string {
	return "report " + e.Label + " = " + flow.Format(e.Value, st)
}

// Netlist is an append-only entry list.
type Netlist struct {
	mu      sync.RWMutex
	entries []Entry
}

// New returns an empty Netlist.
func New() *Netlist { return &Netlist{} }

// Emit appends entries atomically, in order.
func (n *Netlist) Emit(entries ...Entry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, entries...)
}

// Len is the number of entries.
func (n *Netlist) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Entries returns a snapshot in emission order.
func (n *Netlist) Entries() []Entry {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]Entry(nil), n.entries...)
}

// SpeciesList returns the declared species in emission order.
func (n *Netlist) SpeciesList() []chem.Species {
	var out []chem.Species
	for _, e := range n.Entries() {
		if se, ok := e.(SpeciesEntry); ok {
			out = append(out, se.Species)
		}
	}
	return out
}

// Samples returns the declared samples in emission order.
func (n *Netlist) Samples() []*Sample {
	var out []*Sample
	for _, e := range n.Entries() {
		if se, ok := e.(SampleEntry); ok {
			out = append(out, se.Sample)
		}
	}
	return out
}

// Reactions returns the declared reactions in emission order.
func (n *Netlist) Reactions() []chem.ReactionValue {
	var out []chem.ReactionValue
	for _, e := range n.Entries() {
		if re, ok := e.(ReactionEntry); ok {
			out = append(out, re.Reaction)
		}
	}
	return out
}

// Reports returns the report entries in emission order.
func (n *Netlist) Reports() []ReportEntry {
	var out []ReportEntry
	for _, e := range n.Entries() {
		if re, ok := e.(ReportEntry); ok {
			out = append(out, re)
		}
	}
	return out
}

// RelevantReactions keeps the reactions whose every species is present in
// the sample.
func (n *Netlist) RelevantReactions(s *Sample) []chem.ReactionValue {
	var out []chem.ReactionValue
	for _, r := range n.Reactions() {
		if relevant(r, s) {
			out = append(out, r)
		}
	}
	return out
}

func relevant(r chem.ReactionValue, s *Sample) bool {
	for _, sym := range r.Species() {
		if !s.StateMap.HasSpecies(sym) {
			return false
		}
	}
	return true
}

// Format renders one entry per block, in emission order.
func (n *Netlist) Format(st *symbol.Style) string {
	var b strings.Builder
	for _, e := range n.Entries() {
		b.WriteString(strings.TrimRight(e.Format(st), "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}
