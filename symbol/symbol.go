// SPDX-License-Identifier: MIT

package symbol

import (
	"fmt"
	"sync/atomic"
)

// Symbol is an immutable identifier. The zero Symbol is invalid.
type Symbol struct {
	name    string // display name before Style remapping
	variant uint64 // unique tag from a Generator; 0 means unset
}

// Name returns the raw (unremapped) name.
func (s Symbol) Name() string { return s.name }

// Variant returns the unique tag assigned at creation.
func (s Symbol) Variant() uint64 { return s.variant }

// IsZero reports whether s was never produced by a Generator.
func (s Symbol) IsZero() bool { return s.variant == 0 }

// Same reports whether a and b denote the same entity.
// Names are ignored: only variants are compared.
func (s Symbol) Same(other Symbol) bool { return s.variant == other.variant }

// String renders the symbol with its variant, e.g. "a#3". It is meant for
// diagnostics; use Style.Format for user-facing output.
func (s Symbol) String() string {
	return fmt.Sprintf("%s#%d", s.name, s.variant)
}

// Less orders symbols by creation (variant) order.
func Less(a, b Symbol) bool { return a.variant < b.variant }

// Generator hands out monotonically increasing variants.
// nextVariant is an atomic counter, mirroring how edge IDs are issued in a
// shared graph: one counter per compilation session, safe across goroutines.
type Generator struct {
	nextVariant uint64
}

// NewGenerator returns a Generator whose first symbol has variant 1.
func NewGenerator() *Generator { return &Generator{} }

// New creates a fresh Symbol named name.
func (g *Generator) New(name string) Symbol {
	return Symbol{name: name, variant: atomic.AddUint64(&g.nextVariant, 1)}
}

// Fresh creates a new Symbol that shares s's display name but is a
// distinct entity.
func (g *Generator) Fresh(s Symbol) Symbol { return g.New(s.name) }

// Issued reports how many symbols were created so far.
func (g *Generator) Issued() uint64 { return atomic.LoadUint64(&g.nextVariant) }

// Reset rewinds the counter. Only tests should call it: symbols created
// before a Reset may collide with symbols created after.
func (g *Generator) Reset() { atomic.StoreUint64(&g.nextVariant, 0) }
