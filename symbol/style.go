// SPDX-License-Identifier: MIT

package symbol

import "strconv"

// DefaultVarchar separates a display name from its disambiguation index.
const DefaultVarchar = "_"

// StyleOption configures a Style before creation.
type StyleOption func(s *Style)

// WithVarchar sets the separator used when forming a disambiguated name.
func WithVarchar(sep string) StyleOption {
	return func(s *Style) { s.varchar = sep }
}

// WithSwap installs a name-substitution table applied before display.
// The table is copied.
func WithSwap(table map[string]string) StyleOption {
	return func(s *Style) {
		s.swap = make(map[string]string, len(table))
		for k, v := range table {
			s.swap[k] = v
		}
	}
}

// WithAlphaMap enables per-render disambiguation of colliding names.
func WithAlphaMap() StyleOption {
	return func(s *Style) { s.alpha = NewAlphaMap() }
}

// Style controls how symbols are rendered in logs and error messages.
// A nil *Style renders raw names.
type Style struct {
	varchar string
	swap    map[string]string
	alpha   *AlphaMap
}

// NewStyle creates a Style. Without options it renders swapped raw names
// and performs no disambiguation.
func NewStyle(opts ...StyleOption) *Style {
	s := &Style{varchar: DefaultVarchar}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Varchar returns the disambiguation separator.
func (s *Style) Varchar() string {
	if s == nil {
		return DefaultVarchar
	}
	return s.varchar
}

// Swap returns the substitution table (may be nil). Callers must not mutate it.
func (s *Style) Swap() map[string]string {
	if s == nil {
		return nil
	}
	return s.swap
}

// Map returns the remap table, or nil when disambiguation is off.
func (s *Style) Map() *AlphaMap {
	if s == nil {
		return nil
	}
	return s.alpha
}

// Fork returns a Style with the same settings and a fresh, empty AlphaMap
// (if the receiver had one), for an independent rendering.
func (s *Style) Fork() *Style {
	if s == nil {
		return nil
	}
	f := &Style{varchar: s.varchar, swap: s.swap}
	if s.alpha != nil {
		f.alpha = NewAlphaMap()
	}
	return f
}

// Format renders sym for display.
func (s *Style) Format(sym Symbol) string {
	if s == nil {
		return sym.name
	}
	name := sym.name
	if swapped, ok := s.swap[name]; ok {
		name = swapped
	}
	if s.alpha == nil {
		return name
	}
	return s.alpha.assign(sym.variant, name, s.varchar)
}

// AlphaMap remaps variants to unique display strings within one rendering.
type AlphaMap struct {
	byVariant map[uint64]string
	taken     map[string]uint64
}

// NewAlphaMap returns an empty remap table.
func NewAlphaMap() *AlphaMap {
	return &AlphaMap{
		byVariant: make(map[uint64]string),
		taken:     make(map[string]uint64),
	}
}

// Lookup returns the display string previously assigned to variant.
func (m *AlphaMap) Lookup(variant uint64) (string, bool) {
	name, ok := m.byVariant[variant]
	return name, ok
}

// Set pins variant to an explicit display string, overriding any earlier
// assignment for that variant.
func (m *AlphaMap) Set(variant uint64, display string) {
	if old, ok := m.byVariant[variant]; ok {
		delete(m.taken, old)
	}
	m.byVariant[variant] = display
	m.taken[display] = variant
}

// Len reports the number of assigned variants.
func (m *AlphaMap) Len() int { return len(m.byVariant) }

// assign returns the display string of variant, choosing name if free and
// name+varchar+k (smallest k >= 1) otherwise.
func (m *AlphaMap) assign(variant uint64, name, varchar string) string {
	if display, ok := m.byVariant[variant]; ok {
		return display
	}
	display := name
	for k := 1; ; k++ {
		if _, used := m.taken[display]; !used {
			break
		}
		display = name + varchar + strconv.Itoa(k)
	}
	m.byVariant[variant] = display
	m.taken[display] = variant

	return display
}
