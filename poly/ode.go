// SPDX-License-Identifier: MIT

package poly

import (
	"strings"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// SplitTag records whether an ODE variable is half of a positivized pair.
type SplitTag int

const (
	// Unsplit variables keep their original meaning.
	Unsplit SplitTag = iota

	// Pos is the positive half of a split variable.
	Pos

	// Neg is the negative half; it always directly follows its Pos.
	Neg
)

func (t SplitTag) String() string {
	switch t {
	case Pos:
		return "pos"
	case Neg:
		return "neg"
	}
	return "unsplit"
}

// PolyODE is d Var/dt = Poly. Origin is the pre-split variable (Var itself
// when Unsplit).
type PolyODE struct {
	Var    symbol.Symbol
	Origin symbol.Symbol
	Poly   Poly
	Split  SplitTag
}

// Format renders "∂x = ..." with the split tag when relevant.
func (o PolyODE) Format(st *symbol.Style) string {
	s := "∂" + st.Format(o.Var) + " = " + o.Poly.Format(st)
	if o.Split != Unsplit {
		s += "   [" + o.Split.String() + " of " + st.Format(o.Origin) + "]"
	}
	return s
}

// Equation is the algebraic definition Var = Value.
type Equation struct {
	Var   symbol.Symbol
	Value flow.Flow
}

// Format renders "x = f".
func (e Equation) Format(st *symbol.Style) string {
	return st.Format(e.Var) + " = " + e.Value.Format(st)
}

// Subst records that Original = Plus - Minus.
type Subst struct {
	Original symbol.Symbol
	Plus     symbol.Symbol
	Minus    symbol.Symbol
}

// Recovery returns the flow Plus - Minus.
func (s Subst) Recovery() flow.Flow {
	return flow.Sub(flow.Ref(s.Plus), flow.Ref(s.Minus))
}

// Format renders "x = x⁺ - x⁻".
func (s Subst) Format(st *symbol.Style) string {
	return st.Format(s.Original) + " = " + st.Format(s.Plus) + " - " + st.Format(s.Minus)
}

// FormatODEs renders one ODE per line.
func FormatODEs(odes []PolyODE, st *symbol.Style) string {
	var b strings.Builder
	for _, o := range odes {
		b.WriteString(o.Format(st))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatEquations renders one equation per line.
func FormatEquations(eqs []Equation, st *symbol.Style) string {
	var b strings.Builder
	for _, e := range eqs {
		b.WriteString(e.Format(st))
		b.WriteByte('\n')
	}
	return b.String()
}
