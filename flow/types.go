// SPDX-License-Identifier: MIT

package flow

import (
	"math/big"
	"strconv"

	"github.com/katalvlaran/crnc/symbol"
)

// Flow is an immutable symbolic scalar expression.
type Flow interface {
	// Format renders the flow, resolving symbol names through st (nil = raw names).
	Format(st *symbol.Style) string

	// String is Format(nil).
	String() string

	// key is a canonical, variant-based string used for ordering and equality.
	key() string
}

// Operator names an Op node.
type Operator string

// Supported operators.
const (
	OpAdd  Operator = "+"
	OpSub  Operator = "-"
	OpMul  Operator = "*"
	OpDiv  Operator = "/"
	OpPow  Operator = "^"
	OpNeg  Operator = "neg"
	OpExp  Operator = "exp"
	OpLog  Operator = "log"
	OpSqrt Operator = "sqrt"
	OpAbs  Operator = "abs"
)

// IsFunction reports whether op is a one-argument named function.
func (op Operator) IsFunction() bool {
	switch op {
	case OpExp, OpLog, OpSqrt, OpAbs:
		return true
	}
	return false
}

// Number is an exact rational constant.
type Number struct {
	val *big.Rat
}

// Rat returns a copy of the value.
func (n *Number) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

// Float64 returns the nearest float64.
func (n *Number) Float64() float64 { f, _ := n.val.Float64(); return f }

// Sign returns -1, 0 or +1.
func (n *Number) Sign() int { return n.val.Sign() }

// IsZero reports n == 0.
func (n *Number) IsZero() bool { return n.val.Sign() == 0 }

// IsOne reports n == 1.
func (n *Number) IsOne() bool { return n.val.Cmp(ratOne) == 0 }

// IsInt reports whether n is an integer.
func (n *Number) IsInt() bool { return n.val.IsInt() }

func (n *Number) key() string { return "n:" + n.val.RatString() }

// Format prints integers exactly and other values in shortest float form.
func (n *Number) Format(*symbol.Style) string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return strconv.FormatFloat(n.Float64(), 'g', -1, 64)
}

func (n *Number) String() string { return n.Format(nil) }

// SpeciesRef is the instantaneous value of a species.
type SpeciesRef struct {
	sym symbol.Symbol
}

// Symbol returns the referenced species.
func (s *SpeciesRef) Symbol() symbol.Symbol { return s.sym }

func (s *SpeciesRef) key() string { return "s:" + strconv.FormatUint(s.sym.Variant(), 10) }

func (s *SpeciesRef) Format(st *symbol.Style) string { return st.Format(s.sym) }

func (s *SpeciesRef) String() string { return s.Format(nil) }

// Param is a named symbolic constant. Nonneg records the modelling
// assumption that its value is never negative.
type Param struct {
	sym    symbol.Symbol
	nonneg bool
}

// Symbol returns the parameter symbol.
func (p *Param) Symbol() symbol.Symbol { return p.sym }

// Nonneg reports the nonnegativity assumption.
func (p *Param) Nonneg() bool { return p.nonneg }

func (p *Param) key() string { return "p:" + strconv.FormatUint(p.sym.Variant(), 10) }

func (p *Param) Format(st *symbol.Style) string { return st.Format(p.sym) }

func (p *Param) String() string { return p.Format(nil) }

// Op is an operator application. Its argument list is never mutated.
type Op struct {
	op   Operator
	args []Flow
}

// Operator returns the node operator.
func (o *Op) Operator() Operator { return o.op }

// Args returns a copy of the arguments.
func (o *Op) Args() []Flow {
	out := make([]Flow, len(o.args))
	copy(out, o.args)
	return out
}

func (o *Op) key() string {
	buf := make([]byte, 0, 16*len(o.args))
	buf = append(buf, o.op...)
	buf = append(buf, '(')
	for i, a := range o.args {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, a.key()...)
	}
	buf = append(buf, ')')
	return string(buf)
}

func (o *Op) String() string { return o.Format(nil) }

// Compile-time assertions.
var (
	_ Flow = (*Number)(nil)
	_ Flow = (*SpeciesRef)(nil)
	_ Flow = (*Param)(nil)
	_ Flow = (*Op)(nil)
)
