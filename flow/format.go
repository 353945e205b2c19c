// SPDX-License-Identifier: MIT

package flow

import (
	"math/big"
	"strings"

	"github.com/katalvlaran/crnc/symbol"
)

// Operator precedence used for parenthesization.
const (
	precAdd = iota + 1
	precMul
	precUnary
	precPow
	precAtom
)

// Format renders f through st.
func Format(f Flow, st *symbol.Style) string { return f.Format(st) }

// Format renders the node with minimal parentheses.
func (o *Op) Format(st *symbol.Style) string {
	switch o.op {
	case OpAdd:
		var b strings.Builder
		b.WriteString(formatIn(o.args[0], st, precAdd))
		for _, a := range o.args[1:] {
			if pos, ok := negatedTerm(a); ok {
				b.WriteString(" - ")
				b.WriteString(formatIn(pos, st, precMul))
				continue
			}
			b.WriteString(" + ")
			b.WriteString(formatIn(a, st, precAdd))
		}
		return b.String()
	case OpMul:
		args := o.args
		prefix := ""
		if n, ok := args[0].(*Number); ok && n.val.Cmp(big.NewRat(-1, 1)) == 0 && len(args) > 1 {
			prefix, args = "-", args[1:]
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = formatIn(a, st, precMul)
		}
		return prefix + strings.Join(parts, "*")
	case OpDiv:
		return formatIn(o.args[0], st, precMul) + "/" + formatIn(o.args[1], st, precUnary)
	case OpSub:
		return formatIn(o.args[0], st, precAdd) + " - " + formatIn(o.args[1], st, precMul)
	case OpNeg:
		return "-" + formatIn(o.args[0], st, precPow)
	case OpPow:
		return formatIn(o.args[0], st, precAtom) + "^" + formatIn(o.args[1], st, precAtom)
	}
	return string(o.op) + "(" + o.args[0].Format(st) + ")"
}

func precOf(f Flow) int {
	switch v := f.(type) {
	case *Number:
		if v.Sign() < 0 {
			return precUnary
		}
	case *Op:
		switch v.op {
		case OpAdd, OpSub:
			return precAdd
		case OpMul, OpDiv:
			return precMul
		case OpNeg:
			return precUnary
		case OpPow:
			return precPow
		}
	}
	return precAtom
}

func formatIn(f Flow, st *symbol.Style, parent int) string {
	s := f.Format(st)
	if precOf(f) < parent {
		return "(" + s + ")"
	}
	return s
}

// negatedTerm returns -t when t carries a negative leading constant.
func negatedTerm(t Flow) (Flow, bool) {
	switch v := t.(type) {
	case *Number:
		if v.Sign() < 0 {
			return &Number{val: new(big.Rat).Neg(v.val)}, true
		}
	case *Op:
		if v.op != OpMul {
			return nil, false
		}
		n, ok := v.args[0].(*Number)
		if !ok || n.Sign() >= 0 {
			return nil, false
		}
		abs := new(big.Rat).Neg(n.val)
		rest := v.args[1:]
		if abs.Cmp(ratOne) == 0 {
			if len(rest) == 1 {
				return rest[0], true
			}
			return &Op{op: OpMul, args: rest}, true
		}
		return &Op{op: OpMul, args: append([]Flow{&Number{val: abs}}, rest...)}, true
	}
	return nil, false
}
