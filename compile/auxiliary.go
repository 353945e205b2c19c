// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/poly"
	"github.com/katalvlaran/crnc/symbol"
)

// auxKind names the non-polynomial function an auxiliary variable stands for.
type auxKind string

const (
	auxExp auxKind = "exp" // y = exp(p),  ∂y = y·∂p
	auxInv auxKind = "inv" // y = 1/p,     ∂y = −y²·∂p
	auxLog auxKind = "log" // y = log(p),  ∂y = w·∂p with w = 1/p
	auxPow auxKind = "pow" // y = p^e,     ∂y = e·y·w·∂p with w = 1/p
)

// auxVar is one recast sub-expression. arg is polynomial in species and
// earlier auxiliaries.
type auxVar struct {
	sym  symbol.Symbol
	kind auxKind
	arg  flow.Flow
	exp  flow.Flow     // auxPow only
	inv  symbol.Symbol // auxLog and auxPow: the 1/arg auxiliary
	def  flow.Flow     // definition over species and earlier auxiliaries
}

// recaster replaces exp, log, reciprocals and non-integer powers of species
// by fresh variables, so that every derivative becomes polynomial.
type recaster struct {
	gen   *symbol.Generator
	vars  []*auxVar
	count map[auxKind]int
}

func newRecaster(gen *symbol.Generator) *recaster {
	return &recaster{gen: gen, count: make(map[auxKind]int)}
}

// recast rewrites a normalized flow. Sub-expressions it cannot recast are
// left in place for poly.FromFlow to reject.
func (r *recaster) recast(f flow.Flow) (flow.Flow, error) {
	o, ok := f.(*flow.Op)
	if !ok || !flow.HasSpecies(f) {
		return f, nil
	}
	args := o.Args()

	switch o.Operator() {
	case flow.OpAdd, flow.OpMul:
		out := make([]flow.Flow, len(args))
		for i, a := range args {
			ra, err := r.recast(a)
			if err != nil {
				return nil, err
			}
			out[i] = ra
		}
		if o.Operator() == flow.OpAdd {
			return flow.Add(out...), nil
		}
		return flow.Mul(out...), nil

	case flow.OpPow:
		base, e := args[0], args[1]
		if flow.HasSpecies(e) {
			return f, nil
		}
		rb, err := r.recast(base)
		if err != nil {
			return nil, err
		}
		n, isNum := e.(*flow.Number)
		switch {
		case isNum && n.IsInt() && n.Sign() >= 0:
			return flow.Pow(rb, e), nil
		case isNum && n.IsInt():
			w, err := r.intern(auxInv, rb, nil)
			if err != nil {
				return nil, err
			}
			return flow.Normalize(flow.Pow(flow.Ref(w), flow.Neg(e))), nil
		}
		y, err := r.intern(auxPow, rb, e)
		if err != nil {
			return nil, err
		}
		return flow.Ref(y), nil

	case flow.OpExp, flow.OpLog, flow.OpSqrt:
		ra, err := r.recast(args[0])
		if err != nil {
			return nil, err
		}
		var y symbol.Symbol
		switch o.Operator() {
		case flow.OpExp:
			y, err = r.intern(auxExp, ra, nil)
		case flow.OpLog:
			y, err = r.intern(auxLog, ra, nil)
		default:
			y, err = r.intern(auxPow, ra, flow.Frac(1, 2))
		}
		if err != nil {
			return nil, err
		}
		return flow.Ref(y), nil
	}
	return f, nil
}

// intern returns the auxiliary of (kind, arg, exp), creating it on first use.
func (r *recaster) intern(kind auxKind, arg, exp flow.Flow) (symbol.Symbol, error) {
	arg = flow.Normalize(arg)
	for _, v := range r.vars {
		if v.kind == kind && flow.Equal(v.arg, arg) && (exp == nil || flow.Equal(v.exp, exp)) {
			return v.sym, nil
		}
	}
	if _, err := poly.FromFlow(arg); err != nil {
		return symbol.Symbol{}, err
	}

	v := &auxVar{kind: kind, arg: arg, exp: exp}
	switch kind {
	case auxExp:
		v.def = flow.Normalize(mustCall(flow.OpExp, arg))
	case auxInv:
		v.def = flow.Normalize(flow.Pow(arg, flow.Num(-1)))
	case auxLog:
		v.def = flow.Normalize(mustCall(flow.OpLog, arg))
	case auxPow:
		v.def = flow.Normalize(flow.Pow(arg, exp))
	}
	if kind == auxLog || kind == auxPow {
		w, err := r.intern(auxInv, arg, nil)
		if err != nil {
			return symbol.Symbol{}, err
		}
		v.inv = w
	}
	r.count[kind]++
	v.sym = r.gen.New(string(kind) + strconv.Itoa(r.count[kind]))
	r.vars = append(r.vars, v)

	return v.sym, nil
}

// derivative returns ∂v given the polynomial ODEs of every variable v.arg
// mentions.
func (v *auxVar) derivative(odes map[uint64]poly.Poly) (poly.Poly, error) {
	arg, err := poly.FromFlow(v.arg)
	if err != nil {
		return poly.Poly{}, err
	}
	dArg := timeDerivative(arg, odes)
	y := poly.Var(v.sym)

	switch v.kind {
	case auxExp:
		return y.Mul(dArg), nil
	case auxInv:
		return y.Mul(y).Mul(dArg).Neg(), nil
	case auxLog:
		return poly.Var(v.inv).Mul(dArg), nil
	case auxPow:
		return y.Mul(poly.Var(v.inv)).Mul(dArg).Scale(v.exp), nil
	}
	return poly.Poly{}, fmt.Errorf("compile: unknown auxiliary kind %q", v.kind)
}

// timeDerivative applies the chain rule: ∂p = Σ_v (∂p/∂v)·∂v.
func timeDerivative(p poly.Poly, odes map[uint64]poly.Poly) poly.Poly {
	out := poly.Zero()
	for _, s := range p.Species() {
		if d, ok := odes[s.Variant()]; ok {
			out = out.Add(p.Diff(s).Mul(d))
		}
	}
	return out
}

// mustCall wraps flow.Call for operators known to be functions.
func mustCall(op flow.Operator, arg flow.Flow) flow.Flow {
	f, err := flow.Call(op, arg)
	if err != nil {
		panic(err)
	}
	return f
}
