// SPDX-License-Identifier: MIT

package flow_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture holds two species and two parameters created in a fixed order so
// that canonical operand order is predictable: x, y, k (≥0), p (free).
type fixture struct {
	x, y symbol.Symbol
	k, p *flow.Param
}

func newFixture() fixture {
	gen := symbol.NewGenerator()
	x := gen.New("x")
	y := gen.New("y")
	return fixture{
		x: x,
		y: y,
		k: flow.NewParam(gen.New("k"), true),
		p: flow.NewParam(gen.New("p"), false),
	}
}

// TestNormalize_CollectsLikeTerms checks numeric folding and term collection.
func TestNormalize_CollectsLikeTerms(t *testing.T) {
	fx := newFixture()
	x := flow.Ref(fx.x)

	f := flow.Add(flow.Mul(fx.k, x), flow.Mul(flow.Num(2), fx.k, x), flow.Num(1), flow.Num(2))
	assert.Equal(t, "3*k*x + 3", flow.Normalize(f).String())

	assert.True(t, flow.IsZero(flow.Sub(x, x)), "x - x must cancel")
	assert.Equal(t, "x^2", flow.Normalize(flow.Mul(x, x)).String())
	assert.Equal(t, "x^6", flow.Normalize(flow.Pow(flow.Pow(x, flow.Num(2)), flow.Num(3))).String())
	assert.Equal(t, "0.5*x", flow.Normalize(flow.Div(x, flow.Num(2))).String())
	assert.Equal(t, "x - 3*y", flow.Normalize(flow.Sub(x, flow.Mul(flow.Num(3), flow.Ref(fx.y)))).String())
	assert.Equal(t, "8", flow.Normalize(flow.Pow(flow.Num(2), flow.Num(3))).String())
	assert.Equal(t, "4*x^2", flow.Normalize(flow.Pow(flow.Mul(flow.Num(2), x), flow.Num(2))).String())
}

// TestNormalize_Idempotent verifies that normal forms are fixed points.
func TestNormalize_Idempotent(t *testing.T) {
	fx := newFixture()
	x, y := flow.Ref(fx.x), flow.Ref(fx.y)
	exp, err := flow.Call(flow.OpExp, fx.p)
	require.NoError(t, err)

	cases := []flow.Flow{
		flow.Add(flow.Mul(y, x, flow.Num(3)), flow.Neg(flow.Mul(x, y)), exp),
		flow.Div(flow.Sub(x, fx.k), flow.Num(4)),
		flow.Pow(flow.Add(x, y), flow.Num(2)),
		flow.Mul(fx.k, flow.Pow(fx.k, flow.Num(-1)), x),
	}
	for _, c := range cases {
		once := flow.Normalize(c)
		twice := flow.Normalize(once)
		assert.Equal(t, once.String(), twice.String())
		assert.True(t, flow.Equal(once, c))
	}
	assert.Equal(t, "x", flow.Normalize(cases[3]).String(), "k * k^-1 cancels")
}

// TestNormalize_Functions folds exact function values only.
func TestNormalize_Functions(t *testing.T) {
	sq, _ := flow.Call(flow.OpSqrt, flow.Frac(9, 4))
	assert.Equal(t, "1.5", flow.Normalize(sq).String())

	e0, _ := flow.Call(flow.OpExp, flow.Num(0))
	assert.Equal(t, "1", flow.Normalize(e0).String())

	l1, _ := flow.Call(flow.OpLog, flow.Num(1))
	assert.True(t, flow.IsZero(l1))

	ab, _ := flow.Call(flow.OpAbs, flow.Num(-7))
	assert.Equal(t, "7", flow.Normalize(ab).String())

	e2, _ := flow.Call(flow.OpExp, flow.Num(2))
	_, known := flow.Value(e2)
	assert.False(t, known, "exp(2) has no exact rational value")

	_, err := flow.Call(flow.OpAdd, flow.Num(1))
	assert.ErrorIs(t, err, flow.ErrArity)
}

// TestValue returns exact rationals.
func TestValue(t *testing.T) {
	v, ok := flow.Value(flow.Add(flow.Num(1), flow.Frac(1, 2)))
	require.True(t, ok)
	assert.Equal(t, 0, v.Cmp(big.NewRat(3, 2)))

	fx := newFixture()
	_, ok = flow.Value(flow.Ref(fx.x))
	assert.False(t, ok)
}

// TestSignOf covers the three-way static sign decision.
func TestSignOf(t *testing.T) {
	fx := newFixture()
	x := flow.Ref(fx.x)
	expP, _ := flow.Call(flow.OpExp, fx.p)
	logHalf, _ := flow.Call(flow.OpLog, flow.Frac(1, 2))

	cases := []struct {
		name string
		f    flow.Flow
		want flow.Sign
	}{
		{"negative number", flow.Num(-2), flow.SignNonpos},
		{"zero", flow.Num(0), flow.SignNonneg},
		{"species", x, flow.SignNonneg},
		{"nonneg param", fx.k, flow.SignNonneg},
		{"free param", fx.p, flow.SignUnknown},
		{"negated nonneg param", flow.Neg(fx.k), flow.SignNonpos},
		{"even power of free param", flow.Pow(fx.p, flow.Num(2)), flow.SignNonneg},
		{"odd power of negative", flow.Pow(flow.Neg(fx.k), flow.Num(3)), flow.SignNonpos},
		{"difference of nonneg", flow.Sub(fx.k, x), flow.SignUnknown},
		{"exp of free param", expP, flow.SignNonneg},
		{"sum of nonneg", flow.Add(fx.k, flow.Num(1), x), flow.SignNonneg},
		{"product with free", flow.Mul(fx.k, fx.p), flow.SignUnknown},
		{"quotient", flow.Div(flow.Num(-1), fx.k), flow.SignNonpos},
		{"log below one", logHalf, flow.SignNonpos},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, flow.SignOf(c.f))
		})
	}
	assert.Equal(t, "indeterminate", flow.SignUnknown.String())
}

// TestEval covers bindings, unbound symbols and domain errors.
func TestEval(t *testing.T) {
	fx := newFixture()
	x := flow.Ref(fx.x)
	env := flow.NewEnv().Bind(fx.x, 3).Bind(fx.k.Symbol(), 1)

	v, err := flow.Eval(flow.Add(flow.Mul(flow.Num(2), x), fx.k), env)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	_, err = flow.Eval(flow.Mul(fx.p, x), env)
	require.ErrorIs(t, err, flow.ErrNotNumeric)
	var nn *flow.NotNumericError
	require.True(t, errors.As(err, &nn))
	assert.Equal(t, "p", nn.Sym.Name())

	lg, _ := flow.Call(flow.OpLog, flow.Num(-1))
	_, err = flow.Eval(lg, nil)
	assert.ErrorIs(t, err, flow.ErrDomain)

	_, err = flow.Eval(flow.Div(x, flow.Num(0)), env)
	assert.ErrorIs(t, err, flow.ErrDomain)
}

// TestNewFloat rejects non-finite input instead of panicking.
func TestNewFloat(t *testing.T) {
	n, err := flow.NewFloat(0.25)
	require.NoError(t, err)
	assert.Equal(t, "0.25", n.String())

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := flow.NewFloat(f)
		assert.ErrorIs(t, err, flow.ErrDomain, "%v", f)
	}
}

// TestSubstituteAndSpecies replaces a species by a split difference.
func TestSubstituteAndSpecies(t *testing.T) {
	gen := symbol.NewGenerator()
	x := gen.New("x")
	y := gen.New("y")
	xp := gen.New("xp")
	xn := gen.New("xn")

	f := flow.Add(flow.Mul(flow.Num(2), flow.Ref(x), flow.Ref(y)), flow.Ref(x))
	assert.Equal(t, []symbol.Symbol{x, y}, flow.Species(f))
	assert.True(t, flow.HasSpecies(f))
	assert.False(t, flow.HasSpecies(flow.Num(3)))

	g := flow.Substitute(f, func(s symbol.Symbol) (flow.Flow, bool) {
		if s.Same(x) {
			return flow.Sub(flow.Ref(xp), flow.Ref(xn)), true
		}
		return nil, false
	})
	assert.Equal(t, "2*(xp - xn)*y + xp - xn", flow.Normalize(g).String())
}

// TestFormat_UsesStyle renders names through an AlphaMap.
func TestFormat_UsesStyle(t *testing.T) {
	gen := symbol.NewGenerator()
	a1 := gen.New("a")
	a2 := gen.New("a")
	st := symbol.NewStyle(symbol.WithAlphaMap())

	f := flow.Normalize(flow.Mul(flow.Ref(a1), flow.Ref(a2)))
	assert.Equal(t, "a*a_1", flow.Format(f, st))
	assert.Equal(t, "a*a", f.String())
}
