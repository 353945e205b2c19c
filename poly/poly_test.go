// SPDX-License-Identifier: MIT

package poly_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/poly"
	"github.com/katalvlaran/crnc/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vars returns x, y and a nonnegative parameter k, created in that order.
func vars() (symbol.Symbol, symbol.Symbol, *flow.Param, *symbol.Generator) {
	gen := symbol.NewGenerator()
	x := gen.New("x")
	y := gen.New("y")
	k := flow.NewParam(gen.New("k"), true)
	return x, y, k, gen
}

// TestNewMonomial_Canonical merges repeated factors and sorts them.
func TestNewMonomial_Canonical(t *testing.T) {
	x, y, k, _ := vars()
	m := poly.NewMonomial(flow.Num(2),
		poly.Factor{Species: y, Power: 1},
		poly.Factor{Species: x, Power: 2},
		poly.Factor{Species: y, Power: 1},
	)
	require.Len(t, m.Factors, 2)
	assert.True(t, m.Factors[0].Species.Same(x))
	assert.Equal(t, 4, m.Degree())
	assert.Equal(t, 2, m.Power(y))
	assert.True(t, m.Has(x))
	assert.Equal(t, "2*x^2*y^2", m.Format(nil))
	assert.Equal(t, flow.SignNonneg, m.Sign())
	assert.Equal(t, flow.SignNonpos, m.Neg().Sign())

	assert.True(t, poly.NewMonomial(flow.Sub(k, k)).IsZero())
}

// TestFromFlow_Expands distributes a square into graded order.
func TestFromFlow_Expands(t *testing.T) {
	x, y, _, _ := vars()
	sq := flow.Pow(flow.Add(flow.Ref(x), flow.Ref(y)), flow.Num(2))

	p, err := poly.FromFlow(sq)
	require.NoError(t, err)
	assert.Equal(t, "x^2 + 2*x*y + y^2", p.String())
	assert.Equal(t, 3, p.Len())

	expanded := flow.Add(
		flow.Pow(flow.Ref(x), flow.Num(2)),
		flow.Mul(flow.Num(2), flow.Ref(x), flow.Ref(y)),
		flow.Pow(flow.Ref(y), flow.Num(2)),
	)
	assert.True(t, flow.Equal(p.ToFlow(), expanded), "re-expansion must match")

	again, err := poly.FromFlow(p.ToFlow())
	require.NoError(t, err)
	assert.True(t, again.Equal(p))
}

// TestFromFlow_Coefficients keeps species-free parts as coefficients.
func TestFromFlow_Coefficients(t *testing.T) {
	x, _, k, _ := vars()
	p, err := poly.FromFlow(flow.Div(flow.Ref(x), k))
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, "k^(-1)*x", p.String())
	assert.Equal(t, flow.SignNonneg, p.Terms()[0].Sign())

	c, err := poly.FromFlow(flow.Add(k, flow.Num(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Terms()[0].Degree())

	zero, err := poly.FromFlow(flow.Sub(flow.Mul(flow.Ref(x), k), flow.Mul(k, flow.Ref(x))))
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0", zero.String())
}

// TestFromFlow_Rejects names the offending sub-expression.
func TestFromFlow_Rejects(t *testing.T) {
	x, y, _, _ := vars()

	_, err := poly.FromFlow(flow.Add(flow.Num(1), flow.Div(flow.Ref(x), flow.Ref(y))))
	require.ErrorIs(t, err, poly.ErrNotPolynomial)
	var npe *poly.NotPolynomialError
	require.True(t, errors.As(err, &npe))
	assert.Equal(t, "y^(-1)", npe.Expr.String())

	e, _ := flow.Call(flow.OpExp, flow.Ref(x))
	_, err = poly.FromFlow(e)
	assert.ErrorIs(t, err, poly.ErrNotPolynomial)
	assert.Contains(t, err.Error(), "exp(x)")

	_, err = poly.FromFlow(flow.Pow(flow.Ref(x), flow.Frac(1, 2)))
	assert.ErrorIs(t, err, poly.ErrNotPolynomial)

	_, err = poly.FromFlow(flow.Pow(flow.Ref(x), flow.Num(65)))
	assert.ErrorIs(t, err, poly.ErrNotPolynomial)

	// 2^64 + 2 does not fit an int64 and must not wrap around to x^2.
	huge := new(big.Int).Lsh(big.NewInt(1), 64)
	huge.Add(huge, big.NewInt(2))
	_, err = poly.FromFlow(flow.Pow(flow.Ref(x), flow.Rat(new(big.Rat).SetInt(huge))))
	require.ErrorIs(t, err, poly.ErrNotPolynomial)
	require.True(t, errors.As(err, &npe))
	assert.Contains(t, npe.Reason, "exponent")
}

// TestPoly_Diff takes partial derivatives term by term.
func TestPoly_Diff(t *testing.T) {
	x, y, k, _ := vars()
	p, err := poly.FromFlow(flow.Add(
		flow.Mul(k, flow.Pow(flow.Ref(x), flow.Num(3)), flow.Ref(y)),
		flow.Mul(flow.Num(2), flow.Ref(y)),
		flow.Num(7),
	))
	require.NoError(t, err)

	assert.Equal(t, "3*k*x^2*y", p.Diff(x).String())
	assert.Equal(t, "k*x^3 + 2", p.Diff(y).String())
	assert.True(t, p.Diff(x).Diff(x).Diff(x).Diff(x).IsZero())
}

// TestPoly_Substitute splits x into a plus/minus pair.
func TestPoly_Substitute(t *testing.T) {
	x, y, _, gen := vars()
	xp, xn := gen.New("xp"), gen.New("xn")

	p, err := poly.FromFlow(flow.Sub(flow.Mul(flow.Ref(x), flow.Ref(y)), flow.Ref(x)))
	require.NoError(t, err)

	diff := poly.Var(xp).Add(poly.Var(xn).Neg())
	q := p.Substitute(func(s symbol.Symbol) (poly.Poly, bool) {
		if s.Same(x) {
			return diff, true
		}
		return poly.Poly{}, false
	})
	assert.Equal(t, "y*xp - y*xn - xp + xn", q.String())
	assert.Equal(t, []symbol.Symbol{y, xp, xn}, q.Species())

	pos := q.Filter(func(m poly.Monomial) bool { return m.Sign() == flow.SignNonneg })
	assert.Equal(t, "y*xp + xn", pos.String())
}

// TestPoly_Arithmetic covers Add, Mul, Scale and PowInt.
func TestPoly_Arithmetic(t *testing.T) {
	x, y, k, _ := vars()
	px, py := poly.Var(x), poly.Var(y)

	assert.Equal(t, "x^2 - y^2", px.Add(py).Mul(px.Add(py.Neg())).String())
	assert.Equal(t, "k*x", px.Scale(k).String())
	assert.Equal(t, "1", px.PowInt(0).String())
	assert.True(t, px.Add(px.Neg()).IsZero())
}

// TestODE_Format checks the log rendering of compiler records.
func TestODE_Format(t *testing.T) {
	x, y, _, gen := vars()
	xp, xn := gen.New("xp"), gen.New("xn")

	ode := poly.PolyODE{Var: xp, Origin: x, Poly: poly.Var(y), Split: poly.Pos}
	assert.Equal(t, "∂xp = y   [pos of x]", ode.Format(nil))
	assert.Equal(t, "∂y = 0", poly.PolyODE{Var: y, Origin: y}.Format(nil))

	sub := poly.Subst{Original: x, Plus: xp, Minus: xn}
	assert.Equal(t, "x = xp - xn", sub.Format(nil))
	assert.Equal(t, "xp - xn", flow.Normalize(sub.Recovery()).String())

	eq := poly.Equation{Var: xn, Value: flow.Num(0)}
	assert.Equal(t, "xn = 0\n", poly.FormatEquations([]poly.Equation{eq}, nil))
	assert.Equal(t, "neg", poly.Neg.String())
}
