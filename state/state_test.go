// SPDX-License-Identifier: MIT

// Package state_test covers the State buffer and StateMap merging.
package state_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/state"
	"github.com/katalvlaran/crnc/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestState_InitOnce ensures every initializer refuses a second call.
func TestState_InitOnce(t *testing.T) {
	s, err := state.NewState(2, true)
	require.NoError(t, err)
	require.False(t, s.Initialized())

	_, err = s.Mean(0)
	require.ErrorIs(t, err, state.ErrNotInitialized)

	require.NoError(t, s.InitMeans([]float64{1, 2}))
	require.ErrorIs(t, s.InitZero(), state.ErrReinitialized)
	require.ErrorIs(t, s.InitMeans([]float64{1, 2}), state.ErrReinitialized)
	require.ErrorIs(t, s.InitAll([]float64{1, 2}, make([]float64, 4)), state.ErrReinitialized)

	_, err = state.NewState(-1, false)
	require.ErrorIs(t, err, state.ErrBadShape)
}

// TestState_Layout checks the row-major covariance layout after the means.
func TestState_Layout(t *testing.T) {
	s, _ := state.NewState(2, true)
	require.NoError(t, s.InitAll([]float64{1, 2}, []float64{10, 11, 12, 13}))

	assert.Equal(t, []float64{1, 2, 10, 11, 12, 13}, s.Vector())
	c, err := s.Covar(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 12.0, c)

	require.NoError(t, s.AddCovar(0, 1, 1))
	c, _ = s.Covar(0, 1)
	assert.Equal(t, 12.0, c)

	_, err = s.Covar(2, 0)
	require.ErrorIs(t, err, state.ErrOutOfRange)
	require.ErrorIs(t, s.SetMean(-1, 0), state.ErrOutOfRange)
}

// TestState_NoCovariance rejects covariance access without LNA.
func TestState_NoCovariance(t *testing.T) {
	s, _ := state.NewState(1, false)
	require.ErrorIs(t, s.InitAll([]float64{1}, []float64{1}), state.ErrNoCovariance)
	require.NoError(t, s.InitZero())
	_, err := s.Covar(0, 0)
	require.ErrorIs(t, err, state.ErrNoCovariance)
	assert.Len(t, s.Vector(), 1)
}

// TestState_InitDimensions rejects initializers of the wrong length.
func TestState_InitDimensions(t *testing.T) {
	s, _ := state.NewState(2, true)
	require.ErrorIs(t, s.InitMeans([]float64{1}), state.ErrDimensionMismatch)
	require.ErrorIs(t, s.InitAll([]float64{1, 2}, []float64{1}), state.ErrDimensionMismatch)
	require.False(t, s.Initialized(), "failed init leaves the state untouched")
}

// TestState_Extend keeps old values at their coordinates and zeroes the rest.
func TestState_Extend(t *testing.T) {
	s, _ := state.NewState(2, true)
	require.NoError(t, s.InitAll([]float64{1, 2}, []float64{10, 11, 12, 13}))

	big, err := s.Extend(1)
	require.NoError(t, err)
	require.Equal(t, 3, big.Size())
	assert.Equal(t, []float64{1, 2, 0}, big.Means())

	for _, tc := range []struct {
		i, j int
		want float64
	}{
		{0, 0, 10}, {0, 1, 11}, {1, 0, 12}, {1, 1, 13},
		{0, 2, 0}, {2, 0, 0}, {2, 2, 0},
	} {
		got, err := big.Covar(tc.i, tc.j)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "covar(%d,%d)", tc.i, tc.j)
	}
	assert.Equal(t, 2, s.Size(), "receiver unchanged")

	_, err = s.Extend(-1)
	require.ErrorIs(t, err, state.ErrBadShape)

	fresh, _ := state.NewState(1, false)
	_, err = fresh.Extend(1)
	require.ErrorIs(t, err, state.ErrNotInitialized)
}

// TestState_CloneIndependent ensures Clone does not share storage.
func TestState_CloneIndependent(t *testing.T) {
	s, _ := state.NewState(1, false)
	require.NoError(t, s.InitMeans([]float64{5}))
	c := s.Clone()
	require.NoError(t, c.SetMean(0, 7))
	m, _ := s.Mean(0)
	assert.Equal(t, 5.0, m)
}

func newSpecies(gen *symbol.Generator, name string, molarMass float64) chem.Species {
	return chem.NewSpecies(gen.New(name), molarMass)
}

// TestStateMap_AddDimensionedSpecies converts every unit family to molarity.
func TestStateMap_AddDimensionedSpecies(t *testing.T) {
	gen := symbol.NewGenerator()
	m := state.NewStateMap(true)

	a := newSpecies(gen, "a", 0)
	b := newSpecies(gen, "b", 0)
	c := newSpecies(gen, "c", 100)

	require.NoError(t, m.AddDimensionedSpecies(a, 2, 4, "mM", 1))
	require.NoError(t, m.AddDimensionedSpecies(b, 3, 0, "mol", 2))
	require.NoError(t, m.AddDimensionedSpecies(c, 1, 0, "g", 1))

	got, err := m.Mean(a.Symbol)
	require.NoError(t, err)
	assert.InDelta(t, 2e-3, got, 1e-18)
	v, err := m.Covar(a.Symbol, a.Symbol)
	require.NoError(t, err)
	assert.InDelta(t, 4e-6, v, 1e-18, "variance scales by the factor squared")

	got, _ = m.Mean(b.Symbol)
	assert.Equal(t, 1.5, got)

	got, _ = m.Mean(c.Symbol)
	assert.Equal(t, 0.01, got)

	assert.Equal(t, 1, m.IndexOf(b.Symbol))
	assert.Equal(t, -1, m.IndexOf(gen.New("z")))
	assert.True(t, m.HasSpecies(c.Symbol))
	assert.Len(t, m.Species(), 3)
}

// TestStateMap_AddDimensionedSpeciesErrors covers the rejection paths.
func TestStateMap_AddDimensionedSpeciesErrors(t *testing.T) {
	gen := symbol.NewGenerator()
	m := state.NewStateMap(false)
	a := newSpecies(gen, "a", 0)
	require.NoError(t, m.AddDimensionedSpecies(a, 1, 0, "M", 1))

	require.ErrorIs(t, m.AddDimensionedSpecies(a, 1, 0, "M", 1), state.ErrDuplicateSpecies)
	require.ErrorIs(t, m.AddDimensionedSpecies(a, 2, 0, "mM", 1), state.ErrDuplicateSpecies, "every repeat is refused")
	require.ErrorIs(t, m.AddDimensionedSpecies(newSpecies(gen, "b", 0), -1, 0, "M", 1), state.ErrNegativeValue)
	require.ErrorIs(t, m.AddDimensionedSpecies(newSpecies(gen, "c", 0), 1, -1, "M", 1), state.ErrNegativeValue)
	require.ErrorIs(t, m.AddDimensionedSpecies(newSpecies(gen, "d", 0), 1, 0, "furlong", 1), state.ErrDimension)
	require.ErrorIs(t, m.AddDimensionedSpecies(newSpecies(gen, "e", 0), 1, 0, "g", 1), state.ErrDimension)
	require.ErrorIs(t, m.AddDimensionedSpecies(newSpecies(gen, "f", 0), 1, 0, "mol", 0), state.ErrBadVolume)

	for _, bad := range []struct{ mean, variance, volume float64 }{
		{math.NaN(), 0, 1},
		{math.Inf(1), 0, 1},
		{1, math.NaN(), 1},
		{1, math.Inf(1), 1},
		{1, 0, math.Inf(1)},
	} {
		err := m.AddDimensionedSpecies(newSpecies(gen, "g", 0), bad.mean, bad.variance, "mol", bad.volume)
		require.ErrorIs(t, err, state.ErrNonFinite, "%+v", bad)
	}

	assert.Equal(t, 1, m.Size(), "rejected species leave no trace")
	_, err := m.Mean(gen.New("ghost"))
	require.ErrorIs(t, err, state.ErrUnknownSpecies)
}

func TestNormalizeVolume(t *testing.T) {
	v, err := state.NormalizeVolume(250, "mL")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	_, err = state.NormalizeVolume(1, "gallon")
	require.ErrorIs(t, err, state.ErrDimension)
	_, err = state.NormalizeVolume(-1, "L")
	require.ErrorIs(t, err, state.ErrNegativeValue)
	_, err = state.NormalizeVolume(math.NaN(), "L")
	require.ErrorIs(t, err, state.ErrNonFinite)
}

// TestStateMap_MixAverages pours two unit volumes into an empty volume of 2.
func TestStateMap_MixAverages(t *testing.T) {
	gen := symbol.NewGenerator()
	s := newSpecies(gen, "s", 0)

	left := state.NewStateMap(true)
	require.NoError(t, left.AddDimensionedSpecies(s, 2, 1, "M", 1))
	right := state.NewStateMap(true)
	require.NoError(t, right.AddDimensionedSpecies(s, 4, 2, "M", 1))

	dst := state.NewStateMap(true)
	require.NoError(t, dst.Mix(left, 2, 1))
	require.NoError(t, dst.Mix(right, 2, 1))

	got, err := dst.Mean(s.Symbol)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
	v, _ := dst.Covar(s.Symbol, s.Symbol)
	assert.Equal(t, 0.75, v)

	// sources are copied, not aliased
	require.NoError(t, left.State().SetMean(0, 100))
	got, _ = dst.Mean(s.Symbol)
	assert.Equal(t, 3.0, got)

	require.ErrorIs(t, dst.Mix(dst, 1, 1), state.ErrAliased)
}

// TestStateMap_MixMergesSpecies adds unseen species and keeps known ones.
func TestStateMap_MixMergesSpecies(t *testing.T) {
	gen := symbol.NewGenerator()
	a, b := newSpecies(gen, "a", 0), newSpecies(gen, "b", 0)

	dst := state.NewStateMap(false)
	require.NoError(t, dst.AddDimensionedSpecies(a, 1, 0, "M", 1))
	src := state.NewStateMap(false)
	require.NoError(t, src.AddDimensionedSpecies(b, 6, 0, "M", 1))
	require.NoError(t, src.AddDimensionedSpecies(a, 2, 0, "M", 1))

	require.NoError(t, dst.Mix(src, 3, 1))
	assert.Equal(t, []chem.Species{a, b}, dst.Species())
	got, _ := dst.Mean(a.Symbol)
	assert.InDelta(t, 1+2.0/3, got, 1e-12)
	got, _ = dst.Mean(b.Symbol)
	assert.InDelta(t, 2.0, got, 1e-12)

	empty := state.NewStateMap(false)
	require.NoError(t, empty.Mix(src, 0, 1))
	assert.Equal(t, 2, empty.Size(), "zero volume still merges species")
	got, _ = empty.Mean(b.Symbol)
	assert.Zero(t, got)
}

// TestStateMap_Split copies values without scaling.
func TestStateMap_Split(t *testing.T) {
	gen := symbol.NewGenerator()
	a := newSpecies(gen, "a", 0)
	src := state.NewStateMap(false)
	require.NoError(t, src.AddDimensionedSpecies(a, 5, 0, "M", 1))

	dst := state.NewStateMap(false)
	require.NoError(t, dst.Split(src))
	got, _ := dst.Mean(a.Symbol)
	assert.Equal(t, 5.0, got)
}

func TestStateMap_Format(t *testing.T) {
	gen := symbol.NewGenerator()
	m := state.NewStateMap(true)
	require.NoError(t, m.AddDimensionedSpecies(newSpecies(gen, "a", 0), 1, 0.5, "M", 1))
	assert.Equal(t, "a = 1\ncovariance:\n0.5\n", m.Format(nil))

	c := m.Clone()
	require.NoError(t, c.AddDimensionedSpecies(newSpecies(gen, "b", 0), 1, 0, "M", 1))
	assert.Equal(t, 1, m.Size())
}
