// SPDX-License-Identifier: MIT

package netlist_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/netlist"
	"github.com/katalvlaran/crnc/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, gen *symbol.Generator, name string, vol, temp float64, sp chem.Species, molarity float64) *netlist.Sample {
	t.Helper()
	s, err := netlist.NewSample(gen.New(name), vol, temp, false)
	require.NoError(t, err)
	require.NoError(t, s.StateMap.AddDimensionedSpecies(sp, molarity, 0, "M", vol))
	return s
}

// TestMixSamples checks volume, temperature and concentration averaging.
func TestMixSamples(t *testing.T) {
	gen := symbol.NewGenerator()
	sp := chem.NewSpecies(gen.New("a"), 0)

	s1 := filled(t, gen, "s1", 1, 300, sp, 2)
	s2 := filled(t, gen, "s2", 3, 280, sp, 6)

	mix, err := netlist.MixSamples(gen.New("mix"), s1, s2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, mix.Volume)
	assert.Equal(t, 285.0, mix.Temperature)

	got, err := mix.StateMap.Mean(sp.Symbol)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	assert.True(t, s1.Consumed())
	_, err = netlist.MixSamples(gen.New("again"), s1)
	require.ErrorIs(t, err, netlist.ErrConsumed)
}

func TestMixSamples_Errors(t *testing.T) {
	gen := symbol.NewGenerator()
	sp := chem.NewSpecies(gen.New("a"), 0)
	s := filled(t, gen, "s", 1, 300, sp, 1)

	_, err := netlist.MixSamples(gen.New("m"))
	require.ErrorIs(t, err, netlist.ErrNoSamples)
	_, err = netlist.MixSamples(gen.New("m"), s, s)
	require.ErrorIs(t, err, netlist.ErrConsumed)
	assert.False(t, s.Consumed(), "failed mix consumes nothing")
	_, err = netlist.MixSamples(gen.New("m"), nil)
	require.ErrorIs(t, err, netlist.ErrNilSample)

	_, err = netlist.NewSample(gen.New("bad"), -1, 300, false)
	require.ErrorIs(t, err, netlist.ErrBadVolume)
	_, err = netlist.NewSample(gen.New("bad"), 1, 0, false)
	require.ErrorIs(t, err, netlist.ErrBadTemperature)
}

// TestSplitSample draws a portion at the same concentration.
func TestSplitSample(t *testing.T) {
	gen := symbol.NewGenerator()
	sp := chem.NewSpecies(gen.New("a"), 0)
	src := filled(t, gen, "src", 4, 300, sp, 3)

	part, err := netlist.SplitSample(gen.New("part"), src, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 1.0, part.Volume)
	assert.Equal(t, 3.0, src.Volume)
	got, _ := part.StateMap.Mean(sp.Symbol)
	assert.Equal(t, 3.0, got)

	_, err = netlist.SplitSample(gen.New("x"), src, 0)
	require.ErrorIs(t, err, netlist.ErrBadFraction)
	_, err = netlist.SplitSample(gen.New("x"), src, 1)
	require.NoError(t, err)
	assert.True(t, src.Consumed())
}

// TestNetlist_Queries checks filtering and relevance.
func TestNetlist_Queries(t *testing.T) {
	gen := symbol.NewGenerator()
	a := chem.NewSpecies(gen.New("a"), 0)
	b := chem.NewSpecies(gen.New("b"), 0)
	c := chem.NewSpecies(gen.New("c"), 0)
	s := filled(t, gen, "s", 1, 300, a, 1)
	require.NoError(t, s.StateMap.AddDimensionedSpecies(b, 0, 0, "M", 1))

	ab := chem.NewReaction(chem.NewComplex(a.Symbol), chem.NewComplex(b.Symbol), chem.MassAction(flow.Num(1)))
	bc := chem.NewReaction(chem.NewComplex(b.Symbol), chem.NewComplex(c.Symbol), chem.MassAction(flow.Num(2)))

	n := netlist.New()
	n.Emit(
		netlist.SpeciesEntry{Species: a},
		netlist.SpeciesEntry{Species: b},
		netlist.SampleEntry{Sample: s},
		netlist.ReactionEntry{Reaction: ab},
		netlist.ReactionEntry{Reaction: bc},
		netlist.ReportEntry{Label: "a", Var: a.Symbol, Value: flow.Ref(a.Symbol)},
	)

	assert.Equal(t, 6, n.Len())
	assert.Equal(t, []chem.Species{a, b}, n.SpeciesList())
	assert.Equal(t, []*netlist.Sample{s}, n.Samples())
	assert.Len(t, n.Reactions(), 2)
	require.Len(t, n.Reports(), 1)
	assert.Equal(t, "report a = a", n.Reports()[0].Format(nil))

	rel := n.RelevantReactions(s)
	require.Len(t, rel, 1)
	assert.Equal(t, "a -> b {1}", rel[0].Format(nil))

	assert.Contains(t, n.Format(nil), "species a\nspecies b\nsample s {1 L, 300 K}\na = 1\nb = 0\na -> b {1}\n")
}

// TestNetlist_ConcurrentEmit ensures concurrent emitters are safe and none are lost.
func TestNetlist_ConcurrentEmit(t *testing.T) {
	gen := symbol.NewGenerator()
	n := netlist.New()
	const num = 100
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			sp := chem.NewSpecies(gen.New(fmt.Sprintf("s%d", id)), 0)
			n.Emit(netlist.SpeciesEntry{Species: sp})
			_ = n.Entries()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, num, n.Len())
}
