// SPDX-License-Identifier: MIT

package compile_test

import (
	"fmt"

	"github.com/katalvlaran/crnc/chem"
	"github.com/katalvlaran/crnc/compile"
	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// ExampleToReactions compiles a -> b {k} back into mass-action form.
func ExampleToReactions() {
	gen := symbol.NewGenerator()
	a, b := gen.New("a"), gen.New("b")
	k := flow.NewParam(gen.New("k"), true)
	r := chem.NewReaction(chem.NewComplex(a), chem.NewComplex(b), chem.MassAction(k))
	crn, _ := chem.NewCRN([]chem.Species{chem.NewSpecies(a, 0), chem.NewSpecies(b, 0)}, []chem.ReactionValue{r})

	pn, _ := compile.Polynomize(crn, gen, compile.WithLogger(nil))
	for _, o := range pn.ODEs {
		fmt.Println(o.Format(nil))
	}
	rs, _ := compile.ToReactions(pn.ODEs, compile.WithLogger(nil))
	for _, r := range rs {
		fmt.Println(r.Format(nil))
	}
	// Output:
	// ∂a = -k*a
	// ∂b = k*a
	// a -> Ø {k}
	// a -> a + b {k}
}
