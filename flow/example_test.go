// SPDX-License-Identifier: MIT

package flow_test

import (
	"fmt"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// ExampleNormalize collects like terms of a rate expression.
func ExampleNormalize() {
	gen := symbol.NewGenerator()
	x := gen.New("x")
	k := flow.NewParam(gen.New("k"), true)

	f := flow.Add(flow.Mul(k, flow.Ref(x)), flow.Mul(flow.Num(2), k, flow.Ref(x)))
	fmt.Println(flow.Normalize(f))
	fmt.Println(flow.SignOf(f))
	// Output:
	// 3*k*x
	// nonnegative
}
