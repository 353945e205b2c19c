// SPDX-License-Identifier: MIT

package compile

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/state"
	"github.com/katalvlaran/crnc/symbol"
)

// Sentinel errors returned by the compiler.
var (
	// ErrSignIndeterminate indicates a coefficient whose sign cannot be proven.
	ErrSignIndeterminate = errors.New("compile: indeterminate sign")

	// ErrStructure indicates an ODE list that violates split-pair structure
	// or a degradation term that cannot be realized.
	ErrStructure = errors.New("compile: structural invariant violated")

	// ErrNilInput indicates a nil CRN, netlist, sample or generator.
	ErrNilInput = errors.New("compile: nil input")

	// ErrNotNumeric is flow.ErrNotNumeric, surfaced for initial values.
	ErrNotNumeric = flow.ErrNotNumeric

	// ErrNegativeValue is state.ErrNegativeValue, surfaced for initial values.
	ErrNegativeValue = state.ErrNegativeValue
)

// SignError reports a monomial whose coefficient sign is indeterminate.
type SignError struct {
	Var   symbol.Symbol // ODE variable
	Term  string        // rendered monomial
	Coeff string        // rendered coefficient
}

func (e *SignError) Error() string {
	return fmt.Sprintf("compile: ∂%s: term %s has coefficient %s of indeterminate sign",
		e.Var.Name(), e.Term, e.Coeff)
}

// Unwrap returns ErrSignIndeterminate.
func (e *SignError) Unwrap() error { return ErrSignIndeterminate }

// StructureError reports a defect in an ODE list handed to ToReactions.
type StructureError struct {
	Var    symbol.Symbol
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("compile: ∂%s: %s", e.Var.Name(), e.Reason)
}

// Unwrap returns ErrStructure.
func (e *StructureError) Unwrap() error { return ErrStructure }

// InitialValueError reports an unusable initial value of an output species.
type InitialValueError struct {
	Sample  string
	Species string
	Value   float64
	Err     error
}

func (e *InitialValueError) Error() string {
	if errors.Is(e.Err, ErrNegativeValue) {
		return fmt.Sprintf("compile: sample %q: initial value of %q is %g: %v", e.Sample, e.Species, e.Value, e.Err)
	}
	return fmt.Sprintf("compile: sample %q: initial value of %q: %v", e.Sample, e.Species, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InitialValueError) Unwrap() error { return e.Err }
