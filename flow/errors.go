// SPDX-License-Identifier: MIT

package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/crnc/symbol"
)

// Sentinel errors for flow evaluation.
var (
	// ErrNotNumeric indicates that evaluation reached an unbound species or parameter.
	ErrNotNumeric = errors.New("flow: value is not numeric")

	// ErrDomain indicates a numeric operation outside its domain (log of a
	// nonpositive value, division by zero, ...).
	ErrDomain = errors.New("flow: numeric domain error")

	// ErrArity indicates an operator applied to the wrong number of arguments.
	ErrArity = errors.New("flow: wrong number of arguments")
)

// NotNumericError names the unbound symbol met during Eval.
type NotNumericError struct {
	Sym symbol.Symbol
}

func (e *NotNumericError) Error() string {
	return fmt.Sprintf("flow: %q has no numeric value", e.Sym.Name())
}

// Unwrap lets errors.Is match ErrNotNumeric.
func (e *NotNumericError) Unwrap() error { return ErrNotNumeric }
