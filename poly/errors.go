// SPDX-License-Identifier: MIT

package poly

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/crnc/flow"
)

// ErrNotPolynomial indicates a flow with no polynomial normal form.
var ErrNotPolynomial = errors.New("poly: expression is not polynomial")

// NotPolynomialError names the offending sub-expression.
type NotPolynomialError struct {
	Expr   flow.Flow
	Reason string
}

func (e *NotPolynomialError) Error() string {
	return fmt.Sprintf("poly: %s is not polynomial (%s)", e.Expr, e.Reason)
}

// Unwrap lets errors.Is match ErrNotPolynomial.
func (e *NotPolynomialError) Unwrap() error { return ErrNotPolynomial }
