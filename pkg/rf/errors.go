// Package rf implements the closed-form RF conversions used by the site's
// engineering calculators: reflection and match metrics, series/parallel
// impedance equivalence, resistive attenuator synthesis and power/voltage
// conversion. Every function is pure and rejects inputs outside its domain
// with a *DomainError instead of returning NaN or Inf.
package rf

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfDomain is wrapped by every DomainError.
var ErrOutOfDomain = errors.New("rf: input outside valid domain")

// ErrPerfectMatch is returned when a reflection coefficient of zero is asked
// for a return loss. The true value is unbounded.
var ErrPerfectMatch = errors.New("rf: perfect match has infinite return loss")

// DomainError describes a rejected input.
type DomainError struct {
	Op     string
	Param  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("rf: %s: %s=%g: %s", e.Op, e.Param, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrOutOfDomain
}

func domainErr(op, param string, v float64, reason string) error {
	return &DomainError{Op: op, Param: param, Value: v, Reason: reason}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkFinite rejects NaN and Inf.
func checkFinite(op, param string, v float64) error {
	if !finite(v) {
		return domainErr(op, param, v, "must be a finite number")
	}
	return nil
}
