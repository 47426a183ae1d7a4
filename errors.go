// Package onshoring holds the value types shared by the relocation games:
// parameter validation errors and the domain checks used when constructing
// game parameters.
package onshoring

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ValidationError reports a parameter outside of its permitted domain.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s = %v: %s", e.Field, e.Value, e.Reason)
}

// DomainError reports that a derived quantity has no meaningful value
// for the given parameters.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// IsValidation returns whether the root cause of err is a *ValidationError.
func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// IsDomain returns whether the root cause of err is a *DomainError.
func IsDomain(err error) bool {
	_, ok := errors.Cause(err).(*DomainError)
	return ok
}

// CheckFinite requires v to be a real number.
func CheckFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(field, v, "must be finite")
	}

	return nil
}

// CheckNonNegative requires v >= 0.
func CheckNonNegative(field string, v float64) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}

	if v < 0 {
		return Invalid(field, v, "must be >= 0")
	}

	return nil
}

// CheckPositive requires v > 0.
func CheckPositive(field string, v float64) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}

	if v <= 0 {
		return Invalid(field, v, "must be > 0")
	}

	return nil
}

// CheckOpenUnit requires v in (0, 1).
func CheckOpenUnit(field string, v float64) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}

	if v <= 0 || v >= 1 {
		return Invalid(field, v, "must be in (0, 1)")
	}

	return nil
}

// CheckUnit requires v in [lo, 1] where lo is either closed or open at 0.
func CheckUnit(field string, v float64, openAtZero bool) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}

	if v > 1 || v < 0 || (openAtZero && v == 0) {
		lo := "["
		if openAtZero {
			lo = "("
		}
		return Invalid(field, v, "must be in "+lo+"0, 1]")
	}

	return nil
}

// CheckIntRange requires lo <= v <= hi.
func CheckIntRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return Invalid(field, v, fmt.Sprintf("must be in [%d, %d]", lo, hi))
	}

	return nil
}

// Invalid constructs a *ValidationError.
func Invalid(field string, value interface{}, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
