package domain

import "fmt"

// InvalidInputError reports a value outside the domain a calculation can
// handle, or a result that is not a finite number.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// DomainConstraintViolation reports a broken cross-field invariant.
type DomainConstraintViolation struct {
	Constraint string
	Detail     string
}

func (e *DomainConstraintViolation) Error() string {
	return fmt.Sprintf("constraint %s violated: %s", e.Constraint, e.Detail)
}

func NewInvalidInput(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func NewConstraintViolation(constraint, format string, args ...any) *DomainConstraintViolation {
	return &DomainConstraintViolation{Constraint: constraint, Detail: fmt.Sprintf(format, args...)}
}
