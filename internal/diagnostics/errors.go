// Package diagnostics defines the exhaustive set of error kinds the engine
// raises, each a distinct exported type implementing error. Operands are
// held as fmt.Stringer rather than a concrete term type so this package has
// no dependency on internal/typeterm — typeterm depends on diagnostics, not
// the other way around.
package diagnostics

import "fmt"

// Code identifies an error kind independent of its formatted message, for
// callers that want to switch on error class without a type assertion.
type Code string

const (
	CodeNonFunctionApplication Code = "non_function_application"
	CodeSubtypeMismatch        Code = "subtype_mismatch"
	CodeTypeMismatch           Code = "type_mismatch"
	CodeRecursiveType          Code = "recursive_type"
	CodeViolatedConstraint     Code = "violated_constraint"
)

// NonFunctionApplicationError is raised when apply_fn is called on a head
// that is not, and cannot be refined to, a function.
type NonFunctionApplicationError struct {
	Head fmt.Stringer
}

func (e *NonFunctionApplicationError) Error() string {
	return fmt.Sprintf("cannot apply %s: not a function", e.Head)
}

func (e *NonFunctionApplicationError) Code() Code { return CodeNonFunctionApplication }

// SubtypeMismatchError is raised when a ≤ b is required between basic
// operator terms but the two are unrelated, or ordered the wrong way.
type SubtypeMismatchError struct {
	A, B fmt.Stringer
}

func (e *SubtypeMismatchError) Error() string {
	return fmt.Sprintf("%s is not a subtype of %s", e.A, e.B)
}

func (e *SubtypeMismatchError) Code() Code { return CodeSubtypeMismatch }

// TypeMismatchError is raised when two compound OperatorTerms with different
// operators are unified.
type TypeMismatchError struct {
	A, B fmt.Stringer
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s vs %s", e.A, e.B)
}

func (e *TypeMismatchError) Code() Code { return CodeTypeMismatch }

// RecursiveTypeError is raised when the occurs check fails: a variable would
// have to appear inside its own representative.
type RecursiveTypeError struct {
	Var  fmt.Stringer
	Term fmt.Stringer
}

func (e *RecursiveTypeError) Error() string {
	return fmt.Sprintf("recursive type: %s occurs in %s", e.Var, e.Term)
}

func (e *RecursiveTypeError) Code() Code { return CodeRecursiveType }

// ViolatedConstraintError is raised when every alternative of a deferred
// constraint is definitively falsified.
type ViolatedConstraintError struct {
	Constraint fmt.Stringer
}

func (e *ViolatedConstraintError) Error() string {
	return fmt.Sprintf("violated constraint: %s", e.Constraint)
}

func (e *ViolatedConstraintError) Code() Code { return CodeViolatedConstraint }
