// Package weft is the embedding surface of the unifier: the small set of
// operations a front-end (schema authoring, operation graphs) calls to
// declare operators, build terms, apply functions, and attach deferred
// constraints. It is a thin facade over internal/typeterm, internal/term,
// internal/constraint and internal/apply — every name below corresponds
// directly to one of those packages' exported names.
package weft

import (
	"github.com/weft-lang/weft/internal/apply"
	"github.com/weft-lang/weft/internal/constraint"
	"github.com/weft-lang/weft/internal/term"
	"github.com/weft-lang/weft/internal/typeterm"
)

type (
	// Operator is a declared type constructor.
	Operator = typeterm.Operator
	// Variance is a compound operator's per-parameter subtype direction.
	Variance = typeterm.Variance
	// PlainTerm is either an OperatorTerm or a *VariableCell.
	PlainTerm = typeterm.PlainTerm
	// Term bundles a plain term with its deferred constraints.
	Term = term.Term
	// Schema is a prenex-quantified term generator.
	Schema = term.Schema
	// Constraint is a deferred Member or Param predicate.
	Constraint = constraint.Constraint
	// Registry holds a process's declared operators.
	Registry = typeterm.Registry
	// Allocator hands out fresh variable cells with stable identities.
	Allocator = typeterm.Allocator
)

const (
	Covariant     = typeterm.Covariant
	Contravariant = typeterm.Contravariant
)

// Tri is the three-valued result of Subtype.
type Tri = typeterm.Tri

const (
	Unknown = typeterm.Unknown
	Yes     = typeterm.Yes
	No      = typeterm.No
)

// Function is the distinguished arity-2 operator behind function types,
// distinguished by identity rather than name.
var Function = typeterm.Function

// NewRegistry returns an empty operator registry.
func NewRegistry() *Registry { return typeterm.NewRegistry() }

// NewAllocator returns a fresh variable-cell allocator.
func NewAllocator() *Allocator { return typeterm.NewAllocator() }

// DeclareOperator registers an operator: name, per-parameter variance (nil
// for a basic/nullary operator), and — for basic operators only — an
// optional direct supertype.
func DeclareOperator(reg *Registry, name string, variance []Variance, supertype *Operator) (*Operator, error) {
	return reg.Declare(name, variance, supertype)
}

// Op applies an operator to parameters, constructing an OperatorTerm.
func Op(op *Operator, params ...PlainTerm) PlainTerm {
	return typeterm.Op(op, params...)
}

// Arrow builds a function term Function(a, b).
func Arrow(a, b PlainTerm) *Term {
	return term.New(Op(Function, a, b))
}

// ApplyFn applies x to f: §4.4 function elimination.
func ApplyFn(f, x *Term, alloc *Allocator) (*Term, error) {
	return apply.Apply(f, x, alloc)
}

// WithConstraint appends c to t's constraint list, returning a new Term.
func WithConstraint(t *Term, c Constraint) *Term {
	return t.WithConstraint(c)
}

// NewSchema declares a schema over the given parameter names.
func NewSchema(params []string, b term.Builder) *Schema {
	return term.NewSchema(params, b)
}

// Member builds a Member(subject, alts...) deferred constraint.
func Member(subject PlainTerm, alts ...PlainTerm) Constraint {
	return constraint.Member(subject, alts...)
}

// Param builds a Param(subject, alts..., at?) deferred constraint. Pass a
// nil at to constrain "some parameter" rather than a specific position.
func Param(subject PlainTerm, at *int, alts ...PlainTerm) Constraint {
	return constraint.Param(subject, at, alts...)
}

// SubtypeAssert calls UnifySubtype for its side effects, mirroring the
// original implementation's `<<` subtype-assertion sugar. Any fresh cells it
// needs to skeletonize a compound operand come from a package-level
// allocator, not a caller's session allocator — use SubtypeAssertWith when a
// or b may still contain unresolved variables from a session whose cell ids
// must stay monotonically increasing.
func SubtypeAssert(a, b PlainTerm) error {
	return typeterm.UnifySubtype(a, b)
}

// SubtypeAssertWith is SubtypeAssert, threading alloc through so any fresh
// cells it mints share the caller's session-wide id sequence (spec §9).
func SubtypeAssertWith(a, b PlainTerm, alloc *Allocator) error {
	return typeterm.UnifySubtypeWith(a, b, alloc)
}

// Subtype is the non-mutating three-valued subtype test.
func Subtype(a, b PlainTerm) typeterm.Tri {
	return typeterm.SubtypeTri(a, b)
}
