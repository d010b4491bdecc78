// Package typeterm implements the operator registry, the plain-term
// representation, subtype-aware unification, and resolution — the unifier
// kernel described as the bulk of the engine.
package typeterm

import "fmt"

// Variance is the direction in which a compound operator's subtype relation
// composes with one of its parameters.
type Variance int

const (
	// Covariant parameters preserve the subtype direction of the outer term.
	Covariant Variance = iota
	// Contravariant parameters reverse it.
	Contravariant
)

func (v Variance) String() string {
	if v == Contravariant {
		return "contravariant"
	}
	return "covariant"
}

// Operator is a user-declared type constructor: a name, an arity, a
// per-parameter variance vector, and — for nullary operators only — an
// optional direct supertype. Two operators are structurally equal when their
// (name, variance) agree; Supertype is metadata, not part of equality.
type Operator struct {
	Name      string
	Variance  []Variance // len == arity
	Supertype *Operator  // only ever set on nullary operators
}

// Arity is the number of parameters this operator takes.
func (op *Operator) Arity() int {
	if op == nil {
		return 0
	}
	return len(op.Variance)
}

// IsBasic reports whether op is nullary (a "basic" operator in the lattice).
func (op *Operator) IsBasic() bool {
	return op.Arity() == 0
}

// Equal is structural equality on (name, variance); Supertype does not
// participate.
func (op *Operator) Equal(other *Operator) bool {
	if op == other {
		return true
	}
	if op == nil || other == nil {
		return false
	}
	if op.Name != other.Name || len(op.Variance) != len(other.Variance) {
		return false
	}
	for i := range op.Variance {
		if op.Variance[i] != other.Variance[i] {
			return false
		}
	}
	return true
}

func (op *Operator) String() string {
	if op == nil {
		return "<nil-operator>"
	}
	return op.Name
}

// Function is the distinguished operator behind function types: arity 2,
// (Contravariant, Covariant) variance. It is distinguished by pointer
// identity, not by name — a user-declared operator named "->" is a distinct,
// ordinary compound operator.
var Function = &Operator{
	Name:     "->",
	Variance: []Variance{Contravariant, Covariant},
}

// LessEq is the declared subtype relation `<=` on operators. For basic
// (nullary) operators it is the reflexive-transitive closure of the declared
// Supertype edges. For compound operators it degrades to structural
// equality. Comparing operators from unrelated lineages yields false, never
// a distinguished "incomparable" signal.
func LessEq(a, b *Operator) bool {
	if a.Equal(b) {
		return true
	}
	if !a.IsBasic() || !b.IsBasic() {
		return false
	}
	for cur := a.Supertype; cur != nil; cur = cur.Supertype {
		if cur.Equal(b) {
			return true
		}
	}
	return false
}

// Less is the strict subtype relation: LessEq but not Equal.
func Less(a, b *Operator) bool {
	return LessEq(a, b) && !a.Equal(b)
}

// Registry holds the user-declared operators for one lattice. It is not
// safe for concurrent use (the whole engine is single-threaded, see the
// concurrency section of the specification).
type Registry struct {
	byName map[string]*Operator
}

// NewRegistry creates an empty operator registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Operator)}
}

// Declare registers a new operator. Declaring a non-nullary operator with a
// supertype is rejected: only basic operators participate in the subtype
// lattice.
func (r *Registry) Declare(name string, variance []Variance, supertype *Operator) (*Operator, error) {
	if len(variance) > 0 && supertype != nil {
		return nil, fmt.Errorf("typeterm: operator %q has arity %d, but only nullary operators may declare a supertype", name, len(variance))
	}
	if supertype != nil && !supertype.IsBasic() {
		return nil, fmt.Errorf("typeterm: operator %q cannot have non-nullary supertype %q", name, supertype.Name)
	}
	op := &Operator{Name: name, Variance: variance, Supertype: supertype}
	r.byName[name] = op
	return op, nil
}

// Lookup returns the operator declared under name, if any.
func (r *Registry) Lookup(name string) (*Operator, bool) {
	op, ok := r.byName[name]
	return op, ok
}

// All returns every declared operator, in no particular order.
func (r *Registry) All() []*Operator {
	out := make([]*Operator, 0, len(r.byName))
	for _, op := range r.byName {
		out = append(out, op)
	}
	return out
}
