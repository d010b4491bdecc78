// Package term implements the top-level Term (a plain term plus its
// deferred constraint set) and Schema (prenex-quantified term generator).
package term

import (
	"fmt"
	"strings"

	"github.com/weft-lang/weft/internal/constraint"
	"github.com/weft-lang/weft/internal/typeterm"
)

// Term bundles a plain term with the list of deferred constraints still
// attached to it. The list only ever shrinks: constraints that become
// satisfied are dropped, and no new constraint appears after construction.
type Term struct {
	Plain       typeterm.PlainTerm
	Constraints []constraint.Constraint
}

// New wraps a bare plain term with no constraints.
func New(p typeterm.PlainTerm) *Term {
	return &Term{Plain: p}
}

// WithConstraint returns a new Term carrying c in addition to t's existing
// constraints. t itself is left unmodified.
func (t *Term) WithConstraint(c constraint.Constraint) *Term {
	next := make([]constraint.Constraint, len(t.Constraints), len(t.Constraints)+1)
	copy(next, t.Constraints)
	next = append(next, c)
	return &Term{Plain: t.Plain, Constraints: next}
}

// EnforceAll runs Enforce on every constraint, keeping only those that are
// still active and returning the first ViolatedConstraint error, if any.
func EnforceAll(cs []constraint.Constraint) ([]constraint.Constraint, error) {
	kept := make([]constraint.Constraint, 0, len(cs))
	for _, c := range cs {
		keep, err := c.Enforce()
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// Enforce re-evaluates t's constraints in place, dropping satisfied ones and
// returning the first ViolatedConstraint error encountered, if any. On
// error t is left with its prior constraint list untouched.
func (t *Term) Enforce() error {
	kept, err := EnforceAll(t.Constraints)
	if err != nil {
		return err
	}
	t.Constraints = kept
	return nil
}

// Resolve returns a new Term with Plain run through typeterm.Resolve under
// the given flags, re-enforcing constraints against the resolved shape.
func (t *Term) Resolve(force, resolveSubtypes, preferLower bool) (*Term, error) {
	resolved := typeterm.Resolve(t.Plain, force, resolveSubtypes, preferLower)
	next := &Term{Plain: resolved, Constraints: t.Constraints}
	if err := next.Enforce(); err != nil {
		return nil, err
	}
	return next, nil
}

// String renders the term using the stable conventions of spec §6, with any
// remaining constraints appended.
func (t *Term) String() string {
	head := typeterm.RenderBounds(t.Plain)
	if len(t.Constraints) == 0 {
		return head
	}
	parts := make([]string, len(t.Constraints))
	for i, c := range t.Constraints {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s : %s", head, strings.Join(parts, ", "))
}

// Stats is a debug summary of a term's cell and constraint bookkeeping,
// useful for a dump/debug tool; it does not affect semantics.
type Stats struct {
	Variables     int
	LiveVariables int
	Constraints   int
}

// Stats walks t.Plain and counts distinct variable cells (total and still
// unfused) plus the remaining constraint count.
func (t *Term) Stats() Stats {
	seen := make(map[*typeterm.VariableCell]bool)
	var live int
	var walk func(p typeterm.PlainTerm)
	walk = func(p typeterm.PlainTerm) {
		switch v := p.(type) {
		case *typeterm.VariableCell:
			if seen[v] {
				return
			}
			seen[v] = true
			if typeterm.Follow(v) == typeterm.PlainTerm(v) {
				live++
			} else {
				walk(typeterm.Follow(v))
			}
		case typeterm.OperatorTerm:
			for _, param := range v.Params {
				walk(param)
			}
		}
	}
	walk(t.Plain)
	return Stats{Variables: len(seen), LiveVariables: live, Constraints: len(t.Constraints)}
}
