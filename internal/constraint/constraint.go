// Package constraint implements the two deferred predicate kinds attached
// to a top-level term: Member and Param (spec §4.6).
package constraint

import (
	"fmt"
	"strings"

	"github.com/weft-lang/weft/internal/diagnostics"
	"github.com/weft-lang/weft/internal/typeterm"
)

// Kind distinguishes the two constraint shapes.
type Kind int

const (
	KindMember Kind = iota
	KindParam
)

// Constraint is a deferred predicate over one or more plain terms. Subject
// and Alts reference the variable cells whose refinement can change its
// status; At, when non-nil, restricts a Param constraint to a single
// 1-based parameter position.
type Constraint struct {
	Kind    Kind
	Subject typeterm.PlainTerm
	Alts    []typeterm.PlainTerm
	At      *int
}

// Member builds a Member(subject, alts...) constraint: subject must be a
// subtype of at least one alternative.
func Member(subject typeterm.PlainTerm, alts ...typeterm.PlainTerm) Constraint {
	return Constraint{Kind: KindMember, Subject: subject, Alts: alts}
}

// Param builds a Param(subject, alts..., at?) constraint: subject must be a
// compound operator term, and either its at-th parameter (1-based) or some
// parameter must be a subtype of at least one alternative.
func Param(subject typeterm.PlainTerm, at *int, alts ...typeterm.PlainTerm) Constraint {
	return Constraint{Kind: KindParam, Subject: subject, Alts: alts, At: at}
}

// Enforce evaluates the constraint's current status:
//   - (true, nil): still active — remains ambiguous or still necessary.
//   - (false, nil): permanently satisfied — may be dropped.
//   - (false, err): permanently unsatisfiable — ViolatedConstraintError.
func (c Constraint) Enforce() (bool, error) {
	switch c.Kind {
	case KindMember:
		return c.enforceMember()
	case KindParam:
		return c.enforceParam()
	default:
		return true, nil
	}
}

func (c Constraint) enforceMember() (bool, error) {
	sawUnknown := false
	for _, alt := range c.Alts {
		switch typeterm.SubtypeTri(c.Subject, alt) {
		case typeterm.Yes:
			return false, nil
		case typeterm.Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return true, nil
	}
	return false, &diagnostics.ViolatedConstraintError{Constraint: c}
}

func (c Constraint) enforceParam() (bool, error) {
	head := typeterm.Follow(c.Subject)
	ot, ok := head.(typeterm.OperatorTerm)
	if !ok {
		// Still a variable cell: wait for it to be refined further.
		return true, nil
	}

	if c.At != nil {
		pos := *c.At
		if pos < 1 || pos > len(ot.Params) {
			return false, &diagnostics.ViolatedConstraintError{Constraint: c}
		}
		return c.tryParam(ot.Params[pos-1])
	}

	if len(ot.Params) == 0 {
		return false, &diagnostics.ViolatedConstraintError{Constraint: c}
	}
	sawUnknown := false
	for _, p := range ot.Params {
		keep, err := c.tryParam(p)
		if err == nil && !keep {
			// This parameter is definitely a subtype of some alternative:
			// the existential is satisfied.
			return false, nil
		}
		if err == nil && keep {
			sawUnknown = true
		}
	}
	if sawUnknown {
		return true, nil
	}
	return false, &diagnostics.ViolatedConstraintError{Constraint: c}
}

func (c Constraint) tryParam(param typeterm.PlainTerm) (bool, error) {
	sawUnknown := false
	for _, alt := range c.Alts {
		switch typeterm.SubtypeTri(param, alt) {
		case typeterm.Yes:
			return false, nil
		case typeterm.Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return true, nil
	}
	return false, &diagnostics.ViolatedConstraintError{Constraint: c}
}

// String renders the constraint for diagnostic messages, e.g.
// "Member(a, Int, Bool)" or "Param(f, Int, Bool, at=2)".
func (c Constraint) String() string {
	name := "Member"
	if c.Kind == KindParam {
		name = "Param"
	}
	parts := []string{stringify(c.Subject)}
	for _, alt := range c.Alts {
		parts = append(parts, stringify(alt))
	}
	suffix := ""
	if c.Kind == KindParam && c.At != nil {
		suffix = fmt.Sprintf(", at=%d", *c.At)
	}
	return fmt.Sprintf("%s(%s%s)", name, strings.Join(parts, ", "), suffix)
}

func stringify(t typeterm.PlainTerm) string {
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", t)
}
