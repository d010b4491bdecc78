// Package apply implements function elimination: applying an argument term
// to a function term (spec §4.4), the primary client entry point.
package apply

import (
	"github.com/weft-lang/weft/internal/constraint"
	"github.com/weft-lang/weft/internal/diagnostics"
	"github.com/weft-lang/weft/internal/term"
	"github.com/weft-lang/weft/internal/typeterm"
)

// Apply applies x to f. If f is still an unresolved variable it is fused
// with a fresh Function(_, _) shape first. The result's plain term is the
// function's return type resolved with subtypes resolved and lower bounds
// preferred — the original implementation's own resolve() defaults — so a
// variable whose lower bound is already pinned comes back concrete instead
// of a dangling bounded cell; its constraints are the concatenation of both
// operands' lists, filtered by Enforce.
func Apply(f, x *term.Term, alloc *typeterm.Allocator) (*term.Term, error) {
	fHead := typeterm.Follow(f.Plain)

	if vc, ok := fHead.(*typeterm.VariableCell); ok {
		shape := typeterm.Op(typeterm.Function, alloc.Fresh(""), alloc.Fresh(""))
		if err := vc.Unify(shape); err != nil {
			return nil, err
		}
		fHead = typeterm.Follow(vc)
	}

	ot, ok := fHead.(typeterm.OperatorTerm)
	if !ok || ot.Op != typeterm.Function {
		return nil, &diagnostics.NonFunctionApplicationError{Head: headStringer{fHead}}
	}

	xHead := typeterm.Follow(x.Plain)
	if err := typeterm.UnifySubtypeWith(xHead, ot.Params[0], alloc); err != nil {
		return nil, err
	}

	resultPlain := typeterm.Resolve(ot.Params[1], false, true, true)

	combined := make([]constraint.Constraint, 0, len(f.Constraints)+len(x.Constraints))
	combined = append(combined, f.Constraints...)
	combined = append(combined, x.Constraints...)
	kept, err := term.EnforceAll(combined)
	if err != nil {
		return nil, err
	}

	return &term.Term{Plain: resultPlain, Constraints: kept}, nil
}

// headStringer adapts a PlainTerm's head to fmt.Stringer for diagnostics;
// both PlainTerm implementations already expose String(), a plain cell just
// lacks an exported interface tying them together.
type headStringer struct{ t typeterm.PlainTerm }

func (h headStringer) String() string {
	switch v := h.t.(type) {
	case typeterm.OperatorTerm:
		return v.String()
	case *typeterm.VariableCell:
		return v.String()
	default:
		return "<term>"
	}
}
