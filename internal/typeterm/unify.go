package typeterm

import "github.com/weft-lang/weft/internal/diagnostics"

// Trace, when set, is called at the start of every UnifySubtype step with a
// short step label and the two (unfollowed) operands. It exists purely for
// debug output — cmd/weftdump is the only caller that sets it — and mirrors
// the teacher's own trace/debug builtins rather than pulling in a logging
// dependency (see SPEC_FULL.md §3.2).
var Trace func(step string, a, b PlainTerm)

// defaultAllocator backs UnifySubtype's deprecated-by-convention no-allocator
// form. Cells minted here can collide in id/display-name with a caller's own
// session allocator outside test mode; callers that care about stable,
// monotonically increasing ids across a whole session should use
// UnifySubtypeWith and thread their own *Allocator through instead.
var defaultAllocator = NewAllocator()

// UnifySubtype makes follow(a) a subtype of follow(b), mutating variable
// cells as needed (spec §4.3). It is the central algorithm of the engine.
// Any fresh cells needed for skeletonizing a compound type against a
// variable are drawn from a package-level fallback allocator; callers that
// need ids to stay unique across a whole session (anything outside of
// isolated tests) should call UnifySubtypeWith with their own allocator
// instead.
func UnifySubtype(a, b PlainTerm) error {
	return UnifySubtypeWith(a, b, defaultAllocator)
}

// UnifySubtypeWith is UnifySubtype, but fresh cells minted while
// skeletonizing a compound operator term against a variable are drawn from
// alloc, so their ids stay monotonically increasing alongside every other
// cell the caller has allocated in this session (spec §9).
func UnifySubtypeWith(a, b PlainTerm, alloc *Allocator) error {
	if Trace != nil {
		Trace("unify_subtype", a, b)
	}
	fa, fb := Follow(a), Follow(b)

	switch ha := fa.(type) {
	case OperatorTerm:
		switch hb := fb.(type) {
		case OperatorTerm:
			return unifySubtypeOpOp(ha, hb, alloc)
		case *VariableCell:
			return unifySubtypeOpVar(ha, hb, alloc)
		}
	case *VariableCell:
		switch hb := fb.(type) {
		case OperatorTerm:
			return unifySubtypeVarOp(ha, hb, alloc)
		case *VariableCell:
			if ha == hb {
				return nil
			}
			return ha.Unify(hb)
		}
	}
	return nil
}

func unifySubtypeOpOp(a, b OperatorTerm, alloc *Allocator) error {
	if a.Op.IsBasic() && b.Op.IsBasic() {
		if !LessEq(a.Op, b.Op) {
			return &diagnostics.SubtypeMismatchError{A: a, B: b}
		}
		return nil
	}
	if a.Op.Equal(b.Op) && !a.Op.IsBasic() {
		for i, v := range a.Op.Variance {
			if v == Covariant {
				if err := UnifySubtypeWith(a.Params[i], b.Params[i], alloc); err != nil {
					return err
				}
			} else {
				if err := UnifySubtypeWith(b.Params[i], a.Params[i], alloc); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return &diagnostics.TypeMismatchError{A: a, B: b}
}

func unifySubtypeVarOp(a *VariableCell, b OperatorTerm, alloc *Allocator) error {
	if occursIn(a, b) {
		return &diagnostics.RecursiveTypeError{Var: a, Term: b}
	}
	if b.Op.IsBasic() {
		return a.Below(b.Op)
	}
	skel := skeleton(b, alloc)
	if err := a.Unify(skel); err != nil {
		return err
	}
	return UnifySubtypeWith(a, b, alloc)
}

func unifySubtypeOpVar(a OperatorTerm, b *VariableCell, alloc *Allocator) error {
	if occursIn(b, a) {
		return &diagnostics.RecursiveTypeError{Var: b, Term: a}
	}
	if a.Op.IsBasic() {
		return b.Above(a.Op)
	}
	skel := skeleton(a, alloc)
	if err := b.Unify(skel); err != nil {
		return err
	}
	return UnifySubtypeWith(a, b, alloc)
}

// skeleton returns a fresh copy of t with every basic-operator leaf replaced
// by a fresh variable cell; compound operators and existing variable cells
// are preserved unchanged. Used to pin an unknown compound variable to t's
// shape while leaving room for bounds at the leaves (spec §4.3, §9).
func skeleton(t OperatorTerm, alloc *Allocator) OperatorTerm {
	params := make([]PlainTerm, len(t.Params))
	for i, p := range t.Params {
		switch v := Follow(p).(type) {
		case OperatorTerm:
			if v.Op.IsBasic() {
				params[i] = alloc.Fresh("")
			} else {
				params[i] = skeleton(v, alloc)
			}
		case *VariableCell:
			params[i] = v
		default:
			params[i] = p
		}
	}
	return OperatorTerm{Op: t.Op, Params: params}
}

// occursIn reports whether vc would have to appear inside t's transitive
// parameters, following representative chains at each step rather than
// relying on stale pointer identity.
func occursIn(vc *VariableCell, t PlainTerm) bool {
	switch v := Follow(t).(type) {
	case *VariableCell:
		return v == vc
	case OperatorTerm:
		for _, p := range v.Params {
			if occursIn(vc, p) {
				return true
			}
		}
	}
	return false
}
