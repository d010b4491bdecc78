package typeterm

import "github.com/weft-lang/weft/internal/diagnostics"

// Above tightens vc's lower bound to op. The rules (spec §4.2):
//   - if op is not less-or-equal to the current upper bound (the upper bound
//     is strictly below op, or in an unrelated lineage), fail: no value
//     could satisfy both bounds.
//   - if op is already below (or equal to) the current lower bound, the
//     tightening is a no-op.
//   - if the current lower bound is less-or-equal to op, adopt op as the new,
//     tighter lower bound.
//   - otherwise the two operators are in unrelated lineages: fail.
func (vc *VariableCell) Above(op *Operator) error {
	if vc.Upper != nil && !LessEq(op, vc.Upper) {
		return &diagnostics.SubtypeMismatchError{A: Op(op), B: Op(vc.Upper)}
	}
	if vc.Lower != nil {
		if LessEq(op, vc.Lower) {
			return nil
		}
		if LessEq(vc.Lower, op) {
			vc.Lower = op
			return nil
		}
		return &diagnostics.SubtypeMismatchError{A: Op(vc.Lower), B: Op(op)}
	}
	vc.Lower = op
	return nil
}

// Below is the symmetric counterpart of Above, tightening the upper bound.
func (vc *VariableCell) Below(op *Operator) error {
	if vc.Lower != nil && !LessEq(vc.Lower, op) {
		return &diagnostics.SubtypeMismatchError{A: Op(vc.Lower), B: Op(op)}
	}
	if vc.Upper != nil {
		if LessEq(vc.Upper, op) {
			return nil
		}
		if LessEq(op, vc.Upper) {
			vc.Upper = op
			return nil
		}
		return &diagnostics.SubtypeMismatchError{A: Op(op), B: Op(vc.Upper)}
	}
	vc.Upper = op
	return nil
}

// Unify fuses vc with target: vc.Unified = target, after propagating bounds
// and checking consistency per spec §4.2. vc must currently be a root (its
// own Unified field nil) — callers are expected to Follow first. Unifying a
// cell with itself is a no-op.
func (vc *VariableCell) Unify(target PlainTerm) error {
	if target == PlainTerm(vc) {
		return nil
	}

	switch t := target.(type) {
	case *VariableCell:
		if vc.Lower != nil {
			if err := t.Above(vc.Lower); err != nil {
				return err
			}
		}
		if vc.Upper != nil {
			if err := t.Below(vc.Upper); err != nil {
				return err
			}
		}
		vc.Unified = t
		if t.Lower != nil && t.Upper != nil && t.Lower.Equal(t.Upper) {
			fused := OperatorTerm{Op: t.Lower}
			t.Unified = fused
		}
		return nil

	case OperatorTerm:
		if t.Op.IsBasic() {
			if vc.Lower != nil && !LessEq(vc.Lower, t.Op) {
				return &diagnostics.SubtypeMismatchError{A: Op(vc.Lower), B: t}
			}
			if vc.Upper != nil && !LessEq(t.Op, vc.Upper) {
				return &diagnostics.SubtypeMismatchError{A: t, B: Op(vc.Upper)}
			}
			vc.Unified = t
			return nil
		}
		// Compound: bounds only ever apply to basic operators, so they are
		// discarded here; the parameters carry the remaining obligations.
		vc.Lower = nil
		vc.Upper = nil
		vc.Unified = t
		return nil
	}
	return nil
}
