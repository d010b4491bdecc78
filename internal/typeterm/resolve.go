package typeterm

// Resolve implements spec §4.5. It recurses into OperatorTerm parameters,
// inverting preferLower whenever it crosses a Contravariant parameter, and
// at variable cells either leaves the cell alone, fuses it to its preferred
// bound, or (when force is set) fuses it to whichever bound exists.
//
// force=true is deliberately unsound: it may widen past the truly inferred
// type, and exists only so callers can collapse leftover unknowns for
// display once inference has settled.
func Resolve(t PlainTerm, force, resolveSubtypes, preferLower bool) PlainTerm {
	switch v := Follow(t).(type) {
	case OperatorTerm:
		if len(v.Params) == 0 {
			return v
		}
		params := make([]PlainTerm, len(v.Params))
		for i, p := range v.Params {
			pl := preferLower
			if v.Op.Variance[i] == Contravariant {
				pl = !pl
			}
			params[i] = Resolve(p, force, resolveSubtypes, pl)
		}
		return OperatorTerm{Op: v.Op, Params: params}

	case *VariableCell:
		if !resolveSubtypes {
			return v
		}
		if preferLower && v.Lower != nil {
			v.Unified = OperatorTerm{Op: v.Lower}
			return Follow(v)
		}
		if !preferLower && v.Upper != nil {
			v.Unified = OperatorTerm{Op: v.Upper}
			return Follow(v)
		}
		if force {
			if preferLower && v.Upper != nil {
				v.Unified = OperatorTerm{Op: v.Upper}
				return Follow(v)
			}
			if !preferLower && v.Lower != nil {
				v.Unified = OperatorTerm{Op: v.Lower}
				return Follow(v)
			}
		}
		return v

	default:
		return t
	}
}
