package typeterm

// Tri is the three-valued result of the non-mutating subtype test (spec
// §4.7, §9 "three-valued logic"): a variable cell at either head, or in any
// parameter of two terms of the same compound operator, makes the answer
// Unknown rather than a guess. Terms of different compound operators are No
// whatever variables they contain.
type Tri int

const (
	Unknown Tri = iota
	Yes
	No
)

func (t Tri) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

func boolTri(b bool) Tri {
	if b {
		return Yes
	}
	return No
}

// SubtypeTri tests whether follow(a) is a subtype of follow(b) without
// mutating any cell. Either side being a variable cell yields Unknown; two
// basic operators compare via LessEq; two terms of the same compound
// operator combine per-parameter results according to variance, with any
// Unknown component dominating the result (spec §4.7, literal wording:
// "any None component makes the whole result None; otherwise AND the
// booleans" — evaluated before reducing to No even though that diverges
// from the usual Kleene-logic priority of No over Unknown).
func SubtypeTri(a, b PlainTerm) Tri {
	fa, fb := Follow(a), Follow(b)

	if _, aIsVar := fa.(*VariableCell); aIsVar {
		return Unknown
	}
	if _, bIsVar := fb.(*VariableCell); bIsVar {
		return Unknown
	}

	oa := fa.(OperatorTerm)
	ob := fb.(OperatorTerm)

	if oa.Op.IsBasic() && ob.Op.IsBasic() {
		return boolTri(LessEq(oa.Op, ob.Op))
	}
	if !oa.Op.Equal(ob.Op) {
		return No
	}

	// Collect every component first: the spec's priority (any Unknown
	// dominates, only then AND the booleans) must see the whole vector
	// before deciding, not short-circuit on the first No.
	results := make([]Tri, len(oa.Op.Variance))
	for i, v := range oa.Op.Variance {
		if v == Covariant {
			results[i] = SubtypeTri(oa.Params[i], ob.Params[i])
		} else {
			results[i] = SubtypeTri(ob.Params[i], oa.Params[i])
		}
	}
	for _, r := range results {
		if r == Unknown {
			return Unknown
		}
	}
	for _, r := range results {
		if r == No {
			return No
		}
	}
	return Yes
}
