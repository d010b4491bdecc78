package typeterm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/weft-lang/weft/internal/config"
)

// String renders an OperatorTerm per the stable conventions of spec §6:
// "Op(p1, p2, ...)" for compound operators, the bare name for arity-0, and
// "A ** B" (right-associative, parens around a left-nested function) for the
// distinguished Function operator.
func (t OperatorTerm) String() string {
	if t.Op == Function {
		return t.renderFunction()
	}
	if len(t.Params) == 0 {
		return t.Op.Name
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = stringify(p)
	}
	return fmt.Sprintf("%s(%s)", t.Op.Name, strings.Join(parts, ", "))
}

func (t OperatorTerm) renderFunction() string {
	left := stringify(t.Params[0])
	right := stringify(t.Params[1])
	if lf, ok := Follow(t.Params[0]).(OperatorTerm); ok && lf.Op == Function {
		left = "(" + left + ")"
	}
	return left + " ** " + right
}

var autoVarName = regexp.MustCompile(`^v\d+$`)

// String renders a VariableCell by its display name, normalizing
// auto-generated names (v0, v1, v14, ...) to "v?" under config.IsTestMode so
// tests comparing rendered output stay stable across runs. Literal names
// (schema parameters such as x, y, z) are never normalized.
func (vc *VariableCell) String() string {
	name := vc.Name
	if name == "" {
		name = fmt.Sprintf("v%d", vc.id)
	}
	if config.IsTestMode && autoVarName.MatchString(name) {
		return "v?"
	}
	return name
}

func stringify(t PlainTerm) string {
	switch v := t.(type) {
	case OperatorTerm:
		return v.String()
	case *VariableCell:
		return v.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// RenderBounds renders the bound annotations for every free variable cell
// reachable from t, in the "Lower << v | v << Upper" form of spec §6. Cells
// with neither bound produce no annotation. The overall result is the term
// string followed by " | "-joined annotations, or just the term string if
// there are none.
func RenderBounds(t PlainTerm) string {
	head := stringify(Follow(t))
	var clauses []string
	seen := make(map[*VariableCell]bool)
	collectBounds(t, seen, &clauses)
	if len(clauses) == 0 {
		return head
	}
	return head + " | " + strings.Join(clauses, " | ")
}

func collectBounds(t PlainTerm, seen map[*VariableCell]bool, clauses *[]string) {
	switch v := Follow(t).(type) {
	case *VariableCell:
		if seen[v] {
			return
		}
		seen[v] = true
		if v.Lower != nil {
			*clauses = append(*clauses, fmt.Sprintf("%s << %s", v.Lower.Name, v.String()))
		}
		if v.Upper != nil {
			*clauses = append(*clauses, fmt.Sprintf("%s << %s", v.String(), v.Upper.Name))
		}
	case OperatorTerm:
		for _, p := range v.Params {
			collectBounds(p, seen, clauses)
		}
	}
}
