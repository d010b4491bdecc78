package term

import "github.com/weft-lang/weft/internal/typeterm"

// Builder produces a Term given one fresh variable cell per schema
// parameter, keyed by name. It must be pure: all fresh allocation happens
// through the cells already supplied to it, never by calling back into an
// allocator itself (that would break the single-instantiation guarantee
// below).
type Builder func(vars map[string]typeterm.PlainTerm) *Term

// Schema is a universally quantified term: a name list plus a Builder.
// Instantiation allocates one fresh cell per name and invokes Builder
// exactly once, so that a parameter used in multiple operand positions of
// the builder's body refers to a single shared cell (spec §4.8, §9 "a
// schema must instantiate exactly once per top-level expression").
type Schema struct {
	Params  []string
	Builder Builder
}

// NewSchema declares a schema over the given parameter names.
func NewSchema(params []string, b Builder) *Schema {
	return &Schema{Params: params, Builder: b}
}

// Instance instantiates the schema, binding any names present in args to
// the supplied plain terms and filling the rest with fresh variable cells
// from alloc. Passing no args is the common case (full fresh instantiation).
func (s *Schema) Instance(alloc *typeterm.Allocator, args map[string]typeterm.PlainTerm) *Term {
	vars := make(map[string]typeterm.PlainTerm, len(s.Params))
	for _, name := range s.Params {
		if bound, ok := args[name]; ok {
			vars[name] = bound
			continue
		}
		vars[name] = alloc.Fresh(name)
	}
	return s.Builder(vars)
}

// InstanceNamed is a convenience for positional instantiation: the i-th
// supplied term binds to the i-th parameter name, in declaration order.
func (s *Schema) InstanceNamed(alloc *typeterm.Allocator, args ...typeterm.PlainTerm) *Term {
	bound := make(map[string]typeterm.PlainTerm, len(args))
	for i, a := range args {
		if i >= len(s.Params) {
			break
		}
		bound[s.Params[i]] = a
	}
	return s.Instance(alloc, bound)
}
