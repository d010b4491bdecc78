package typeterm

// PlainTerm is either an OperatorTerm or a *VariableCell. It is a closed sum:
// no other type may implement it.
type PlainTerm interface {
	isPlainTerm()
}

// OperatorTerm applies an operator to its parameters. It is a value type —
// copying an OperatorTerm is safe and expected, since its Params slice holds
// PlainTerms that are themselves either immutable values or shared pointers.
type OperatorTerm struct {
	Op     *Operator
	Params []PlainTerm
}

func (OperatorTerm) isPlainTerm() {}

// VariableCell is a unit of shared mutable state: a type variable that may
// carry a lower and/or upper bound, and that may later be unified to another
// term. VariableCells are always handled by pointer; copying one by value
// would split the sharing that makes unification observable across every
// term that mentions it.
type VariableCell struct {
	id   int
	Name string

	Lower *Operator
	Upper *Operator

	// Unified holds the term this cell has been fused to, or nil while the
	// cell is still free. Once set it is never cleared.
	Unified PlainTerm
}

func (*VariableCell) isPlainTerm() {}

// ID returns the cell's allocation-order identity, stable for its lifetime.
func (vc *VariableCell) ID() int {
	return vc.id
}

// Allocator hands out VariableCells with monotonically increasing ids, so
// that two cells are never confused even if given the same display name.
type Allocator struct {
	counter int
}

// NewAllocator returns an allocator starting from cell id 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Fresh allocates a new, unbounded, unfused variable cell.
func (a *Allocator) Fresh(name string) *VariableCell {
	vc := &VariableCell{id: a.counter, Name: name}
	a.counter++
	return vc
}

// FreshBounded allocates a new variable cell with the given bounds already
// set (either may be nil).
func (a *Allocator) FreshBounded(name string, lower, upper *Operator) *VariableCell {
	vc := a.Fresh(name)
	vc.Lower = lower
	vc.Upper = upper
	return vc
}

// Op builds an OperatorTerm, a small convenience for call sites that would
// otherwise repeat the struct literal.
func Op(op *Operator, params ...PlainTerm) OperatorTerm {
	return OperatorTerm{Op: op, Params: params}
}

// Follow walks a chain of fused variable cells to its representative: either
// a still-free cell, or the OperatorTerm it ultimately resolved to. It does
// not mutate any cell (no path compression) — callers that need the
// resolved shape repeatedly should cache it themselves.
func Follow(t PlainTerm) PlainTerm {
	for {
		vc, ok := t.(*VariableCell)
		if !ok || vc.Unified == nil {
			return t
		}
		t = vc.Unified
	}
}
