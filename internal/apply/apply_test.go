package apply

import (
	"testing"

	"github.com/weft-lang/weft/internal/constraint"
	"github.com/weft-lang/weft/internal/term"
	"github.com/weft-lang/weft/internal/typeterm"
)

type testLattice struct {
	any_, ord, boolOp, str, int_, uint_ *typeterm.Operator
	setOp, tOp                          *typeterm.Operator
}

func newLattice(t *testing.T) testLattice {
	t.Helper()
	reg := typeterm.NewRegistry()
	l := testLattice{}
	l.any_, _ = reg.Declare("Any", nil, nil)
	l.ord, _ = reg.Declare("Ord", nil, l.any_)
	l.boolOp, _ = reg.Declare("Bool", nil, l.ord)
	l.str, _ = reg.Declare("Str", nil, l.ord)
	l.int_, _ = reg.Declare("Int", nil, l.ord)
	l.uint_, _ = reg.Declare("UInt", nil, l.int_)
	l.setOp = &typeterm.Operator{Name: "Set", Variance: []typeterm.Variance{typeterm.Covariant}}
	l.tOp = &typeterm.Operator{Name: "T", Variance: []typeterm.Variance{typeterm.Covariant}}
	return l
}

func op(o *typeterm.Operator, params ...typeterm.PlainTerm) *term.Term {
	return term.New(typeterm.Op(o, params...))
}

// scenario 1: (Int -> Str)(Int) = Str.
func TestApplyBasicFunction(t *testing.T) {
	l := newLattice(t)
	alloc := typeterm.NewAllocator()
	f := op(typeterm.Function, typeterm.Op(l.int_), typeterm.Op(l.str))
	result, err := Apply(f, op(l.int_), alloc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ot, ok := result.Plain.(typeterm.OperatorTerm); !ok || ot.Op != l.str {
		t.Fatalf("result = %v, want Str", result.Plain)
	}
}

// Applying Int to (Any -> Str) also yields Str.
func TestApplySubtypeArgument(t *testing.T) {
	l := newLattice(t)
	alloc := typeterm.NewAllocator()
	f := op(typeterm.Function, typeterm.Op(l.any_), typeterm.Op(l.str))
	result, err := Apply(f, op(l.int_), alloc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ot, ok := result.Plain.(typeterm.OperatorTerm); !ok || ot.Op != l.str {
		t.Fatalf("result = %v, want Str", result.Plain)
	}
}

// Applying Str to (Int -> Str) raises SubtypeMismatch.
func TestApplyMismatchedArgument(t *testing.T) {
	l := newLattice(t)
	alloc := typeterm.NewAllocator()
	f := op(typeterm.Function, typeterm.Op(l.int_), typeterm.Op(l.str))
	_, err := Apply(f, op(l.str), alloc)
	if err == nil {
		t.Fatal("expected SubtypeMismatch applying Str where Int is required")
	}
}

// scenario 2: T(Int) -> Str applied to T(Int) gives Str; to T(Any) fails
// (covariance means Any is not <: Int); to T(UInt) gives Str.
func TestApplyCovariantCompoundArgument(t *testing.T) {
	l := newLattice(t)

	mk := func() *term.Term {
		return op(typeterm.Function, typeterm.Op(l.tOp, typeterm.Op(l.int_)), typeterm.Op(l.str))
	}

	alloc := typeterm.NewAllocator()
	if result, err := Apply(mk(), op(l.tOp, typeterm.Op(l.int_)), alloc); err != nil || result.Plain.(typeterm.OperatorTerm).Op != l.str {
		t.Fatalf("T(Int) application: result=%v err=%v", result, err)
	}

	alloc2 := typeterm.NewAllocator()
	if _, err := Apply(mk(), op(l.tOp, typeterm.Op(l.any_)), alloc2); err == nil {
		t.Fatal("expected SubtypeMismatch applying T(Any) where T(Int) is required (covariance)")
	}

	alloc3 := typeterm.NewAllocator()
	if result, err := Apply(mk(), op(l.tOp, typeterm.Op(l.uint_)), alloc3); err != nil || result.Plain.(typeterm.OperatorTerm).Op != l.str {
		t.Fatalf("T(UInt) application: result=%v err=%v", result, err)
	}
}

// scenario 3: compose = forall x y z. (y->z) -> (x->y) -> (x->z).
// compose(Int->Str)(Str->Int) = Str->Str; compose(Int->Str)(Str->UInt) also
// yields Str->Str (subtype fuses y).
func TestApplyComposeSchema(t *testing.T) {
	l := newLattice(t)
	composeSchema := term.NewSchema([]string{"x", "y", "z"}, func(vars map[string]typeterm.PlainTerm) *term.Term {
		x, y, z := vars["x"], vars["y"], vars["z"]
		return term.New(typeterm.Op(typeterm.Function,
			typeterm.Op(typeterm.Function, y, z),
			typeterm.Op(typeterm.Function,
				typeterm.Op(typeterm.Function, x, y),
				typeterm.Op(typeterm.Function, x, z))))
	})

	run := func(second *typeterm.Operator) *term.Term {
		alloc := typeterm.NewAllocator()
		compose := composeSchema.Instance(alloc, nil)
		g := op(typeterm.Function, typeterm.Op(l.int_), typeterm.Op(l.str))
		step1, err := Apply(compose, g, alloc)
		if err != nil {
			t.Fatalf("compose(Int->Str): %v", err)
		}
		h := op(typeterm.Function, typeterm.Op(l.str), typeterm.Op(second))
		step2, err := Apply(step1, h, alloc)
		if err != nil {
			t.Fatalf("compose(Int->Str)(Str->%s): %v", second.Name, err)
		}
		return step2
	}

	for _, second := range []*typeterm.Operator{l.int_, l.uint_} {
		// Apply resolves its return type with resolveSubtypes/preferLower
		// both true, same as the original implementation's apply() — so by
		// the time the second Apply call returns, y and z have already been
		// fused via the variance-flipped bound each one accumulated, with
		// no further resolve call needed to reach a concrete answer.
		result := run(second)
		ot, ok := result.Plain.(typeterm.OperatorTerm)
		if !ok || ot.Op != typeterm.Function {
			t.Fatalf("expected a function result, got %v", result.Plain)
		}
		argOp, ok := typeterm.Follow(ot.Params[0]).(typeterm.OperatorTerm)
		if !ok || argOp.Op != l.str {
			t.Fatalf("expected Str -> Str, arg side was %v", ot.Params[0])
		}
		retOp, ok := typeterm.Follow(ot.Params[1]).(typeterm.OperatorTerm)
		if !ok || retOp.Op != l.str {
			t.Fatalf("expected Str -> Str, return side was %v", ot.Params[1])
		}
	}
}

// scenario 5/6: leq = forall a. a -> a -> Bool, with and without a Member
// constraint restricting a to the alternatives {Ord, Bool}.
func TestApplyLeqWithoutConstraint(t *testing.T) {
	l := newLattice(t)
	leqSchema := term.NewSchema([]string{"a"}, func(vars map[string]typeterm.PlainTerm) *term.Term {
		a := vars["a"]
		return term.New(typeterm.Op(typeterm.Function, a, typeterm.Op(typeterm.Function, a, typeterm.Op(l.boolOp))))
	})

	alloc := typeterm.NewAllocator()
	leq := leqSchema.Instance(alloc, nil)
	step1, err := Apply(leq, op(l.uint_), alloc)
	if err != nil {
		t.Fatalf("leq(UInt): %v", err)
	}
	step2, err := Apply(step1, op(l.int_), alloc)
	if err != nil {
		t.Fatalf("leq(UInt)(Int): %v", err)
	}
	if ot, ok := step2.Plain.(typeterm.OperatorTerm); !ok || ot.Op != l.boolOp {
		t.Fatalf("result = %v, want Bool", step2.Plain)
	}

	alloc2 := typeterm.NewAllocator()
	leq2 := leqSchema.Instance(alloc2, nil)
	step1b, err := Apply(leq2, op(l.int_), alloc2)
	if err != nil {
		t.Fatalf("leq(Int): %v", err)
	}
	if _, err := Apply(step1b, op(l.boolOp), alloc2); err == nil {
		t.Fatal("expected SubtypeMismatch: Int and Bool share only Ord, Int is not a supertype of Bool")
	}
}

func TestApplyLeqWithMemberConstraintViolated(t *testing.T) {
	l := newLattice(t)
	leqSchema := term.NewSchema([]string{"a"}, func(vars map[string]typeterm.PlainTerm) *term.Term {
		a := vars["a"]
		body := term.New(typeterm.Op(typeterm.Function, a, typeterm.Op(typeterm.Function, a, typeterm.Op(l.boolOp))))
		return body.WithConstraint(constraint.Member(a, typeterm.Op(l.ord), typeterm.Op(l.boolOp)))
	})

	alloc := typeterm.NewAllocator()
	leq := leqSchema.Instance(alloc, nil)
	result, err := Apply(leq, op(l.any_), alloc)
	if err != nil {
		t.Fatalf("unexpected error at apply time: %v", err)
	}
	// The constraint's subject is still an unresolved variable right after
	// apply (bound to Any only as a lower bound); the spec invariant checks
	// constraints "at the top level after resolve" — that is where Any's
	// incompatibility with both alternatives surfaces.
	if _, err := result.Resolve(true, true, true); err == nil {
		t.Fatal("expected ViolatedConstraint after resolve: Any is not a subtype of Ord or Bool")
	}
}

// scenario 7: sum = forall a. a -> a | Member(a, Int, Set(Int)).
// sum(Set(UInt)) = Set(UInt); sum(Bool) = ViolatedConstraint.
func TestApplySumMemberConstraint(t *testing.T) {
	l := newLattice(t)
	sumSchema := term.NewSchema([]string{"a"}, func(vars map[string]typeterm.PlainTerm) *term.Term {
		a := vars["a"]
		body := term.New(typeterm.Op(typeterm.Function, a, a))
		return body.WithConstraint(constraint.Member(a, typeterm.Op(l.int_), typeterm.Op(l.setOp, typeterm.Op(l.int_))))
	})

	alloc := typeterm.NewAllocator()
	sum := sumSchema.Instance(alloc, nil)
	result, err := Apply(sum, op(l.setOp, typeterm.Op(l.uint_)), alloc)
	if err != nil {
		t.Fatalf("sum(Set(UInt)): %v", err)
	}
	ot, ok := result.Plain.(typeterm.OperatorTerm)
	if !ok || ot.Op != l.setOp {
		t.Fatalf("result = %v, want Set(...)", result.Plain)
	}

	alloc2 := typeterm.NewAllocator()
	sum2 := sumSchema.Instance(alloc2, nil)
	// a is sum's direct, unnested return type here, so Apply's own internal
	// resolve (resolveSubtypes/preferLower true) fuses it to its lower bound
	// (Bool) before the Member constraint is enforced — the violation
	// surfaces straight out of Apply, with no extra resolve call needed,
	// exactly as in the original implementation's single apply() call.
	if _, err := Apply(sum2, op(l.boolOp), alloc2); err == nil {
		t.Fatal("expected ViolatedConstraint at apply time: Bool is not Int nor Set(Int)")
	}
}

// Applying a non-function head raises NonFunctionApplication.
func TestApplyNonFunction(t *testing.T) {
	l := newLattice(t)
	alloc := typeterm.NewAllocator()
	_, err := Apply(op(l.int_), op(l.str), alloc)
	if err == nil {
		t.Fatal("expected NonFunctionApplication")
	}
}

// The source material carries a suspect worked example: (x -> Any) -> x
// applied to Int -> Int is claimed to yield Int. This does not hold up under
// this implementation's actual rules (see DESIGN.md, "Open Question
// decision: the suspect (x -> Any) -> x scenario"): contravariant unification
// of the parameter only bounds x above by Int, it does not fuse x to Int, so
// without an explicit resolve the result stays an unresolved variable. This
// test documents the current behavior rather than asserting the source
// material's claimed answer, per the instruction to leave such cases
// unresolved until the semantics are decided.
func TestApplySuspectIdentityLikeScenario(t *testing.T) {
	l := newLattice(t)
	alloc := typeterm.NewAllocator()

	x := alloc.Fresh("x")
	outer := op(typeterm.Function,
		typeterm.Op(typeterm.Function, x, typeterm.Op(l.any_)),
		x)

	arg := op(typeterm.Function, typeterm.Op(l.int_), typeterm.Op(l.int_))

	result, err := Apply(outer, arg, alloc)
	if err != nil {
		t.Fatalf("unexpected error applying the suspect scenario: %v", err)
	}

	if _, ok := result.Plain.(typeterm.OperatorTerm); ok {
		t.Fatal("result unexpectedly resolved to a concrete operator without a Resolve call; " +
			"the source material's claimed Int answer would require treating this as intended " +
			"behavior, which is exactly the open question this test leaves undecided")
	}

	resolved, err := result.Resolve(true, true, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	ot, ok := resolved.Plain.(typeterm.OperatorTerm)
	if !ok || ot.Op != l.int_ {
		t.Skip("forced-resolve output for (x -> Any) -> x applied to Int -> Int is unspecified; " +
			"not asserting a value here pending a semantics decision")
	}
}
