// Command weftdump is a small demo/debug tool: it declares a fixed example
// lattice, runs one fixed application (Int -> Str applied to UInt) through
// the unifier, and prints a step trace followed by the resolved result and a
// cell/constraint summary. It exists to exercise pkg/weft end to end, not
// as a schema-authoring front end (that remains an external collaborator).
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/weft-lang/weft/internal/typeterm"
	"github.com/weft-lang/weft/pkg/weft"
)

func main() {
	sessionID := uuid.New()
	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	reg := weft.NewRegistry()
	any_, _ := weft.DeclareOperator(reg, "Any", nil, nil)
	ord, _ := weft.DeclareOperator(reg, "Ord", nil, any_)
	boolOp, _ := weft.DeclareOperator(reg, "Bool", nil, ord)
	str, _ := weft.DeclareOperator(reg, "Str", nil, ord)
	int_, _ := weft.DeclareOperator(reg, "Int", nil, ord)
	uint_, _ := weft.DeclareOperator(reg, "UInt", nil, int_)
	_ = boolOp

	var steps int
	typeterm.Trace = func(step string, a, b typeterm.PlainTerm) {
		steps++
		fmt.Fprintf(os.Stderr, "[%s] step %d: %s\n", sessionID, steps, step)
	}
	defer func() { typeterm.Trace = nil }()

	alloc := weft.NewAllocator()
	f := weft.Arrow(weft.Op(int_), weft.Op(str))
	x := &weft.Term{Plain: weft.Op(uint_)}

	result, err := weft.ApplyFn(f, x, alloc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "weftdump: %s\n", err)
		os.Exit(1)
	}

	label := "result"
	if colorize {
		label = "\x1b[1mresult\x1b[0m"
	}
	fmt.Printf("%s: %s\n", label, result.String())

	stats := result.Stats()
	fmt.Printf("cells: %s live, %s total | constraints: %s\n",
		humanize.Comma(int64(stats.LiveVariables)),
		humanize.Comma(int64(stats.Variables)),
		humanize.Comma(int64(stats.Constraints)))
	fmt.Printf("session %s, %s unify step(s) traced\n", sessionID, humanize.Comma(int64(steps)))
}
