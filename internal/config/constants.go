// Package config holds process-wide toggles shared across the engine.
package config

// Version is the current weft version.
var Version = "0.1.0"

// IsTestMode normalizes auto-generated variable names (v1, v2, v14, ...) to
// "v?" in String() output, mirroring how the teacher's TVar.String()
// stabilizes rendering for deterministic test comparisons.
var IsTestMode = false

// Distinguished basic operator names the engine itself never special-cases
// structurally, but that embedders overwhelmingly declare. Kept here only as
// documentation; the registry has no builtin operators.
const (
	AnyOperatorName = "Any"
)
