// Package evalflag carries the ambient debug/config surface this
// evaluator exposes outside the World contract, ported from the
// teacher's internal/cuedebug + internal/envflag pair: a Config struct
// populated by reflection from a single environment variable rather
// than a sprawl of individually-parsed flags.
package evalflag

import (
	"sync"

	"github.com/scrivenlang/scriven/internal/envflag"
)

// Flags holds the process-wide set of SCRIVEN_DEBUG flags, initialized
// by Init.
var Flags Config

// Config holds the known SCRIVEN_DEBUG flags.
type Config struct {
	// Strict is a boolean flag. No evaluator code reads it; setting it
	// changes no evaluation result.
	Strict bool

	// LogEval is a log level (0: no logging, 1: logging). No evaluator
	// code reads it; nothing is logged at either level.
	LogEval int

	// TraceCalls is a boolean flag. No evaluator code reads it; no call
	// trace is written anywhere when it is set.
	TraceCalls bool

	// MaxCallDepth, MaxIterations and TracerMax override the frozen
	// bounds a production evaluation runs under (DefaultMaxCallDepth,
	// DefaultMaxIterations, DefaultTracerMax) when positive. Left at
	// zero outside of tests: these exist to let a test exercise a
	// shallow call-depth or iteration limit quickly, never to let a
	// production build quietly relax the real invariants.
	MaxCallDepth  int
	MaxIterations int
	TracerMax     int
}

// The bounds a production evaluation runs under absent an override
// (spec.md §6).
const (
	DefaultMaxCallDepth  = 64
	DefaultMaxIterations = 10_000
	DefaultTracerMax     = 10
)

// CallDepthLimit returns the active MaxCallDepth bound.
func CallDepthLimit() int {
	if v := Flags.MaxCallDepth; v > 0 {
		return v
	}
	return DefaultMaxCallDepth
}

// IterationLimit returns the active MaxIterations bound.
func IterationLimit() int {
	if v := Flags.MaxIterations; v > 0 {
		return v
	}
	return DefaultMaxIterations
}

// TracerLimit returns the active TracerMax bound.
func TracerLimit() int {
	if v := Flags.TracerMax; v > 0 {
		return v
	}
	return DefaultTracerMax
}

// Init initializes Flags from SCRIVEN_DEBUG. Not named init() because
// the failure mode is an error, not a panic, and callers that never
// touch the environment (e.g. library embedders) may skip calling it.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "SCRIVEN_DEBUG")
})
