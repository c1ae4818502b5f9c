package evalflag

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestInit(t *testing.T) {
	// This is just a smoke test to make sure it's all wired up OK.
	t.Setenv("SCRIVEN_DEBUG", "strict")
	err := Init()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(Flags.Strict))
}

func TestLimitsFallBackToDefaults(t *testing.T) {
	qt.Assert(t, qt.Equals(CallDepthLimit(), DefaultMaxCallDepth))
	qt.Assert(t, qt.Equals(IterationLimit(), DefaultMaxIterations))
	qt.Assert(t, qt.Equals(TracerLimit(), DefaultTracerMax))
}

func TestLimitsHonorOverride(t *testing.T) {
	saved := Flags
	defer func() { Flags = saved }()

	Flags.MaxCallDepth = 4
	Flags.MaxIterations = 10
	Flags.TracerMax = 2

	qt.Assert(t, qt.Equals(CallDepthLimit(), 4))
	qt.Assert(t, qt.Equals(IterationLimit(), 10))
	qt.Assert(t, qt.Equals(TracerLimit(), 2))
}
