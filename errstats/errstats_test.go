package errstats

import (
	"errors"
	"testing"

	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
)

func TestCollectorTalliesByKind(t *testing.T) {
	var c Collector
	c.Record(nil)
	c.Record(ferrors.New(ferrors.KindConvergence, "test", 10, 1e-3, "did not converge"))
	c.Record(ferrors.New(ferrors.KindConvergence, "test", 10, 1e-3, "did not converge"))
	c.Record(ferrors.New(ferrors.KindPhysical, "test", 0, 0, "trivial solution"))

	if got := c.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
	if got := c.Count(ferrors.KindConvergence); got != 2 {
		t.Errorf("Count(KindConvergence) = %d, want 2", got)
	}
	if got := c.Count(ferrors.KindPhysical); got != 1 {
		t.Errorf("Count(KindPhysical) = %d, want 1", got)
	}
	if got := c.Count(ferrors.KindFatal); got != 0 {
		t.Errorf("Count(KindFatal) = %d, want 0", got)
	}
}

func TestCollectorTreatsNonFlashErrorAsFatal(t *testing.T) {
	var c Collector
	c.Record(errors.New("some unrelated failure"))

	if got := c.Count(ferrors.KindFatal); got != 1 {
		t.Errorf("Count(KindFatal) = %d, want 1", got)
	}
	if got := c.Total(); got != 1 {
		t.Errorf("Total() = %d, want 1", got)
	}
}

func TestCollectorSnapshotIsACopy(t *testing.T) {
	var c Collector
	c.Record(ferrors.New(ferrors.KindNumerical, "test", 0, 0, "overflow"))

	snap := c.Snapshot()
	snap[ferrors.KindNumerical] = 99
	if got := c.Count(ferrors.KindNumerical); got != 1 {
		t.Errorf("mutating Snapshot() affected Collector: Count = %d, want 1", got)
	}
}
