// Package errstats is a small, host-owned error aggregator: a caller
// running many Calculate invocations (a batch, a sweep, a service loop)
// can record each outcome here to get a per-Kind tally, rather than the
// flash kernel itself keeping any such state.
//
// There is deliberately no package-level global here: a mutable global
// error counter is exactly the shape the original C calculator used (a
// static error-code histogram updated from every call site) and is the
// thing this redesign replaces, per the per-invocation-result-record
// guidance — aggregation, if wanted at all, belongs to the host.
package errstats

import (
	"sync"

	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
)

// Collector tallies FlashErrors by Kind. The zero value is ready to use.
type Collector struct {
	mu     sync.Mutex
	counts map[ferrors.Kind]int
	total  int
}

// Record adds one observation to the tally. A nil error is a successful
// call and is counted in Total but not in any Kind bucket. A non-FlashError
// is recorded under KindFatal, since every error this module itself raises
// is a *FlashError — anything else reaching here is unexpected.
func (c *Collector) Record(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	if err == nil {
		return
	}
	if c.counts == nil {
		c.counts = make(map[ferrors.Kind]int)
	}
	if fe, ok := err.(*ferrors.FlashError); ok {
		c.counts[fe.Kind]++
		return
	}
	c.counts[ferrors.KindFatal]++
}

// Count returns how many times errors of the given kind have been recorded.
func (c *Collector) Count(kind ferrors.Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[kind]
}

// Total returns the number of calls recorded, successful or not.
func (c *Collector) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Snapshot returns a copy of the current per-Kind tally.
func (c *Collector) Snapshot() map[ferrors.Kind]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[ferrors.Kind]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
