// pkg/sim/metrics.go
package sim

import (
	"sync/atomic"
	"time"
)

// Stats contains loop health counters. Ticks counts completed steps,
// SlowTicks the steps whose wall time exceeded the tick budget, and
// MaxStepsPerFrame the largest catch-up burst one Advance call ran.
type Stats struct {
	Ticks            uint64
	SlowTicks        uint64
	MaxStepsPerFrame int64
	LastStepDuration time.Duration
	AvgStepDuration  time.Duration
}

// metrics tracks loop health with lock-free counters so Stats can be
// sampled from any goroutine without touching the state lock.
type metrics struct {
	ticks       int64
	slowTicks   int64
	maxSteps    int64
	lastStepNs  int64
	totalStepNs int64
}

func (m *metrics) recordStep(elapsed, budget time.Duration) {
	atomic.AddInt64(&m.ticks, 1)
	atomic.StoreInt64(&m.lastStepNs, int64(elapsed))
	atomic.AddInt64(&m.totalStepNs, int64(elapsed))
	if elapsed > budget {
		atomic.AddInt64(&m.slowTicks, 1)
	}
}

func (m *metrics) recordFrame(steps int) {
	for {
		current := atomic.LoadInt64(&m.maxSteps)
		if int64(steps) <= current {
			return
		}
		if atomic.CompareAndSwapInt64(&m.maxSteps, current, int64(steps)) {
			return
		}
	}
}

func (m *metrics) snapshot() Stats {
	ticks := atomic.LoadInt64(&m.ticks)

	stats := Stats{
		Ticks:            uint64(ticks),
		SlowTicks:        uint64(atomic.LoadInt64(&m.slowTicks)),
		MaxStepsPerFrame: atomic.LoadInt64(&m.maxSteps),
		LastStepDuration: time.Duration(atomic.LoadInt64(&m.lastStepNs)),
	}
	if ticks > 0 {
		stats.AvgStepDuration = time.Duration(atomic.LoadInt64(&m.totalStepNs) / ticks)
	}
	return stats
}
