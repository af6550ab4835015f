package stream

import "time"

// MaxTimeSkip bounds the seconds a single tick may report, so a suspended
// host does not teleport the scene when it resumes.
const MaxTimeSkip = 0.1

// Clock turns host frame timestamps into per-tick elapsed seconds.
type Clock struct {
	prev    time.Duration
	started bool
}

// Tick returns the seconds since the previous call, clamped to MaxTimeSkip.
// The first call after construction or Reset takes its timestamp as the
// baseline and returns 0.
func (c *Clock) Tick(timestamp time.Duration) float64 {
	if !c.started {
		c.prev = timestamp
		c.started = true
		return 0
	}

	elapsed := (timestamp - c.prev).Seconds()
	c.prev = timestamp

	if elapsed < 0 {
		return 0
	}
	if elapsed > MaxTimeSkip {
		return MaxTimeSkip
	}
	return elapsed
}

// Reset forgets the baseline.
func (c *Clock) Reset() {
	c.prev = 0
	c.started = false
}
