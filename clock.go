package platter

import "time"

// Clock is a monotonic millisecond clock used to timestamp pointer samples.
type Clock interface {
	NowMs() int64
}

type monotonicClock struct {
	start time.Time
}

// NowMs returns milliseconds since the clock was created. time.Since uses the
// monotonic reading, so wall-clock adjustments do not affect it.
func (c monotonicClock) NowMs() int64 {
	return time.Since(c.start).Milliseconds()
}

// SystemClock returns a monotonic clock starting at zero now.
func SystemClock() Clock {
	return monotonicClock{start: time.Now()}
}

// ManualClock is a Clock advanced explicitly. Used by headless simulation and
// tests.
type ManualClock struct {
	Ms int64
}

// NowMs returns the current manual time.
func (c *ManualClock) NowMs() int64 {
	return c.Ms
}

// Advance moves the clock forward by ms milliseconds.
func (c *ManualClock) Advance(ms int64) {
	c.Ms += ms
}
