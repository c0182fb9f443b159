package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
	tps         int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
// A nil clock uses time.Now.
func NewFixedStep(tps int, clock func() time.Time) *FixedStep {
	if clock == nil {
		clock = time.Now
	}
	fs := &FixedStep{now: clock}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.tps = tps
	f.step = time.Second / time.Duration(tps)
}

// TPS returns the configured tick rate.
func (f *FixedStep) TPS() int { return f.tps }

// Reset discards accumulated time so the next ShouldStep fires immediately.
func (f *FixedStep) Reset() {
	f.last = time.Time{}
	f.accumulator = f.step
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		// Don't let a long stall queue up a burst of generations.
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
