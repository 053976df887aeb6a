package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step reports the configured tick interval.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.advance(time.Now())
}

func (f *FixedStep) advance(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Timer keeps a ring of recent durations and reports their average.
type Timer struct {
	start time.Time
	durs  []time.Duration
	i     int
}

// NewTimer allocates a Timer averaging over the last size samples.
func NewTimer(size int) *Timer {
	if size <= 0 {
		size = 1
	}
	return &Timer{durs: make([]time.Duration, size)}
}

// Push records a duration sample, overwriting the oldest one.
func (t *Timer) Push(d time.Duration) {
	t.i = (t.i + 1) % len(t.durs)
	t.durs[t.i] = d
}

// Start marks the beginning of a measured section.
func (t *Timer) Start() { t.start = time.Now() }

// Stop records the time since Start. Calling Stop without Start is a no-op.
func (t *Timer) Stop() {
	if t.start.IsZero() {
		return
	}
	t.Push(time.Since(t.start))
	t.start = time.Time{}
}

// Avg returns the mean of the stored samples.
func (t *Timer) Avg() time.Duration {
	var sum time.Duration
	for _, d := range t.durs {
		sum += d
	}
	return sum / time.Duration(len(t.durs))
}
