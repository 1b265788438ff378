package ecs

import "time"

type TimerMode int

const (
	// TimerOnce stops at its duration and stays finished until Reset.
	TimerOnce TimerMode = iota
	// TimerRepeating wraps around and finishes once per elapsed duration.
	TimerRepeating
)

// Timer measures accumulated frame time against a fixed duration. It does
// not read the clock; the owner advances it with Tick.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode
	finished bool
	times    int
}

func NewTimer(duration time.Duration, mode TimerMode) Timer {
	return Timer{duration: duration, mode: mode}
}

// TimerFromSeconds is NewTimer for a duration given in seconds.
func TimerFromSeconds(seconds float64, mode TimerMode) Timer {
	return NewTimer(time.Duration(seconds*float64(time.Second)), mode)
}

// Tick advances the timer by delta.
func (t *Timer) Tick(delta time.Duration) *Timer {
	t.times = 0

	if t.mode == TimerOnce && t.finished {
		return t
	}

	t.elapsed += delta
	if t.elapsed < t.duration {
		return t
	}

	t.finished = true
	switch t.mode {
	case TimerOnce:
		t.elapsed = t.duration
		t.times = 1
	case TimerRepeating:
		if t.duration <= 0 {
			t.elapsed = 0
			t.times = 1
			break
		}
		t.times = int(t.elapsed / t.duration)
		t.elapsed %= t.duration
	}
	return t
}

// Finished reports whether the timer has reached its duration. A repeating
// timer is finished only on ticks where it wrapped.
func (t *Timer) Finished() bool {
	if t.mode == TimerRepeating {
		return t.times > 0
	}
	return t.finished
}

// JustFinished reports whether the last Tick made the timer finish.
func (t *Timer) JustFinished() bool {
	return t.times > 0
}

// TimesFinishedThisTick is how many whole durations the last Tick covered.
func (t *Timer) TimesFinishedThisTick() int {
	return t.times
}

// Reset rewinds the timer to zero elapsed time.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.times = 0
}

func (t *Timer) Duration() time.Duration { return t.duration }
func (t *Timer) Elapsed() time.Duration  { return t.elapsed }
func (t *Timer) Mode() TimerMode         { return t.mode }

func (t *Timer) Remaining() time.Duration {
	return max(t.duration-t.elapsed, 0)
}

// Fraction is elapsed/duration in [0, 1]; a zero-length timer reports 1.
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}
	return min(float64(t.elapsed)/float64(t.duration), 1)
}
