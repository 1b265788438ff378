package debugui

import (
	"time"

	"github.com/plus3/spaceship/ecs"
)

const DefaultHistoryFrames = 120

// FrameDiagnostics keeps a rolling window of frame durations. It is meant to
// live as a singleton fed by DiagnosticsSystem.
type FrameDiagnostics struct {
	history []float64 // seconds, ring buffer
	next    int
	filled  int
	frames  uint64
}

func NewFrameDiagnostics(historyFrames int) FrameDiagnostics {
	if historyFrames <= 0 {
		historyFrames = DefaultHistoryFrames
	}
	return FrameDiagnostics{history: make([]float64, historyFrames)}
}

// Record adds one frame of dt seconds. Non-positive samples are dropped.
func (d *FrameDiagnostics) Record(dt float64) {
	if dt <= 0 {
		return
	}
	if len(d.history) == 0 {
		d.history = make([]float64, DefaultHistoryFrames)
	}
	d.history[d.next] = dt
	d.next = (d.next + 1) % len(d.history)
	d.filled = min(d.filled+1, len(d.history))
	d.frames++
}

// Frames is the total number of recorded frames.
func (d *FrameDiagnostics) Frames() uint64 {
	return d.frames
}

// Samples returns the window in chronological order, in milliseconds.
func (d *FrameDiagnostics) Samples() []float32 {
	out := make([]float32, 0, d.filled)
	start := d.next - d.filled
	if start < 0 {
		start += len(d.history)
	}
	for i := range d.filled {
		out = append(out, float32(d.history[(start+i)%len(d.history)]*1000))
	}
	return out
}

// FPS is the mean frame rate over the window, 0 before the first frame.
func (d *FrameDiagnostics) FPS() float64 {
	if d.filled == 0 {
		return 0
	}
	var total float64
	for i := range d.filled {
		total += d.history[i]
	}
	return float64(d.filled) / total
}

// WorstFPS is the frame rate of the slowest frame in the window.
func (d *FrameDiagnostics) WorstFPS() float64 {
	var slowest float64
	for i := range d.filled {
		slowest = max(slowest, d.history[i])
	}
	if slowest == 0 {
		return 0
	}
	return 1 / slowest
}

// FrameTime is the duration of the most recent frame.
func (d *FrameDiagnostics) FrameTime() time.Duration {
	if d.filled == 0 {
		return 0
	}
	last := d.next - 1
	if last < 0 {
		last = len(d.history) - 1
	}
	return time.Duration(d.history[last] * float64(time.Second))
}

// DiagnosticsSystem records each frame's delta time into the
// FrameDiagnostics singleton.
type DiagnosticsSystem struct {
	Diagnostics ecs.Singleton[FrameDiagnostics]
}

func (s *DiagnosticsSystem) Execute(frame *ecs.UpdateFrame) {
	if d := s.Diagnostics.Get(); d != nil {
		d.Record(frame.DeltaTime)
	}
}

// FrameTimer measures wall-clock time between successive calls.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// DeltaTime returns the seconds elapsed since the previous call (or since
// construction) and restarts the measurement.
func (ft *FrameTimer) DeltaTime() float64 {
	now := ft.now()
	delta := now.Sub(ft.last).Seconds()
	ft.last = now
	return delta
}
