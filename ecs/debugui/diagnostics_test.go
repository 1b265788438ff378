package debugui

import (
	"testing"
	"time"

	"github.com/plus3/spaceship/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFrameDiagnosticsEmpty(t *testing.T) {
	d := NewFrameDiagnostics(4)
	assert.Zero(t, d.FPS())
	assert.Zero(t, d.WorstFPS())
	assert.Zero(t, d.FrameTime())
	assert.Empty(t, d.Samples())
}

func TestFrameDiagnosticsWindow(t *testing.T) {
	d := NewFrameDiagnostics(4)

	d.Record(0.010)
	d.Record(0.020)
	assert.InDelta(t, 2/0.030, d.FPS(), 1e-9)
	assert.InDelta(t, 50, d.WorstFPS(), 1e-9)
	assert.Equal(t, 20*time.Millisecond, d.FrameTime().Round(time.Microsecond))

	// Push the slow frame out of the window.
	for range 4 {
		d.Record(0.010)
	}
	assert.InDelta(t, 100, d.FPS(), 1e-9)
	assert.InDelta(t, 100, d.WorstFPS(), 1e-9)
	assert.Equal(t, uint64(6), d.Frames())
	assert.Len(t, d.Samples(), 4)
}

func TestFrameDiagnosticsSamplesChronological(t *testing.T) {
	d := NewFrameDiagnostics(3)
	for _, dt := range []float64{0.001, 0.002, 0.003, 0.004} {
		d.Record(dt)
	}
	assert.InDeltaSlice(t, []float32{2, 3, 4}, d.Samples(), 1e-4)
}

func TestFrameDiagnosticsIgnoresNonPositive(t *testing.T) {
	var d FrameDiagnostics
	d.Record(0)
	d.Record(-1)
	assert.Zero(t, d.Frames())

	d.Record(0.5)
	assert.InDelta(t, 2, d.FPS(), 1e-9)
}

func TestDiagnosticsSystem(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	ecs.NewSingleton(storage, NewFrameDiagnostics(8))

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&DiagnosticsSystem{})
	scheduler.Once(1.0 / 50)
	scheduler.Once(1.0 / 50)

	var d *FrameDiagnostics
	assert.True(t, storage.ReadSingleton(&d))
	assert.Equal(t, uint64(2), d.Frames())
	assert.InDelta(t, 50, d.FPS(), 1e-6)
}

func TestFrameTimer(t *testing.T) {
	start := time.Unix(100, 0)
	clock := start
	ft := &FrameTimer{last: start, now: func() time.Time { return clock }}

	clock = clock.Add(16 * time.Millisecond)
	assert.InDelta(t, 0.016, ft.DeltaTime(), 1e-9)

	clock = clock.Add(4 * time.Millisecond)
	assert.InDelta(t, 0.004, ft.DeltaTime(), 1e-9)
}
