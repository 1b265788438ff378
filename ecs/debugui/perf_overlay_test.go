package debugui

import (
	"testing"

	"github.com/plus3/spaceship/ecs"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"
)

func steadyDiagnostics(dt float64, frames int) *FrameDiagnostics {
	d := NewFrameDiagnostics(frames)
	for range frames {
		d.Record(dt)
	}
	return &d
}

func TestPerfOverlayLines(t *testing.T) {
	diag := steadyDiagnostics(1.0/60, 10)
	stats := &ecs.StorageStats{TotalEntityCount: 1234}

	tests := []struct {
		name    string
		overlay PerfOverlay
		want    []string
	}{
		{
			name: "labelled vertical",
			overlay: PerfOverlay{
				DisplayLabels: true,
				Entries:       []PerfEntry{EntryFPSWorst, EntryFPS},
			},
			want: []string{"FPS (worst): 60", "FPS: 60"},
		},
		{
			name: "bare horizontal",
			overlay: PerfOverlay{
				LayoutHorizontal: true,
				Entries:          []PerfEntry{EntryFPS, EntryEntityCount},
			},
			want: []string{"60  |  1,234"},
		},
		{
			name: "frame time",
			overlay: PerfOverlay{
				DisplayLabels: true,
				Entries:       []PerfEntry{EntryFrameTime},
			},
			want: []string{"Frame Time: 16.67 ms"},
		},
		{
			name:    "no entries",
			overlay: PerfOverlay{LayoutHorizontal: true},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.overlay.Lines(diag, stats))
		})
	}
}

func TestPerfOverlayNilStats(t *testing.T) {
	overlay := PerfOverlay{Entries: []PerfEntry{EntryEntityCount}}
	assert.Equal(t, []string{"0"}, overlay.Lines(steadyDiagnostics(0.01, 1), nil))
}

func TestPerfOverlayColors(t *testing.T) {
	overlay := PerfOverlay{Entries: []PerfEntry{EntryFPS}}

	assert.Equal(t, colornames.Limegreen, overlay.Rows(steadyDiagnostics(1.0/60, 5), nil)[0].Color)
	assert.Equal(t, colornames.Gold, overlay.Rows(steadyDiagnostics(1.0/40, 5), nil)[0].Color)
	assert.Equal(t, colornames.Red, overlay.Rows(steadyDiagnostics(1.0/10, 5), nil)[0].Color)
}

func TestPerfEntryLabel(t *testing.T) {
	assert.Equal(t, "FPS (worst)", EntryFPSWorst.Label())
	assert.Equal(t, "PerfEntry(42)", PerfEntry(42).Label())
}
