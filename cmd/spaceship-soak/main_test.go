package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceship/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPilotPressesFireOncePerPeriod(t *testing.T) {
	p := &pilot{fireEvery: 100 * time.Millisecond, sweepEvery: time.Second}

	held := 0
	for range 60 {
		p.advance(1.0 / 60)
		if contains(p.AppendPressedKeys(nil), ebiten.KeySpace) {
			held++
		}
	}
	assert.Equal(t, 10, p.presses)
	assert.Positive(t, held)
}

func TestPilotSweeps(t *testing.T) {
	p := &pilot{fireEvery: time.Hour, sweepEvery: 500 * time.Millisecond}

	p.advance(0.1)
	assert.True(t, contains(p.keys, ebiten.KeyD))

	p.advance(0.5)
	assert.True(t, contains(p.keys, ebiten.KeyA))
	assert.True(t, contains(p.keys, ebiten.KeyW))
}

func contains(keys []ebiten.Key, key ebiten.Key) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:       time.Second,
		TPS:            60,
		TotalUpdates:   3,
		UpdateTime:     Stats{Samples: []time.Duration{3, 1, 2}},
		PeakBullets:    4,
		Systems:        []ecs.SystemStats{{Name: "BulletFiringSystem"}},
		Storage:        &ecs.StorageStats{ArchetypeCount: 2, TotalEntityCount: 5},
		GCPauseMetrics: true,
	}
	r.UpdateTime.Finalize()
	assert.Equal(t, time.Duration(1), r.UpdateTime.Min)
	assert.Equal(t, time.Duration(3), r.UpdateTime.Max)
	assert.Equal(t, time.Duration(2), r.UpdateTime.Avg)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "**Peak Bullets:** 4")
	assert.Contains(t, buf.String(), "BulletFiringSystem")
	assert.Contains(t, buf.String(), "## GC Pause Durations")
}
