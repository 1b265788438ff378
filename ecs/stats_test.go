package ecs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	gone := storage.Spawn(200.0, "test")
	storage.Spawn(300.0, "kept")
	storage.Delete(gone)

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	counts := map[int]bool{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = true
		assert.Len(t, arch.ComponentTypes, 2)
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, counts)
}

type sleepySystem struct {
	runs  int
	sleep time.Duration
}

func (s *sleepySystem) Execute(frame *UpdateFrame) {
	s.runs++
	time.Sleep(s.sleep)
}

func TestSchedulerStats(t *testing.T) {
	scheduler := NewScheduler(NewStorage(NewComponentRegistry()))

	stats := scheduler.GetStats()
	assert.Zero(t, stats.SystemCount)
	assert.Zero(t, stats.TotalExecutions)

	fast := &sleepySystem{sleep: time.Millisecond}
	slow := &sleepySystem{sleep: 2 * time.Millisecond}
	scheduler.Register(fast)
	scheduler.Register(slow)

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)

	for _, s := range stats.Systems {
		assert.Equal(t, "sleepySystem", s.Name)
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.Positive(t, s.MinDuration)
		assert.Positive(t, s.LastDuration)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration, s.AvgDuration*3+s.TotalDuration%3)
	}

	assert.Equal(t, 3, fast.runs)
	assert.Equal(t, 3, slow.runs)
}
