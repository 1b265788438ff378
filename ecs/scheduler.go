package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats summarises how the registered systems have been running.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system  System
	queries []interface{ Execute() }

	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (e *systemEntry) record(d time.Duration) {
	e.count++
	e.last = d
	e.total += d
	e.min = min(e.min, d)
	e.max = max(e.max, d)
}

// Scheduler runs systems in registration order, one frame at a time.
type Scheduler struct {
	storage  *Storage
	commands *Commands
	systems  []*systemEntry
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register appends system to the frame and binds its Query and Singleton
// fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	s.systems = append(s.systems, &systemEntry{
		system:  system,
		queries: s.bindFields(system),
		name:    t.Name(),
		min:     time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) []interface{ Execute() } {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var queries []interface{ Execute() }
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		name := field.Type().Name()
		isQuery := strings.HasPrefix(name, "Query[")
		if !isQuery && !strings.HasPrefix(name, "Singleton[") {
			continue
		}

		binder, ok := field.Addr().Interface().(interface{ Init(*Storage) })
		if !ok {
			panic("ecs: field " + v.Type().Field(i).Name + " has no Init(*Storage) method")
		}
		binder.Init(s.storage)

		if isQuery {
			queries = append(queries, field.Addr().Interface().(interface{ Execute() }))
		}
	}
	return queries
}

// Once runs a single frame of dt seconds: every query is refreshed, every
// system executes, then queued commands are flushed.
func (s *Scheduler) Once(dt float64) {
	for _, entry := range s.systems {
		for _, q := range entry.queries {
			q.Execute()
		}
	}

	frame := &UpdateFrame{
		DeltaTime: dt,
		Commands:  s.commands,
		Storage:   s.storage,
	}
	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

// Run calls Once every interval with the measured elapsed time until ctx is
// done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		var avg time.Duration
		if entry.count > 0 {
			avg = entry.total / time.Duration(entry.count)
		}
		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			ExecutionCount: entry.count,
			MinDuration:    entry.min,
			MaxDuration:    entry.max,
			AvgDuration:    avg,
			LastDuration:   entry.last,
			TotalDuration:  entry.total,
		}
		stats.TotalExecutions += entry.count
	}
	return stats
}
