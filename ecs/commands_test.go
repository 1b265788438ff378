package ecs_test

import (
	"testing"

	"github.com/plus3/spaceship/ecs"
	"github.com/stretchr/testify/assert"
)

type spawnSystem struct {
	Positions ecs.Query[struct{ *Position }]
	seen      []int
}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, s.Positions.Len())
	frame.Commands.Spawn(Position{X: 1})
}

type deleteSystem struct {
	target ecs.EntityId
}

func (s *deleteSystem) Execute(frame *ecs.UpdateFrame) {
	if s.target != 0 {
		frame.Commands.Delete(s.target)
		s.target = 0
	}
}

func TestCommandsAreDeferred(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	first := &spawnSystem{}
	second := &spawnSystem{}
	scheduler.Register(first)
	scheduler.Register(second)

	scheduler.Once(0.016)
	assert.Equal(t, []int{0}, first.seen)
	assert.Equal(t, []int{0}, second.seen, "spawns from an earlier system are not visible in the same frame")

	scheduler.Once(0.016)
	assert.Equal(t, []int{0, 2}, first.seen)
	assert.Equal(t, []int{0, 2}, second.seen)
}

func TestCommandsDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&deleteSystem{target: id})

	assert.True(t, storage.Alive(id))
	scheduler.Once(0.016)
	assert.False(t, storage.Alive(id))
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Position{X: 1})

	commands := &ecs.Commands{}
	var alive bool
	var count int
	commands.Defer(func() {
		alive = storage.Alive(victim)
		count = ecs.NewView[struct{ *Position }](storage).Count()
	})
	commands.Spawn(Position{X: 2})
	commands.Spawn(Position{X: 3})
	commands.Delete(victim)
	assert.Equal(t, 4, commands.Pending())

	commands.Flush(storage)

	assert.False(t, alive, "deletes run before deferred functions")
	assert.Equal(t, 2, count, "spawns run before deferred functions")
	assert.Zero(t, commands.Pending())
}

func TestCommandsRepeatedDeleteSparesSlotReuser(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Position{X: 1})

	commands := &ecs.Commands{}
	commands.Delete(victim)
	commands.Spawn(Position{X: 2})
	commands.Flush(storage)

	commands.Delete(victim)
	commands.Flush(storage)

	var xs []float32
	for p := range ecs.NewView[struct{ *Position }](storage).Iter() {
		xs = append(xs, p.X)
	}
	assert.Equal(t, []float32{2}, xs)
}
