package ecs_test

import (
	"testing"

	"github.com/plus3/spaceship/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("execute builds snapshot", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("panics without execute", func(t *testing.T) {
		fresh := ecs.NewQuery[struct{ *Position }](storage)
		assert.Panics(t, func() {
			for range fresh.Iter() {
			}
		})
		assert.Panics(t, func() { fresh.Single() })
	})

	t.Run("repeated iteration is stable", func(t *testing.T) {
		query.Execute()

		first := make(map[ecs.EntityId]bool)
		for id := range query.Entries() {
			first[id] = true
		}

		second := make(map[ecs.EntityId]bool)
		for id := range query.Entries() {
			second[id] = true
		}

		assert.Equal(t, first, second)
	})

	t.Run("spawns appear after re-execute", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 2.0, DY: 2.0})
		assert.Equal(t, before, query.Len())

		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Position{}, Velocity{}, Name{Value: "late"})
		query.Execute()

		assert.Equal(t, before+1, query.Len())
	})
}

func TestQuerySingle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	query := ecs.NewQuery[struct {
		*Position
		*Friendly
	}](storage)

	query.Execute()
	_, ok := query.Single()
	assert.False(t, ok, "no matching entity")

	storage.Spawn(Position{X: 4}, Friendly{})
	storage.Spawn(Position{X: 9})
	query.Execute()

	item, ok := query.Single()
	assert.True(t, ok)
	assert.Equal(t, float32(4), item.Position.X)

	storage.Spawn(Position{X: 5}, Friendly{})
	query.Execute()
	_, ok = query.Single()
	assert.False(t, ok, "two matching entities")
}
