package ecs_test

import (
	"testing"

	"github.com/plus3/spaceship/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRequiredComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Health{Current: 1})
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	sum := float32(0)
	for item := range view.Iter() {
		require.NotNil(t, item.Position)
		require.NotNil(t, item.Velocity)
		sum += item.Position.X
	}
	assert.Equal(t, float32(3), sum)
	assert.Equal(t, 2, view.Count())
}

func TestViewOptionalComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	withHealth := storage.Spawn(Position{X: 1}, Health{Current: 5})
	without := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	assert.Equal(t, 2, view.Count())

	item := view.Get(withHealth)
	require.NotNil(t, item)
	require.NotNil(t, item.Health)
	assert.Equal(t, 5, item.Health.Current)

	item = view.Get(without)
	require.NotNil(t, item)
	assert.Nil(t, item.Health)
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Enemy{})
	storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Enemy
	}](storage)

	found := 0
	for entryId, item := range view.Entries() {
		found++
		assert.Equal(t, id, entryId)
		assert.Equal(t, id, item.EntityId)
	}
	assert.Equal(t, 1, found)
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	for item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	assert.Equal(t, Position{X: 3, Y: 4}, *ecs.ReadComponent[Position](storage, id))
}

func TestViewGetMissing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(id))
	assert.Nil(t, view.Get(ecs.NewEntityId(1, 1)))

	storage.Delete(id)
	posView := ecs.NewView[struct{ *Position }](storage)
	assert.Nil(t, posView.Get(id))
}

func TestViewInvalidShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"maybe"`
		}](storage)
	})
}
