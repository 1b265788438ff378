package ecs_test

import (
	"runtime"
	"testing"

	"github.com/plus3/spaceship/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Equal(t, id, ref.Id)
	assert.True(t, ref.Alive())
	assert.Same(t, ref, storage.CreateEntityRef(id), "refs are shared per entity")

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(ref))
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.True(t, storage.Alive(id), "invalidating a ref keeps the entity")
}

func TestEntityRefClearedOnDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	other := storage.Spawn(Position{X: 2})
	ref := storage.CreateEntityRef(id)
	otherRef := storage.CreateEntityRef(other)

	storage.Delete(id)

	assert.False(t, ref.Alive())
	assert.Nil(t, ref.Archetype)
	assert.True(t, otherRef.Alive())

	view := ecs.NewView[struct{ *Position }](storage)
	assert.Nil(t, view.GetRef(ref))
	assert.Equal(t, float32(2), view.GetRef(otherRef).Position.X)
}

func TestEntityRefUnknownEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(7, 7)))

	id := storage.Spawn(Position{})
	storage.Delete(id)
	assert.Nil(t, storage.CreateEntityRef(id))

	var nilRef *ecs.EntityRef
	assert.False(t, nilRef.Alive())
}

func TestEntityRefRecreatedAfterCollection(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	storage.CreateEntityRef(id)
	runtime.GC()

	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Equal(t, id, ref.Id)
}
