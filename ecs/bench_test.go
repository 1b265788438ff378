package ecs_test

import (
	"testing"

	"github.com/plus3/spaceship/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	for b.Loop() {
		storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkSpawnDeleteChurn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for range 1000 {
		storage.Spawn(Position{}, Velocity{})
	}

	for b.Loop() {
		id := storage.Spawn(Position{}, Velocity{DY: 500}, Enemy{})
		storage.Delete(id)
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 10000 {
		if i%2 == 0 {
			storage.Spawn(Position{}, Velocity{DX: 1})
		} else {
			storage.Spawn(Position{}, Velocity{DX: 1}, Enemy{})
		}
	}

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	for b.Loop() {
		query.Execute()
		for item := range query.Iter() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkReadComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})

	for b.Loop() {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}
