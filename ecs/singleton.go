package ecs

import "reflect"

// Singleton gives typed access to a component that belongs to the world
// rather than to an entity: input state, window size, clocks.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T and guarantees T exists in storage,
// creating it from initializer (or the zero value) when missing. An existing
// singleton is left untouched.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.singleton(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.ptr != nil || s.storage == nil {
		return
	}
	if entry := s.storage.singleton(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.ptr.(*T)
	}
}

// Get returns the singleton, or nil if it has not been added yet.
func (s *Singleton[T]) Get() *T {
	s.resolve()
	return s.ptr
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
