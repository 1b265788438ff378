package ecs

import "iter"

// Query is a View whose results are materialised once per frame. The
// Scheduler calls Execute on every Query field of every registered system
// before the frame's systems run; Iter and friends then replay that
// snapshot. Component pointers in the snapshot are live, so writes made by
// one system are seen by the next. Entities spawned or deleted through
// Commands only show up on the following frame.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	archetypes     []*Archetype
	archetypeCount int

	ids    []EntityId
	values []T
	ready  bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops all cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
	q.ready = false
}

func (q *Query[T]) refreshArchetypes() {
	if n := len(q.storage.archetypes); n != q.archetypeCount || q.archetypes == nil {
		q.archetypeCount = n
		q.archetypes = q.archetypes[:0]
		for _, archetype := range q.storage.GetArchetypes() {
			if q.view.matchesArchetype(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
	}
}

// Execute rebuilds the snapshot from storage.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.ids = q.ids[:0]
	q.values = q.values[:0]
	for _, archetype := range q.archetypes {
		q.view.iterArchetype(archetype, func(id EntityId, value T) bool {
			q.ids = append(q.ids, id)
			q.values = append(q.values, value)
			return true
		})
	}
	q.ready = true
}

func (q *Query[T]) mustBeReady(method string) {
	if !q.ready {
		panic("ecs: Query." + method + "() called before Query.Execute()")
	}
}

// Entries yields the snapshot with entity ids.
func (q *Query[T]) Entries() iter.Seq2[EntityId, T] {
	q.mustBeReady("Entries")
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.values[i]) {
				return
			}
		}
	}
}

// Iter yields the snapshot.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.mustBeReady("Iter")
	return func(yield func(T) bool) {
		for i := range q.values {
			if !yield(q.values[i]) {
				return
			}
		}
	}
}

// Len is the number of entities in the snapshot.
func (q *Query[T]) Len() int {
	q.mustBeReady("Len")
	return len(q.values)
}

// Single returns the only entity in the snapshot. ok is false when the
// snapshot holds zero or several entities.
func (q *Query[T]) Single() (value T, ok bool) {
	q.mustBeReady("Single")
	if len(q.values) != 1 {
		return value, false
	}
	return q.values[0], true
}
