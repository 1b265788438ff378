package ecs

import (
	"iter"
	"reflect"
)

// column is the type-erased view of the per-type component store an
// archetype keeps for each of its component types.
type column interface {
	append(item any) int
	remove(index int)
	get(index int) any
	has(index int) bool
	live() int
	each() iter.Seq[int]
}

// ComponentRegistry maps component types to the column constructors used by
// archetypes. Each Storage owns its registry, so independent worlds (the game
// and a test) never share component state.
type ComponentRegistry struct {
	columns map[reflect.Type]func() column
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		columns: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages built on r.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.columns[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.columns[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.columns[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const chunkSize = 64

type chunk[T any] struct {
	items [chunkSize]T
	used  [chunkSize]bool
}

// typedColumn stores components of one type in fixed-size chunks so that
// pointers handed out by get stay valid while the column grows. Freed slots
// are recycled before new ones are appended.
type typedColumn[T any] struct {
	chunks []*chunk[T]
	free   []int
	next   int
	count  int
}

func (c *typedColumn[T]) locate(index int) (*chunk[T], int, bool) {
	if index < 0 || index >= c.next {
		return nil, 0, false
	}
	return c.chunks[index/chunkSize], index % chunkSize, true
}

func (c *typedColumn[T]) append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/chunkSize >= len(c.chunks) {
			c.chunks = append(c.chunks, &chunk[T]{})
		}
	}

	ch, slot, _ := c.locate(index)
	ch.items[slot] = value
	ch.used[slot] = true
	c.count++
	return index
}

func (c *typedColumn[T]) remove(index int) {
	ch, slot, ok := c.locate(index)
	if !ok || !ch.used[slot] {
		return
	}
	var zero T
	ch.items[slot] = zero
	ch.used[slot] = false
	c.free = append(c.free, index)
	c.count--
}

// get returns a *T, or nil when the slot is empty.
func (c *typedColumn[T]) get(index int) any {
	ch, slot, ok := c.locate(index)
	if !ok || !ch.used[slot] {
		return nil
	}
	return &ch.items[slot]
}

func (c *typedColumn[T]) has(index int) bool {
	ch, slot, ok := c.locate(index)
	return ok && ch.used[slot]
}

func (c *typedColumn[T]) live() int {
	return c.count
}

func (c *typedColumn[T]) each() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if c.chunks[i/chunkSize].used[i%chunkSize] && !yield(i) {
				return
			}
		}
	}
}
