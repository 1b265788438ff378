package ecs

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"reflect"
	"sort"
	"weak"
)

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	ptr any // *T
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity from the given components. Values and pointers to
// values are both accepted; the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	return s.archetypeFor(sortedTypes(components)).spawn(components)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	} else if !slices.Equal(archetype.types, types) {
		panic(fmt.Sprintf("ecs: archetype id %08x collides for %v and %v", id, archetype.types, types))
	}
	return archetype
}

// Delete removes the entity and invalidates any EntityRef pointing at it.
// Deleting an unknown or already deleted entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.delete(id)
	}
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.live(id)
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.component(id, t)
}

func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.live(id) && archetype.HasComponent(t)
}

// GetArchetype returns the archetype for exactly this set of component
// values, or nil if no entity with that shape was ever spawned.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypes(sortedTypes(components))]
}

func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetypes returns all archetypes ordered by id.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, a := range s.archetypes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// CreateEntityRef returns the shared handle for id, creating it on first use.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !s.Alive(id) {
		return nil
	}

	if ptr, ok := archetype.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting it.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Alive() {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one. Singleton types need not be registered.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		value = reflect.ValueOf(value).Elem().Interface()
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))

	if entry, ok := s.singletons[t]; ok {
		reflect.ValueOf(entry.ptr).Elem().Set(ptr.Elem())
		return
	}
	s.singletons[t] = &singletonEntry{ptr: ptr.Interface()}
}

// ReadSingleton points *out at the stored singleton. out must be a **T.
// It returns false when no singleton of type T exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}

	entry := s.singletons[target.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	target.Elem().Set(reflect.ValueOf(entry.ptr))
	return true
}

func (s *Storage) singleton(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// hashTypes folds the identities of a sorted type set into an archetype id
// with FNV-1a.
func hashTypes(types []reflect.Type) uint32 {
	h := fnv.New32a()
	var buf [8]byte
	for _, t := range types {
		binary.LittleEndian.PutUint64(buf[:], uint64(typeKey(t)))
		h.Write(buf[:])
	}
	id := h.Sum32()
	if id == 0 {
		id = 1
	}
	return id
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent. It returns nil when the
// entity does not have a T.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
