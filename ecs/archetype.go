package ecs

import (
	"reflect"
	"slices"
	"sort"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool {
	if a[i].String() != a[j].String() {
		return a[i].String() < a[j].String()
	}
	if a[i].PkgPath() != a[j].PkgPath() {
		return a[i].PkgPath() < a[j].PkgPath()
	}
	return typeKey(a[i]) < typeKey(a[j])
}

// typeKey is the address of t's runtime type descriptor. Distinct types that
// print the same (block-scoped or generic ones) still get distinct keys.
func typeKey(t reflect.Type) uintptr {
	return reflect.ValueOf(t).Pointer()
}

// Archetype holds every entity that has exactly one particular set of
// component types. Each type gets its own column; an entity occupies the
// same slot index in all of them.
type Archetype struct {
	id          uint32
	types       []reflect.Type
	columns     []column
	generations []uint16
	refs        *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

// Len is the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].live()
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// spawn appends one component per column and returns the new entity's id.
// components must cover the archetype's types exactly.
func (a *Archetype) spawn(components []any) EntityId {
	slot := -1
	for _, comp := range components {
		t := componentType(comp)
		idx := a.columnIndex(t)
		if idx < 0 {
			panic("ecs: archetype has no column for " + t.String())
		}
		slot = a.columns[idx].append(comp)
		if slot < 0 {
			panic("ecs: column rejected component of type " + t.String())
		}
	}
	if slot >= MaxArchetypeEntities {
		panic("ecs: archetype is full")
	}
	return a.idFor(uint32(slot))
}

func (a *Archetype) generation(slot uint32) uint32 {
	if int(slot) < len(a.generations) {
		return uint32(a.generations[slot])
	}
	return 0
}

func (a *Archetype) idFor(slot uint32) EntityId {
	return newEntityId(a.id, a.generation(slot), slot)
}

// live reports whether id names the entity currently in its slot.
func (a *Archetype) live(id EntityId) bool {
	slot := id.Index()
	return id.ArchetypeId() == a.id &&
		len(a.columns) > 0 &&
		a.columns[0].has(int(slot)) &&
		a.generation(slot) == id.Generation()
}

// component returns a pointer to the component of type t for id, or nil.
func (a *Archetype) component(id EntityId, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 || !a.live(id) {
		return nil
	}
	return a.columns[idx].get(int(id.Index()))
}

// delete removes the entity and advances its slot's generation. Stale ids
// are ignored.
func (a *Archetype) delete(id EntityId) bool {
	if !a.live(id) {
		return false
	}
	if ptr, ok := a.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	slot := id.Index()
	for _, col := range a.columns {
		col.remove(int(slot))
	}
	if int(slot) >= len(a.generations) {
		a.generations = append(a.generations, make([]uint16, int(slot)+1-len(a.generations))...)
	}
	a.generations[slot] = uint16((uint32(a.generations[slot]) + 1) & generationMask)
	return true
}

// Iter yields the ids of all live entities in the archetype.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].each() {
			if !yield(a.idFor(uint32(slot))) {
				return
			}
		}
	}
}

// componentType resolves the component type of a value passed to Spawn.
// Pointers are dereferenced once; reference kinds are rejected.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// sortedTypes returns the component types in archetype order. An entity
// holds at most one component of each type.
func sortedTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentType(comp))
	}
	sort.Sort(byTypeName(types))
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("ecs: duplicate component type " + types[i].String())
		}
	}
	return types
}
