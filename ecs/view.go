package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View projects entities onto a struct of component pointers.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Transform
//		*SpriteMovement
//		Timer *CooldownTimer `ecs:"optional"`
//	}](storage)
//
// Embedded pointer fields are required. Named pointer fields may be tagged
// `ecs:"optional"` and are nil when the entity lacks the component. A field
// of type EntityId, embedded or named, receives the entity's id.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: view type must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: view field " + field.Name + " must be a pointer or an EntityId")
		}

		optional := false
		switch tag := field.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			optional = !field.Anonymous
		default:
			panic("ecs: invalid ecs tag value \"" + tag + "\" (only \"optional\" is supported)")
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return v
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor maps each view field onto the archetype column that backs it,
// -1 where the archetype lacks the type.
func (v *View[T]) columnsFor(archetype *Archetype) []int {
	idx := make([]int, len(v.fields))
	for i, f := range v.fields {
		idx[i] = archetype.columnIndex(f.typ)
	}
	return idx
}

func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, slot int, columns []int) bool {
	for i, f := range v.fields {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(dst, f.offset))

		var comp any
		if columns[i] >= 0 {
			comp = archetype.columns[columns[i]].get(slot)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = reflect.ValueOf(comp).UnsafePointer()
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(dst, v.idOffset)) = archetype.idFor(uint32(slot))
	}
	return true
}

// Fill populates *out for id and reports whether id names a live entity
// with every required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.live(id) {
		return false
	}
	return v.populate(unsafe.Pointer(out), archetype, int(id.Index()), v.columnsFor(archetype))
}

// Get returns the populated view for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

// GetRef is Get through an EntityRef; it returns nil for a dead ref.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	if len(archetype.columns) == 0 {
		return true
	}

	columns := v.columnsFor(archetype)
	var out T
	dst := unsafe.Pointer(&out)

	for slot := range archetype.columns[0].each() {
		if !v.populate(dst, archetype, slot, columns) {
			continue
		}
		if !yield(archetype.idFor(uint32(slot)), out) {
			return false
		}
	}
	return true
}

// Entries walks every matching entity with its id. Archetype order is
// unspecified.
func (v *View[T]) Entries() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Iter walks every matching entity.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Entries() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for range v.Entries() {
		n++
	}
	return n
}
