package ecs

import "fmt"

const (
	indexBits      = 20
	generationBits = 12

	// MaxArchetypeEntities is how many entities one archetype can hold.
	MaxArchetypeEntities = 1 << indexBits

	indexMask      = MaxArchetypeEntities - 1
	generationMask = 1<<generationBits - 1
)

// EntityId packs the archetype an entity lives in (upper 32 bits), the
// generation of its slot (next 12 bits) and the slot itself (low 20 bits).
// A slot's generation advances every time its entity is deleted, so ids of
// deleted entities never name the entity that later reuses the slot. The
// zero value never names a live entity.
type EntityId uint64

// NewEntityId builds a first-generation id.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return newEntityId(archetypeId, 0, index)
}

func newEntityId(archetypeId, generation, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 |
		uint64(generation&generationMask)<<indexBits |
		uint64(index&indexMask))
}

func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) Index() uint32 {
	return uint32(e) & indexMask
}

func (e EntityId) Generation() uint32 {
	return uint32(e) >> indexBits & generationMask
}

func (e EntityId) String() string {
	return fmt.Sprintf("%08x:%d.%d", e.ArchetypeId(), e.Index(), e.Generation())
}

// EntityRef is a handle that survives storage moves. Deleting the entity
// clears Id and Archetype, so holders can tell a dead entity from a live one.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Alive reports whether the referenced entity still exists.
func (r *EntityRef) Alive() bool {
	return r != nil && r.Id != 0
}
