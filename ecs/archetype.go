package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return typeKey(a[i]) < typeKey(a[j]) }

// Archetype represents a unique combination of component types
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	// Initialize storage for each component type
	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn creates a new entity in this archetype with the given components.
// Every storage grows in lockstep, so the shared slot is the entity index.
func (a *Archetype) Spawn(components []any) uint32 {
	storagePos := -1
	for idx, typ := range a.types {
		var comp any
		for _, c := range components {
			if componentType(c) == typ {
				comp = c
				break
			}
		}
		if comp == nil {
			panic("missing component " + typ.String() + " for archetype spawn")
		}

		pos := a.storages[idx].Append(comp)
		if storagePos != -1 && pos != storagePos {
			panic("archetype storages out of step")
		}
		storagePos = pos
	}

	return uint32(storagePos)
}

func (a *Archetype) typeIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns the component of the given type for the entity at entityIndex
// The entityIndex is the storage position directly
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.typeIndex(compType)
	if idx == -1 {
		return nil
	}

	return a.storages[idx].Get(int(entityIndex))
}

// SetComponent overwrites an existing component in place.
func (a *Archetype) SetComponent(entityIndex uint32, component any) bool {
	idx := a.typeIndex(componentType(component))
	if idx == -1 {
		return false
	}
	return a.storages[idx].Set(int(entityIndex), component)
}

// Has reports whether the slot at entityIndex holds a live entity.
func (a *Archetype) Has(entityIndex uint32) bool {
	return len(a.storages) > 0 && a.storages[0].Has(int(entityIndex))
}

// Delete marks an entity's components as deleted
// Indices remain stable - the slot is simply marked as empty
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	weakPtr, ok := a.refs.Get(entityId)
	if ok {
		// Update the EntityRef to mark it as deleted
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Cap returns the number of slots in use, including deleted ones that are
// waiting for Compact.
func (a *Archetype) Cap() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Cap()
}

// Compact reorganizes all component storage to eliminate empty slots and reduce fragmentation
// EntityRefs remain valid and are automatically updated to point to the new indices.
// Raw EntityIds taken before the call must not be used afterwards.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	// Compact the first storage and use it as the canonical index mapping
	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	updatedRefs := make(map[EntityId]weak.Pointer[EntityRef], a.refs.Len())
	for oldIdx, newIdx := range indexMap {
		oldEntityId := NewEntityId(a.id, uint32(oldIdx))
		weakPtr, ok := a.refs.Get(oldEntityId)
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newEntityId := NewEntityId(a.id, uint32(newIdx))
			ref.Id = newEntityId
			updatedRefs[newEntityId] = weakPtr
		}
	}

	// Dead weak pointers are dropped here as well
	a.refs.Clear()
	for newEntityId, weakPtr := range updatedRefs {
		a.refs.Put(newEntityId, weakPtr)
	}
}

// Iter returns an iterator over all valid EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			entityId := NewEntityId(a.id, uint32(index))
			if !yield(entityId) {
				return
			}
		}
	}
}
