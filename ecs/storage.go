package ecs

import (
	"reflect"
	"slices"
	"sort"
	"weak"

	"github.com/cespare/xxhash/v2"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	// order lists archetype ids in creation order; every iteration over the
	// store walks this slice so runs with the same inputs visit entities in the
	// same order.
	order      []uint32
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Has(id.Index()) {
		return nil
	}

	// Check if we already have a ref for this entity
	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}

	archetype.refs.Put(id, weak.Make(ref))

	return ref
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil {
		return 0, false
	}
	// Check if the ref has been invalidated (Id == 0 means deleted)
	if ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}

	archetype := s.archetypes[ref.Id.ArchetypeId()]
	if archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// Archetypes iterates archetypes in creation order.
func (s *Storage) Archetypes() func(yield func(*Archetype) bool) {
	return func(yield func(*Archetype) bool) {
		for _, id := range s.order {
			if !yield(s.archetypes[id]) {
				return
			}
		}
	}
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if exists {
		if !slices.Equal(archetype.types, types) {
			panic("archetype id collision between component sets")
		}
		return archetype
	}

	archetype = NewArchetype(archetypeId, types, s.registry)
	s.archetypes[archetypeId] = archetype
	s.order = append(s.order, archetypeId)
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	entityIndex := archetype.Spawn(components)
	return NewEntityId(archetype.id, entityIndex)
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Has(id.Index())
}

// Delete removes all data related to the entity ID. Deleting a dead id is a no-op.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return
	}

	archetype.Delete(id.Index())
}

// migrate moves the entity into the archetype described by newTypes, taking
// component values from the old archetype except for the ones in override.
func (s *Storage) migrate(id EntityId, newTypes []reflect.Type, override any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	newArchetype := s.archetypeFor(newTypes)

	overrideType := reflect.Type(nil)
	if override != nil {
		overrideType = componentType(override)
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == overrideType {
			components = append(components, override)
			continue
		}
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	weakPtr, hasRef := oldArchetype.refs.Get(id)

	newIndex := newArchetype.Spawn(components)
	newId := NewEntityId(newArchetype.id, newIndex)

	// Update EntityRef if it exists
	if hasRef {
		oldArchetype.refs.Del(id)
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
			newArchetype.refs.Put(newId, weakPtr)
		}
	}

	oldArchetype.Delete(id.Index())
	return newId
}

// AddComponent attaches component to the entity and returns its new id.
// When the entity already carries a component of that type the value is
// overwritten in place and the id does not change. A dead id returns 0.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	if !s.Alive(id) {
		return 0
	}
	oldArchetype := s.archetypes[id.ArchetypeId()]

	compType := componentType(component)
	if oldArchetype.HasComponent(compType) {
		oldArchetype.SetComponent(id.Index(), component)
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	return s.migrate(id, newTypes, component)
}

// RemoveComponent detaches a component and returns the entity's new id.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	if !s.Alive(id) {
		return 0
	}
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}

	return s.migrate(id, newTypes, nil)
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}

	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Has(id.Index()) {
		return false
	}
	return archetype.HasComponent(compType)
}

// Compact compacts every archetype. EntityRefs are updated; raw EntityIds
// held across the call are invalidated.
func (s *Storage) Compact() {
	for _, id := range s.order {
		archetype := s.archetypes[id]
		if archetype.Cap() != archetype.Len() {
			archetype.Compact()
		}
	}
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// typeKey names a type uniquely across packages.
func typeKey(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// hashTypesToUint32 derives the archetype id from the sorted type names, so
// the same component set gets the same id in every process.
func hashTypesToUint32(types []reflect.Type) uint32 {
	d := xxhash.New()
	for _, t := range types {
		_, _ = d.WriteString(typeKey(t))
		_, _ = d.WriteString(";")
	}
	sum := d.Sum64()
	h := uint32(sum) ^ uint32(sum>>32)
	if h == 0 {
		// Archetype 0 is reserved so that EntityId(0) never names an entity.
		h = 1
	}
	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil when the entity is
// dead or does not carry one.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
