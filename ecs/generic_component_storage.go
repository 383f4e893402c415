package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether T has been registered with the registry.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// componentBlock is a fixed run of slots. Blocks are heap allocated once and
// never moved, so a pointer handed out by Get stays valid until the slot is
// deleted or the storage is compacted.
type componentBlock[T any] struct {
	items  [genericBlockSize]T
	filled [genericBlockSize]bool
}

// genericComponentStorage is a generic implementation of iComponentStorage.
// Freed slots are not handed out again until Compact runs, so an index that
// was deleted can never silently start naming a different component.
type genericComponentStorage[T any] struct {
	blocks    []*componentBlock[T]
	nextIndex int
	live      int
}

func (cs *genericComponentStorage[T]) convert(item any) (T, bool) {
	if ptr, ok := item.(*T); ok {
		return *ptr, true
	}
	if val, ok := item.(T); ok {
		return val, true
	}
	var zero T
	return zero, false
}

func (cs *genericComponentStorage[T]) slot(index int) (*componentBlock[T], int) {
	if index < 0 || index >= cs.nextIndex {
		return nil, 0
	}
	return cs.blocks[index/genericBlockSize], index % genericBlockSize
}

// Append adds a component to storage and returns its index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	concreteItem, ok := cs.convert(item)
	if !ok {
		return -1 // Invalid type
	}

	index := cs.nextIndex
	cs.nextIndex++

	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, &componentBlock[T]{})
	}

	block := cs.blocks[blockIdx]
	block.items[index%genericBlockSize] = concreteItem
	block.filled[index%genericBlockSize] = true
	cs.live++
	return index
}

// Set overwrites a live component in place.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	block, slotIdx := cs.slot(index)
	if block == nil || !block.filled[slotIdx] {
		return false
	}
	concreteItem, ok := cs.convert(item)
	if !ok {
		return false
	}
	block.items[slotIdx] = concreteItem
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	block, slotIdx := cs.slot(index)
	if block == nil || !block.filled[slotIdx] {
		return nil
	}
	return &block.items[slotIdx]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	block, slotIdx := cs.slot(index)
	if block == nil || !block.filled[slotIdx] {
		return
	}

	block.filled[slotIdx] = false
	var zero T
	block.items[slotIdx] = zero // Zero out the value
	cs.live--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	block, slotIdx := cs.slot(index)
	return block != nil && block.filled[slotIdx]
}

// Len returns the number of live components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.live
}

// Cap returns the number of slots handed out since the last compaction,
// live or not.
func (cs *genericComponentStorage[T]) Cap() int {
	return cs.nextIndex
}

// Compact reorganizes component storage to remove empty slots.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int, cs.live)

	if cs.live == 0 {
		cs.blocks = nil
		cs.nextIndex = 0
		return indexMap
	}

	numNewBlocks := (cs.live + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([]*componentBlock[T], numNewBlocks)
	for i := range newBlocks {
		newBlocks[i] = &componentBlock[T]{}
	}

	writePos := 0
	for readIdx := 0; readIdx < cs.nextIndex; readIdx++ {
		block := cs.blocks[readIdx/genericBlockSize]
		readSlotIdx := readIdx % genericBlockSize
		if !block.filled[readSlotIdx] {
			continue
		}

		indexMap[readIdx] = writePos

		dst := newBlocks[writePos/genericBlockSize]
		dst.items[writePos%genericBlockSize] = block.items[readSlotIdx]
		dst.filled[writePos%genericBlockSize] = true
		writePos++
	}

	cs.blocks = newBlocks
	cs.nextIndex = writePos

	return indexMap
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		// Bound is captured up front: slots appended while iterating are not visited.
		end := cs.nextIndex
		for i := 0; i < end; i++ {
			if !cs.blocks[i/genericBlockSize].filled[i%genericBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
