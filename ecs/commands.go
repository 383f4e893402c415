package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush flushes all commands to the provided storage, reseting the buffer state.
// Operations run grouped: deletes, removes, adds, spawns and finally deferred
// functions. An entity that migrates archetypes while flushing keeps receiving
// the remaining operations queued against its old id.
func (c *Commands) Flush(storage *Storage) {
	deletedEntities := make(map[EntityId]bool, len(c.deletes))
	moved := make(map[EntityId]EntityId)

	resolve := func(id EntityId) EntityId {
		if newId, ok := moved[id]; ok {
			return newId
		}
		return id
	}

	for _, cmd := range c.deletes {
		storage.Delete(cmd)
		deletedEntities[cmd] = true
	}

	for _, cmd := range c.removes {
		if deletedEntities[cmd.entity] {
			continue
		}
		if newId := storage.RemoveComponent(resolve(cmd.entity), cmd.compType); newId != 0 {
			moved[cmd.entity] = newId
		}
	}

	for _, cmd := range c.adds {
		if deletedEntities[cmd.entity] {
			continue
		}
		if newId := storage.AddComponent(resolve(cmd.entity), cmd.component); newId != 0 {
			moved[cmd.entity] = newId
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	// Defers may queue more commands; they run on the next flush.
	defers := c.defers
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = nil

	for _, df := range defers {
		df.fn()
	}
}
