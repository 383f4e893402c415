package debugui

import (
	"slices"
	"testing"
	"time"

	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Equal(t, float32(0), h.Average())

	h.Push(10)
	assert.Equal(t, float32(10), h.Average())

	h.Push(20)
	h.Push(30)
	h.Push(40)
	assert.Equal(t, float32(30), h.Average())
	assert.Equal(t, []float32{40, 20, 30}, h.samples)
}

func TestSlowestSystems(t *testing.T) {
	stats := &ecs.SchedulerStats{Systems: []ecs.SystemStats{
		{Name: "fast", AvgDuration: time.Microsecond},
		{Name: "syncPoint", AvgDuration: time.Second},
		{Name: "slow", AvgDuration: time.Millisecond},
	}}

	var names []string
	for _, sys := range slowestSystems(stats) {
		names = append(names, sys.Name)
	}
	assert.Equal(t, []string{"slow", "fast"}, names)
}

func TestCollectBodies(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	physics.RegisterComponents(registry)
	space := physics.NewSpace(ecs.NewStorage(registry))

	small := space.Spawn(physics.Transform{X: 30}, physics.NewBody(physics.Collider{Shape: physics.Circle(2), Layer: 1}))
	big := space.Spawn(physics.Transform{X: 10}, physics.NewBody(physics.Collider{Shape: physics.Box(5, 5), Layer: 4}))
	space.Spawn(physics.Transform{}, physics.Body{})

	t.Run("by position", func(t *testing.T) {
		rows := collectBodies(space, "", columnPosition, true)
		require.Len(t, rows, 2)
		assert.Equal(t, big, rows[0].Entity)
		assert.Equal(t, small, rows[1].Entity)
	})

	t.Run("by shape descending", func(t *testing.T) {
		rows := collectBodies(space, "", columnShape, false)
		require.Len(t, rows, 2)
		assert.Equal(t, big, rows[0].Entity)
	})

	t.Run("filter", func(t *testing.T) {
		rows := collectBodies(space, "BOX", columnEntity, true)
		require.Len(t, rows, 1)
		assert.Equal(t, big, rows[0].Entity)
	})
}

type spaceSource struct{ space *physics.Space }

func (s *spaceSource) Storage() *ecs.Storage { return s.space.Storage() }
func (s *spaceSource) Scheduler() *ecs.Scheduler { return nil }
func (s *spaceSource) Space() *physics.Space { return s.space }

func TestBodyInspectorSelection(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	physics.RegisterComponents(registry)
	newSpace := func() *physics.Space { return physics.NewSpace(ecs.NewStorage(registry)) }

	src := &spaceSource{space: newSpace()}
	spawn := func(x float64) ecs.EntityId {
		return src.space.Spawn(physics.Transform{X: x}, physics.NewBody(physics.Collider{Shape: physics.Circle(x)}))
	}
	a := spawn(30)
	b := spawn(50)
	spawn(40)

	bi := NewBodyInspector(src, 10)
	_, ok := bi.selection()
	assert.False(t, ok)

	bi.Select(b)

	t.Run("survives compaction", func(t *testing.T) {
		src.space.Storage().Delete(a)
		src.space.Storage().Compact()

		id, ok := bi.selection()
		require.True(t, ok)
		assert.NotEqual(t, b, id)
		assert.Equal(t, 50.0, ecs.ReadComponent[physics.Transform](src.space.Storage(), id).X)

		rows := collectBodies(src.space, "", columnEntity, true)
		assert.True(t, slices.ContainsFunc(rows, func(r BodyRow) bool { return r.Entity == id }))
	})

	t.Run("cleared by delete", func(t *testing.T) {
		id, ok := bi.selection()
		require.True(t, ok)
		src.space.Storage().Delete(id)

		_, ok = bi.selection()
		assert.False(t, ok)
	})

	t.Run("cleared by storage swap", func(t *testing.T) {
		bi.Select(spawn(60))
		_, ok := bi.selection()
		require.True(t, ok)

		src.space = newSpace()
		spawn(60)
		_, ok = bi.selection()
		assert.False(t, ok)
	})
}
