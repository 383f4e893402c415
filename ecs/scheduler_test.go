package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/roids/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *moveSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Movers.Values() {
		item.Position.X += item.Velocity.DX * frame.DeltaTime
	}
}

type spawnSystem struct{}

func (spawnSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{}, Velocity{DX: 1})
}

type countSystem struct {
	Movers ecs.Query[struct{ *Velocity }]
	Ticks  ecs.Singleton[Score]
	seen   []int
}

func (s *countSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, s.Movers.Len())
	*s.Ticks.Get() = Score(frame.Tick)
}

func TestSchedulerSync(t *testing.T) {
	t.Run("without sync", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[Score](storage)
		counter := &countSystem{}

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(spawnSystem{})
		scheduler.Register(counter)

		scheduler.Once(1)
		scheduler.Once(1)
		assert.Equal(t, []int{0, 1}, counter.seen)
	})

	t.Run("with sync", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[Score](storage)
		counter := &countSystem{}

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(spawnSystem{})
		scheduler.Sync()
		scheduler.Register(counter)

		scheduler.Once(1)
		scheduler.Once(1)
		assert.Equal(t, []int{1, 2}, counter.seen)
	})
}

func TestSchedulerRefreshesQueries(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{DX: 2})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&moveSystem{})

	scheduler.Once(0.5)
	scheduler.Once(0.5)
	assert.Equal(t, 2.0, ecs.ReadComponent[Position](storage, id).X)

	// Compaction moves components; the next run must see the new location.
	storage.Spawn(Position{}, Velocity{})
	storage.Delete(id)
	other := storage.Spawn(Position{X: 10}, Velocity{DX: 1})
	storage.Compact()

	scheduler.Once(1)
	for item := range ecs.NewView[struct{ *Position }](storage).Values() {
		assert.Contains(t, []float64{0, 11}, item.Position.X)
	}
	assert.False(t, storage.Alive(other), "raw ids are invalidated by compaction")
}

func TestSchedulerTickAndStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage)
	counter := &countSystem{}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(counter)
	scheduler.Sync()

	for range 3 {
		scheduler.Once(1)
	}
	assert.Equal(t, uint64(3), scheduler.Tick())
	assert.Equal(t, Score(2), *ecs.NewSingleton[Score](storage).Get())

	stats := scheduler.GetStats()
	require.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, "countSystem", stats.Systems[0].Name)
	assert.Equal(t, "syncPoint", stats.Systems[1].Name)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
}

func TestSchedulerRun(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&countSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, time.Millisecond)

	assert.Greater(t, scheduler.Tick(), uint64(0))
}

func TestSchedulerRequiresSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	assert.PanicsWithValue(t,
		"system countSystem needs singleton ecs_test.Score (field Ticks) but storage has none",
		func() { scheduler.Register(&countSystem{}) },
	)

	ecs.NewSingleton[Score](storage, 5)
	counter := &countSystem{}
	require.NotPanics(t, func() { scheduler.Register(counter) })
	assert.Equal(t, Score(5), *counter.Ticks.Get())
}
