package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/roids/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestStats(t *testing.T) {
	var s Stats
	assert.Equal(t, time.Duration(0), s.Avg())

	s.Add(3 * time.Millisecond)
	s.Add(1 * time.Millisecond)
	s.Add(2 * time.Millisecond)

	assert.Equal(t, uint64(3), s.Count)
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg())
}

func TestRunAndReport(t *testing.T) {
	world, err := game.NewWorld(game.DefaultConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)

	report := &Report{Seed: 1}
	run(context.Background(), world, 200, &report.UpdateTime)
	report.Collect(world)

	assert.Equal(t, uint64(200), report.Ticks)
	assert.NotZero(t, report.Game.BulletsFired)
	assert.NotEmpty(t, report.Systems)

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "**Ticks:** 200")
	assert.Contains(t, out.String(), "| MotionSystem |")
	assert.NotContains(t, out.String(), "GC Pause")
}
