package main

import (
	"io"
	"runtime"
	"strconv"
	"text/template"
	"time"

	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/game"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64

	// Results
	Ticks          uint64
	Resets         int
	TotalTime      time.Duration
	UpdateTime     Stats
	Game           game.Stats
	Storage        ecs.StorageStats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats keeps a running summary of step durations.
type Stats struct {
	Count  uint64
	Resets int
	Min    time.Duration
	Max    time.Duration
	total  time.Duration
}

func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.total += d
	s.Count++
}

func (s Stats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.total / time.Duration(s.Count)
}

// Collect copies the final state of world into the report. Game counters
// and system timings cover the run since the last reset.
func (r *Report) Collect(world *game.World) {
	r.Ticks = r.UpdateTime.Count
	r.Resets = r.UpdateTime.Resets
	r.Game = world.Stats()
	r.Storage = world.Storage().CollectStats()
	r.Systems = world.Scheduler().GetStats().Systems
}

const reportTemplate = `
# roids Benchmark Report

## Configuration
- **Seed:** {{.Seed}}
- **Run Duration:** {{.Duration}}

## Performance
- **Ticks:** {{.Ticks}} ({{.Resets}} resets)
- **Total Time:** {{.TotalTime}}
- **Step Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems (last run)
| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Last Run
- Asteroids spawned: {{.Game.AsteroidsSpawned}}
- Spinners spawned: {{.Game.SpinnersSpawned}}
- Splits: {{.Game.Splits}}
- Destroyed: {{.Game.Destroyed}}
- Bullets fired: {{.Game.BulletsFired}}
- Player hits: {{.Game.PlayerHits}}
- Live entities: {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes ({{.Storage.TotalSlotCount}} slots)

## Memory Usage (MiB)
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} during the run
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return formatMiB(v)
	},
	"bsub": func(a, b uint64) uint64 {
		if a < b {
			return 0
		}
		return a - b
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}

func formatMiB(bytes uint64) string {
	return strconv.FormatFloat(float64(bytes)/1024/1024, 'f', 2, 64)
}
