package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/roids/game"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Wall time to run for when -ticks is zero.")
	ticks := flag.Uint64("ticks", 0, "Run exactly this many ticks instead of a fixed duration.")
	seed := flag.Uint64("seed", 1, "World seed.")
	configPath := flag.String("config", "", "YAML file with gameplay overrides.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := game.DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			logger.Fatal("open config", zap.Error(err))
		}
		cfg, err = game.LoadConfig(f)
		f.Close()
		if err != nil {
			logger.Fatal("load config", zap.String("path", *configPath), zap.Error(err))
		}
	}
	cfg.Seed = *seed

	// The world logs every hit at debug level; keep the run quiet.
	world, err := game.NewWorld(cfg, logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel)))
	if err != nil {
		logger.Fatal("create world", zap.Error(err))
	}

	report := &Report{
		Duration:       *duration,
		Seed:           cfg.Seed,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx := context.Background()
	if *ticks == 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	logger.Info("running", zap.String("run", world.RunID()), zap.Uint64("seed", cfg.Seed), zap.Uint64("ticks", *ticks))
	start := time.Now()
	run(ctx, world, *ticks, &report.UpdateTime)
	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Collect(world)
	logger.Info("finished", zap.Uint64("ticks", report.Ticks), zap.Int("resets", report.Resets))

	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println()
}

// run steps the world with scripted input until ctx is done or limit ticks
// have run. A defeated world is reset and the run continues.
func run(ctx context.Context, world *game.World, limit uint64, samples *Stats) {
	var done uint64
	for limit == 0 || done < limit {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if world.Defeated() {
			samples.Resets++
			world.Reset()
		}
		script(world, world.Tick())

		stepStart := time.Now()
		world.Step()
		samples.Add(time.Since(stepStart))
		done++
	}
}

// script fires constantly, sweeps the aim around and strafes in a slow box.
func script(world *game.World, tick uint64) {
	leg := (tick / 90) % 4
	*world.Intent() = game.Intent{
		MoveUp:    leg == 0,
		MoveRight: leg == 1,
		MoveDown:  leg == 2,
		MoveLeft:  leg == 3,
		Fire:      true,
		Aim:       float64(tick * 7 % 360),
	}
}
