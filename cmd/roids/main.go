package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/roids/game"
	"go.uber.org/zap"

	debugui_ebiten "github.com/plus3/roids/ecs/debugui/ebiten"
)

func main() {
	configPath := flag.String("config", "", "YAML file with gameplay overrides.")
	seed := flag.Uint64("seed", 0, "Override the configured random seed.")
	debug := flag.Bool("debug", false, "Draw the ImGui inspection panels.")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.String("path", *configPath), zap.Error(err))
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	world, err := game.NewWorld(cfg, logger)
	if err != nil {
		logger.Fatal("create world", zap.Error(err))
	}

	g := &Game{world: world}
	if *debug {
		g.overlay = debugui_ebiten.NewOverlay("roids", int(cfg.Width), int(cfg.Height), world)
	} else {
		ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
		ebiten.SetWindowTitle("roids")
	}

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}

func loadConfig(path string) (game.Config, error) {
	if path == "" {
		return game.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return game.Config{}, err
	}
	defer f.Close()
	return game.LoadConfig(f)
}
