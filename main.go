package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/urfave/cli/v3"

	"github.com/iburimskiy/neon-bars/internal/config"
	"github.com/iburimskiy/neon-bars/internal/game"
	"github.com/iburimskiy/neon-bars/internal/scheduler"
	"github.com/iburimskiy/neon-bars/internal/shared"
	"github.com/iburimskiy/neon-bars/internal/snapshot"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	app := &cli.Command{
		Name:    "neon-bars",
		Usage:   "Ambient neon bars background. Esc/Q: quit, S: snapshot, D: stats",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.FloatFlag{
				Name:  "speed",
				Usage: "Global animation speed multiplier",
			},
			&cli.FloatFlag{
				Name:  "intensity",
				Usage: "Global glow and motion intensity multiplier",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed for the bar and particle layout (0 picks a new one each run)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "fullscreen",
				Usage: "Start in fullscreen",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(cmd, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "init-config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.String("config")
					if err := config.CreateConfigFile(path); err != nil {
						return err
					}
					logger.Info("config written", "path", path)
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func loadConfig(cmd *cli.Command, logger *log.Logger) (*config.Config, error) {
	path := cmd.String("config")
	cfg, err := config.LoadConfig(path)
	switch {
	case errors.Is(err, shared.ErrMissingConfig) && !cmd.IsSet("config"):
		logger.Debug("no config file, using defaults", "path", path)
		cfg = config.DefaultConfig()
	case err != nil:
		return nil, err
	}

	if cmd.IsSet("speed") {
		cfg.Animation.Speed = cmd.Float("speed")
	}
	if cmd.IsSet("intensity") {
		cfg.Animation.Intensity = cmd.Float("intensity")
	}
	if cmd.IsSet("seed") {
		cfg.Animation.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("fullscreen") {
		cfg.Window.Fullscreen = cmd.Bool("fullscreen")
	}
	return cfg, cfg.Validate()
}

func run(cmd *cli.Command, logger *log.Logger) error {
	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := shared.SetLogLevel(logger, cfg.Log.Level); err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
	}

	presets := config.DefaultLayerPresets()
	if cfg.Animation.LayersPath != "" {
		if presets, err = config.LoadLayerPresets(cfg.Animation.LayersPath); err != nil {
			return err
		}
	}
	layers, err := config.BuildLayers(presets, cfg.Animation.Speed, cfg.Animation.Intensity)
	if err != nil {
		return err
	}

	manager := &surface.Manager{}
	g := game.New(game.Options{
		Surface:   manager,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Snapshots: snapshot.NewWriter(cfg.Snapshot.Directory),
		Logger:    shared.WithLogger(logger, "component", "host"),
	})
	bg := scheduler.New(scheduler.Options{
		Host:      g,
		Surface:   manager,
		Layers:    layers,
		Speed:     cfg.Animation.Speed,
		Intensity: cfg.Animation.Intensity,
		Seed:      cfg.Animation.Seed,
		Logger:    shared.WithLogger(logger, "component", "background"),
	})
	g.ShowStats(bg)

	if err := bg.Mount(); err != nil {
		return err
	}
	defer bg.Unmount()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		_ = zenity.Error(fmt.Sprintf("neon-bars could not run: %v", err),
			zenity.Title("neon-bars"),
			zenity.ErrorIcon)
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
