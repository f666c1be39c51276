package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dinos/audio"
	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/game"
	"github.com/pthm-cable/dinos/renderer"
	"github.com/pthm-cable/dinos/telemetry"
	"github.com/pthm-cable/dinos/terminal"
)

func run(ctx context.Context, opts *runOptions) error {
	// The terminal frontend owns stdout, so logs go to stderr there
	logOut := os.Stdout
	if opts.frontend == frontendTerminal {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	var metrics *telemetry.Metrics
	if opts.metricsAddr != "" {
		server := telemetry.NewServer(opts.metricsAddr)
		errCh, err := server.Start()
		if err != nil {
			return err
		}
		go func() {
			for err := range errCh {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := server.Stop(stopCtx); err != nil {
				slog.Warn("metrics server stop", "error", err)
			}
		}()
		metrics = server.Metrics()
		slog.Info("metrics server listening", "addr", server.Addr())
	}

	gameOpts := game.Options{
		Seed:           seed,
		LogStats:       opts.logStats,
		StatsWindowSec: opts.statsWindow,
		StepsPerUpdate: opts.stepsPerUpdate,
		Output:         output,
		Metrics:        metrics,
	}

	var chirp *audio.Chirp
	if opts.sound {
		chirp, err = audio.NewChirp()
		if err != nil {
			slog.Warn("audio unavailable, continuing without sound", "error", err)
		}
		defer chirp.Close()
	}
	hook := func(r telemetry.CombatRecord) { chirp.Play(r.Mutual) }

	slog.Info("starting arena",
		"frontend", opts.frontend,
		"seed", seed,
		"max_ticks", opts.maxTicks,
		"steps_per_update", opts.stepsPerUpdate,
	)

	switch opts.frontend {
	case frontendHeadless:
		return runHeadless(ctx, cfg, gameOpts, opts.maxTicks)
	case frontendTerminal:
		return runTerminal(ctx, cfg, gameOpts, opts.maxTicks, hook)
	default:
		return runWindow(ctx, cfg, gameOpts, opts.maxTicks, hook)
	}
}

func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int) error {
	g, err := game.NewGame(cfg, game.NewHeadless(cfg), opts)
	if err != nil {
		return err
	}
	defer g.Close()

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", g.Tick())
			return nil
		default:
		}

		g.Update()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
}

func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int, hook func(telemetry.CombatRecord)) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	f := terminal.New(cfg, screen)
	g, err := game.NewGame(cfg, f, opts)
	if err != nil {
		return err
	}
	defer g.Close()
	g.OnCombat(hook)

	return f.Run(ctx, g, maxTicks)
}

func runWindow(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int, hook func(telemetry.CombatRecord)) error {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Dinos")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w := renderer.NewWindow(cfg)
	if err := w.Load(); err != nil {
		return err
	}
	defer w.Unload()

	g, err := game.NewGame(cfg, w, opts)
	if err != nil {
		return err
	}
	defer g.Close()
	g.OnCombat(hook)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}

		w.HandleInput(g)
		g.Update()
		w.Draw(g, float64(rl.GetFrameTime()))

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	return nil
}
