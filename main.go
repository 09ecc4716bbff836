package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/color-splash/internal/audio"
	"github.com/iburimskiy/color-splash/internal/config"
	"github.com/iburimskiy/color-splash/internal/game"
	"github.com/iburimskiy/color-splash/internal/session"
	"github.com/iburimskiy/color-splash/internal/splash"
	"github.com/iburimskiy/color-splash/internal/telemetry"
	"github.com/iburimskiy/color-splash/internal/term"
)

type options struct {
	configPath string
	renderer   string
	seed       int64
	outputDir  string
	mute       bool
	maxTicks   int
	spawnEvery int
	logLevel   string
	logFile    string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.StringVar(&opts.renderer, "renderer", "ebiten", "Renderer: ebiten, terminal or headless")
	flag.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.StringVar(&opts.outputDir, "output-dir", "", "Directory for CSV telemetry and a config snapshot")
	flag.BoolVar(&opts.mute, "mute", false, "Disable spawn chimes")
	flag.IntVar(&opts.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.IntVar(&opts.spawnEvery, "spawn-every", 20, "Headless: spawn a random splash every N ticks (0 = never)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (terminal renderer logs nowhere otherwise)")
	flag.Parse()

	if err := run(opts); err != nil {
		slog.Error("color-splash failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	closeLog, err := setupLogging(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rec, err := telemetry.Open(opts.outputDir, cfg.Telemetry)
	if err != nil {
		return err
	}
	if err := rec.WriteConfig(cfg); err != nil {
		return errors.Join(err, rec.Close())
	}

	var player *audio.Player
	if cfg.Audio.Enabled && !opts.mute && opts.renderer != "headless" {
		player, err = audio.NewPlayer(cfg.Audio)
		if err != nil {
			// the scene works without sound
			slog.Warn("audio disabled", "error", err)
			player = nil
		}
	}

	world := splash.NewWorld(cfg, float64(cfg.Window.Width), float64(cfg.Window.Height), rand.New(rand.NewSource(seed)))
	s := session.New(world, player, rec)
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("closing session", "error", err)
		}
	}()

	slog.Info("starting color splash",
		"renderer", opts.renderer,
		"seed", seed,
		"max_ticks", opts.maxTicks,
		"output_dir", opts.outputDir,
		"audio", player != nil,
	)

	switch opts.renderer {
	case "ebiten":
		return game.Run(game.New(cfg, s, opts.maxTicks))
	case "terminal":
		return runTerminal(cfg, s, opts.maxTicks)
	case "headless":
		return runHeadless(s, opts.maxTicks, opts.spawnEvery)
	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}
}

func runTerminal(cfg *config.Config, s *session.Session, maxTicks int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return term.Run(ctx, screen, s, cfg, maxTicks)
}

// runHeadless steps the scene without a display, spawning random splashes
// on a fixed cadence. Without maxTicks it runs until interrupted.
func runHeadless(s *session.Session, maxTicks, spawnEvery int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	for maxTicks <= 0 || s.World.Ticks() < uint64(maxTicks) {
		if ctx.Err() != nil {
			slog.Info("interrupted", "tick", s.World.Ticks())
			break
		}
		if spawnEvery > 0 && s.World.Ticks()%uint64(spawnEvery) == 0 {
			s.Random()
		}
		s.Step(1)
	}

	st := s.World.Stats()
	slog.Info("headless run finished",
		"ticks", st.Tick,
		"mode", st.Mode.String(),
		"splashes", st.Count,
		"mean_speed", st.MeanSpeed,
		"elapsed", time.Since(start),
	)
	return nil
}

// setupLogging installs the default slog logger. The terminal renderer owns
// stdout, so it logs only to -log-file.
func setupLogging(opts options) (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case opts.renderer == "terminal":
		w = io.Discard
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return closer, nil
}
