// Package main is the entry point for Wave Master.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/samdwyer/wavemaster/internal/dodge"
	"github.com/samdwyer/wavemaster/internal/game"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/store"
	"github.com/samdwyer/wavemaster/internal/telemetry"
	"github.com/samdwyer/wavemaster/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// tcell owns the terminal, so structured logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{SampleRatio: cfg.TraceRate})
		if err != nil {
			// Continue without telemetry - game still works
			logger.Warn("telemetry setup failed, running without traces", "error", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error("telemetry shutdown", "error", err)
				}
			}()
		}
	}

	dir := cfg.DataDir
	if dir == "" {
		if dir, err = store.DefaultDir(); err != nil {
			log.Fatalf("Failed to locate data directory: %v", err)
		}
	}
	st, err := store.OpenFileStore(dir, logger)
	if err != nil {
		log.Fatalf("Failed to open score store: %v", err)
	}

	registry, err := gamedata.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	session := game.NewSession(cfg, registry, st,
		game.WithLogger(logger),
		game.WithTracer(telemetry.Tracer("game")),
	)

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	logger.Info("wavemaster started", "tick_hz", cfg.TickHz, "store", st.Path())
	run(ctx, cfg, session, screen, registry)

	stats := session.Champion().Stats()
	logger.Info("wavemaster exited", "mode", session.Mode(), "gold", stats.Gold, "last_hits", stats.LastHits)
}

// run drives the session until the player exits. Every session call happens
// on this goroutine; terminal events arrive over a channel.
func run(ctx context.Context, cfg game.Config, session *game.Session, screen *ui.Screen, registry *gamedata.Registry) {
	defer screen.Close()

	renderer := ui.NewRenderer(screen, registry, session.Lane(), dodge.DefaultConfig().SpawnDistance)
	renderer.Attach(session.Dispatcher())
	defer renderer.Detach()
	input := ui.NewInput(renderer)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()
	last := time.Now()

	renderer.Render()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			action := input.Translate(ev)
			if action.Exit {
				return
			}
			if action.Command != nil {
				session.Apply(ctx, action.Command)
			}
			renderer.Render()
		case now := <-ticker.C:
			session.Tick(ctx, now.Sub(last))
			last = now
			renderer.Render()
		}
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is
// configured and no endpoint has been set explicitly.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_WAVEMASTER_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	dataset := os.Getenv("HONEYCOMB_WAVEMASTER_DATASET")
	if dataset == "" {
		dataset = "wavemaster"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
