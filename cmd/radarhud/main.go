package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"radarhud/internal/api"
	"radarhud/pkg/assistant"
	"radarhud/pkg/assistant/gemini"
	"radarhud/pkg/camera"
	"radarhud/pkg/config"
	"radarhud/pkg/core"
	"radarhud/pkg/feed"
	"radarhud/pkg/feed/simfeed"
	"radarhud/pkg/feed/wsfeed"
	"radarhud/pkg/indicator"
	"radarhud/pkg/logging"
	"radarhud/pkg/radar"
	"radarhud/pkg/store"
	"radarhud/pkg/track"
	"radarhud/pkg/tracker"
	"radarhud/pkg/version"
	"radarhud/pkg/voice"
	"radarhud/pkg/weather"
)

var (
	configPath = flag.String("config", "configs/radarhud.yaml", "Path to config file")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
)

func main() {
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", *configPath)
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Optional .env for the assistant API key.
	_ = godotenv.Load()

	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("radarhud started", "version", version.Version)

	// State
	tr := tracker.New()
	targetStore := store.New(time.Duration(appCfg.Feed.TargetTTL))
	grid, err := weather.NewGrid(appCfg.Weather.Resolution,
		time.Duration(appCfg.Weather.HalfLife), appCfg.Weather.FloorDBZ)
	if err != nil {
		return fmt.Errorf("failed to create weather grid: %w", err)
	}

	// Projection
	calc, err := indicator.NewCalculator(indicator.EdgeConfig{
		PaddingPx:            appCfg.Display.EdgePaddingPx,
		IndicatorSizePx:      appCfg.Display.IndicatorSizePx,
		MaxDisplayDistanceNM: appCfg.Display.MaxDistanceNM,
		ShowDistanceLabel:    appCfg.Display.ShowDistanceLabel,
		ShowAltitude:         appCfg.Display.ShowAltitude,
	})
	if err != nil {
		return fmt.Errorf("invalid display config: %w", err)
	}
	cam := camera.New(appCfg.Display.ScreenWidth, appCfg.Display.ScreenHeight,
		appCfg.Display.FovYDeg)

	engine := core.NewEngine(thresholds(appCfg), calc, cam, targetStore, grid, tr)

	// History
	recorder, err := track.Open(appCfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to open track db: %w", err)
	}
	defer recorder.Close()

	// Feed
	source, err := initFeed(appCfg, tr)
	if err != nil {
		return err
	}
	defer source.Close()
	if err := source.Start(ctx); err != nil {
		return fmt.Errorf("failed to start feed: %w", err)
	}

	// Assistant
	advisor := initAssistant(appCfg, tr)
	defer advisor.Close()

	// Voice Commands
	registry := voice.NewRegistry()
	if err := registerCommands(registry, engine, advisor, tr); err != nil {
		return fmt.Errorf("failed to register voice commands: %w", err)
	}

	// Scheduler
	frameH := api.NewFrameHandler()
	sched := core.NewScheduler(time.Duration(appCfg.Ticker.FrameLoop), source, engine, frameH)
	sched.AddJob(core.NewEvictionJob(targetStore, tr, 2*time.Second))
	sched.AddJob(core.NewRecordJob(engine, recorder, time.Second))
	sched.AddJob(core.NewPruneJob(recorder, time.Duration(appCfg.DB.RetainFor)))
	go sched.Start(ctx)

	return runServer(ctx, appCfg, engine, frameH, targetStore, recorder, registry, advisor, tr)
}

func thresholds(cfg *config.Config) radar.ThreatThresholds {
	return radar.ThreatThresholds{
		RADistNM:   cfg.Radar.RADistNM,
		RAAltFt:    cfg.Radar.RAAltFt,
		TADistNM:   cfg.Radar.TADistNM,
		TAAltFt:    cfg.Radar.TAAltFt,
		ProxDistNM: cfg.Radar.ProxDistNM,
		ProxAltFt:  cfg.Radar.ProxAltFt,
	}
}

func initFeed(cfg *config.Config, tr *tracker.Tracker) (feed.Source, error) {
	switch cfg.Feed.Provider {
	case "sim":
		slog.Info("Using simulated feed")
		return simfeed.New(simfeed.Config{
			CenterLat:    cfg.Feed.Sim.CenterLat,
			CenterLon:    cfg.Feed.Sim.CenterLon,
			OwnshipAltFt: cfg.Feed.Sim.OwnshipAltFt,
			TrafficCount: cfg.Feed.Sim.TrafficCount,
			RadiusNM:     cfg.Feed.Sim.RadiusNM,
			Period:       time.Duration(cfg.Feed.Sim.Period),
			Interval:     time.Duration(cfg.Feed.Sim.Interval),
			Weather:      cfg.Feed.Sim.Weather,
		}), nil
	case "websocket":
		slog.Info("Using websocket feed", "url", cfg.Feed.URL)
		return wsfeed.New(cfg.Feed.URL,
			time.Duration(cfg.Feed.Backoff.BaseDelay),
			time.Duration(cfg.Feed.Backoff.MaxDelay), tr), nil
	default:
		return nil, fmt.Errorf("unknown feed provider %q", cfg.Feed.Provider)
	}
}

func initAssistant(cfg *config.Config, tr *tracker.Tracker) *assistant.Advisor {
	switch cfg.Assistant.Provider {
	case "gemini":
		client, err := gemini.NewClient(cfg.Assistant, tr)
		if err != nil {
			slog.Warn("Assistant disabled", "error", err)
			return assistant.NewAdvisor(nil)
		}
		if !client.Configured() {
			slog.Info("Assistant disabled: no API key")
		}
		return assistant.NewAdvisor(client)
	case "mock":
		return assistant.NewAdvisor(assistant.NewMockProvider("advisory service running in mock mode"))
	default:
		return assistant.NewAdvisor(nil)
	}
}

func registerCommands(reg *voice.Registry, engine *core.Engine, advisor *assistant.Advisor, tr *tracker.Tracker) error {
	err := reg.Register("status", []string{"radar status", "system status"},
		func(ctx context.Context, transcript string) (string, error) {
			stats := tr.Snapshot()
			_, targets := engine.Picture()
			return fmt.Sprintf("tracking %d targets, %d frames rendered",
				len(targets), stats.FramesRendered), nil
		})
	if err != nil {
		return err
	}

	err = reg.Register("range_up", []string{"range up", "zoom out", "increase range"},
		func(ctx context.Context, transcript string) (string, error) {
			return fmt.Sprintf("range %.0f miles", engine.StepRange(true)), nil
		})
	if err != nil {
		return err
	}

	err = reg.Register("range_down", []string{"range down", "zoom in", "decrease range"},
		func(ctx context.Context, transcript string) (string, error) {
			return fmt.Sprintf("range %.0f miles", engine.StepRange(false)), nil
		})
	if err != nil {
		return err
	}

	err = reg.Register("weather", []string{"toggle weather", "weather on", "weather off"},
		func(ctx context.Context, transcript string) (string, error) {
			lowered := strings.ToLower(transcript)
			switch {
			case strings.Contains(lowered, "off"):
				engine.SetWeatherVisible(false)
			case strings.Contains(lowered, "on"):
				engine.SetWeatherVisible(true)
			default:
				engine.SetWeatherVisible(!engine.WeatherVisible())
			}
			if engine.WeatherVisible() {
				return "weather layer on", nil
			}
			return "weather layer off", nil
		})
	if err != nil {
		return err
	}

	return reg.Register("traffic", []string{"say traffic", "traffic report", "any traffic"},
		func(ctx context.Context, transcript string) (string, error) {
			if !advisor.Enabled() {
				return "", fmt.Errorf("advisory service not available")
			}
			own, targets := engine.Picture()
			return advisor.Describe(ctx, own, targets)
		})
}

func runServer(ctx context.Context, cfg *config.Config, engine *core.Engine, frameH *api.FrameHandler, targetStore *store.TargetStore, recorder *track.Recorder, registry *voice.Registry, advisor *assistant.Advisor, tr *tracker.Tracker) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(cfg.Server.Address,
		frameH,
		api.NewStatusHandler(tr, targetStore, engine, cfg.Feed.Provider),
		api.NewTargetsHandler(engine, recorder),
		api.NewConfigHandler(cfg),
		api.NewCommandHandler(registry, advisor, engine, tr),
		shutdownFunc,
	)
	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
