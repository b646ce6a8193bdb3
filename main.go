package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/wormlab/nematode/config"
	"github.com/wormlab/nematode/render"
	"github.com/wormlab/nematode/server"
	"github.com/wormlab/nematode/sim"
	"github.com/wormlab/nematode/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	timeSteps := flag.Int("time_steps", -1, "Number of simulation ticks (-1 = use config)")
	gridSizeX := flag.Int("grid_size_x", 0, "Grid width in cells (0 = use config)")
	gridSizeY := flag.Int("grid_size_y", 0, "Grid height in cells (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	out := flag.String("out", "", "GIF output path (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV track and config snapshot")
	fieldVariant := flag.String("field", "", "Field variant: gradient, repellent or zero (empty = use config)")
	danger := flag.Int("danger", -1, "Number of decorative danger cells (-1 = use config)")
	serve := flag.String("serve", "", "Live view listen address, e.g. :8080 (empty = disabled)")
	headless := flag.Bool("headless", false, "Skip rendering, track positions only")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *timeSteps >= 0 {
		cfg.Run.TimeSteps = *timeSteps
	}
	if *gridSizeX > 0 {
		cfg.Grid.Width = *gridSizeX
	}
	if *gridSizeY > 0 {
		cfg.Grid.Height = *gridSizeY
	}
	if *out != "" {
		cfg.Run.Output = *out
	}
	if *fieldVariant != "" {
		cfg.Field.Variant = *fieldVariant
	}
	if *danger >= 0 {
		cfg.Danger.Count = *danger
	}
	if *serve != "" {
		cfg.Server.Addr = *serve
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Run.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Output manager for CSV track and config snapshot
	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to initialize output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	opts := sim.Options{
		Seed:   rngSeed,
		Output: cfg.Run.Output,
		FPS:    cfg.Run.FPS,
	}
	if !*headless {
		opts.Renderer = render.NewRenderer(cfg.Render.CellSize)
	}

	var collector *telemetry.Collector
	if cfg.Telemetry.Track {
		collector = telemetry.NewCollector()
		opts.Collector = collector
	}

	// Live view hub
	if cfg.Server.Addr != "" {
		hub := server.NewHub(map[string]interface{}{
			"type": "config",
			"w":    cfg.Grid.Width,
			"h":    cfg.Grid.Height,
		})
		opts.OnTick = func(ts sim.TickState) {
			hub.Broadcast(ts)
		}
		go func() {
			if err := hub.ListenAndServe(cfg.Server.Addr); err != nil {
				slog.Error("live view server failed", "error", err)
			}
		}()
	}

	s, err := sim.New(cfg, opts)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"grid", cfg.Grid,
		"time_steps", cfg.Run.TimeSteps,
		"field", cfg.Field.Variant,
		"headless", *headless,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := s.Run(ctx); err != nil {
		slog.Error("run failed", "error", err, "tick", s.Tick())
		os.Exit(1)
	}

	if collector != nil {
		if err := om.WriteTrack(collector.Records()); err != nil {
			slog.Error("failed to write track", "error", err)
			os.Exit(1)
		}
		var stats []telemetry.RunStats
		for i := range s.Views() {
			stats = append(stats, collector.Summary(i))
		}
		if err := om.WriteSummary(stats); err != nil {
			slog.Error("failed to write summary", "error", err)
			os.Exit(1)
		}
		slog.Info("run complete",
			"ticks", s.Tick(),
			"frames", len(s.Frames()),
			"mean_concentration", collector.Summary(0).MeanConcentration,
		)
	} else {
		slog.Info("run complete", "ticks", s.Tick(), "frames", len(s.Frames()))
	}
}
