package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/dnldd/bsmonitor/fetch"
	"github.com/dnldd/bsmonitor/service"
	"github.com/rs/zerolog/log"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Error().Msgf("loading config: %v", err)
		os.Exit(1)
	}

	chartCfg, err := cfg.ChartConfig()
	if err != nil {
		log.Error().Msgf("creating chart config: %v", err)
		os.Exit(1)
	}

	sourceLogger := log.With().Str("source", cfg.DataDir).Logger()
	source, err := fetch.NewDirSource(&fetch.DirSourceConfig{
		Dir:      cfg.DataDir,
		Location: chartCfg.Location,
		Logger:   &sourceLogger,
	})
	if err != nil {
		log.Error().Msgf("creating telemetry source: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor, err := service.NewMonitor(&service.MonitorConfig{
		Stations:        cfg.Stations,
		Fetcher:         source,
		Chart:           chartCfg,
		RefreshInterval: time.Duration(cfg.Refresh) * time.Second,
		Location:        chartCfg.Location,
		Output:          os.Stdout,
	})
	if err != nil {
		log.Error().Msgf("creating monitor service: %v", err)
		os.Exit(1)
	}

	go handleTermination(ctx, cancel)

	err = monitor.Run(ctx)
	if err != nil {
		log.Error().Msgf("running monitor service: %v", err)
		os.Exit(1)
	}
}
