package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/dnldd/candle/chart"
	"github.com/dnldd/candle/service"
	"github.com/dnldd/candle/shared"
	"github.com/rs/zerolog"
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
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Error().Err(err).Msg("loading config")
		return
	}

	// Values are validated by loadConfig.
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	timeframe, _ := shared.ParseTimeframe(cfg.Timeframe)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chartsCfg := service.ChartsConfig{
		Markets:              cfg.Markets,
		FMPAPIKey:            cfg.FMPAPIKey,
		Timeframe:            timeframe,
		RefreshInterval:      time.Minute * time.Duration(cfg.RefreshMinutes),
		HistoricDataFilepath: cfg.HistoricDataFilepath,
		FixtureFilepath:      cfg.FixtureFilepath,
		SeriesSize:           int32(cfg.SeriesSize),
		Corners:              chart.UniformCorners(cfg.CornerRadius),
		Cancel:               cancel,
	}
	charts, err := service.NewCharts(&chartsCfg)
	if err != nil {
		log.Error().Err(err).Msg("creating charts service")
		return
	}

	go handleTermination(ctx, cancel)
	charts.Run(ctx)
}
