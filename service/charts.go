package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/candle/chart"
	"github.com/dnldd/candle/fetch"
	"github.com/dnldd/candle/fixture"
	"github.com/dnldd/candle/market"
	"github.com/dnldd/candle/shared"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// ChartsConfig represents the configuration struct for the charts service.
type ChartsConfig struct {
	// Markets represents the tracked markets.
	Markets []string
	// FMPAPIkey is the FMP service API Key.
	FMPAPIKey string
	// FMPBaseURL overrides the FMP API base url.
	FMPBaseURL string
	// Timeframe is the timeframe of the charted candlesticks.
	Timeframe shared.Timeframe
	// RefreshInterval is the period between live market data refreshes.
	RefreshInterval time.Duration
	// HistoricDataFilepath is the filepath to historic data to replay.
	HistoricDataFilepath string
	// FixtureFilepath is the filepath to a candle fixture to chart.
	FixtureFilepath string
	// SeriesSize is the maximum number of entries held per market.
	SeriesSize int32
	// Corners are the corner radii applied to charted candles.
	Corners chart.Corners
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config sane inputs.
func (cfg *ChartsConfig) Validate() error {
	var errs error

	if cfg.HistoricDataFilepath == "" && cfg.FixtureFilepath == "" {
		if len(cfg.Markets) == 0 {
			errs = errors.Join(errs, fmt.Errorf("no markets provided for charts service"))
		}
		if cfg.FMPAPIKey == "" {
			errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
		}
		if cfg.RefreshInterval <= 0 {
			errs = errors.Join(errs, fmt.Errorf("refresh interval must be positive"))
		}
	}
	if cfg.HistoricDataFilepath != "" && cfg.FixtureFilepath != "" {
		errs = errors.Join(errs, fmt.Errorf("historic data and fixture filepaths are mutually exclusive"))
	}
	if cfg.SeriesSize <= 0 {
		errs = errors.Join(errs, fmt.Errorf("series size must be positive"))
	}
	if cfg.Corners != nil {
		err := cfg.Corners.Validate()
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// Charts represents the candle charting service. It feeds candle entries from a data
// source into per market series.
type Charts struct {
	cfg          *ChartsConfig
	series       map[string]*market.Series
	historicData *shared.HistoricData
	fetchManager *fetch.Manager
	logger       *zerolog.Logger
	wg           sync.WaitGroup
}

// NewCharts initializes a new charts service.
func NewCharts(cfg *ChartsConfig) (*Charts, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating charts config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "charts").Logger()

	c := &Charts{
		cfg:    cfg,
		series: make(map[string]*market.Series),
		logger: &logger,
	}

	switch {
	case cfg.FixtureFilepath != "":
		err = c.loadFixture()
		if err != nil {
			return nil, err
		}

	case cfg.HistoricDataFilepath != "":
		historicDataLogger := logger.With().Str("component", "historicdata").Logger()
		c.historicData, err = shared.NewHistoricData(&shared.HistoricDataConfig{
			FilePath:          cfg.HistoricDataFilepath,
			NotifySubscribers: c.notifySeries,
			Logger:            &historicDataLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating historic data: %w", err)
		}

		_, err = c.addSeries(c.historicData.FetchMarket())
		if err != nil {
			return nil, err
		}

	default:
		for idx := range cfg.Markets {
			_, err = c.addSeries(cfg.Markets[idx])
			if err != nil {
				return nil, err
			}
		}

		fmp := fetch.NewFMPClient(&fetch.FMPConfig{APIKey: cfg.FMPAPIKey, BaseURL: cfg.FMPBaseURL})

		fetchMgrLogger := logger.With().Str("component", "fetchmanager").Logger()
		c.fetchManager, err = fetch.NewManager(&fetch.ManagerConfig{
			Fetcher:         fmp,
			Markets:         cfg.Markets,
			Timeframe:       cfg.Timeframe,
			RefreshInterval: cfg.RefreshInterval,
			JobScheduler:    gocron.NewScheduler(time.UTC),
			Logger:          &fetchMgrLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating fetch manager: %w", err)
		}

		c.fetchManager.Subscribe(c.notifySeries)
	}

	return c, nil
}

// addSeries creates the series charting the provided market.
func (c *Charts) addSeries(mkt string) (*market.Series, error) {
	seriesLogger := c.logger.With().Str("component", "series").Str("market", mkt).Logger()
	series, err := market.NewSeries(&market.SeriesConfig{
		Market:    mkt,
		Timeframe: c.cfg.Timeframe,
		Size:      c.cfg.SeriesSize,
		Corners:   c.cfg.Corners,
		Logger:    &seriesLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s series: %w", mkt, err)
	}

	c.series[mkt] = series

	return series, nil
}

// loadFixture charts the entries of the configured fixture file.
func (c *Charts) loadFixture() error {
	mkt, entries, err := fixture.Load(c.cfg.FixtureFilepath)
	if err != nil {
		return fmt.Errorf("loading fixture: %w", err)
	}

	series, err := c.addSeries(mkt)
	if err != nil {
		return err
	}

	for idx := range entries {
		series.Update(entries[idx])
	}

	return nil
}

// notifySeries relays the provided candlestick to the series of its market.
func (c *Charts) notifySeries(candle shared.Candlestick) error {
	series, ok := c.series[candle.Market]
	if !ok {
		return fmt.Errorf("no series found for market %s", candle.Market)
	}

	return series.NotifyCandlestick(candle)
}

// Series returns the series of the provided market.
func (c *Charts) Series(mkt string) (*market.Series, bool) {
	series, ok := c.series[mkt]
	return series, ok
}

// logSeries logs the entries currently held by every series.
func (c *Charts) logSeries() {
	for mkt, series := range c.series {
		entries := series.Snapshot()
		c.logger.Info().Msgf("%s %s series (%s) holds %d entries",
			mkt, series.Timeframe().String(), series.ID(), len(entries))

		for idx := range entries {
			entry := entries[idx]
			event := c.logger.Info().
				Str("market", mkt).
				Float64("x", entry.X()).
				Float64("y", entry.Y()).
				Float64("high", entry.High()).
				Float64("low", entry.Low()).
				Float64("open", entry.Open()).
				Float64("close", entry.Close()).
				Float64("shadowRange", entry.ShadowRange()).
				Float64("bodyRange", entry.BodyRange()).
				Floats64("corners", entry.Corners())

			candle, ok := chart.Candlestick(entry)
			if ok {
				event = event.Str("sentiment", candle.FetchSentiment().String()).
					Str("kind", candle.FetchKind().String()).
					Time("date", candle.Date)
			}
			if entry.HasIcon() {
				event = event.Str("icon", entry.Icon().Name())
			}

			event.Msg("candle entry")
		}

		trace := c.logger.Trace()
		if trace.Enabled() && len(entries) > 0 {
			trace.Msgf("last %s entry: %s", mkt, spew.Sdump(entries[len(entries)-1]))
		}
	}
}

// Run manages the lifecycle processes of the charts service.
func (c *Charts) Run(ctx context.Context) {
	switch {
	case c.historicData != nil:
		err := c.historicData.ProcessHistoricalData()
		if err != nil {
			c.logger.Error().Err(err).Msg("replaying historic data")
		}

		c.logSeries()
		c.cfg.Cancel()

	case c.fetchManager != nil:
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			err := c.fetchManager.Run(ctx)
			if err != nil {
				c.logger.Error().Err(err).Msg("running fetch manager")
				c.cfg.Cancel()
			}
		}()

		<-ctx.Done()
		c.wg.Wait()
		c.logSeries()

	default:
		c.logSeries()
		c.cfg.Cancel()
	}
}
