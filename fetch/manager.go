package fetch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dnldd/candle/shared"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

const (
	// minSubscriberBuffer is the minimum buffer size for subscribers.
	minSubscriberBuffer = 4
	// defaultLookback is how far back the first refresh of a market reaches.
	defaultLookback = time.Hour * 24
)

// ManagerConfig represents the configuration for the fetch manager.
type ManagerConfig struct {
	// Fetcher represents the market data client.
	Fetcher shared.MarketFetcher
	// Markets represents the tracked markets.
	Markets []string
	// Timeframe is the timeframe of the fetched candlesticks.
	Timeframe shared.Timeframe
	// RefreshInterval is the period between market data refreshes.
	RefreshInterval time.Duration
	// Lookback is how far back the first refresh of a market reaches.
	Lookback time.Duration
	// JobScheduler represents the job scheduler.
	JobScheduler *gocron.Scheduler
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *ManagerConfig) Validate() error {
	var errs error

	if cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("market fetcher cannot be nil"))
	}
	if len(cfg.Markets) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for fetch manager"))
	}
	if cfg.RefreshInterval <= 0 {
		errs = errors.Join(errs, fmt.Errorf("refresh interval must be positive"))
	}
	if cfg.JobScheduler == nil {
		errs = errors.Join(errs, fmt.Errorf("job scheduler cannot be nil"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Manager represents the market data fetch manager. It periodically refreshes the tracked
// markets and relays new candlesticks to its subscribers.
type Manager struct {
	cfg              *ManagerConfig
	lastUpdatedTimes map[string]time.Time
	lastUpdatedMtx   sync.Mutex
	subscribers      []func(candle shared.Candlestick) error
	subscribersMtx   sync.RWMutex
}

// NewManager initializes the fetch manager.
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating fetch manager config: %w", err)
	}

	if cfg.Lookback == 0 {
		cfg.Lookback = defaultLookback
	}

	mgr := &Manager{
		cfg:              cfg,
		lastUpdatedTimes: make(map[string]time.Time),
		subscribers:      make([]func(candle shared.Candlestick) error, 0, minSubscriberBuffer),
	}

	return mgr, nil
}

// Subscribe registers the provided subscriber for market updates.
func (m *Manager) Subscribe(sub func(candle shared.Candlestick) error) {
	m.subscribersMtx.Lock()
	m.subscribers = append(m.subscribers, sub)
	m.subscribersMtx.Unlock()
}

// notifySubscribers notifies subscribers of the new market update.
func (m *Manager) notifySubscribers(candle shared.Candlestick) {
	m.subscribersMtx.RLock()
	defer m.subscribersMtx.RUnlock()

	for k := range m.subscribers {
		err := m.subscribers[k](candle)
		if err != nil {
			m.cfg.Logger.Error().Msgf("notifying subscriber of %s update: %v", candle.Market, err)
		}
	}
}

// LastUpdated returns the date of the latest candlestick relayed for the provided market.
func (m *Manager) LastUpdated(market string) (time.Time, bool) {
	m.lastUpdatedMtx.Lock()
	defer m.lastUpdatedMtx.Unlock()

	last, ok := m.lastUpdatedTimes[market]
	return last, ok
}

// Refresh fetches the latest candlesticks of the provided market and relays the ones newer
// than the last relayed candlestick.
func (m *Manager) Refresh(ctx context.Context, market string) error {
	last, ok := m.LastUpdated(market)
	start := last
	if !ok {
		start = time.Now().Add(-m.cfg.Lookback)
	}

	data, err := m.cfg.Fetcher.FetchIndexIntradayHistorical(ctx, market, m.cfg.Timeframe, start, time.Time{})
	if err != nil {
		return fmt.Errorf("fetching %s market data: %w", market, err)
	}

	candles, err := shared.ParseCandlesticks(data, market, m.cfg.Timeframe)
	if err != nil {
		return fmt.Errorf("parsing candlesticks for %s: %w", market, err)
	}

	// Market data is served newest first, relay it in chronological order.
	slices.SortFunc(candles, func(a, b shared.Candlestick) int {
		return a.Date.Compare(b.Date)
	})

	var relayed int
	for idx := range candles {
		if ok && !candles[idx].Date.After(last) {
			continue
		}

		m.notifySubscribers(candles[idx])
		relayed++
	}

	if relayed == 0 {
		m.cfg.Logger.Debug().Msgf("no new %s candlesticks for %s", m.cfg.Timeframe.String(), market)
		return nil
	}

	m.lastUpdatedMtx.Lock()
	m.lastUpdatedTimes[market] = candles[len(candles)-1].Date
	m.lastUpdatedMtx.Unlock()

	m.cfg.Logger.Info().Msgf("relayed %d %s candlesticks for %s", relayed, m.cfg.Timeframe.String(), market)

	return nil
}

// Run manages the lifecycle processes of the fetch manager.
func (m *Manager) Run(ctx context.Context) error {
	for idx := range m.cfg.Markets {
		market := m.cfg.Markets[idx]

		_, err := m.cfg.JobScheduler.Every(m.cfg.RefreshInterval).Tag(market).SingletonMode().Do(func() {
			err := m.Refresh(ctx, market)
			if err != nil {
				m.cfg.Logger.Error().Err(err).Msgf("refreshing %s", market)
			}
		})
		if err != nil {
			return fmt.Errorf("scheduling %s refresh job: %w", market, err)
		}
	}

	m.cfg.JobScheduler.StartAsync()
	<-ctx.Done()
	m.cfg.JobScheduler.Stop()

	return nil
}
