package market

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dnldd/candle/chart"
	"github.com/dnldd/candle/shared"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const (
	// SeriesSize is the default maximum number of entries held by a series.
	SeriesSize = 36
)

// SeriesConfig represents the configuration of a candle series.
type SeriesConfig struct {
	// Market is the market the series tracks.
	Market string
	// Timeframe is the timeframe of the tracked candlesticks.
	Timeframe shared.Timeframe
	// Size is the maximum number of entries held, older entries are overwritten.
	Size int32
	// Corners are the corner radii applied to entries created by the series.
	Corners chart.Corners
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *SeriesConfig) Validate() error {
	var errs error

	if cfg.Market == "" {
		errs = errors.Join(errs, fmt.Errorf("series market cannot be an empty string"))
	}
	if cfg.Size < 0 {
		errs = errors.Join(errs, fmt.Errorf("series size cannot be negative"))
	}
	if cfg.Size == 0 {
		errs = errors.Join(errs, fmt.Errorf("series size cannot be zero"))
	}
	if cfg.Corners != nil {
		err := cfg.Corners.Validate()
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Series represents the candle entries of a market timeframe. It is the single owner of
// its entries and serializes access to them.
type Series struct {
	cfg     *SeriesConfig
	id      string
	data    []*chart.CandleEntry
	dataMtx sync.RWMutex
	start   atomic.Int32
	count   atomic.Int32
	size    atomic.Int32
	next    atomic.Int64
}

// NewSeries initializes a new candle series.
func NewSeries(cfg *SeriesConfig) (*Series, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating series config: %w", err)
	}

	series := &Series{
		cfg:  cfg,
		id:   uuid.New().String(),
		data: make([]*chart.CandleEntry, cfg.Size),
	}

	series.size.Store(cfg.Size)
	return series, nil
}

// ID returns the unique identifier of the series.
func (s *Series) ID() string {
	return s.id
}

// Market returns the market of the series.
func (s *Series) Market() string {
	return s.cfg.Market
}

// Timeframe returns the timeframe of the series.
func (s *Series) Timeframe() shared.Timeframe {
	return s.cfg.Timeframe
}

// Count returns the number of entries currently held.
func (s *Series) Count() int32 {
	return s.count.Load()
}

// Update adds the provided candle entry to the series.
func (s *Series) Update(entry *chart.CandleEntry) {
	s.dataMtx.Lock()
	defer s.dataMtx.Unlock()

	start := s.start.Load()
	count := s.count.Load()
	size := s.size.Load()
	end := (start + count) % size
	s.data[end] = entry

	if count == size {
		// Overwrite the oldest entry when the series is at capacity.
		s.start.Store((start + 1) % size)
	} else {
		s.count.Add(1)
	}
}

// NotifyCandlestick creates a candle entry for the provided candlestick and adds it to the
// series. Entries are positioned by arrival order.
func (s *Series) NotifyCandlestick(candle shared.Candlestick) error {
	if candle.Market != s.cfg.Market {
		return fmt.Errorf("unexpected market %s for %s series", candle.Market, s.cfg.Market)
	}
	if candle.Timeframe != s.cfg.Timeframe {
		// Candlesticks of other timeframes belong to other series.
		return nil
	}

	var opts []chart.CandleOption
	if s.cfg.Corners != nil {
		opts = append(opts, chart.WithCorners(s.cfg.Corners.Clone()))
	}

	x := float64(s.next.Inc() - 1)
	entry := chart.FromCandlestick(x, &candle, opts...)
	s.Update(entry)

	s.cfg.Logger.Debug().Msgf("%s %s series (%s) added entry at x=%.0f, center %.2f",
		s.cfg.Market, s.cfg.Timeframe.String(), s.id, x, entry.Y())

	return nil
}

// Last returns the last added entry of the series.
func (s *Series) Last() *chart.CandleEntry {
	s.dataMtx.RLock()
	defer s.dataMtx.RUnlock()

	start := s.start.Load()
	count := s.count.Load()
	size := s.size.Load()
	if count == 0 {
		return nil
	}

	end := (start + count - 1) % size
	return s.data[end]
}

// LastN fetches the last n number of entries from the series, oldest first.
func (s *Series) LastN(n int32) []*chart.CandleEntry {
	s.dataMtx.RLock()
	defer s.dataMtx.RUnlock()

	if n <= 0 {
		return nil
	}

	start := s.start.Load()
	count := s.count.Load()
	size := s.size.Load()

	// Clamp the number of elements expected if it is greater than the series count.
	if n > count {
		n = count
	}

	set := make([]*chart.CandleEntry, n)
	start = (start + count - n + size) % size

	for i := range n {
		idx := (start + i) % size
		set[i] = s.data[idx]
	}

	return set
}

// Snapshot returns copies of all held entries, oldest first. The copies can be read or
// mutated without coordinating with the series.
func (s *Series) Snapshot() []*chart.CandleEntry {
	entries := s.LastN(s.count.Load())
	copies := make([]*chart.CandleEntry, 0, len(entries))
	for idx := range entries {
		copies = append(copies, entries[idx].Copy())
	}

	return copies
}
