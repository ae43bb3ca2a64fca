package shared

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// HistoricDataConfig represents the historic data source configuration.
type HistoricDataConfig struct {
	// FilePath is the filepath to the historic market data.
	FilePath string
	// NotifySubscribers relays the provided candlestick to all subscribers.
	NotifySubscribers func(candle Candlestick) error
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *HistoricDataConfig) Validate() error {
	var errs error

	if cfg.FilePath == "" {
		errs = errors.Join(errs, fmt.Errorf("historic data filepath cannot be an empty string"))
	}
	if cfg.NotifySubscribers == nil {
		errs = errors.Join(errs, fmt.Errorf("notify subscribers function cannot be nil"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// HistoricData represents historic market data.
type HistoricData struct {
	cfg        *HistoricDataConfig
	market     string
	candles    []Candlestick
	candlesMtx sync.RWMutex
	timeframes []string
	startTime  time.Time
	endTime    time.Time
}

// loadHistoricData loads the historic data bytes from the provided file path.
func loadHistoricData(filepath string) (*gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading historic data from file with path '%s': %w", filepath, err)
	}

	if !gjson.ValidBytes(readb) {
		return nil, fmt.Errorf("historic data file with path '%s' is not valid json", filepath)
	}

	b := gjson.ParseBytes(readb)

	return &b, nil
}

// compareCandlesticks orders candlesticks by date, lower timeframes first on ties.
func compareCandlesticks(a, b Candlestick) int {
	switch {
	case a.Date.Before(b.Date):
		return -1
	case a.Date.After(b.Date):
		return 1
	}

	// Timeframes are declared from the highest to the lowest period.
	switch {
	case a.Timeframe > b.Timeframe:
		return -1
	case a.Timeframe < b.Timeframe:
		return 1
	default:
		return 0
	}
}

// NewHistoricData initializes a new historic data source.
func NewHistoricData(cfg *HistoricDataConfig) (*HistoricData, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating historic data config: %w", err)
	}

	b, err := loadHistoricData(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading historic data: %w", err)
	}

	market := b.Get("market").String()
	if market == "" {
		return nil, fmt.Errorf("no market specified in historic data")
	}

	historicData := HistoricData{
		market: market,
		cfg:    cfg,
	}

	timeframes := []Timeframe{OneMinute, FiveMinute, OneHour}
	for idx := range timeframes {
		timeframe := timeframes[idx]

		data := b.Get(timeframe.String()).Array()
		if len(data) == 0 {
			continue
		}

		candles, err := ParseCandlesticks(data, market, timeframe)
		if err != nil {
			return nil, fmt.Errorf("parsing candlesticks: %w", err)
		}

		historicData.timeframes = append(historicData.timeframes, timeframe.String())
		historicData.candles = append(historicData.candles, candles...)
	}

	if len(historicData.candles) == 0 {
		return nil, fmt.Errorf("no candlesticks found in historic data for %s", market)
	}

	// Sort the multi timeframe data by the timestamp and timeframe.
	slices.SortStableFunc(historicData.candles, compareCandlesticks)

	historicData.startTime = historicData.candles[0].Date
	historicData.endTime = historicData.candles[len(historicData.candles)-1].Date

	return &historicData, nil
}

// ProcessHistoricalData streams historical data for a market.
func (h *HistoricData) ProcessHistoricalData() error {
	h.candlesMtx.RLock()
	defer h.candlesMtx.RUnlock()

	timeDiffInHours := h.endTime.Sub(h.startTime).Hours()
	tfs := strings.Join(h.timeframes, ",")
	h.cfg.Logger.Info().Msgf("processing historical %s [%s] data covering %.2f hours, from %s, to %s",
		h.market, tfs, timeDiffInHours, h.startTime.Format(time.RFC1123), h.endTime.Format(time.RFC1123))

	for idx := range h.candles {
		// Process historical data synchroniously.
		err := h.cfg.NotifySubscribers(h.candles[idx])
		if err != nil {
			return fmt.Errorf("processing historical data: %w", err)
		}
	}

	return nil
}

// FetchCandlesticks returns the loaded candlesticks of the provided timeframe.
func (h *HistoricData) FetchCandlesticks(timeframe Timeframe) []Candlestick {
	h.candlesMtx.RLock()
	defer h.candlesMtx.RUnlock()

	candles := make([]Candlestick, 0, len(h.candles))
	for idx := range h.candles {
		if h.candles[idx].Timeframe == timeframe {
			candles = append(candles, h.candles[idx])
		}
	}

	return candles
}

// FetchStartTime returns the start time of the loaded historical data.
func (h *HistoricData) FetchStartTime() time.Time {
	return h.startTime
}

// FetchEndTime returns the end time of the loaded historical data.
func (h *HistoricData) FetchEndTime() time.Time {
	return h.endTime
}

// FetchMarket returns the historic data market.
func (h *HistoricData) FetchMarket() string {
	return h.market
}
