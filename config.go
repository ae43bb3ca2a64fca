package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/dnldd/candle/market"
	"github.com/dnldd/candle/shared"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	defaultTimeframe      = "5m"
	defaultRefreshMinutes = 5
	defaultLogLevel       = "info"
)

// Config is the configuration struct for the service.
type Config struct {
	// Markets represents the tracked markets.
	Markets []string
	// FMPAPIkey is the FMP service API Key.
	FMPAPIKey string
	// Timeframe is the charted timeframe.
	Timeframe string
	// RefreshMinutes is the number of minutes between live market data refreshes.
	RefreshMinutes int
	// HistoricDataFilepath is the filepath to historic data to replay.
	HistoricDataFilepath string
	// FixtureFilepath is the filepath to a candle fixture to chart.
	FixtureFilepath string
	// SeriesSize is the maximum number of entries held per market.
	SeriesSize int
	// CornerRadius is the radius applied to every corner of charted candles.
	CornerRadius float64
	// LogLevel is the minimum logged level.
	LogLevel string

	registeredFlags map[string]bool
}

// applyDefaults fills unset fields with their defaults.
func (cfg *Config) applyDefaults() {
	if cfg.Timeframe == "" {
		cfg.Timeframe = defaultTimeframe
	}
	if cfg.RefreshMinutes == 0 {
		cfg.RefreshMinutes = defaultRefreshMinutes
	}
	if cfg.SeriesSize == 0 {
		cfg.SeriesSize = market.SeriesSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	switch {
	case cfg.HistoricDataFilepath != "" && cfg.FixtureFilepath != "":
		errs = errors.Join(errs, fmt.Errorf("historic data and fixture filepaths are mutually exclusive"))
	case cfg.HistoricDataFilepath == "" && cfg.FixtureFilepath == "":
		if len(cfg.Markets) == 0 {
			errs = errors.Join(errs, fmt.Errorf("no markets provided for charts service"))
		}
		if cfg.FMPAPIKey == "" {
			errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
		}
		if cfg.RefreshMinutes <= 0 {
			errs = errors.Join(errs, fmt.Errorf("refresh minutes must be positive"))
		}
	}

	_, err := shared.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		errs = errors.Join(errs, err)
	}
	_, err = zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		errs = errors.Join(errs, fmt.Errorf("parsing log level: %w", err))
	}
	if cfg.SeriesSize <= 0 {
		errs = errors.Join(errs, fmt.Errorf("series size must be positive"))
	}
	if cfg.CornerRadius < 0 {
		errs = errors.Join(errs, fmt.Errorf("corner radius cannot be negative"))
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Float64:
		var def float64
		if defValue != "" {
			def, _ = strconv.ParseFloat(defValue, 64)
		}
		flag.Float64Var(value.(*float64), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	flags := []struct {
		name  string
		value interface{}
		usage string
	}{
		{"markets", &cfg.Markets, "the tracked markets"},
		{"fmpapikey", &cfg.FMPAPIKey, "the FMP api key"},
		{"timeframe", &cfg.Timeframe, "the charted timeframe (1m, 5m, 1H)"},
		{"refreshminutes", &cfg.RefreshMinutes, "the minutes between live market data refreshes"},
		{"historicdatafilepath", &cfg.HistoricDataFilepath, "the historic data filepath to replay"},
		{"fixturefilepath", &cfg.FixtureFilepath, "the candle fixture filepath to chart"},
		{"seriessize", &cfg.SeriesSize, "the maximum number of entries held per market"},
		{"cornerradius", &cfg.CornerRadius, "the corner radius of charted candles in pixels"},
		{"loglevel", &cfg.LogLevel, "the minimum logged level"},
	}
	for idx := range flags {
		err = cfg.registerFlag(flags[idx].name, flags[idx].value, flags[idx].usage)
		if err != nil {
			return err
		}
	}

	// Parse command-line flags.
	flag.Parse()

	cfg.applyDefaults()

	return cfg.Validate()
}
