// Package fixture loads candle entries from YAML fixture files.
package fixture

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/candle/chart"
	"gopkg.in/yaml.v3"
)

// NamedIcon is an icon handle identified by name.
type NamedIcon string

// Ensure NamedIcon implements the chart Icon interface.
var _ chart.Icon = NamedIcon("")

// Name returns the icon name.
func (i NamedIcon) Name() string {
	return string(i)
}

// Candle is the fixture form of a candle entry.
type Candle struct {
	X       float64        `yaml:"x"`
	High    float64        `yaml:"high"`
	Low     float64        `yaml:"low"`
	Open    float64        `yaml:"open"`
	Close   float64        `yaml:"close"`
	Corners []float64      `yaml:"corners,omitempty"`
	Icon    string         `yaml:"icon,omitempty"`
	Data    map[string]any `yaml:"data,omitempty"`
}

// File is the fixture file layout.
type File struct {
	Market  string   `yaml:"market"`
	Candles []Candle `yaml:"candles"`
}

// Entry creates the candle entry described by the fixture candle.
func (c *Candle) Entry() (*chart.CandleEntry, error) {
	var opts []chart.CandleOption
	if c.Corners != nil {
		opts = append(opts, chart.WithCorners(chart.Corners(c.Corners)))
	}
	if c.Icon != "" {
		opts = append(opts, chart.WithIcon(NamedIcon(c.Icon)))
	}
	if c.Data != nil {
		opts = append(opts, chart.WithData(c.Data))
	}

	return chart.NewValidatedCandleEntry(c.X, c.High, c.Low, c.Open, c.Close, opts...)
}

// Parse creates candle entries from fixture data. Every malformed candle is reported.
func Parse(b []byte) (string, []*chart.CandleEntry, error) {
	var file File
	err := yaml.Unmarshal(b, &file)
	if err != nil {
		return "", nil, fmt.Errorf("decoding fixture: %w", err)
	}

	var errs error
	entries := make([]*chart.CandleEntry, 0, len(file.Candles))
	for idx := range file.Candles {
		entry, err := file.Candles[idx].Entry()
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("candle %d %s: %w",
				idx, spew.Sprintf("%+v", file.Candles[idx]), err))
			continue
		}

		entries = append(entries, entry)
	}

	if errs != nil {
		return "", nil, errs
	}

	return file.Market, entries, nil
}

// Load creates candle entries from the fixture file at the provided path.
func Load(path string) (string, []*chart.CandleEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading fixture with path '%s': %w", path, err)
	}

	return Parse(b)
}
