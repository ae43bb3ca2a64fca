package shared

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the format layout for parsing dates.
	DateLayout = "2006-01-02 15:04:05"
	// NewYorkLocation is the timezone market data dates are reported in.
	NewYorkLocation = "America/New_York"
)

// Timeframe represents the market data time period.
type Timeframe int

const (
	OneHour Timeframe = iota
	FiveMinute
	OneMinute
)

// String stringifies the provided timeframe.
func (t Timeframe) String() string {
	switch t {
	case OneHour:
		return "1H"
	case FiveMinute:
		return "5m"
	case OneMinute:
		return "1m"
	default:
		return "unknown"
	}
}

// Duration returns the time period covered by a candlestick of the provided timeframe.
func (t Timeframe) Duration() (time.Duration, error) {
	switch t {
	case OneHour:
		return time.Hour, nil
	case FiveMinute:
		return time.Minute * 5, nil
	case OneMinute:
		return time.Minute, nil
	default:
		return 0, fmt.Errorf("unknown timeframe provided: %s", t.String())
	}
}

// ParseTimeframe parses a timeframe from its string form.
func ParseTimeframe(s string) (Timeframe, error) {
	switch s {
	case "1H":
		return OneHour, nil
	case "5m":
		return FiveMinute, nil
	case "1m":
		return OneMinute, nil
	default:
		return 0, fmt.Errorf("unknown timeframe provided: %s", s)
	}
}

// NewYorkTime returns the current time in new york (EST/EDT adjusted automatically).
func NewYorkTime() (time.Time, *time.Location, error) {
	loc, err := time.LoadLocation(NewYorkLocation)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("loading new york timezone: %w", err)
	}

	now := time.Now().In(loc)
	return now, loc, nil
}
