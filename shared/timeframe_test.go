package shared

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestNewYorkTime(t *testing.T) {
	// Ensure new york locale times can be created.
	now, loc, err := NewYorkTime()
	assert.NoError(t, err)
	assert.Equal(t, now.Location().String(), "America/New_York")
	assert.Equal(t, now.Location().String(), loc.String())
}

func TestTimeframeString(t *testing.T) {
	tests := []struct {
		name      string
		timeframe Timeframe
		want      string
	}{
		{
			"One Hour",
			OneHour,
			"1H",
		},
		{
			"Five Minute",
			FiveMinute,
			"5m",
		},
		{
			"One Minute",
			OneMinute,
			"1m",
		},
		{
			"Unknown",
			Timeframe(999),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.timeframe.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}

func TestParseTimeframe(t *testing.T) {
	// Ensure known timeframes round trip through their string form.
	for _, timeframe := range []Timeframe{OneHour, FiveMinute, OneMinute} {
		parsed, err := ParseTimeframe(timeframe.String())
		assert.NoError(t, err)
		assert.Equal(t, parsed, timeframe)
	}

	// Ensure an unknown timeframe string errors.
	_, err := ParseTimeframe("15m")
	assert.Error(t, err)
}

func TestTimeframeDuration(t *testing.T) {
	duration, err := FiveMinute.Duration()
	assert.NoError(t, err)
	assert.Equal(t, duration, time.Minute*5)

	duration, err = OneHour.Duration()
	assert.NoError(t, err)
	assert.Equal(t, duration, time.Hour)

	duration, err = OneMinute.Duration()
	assert.NoError(t, err)
	assert.Equal(t, duration, time.Minute)

	// Ensure an unknown timeframe errors.
	_, err = Timeframe(999).Duration()
	assert.Error(t, err)
}
