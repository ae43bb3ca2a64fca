package fixture

import (
	"errors"
	"testing"

	"github.com/dnldd/candle/chart"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestLoad(t *testing.T) {
	// Ensure fixture files can be loaded.
	market, entries, err := Load("../testdata/candles.yaml")
	assert.NoError(t, err)
	assert.Equal(t, market, "^GSPC")
	assert.Equal(t, len(entries), 3)

	first := entries[0]
	assert.Equal(t, first.X(), 5.0)
	assert.Equal(t, first.Y(), 100.0)
	assert.Equal(t, first.ShadowRange(), 20.0)
	assert.Equal(t, first.BodyRange(), 5.0)
	assert.Equal(t, first.Corners(), chart.SquareCorners())
	assert.False(t, first.HasIcon())
	assert.False(t, first.HasData())

	second := entries[1]
	want := chart.NewCorners(2, 2, 2, 2, 0, 0, 0, 0)
	if !cmp.Equal(second.Corners(), want) {
		t.Errorf("mismatching corners, got %v", cmp.Diff(want, second.Corners()))
	}
	assert.True(t, second.HasIcon())
	assert.Equal(t, second.Icon().Name(), "arrow-down")
	assert.Equal(t, second.BodyRange(), 7.0)

	third := entries[2]
	data, ok := third.Data().(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, data["note"], any("inside bar"))

	// Ensure missing files error.
	_, _, err = Load("../testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	// Ensure malformed yaml errors.
	_, _, err := Parse([]byte("candles: [x: 1"))
	assert.Error(t, err)

	// Ensure every malformed corner set is reported.
	malformed := []byte(`
market: ^NDX
candles:
  - {x: 0, high: 2, low: 1, open: 1, close: 2, corners: [1, 1]}
  - {x: 1, high: 2, low: 1, open: 1, close: 2}
  - {x: 2, high: 2, low: 1, open: 1, close: 2, corners: [1, 1, 1, 1, 1, 1, 1, 1, 1]}
`)
	_, entries, err := Parse(malformed)
	assert.True(t, errors.Is(err, chart.ErrInvalidCorners))
	assert.Equal(t, len(entries), 0)

	// Ensure inverted shadows are accepted.
	market, entries, err := Parse([]byte(`
market: ^NDX
candles:
  - {x: 0, high: 1, low: 3, open: 2, close: 2}
`))
	assert.NoError(t, err)
	assert.Equal(t, market, "^NDX")
	assert.Equal(t, entries[0].ShadowRange(), 2.0)
	assert.Equal(t, entries[0].Y(), 2.0)
}
