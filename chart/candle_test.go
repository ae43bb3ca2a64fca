package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestNewCandleEntry(t *testing.T) {
	// Ensure a candle entry exposes its values and derived ranges.
	c := NewCandleEntry(5, 110, 90, 100, 105)
	assert.Equal(t, c.X(), 5.0)
	assert.Equal(t, c.Y(), 100.0)
	assert.Equal(t, c.ShadowRange(), 20.0)
	assert.Equal(t, c.BodyRange(), 5.0)
	assert.Equal(t, c.High(), 110.0)
	assert.Equal(t, c.Low(), 90.0)
	assert.Equal(t, c.Open(), 100.0)
	assert.Equal(t, c.Close(), 105.0)

	// Ensure omitted options default to square corners and no handles.
	assert.Equal(t, c.Corners(), Corners{0, 0, 0, 0, 0, 0, 0, 0})
	assert.False(t, c.HasIcon())
	assert.False(t, c.HasData())
	assert.True(t, c.Icon() == nil)
	assert.True(t, c.Data() == nil)

	// Ensure an inverted body has the same body range.
	inverted := NewCandleEntry(5, 110, 90, 105, 100)
	assert.Equal(t, inverted.BodyRange(), 5.0)
}

func TestNewCandleEntryOptions(t *testing.T) {
	icon := &testIcon{name: "flag"}
	payload := &struct{ source string }{source: "fixture"}
	corners := UniformCorners(3)

	tests := []struct {
		name        string
		opts        []CandleOption
		wantIcon    bool
		wantData    bool
		wantCorners Corners
	}{
		{
			name:        "no options",
			wantCorners: SquareCorners(),
		},
		{
			name:        "payload",
			opts:        []CandleOption{WithData(payload)},
			wantData:    true,
			wantCorners: SquareCorners(),
		},
		{
			name:        "icon",
			opts:        []CandleOption{WithIcon(icon)},
			wantIcon:    true,
			wantCorners: SquareCorners(),
		},
		{
			name:        "icon and payload",
			opts:        []CandleOption{WithIcon(icon), WithData(payload)},
			wantIcon:    true,
			wantData:    true,
			wantCorners: SquareCorners(),
		},
		{
			name:        "corners",
			opts:        []CandleOption{WithCorners(corners)},
			wantCorners: corners,
		},
		{
			name:        "everything",
			opts:        []CandleOption{WithCorners(corners), WithData(payload), WithIcon(icon)},
			wantIcon:    true,
			wantData:    true,
			wantCorners: corners,
		},
	}

	for _, test := range tests {
		c := NewCandleEntry(1, 12, 8, 9, 11, test.opts...)
		if c.Y() != 10 {
			t.Errorf("%s: expected center 10, got %v", test.name, c.Y())
		}
		if c.HasIcon() != test.wantIcon {
			t.Errorf("%s: expected icon presence %v, got %v", test.name, test.wantIcon, c.HasIcon())
		}
		if c.HasData() != test.wantData {
			t.Errorf("%s: expected data presence %v, got %v", test.name, test.wantData, c.HasData())
		}
		if test.wantData && c.Data() != any(payload) {
			t.Errorf("%s: expected the provided payload", test.name)
		}
		if !cmp.Equal(c.Corners(), test.wantCorners) {
			t.Errorf("%s: mismatching corners, got %v", test.name, cmp.Diff(test.wantCorners, c.Corners()))
		}
	}
}

func TestCandleEntryRanges(t *testing.T) {
	tests := []struct {
		name      string
		high      float64
		low       float64
		open      float64
		close     float64
		wantShade float64
		wantBody  float64
	}{
		{"bullish", 110, 90, 100, 105, 20, 5},
		{"bearish", 110, 90, 105, 100, 20, 5},
		{"inverted shadows", 90, 110, 100, 105, 20, 5},
		{"flat", 100, 100, 100, 100, 0, 0},
		{"negative values", -5, -15, -12, -7, 10, 5},
		{"fractional", 1.75, 1.25, 1.5, 1.375, 0.5, 0.125},
	}

	for _, test := range tests {
		c := NewCandleEntry(0, test.high, test.low, test.open, test.close)
		swapped := NewCandleEntry(0, test.low, test.high, test.close, test.open)

		if c.ShadowRange() != test.wantShade {
			t.Errorf("%s: expected shadow range %v, got %v", test.name, test.wantShade, c.ShadowRange())
		}
		if c.BodyRange() != test.wantBody {
			t.Errorf("%s: expected body range %v, got %v", test.name, test.wantBody, c.BodyRange())
		}

		// Ensure the ranges do not depend on the order of their bounds.
		if swapped.ShadowRange() != c.ShadowRange() {
			t.Errorf("%s: expected symmetric shadow range, got %v and %v",
				test.name, c.ShadowRange(), swapped.ShadowRange())
		}
		if swapped.BodyRange() != c.BodyRange() {
			t.Errorf("%s: expected symmetric body range, got %v and %v",
				test.name, c.BodyRange(), swapped.BodyRange())
		}

		// Ensure the center is the shadow midpoint.
		if c.Y() != (test.high+test.low)/2 {
			t.Errorf("%s: expected center %v, got %v", test.name, (test.high+test.low)/2, c.Y())
		}
	}
}

func TestCandleEntryMutation(t *testing.T) {
	c := NewCandleEntry(5, 110, 90, 100, 105)

	// Ensure updating the shadows does not move the center.
	c.SetHigh(120)
	assert.Equal(t, c.High(), 120.0)
	assert.Equal(t, c.Y(), 100.0)

	c.SetLow(60)
	assert.Equal(t, c.Low(), 60.0)
	assert.Equal(t, c.Y(), 100.0)

	// Ensure the derived ranges track the current values.
	assert.Equal(t, c.ShadowRange(), 60.0)
	c.SetOpen(80)
	c.SetClose(110)
	assert.Equal(t, c.Open(), 80.0)
	assert.Equal(t, c.Close(), 110.0)
	assert.Equal(t, c.BodyRange(), 30.0)

	// Ensure the position, icon, payload and corners can be replaced.
	c.SetX(6)
	assert.Equal(t, c.X(), 6.0)

	icon := &testIcon{name: "star"}
	c.SetIcon(icon)
	assert.True(t, c.HasIcon())
	assert.Equal(t, c.Icon().Name(), "star")

	c.SetData("note")
	assert.Equal(t, c.Data(), any("note"))

	c.SetCorners(UniformCorners(1.5))
	assert.Equal(t, c.Corners(), UniformCorners(1.5))
}

func TestCandleEntryNonFinite(t *testing.T) {
	// Ensure non-finite values are accepted and propagate through the derived values.
	c := NewCandleEntry(math.NaN(), math.NaN(), 90, 100, math.Inf(1))
	assert.True(t, math.IsNaN(c.X()))
	assert.True(t, math.IsNaN(c.Y()))
	assert.True(t, math.IsNaN(c.ShadowRange()))
	assert.True(t, math.IsInf(c.BodyRange(), 1))

	// Ensure malformed corners are accepted by the default constructor.
	short := NewCandleEntry(0, 2, 1, 1, 2, WithCorners(Corners{1, 2}))
	assert.Equal(t, len(short.Corners()), 2)
}

func TestNewValidatedCandleEntry(t *testing.T) {
	// Ensure well formed corners are accepted.
	c, err := NewValidatedCandleEntry(5, 110, 90, 100, 105, WithCorners(UniformCorners(2)))
	assert.NoError(t, err)
	assert.Equal(t, c.Y(), 100.0)

	// Ensure omitted corners are valid.
	_, err = NewValidatedCandleEntry(5, 110, 90, 100, 105)
	assert.NoError(t, err)

	// Ensure malformed corners are rejected.
	_, err = NewValidatedCandleEntry(5, 110, 90, 100, 105, WithCorners(Corners{1, 2, 3}))
	assert.True(t, errors.Is(err, ErrInvalidCorners))

	// Ensure inverted shadows are not validated.
	_, err = NewValidatedCandleEntry(5, 90, 110, 100, 105)
	assert.NoError(t, err)
}

func TestCandleEntryCopy(t *testing.T) {
	icon := &testIcon{name: "pin"}
	payload := &struct{ id int }{id: 42}
	original := NewCandleEntry(5, 110, 90, 100, 105,
		WithIcon(icon), WithData(payload), WithCorners(NewCorners(1, 1, 2, 2, 3, 3, 4, 4)))

	cp := original.Copy()

	// Ensure the copy is a distinct value holding the same state.
	assert.True(t, cp != original)
	assert.Equal(t, cp.X(), original.X())
	assert.Equal(t, cp.Y(), original.Y())
	assert.Equal(t, cp.High(), original.High())
	assert.Equal(t, cp.Low(), original.Low())
	assert.Equal(t, cp.Open(), original.Open())
	assert.Equal(t, cp.Close(), original.Close())
	assert.Equal(t, cp.Corners(), original.Corners())

	// Ensure the payload and icon handles are shared.
	assert.True(t, cp.Data() == original.Data())
	assert.True(t, cp.Icon() == original.Icon())

	// Ensure mutating the copy leaves the original untouched, and vice versa.
	cp.SetOpen(1)
	cp.SetHigh(500)
	cp.SetX(99)
	assert.Equal(t, original.Open(), 100.0)
	assert.Equal(t, original.High(), 110.0)
	assert.Equal(t, original.X(), 5.0)

	original.SetClose(2)
	assert.Equal(t, cp.Close(), 105.0)

	// Ensure the corners are not aliased.
	cp.Corners()[0] = 50
	assert.Equal(t, original.Corners()[0], 1.0)
}

func TestCandleEntryCopyAfterMutation(t *testing.T) {
	original := NewCandleEntry(5, 110, 90, 100, 105)
	original.SetHigh(130)

	// Ensure a copy centers on the shadows current at the time of the copy.
	cp := original.Copy()
	assert.Equal(t, original.Y(), 100.0)
	assert.Equal(t, cp.Y(), 110.0)
	assert.Equal(t, cp.High(), 130.0)

	// Ensure a copy of an entry without corners gets square corners.
	original.SetCorners(nil)
	assert.Equal(t, original.Copy().Corners(), SquareCorners())
}

func TestCandleEntryAsPoint(t *testing.T) {
	points := []Point{
		NewEntry(1, 2),
		NewCandleEntry(3, 10, 6, 7, 9),
	}

	// Ensure both entry kinds expose their plot position through the point interface.
	assert.Equal(t, points[0].Y(), 2.0)
	assert.Equal(t, points[1].X(), 3.0)
	assert.Equal(t, points[1].Y(), 8.0)
}
