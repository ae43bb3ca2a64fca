package chart

import (
	"fmt"
	"math"
)

// CandleEntry represents one candlestick on a candle chart: its open and close body, the
// shadows reaching the period's high and low, and the corner radii of the body.
//
// The vertical position of a candle entry is the midpoint of its shadows, fixed when the
// entry is created. Updating the high or low afterwards does not move it.
type CandleEntry struct {
	point      Entry
	shadowHigh float64
	shadowLow  float64
	open       float64
	close      float64
	corners    Corners
}

// Ensure CandleEntry satisfies the Point interface.
var _ Point = (*CandleEntry)(nil)

// CandleOption configures optional candle entry values.
type CandleOption func(*CandleEntry)

// WithIcon sets the icon of a candle entry.
func WithIcon(icon Icon) CandleOption {
	return func(c *CandleEntry) {
		c.point.icon = icon
	}
}

// WithData sets the payload of a candle entry.
func WithData(data any) CandleOption {
	return func(c *CandleEntry) {
		c.point.data = data
	}
}

// WithCorners sets the corner radii of a candle entry. The provided set is stored as is.
func WithCorners(corners Corners) CandleOption {
	return func(c *CandleEntry) {
		c.corners = corners
	}
}

// NewCandleEntry initializes a new candle entry. Inputs are not validated, inverted
// shadows or non-finite values are stored as provided.
func NewCandleEntry(x float64, shadowHigh float64, shadowLow float64, open float64, close float64, opts ...CandleOption) *CandleEntry {
	c := &CandleEntry{
		point:      Entry{x: x, y: (shadowHigh + shadowLow) / 2},
		shadowHigh: shadowHigh,
		shadowLow:  shadowLow,
		open:       open,
		close:      close,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.corners == nil {
		c.corners = SquareCorners()
	}

	return c
}

// NewValidatedCandleEntry initializes a new candle entry, rejecting corner radii sets that
// do not hold exactly CornerValues values.
func NewValidatedCandleEntry(x float64, shadowHigh float64, shadowLow float64, open float64, close float64, opts ...CandleOption) (*CandleEntry, error) {
	c := NewCandleEntry(x, shadowHigh, shadowLow, open, close, opts...)
	err := c.corners.Validate()
	if err != nil {
		return nil, fmt.Errorf("creating candle entry at x=%v: %w", x, err)
	}

	return c, nil
}

// X returns the position of the candle on the horizontal axis.
func (c *CandleEntry) X() float64 {
	return c.point.X()
}

// SetX sets the position of the candle on the horizontal axis.
func (c *CandleEntry) SetX(x float64) {
	c.point.SetX(x)
}

// Y returns the center of the candle, the midpoint between its shadow high and low as
// computed at creation.
func (c *CandleEntry) Y() float64 {
	return c.point.Y()
}

// Icon returns the icon of the candle, nil if none was set.
func (c *CandleEntry) Icon() Icon {
	return c.point.Icon()
}

// SetIcon sets the icon of the candle.
func (c *CandleEntry) SetIcon(icon Icon) {
	c.point.SetIcon(icon)
}

// HasIcon checks whether the candle carries an icon.
func (c *CandleEntry) HasIcon() bool {
	return c.point.HasIcon()
}

// Data returns the payload of the candle, nil if none was set.
func (c *CandleEntry) Data() any {
	return c.point.Data()
}

// SetData sets the payload of the candle.
func (c *CandleEntry) SetData(data any) {
	c.point.SetData(data)
}

// HasData checks whether the candle carries a payload.
func (c *CandleEntry) HasData() bool {
	return c.point.HasData()
}

// ShadowRange returns the distance between the shadow high and the shadow low.
func (c *CandleEntry) ShadowRange() float64 {
	return math.Abs(c.shadowHigh - c.shadowLow)
}

// BodyRange returns the size of the candle body, the distance between open and close.
func (c *CandleEntry) BodyRange() float64 {
	return math.Abs(c.open - c.close)
}

// High returns the highest value of the upper shadow.
func (c *CandleEntry) High() float64 {
	return c.shadowHigh
}

// SetHigh sets the highest value of the upper shadow.
func (c *CandleEntry) SetHigh(high float64) {
	c.shadowHigh = high
}

// Low returns the lowest value of the lower shadow.
func (c *CandleEntry) Low() float64 {
	return c.shadowLow
}

// SetLow sets the lowest value of the lower shadow.
func (c *CandleEntry) SetLow(low float64) {
	c.shadowLow = low
}

// Open returns the open value of the body.
func (c *CandleEntry) Open() float64 {
	return c.open
}

// SetOpen sets the open value of the body.
func (c *CandleEntry) SetOpen(open float64) {
	c.open = open
}

// Close returns the close value of the body.
func (c *CandleEntry) Close() float64 {
	return c.close
}

// SetClose sets the close value of the body.
func (c *CandleEntry) SetClose(close float64) {
	c.close = close
}

// Corners returns the corner radii of the body.
func (c *CandleEntry) Corners() Corners {
	return c.corners
}

// SetCorners sets the corner radii of the body. The provided set is stored as is.
func (c *CandleEntry) SetCorners(corners Corners) {
	c.corners = corners
}

// Copy returns a new candle entry holding the current values of the receiver.
//
// The corner radii are duplicated, the icon and payload handles are shared with the
// receiver. The copy's center is recomputed from the current shadows.
func (c *CandleEntry) Copy() *CandleEntry {
	return NewCandleEntry(c.X(), c.shadowHigh, c.shadowLow, c.open, c.close,
		WithIcon(c.point.icon), WithData(c.point.data), WithCorners(c.corners.Clone()))
}
