package chart

import (
	"github.com/dnldd/candle/shared"
)

// FromCandlestick creates a candle entry for the provided market candlestick at position x.
// The candlestick is attached as the entry's payload.
func FromCandlestick(x float64, candle *shared.Candlestick, opts ...CandleOption) *CandleEntry {
	opts = append([]CandleOption{WithData(candle)}, opts...)
	return NewCandleEntry(x, candle.High, candle.Low, candle.Open, candle.Close, opts...)
}

// FromCandlesticks creates candle entries for the provided market candlesticks, positioned
// by their index. Each entry gets its own copy of any corner set passed through the options.
func FromCandlesticks(candles []shared.Candlestick, opts ...CandleOption) []*CandleEntry {
	entries := make([]*CandleEntry, 0, len(candles))
	for idx := range candles {
		entry := FromCandlestick(float64(idx), &candles[idx], opts...)
		entry.corners = entry.corners.Clone()
		entries = append(entries, entry)
	}

	return entries
}

// Candlestick returns the market candlestick attached to the provided entry, if any.
func Candlestick(c *CandleEntry) (*shared.Candlestick, bool) {
	candle, ok := c.Data().(*shared.Candlestick)
	return candle, ok && candle != nil
}
