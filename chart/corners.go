package chart

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// CornerValues is the number of radii values describing the corners of a candle body.
	CornerValues = 8
)

// ErrInvalidCorners is returned when a corner radii set does not hold exactly
// CornerValues values.
var ErrInvalidCorners = errors.New("invalid corner radii")

// Corner represents a corner of a candle body.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// String stringifies the provided corner.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "unknown"
	}
}

// Corners represents the pixel radii used when rounding a candle body, ordered as
// [topLeftX, topLeftY, topRightX, topRightY, bottomRightX, bottomRightY, bottomLeftX, bottomLeftY].
type Corners []float64

// SquareCorners returns a corner set with no rounding.
func SquareCorners() Corners {
	return make(Corners, CornerValues)
}

// UniformCorners returns a corner set rounding every corner by the provided radius.
func UniformCorners(radius float64) Corners {
	corners := make(Corners, CornerValues)
	for idx := range corners {
		corners[idx] = radius
	}

	return corners
}

// NewCorners initializes a corner set from per-corner radii.
func NewCorners(topLeftX, topLeftY, topRightX, topRightY, bottomRightX, bottomRightY, bottomLeftX, bottomLeftY float64) Corners {
	return Corners{
		topLeftX, topLeftY,
		topRightX, topRightY,
		bottomRightX, bottomRightY,
		bottomLeftX, bottomLeftY,
	}
}

// Validate asserts the corner set holds exactly CornerValues radii.
func (c Corners) Validate() error {
	if len(c) != CornerValues {
		return fmt.Errorf("%w: expected %d values, got %d", ErrInvalidCorners, CornerValues, len(c))
	}

	return nil
}

// Radius returns the horizontal and vertical radii of the provided corner. Radii missing
// from a malformed set are reported as zero.
func (c Corners) Radius(corner Corner) (float64, float64) {
	idx := int(corner) * 2
	if corner < TopLeft || idx+1 >= len(c) {
		return 0, 0
	}

	return c[idx], c[idx+1]
}

// Clone returns a copy of the corner set that shares no memory with the original.
func (c Corners) Clone() Corners {
	return slices.Clone(c)
}
