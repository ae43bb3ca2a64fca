package chart

// Icon represents a drawable resource supplied by the rendering collaborator. Entries only
// hold the handle, the renderer owns its lifecycle.
type Icon interface {
	// Name returns the identifier of the drawable.
	Name() string
}

// Point represents a value plottable on a two dimensional chart. It is the read surface
// renderers consume regardless of the chart type.
type Point interface {
	X() float64
	Y() float64
	Icon() Icon
	Data() any
}
