package chart

// Entry represents a single point plottable on a two dimensional chart.
type Entry struct {
	x    float64
	y    float64
	icon Icon
	data any
}

// Ensure Entry satisfies the Point interface.
var _ Point = (*Entry)(nil)

// NewEntry initializes a new entry at the provided coordinates.
func NewEntry(x float64, y float64) *Entry {
	return &Entry{x: x, y: y}
}

// NewEntryWithData initializes a new entry carrying the provided payload.
func NewEntryWithData(x float64, y float64, data any) *Entry {
	return &Entry{x: x, y: y, data: data}
}

// NewEntryWithIcon initializes a new entry carrying the provided icon.
func NewEntryWithIcon(x float64, y float64, icon Icon) *Entry {
	return &Entry{x: x, y: y, icon: icon}
}

// NewEntryWithIconAndData initializes a new entry carrying both an icon and a payload.
func NewEntryWithIconAndData(x float64, y float64, icon Icon, data any) *Entry {
	return &Entry{x: x, y: y, icon: icon, data: data}
}

// X returns the position of the entry on the horizontal axis.
func (e *Entry) X() float64 {
	return e.x
}

// SetX sets the position of the entry on the horizontal axis.
func (e *Entry) SetX(x float64) {
	e.x = x
}

// Y returns the position of the entry on the vertical axis.
func (e *Entry) Y() float64 {
	return e.y
}

// SetY sets the position of the entry on the vertical axis.
func (e *Entry) SetY(y float64) {
	e.y = y
}

// Icon returns the icon of the entry, nil if none was set.
func (e *Entry) Icon() Icon {
	return e.icon
}

// SetIcon sets the icon of the entry. A nil icon clears it.
func (e *Entry) SetIcon(icon Icon) {
	e.icon = icon
}

// HasIcon checks whether the entry carries an icon.
func (e *Entry) HasIcon() bool {
	return e.icon != nil
}

// Data returns the payload of the entry, nil if none was set.
//
// The payload is never interpreted or copied by the entry, callers get back the exact
// value they provided.
func (e *Entry) Data() any {
	return e.data
}

// SetData sets the payload of the entry. A nil payload clears it.
func (e *Entry) SetData(data any) {
	e.data = data
}

// HasData checks whether the entry carries a payload.
func (e *Entry) HasData() bool {
	return e.data != nil
}
