package carousel

// Event identifies a host event the carousel listens to.
type Event int

const (
	// EventScroll fires whenever the scroll offset changes, whether the
	// user or the carousel moved it.
	EventScroll Event = iota

	// EventPointerDown fires when the user starts manipulating the scroller.
	EventPointerDown

	// EventPointerUp fires when a pointer manipulation ends.
	EventPointerUp

	// EventTouchEnd fires when a touch manipulation ends.
	EventTouchEnd
)

// String returns the host event name.
func (e Event) String() string {
	switch e {
	case EventScroll:
		return "scroll"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventTouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// Scroller is the element holding the overflow. Its horizontal offset is
// read and written by the carousel and its events drive index
// notifications and autocenter.
type Scroller interface {
	// Offset returns the current horizontal scroll offset.
	Offset() float64

	// SetOffset moves the scroll offset. Hosts fire EventScroll when the
	// value actually changes.
	SetOffset(offset float64)

	// Subscribe registers handler for event and returns a function that
	// removes it. Calling the returned function more than once is safe.
	Subscribe(event Event, handler func()) (unsubscribe func())
}

// Slider is the parent of the slides.
type Slider interface {
	// Slides returns the layout of every slide in child order.
	Slides() []Slide

	// Width returns the visible width of the slider.
	Width() float64
}
