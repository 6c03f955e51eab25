package carousel

// MemoryHost is an in-memory Scroller and Slider.
// Useful for tests and headless hosts that compute layout themselves.
//
// Like a browser scroll container it fires EventScroll only when the offset
// actually changes, and it clamps the offset at zero. It does not clamp the
// upper bound. MemoryHost is not safe for concurrent use; drive it from the
// goroutine that ticks the carousel's Scheduler.
type MemoryHost struct {
	offset   float64
	width    float64
	slides   []Slide
	handlers map[Event]map[int]func()
	nextID   int
}

// NewMemoryHost creates a host with the given visible width and slides.
func NewMemoryHost(width float64, slides ...Slide) *MemoryHost {
	h := &MemoryHost{
		width:    width,
		handlers: make(map[Event]map[int]func()),
	}
	h.SetSlides(slides...)
	return h
}

// UniformSlides lays out count adjacent slides of the same width starting
// at offset zero.
func UniformSlides(count int, width float64) []Slide {
	slides := make([]Slide, count)
	for i := range slides {
		slides[i] = Slide{Offset: float64(i) * width, Width: width}
	}
	return slides
}

// Offset implements Scroller.
func (h *MemoryHost) Offset() float64 {
	return h.offset
}

// SetOffset implements Scroller.
func (h *MemoryHost) SetOffset(offset float64) {
	offset = max(0, offset)
	if offset == h.offset {
		return
	}
	h.offset = offset
	h.Dispatch(EventScroll)
}

// Subscribe implements Scroller.
func (h *MemoryHost) Subscribe(event Event, handler func()) func() {
	if handler == nil {
		return func() {}
	}
	if h.handlers[event] == nil {
		h.handlers[event] = make(map[int]func())
	}
	id := h.nextID
	h.nextID++
	h.handlers[event][id] = handler
	return func() {
		delete(h.handlers[event], id)
	}
}

// Slides implements Slider.
func (h *MemoryHost) Slides() []Slide {
	return h.slides
}

// Width implements Slider.
func (h *MemoryHost) Width() float64 {
	return h.width
}

// SetSlides replaces the slide layout. Carousels keep their snapshot until
// they are rebuilt.
func (h *MemoryHost) SetSlides(slides ...Slide) {
	h.slides = append([]Slide(nil), slides...)
}

// SetWidth changes the visible width.
func (h *MemoryHost) SetWidth(width float64) {
	h.width = width
}

// ScrollTo moves the offset as a user scroll would.
func (h *MemoryHost) ScrollTo(offset float64) {
	h.SetOffset(offset)
}

// ScrollBy moves the offset by delta as a user scroll would.
func (h *MemoryHost) ScrollBy(delta float64) {
	h.SetOffset(h.offset + delta)
}

// PointerDown fires EventPointerDown.
func (h *MemoryHost) PointerDown() {
	h.Dispatch(EventPointerDown)
}

// PointerUp fires EventPointerUp.
func (h *MemoryHost) PointerUp() {
	h.Dispatch(EventPointerUp)
}

// TouchEnd fires EventTouchEnd.
func (h *MemoryHost) TouchEnd() {
	h.Dispatch(EventTouchEnd)
}

// Dispatch invokes every handler subscribed to event.
func (h *MemoryHost) Dispatch(event Event) {
	subs := h.handlers[event]
	if len(subs) == 0 {
		return
	}
	// Handlers may unsubscribe while we iterate.
	fns := make([]func(), 0, len(subs))
	for _, fn := range subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

// Subscribers returns the number of handlers registered for event.
func (h *MemoryHost) Subscribers(event Event) int {
	return len(h.handlers[event])
}
