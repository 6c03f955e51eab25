package carousel

// Slide is the layout box of a single slide along the scroll axis.
type Slide struct {
	Offset float64 `json:"offset" yaml:"offset"`
	Width  float64 `json:"width" yaml:"width"`
}

// Center returns the anchor a scroll position is compared against.
func (s Slide) Center() float64 {
	return s.Offset + s.Width/2
}

// Target returns the scroll offset that brings the slide into place.
// It is never negative.
func (s Slide) Target() float64 {
	return max(0, s.Offset-s.Width/2)
}

// Geometry is a snapshot of the slider layout. It is captured once and
// only refreshed by an explicit rebuild, never mid-animation.
type Geometry struct {
	// Slides are ordered as the slider's children; index i always refers
	// to the same slide.
	Slides []Slide

	// Width is the visible width of the slider. Half of it is added to the
	// scroll offset to obtain the probe point used for index resolution.
	Width float64
}

// Len returns the number of slides.
func (g Geometry) Len() int {
	return len(g.Slides)
}

// Centers returns the slide centers in slide order.
func (g Geometry) Centers() []float64 {
	centers := make([]float64, len(g.Slides))
	for i, s := range g.Slides {
		centers[i] = s.Center()
	}
	return centers
}

// Probe returns the point compared against slide centers for the given
// scroll offset.
func (g Geometry) Probe(offset float64) float64 {
	return offset + g.Width/2
}

// ReadGeometry captures a snapshot of the slider's current layout.
// The returned slides are a copy; later host relayouts do not affect it.
func ReadGeometry(slider Slider) Geometry {
	slides := slider.Slides()
	out := make([]Slide, len(slides))
	copy(out, slides)
	return Geometry{
		Slides: out,
		Width:  slider.Width(),
	}
}
