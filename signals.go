package carousel

import "github.com/zoobzio/capitan"

// Carousel lifecycle signals.
var (
	// CarouselStarted is emitted when a Carousel subscribes to its host.
	CarouselStarted = capitan.NewSignal(
		"carousel.started",
		"Carousel attached to host",
	)

	// CarouselDestroyed is emitted once when a Carousel is destroyed.
	CarouselDestroyed = capitan.NewSignal(
		"carousel.destroyed",
		"Carousel detached from host",
	)

	// GeometryRebuilt is emitted when the slide geometry is recaptured.
	GeometryRebuilt = capitan.NewSignal(
		"carousel.geometry.rebuilt",
		"Slide geometry recaptured",
	)
)

// Index signals.
var (
	// IndexChanged is emitted when a newly resolved index differs from the
	// last reported one.
	IndexChanged = capitan.NewSignal(
		"carousel.index.changed",
		"Current slide index changed",
	)

	// ResolveFailed is emitted when a background index resolution fails.
	ResolveFailed = capitan.NewSignal(
		"carousel.resolve.failed",
		"Index resolution failed",
	)
)

// Transition signals.
var (
	// TransitionStarted is emitted when a transition toward a slide begins.
	TransitionStarted = capitan.NewSignal(
		"carousel.transition.started",
		"Transition started",
	)

	// TransitionCompleted is emitted when a transition reaches its target.
	TransitionCompleted = capitan.NewSignal(
		"carousel.transition.completed",
		"Transition completed",
	)

	// TransitionCancelled is emitted when a transition is stopped early.
	TransitionCancelled = capitan.NewSignal(
		"carousel.transition.cancelled",
		"Transition cancelled",
	)
)

// Interaction signals.
var (
	// InteractionChanged is emitted when the interaction state transitions.
	InteractionChanged = capitan.NewSignal(
		"carousel.interaction.changed",
		"Interaction state transition",
	)

	// AutocenterScheduled is emitted when the autocenter debounce timer is
	// (re)started.
	AutocenterScheduled = capitan.NewSignal(
		"carousel.autocenter.scheduled",
		"Autocenter debounce started",
	)

	// AutocenterTriggered is emitted when autocenter starts centering a slide.
	AutocenterTriggered = capitan.NewSignal(
		"carousel.autocenter.triggered",
		"Autocenter triggered",
	)
)

// Configuration reload signals.
var (
	// ReloaderStarted is emitted when a Reloader begins watching.
	ReloaderStarted = capitan.NewSignal(
		"carousel.config.started",
		"Config watching started",
	)

	// ReloaderStopped is emitted when a Reloader stops watching.
	ReloaderStopped = capitan.NewSignal(
		"carousel.config.stopped",
		"Config watching stopped",
	)

	// ReloaderStateChanged is emitted when a Reloader transitions between states.
	ReloaderStateChanged = capitan.NewSignal(
		"carousel.config.state.changed",
		"Config reloader state transition",
	)

	// ConfigChangeReceived is emitted when raw data is received from the watcher.
	ConfigChangeReceived = capitan.NewSignal(
		"carousel.config.change.received",
		"Raw config change received",
	)

	// ConfigDecodeFailed is emitted when the codec cannot decode a change.
	ConfigDecodeFailed = capitan.NewSignal(
		"carousel.config.decode.failed",
		"Config decoding failed",
	)

	// ConfigValidationFailed is emitted when a decoded config is invalid.
	ConfigValidationFailed = capitan.NewSignal(
		"carousel.config.validation.failed",
		"Config validation failed",
	)

	// ConfigApplyFailed is emitted when the apply callback fails.
	ConfigApplyFailed = capitan.NewSignal(
		"carousel.config.apply.failed",
		"Config apply failed",
	)

	// ConfigApplied is emitted when a config is applied.
	ConfigApplied = capitan.NewSignal(
		"carousel.config.applied",
		"Config applied",
	)
)
