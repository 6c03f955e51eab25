package carousel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
)

// Carousel keeps a scroll offset and a discrete slide index in sync.
//
// It reads the current index from the scroll geometry, moves to a slide
// with a cancellable transition, reports index changes at most once per
// frame, and optionally recenters the nearest slide once scrolling has been
// quiet for a while.
//
// A Carousel is single-threaded: every method and every host event must
// run on the goroutine that drives its Scheduler. Configuration methods
// must be called before Start.
type Carousel struct {
	scroller Scroller
	slider   Slider
	sched    Scheduler

	onIndexChange   func(index int)
	transition      *Animation
	autocenterDelay time.Duration
	metrics         MetricsProvider

	ctx         context.Context
	started     bool
	destroyed   bool
	geometry    Geometry
	centers     []float64
	current     *Task
	unsubscribe []func()
	notifier    *notifier

	interaction   InteractionState
	autocenter    Handle
	autocentering bool

	lastError    atomic.Pointer[error]
	errorHistory *errorRing
}

// New creates a Carousel over a host scroller and slider.
//
// Example:
//
//	loop := carousel.NewLoop()
//	c := carousel.New(scroller, slider, loop).
//	    OnIndexChange(func(i int) { fmt.Println("slide", i) }).
//	    Transition(carousel.Animation{
//	        Duration: 777 * time.Millisecond,
//	        Timing:   carousel.EaseInOut(2.5),
//	    }).
//	    Autocenter(300 * time.Millisecond)
//
//	if err := c.Start(ctx); err != nil {
//	    return err
//	}
//	defer c.Destroy()
func New(scroller Scroller, slider Slider, sched Scheduler) *Carousel {
	return &Carousel{
		scroller: scroller,
		slider:   slider,
		sched:    sched,
		ctx:      context.Background(),
	}
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// OnIndexChange sets the callback invoked with each newly observed index.
func (c *Carousel) OnIndexChange(fn func(index int)) *Carousel {
	c.onIndexChange = fn
	return c
}

// Transition sets the animation used by SetIndex and autocenter.
// Default: instant jumps.
func (c *Carousel) Transition(anim Animation) *Carousel {
	c.transition = &anim
	return c
}

// Autocenter enables recentering the nearest slide after scrolling has been
// quiet for delay. A non-positive delay disables it. Default: disabled.
func (c *Carousel) Autocenter(delay time.Duration) *Carousel {
	c.autocenterDelay = max(0, delay)
	return c
}

// Metrics sets a metrics provider for observability integration.
func (c *Carousel) Metrics(provider MetricsProvider) *Carousel {
	c.metrics = provider
	return c
}

// ErrorHistorySize sets the number of recent background errors to retain.
// Use 0 (default) to only retain the most recent error via LastError().
func (c *Carousel) ErrorHistorySize(n int) *Carousel {
	c.errorHistory = newErrorRing(n)
	return c
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start captures the slide geometry and subscribes to the scroller's
// scroll, pointerdown, pointerup and touchend events. ctx is used for
// emitted signals.
func (c *Carousel) Start(ctx context.Context) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true
	c.ctx = ctx
	c.setGeometry(ReadGeometry(c.slider))
	c.notifier = newNotifier(c.sched, c.resolve, c.reportIndex, c.resolveFailed)

	c.unsubscribe = []func(){
		c.scroller.Subscribe(EventScroll, c.handleScroll),
		c.scroller.Subscribe(EventPointerDown, c.handlePointerDown),
		c.scroller.Subscribe(EventPointerUp, c.handlePointerUp),
		c.scroller.Subscribe(EventTouchEnd, c.handlePointerUp),
	}

	var duration time.Duration
	if c.transition != nil {
		duration = c.transition.Duration
	}
	capitan.Emit(c.ctx, CarouselStarted,
		KeySlideCount.Field(c.geometry.Len()),
		KeyDuration.Field(duration),
		KeyAutocenterDelay.Field(c.autocenterDelay),
	)
	return nil
}

// Destroy unsubscribes from the host and cancels any transition, pending
// autocenter and pending index check. Further calls are no-ops.
func (c *Carousel) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil

	c.stopAutocenter()
	c.notifier.stop()
	c.cancelTransition()
	c.autocentering = false

	if c.started {
		capitan.Emit(c.ctx, CarouselDestroyed)
	}
}

// Rebuild recaptures the slide geometry after the host relayouts.
func (c *Carousel) Rebuild() error {
	if err := c.usable(); err != nil {
		return err
	}
	c.setGeometry(ReadGeometry(c.slider))
	capitan.Emit(c.ctx, GeometryRebuilt,
		KeySlideCount.Field(c.geometry.Len()),
	)
	return nil
}

// Apply reconfigures the transition and autocenter delay. Disabling
// autocenter drops a pending autocenter; a running transition keeps its
// original animation.
func (c *Carousel) Apply(cfg Config) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	anim, err := cfg.Animation()
	if err != nil {
		return err
	}
	c.transition = anim
	c.autocenterDelay = cfg.AutocenterDelay()
	if c.autocenterDelay == 0 {
		c.stopAutocenter()
	}
	return nil
}

// -----------------------------------------------------------------------------
// Index
// -----------------------------------------------------------------------------

// Index resolves the slide closest to the current scroll position. It never
// involves a transition.
func (c *Carousel) Index() (int, error) {
	if err := c.usable(); err != nil {
		return -1, err
	}
	return c.resolve()
}

// SetIndex cancels any running transition and starts a new one toward
// index. The returned Task settles when the slide is reached or the
// transition is superseded. An out-of-range index returns ErrInvalidIndex
// and leaves the offset and the running transition untouched.
func (c *Carousel) SetIndex(index int) (*Task, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	if n := c.geometry.Len(); index < 0 || index >= n {
		return nil, invalidIndex(index, n)
	}
	return c.goTo(index), nil
}

// goTo replaces the current transition with one toward index.
func (c *Carousel) goTo(index int) *Task {
	c.cancelTransition()

	slide := c.geometry.Slides[index]
	var duration time.Duration
	if c.transition != nil {
		duration = c.transition.Duration
	}
	capitan.Emit(c.ctx, TransitionStarted,
		KeyIndex.Field(index),
		KeyOffset.Field(c.scroller.Offset()),
		KeyTarget.Field(slide.Target()),
		KeyDuration.Field(duration),
	)

	task := GoToSlide(c.sched, c.scroller, slide, c.transition)
	c.current = task
	task.OnSettle(func(status TaskStatus) {
		c.transitionSettled(task, index, status)
	})
	return task
}

func (c *Carousel) transitionSettled(task *Task, index int, status TaskStatus) {
	if c.current == task {
		c.current = nil
	}

	signal := TransitionCompleted
	if status == TaskCancelled {
		signal = TransitionCancelled
	}
	capitan.Emit(c.ctx, signal,
		KeyIndex.Field(index),
		KeyOffset.Field(c.scroller.Offset()),
		KeyElapsed.Field(task.Elapsed()),
	)
	if c.metrics != nil {
		c.metrics.OnTransitionSettled(status, task.Elapsed())
	}
}

// cancelTransition stops the current transition, if any.
func (c *Carousel) cancelTransition() {
	if c.current == nil {
		return
	}
	task := c.current
	c.current = nil
	task.Cancel()
}

func (c *Carousel) resolve() (int, error) {
	return ResolveIndex(c.geometry.Probe(c.scroller.Offset()), c.centers)
}

func (c *Carousel) reportIndex(prev, next int) {
	capitan.Emit(c.ctx, IndexChanged,
		KeyPreviousIndex.Field(prev),
		KeyIndex.Field(next),
	)
	if c.metrics != nil {
		c.metrics.OnIndexChange(prev, next)
	}
	if c.onIndexChange != nil {
		c.onIndexChange(next)
	}
}

func (c *Carousel) resolveFailed(err error) {
	c.setError(fmt.Errorf("index check: %w", err))
}

func (c *Carousel) setGeometry(g Geometry) {
	c.geometry = g
	c.centers = g.Centers()
}

func (c *Carousel) usable() error {
	if c.destroyed {
		return ErrDestroyed
	}
	if !c.started {
		return ErrNotStarted
	}
	return nil
}

// setError records a background failure.
func (c *Carousel) setError(err error) {
	e := err
	c.lastError.Store(&e)
	c.errorHistory.push(err)
	capitan.Emit(c.ctx, ResolveFailed,
		KeyError.Field(err.Error()),
	)
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Geometry returns the captured slide geometry.
func (c *Carousel) Geometry() Geometry {
	return c.geometry
}

// SlideCount returns the number of slides in the captured geometry.
func (c *Carousel) SlideCount() int {
	return c.geometry.Len()
}

// Current returns the running transition, or nil.
func (c *Carousel) Current() *Task {
	return c.current
}

// LastReportedIndex returns the index last passed to the index change
// callback, and false if none was reported yet.
func (c *Carousel) LastReportedIndex() (int, bool) {
	return c.notifier.lastReported()
}

// Destroyed reports whether Destroy was called.
func (c *Carousel) Destroyed() bool {
	return c.destroyed
}

// LastError returns the last background error, or nil.
func (c *Carousel) LastError() error {
	ptr := c.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent background errors, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (c *Carousel) ErrorHistory() []error {
	return c.errorHistory.all()
}
