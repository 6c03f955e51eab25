/*
Package carousel keeps the scroll offset of a horizontal scroll container
and a discrete slide index in sync.

A Carousel reads the current slide from the scroll geometry, moves to a
slide with a cancellable timed transition, reports index changes at most
once per frame, and can recenter the nearest slide once the user stops
scrolling. The host supplies the scroll container (Scroller), the slide
layout (Slider) and a cooperative frame and timer scheduler (Scheduler).

# Basic Usage

	loop := carousel.NewLoop()
	c := carousel.New(scroller, slider, loop).
	    OnIndexChange(func(i int) { fmt.Println("slide", i) }).
	    Transition(carousel.Animation{
	        Duration: 777 * time.Millisecond,
	        Timing:   carousel.EaseInOut(2.5),
	    }).
	    Autocenter(300 * time.Millisecond)

	if err := c.Start(ctx); err != nil {
	    return err
	}
	defer c.Destroy()

	go loop.Run(ctx)

Everything a Carousel does runs on the goroutine that drives its
Scheduler. Work from other goroutines is handed over with Loop.Post.

# Index

Index resolves the slide whose center is nearest to the probe point,
the scroll offset plus half the viewport width. Ties go to the earlier
slide.

SetIndex cancels the running transition and starts a new one. The returned
Task settles as completed when the offset reaches the slide, or as
cancelled when superseded, destroyed or interrupted by the user. A
cancelled transition leaves the offset where it stopped.

# Interaction

A pointerdown hands the offset to the user: the transition is cancelled
and autocenter is suspended until pointerup or touchend. While idle, each
scroll event restarts the autocenter timer, so autocenter fires only after
scrolling has been quiet for the configured delay. Scrolling caused by the
autocenter transition itself does not restart it.

# Configuration

Config is the file form of the transition and autocenter settings. A
Reloader watches a source such as a FileWatcher, rejects changes that fail
to decode or validate, and hands valid ones to a callback that usually ends
in Carousel.Apply.

# Observability

Lifecycle, index, transition, interaction and reload events are emitted as
capitan signals (see signals.go and fields.go). A MetricsProvider receives
the same events as direct callbacks.

# Testing

MemoryHost is an in-memory Scroller and Slider. Combined with a Loop on a
clockz.FakeClock, tests step frames and timers deterministically. The
testing subpackage wraps this setup in a Harness.
*/
package carousel
