// Package testing provides helpers for driving a carousel on virtual time.
package testing

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/carousel"
	"github.com/zoobzio/clockz"
)

// Harness is a started carousel on an in-memory host, a Loop and a fake
// clock. Slides are SlideWidth wide and the viewport is two slides wide,
// so the index read back after SetIndex(i) settles is i.
type Harness struct {
	Clock    *clockz.FakeClock
	Loop     *carousel.Loop
	Host     *carousel.MemoryHost
	Carousel *carousel.Carousel

	// Reported holds every index passed to OnIndexChange, in order.
	Reported []int
}

// SlideWidth is the width of every slide built by NewHarness.
const SlideWidth = 100.0

// NewHarness builds and starts a carousel with count slides. configure,
// if not nil, runs before Start. The carousel is destroyed on cleanup.
func NewHarness(t *testing.T, count int, configure func(*carousel.Carousel)) *Harness {
	t.Helper()

	h := &Harness{Clock: clockz.NewFakeClock()}
	h.Loop = carousel.NewLoop().Clock(h.Clock)
	h.Host = carousel.NewMemoryHost(2*SlideWidth, carousel.UniformSlides(count, SlideWidth)...)
	h.Carousel = carousel.New(h.Host, h.Host, h.Loop).
		OnIndexChange(func(index int) {
			h.Reported = append(h.Reported, index)
		})
	if configure != nil {
		configure(h.Carousel)
	}
	if err := h.Carousel.Start(context.Background()); err != nil {
		t.Fatalf("failed to start carousel: %v", err)
	}
	t.Cleanup(h.Carousel.Destroy)
	return h
}

// Frame runs one loop tick without moving time.
func (h *Harness) Frame() {
	h.Loop.Tick()
}

// Advance moves virtual time forward by d one frame interval at a time,
// ticking the loop after each step.
func (h *Harness) Advance(d time.Duration) {
	for d > 0 {
		step := min(d, carousel.DefaultFrameInterval)
		h.Clock.Advance(step)
		h.Loop.Tick()
		d -= step
	}
}

// Settle advances frame by frame until task settles or limit elapses, and
// returns the task's final status.
func (h *Harness) Settle(task *carousel.Task, limit time.Duration) carousel.TaskStatus {
	for elapsed := time.Duration(0); task.Status() == carousel.TaskRunning && elapsed < limit; elapsed += carousel.DefaultFrameInterval {
		h.Advance(carousel.DefaultFrameInterval)
	}
	return task.Status()
}

// OffsetOf returns the scroll offset that brings slide index into place.
func (h *Harness) OffsetOf(index int) float64 {
	return h.Carousel.Geometry().Slides[index].Target()
}

// RequireIndex fails the test immediately if the carousel does not resolve
// to the expected index.
func RequireIndex(t *testing.T, h *Harness, expected int) {
	t.Helper()
	got, err := h.Carousel.Index()
	if err != nil {
		t.Fatalf("expected index %d, got error %v", expected, err)
	}
	if got != expected {
		t.Fatalf("expected index %d, got %d", expected, got)
	}
}

// RequireOffset fails the test immediately if the host offset is not
// expected.
func RequireOffset(t *testing.T, h *Harness, expected float64) {
	t.Helper()
	if got := h.Host.Offset(); got != expected {
		t.Fatalf("expected offset %v, got %v", expected, got)
	}
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return condition()
}

// WaitForReloadState waits until the reloader reaches the expected state or
// timeout occurs.
func WaitForReloadState(t *testing.T, r *carousel.Reloader, expected carousel.ReloadState, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return r.State() == expected
	})
}

// NewTestReloader creates a sync-mode Reloader fed by the returned channel.
func NewTestReloader(t *testing.T, apply func(context.Context, carousel.Config, carousel.Config) error) (*carousel.Reloader, chan<- []byte) {
	t.Helper()
	ch := make(chan []byte, 10)
	r := carousel.NewReloader(carousel.NewSyncChannelWatcher(ch), apply).SyncMode()
	return r, ch
}
