package testing

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/carousel"
)

func TestNewHarness(t *testing.T) {
	h := NewHarness(t, 5, nil)

	assert.Equal(t, 5, h.Carousel.SlideCount())
	assert.Equal(t, 2*SlideWidth, h.Carousel.Geometry().Width)
	RequireIndex(t, h, 0)
	RequireOffset(t, h, 0)
}

func TestHarness_RoundTrip(t *testing.T) {
	h := NewHarness(t, 5, func(c *carousel.Carousel) {
		c.Transition(carousel.Animation{Duration: 200 * time.Millisecond, Timing: carousel.EaseInOut(2.5)})
	})

	for _, index := range []int{3, 1, 4, 0, 2} {
		task, err := h.Carousel.SetIndex(index)
		require.NoError(t, err)
		require.Equal(t, carousel.TaskCompleted, h.Settle(task, time.Second))
		RequireOffset(t, h, h.OffsetOf(index))
		RequireIndex(t, h, index)
	}
}

func TestHarness_Reported(t *testing.T) {
	h := NewHarness(t, 5, nil)

	_, err := h.Carousel.SetIndex(3)
	require.NoError(t, err)
	assert.Empty(t, h.Reported, "notification waits for a frame")

	h.Frame()
	assert.Equal(t, []int{3}, h.Reported)
}

func TestHarness_Advance(t *testing.T) {
	h := NewHarness(t, 5, nil)

	var fired atomic.Bool
	h.Loop.AfterFunc(100*time.Millisecond, func() { fired.Store(true) })

	h.Advance(99 * time.Millisecond)
	assert.False(t, fired.Load())

	h.Advance(time.Millisecond)
	assert.True(t, fired.Load())
}

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		assert.True(t, WaitFor(t, 100*time.Millisecond, func() bool { return true }))
	})

	t.Run("condition met later", func(t *testing.T) {
		var n atomic.Int32
		assert.True(t, WaitFor(t, time.Second, func() bool { return n.Add(1) >= 3 }))
	})

	t.Run("timeout", func(t *testing.T) {
		assert.False(t, WaitFor(t, 30*time.Millisecond, func() bool { return false }))
	})
}

func TestNewTestReloader(t *testing.T) {
	var applied []carousel.Config
	r, ch := NewTestReloader(t, func(_ context.Context, _, curr carousel.Config) error {
		applied = append(applied, curr)
		return nil
	})

	ch <- []byte("transition:\n  duration_ms: 250\n  timing: ease-out\nautocenter_delay_ms: 300\n")
	require.NoError(t, r.Start(context.Background()))
	assert.Equal(t, carousel.ReloadHealthy, r.State())

	ch <- []byte("transition:\n  timing: bounce\n")
	require.True(t, r.Process(context.Background()))
	assert.Equal(t, carousel.ReloadDegraded, r.State())
	assert.True(t, WaitForReloadState(t, r, carousel.ReloadDegraded, 10*time.Millisecond))

	require.Len(t, applied, 1)
	assert.Equal(t, 250, applied[0].Transition.DurationMS)

	cfg, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 300, cfg.AutocenterDelayMS)
}
