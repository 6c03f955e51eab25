package carousel

import (
	"fmt"

	"github.com/zoobzio/capitan"
)

// State returns whether the user is manipulating the scroller.
func (c *Carousel) State() InteractionState {
	return c.interaction
}

// Autocentering reports whether an autocenter transition is running.
func (c *Carousel) Autocentering() bool {
	return c.autocentering
}

// AutocenterPending reports whether the autocenter debounce timer is armed.
func (c *Carousel) AutocenterPending() bool {
	return c.autocenter != nil
}

func (c *Carousel) handleScroll() {
	if c.destroyed {
		return
	}
	c.debounceAutocenter()
	c.notifier.schedule()
}

// handlePointerDown enters manipulation: the user owns the offset, so any
// transition and pending autocenter are dropped.
func (c *Carousel) handlePointerDown() {
	if c.destroyed {
		return
	}
	c.setInteraction(InteractionManipulating)
	c.stopAutocenter()
	c.cancelTransition()
}

// handlePointerUp serves both pointerup and touchend.
func (c *Carousel) handlePointerUp() {
	if c.destroyed {
		return
	}
	c.setInteraction(InteractionIdle)
	c.debounceAutocenter()
}

func (c *Carousel) setInteraction(next InteractionState) {
	prev := c.interaction
	if prev == next {
		return
	}
	c.interaction = next
	capitan.Emit(c.ctx, InteractionChanged,
		KeyOldState.Field(prev.String()),
		KeyNewState.Field(next.String()),
	)
	if c.metrics != nil {
		c.metrics.OnInteractionChange(prev, next)
	}
}

// debounceAutocenter (re)arms the autocenter timer. Scrolling caused by an
// autocenter transition does not rearm it, and nothing arms it while the
// user is manipulating the scroller.
func (c *Carousel) debounceAutocenter() {
	if c.autocenterDelay <= 0 || c.interaction == InteractionManipulating || c.autocentering {
		return
	}

	armed := c.autocenter != nil
	c.stopAutocenter()
	c.autocenter = c.sched.AfterFunc(c.autocenterDelay, c.fireAutocenter)
	if !armed {
		capitan.Emit(c.ctx, AutocenterScheduled,
			KeyAutocenterDelay.Field(c.autocenterDelay),
		)
	}
}

func (c *Carousel) stopAutocenter() {
	if c.autocenter == nil {
		return
	}
	c.autocenter.Stop()
	c.autocenter = nil
}

// fireAutocenter centers the slide nearest to the live offset.
func (c *Carousel) fireAutocenter() {
	c.autocenter = nil
	if c.destroyed || c.interaction == InteractionManipulating {
		return
	}

	index, err := c.resolve()
	if err != nil {
		c.setError(fmt.Errorf("autocenter: %w", err))
		return
	}

	capitan.Emit(c.ctx, AutocenterTriggered,
		KeyIndex.Field(index),
		KeyOffset.Field(c.scroller.Offset()),
	)
	if c.metrics != nil {
		c.metrics.OnAutocenter(index)
	}

	// The previous task must settle before the marker is set, and the
	// marker must be set before an instant jump fires its scroll event.
	c.cancelTransition()
	c.autocentering = true
	task := c.goTo(index)
	task.OnSettle(func(TaskStatus) {
		c.autocentering = false
	})
}
