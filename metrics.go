package carousel

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key carousel events.
// Callbacks run on the scheduler's goroutine and must not block.
type MetricsProvider interface {
	// OnIndexChange is called when a new index is reported.
	// From is -1 for the first report.
	OnIndexChange(from, to int)

	// OnTransitionSettled is called when a transition completes or is
	// cancelled, with the time it ran.
	OnTransitionSettled(status TaskStatus, elapsed time.Duration)

	// OnAutocenter is called when autocenter starts centering index.
	OnAutocenter(index int)

	// OnInteractionChange is called when the interaction state transitions.
	OnInteractionChange(from, to InteractionState)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnIndexChange(_, _ int)                            {}
func (NoOpMetricsProvider) OnTransitionSettled(_ TaskStatus, _ time.Duration) {}
func (NoOpMetricsProvider) OnAutocenter(_ int)                                {}
func (NoOpMetricsProvider) OnInteractionChange(_, _ InteractionState)         {}
