package carousel

// InteractionState reports whether the user is manipulating the scroller.
type InteractionState int32

const (
	// InteractionIdle means no pointer or touch is held on the scroller.
	// Scrolling in this state may schedule an autocenter.
	InteractionIdle InteractionState = iota

	// InteractionManipulating means a pointer is down on the scroller.
	// Autocenter is suppressed until the manipulation ends.
	InteractionManipulating
)

// String returns the string representation of the state.
func (s InteractionState) String() string {
	switch s {
	case InteractionIdle:
		return "idle"
	case InteractionManipulating:
		return "manipulating"
	default:
		return "unknown"
	}
}

// TaskStatus is the lifecycle position of a transition Task.
type TaskStatus int32

const (
	// TaskRunning indicates the transition is still writing the offset.
	TaskRunning TaskStatus = iota

	// TaskCompleted indicates the offset reached the target exactly.
	TaskCompleted

	// TaskCancelled indicates the transition was stopped early. The offset
	// stays wherever the transition left it.
	TaskCancelled
)

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ReloadState represents the current state of a Reloader.
type ReloadState int32

const (
	// ReloadLoading indicates the Reloader has not processed any
	// configuration yet.
	ReloadLoading ReloadState = iota

	// ReloadHealthy indicates the last configuration was applied.
	ReloadHealthy

	// ReloadDegraded indicates the last change failed to decode, validate
	// or apply. The previous configuration remains in effect.
	ReloadDegraded

	// ReloadEmpty indicates no configuration was ever applied. The
	// Reloader keeps watching for a valid one.
	ReloadEmpty
)

// String returns the string representation of the state.
func (s ReloadState) String() string {
	switch s {
	case ReloadLoading:
		return "loading"
	case ReloadHealthy:
		return "healthy"
	case ReloadDegraded:
		return "degraded"
	case ReloadEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
