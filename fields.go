package carousel

import "github.com/zoobzio/capitan"

// Field keys for carousel events.
var (
	// KeyIndex is the slide index an event refers to.
	KeyIndex = capitan.NewIntKey("index")

	// KeyPreviousIndex is the last reported index before a change.
	// It is -1 when no index was reported yet.
	KeyPreviousIndex = capitan.NewIntKey("previous_index")

	// KeySlideCount is the number of slides in the geometry snapshot.
	KeySlideCount = capitan.NewIntKey("slide_count")

	// KeyOffset is a scroll offset.
	KeyOffset = capitan.NewFloat64Key("offset")

	// KeyTarget is the target offset of a transition.
	KeyTarget = capitan.NewFloat64Key("target")

	// KeyDuration is the configured transition duration.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyElapsed is the time a transition ran before settling.
	KeyElapsed = capitan.NewDurationKey("elapsed")

	// KeyAutocenterDelay is the configured autocenter quiet period.
	KeyAutocenterDelay = capitan.NewDurationKey("autocenter_delay")

	// KeyState is the current state of a Reloader.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDebounce is the configured reload debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
