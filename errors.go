package carousel

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSlides is returned when an index is resolved against an empty
	// slide set.
	ErrNoSlides = errors.New("no slides")

	// ErrInvalidOffset is returned when an index is resolved from a NaN or
	// infinite scroll position.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidIndex is returned when a requested index falls outside
	// [0, slide count).
	ErrInvalidIndex = errors.New("invalid index")

	// ErrDestroyed is returned by operations invoked after Destroy.
	ErrDestroyed = errors.New("carousel destroyed")

	// ErrNotStarted is returned by operations invoked before Start.
	ErrNotStarted = errors.New("carousel not started")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("carousel already started")
)

// invalidIndex wraps ErrInvalidIndex with the offending index and bound.
func invalidIndex(index, count int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, index, count)
}
