package carousel

import "sync"

// errorRing keeps the most recent background errors, oldest first.
// A nil ring records nothing.
type errorRing struct {
	mu     sync.RWMutex
	errors []error
	size   int
}

// newErrorRing creates a ring holding up to size errors. Sizes below one
// disable history.
func newErrorRing(size int) *errorRing {
	if size <= 0 {
		return nil
	}
	return &errorRing{
		errors: make([]error, 0, size),
		size:   size,
	}
}

// push records err, evicting the oldest entry when full.
func (r *errorRing) push(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.errors) == r.size {
		copy(r.errors, r.errors[1:])
		r.errors = r.errors[:r.size-1]
	}
	r.errors = append(r.errors, err)
}

// clear drops all recorded errors.
func (r *errorRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.errors)
	r.errors = r.errors[:0]
}

// all returns a copy of the recorded errors, or nil when empty.
func (r *errorRing) all() []error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.errors) == 0 {
		return nil
	}
	return append([]error(nil), r.errors...)
}
