package carousel

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultFrameInterval is the frame period used by Loop.Run.
const DefaultFrameInterval = time.Second / 60

// Handle is a scheduled callback that can be stopped before it runs.
type Handle interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler is the host's cooperative scheduling surface. Every callback
// runs on the goroutine that drives the scheduler, so carousel state needs
// no locking.
type Scheduler interface {
	// Now returns the current time from a monotonic clock.
	Now() time.Time

	// RequestFrame runs fn once, before the next frame is presented.
	RequestFrame(fn func(now time.Time)) Handle

	// AfterFunc runs fn once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Handle
}

// Loop is a frame scheduler driven either manually with Tick or by Run.
//
// Each Tick fires the timers that are due, in deadline order, then the
// frame callbacks requested before the Tick began. Callbacks requested
// while a Tick is running wait for the next one. Time comes from an
// injected clockz.Clock; tests use clockz.NewFakeClock and call Tick after
// each Advance.
type Loop struct {
	clock    clockz.Clock
	interval time.Duration
	posted   chan func()

	mu     sync.Mutex
	seq    uint64
	frames []*scheduled
	timers []*scheduled
}

// scheduled is a pending frame callback or timer.
type scheduled struct {
	loop     *Loop
	seq      uint64
	deadline time.Time
	frame    func(time.Time)
	timer    func()
	done     bool
}

// Stop implements Handle.
func (s *scheduled) Stop() bool {
	s.loop.mu.Lock()
	defer s.loop.mu.Unlock()
	if s.done {
		return false
	}
	s.done = true
	return true
}

// NewLoop creates a Loop on the real clock.
func NewLoop() *Loop {
	return &Loop{
		clock:    clockz.RealClock,
		interval: DefaultFrameInterval,
		posted:   make(chan func(), 64),
	}
}

// Clock sets the time source. Must be called before scheduling anything.
func (l *Loop) Clock(clock clockz.Clock) *Loop {
	l.clock = clock
	return l
}

// Interval sets the frame period used by Run. Default: 1/60s.
func (l *Loop) Interval(d time.Duration) *Loop {
	if d > 0 {
		l.interval = d
	}
	return l
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(fn func(now time.Time)) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	s := &scheduled{loop: l, seq: l.seq, frame: fn}
	l.frames = append(l.frames, s)
	return s
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	s := &scheduled{loop: l, seq: l.seq, deadline: l.clock.Now().Add(d), timer: fn}
	l.timers = append(l.timers, s)
	return s
}

// Pending returns the number of frame callbacks and timers that have not
// run or been stopped.
func (l *Loop) Pending() (frames, timers int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.frames {
		if !s.done {
			frames++
		}
	}
	for _, s := range l.timers {
		if !s.done {
			timers++
		}
	}
	return frames, timers
}

// Tick runs one frame: due timers first, then queued frame callbacks.
func (l *Loop) Tick() {
	now := l.clock.Now()

	l.mu.Lock()
	var due []*scheduled
	kept := l.timers[:0]
	for _, s := range l.timers {
		switch {
		case s.done:
		case !s.deadline.After(now):
			due = append(due, s)
		default:
			kept = append(kept, s)
		}
	}
	clear(l.timers[len(kept):])
	l.timers = kept
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *scheduled) int {
		if c := a.deadline.Compare(b.deadline); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	for _, s := range due {
		if l.claim(s) {
			s.timer()
		}
	}
	for _, s := range frames {
		if l.claim(s) {
			s.frame(now)
		}
	}
}

// claim marks s as run unless an earlier callback in this tick stopped it.
func (l *Loop) claim(s *scheduled) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s.done {
		return false
	}
	s.done = true
	return true
}

// Post queues fn to run on the goroutine executing Run. It blocks until
// the work is queued or ctx is done.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.posted <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run ticks the loop every frame interval and executes posted work until
// ctx is canceled. All callbacks run on the calling goroutine.
func (l *Loop) Run(ctx context.Context) error {
	timer := l.clock.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case fn := <-l.posted:
			fn()

		case <-timer.C():
			l.Tick()
			timer.Reset(l.interval)
		}
	}
}
