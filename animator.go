package carousel

import (
	"context"
	"sync/atomic"
	"time"
)

// Animation describes a programmatic transition.
type Animation struct {
	// Duration of the transition. Zero or negative jumps instantly.
	Duration time.Duration

	// Timing maps time progress to movement progress. Nil means linear.
	Timing TimingFunc
}

// Task is a single transition of the scroll offset toward a target.
//
// A Task settles exactly once, either completed (offset equals target) or
// cancelled (offset left where the last frame put it). Done is closed on
// settlement so waiters never hang on a superseded transition.
//
// Cancel, OnSettle and the offset writes run on the scheduler's goroutine.
// Done, Status and Wait may be used from any goroutine.
type Task struct {
	sched    Scheduler
	scroller Scroller
	start    float64
	target   float64
	duration time.Duration
	timing   TimingFunc
	began    time.Time
	frame    Handle

	status    atomic.Int32
	elapsed   atomic.Int64
	done      chan struct{}
	listeners []func(TaskStatus)
}

// GoToSlide starts a transition that brings slide into place.
//
// The target offset is max(0, slide.Offset - slide.Width/2). Without an
// animation, with a non-positive duration, or when the scroller is already
// at the target, the offset is set and the task completes before GoToSlide
// returns, without scheduling any frame. Otherwise the first step runs
// immediately and each following step runs on the next frame.
func GoToSlide(sched Scheduler, scroller Scroller, slide Slide, anim *Animation) *Task {
	return animate(sched, scroller, slide.Target(), anim)
}

func animate(sched Scheduler, scroller Scroller, target float64, anim *Animation) *Task {
	t := &Task{
		sched:    sched,
		scroller: scroller,
		start:    scroller.Offset(),
		target:   target,
		began:    sched.Now(),
		done:     make(chan struct{}),
	}
	t.status.Store(int32(TaskRunning))

	if anim == nil || anim.Duration <= 0 || t.start == t.target {
		if t.start != t.target {
			scroller.SetOffset(t.target)
		}
		t.settle(TaskCompleted)
		return t
	}

	t.duration = anim.Duration
	t.timing = anim.Timing
	t.step(t.began)
	return t
}

// step applies one frame of progress and schedules the next.
func (t *Task) step(now time.Time) {
	if t.Status() != TaskRunning {
		return
	}
	t.frame = nil

	progress := float64(now.Sub(t.began)) / float64(t.duration)
	if progress >= 1 {
		// Exact write removes accumulated floating point drift.
		t.scroller.SetOffset(t.target)
		t.settle(TaskCompleted)
		return
	}

	eased := max(0, progress)
	if t.timing != nil {
		eased = t.timing(eased)
	}
	t.scroller.SetOffset(t.start + (t.target-t.start)*eased)

	// A scroll handler may have cancelled us.
	if t.Status() == TaskRunning {
		t.frame = t.sched.RequestFrame(t.step)
	}
}

// Cancel stops the transition without moving the offset to the target.
// It returns false if the task had already settled.
func (t *Task) Cancel() bool {
	if t.Status() != TaskRunning {
		return false
	}
	if t.frame != nil {
		t.frame.Stop()
		t.frame = nil
	}
	t.settle(TaskCancelled)
	return true
}

func (t *Task) settle(status TaskStatus) {
	t.elapsed.Store(int64(t.sched.Now().Sub(t.began)))
	t.status.Store(int32(status))
	close(t.done)

	listeners := t.listeners
	t.listeners = nil
	for _, fn := range listeners {
		fn(status)
	}
}

// OnSettle registers fn to run when the task settles. If it already
// settled, fn runs immediately.
func (t *Task) OnSettle(fn func(TaskStatus)) {
	if s := t.Status(); s != TaskRunning {
		fn(s)
		return
	}
	t.listeners = append(t.listeners, fn)
}

// Status returns the current task status.
func (t *Task) Status() TaskStatus {
	return TaskStatus(t.status.Load())
}

// Done returns a channel closed when the task settles.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task settles or ctx is done. It must not be called
// from the goroutine driving the scheduler, which would never tick again.
func (t *Task) Wait(ctx context.Context) (TaskStatus, error) {
	select {
	case <-t.done:
		return t.Status(), nil
	case <-ctx.Done():
		return t.Status(), ctx.Err()
	}
}

// Start returns the offset the transition started from.
func (t *Task) Start() float64 {
	return t.start
}

// Target returns the offset the transition moves toward.
func (t *Task) Target() float64 {
	return t.target
}

// Elapsed returns how long the task ran before settling, or zero while it
// is still running.
func (t *Task) Elapsed() time.Duration {
	return time.Duration(t.elapsed.Load())
}
