package carousel

import "time"

// notifier turns scroll events into index change reports.
//
// Scroll events only request a frame; the index is resolved once on that
// frame no matter how many events arrived, and reported only when it
// differs from the last reported one.
type notifier struct {
	sched   Scheduler
	resolve func() (int, error)
	report  func(prev, next int)
	fail    func(error)

	pending  Handle
	last     int
	reported bool
}

func newNotifier(sched Scheduler, resolve func() (int, error), report func(prev, next int), fail func(error)) *notifier {
	return &notifier{
		sched:   sched,
		resolve: resolve,
		report:  report,
		fail:    fail,
		last:    -1,
	}
}

// schedule requests a resolution on the next frame unless one is pending.
func (n *notifier) schedule() {
	if n == nil || n.pending != nil {
		return
	}
	n.pending = n.sched.RequestFrame(n.check)
}

func (n *notifier) check(_ time.Time) {
	n.pending = nil

	index, err := n.resolve()
	if err != nil {
		n.fail(err)
		return
	}
	if n.reported && index == n.last {
		return
	}

	prev := n.last
	n.last = index
	n.reported = true
	n.report(prev, index)
}

// stop drops a pending resolution.
func (n *notifier) stop() {
	if n == nil || n.pending == nil {
		return
	}
	n.pending.Stop()
	n.pending = nil
}

// lastReported returns the last reported index, if any.
func (n *notifier) lastReported() (int, bool) {
	if n == nil {
		return -1, false
	}
	return n.last, n.reported
}
