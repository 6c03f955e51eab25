package carousel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

const (
	validYAML   = "transition:\n  duration_ms: 500\n  timing: linear\nautocenter_delay_ms: 200\n"
	invalidYAML = "transition:\n  duration_ms: 500\n  timing: bounce\n"
)

// errWatcher fails to start.
type errWatcher struct{ err error }

func (w errWatcher) Watch(context.Context) (<-chan []byte, error) {
	return nil, w.err
}

func TestReloader_SyncMode(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 2)
	ch <- []byte(validYAML)

	var applied Config
	r := NewReloader(NewSyncChannelWatcher(ch), func(_ context.Context, _, curr Config) error {
		applied = curr
		return nil
	}).SyncMode()

	if r.State() != ReloadLoading {
		t.Errorf("expected loading before start, got %s", r.State())
	}

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if applied.Transition.DurationMS != 500 || applied.AutocenterDelayMS != 200 {
		t.Errorf("unexpected applied config %+v", applied)
	}
	if r.State() != ReloadHealthy {
		t.Errorf("expected healthy, got %s", r.State())
	}
	if cur, ok := r.Current(); !ok || cur != applied {
		t.Errorf("expected current %+v, got %+v (%v)", applied, cur, ok)
	}

	if r.Process(ctx) {
		t.Error("expected Process to report nothing pending")
	}

	ch <- []byte("autocenter_delay_ms: 50\n")
	if !r.Process(ctx) {
		t.Fatal("expected Process to handle pending change")
	}
	if applied.AutocenterDelayMS != 50 {
		t.Errorf("expected delay 50, got %d", applied.AutocenterDelayMS)
	}
}

func TestReloader_PassesPrevious(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 2)
	ch <- []byte("autocenter_delay_ms: 10\n")

	var prevs []int
	r := NewReloader(NewSyncChannelWatcher(ch), func(_ context.Context, prev, _ Config) error {
		prevs = append(prevs, prev.AutocenterDelayMS)
		return nil
	}).SyncMode()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	ch <- []byte("autocenter_delay_ms: 20\n")
	r.Process(ctx)

	if len(prevs) != 2 || prevs[0] != 0 || prevs[1] != 10 {
		t.Errorf("expected previous delays [0 10], got %v", prevs)
	}
}

func TestReloader_InvalidInitialIsEmpty(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 2)
	ch <- []byte(invalidYAML)

	calls := 0
	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		calls++
		return nil
	}).SyncMode().ErrorHistorySize(4)

	if err := r.Start(ctx); err == nil {
		t.Fatal("expected validation error from Start")
	}
	if calls != 0 {
		t.Errorf("expected apply not called, got %d", calls)
	}
	if r.State() != ReloadEmpty {
		t.Errorf("expected empty, got %s", r.State())
	}
	if _, ok := r.Current(); ok {
		t.Error("expected no current config")
	}
	if r.LastError() == nil {
		t.Error("expected last error recorded")
	}

	ch <- []byte(validYAML)
	r.Process(ctx)

	if r.State() != ReloadHealthy {
		t.Errorf("expected recovery to healthy, got %s", r.State())
	}
	if r.LastError() != nil || r.ErrorHistory() != nil {
		t.Error("expected errors cleared after success")
	}
}

func TestReloader_DegradedKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 3)
	ch <- []byte(validYAML)

	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	}).SyncMode().ErrorHistorySize(4)

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch <- []byte(invalidYAML)
	ch <- []byte("transition: [unclosed")
	r.Process(ctx)
	r.Process(ctx)

	if r.State() != ReloadDegraded {
		t.Errorf("expected degraded, got %s", r.State())
	}
	if cur, _ := r.Current(); cur.Transition.Timing != "linear" {
		t.Errorf("expected previous config retained, got %+v", cur)
	}
	if n := len(r.ErrorHistory()); n != 2 {
		t.Errorf("expected 2 errors in history, got %d", n)
	}
}

func TestReloader_ApplyFailure(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	ch <- []byte(validYAML)

	applyErr := errors.New("carousel destroyed")
	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		return applyErr
	}).SyncMode()

	err := r.Start(ctx)
	if !errors.Is(err, applyErr) {
		t.Errorf("expected wrapped apply error, got %v", err)
	}
	if !errors.Is(r.LastError(), applyErr) {
		t.Errorf("expected last error %v, got %v", applyErr, r.LastError())
	}
	if r.State() != ReloadEmpty {
		t.Errorf("expected empty, got %s", r.State())
	}
}

func TestReloader_JSONCodec(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte(`{"transition": {"duration_ms": 0}, "autocenter_delay_ms": 0}`)

	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	}).SyncMode().Codec(JSONCodec{})

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if r.State() != ReloadHealthy {
		t.Errorf("expected healthy, got %s", r.State())
	}
}

func TestReloader_AlreadyStarted(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte(validYAML)

	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	}).SyncMode()

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := r.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestReloader_WatcherError(t *testing.T) {
	watchErr := errors.New("no such file")
	r := NewReloader(errWatcher{watchErr}, func(context.Context, Config, Config) error {
		return nil
	})

	if err := r.Start(context.Background()); !errors.Is(err, watchErr) {
		t.Errorf("expected wrapped watcher error, got %v", err)
	}
}

func TestReloader_ClosedBeforeInitial(t *testing.T) {
	ch := make(chan []byte)
	close(ch)

	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	}).SyncMode()

	if err := r.Start(context.Background()); err == nil {
		t.Error("expected error when watcher closes without a value")
	}
}

func TestReloader_StartupTimeout(t *testing.T) {
	clock := clockz.NewFakeClock()
	ch := make(chan []byte)

	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	}).SyncMode().Clock(clock).StartupTimeout(time.Second)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	clock.Advance(2 * time.Second)
	clock.BlockUntilReady()

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("expected startup timeout error")
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after timeout")
	}
}

func TestReloader_StartContextCanceled(t *testing.T) {
	ch := make(chan []byte)
	r := NewReloader(NewSyncChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	}).SyncMode()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestReloader_ProcessOutsideSyncMode(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte(validYAML)

	r := NewReloader(NewChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if r.Process(ctx) {
		t.Error("expected Process to return false when not in sync mode")
	}
}

func TestReloader_Debounce_CoalescesRapidChanges(t *testing.T) {
	clock := clockz.NewFakeClock()
	ch := make(chan []byte, 10)
	ch <- []byte("autocenter_delay_ms: 1\n")

	var applyCount atomic.Int32
	var lastDelay atomic.Int32

	r := NewReloader(NewChannelWatcher(ch), func(_ context.Context, _, curr Config) error {
		applyCount.Add(1)
		lastDelay.Store(int32(curr.AutocenterDelayMS)) //nolint:gosec // validated to 0-60000
		return nil
	}).Debounce(100 * time.Millisecond).Clock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Initial value applied immediately (no debounce on first)
	if applyCount.Load() != 1 {
		t.Errorf("expected 1 apply after start, got %d", applyCount.Load())
	}

	ch <- []byte("autocenter_delay_ms: 2\n")
	ch <- []byte("autocenter_delay_ms: 3\n")
	ch <- []byte("autocenter_delay_ms: 4\n")

	// Allow goroutine to receive changes
	time.Sleep(10 * time.Millisecond)

	if applyCount.Load() != 1 {
		t.Errorf("expected still 1 apply (debouncing), got %d", applyCount.Load())
	}

	clock.Advance(150 * time.Millisecond)
	clock.BlockUntilReady()

	// Allow goroutine to process timer
	time.Sleep(10 * time.Millisecond)

	if applyCount.Load() != 2 {
		t.Errorf("expected 2 applies after debounce, got %d", applyCount.Load())
	}
	if lastDelay.Load() != 4 {
		t.Errorf("expected last delay 4, got %d", lastDelay.Load())
	}
}

func TestReloader_Debounce_ProcessesPendingOnClose(t *testing.T) {
	clock := clockz.NewFakeClock()
	ch := make(chan []byte, 10)
	ch <- []byte("autocenter_delay_ms: 1\n")

	var applyCount atomic.Int32
	var lastDelay atomic.Int32
	stopped := make(chan ReloadState, 1)

	r := NewReloader(NewChannelWatcher(ch), func(_ context.Context, _, curr Config) error {
		applyCount.Add(1)
		lastDelay.Store(int32(curr.AutocenterDelayMS)) //nolint:gosec // validated to 0-60000
		return nil
	}).Debounce(100 * time.Millisecond).Clock(clock).OnStop(func(s ReloadState) {
		stopped <- s
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch <- []byte("autocenter_delay_ms: 99\n")
	time.Sleep(10 * time.Millisecond)

	// Close channel before debounce fires
	close(ch)

	select {
	case s := <-stopped:
		if s != ReloadHealthy {
			t.Errorf("expected healthy final state, got %s", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for OnStop")
	}

	if applyCount.Load() != 2 {
		t.Errorf("expected 2 applies after close, got %d", applyCount.Load())
	}
	if lastDelay.Load() != 99 {
		t.Errorf("expected last delay 99, got %d", lastDelay.Load())
	}
}

func TestReloader_OnStopAfterCancel(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte(invalidYAML)

	stopped := make(chan ReloadState, 1)
	r := NewReloader(NewChannelWatcher(ch), func(context.Context, Config, Config) error {
		return nil
	}).OnStop(func(s ReloadState) { stopped <- s })

	ctx, cancel := context.WithCancel(context.Background())
	if err := r.Start(ctx); err == nil {
		t.Fatal("expected initial validation error")
	}
	cancel()

	select {
	case s := <-stopped:
		if s != ReloadEmpty {
			t.Errorf("expected empty final state, got %s", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for OnStop")
	}
}
