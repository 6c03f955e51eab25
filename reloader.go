package carousel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce for configuration changes.
const DefaultDebounce = 100 * time.Millisecond

// Reloader watches a configuration source and hands every valid Config to
// an apply function. A change that fails to decode, validate or apply is
// recorded and the previous Config stays in effect.
//
// The apply function runs on the Reloader's goroutine. To reconfigure a
// Carousel, hop onto its scheduler goroutine first, for example with
// Loop.Post:
//
//	r := carousel.NewReloader(carousel.NewFileWatcher("carousel.yaml"),
//	    func(ctx context.Context, _, curr carousel.Config) error {
//	        errc := make(chan error, 1)
//	        if err := loop.Post(ctx, func() { errc <- c.Apply(curr) }); err != nil {
//	            return err
//	        }
//	        return <-errc
//	    },
//	).Codec(carousel.YAMLCodec{})
type Reloader struct {
	watcher        Watcher
	apply          func(ctx context.Context, prev, curr Config) error
	debounce       time.Duration
	startupTimeout time.Duration
	syncMode       bool
	clock          clockz.Clock
	codec          Codec
	onStop         func(ReloadState)

	state        atomic.Int32
	current      atomic.Pointer[Config]
	lastError    atomic.Pointer[error]
	errorHistory *errorRing

	mu      sync.Mutex
	started bool

	// sync mode: changes are pulled by Process
	changes <-chan []byte
}

// NewReloader creates a Reloader reading from watcher.
func NewReloader(watcher Watcher, apply func(ctx context.Context, prev, curr Config) error) *Reloader {
	r := &Reloader{
		watcher:  watcher,
		apply:    apply,
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    YAMLCodec{},
	}
	r.state.Store(int32(ReloadLoading))
	return r
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Debounce sets how long changes are coalesced before processing.
// Default: 100ms. Must be called before Start().
func (r *Reloader) Debounce(d time.Duration) *Reloader {
	r.debounce = d
	return r
}

// SyncMode disables the background goroutine and debouncing; changes are
// processed one at a time with Process. Must be called before Start().
func (r *Reloader) SyncMode() *Reloader {
	r.syncMode = true
	return r
}

// Clock sets the time source for debouncing and the startup timeout.
// Must be called before Start().
func (r *Reloader) Clock(clock clockz.Clock) *Reloader {
	r.clock = clock
	return r
}

// Codec sets the decoder. Default: YAMLCodec. Must be called before Start().
func (r *Reloader) Codec(codec Codec) *Reloader {
	r.codec = codec
	return r
}

// StartupTimeout bounds the wait for the initial value in Start.
// Default: wait indefinitely. Must be called before Start().
func (r *Reloader) StartupTimeout(d time.Duration) *Reloader {
	r.startupTimeout = d
	return r
}

// OnStop sets a callback invoked with the final state when watching stops.
// Must be called before Start().
func (r *Reloader) OnStop(fn func(ReloadState)) *Reloader {
	r.onStop = fn
	return r
}

// ErrorHistorySize sets the number of recent errors to retain.
// Must be called before Start().
func (r *Reloader) ErrorHistorySize(n int) *Reloader {
	r.errorHistory = newErrorRing(n)
	return r
}

// -----------------------------------------------------------------------------
// State
// -----------------------------------------------------------------------------

// State returns the current reload state.
func (r *Reloader) State() ReloadState {
	return ReloadState(r.state.Load())
}

// Current returns the last applied Config and true, or false if none was
// applied yet.
func (r *Reloader) Current() (Config, bool) {
	ptr := r.current.Load()
	if ptr == nil {
		return Config{}, false
	}
	return *ptr, true
}

// LastError returns the error of the last failed change, or nil once a
// change succeeds.
func (r *Reloader) LastError() error {
	ptr := r.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns failures since the last success, oldest first.
func (r *Reloader) ErrorHistory() []error {
	return r.errorHistory.all()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start processes the source's initial value and returns its error, if
// any. Watching continues in the background until ctx is done, even when
// the initial value was rejected. In sync mode no goroutine is started;
// call Process for each later value.
func (r *Reloader) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.mu.Unlock()

	capitan.Emit(ctx, ReloaderStarted,
		KeyDebounce.Field(r.debounce),
	)

	changes, err := r.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	startCtx := ctx
	if r.startupTimeout > 0 {
		var cancel context.CancelFunc
		startCtx, cancel = r.clock.WithTimeout(ctx, r.startupTimeout)
		defer cancel()
	}

	var initialErr error
	select {
	case <-startCtx.Done():
		if r.startupTimeout > 0 && errors.Is(startCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("no initial config within %v", r.startupTimeout)
		}
		return startCtx.Err()
	case raw, ok := <-changes:
		if !ok {
			return errors.New("watcher closed before emitting initial config")
		}
		capitan.Emit(ctx, ConfigChangeReceived)
		initialErr = r.process(ctx, raw)
	}

	if r.syncMode {
		r.changes = changes
		return initialErr
	}

	go r.watch(ctx, changes)
	return initialErr
}

// Process handles the next pending change in sync mode. It returns false
// when nothing is pending, the source is closed, or sync mode is off.
func (r *Reloader) Process(ctx context.Context) bool {
	if !r.syncMode {
		return false
	}

	select {
	case raw, ok := <-r.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, ConfigChangeReceived)
		_ = r.process(ctx, raw) //nolint:errcheck // recorded via fail
		return true
	default:
		return false
	}
}

func (r *Reloader) process(ctx context.Context, raw []byte) error {
	var cfg Config
	if err := r.codec.Unmarshal(raw, &cfg); err != nil {
		r.fail(ctx, err)
		capitan.Emit(ctx, ConfigDecodeFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("decode failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		r.fail(ctx, err)
		capitan.Emit(ctx, ConfigValidationFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("validation failed: %w", err)
	}

	var prev Config
	if ptr := r.current.Load(); ptr != nil {
		prev = *ptr
	}
	if err := r.apply(ctx, prev, cfg); err != nil {
		r.fail(ctx, err)
		capitan.Emit(ctx, ConfigApplyFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("apply failed: %w", err)
	}

	oldState := r.State()
	r.current.Store(&cfg)
	r.lastError.Store(nil)
	r.errorHistory.clear()
	r.transitionState(ctx, oldState, ReloadHealthy)
	capitan.Emit(ctx, ConfigApplied,
		KeyDuration.Field(time.Duration(cfg.Transition.DurationMS)*time.Millisecond),
		KeyAutocenterDelay.Field(cfg.AutocenterDelay()),
	)
	return nil
}

// fail records err and moves to Empty when nothing was ever applied,
// Degraded otherwise.
func (r *Reloader) fail(ctx context.Context, err error) {
	e := err
	r.lastError.Store(&e)
	r.errorHistory.push(err)

	next := ReloadDegraded
	if r.current.Load() == nil {
		next = ReloadEmpty
	}
	r.transitionState(ctx, r.State(), next)
}

func (r *Reloader) transitionState(ctx context.Context, oldState, newState ReloadState) {
	if oldState == newState {
		return
	}
	r.state.Store(int32(newState))
	capitan.Emit(ctx, ReloaderStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// watch debounces changes until ctx is done or the source closes.
func (r *Reloader) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		final := r.State()
		capitan.Emit(ctx, ReloaderStopped,
			KeyState.Field(final.String()),
		)
		if r.onStop != nil {
			r.onStop(final)
		}
	}()

	var (
		timer   clockz.Timer
		pending []byte
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if pending != nil {
					_ = r.process(ctx, pending) //nolint:errcheck // recorded via fail
				}
				return
			}

			capitan.Emit(ctx, ConfigChangeReceived)
			pending = raw
			if timer == nil {
				timer = r.clock.NewTimer(r.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C():
				default:
				}
			}
			timer.Reset(r.debounce)

		case <-timerC:
			timer = nil
			if pending != nil {
				_ = r.process(ctx, pending) //nolint:errcheck // recorded via fail
				pending = nil
			}
		}
	}
}
