package carousel

import (
	"context"
	"testing"
	"time"
)

// requireClosed fails unless ch closes within a second.
func requireClosed(t *testing.T, ch <-chan []byte) {
	t.Helper()
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for channel close")
		}
	}
}

func TestChannelWatcher_RelaysInOrder(t *testing.T) {
	payloads := []string{
		"autocenter_delay_ms: 100",
		"autocenter_delay_ms: 200",
		"transition:\n  duration_ms: 0",
	}
	source := make(chan []byte, len(payloads))
	for _, p := range payloads {
		source <- []byte(p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := NewChannelWatcher(source).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	for i, want := range payloads {
		select {
		case got := <-out:
			if string(got) != want {
				t.Errorf("payload %d: expected %q, got %q", i, want, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for payload %d", i)
		}
	}
}

func TestChannelWatcher_SourceCloseClosesOutput(t *testing.T) {
	source := make(chan []byte, 1)
	source <- []byte("autocenter_delay_ms: 100")
	close(source)

	out, err := NewChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	requireClosed(t, out)
}

func TestChannelWatcher_CancelClosesOutput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	out, err := NewChannelWatcher(make(chan []byte)).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	cancel()
	requireClosed(t, out)
}

func TestSyncChannelWatcher_NoRelay(t *testing.T) {
	source := make(chan []byte, 1)
	source <- []byte("autocenter_delay_ms: 100")

	out, err := NewSyncChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case got := <-out:
		if string(got) != "autocenter_delay_ms: 100" {
			t.Errorf("unexpected payload %q", got)
		}
	default:
		t.Fatal("expected payload readable without a relay goroutine")
	}
}
