package carousel

import "context"

// ChannelWatcher serves configuration pushed on a byte channel. Tests and
// in-process sources use it instead of a file.
type ChannelWatcher struct {
	src    <-chan []byte
	direct bool
}

// NewChannelWatcher relays src through a goroutine that stops with the
// Watch context.
func NewChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src}
}

// NewSyncChannelWatcher hands src to the Reloader unchanged. Pair it with
// Reloader.SyncMode for deterministic tests.
func NewSyncChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src, direct: true}
}

// Watch implements Watcher.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.src, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			var data []byte
			select {
			case <-ctx.Done():
				return
			case v, ok := <-w.src:
				if !ok {
					return
				}
				data = v
			}

			select {
			case out <- data:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
