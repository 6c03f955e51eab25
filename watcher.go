package carousel

import "context"

// Watcher observes a configuration source and emits its raw contents.
//
// Watch must emit the current contents first so a Reloader can apply an
// initial configuration, then emit again on every change. The channel is
// closed when ctx is done or the source fails for good.
type Watcher interface {
	Watch(ctx context.Context) (<-chan []byte, error)
}
