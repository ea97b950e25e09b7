package resync

import "sync"

// Once behaves like sync.Once but can be reset, which unit tests rely on
// to reinitialize lazy singletons between cases.
type Once struct {
	mu   sync.Mutex
	done bool
}

func (o *Once) Do(f func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return
	}
	f()
	o.done = true
}

func (o *Once) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done = false
}
