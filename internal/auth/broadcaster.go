package auth

import "sync"

// Broadcaster tells interested components which user became active. It
// replaces an untyped global event: subscribers register explicitly and get
// an unsubscribe func back, so handlers can be released on teardown.
//
// An empty user key means "logged out". Handlers must be idempotent; a
// repeated publish of the same key is allowed.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func(userKey string)
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(string))}
}

// Subscribe registers fn for user-change events and returns its unsubscribe.
func (b *Broadcaster) Subscribe(fn func(userKey string)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish notifies every subscriber synchronously. Order is unspecified.
func (b *Broadcaster) Publish(userKey string) {
	b.mu.Lock()
	fns := make([]func(string), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(userKey)
	}
}
