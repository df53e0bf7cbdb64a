package tagml

import "sync"

// Signal is the render-completion broadcaster carried by every handler
// instance. Subscribers registered with Once are notified by the next
// Notify and then dropped, so a handler that is re-processed fires
// completion again for the subscribers of the new pass only.
//
// The zero value is ready to use.
type Signal struct {
	mu   sync.Mutex
	subs []func()
}

// Once registers fn to be called on the next Notify. A nil fn is ignored.
func (s *Signal) Once(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Notify fires and clears the current subscriber set. Callbacks run
// outside the signal's lock, so a callback may safely re-subscribe.
func (s *Signal) Notify() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Pending returns the number of subscribers waiting on the next Notify.
func (s *Signal) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
