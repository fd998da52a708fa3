package observer

import "sync"

// Handle identifies one registration in a Set.
type Handle uint64

type entry[T any] struct {
	handle  Handle
	fn      func(T)
	removed bool
}

// Set is an ordered collection of observers for one kind of notification.
// Observers run in registration order. Registration and removal are safe from
// any goroutine, including from inside an observer during Notify.
type Set[T any] struct {
	mu      sync.Mutex
	next    Handle
	entries []*entry[T]
}

// Add registers fn and returns the handle that removes it.
func (s *Set[T]) Add(fn func(T)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.entries = append(s.entries, &entry[T]{handle: s.next, fn: fn})
	return s.next
}

// Remove unregisters the observer behind h. It reports whether anything was
// removed; removing an unknown or already removed handle is a no-op.
func (s *Set[T]) Remove(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.handle == h {
			e.removed = true
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear unregisters every observer.
func (s *Set[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		e.removed = true
	}
	s.entries = nil
}

// Len returns the number of registered observers.
func (s *Set[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Notify calls every observer with v. The observer list is captured before
// the first call; observers added during delivery wait for the next Notify,
// and observers removed during delivery are skipped.
func (s *Set[T]) Notify(v T) {
	s.mu.Lock()
	entries := make([]*entry[T], len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	for _, e := range entries {
		s.mu.Lock()
		removed := e.removed
		s.mu.Unlock()
		if removed {
			continue
		}
		e.fn(v)
	}
}
