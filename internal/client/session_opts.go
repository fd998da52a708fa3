package client

import "github.com/pixil98/go-town/internal/mirror"

type SessionOpt func(*Session)

// WithAreaAdded sets a hook called for every newly mirrored area, including
// those in the initial town state. It runs with the session lock held, so it
// is the place to register observers before any update arrives.
func WithAreaAdded(fn func(*mirror.CalendarAreaController)) SessionOpt {
	return func(s *Session) {
		s.onAreaAdded = fn
	}
}

// WithServerErrorHandler sets the handler for messages the server rejected.
func WithServerErrorHandler(fn func(message string)) SessionOpt {
	return func(s *Session) {
		s.onServerError = fn
	}
}
