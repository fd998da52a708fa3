package town

import "errors"

var (
	ErrMalformedArea   = errors.New("malformed area")
	ErrAreaNotFound    = errors.New("area not found")
	ErrNotCalendarArea = errors.New("area is not a calendar area")
	ErrPlayerNotFound  = errors.New("player not found")
)
