package calendar

import "errors"

var (
	ErrDuplicateEventId = errors.New("duplicate event id")
	ErrMissingEventId   = errors.New("event id is required")
)
