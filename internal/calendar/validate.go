package calendar

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// ValidateEvents requires every event to carry an id that is unique within
// the list.
func ValidateEvents(events []Event) error {
	el := errors.NewErrorList()

	seen := make(map[string]int, len(events))
	for i, e := range events {
		if e.Id == "" {
			el.Add(fmt.Errorf("event %d: %w", i, ErrMissingEventId))
			continue
		}
		if j, ok := seen[e.Id]; ok {
			el.Add(fmt.Errorf("events %d and %d: %w %q", j, i, ErrDuplicateEventId, e.Id))
			continue
		}
		seen[e.Id] = i
	}

	return el.Err()
}

// Validate checks a snapshot received from outside the process.
func (m AreaModel) Validate() error {
	el := errors.NewErrorList()

	if m.Id == "" {
		el.Add(fmt.Errorf("id is required"))
	}
	el.Add(ValidateEvents(m.Events))

	return el.Err()
}
