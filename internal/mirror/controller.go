package mirror

import (
	"slices"

	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/observer"
)

// Listener is returned when registering an observer and removes it again.
type Listener struct {
	kind   kind
	handle observer.Handle
}

type kind int

const (
	kindCalendarName kind = iota + 1
	kindEvents
)

// CalendarAreaController mirrors one calendar area inside a client. It diffs
// every incoming value against its own state and notifies local observers
// only when something actually changed.
//
// A controller belongs to the goroutine that applies server snapshots to it;
// observers run on that goroutine, before the new value is committed.
type CalendarAreaController struct {
	id           string
	calendarName *string
	events       []calendar.Event

	nameObservers   observer.Set[*string]
	eventsObservers observer.Set[[]calendar.Event]
}

// NewCalendarAreaController creates a mirror of model. Nothing is emitted.
func NewCalendarAreaController(model calendar.AreaModel) *CalendarAreaController {
	return &CalendarAreaController{
		id:           model.Id,
		calendarName: calendar.CloneName(model.CalendarName),
		events:       calendar.CloneEvents(model.Events),
	}
}

// Id is fixed at construction.
func (c *CalendarAreaController) Id() string {
	return c.id
}

func (c *CalendarAreaController) CalendarName() *string {
	return calendar.CloneName(c.calendarName)
}

// HasCalendar reports whether a calendar has been selected for the area.
func (c *CalendarAreaController) HasCalendar() bool {
	return c.calendarName != nil
}

// SetCalendarName notifies calendar name observers and stores name if it
// differs from the current one.
func (c *CalendarAreaController) SetCalendarName(name *string) {
	if calendar.SameName(c.calendarName, name) {
		return
	}
	c.nameObservers.Notify(calendar.CloneName(name))
	c.calendarName = calendar.CloneName(name)
}

func (c *CalendarAreaController) Events() []calendar.Event {
	return calendar.CloneEvents(c.events)
}

// SetEvents notifies events observers with the full new list and stores it
// if it holds a different multiset of events than the current list.
func (c *CalendarAreaController) SetEvents(events []calendar.Event) {
	if calendar.SameEvents(c.events, events) {
		return
	}
	c.eventsObservers.Notify(calendar.CloneEvents(events))
	c.events = calendar.CloneEvents(events)
}

// AddEvent appends e to the calendar.
func (c *CalendarAreaController) AddEvent(e calendar.Event) {
	events := append(calendar.CloneEvents(c.events), e)
	c.SetEvents(events)
}

// RemoveEvent drops every event with the given id. It reports whether any
// event was removed.
func (c *CalendarAreaController) RemoveEvent(id string) bool {
	events := slices.DeleteFunc(calendar.CloneEvents(c.events), func(e calendar.Event) bool {
		return e.Id == id
	})
	if len(events) == len(c.events) {
		return false
	}
	c.SetEvents(events)
	return true
}

// SelectCalendar names the area's calendar and starts it empty.
func (c *CalendarAreaController) SelectCalendar(name string) {
	c.SetCalendarName(calendar.Name(name))
	c.SetEvents([]calendar.Event{})
}

// UpdateFrom reconciles the mirror with a snapshot from the server. The
// snapshot's id is never applied.
func (c *CalendarAreaController) UpdateFrom(model calendar.AreaModel) {
	c.SetCalendarName(model.CalendarName)
	c.SetEvents(model.Events)
}

// ToModel returns the mirror's state in wire form, for sending optimistic
// updates to the server.
func (c *CalendarAreaController) ToModel() calendar.AreaModel {
	return calendar.AreaModel{
		Id:           c.id,
		CalendarName: calendar.CloneName(c.calendarName),
		Events:       calendar.CloneEvents(c.events),
	}
}

// OnCalendarNameChange registers fn to receive each new calendar name.
func (c *CalendarAreaController) OnCalendarNameChange(fn func(name *string)) Listener {
	return Listener{kind: kindCalendarName, handle: c.nameObservers.Add(fn)}
}

// OnEventsChange registers fn to receive each new event list.
func (c *CalendarAreaController) OnEventsChange(fn func(events []calendar.Event)) Listener {
	return Listener{kind: kindEvents, handle: c.eventsObservers.Add(fn)}
}

// RemoveListener unregisters l. Removing twice, or during a notification, is
// safe; a removed observer is never called again.
func (c *CalendarAreaController) RemoveListener(l Listener) {
	switch l.kind {
	case kindCalendarName:
		c.nameObservers.Remove(l.handle)
	case kindEvents:
		c.eventsObservers.Remove(l.handle)
	}
}

// ListenerCount returns the number of registered observers of both kinds.
func (c *CalendarAreaController) ListenerCount() int {
	return c.nameObservers.Len() + c.eventsObservers.Len()
}

// Dispose unregisters every observer. The controller keeps mirroring state
// but no longer notifies anyone.
func (c *CalendarAreaController) Dispose() {
	c.nameObservers.Clear()
	c.eventsObservers.Clear()
}
