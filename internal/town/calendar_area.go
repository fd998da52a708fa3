package town

import (
	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/geometry"
)

// CalendarArea is an area carrying a shared calendar. Its content is replaced
// wholesale by UpdateModel; deciding when to broadcast an update belongs to
// the Town.
type CalendarArea struct {
	*Occupancy

	calendarName *string
	events       []calendar.Event
}

// NewCalendarArea creates a calendar area holding the content of model.
func NewCalendarArea(model calendar.AreaModel, box geometry.BoundingBox, emitter Emitter) *CalendarArea {
	return &CalendarArea{
		Occupancy:    NewOccupancy(model.Id, box, emitter),
		calendarName: calendar.CloneName(model.CalendarName),
		events:       calendar.CloneEvents(model.Events),
	}
}

// Remove drops p from the area. When the last occupant leaves, the area
// announces its current snapshot so watchers can react to the vacancy.
func (a *CalendarArea) Remove(p *Player) bool {
	if !a.Occupancy.Remove(p) {
		return false
	}
	if !a.IsActive() {
		a.emitter.InteractableUpdate(a.ToModel())
	}
	return true
}

// UpdateModel replaces the area's content.
func (a *CalendarArea) UpdateModel(c calendar.Content) {
	a.calendarName = calendar.CloneName(c.CalendarName)
	a.events = calendar.CloneEvents(c.Events)
}

// ToModel returns a snapshot of the area suitable for the wire.
func (a *CalendarArea) ToModel() calendar.AreaModel {
	return calendar.AreaModel{
		Id:           a.id,
		CalendarName: calendar.CloneName(a.calendarName),
		Events:       calendar.CloneEvents(a.events),
	}
}

func (a *CalendarArea) CalendarName() *string {
	return calendar.CloneName(a.calendarName)
}

func (a *CalendarArea) Events() []calendar.Event {
	return calendar.CloneEvents(a.events)
}
