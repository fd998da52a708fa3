package town

import (
	"reflect"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/geometry"
)

var (
	testAreaBox = geometry.BoundingBox{X: 100, Y: 100, Width: 100, Height: 100}

	event1 = calendar.Event{Id: "e1", Title: "group 408", Start: "s", End: "e"}
	event2 = calendar.Event{Id: "e2", Title: "help us!", Start: "st", End: "en"}
	event3 = calendar.Event{Id: "e3", Title: "retro", Start: "2026-01-01T09:00", End: "2026-01-01T10:00"}
)

func newTestCalendarArea(em *recordingEmitter) *CalendarArea {
	return NewCalendarArea(calendar.AreaModel{
		Id:           "A1",
		CalendarName: calendar.Name("Team"),
		Events:       []calendar.Event{event1, event2},
	}, testAreaBox, em)
}

func assertModel(t *testing.T, got calendar.AreaModel, expId string, expName *string, expEvents []calendar.Event) {
	t.Helper()
	testutil.AssertEqual(t, "id", got.Id, expId)
	if !calendar.SameName(got.CalendarName, expName) {
		t.Errorf("calendarName: got %v, expected %v", got.CalendarName, expName)
	}
	if !reflect.DeepEqual(got.Events, expEvents) {
		t.Errorf("events: got %v, expected %v", got.Events, expEvents)
	}
}

func TestCalendarArea_Add(t *testing.T) {
	em := &recordingEmitter{}
	area := newTestCalendarArea(em)
	p := &Player{Id: "p1", UserName: "alice"}

	area.Add(p)

	if !reflect.DeepEqual(area.OccupantIds(), []string{"p1"}) {
		t.Errorf("occupants: got %v", area.OccupantIds())
	}
	testutil.AssertEqual(t, "location area", p.Location.InteractableId, "A1")

	moved, ok := em.last("playerMoved")
	testutil.AssertEqual(t, "moved emitted", ok, true)
	testutil.AssertEqual(t, "moved area", moved.player.Location.InteractableId, "A1")
	testutil.AssertEqual(t, "content updates", em.count("interactableUpdate"), 0)
}

func TestCalendarArea_AddTwiceDoesNotDuplicate(t *testing.T) {
	em := &recordingEmitter{}
	area := newTestCalendarArea(em)
	p := &Player{Id: "p1"}

	area.Add(p)
	area.Add(p)

	testutil.AssertEqual(t, "occupant count", len(area.Occupants()), 1)
}

func TestCalendarArea_Remove(t *testing.T) {
	tests := map[string]struct {
		others       int
		expOccupants int
		expUpdates   int
	}{
		"last occupant leaves":  {others: 0, expOccupants: 0, expUpdates: 1},
		"others remain":         {others: 1, expOccupants: 1, expUpdates: 0},
		"several others remain": {others: 3, expOccupants: 3, expUpdates: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			em := &recordingEmitter{}
			area := newTestCalendarArea(em)
			p := &Player{Id: "p"}
			area.Add(p)
			for i := 0; i < tt.others; i++ {
				area.Add(&Player{Id: string(rune('a' + i))})
			}
			em.reset()

			removed := area.Remove(p)

			testutil.AssertEqual(t, "removed", removed, true)
			testutil.AssertEqual(t, "occupants", len(area.Occupants()), tt.expOccupants)
			testutil.AssertEqual(t, "location cleared", p.Location.InteractableId, "")
			testutil.AssertEqual(t, "moved signals", em.count("playerMoved"), 1)
			testutil.AssertEqual(t, "content updates", em.count("interactableUpdate"), tt.expUpdates)

			moved, _ := em.last("playerMoved")
			testutil.AssertEqual(t, "moved area", moved.player.Location.InteractableId, "")
		})
	}
}

func TestCalendarArea_RemoveLastOccupantBroadcastsCurrentModel(t *testing.T) {
	em := &recordingEmitter{}
	area := newTestCalendarArea(em)
	p := &Player{Id: "p1"}
	area.Add(p)

	area.Remove(p)

	testutil.AssertEqual(t, "active", area.IsActive(), false)
	testutil.AssertEqual(t, "location cleared", p.Location.InteractableId, "")
	testutil.AssertEqual(t, "content updates", em.count("interactableUpdate"), 1)

	update, _ := em.last("interactableUpdate")
	assertModel(t, update.model, "A1", calendar.Name("Team"), []calendar.Event{event1, event2})

	// The broadcast comes after the location change.
	testutil.AssertEqual(t, "last signal", em.signals[len(em.signals)-1].kind, "interactableUpdate")
}

func TestCalendarArea_RemoveNonOccupant(t *testing.T) {
	em := &recordingEmitter{}
	area := newTestCalendarArea(em)

	removed := area.Remove(&Player{Id: "stranger"})

	testutil.AssertEqual(t, "removed", removed, false)
	testutil.AssertEqual(t, "signals", len(em.signals), 0)
}

func TestCalendarArea_UpdateModel(t *testing.T) {
	em := &recordingEmitter{}
	area := newTestCalendarArea(em)

	incoming := calendar.AreaModel{
		Id:           "ignore",
		CalendarName: calendar.Name("Team2"),
		Events:       []calendar.Event{event1, event2, event3},
	}
	area.UpdateModel(incoming.Content())

	testutil.AssertEqual(t, "id", area.Id(), "A1")
	testutil.AssertEqual(t, "calendarName", *area.CalendarName(), "Team2")
	if !reflect.DeepEqual(area.Events(), []calendar.Event{event1, event2, event3}) {
		t.Errorf("events: got %v", area.Events())
	}
	testutil.AssertEqual(t, "signals", len(em.signals), 0)
}

func TestCalendarArea_UpdateModelClearsName(t *testing.T) {
	area := newTestCalendarArea(&recordingEmitter{})

	area.UpdateModel(calendar.Content{})

	if area.CalendarName() != nil {
		t.Errorf("expected absent calendarName, got %q", *area.CalendarName())
	}
	testutil.AssertEqual(t, "events", len(area.Events()), 0)
	if area.ToModel().Events == nil {
		t.Error("expected non-nil events in model")
	}
}

func TestCalendarArea_UpdateModelDoesNotAliasInput(t *testing.T) {
	area := newTestCalendarArea(&recordingEmitter{})
	events := []calendar.Event{event1}

	area.UpdateModel(calendar.Content{Events: events})
	events[0].Title = "mutated"

	testutil.AssertEqual(t, "stored title", area.Events()[0].Title, "group 408")
}

func TestCalendarArea_ToModel(t *testing.T) {
	area := newTestCalendarArea(&recordingEmitter{})

	assertModel(t, area.ToModel(), "A1", calendar.Name("Team"), []calendar.Event{event1, event2})
}
