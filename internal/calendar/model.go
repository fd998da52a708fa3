package calendar

// Event is a single entry on an area's calendar. Start and End are opaque to
// the replication layer and compared as strings.
type Event struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// AreaModel is the snapshot of a calendar area exchanged between the town
// server and its clients. It is the only shape that crosses the wire.
type AreaModel struct {
	Id           string  `json:"id"`
	CalendarName *string `json:"calendarName,omitempty"`
	Events       []Event `json:"events"`
}

// Content holds the mutable fields of an area. Updates are expressed as
// Content so an area's identity can never be overwritten by one.
type Content struct {
	CalendarName *string
	Events       []Event
}

// Content returns the mutable fields of the snapshot, dropping its id.
func (m AreaModel) Content() Content {
	return Content{
		CalendarName: CloneName(m.CalendarName),
		Events:       CloneEvents(m.Events),
	}
}

// Clone returns a deep copy of the snapshot.
func (m AreaModel) Clone() AreaModel {
	return AreaModel{
		Id:           m.Id,
		CalendarName: CloneName(m.CalendarName),
		Events:       CloneEvents(m.Events),
	}
}

// Name returns a pointer to a copy of s, for building optional names.
func Name(s string) *string {
	return &s
}

// CloneName copies an optional name so callers cannot alias stored state.
func CloneName(n *string) *string {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

// CloneEvents copies an event list. A nil list becomes an empty one so
// snapshots always carry an events array.
func CloneEvents(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}
