package town

import (
	"fmt"
	"strconv"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/geometry"
)

const (
	AreaTypeCalendar = "CalendarArea"
	AreaTypePlain    = "InteractableArea"
)

// MapObject describes a rectangle drawn on the town map. Width and Height
// are pointers because map editors omit them for point objects.
type MapObject struct {
	Id      int      `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	Visible bool     `json:"visible"`
}

// AreaId is the identity an area built from this object receives: its name,
// or its numeric id when unnamed.
func (o MapObject) AreaId() string {
	if o.Name != "" {
		return o.Name
	}
	return strconv.Itoa(o.Id)
}

// BoundingBox returns the object's extent, failing with ErrMalformedArea
// when width or height is missing.
func (o MapObject) BoundingBox() (geometry.BoundingBox, error) {
	if o.Width == nil || o.Height == nil || *o.Width == 0 || *o.Height == 0 {
		return geometry.BoundingBox{}, fmt.Errorf("%w %s: width and height are required", ErrMalformedArea, o.AreaId())
	}
	box := geometry.BoundingBox{X: o.X, Y: o.Y, Width: *o.Width, Height: *o.Height}
	if err := box.Validate(); err != nil {
		return geometry.BoundingBox{}, fmt.Errorf("%w %s: %w", ErrMalformedArea, o.AreaId(), err)
	}
	return box, nil
}

// CalendarAreaFromMapObject builds an empty calendar area covering obj.
func CalendarAreaFromMapObject(obj MapObject, emitter Emitter) (*CalendarArea, error) {
	box, err := obj.BoundingBox()
	if err != nil {
		return nil, err
	}
	return NewCalendarArea(calendar.AreaModel{Id: obj.AreaId(), Events: []calendar.Event{}}, box, emitter), nil
}

// AreaFromMapObject builds the kind of area named by obj.Type. Objects with
// no type become plain areas.
func AreaFromMapObject(obj MapObject, emitter Emitter) (Area, error) {
	switch obj.Type {
	case AreaTypeCalendar:
		return CalendarAreaFromMapObject(obj, emitter)
	case AreaTypePlain, "":
		box, err := obj.BoundingBox()
		if err != nil {
			return nil, err
		}
		return NewOccupancy(obj.AreaId(), box, emitter), nil
	default:
		return nil, fmt.Errorf("%w %s: unknown type %q", ErrMalformedArea, obj.AreaId(), obj.Type)
	}
}

// TownMap is the set of interactable objects laid out on one town's map.
type TownMap struct {
	Name    string      `json:"name"`
	Objects []MapObject `json:"objects"`
}

// Validate satisfies storage.ValidatingSpec.
func (m *TownMap) Validate() error {
	el := errors.NewErrorList()

	if m.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	seen := make(map[string]bool, len(m.Objects))
	for i, obj := range m.Objects {
		if _, err := obj.BoundingBox(); err != nil {
			el.Add(fmt.Errorf("object %d: %w", i, err))
		}
		id := obj.AreaId()
		if seen[id] {
			el.Add(fmt.Errorf("object %d: duplicate area id %q", i, id))
		}
		seen[id] = true
	}

	return el.Err()
}
