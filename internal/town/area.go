package town

import (
	"slices"

	"github.com/pixil98/go-town/internal/geometry"
)

// Area is a region of the town that tracks which players stand in it.
type Area interface {
	Id() string
	BoundingBox() geometry.BoundingBox
	Contains(p geometry.Point) bool
	Add(p *Player)
	Remove(p *Player) bool
	IsActive() bool
	OccupantIds() []string
}

// Occupancy is the generic area: an id, a fixed extent and the list of
// players currently inside. Content-bearing areas embed it.
type Occupancy struct {
	id        string
	box       geometry.BoundingBox
	emitter   Emitter
	occupants []*Player
}

// NewOccupancy creates an empty area.
func NewOccupancy(id string, box geometry.BoundingBox, emitter Emitter) *Occupancy {
	return &Occupancy{
		id:      id,
		box:     box,
		emitter: emitter,
	}
}

func (o *Occupancy) Id() string {
	return o.id
}

func (o *Occupancy) BoundingBox() geometry.BoundingBox {
	return o.box
}

// Contains reports whether p falls inside the area's extent.
func (o *Occupancy) Contains(p geometry.Point) bool {
	return o.box.Contains(p)
}

// Add records p as an occupant, points p's location at this area and
// announces the move. Adding a player already present does not duplicate it.
func (o *Occupancy) Add(p *Player) {
	if !slices.Contains(o.occupants, p) {
		o.occupants = append(o.occupants, p)
	}
	p.Location.InteractableId = o.id
	o.emitter.PlayerMoved(*p)
}

// Remove drops p from the occupants, clears p's area and announces the move.
// It returns false, without emitting, if p was not an occupant.
func (o *Occupancy) Remove(p *Player) bool {
	i := slices.Index(o.occupants, p)
	if i < 0 {
		return false
	}
	o.occupants = slices.Delete(o.occupants, i, i+1)
	p.Location.InteractableId = ""
	o.emitter.PlayerMoved(*p)
	return true
}

// IsActive reports whether anyone is in the area.
func (o *Occupancy) IsActive() bool {
	return len(o.occupants) > 0
}

// Occupants returns the current occupants in arrival order.
func (o *Occupancy) Occupants() []*Player {
	return slices.Clone(o.occupants)
}

// OccupantIds returns the ids of the current occupants in arrival order.
func (o *Occupancy) OccupantIds() []string {
	ids := make([]string, len(o.occupants))
	for i, p := range o.occupants {
		ids[i] = p.Id
	}
	return ids
}
