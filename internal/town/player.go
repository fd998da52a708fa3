package town

import "github.com/pixil98/go-town/internal/geometry"

// Location is where a player stands and which area, if any, they occupy.
// An empty InteractableId means the player is in no area.
type Location struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Rotation       string  `json:"rotation,omitempty"`
	Moving         bool    `json:"moving"`
	InteractableId string  `json:"interactableId,omitempty"`
}

// Point returns the map position of the location.
func (l Location) Point() geometry.Point {
	return geometry.Point{X: l.X, Y: l.Y}
}

// Player is a connected user. Areas record a player's presence but never own
// the player itself.
type Player struct {
	Id       string   `json:"id"`
	UserName string   `json:"userName"`
	Location Location `json:"location"`
}
