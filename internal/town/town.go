package town

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-town/internal/calendar"
)

// Town is the single source of truth for every area and player on one map.
// All access goes through its methods, which serialize on one lock so an
// area's diff-then-commit sequence never interleaves with another call.
type Town struct {
	mu sync.Mutex

	id      string
	emitter TownEmitter

	areas   map[string]Area
	order   []string // area ids in map order
	players map[string]*Player
}

// Snapshot is the state a newly connected client starts from. Seq is the
// sequence number of the last broadcast the snapshot already reflects, when
// the emitter numbers its broadcasts.
type Snapshot struct {
	TownId        string               `json:"townId"`
	Seq           uint64               `json:"seq,omitempty"`
	Players       []Player             `json:"players"`
	Interactables []calendar.AreaModel `json:"interactables"`
}

// NewTown builds every area on m. Areas may not overlap: a player occupies
// at most one area at a time.
func NewTown(id string, m *TownMap, emitter TownEmitter) (*Town, error) {
	t := &Town{
		id:      id,
		emitter: emitter,
		areas:   make(map[string]Area, len(m.Objects)),
		players: make(map[string]*Player),
	}

	for _, obj := range m.Objects {
		a, err := AreaFromMapObject(obj, emitter)
		if err != nil {
			return nil, fmt.Errorf("town %q: %w", id, err)
		}
		if _, ok := t.areas[a.Id()]; ok {
			return nil, fmt.Errorf("town %q: duplicate area id %q", id, a.Id())
		}
		for _, otherId := range t.order {
			if t.areas[otherId].BoundingBox().Overlaps(a.BoundingBox()) {
				return nil, fmt.Errorf("town %q: area %q overlaps area %q", id, a.Id(), otherId)
			}
		}
		t.areas[a.Id()] = a
		t.order = append(t.order, a.Id())
	}

	return t, nil
}

func (t *Town) Id() string {
	return t.id
}

// AddPlayer registers a new player at the map origin. The player is
// announced before any movement, including entering an area at the origin.
func (t *Town) AddPlayer(userName string) Player {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := &Player{
		Id:       uuid.NewString(),
		UserName: userName,
	}
	t.players[p.Id] = p
	t.emitter.PlayerJoined(*p)

	t.placePlayer(p, p.Location)
	return *p
}

// RemovePlayer takes the player out of their area and out of the town.
func (t *Town) RemovePlayer(playerId string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[playerId]
	if !ok {
		return ErrPlayerNotFound
	}

	if a, ok := t.areas[p.Location.InteractableId]; ok {
		a.Remove(p)
	}
	delete(t.players, playerId)

	t.emitter.PlayerDisconnected(*p)
	return nil
}

// MovePlayer moves a player and updates area occupancy when the move crosses
// an area boundary. The InteractableId of loc is ignored; occupancy is derived
// from the position. The final location is always announced last.
func (t *Town) MovePlayer(playerId string, loc Location) (Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[playerId]
	if !ok {
		return Player{}, ErrPlayerNotFound
	}

	t.placePlayer(p, loc)
	return *p, nil
}

func (t *Town) placePlayer(p *Player, loc Location) {
	prev := p.Location.InteractableId
	loc.InteractableId = prev
	p.Location = loc

	next := t.areaAt(loc)
	nextId := ""
	if next != nil {
		nextId = next.Id()
	}

	if nextId == prev {
		t.emitter.PlayerMoved(*p)
		return
	}

	if a, ok := t.areas[prev]; ok {
		a.Remove(p)
	}
	if next != nil {
		next.Add(p)
	}
}

func (t *Town) areaAt(loc Location) Area {
	pt := loc.Point()
	for _, id := range t.order {
		if a := t.areas[id]; a.Contains(pt) {
			return a
		}
	}
	return nil
}

// UpdateArea replaces a calendar area's content with that of model and
// broadcasts the result. The id of model selects the area and is otherwise
// ignored.
func (t *Town) UpdateArea(model calendar.AreaModel) error {
	if err := calendar.ValidateEvents(model.Events); err != nil {
		return fmt.Errorf("area %q: %w", model.Id, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ca, err := t.calendarArea(model.Id)
	if err != nil {
		return err
	}

	ca.UpdateModel(model.Content())
	t.emitter.InteractableUpdate(ca.ToModel())
	return nil
}

// CalendarArea returns the current snapshot of a calendar area.
func (t *Town) CalendarArea(areaId string) (calendar.AreaModel, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ca, err := t.calendarArea(areaId)
	if err != nil {
		return calendar.AreaModel{}, err
	}
	return ca.ToModel(), nil
}

func (t *Town) calendarArea(areaId string) (*CalendarArea, error) {
	a, ok := t.areas[areaId]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAreaNotFound, areaId)
	}
	ca, ok := a.(*CalendarArea)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotCalendarArea, areaId)
	}
	return ca, nil
}

// Occupants returns the ids of the players in an area.
func (t *Town) Occupants(areaId string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.areas[areaId]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAreaNotFound, areaId)
	}
	return a.OccupantIds(), nil
}

// Snapshot returns every player and every calendar area.
func (t *Town) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		TownId:        t.id,
		Players:       make([]Player, 0, len(t.players)),
		Interactables: t.calendarModels(),
	}
	for _, p := range t.players {
		s.Players = append(s.Players, *p)
	}
	if seq, ok := t.emitter.(Sequencer); ok {
		s.Seq = seq.Seq()
	}
	return s
}

func (t *Town) calendarModels() []calendar.AreaModel {
	models := make([]calendar.AreaModel, 0, len(t.order))
	for _, id := range t.order {
		if ca, ok := t.areas[id].(*CalendarArea); ok {
			models = append(models, ca.ToModel())
		}
	}
	return models
}

// Tick rebroadcasts every calendar area so clients that missed an update
// converge. Mirrors diff what they receive, so unchanged areas cause no
// notifications downstream.
func (t *Town) Tick(ctx context.Context) error {
	t.mu.Lock()
	models := t.calendarModels()
	for _, m := range models {
		t.emitter.InteractableUpdate(m)
	}
	t.mu.Unlock()

	slog.DebugContext(ctx, "town resync broadcast", "town", t.id, "areas", len(models))
	return nil
}
