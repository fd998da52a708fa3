package town

import "github.com/pixil98/go-town/internal/calendar"

// Emitter is the broadcast channel an area reports through. Delivery is
// fire-and-forget: implementations handle their own failures.
type Emitter interface {
	// PlayerMoved announces a player's full location record.
	PlayerMoved(p Player)
	// InteractableUpdate announces the full snapshot of a calendar area.
	InteractableUpdate(m calendar.AreaModel)
}

// Sequencer is implemented by emitters that number their broadcasts. Every
// emit happens under the Town lock, so Seq read under it matches the state.
type Sequencer interface {
	Seq() uint64
}

// TownEmitter extends Emitter with the session signals the Town sends.
type TownEmitter interface {
	Emitter
	PlayerJoined(p Player)
	PlayerDisconnected(p Player)
}
