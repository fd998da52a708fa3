package town

import "github.com/pixil98/go-town/internal/calendar"

// recordingEmitter captures every signal for test assertions.
type recordingEmitter struct {
	signals []signal
}

type signal struct {
	kind   string
	player Player
	model  calendar.AreaModel
}

func (e *recordingEmitter) PlayerMoved(p Player) {
	e.signals = append(e.signals, signal{kind: "playerMoved", player: p})
}

func (e *recordingEmitter) InteractableUpdate(m calendar.AreaModel) {
	e.signals = append(e.signals, signal{kind: "interactableUpdate", model: m})
}

func (e *recordingEmitter) PlayerJoined(p Player) {
	e.signals = append(e.signals, signal{kind: "playerJoined", player: p})
}

func (e *recordingEmitter) PlayerDisconnected(p Player) {
	e.signals = append(e.signals, signal{kind: "playerDisconnect", player: p})
}

func (e *recordingEmitter) count(kind string) int {
	n := 0
	for _, s := range e.signals {
		if s.kind == kind {
			n++
		}
	}
	return n
}

// last returns the most recent signal of the given kind.
func (e *recordingEmitter) last(kind string) (signal, bool) {
	for i := len(e.signals) - 1; i >= 0; i-- {
		if e.signals[i].kind == kind {
			return e.signals[i], true
		}
	}
	return signal{}, false
}

func (e *recordingEmitter) reset() {
	e.signals = nil
}

// sequencedEmitter numbers every signal it records.
type sequencedEmitter struct {
	recordingEmitter
}

func (e *sequencedEmitter) Seq() uint64 {
	return uint64(len(e.signals))
}
