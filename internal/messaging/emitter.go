package messaging

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/protocol"
	"github.com/pixil98/go-town/internal/town"
)

// Publisher sends raw frames to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// BroadcastSubject is the subject every client of a town listens on.
func BroadcastSubject(townId string) string {
	return fmt.Sprintf("town.%s.broadcast", townId)
}

// NatsEmitter is the town broadcast channel. Every signal is encoded as a
// protocol envelope with the next sequence number and published to the
// town's broadcast subject. Failures are logged and dropped.
type NatsEmitter struct {
	pub     Publisher
	subject string
	seq     atomic.Uint64
}

// NewNatsEmitter creates the broadcast channel for one town.
func NewNatsEmitter(pub Publisher, townId string) *NatsEmitter {
	return &NatsEmitter{
		pub:     pub,
		subject: BroadcastSubject(townId),
	}
}

func (e *NatsEmitter) PlayerMoved(p town.Player) {
	e.emit(protocol.TypePlayerMoved, p)
}

func (e *NatsEmitter) InteractableUpdate(m calendar.AreaModel) {
	e.emit(protocol.TypeInteractableUpdate, m)
}

func (e *NatsEmitter) PlayerJoined(p town.Player) {
	e.emit(protocol.TypePlayerJoined, p)
}

func (e *NatsEmitter) PlayerDisconnected(p town.Player) {
	e.emit(protocol.TypePlayerDisconnect, p)
}

// Seq returns the sequence number of the last broadcast.
func (e *NatsEmitter) Seq() uint64 {
	return e.seq.Load()
}

func (e *NatsEmitter) emit(typ string, payload any) {
	data, err := protocol.EncodeSeq(typ, e.seq.Add(1), payload)
	if err != nil {
		slog.Error("encoding broadcast", "type", typ, "error", err)
		return
	}
	if err := e.pub.Publish(e.subject, data); err != nil {
		slog.Warn("publishing broadcast", "subject", e.subject, "type", typ, "error", err)
	}
}
