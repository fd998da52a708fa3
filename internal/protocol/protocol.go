package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/town"
)

// Message types sent by the server.
const (
	TypeInitialize         = "initialize"
	TypePlayerJoined       = "playerJoined"
	TypePlayerDisconnect   = "playerDisconnect"
	TypePlayerMoved        = "playerMoved"
	TypeInteractableUpdate = "interactableUpdate"
	TypeError              = "error"
)

// Message types sent by clients. Clients reuse TypeInteractableUpdate to
// submit area changes.
const (
	TypeJoin           = "join"
	TypePlayerMovement = "playerMovement"
)

// Envelope frames every message on the wire. Seq numbers town broadcasts
// in publish order; direct replies and client frames leave it zero.
type Envelope struct {
	Type    string          `json:"type"`
	Seq     uint64          `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Initialize is the first message a client receives after joining.
type Initialize struct {
	UserId string        `json:"userId"`
	Town   town.Snapshot `json:"town"`
}

// Join is the first message a client sends.
type Join struct {
	UserName string `json:"userName"`
}

// PlayerMovement reports a client's new location.
type PlayerMovement struct {
	Location town.Location `json:"location"`
}

// ErrorMessage reports a rejected client message.
type ErrorMessage struct {
	Message string `json:"message"`
}

// Encode wraps payload in an envelope of the given type.
func Encode(typ string, payload any) ([]byte, error) {
	return EncodeSeq(typ, 0, payload)
}

// EncodeSeq wraps payload in an envelope carrying a broadcast sequence
// number.
func EncodeSeq(typ string, seq uint64, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s payload: %w", typ, err)
	}
	return json.Marshal(Envelope{Type: typ, Seq: seq, Payload: raw})
}

// DecodeEnvelope reads the envelope of a frame, leaving the payload raw.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshalling envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("envelope type is required")
	}
	return env, nil
}

// DecodePayload unmarshals the envelope payload into v.
func DecodePayload[T any](env Envelope) (T, error) {
	var v T
	if err := json.Unmarshal(env.Payload, &v); err != nil {
		return v, fmt.Errorf("unmarshalling %s payload: %w", env.Type, err)
	}
	return v, nil
}

// DecodeAreaModel decodes an interactableUpdate payload. A missing events
// list decodes as empty.
func DecodeAreaModel(env Envelope) (calendar.AreaModel, error) {
	m, err := DecodePayload[calendar.AreaModel](env)
	if err != nil {
		return m, err
	}
	if m.Events == nil {
		m.Events = []calendar.Event{}
	}
	return m, nil
}
