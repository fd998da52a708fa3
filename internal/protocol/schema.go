package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const clientSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type", "payload"],
  "properties": {
    "type": {"enum": ["join", "playerMovement", "interactableUpdate"]},
    "payload": {"type": "object"}
  },
  "allOf": [
    {
      "if": {"properties": {"type": {"const": "join"}}},
      "then": {"properties": {"payload": {"$ref": "#/$defs/join"}}}
    },
    {
      "if": {"properties": {"type": {"const": "playerMovement"}}},
      "then": {"properties": {"payload": {"$ref": "#/$defs/movement"}}}
    },
    {
      "if": {"properties": {"type": {"const": "interactableUpdate"}}},
      "then": {"properties": {"payload": {"$ref": "#/$defs/calendarArea"}}}
    }
  ],
  "$defs": {
    "join": {
      "type": "object",
      "required": ["userName"],
      "properties": {"userName": {"type": "string", "minLength": 1, "maxLength": 64}}
    },
    "movement": {
      "type": "object",
      "required": ["location"],
      "properties": {
        "location": {
          "type": "object",
          "required": ["x", "y"],
          "properties": {
            "x": {"type": "number"},
            "y": {"type": "number"},
            "rotation": {"type": "string"},
            "moving": {"type": "boolean"},
            "interactableId": {"type": "string"}
          }
        }
      }
    },
    "calendarArea": {
      "type": "object",
      "required": ["id", "events"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "calendarName": {"type": "string"},
        "events": {"type": "array", "items": {"$ref": "#/$defs/event"}}
      }
    },
    "event": {
      "type": "object",
      "required": ["id", "title", "start", "end"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "start": {"type": "string"},
        "end": {"type": "string"}
      }
    }
  }
}`

var clientMessageSchema = jsonschema.MustCompileString("client.schema.json", clientSchema)

// ValidateClientMessage checks a frame received from a client against the
// client message schema.
func ValidateClientMessage(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decoding client message: %w", err)
	}
	if err := clientMessageSchema.Validate(v); err != nil {
		return fmt.Errorf("invalid client message: %w", err)
	}
	return nil
}
