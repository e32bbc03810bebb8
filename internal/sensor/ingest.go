// Package sensor decodes raw dart detections from an external
// computer-vision source and validates them against the engine's input
// contract before they ever reach internal/game. The engine never has
// to trust a raw wire payload directly.
package sensor

import (
	"encoding/json"
	"fmt"

	"github.com/dart01/server/internal/game"
)

// RawDart is the wire shape of one detection reported by the CV sensor.
// Zone and Position are carried through for spectator/debug display but
// are not consumed by the engine; Score is recomputed, never trusted.
type RawDart struct {
	Segment    int    `json:"segment"`
	Multiplier int    `json:"multiplier"`
	Score      int    `json:"score"`
	Zone       string `json:"zone,omitempty"`
	Position   struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position,omitempty"`
}

// DecodeDart parses and validates a raw detection payload, returning the
// game.DartInput the engine accepts. The reported Score is checked
// against segment*multiplier rather than trusted outright.
func DecodeDart(payload []byte) (game.DartInput, error) {
	var raw RawDart
	if err := json.Unmarshal(payload, &raw); err != nil {
		return game.DartInput{}, fmt.Errorf("sensor: decode raw dart: %w", err)
	}

	if err := game.ValidateDart(raw.Segment, raw.Multiplier); err != nil {
		return game.DartInput{}, err
	}

	expected := raw.Segment * raw.Multiplier
	if raw.Score != 0 && raw.Score != expected {
		return game.DartInput{}, &game.EngineError{
			Kind: game.ErrInvalidDart,
			Msg:  fmt.Sprintf("reported score %d does not match segment*multiplier %d", raw.Score, expected),
		}
	}

	return game.DartInput{Segment: raw.Segment, Multiplier: raw.Multiplier}, nil
}
