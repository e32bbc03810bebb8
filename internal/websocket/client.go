// Package websocket handles websocket connections and messaging.
package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dart01/server/internal/game"
	"github.com/dart01/server/internal/sensor"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Client is a middleman between the websocket connection and the hub.
// Spectator and sensor connections are not distinguished: any client may
// send every inbound message type, and operations apply to the match it
// most recently asked to watch.
type Client struct {
	hub *Hub

	conn *websocket.Conn
	send chan []byte
	id   string

	deps ServerDeps

	matchID string
}

type inboundMsg struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type watchPayload struct {
	MatchID string `json:"matchId"`
}

type bustActionPayload struct {
	MatchID string           `json:"matchId"`
	BustID  string           `json:"bustId,omitempty"`
	Darts   []game.DartInput `json:"darts,omitempty"`
}

type correctDartPayload struct {
	MatchID  string         `json:"matchId"`
	PlayerID string         `json:"playerId"`
	Index    int            `json:"index"`
	Dart     game.DartInput `json:"dart"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
		message = bytes.TrimSpace(bytes.ReplaceAll(message, newline, space))

		var env inboundMsg
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("received non-JSON message from %s: %s", c.id, string(message))
			continue
		}

		c.handleInboundMessage(env)
	}
}

func (c *Client) handleInboundMessage(env inboundMsg) {
	switch env.Type {
	case "list_matches":
		matches := c.deps.Lobby.List("")
		c.sendEnvelope("match_list", matches)

	case "watch_match":
		c.handleWatchMatch(env.Payload)

	case "dart":
		c.handleDart(env.Payload)

	case "confirm_bust":
		c.handleConfirmBust(env.Payload)

	case "override_bust":
		c.handleOverrideBust(env.Payload)

	case "correct_dart":
		c.handleCorrectDart(env.Payload)

	case "start_next_leg":
		c.handleStartNextLeg(env.Payload)

	default:
		log.Printf("unknown message type: %s", env.Type)
	}
}

func (c *Client) handleWatchMatch(payload json.RawMessage) {
	var p watchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Printf("watch_match payload error: %v", err)
		return
	}
	match, ok := c.deps.Games.Get(mustParseUUID(p.MatchID))
	if !ok {
		c.sendError("match_not_found")
		return
	}
	c.matchID = p.MatchID
	c.hub.JoinGame(c, p.MatchID)

	data, err := match.Checkpoint()
	if err != nil {
		c.sendError("checkpoint_failed")
		return
	}
	c.sendEnvelope("match_state", json.RawMessage(data))
}

func (c *Client) handleDart(payload json.RawMessage) {
	dart, err := sensor.DecodeDart(payload)
	if err != nil {
		c.sendError(engineErrorCode(err))
		return
	}
	c.dispatch(game.Operation{Kind: game.OpProcessDart, Dart: dart})
}

func (c *Client) handleConfirmBust(payload json.RawMessage) {
	var p bustActionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Printf("confirm_bust payload error: %v", err)
		return
	}
	c.dispatch(game.Operation{Kind: game.OpConfirmBust})
}

func (c *Client) handleOverrideBust(payload json.RawMessage) {
	var p bustActionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Printf("override_bust payload error: %v", err)
		return
	}
	bustID, err := uuid.Parse(p.BustID)
	if err != nil {
		c.sendError("invalid_bust_id")
		return
	}
	c.dispatch(game.Operation{Kind: game.OpOverrideBust, BustID: bustID, Darts: p.Darts})
}

func (c *Client) handleCorrectDart(payload json.RawMessage) {
	var p correctDartPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Printf("correct_dart payload error: %v", err)
		return
	}
	c.dispatch(game.Operation{Kind: game.OpCorrectDart, PlayerID: p.PlayerID, CorrectIdx: p.Index, CorrectDart: p.Dart})
}

func (c *Client) handleStartNextLeg(payload json.RawMessage) {
	c.dispatch(game.Operation{Kind: game.OpStartNextLeg})
}

// dispatch applies an operation to the client's watched match and
// broadcasts the resulting events to the match's room.
func (c *Client) dispatch(op game.Operation) {
	if c.matchID == "" {
		c.sendError("not_watching_a_match")
		return
	}
	id, err := uuid.Parse(c.matchID)
	if err != nil {
		c.sendError("invalid_match_id")
		return
	}
	outcome, err := c.deps.Games.Dispatch(id, op)
	if err != nil {
		c.sendError(engineErrorCode(err))
		return
	}
	msg, _ := json.Marshal(map[string]any{
		"type":    "events",
		"payload": outcome.Events,
	})
	c.hub.BroadcastToGame(c.matchID, msg)
}

func (c *Client) sendEnvelope(msgType string, payload any) {
	msg, _ := json.Marshal(map[string]any{"type": msgType, "payload": payload})
	c.send <- msg
}

func (c *Client) sendError(code string) {
	c.sendEnvelope("error", code)
}

func engineErrorCode(err error) string {
	if engErr, ok := err.(*game.EngineError); ok {
		return engErr.Kind.String()
	}
	return "internal_error"
}

func mustParseUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			if err := c.handleWriteMessage(message, ok); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.handlePing(); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleWriteMessage(message []byte, ok bool) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if !ok {
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		return fmt.Errorf("channel closed")
	}

	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}

	return w.Close()
}

func (c *Client) handlePing() error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}
