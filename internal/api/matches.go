// Package api exposes the match engine over HTTP: create/get a match and
// submit the engine's inbound operations, translating results and
// *game.EngineError into JSON responses and status codes.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dart01/server/internal/game"
	"github.com/dart01/server/internal/lobby"
)

// MatchHandler wires the match engine's Manager and the match directory
// onto the HTTP surface.
type MatchHandler struct {
	Manager *game.Manager
	Lobby   *lobby.Manager
}

// NewMatchHandler builds a MatchHandler.
func NewMatchHandler(manager *game.Manager, directory *lobby.Manager) *MatchHandler {
	return &MatchHandler{Manager: manager, Lobby: directory}
}

// RegisterRoutes mounts the match API under /api/matches.
func (h *MatchHandler) RegisterRoutes(router *mux.Router) {
	s := router.PathPrefix("/api/matches").Subrouter()
	s.HandleFunc("", h.handleCreate).Methods("POST")
	s.HandleFunc("", h.handleList).Methods("GET")
	s.HandleFunc("/{id}", h.handleGet).Methods("GET")
	s.HandleFunc("/{id}/darts", h.handleProcessDart).Methods("POST")
	s.HandleFunc("/{id}/bust/confirm", h.handleConfirmBust).Methods("POST")
	s.HandleFunc("/{id}/bust/override", h.handleOverrideBust).Methods("POST")
	s.HandleFunc("/{id}/darts/correct", h.handleCorrectDart).Methods("POST")
	s.HandleFunc("/{id}/legs/next", h.handleStartNextLeg).Methods("POST")
}

func (h *MatchHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rules   game.Rules          `json:"rules"`
		Players []game.PlayerInit   `json:"players"`
		Mode    string              `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rules, err := game.NewRules(req.Rules)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	match, outcome, err := h.Manager.CreateMatch(*rules, req.Players)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if h.Lobby != nil {
		playerIDs := make([]string, 0, len(req.Players))
		for _, p := range req.Players {
			playerIDs = append(playerIDs, p.ID)
		}
		mode := req.Mode
		if mode == "" {
			mode = "x01"
		}
		h.Lobby.Register(match.ID.String(), mode, playerIDs, len(playerIDs))
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"matchId": match.ID.String(),
		"events":  outcome.Events,
	})
}

func (h *MatchHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if h.Lobby == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, h.Lobby.List(r.URL.Query().Get("mode")))
}

func (h *MatchHandler) matchID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func (h *MatchHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := h.matchID(r)
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}
	match, ok := h.Manager.Get(id)
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	data, err := match.Checkpoint()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *MatchHandler) handleProcessDart(w http.ResponseWriter, r *http.Request) {
	id, err := h.matchID(r)
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}
	var req game.DartInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	outcome, err := h.Manager.Dispatch(id, game.Operation{Kind: game.OpProcessDart, Dart: req})
	h.respondOutcome(w, outcome, err)
}

func (h *MatchHandler) handleConfirmBust(w http.ResponseWriter, r *http.Request) {
	id, err := h.matchID(r)
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}
	outcome, err := h.Manager.Dispatch(id, game.Operation{Kind: game.OpConfirmBust})
	h.respondOutcome(w, outcome, err)
}

func (h *MatchHandler) handleOverrideBust(w http.ResponseWriter, r *http.Request) {
	id, err := h.matchID(r)
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}
	var req struct {
		BustID string           `json:"bustId"`
		Darts  []game.DartInput `json:"darts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bustID, err := uuid.Parse(req.BustID)
	if err != nil {
		http.Error(w, "invalid bust id", http.StatusBadRequest)
		return
	}
	outcome, err := h.Manager.Dispatch(id, game.Operation{Kind: game.OpOverrideBust, BustID: bustID, Darts: req.Darts})
	h.respondOutcome(w, outcome, err)
}

func (h *MatchHandler) handleCorrectDart(w http.ResponseWriter, r *http.Request) {
	id, err := h.matchID(r)
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}
	var req struct {
		PlayerID string         `json:"playerId"`
		Index    int            `json:"index"`
		Dart     game.DartInput `json:"dart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	outcome, err := h.Manager.Dispatch(id, game.Operation{
		Kind:        game.OpCorrectDart,
		PlayerID:    req.PlayerID,
		CorrectIdx:  req.Index,
		CorrectDart: req.Dart,
	})
	h.respondOutcome(w, outcome, err)
}

func (h *MatchHandler) handleStartNextLeg(w http.ResponseWriter, r *http.Request) {
	id, err := h.matchID(r)
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}
	outcome, err := h.Manager.Dispatch(id, game.Operation{Kind: game.OpStartNextLeg})
	h.respondOutcome(w, outcome, err)
}

func (h *MatchHandler) respondOutcome(w http.ResponseWriter, outcome *game.Outcome, err error) {
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": outcome.Events})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeEngineError(w http.ResponseWriter, err error) {
	engErr, ok := err.(*game.EngineError)
	if !ok {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusBadRequest
	switch engErr.Kind {
	case game.ErrWrongPhase:
		status = http.StatusConflict
	case game.ErrUnknownPendingBust, game.ErrNoSuchDart, game.ErrUnknownPlayer:
		status = http.StatusNotFound
	case game.ErrInvalidDart, game.ErrInvalidRules, game.ErrTooFewPlayers:
		status = http.StatusBadRequest
	}

	writeJSON(w, status, map[string]string{
		"error": engErr.Kind.String(),
		"message": engErr.Msg,
	})
}
