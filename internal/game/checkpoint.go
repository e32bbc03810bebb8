package game

import (
	"encoding/json"

	"github.com/google/uuid"
)

// checkpoint is the structural snapshot of a Match used to persist and
// later reconstruct an in-flight match across a process boundary. It is
// not a historical record: only the fields needed to resume play are
// carried.
type checkpoint struct {
	ID                 string        `json:"id"`
	Rules              Rules         `json:"rules"`
	Players            []*Player     `json:"players"`
	CurrentPlayerIndex int           `json:"current_player_index"`
	CurrentLeg         int           `json:"current_leg"`
	CurrentSet         int           `json:"current_set"`
	LegWinnerID        string        `json:"leg_winner_id"`
	MatchWinnerID      string        `json:"match_winner_id"`
	Phase              Phase         `json:"phase"`
	CurrentTurn        *Turn         `json:"current_turn,omitempty"`
	PendingBust        *PendingBust  `json:"pending_bust,omitempty"`
	LegsStarted        int           `json:"legs_started"`
}

// Checkpoint marshals the match's current state to JSON.
func (m *Match) Checkpoint() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := checkpoint{
		ID:                 m.ID.String(),
		Rules:              m.Rules,
		Players:            m.Players,
		CurrentPlayerIndex: m.CurrentPlayerIndex,
		CurrentLeg:         m.CurrentLeg,
		CurrentSet:         m.CurrentSet,
		LegWinnerID:        m.LegWinnerID,
		MatchWinnerID:      m.MatchWinnerID,
		Phase:              m.Phase,
		CurrentTurn:        m.CurrentTurn,
		PendingBust:        m.PendingBust,
		LegsStarted:        m.legsStarted,
	}
	return json.Marshal(cp)
}

// RestoreMatch reconstructs a Match from a checkpoint produced by
// (*Match).Checkpoint.
func RestoreMatch(data []byte) (*Match, error) {
	var cp checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(cp.ID)
	if err != nil {
		return nil, err
	}
	return &Match{
		ID:                 id,
		Rules:              cp.Rules,
		Players:            cp.Players,
		CurrentPlayerIndex: cp.CurrentPlayerIndex,
		CurrentLeg:         cp.CurrentLeg,
		CurrentSet:         cp.CurrentSet,
		LegWinnerID:        cp.LegWinnerID,
		MatchWinnerID:      cp.MatchWinnerID,
		Phase:              cp.Phase,
		CurrentTurn:        cp.CurrentTurn,
		PendingBust:        cp.PendingBust,
		legsStarted:        cp.LegsStarted,
	}, nil
}
