package game

import (
	"sync"

	"github.com/google/uuid"
)

// OperationKind identifies which Match method Dispatch should invoke.
type OperationKind int

const (
	OpProcessDart OperationKind = iota
	OpConfirmBust
	OpOverrideBust
	OpCorrectDart
	OpStartNextLeg
)

// Operation is one call to dispatch against a match, carrying whichever
// arguments its Kind needs. The Manager does not interpret dart
// semantics; it only routes the call and serializes access.
type Operation struct {
	Kind        OperationKind
	Dart        DartInput
	BustID      uuid.UUID
	Darts       []DartInput
	PlayerID    string
	CorrectIdx  int
	CorrectDart DartInput
}

// Manager is the multi-match registry: a map of match ID to *Match
// guarded by a single RWMutex, mirroring the teacher's games-map
// pattern. Locking the registry only ever guards the map lookup; each
// Match then serializes its own operations through its private mutex,
// so two different matches can proceed concurrently.
type Manager struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*Match
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{matches: make(map[uuid.UUID]*Match)}
}

// CreateMatch builds a new Match, starts its first leg, and registers it.
func (mgr *Manager) CreateMatch(rules Rules, players []PlayerInit) (*Match, *Outcome, error) {
	m, err := NewMatch(rules, players)
	if err != nil {
		return nil, nil, err
	}

	mgr.mu.Lock()
	mgr.matches[m.ID] = m
	mgr.mu.Unlock()

	out, err := m.StartMatch()
	if err != nil {
		return nil, nil, err
	}
	return m, out, nil
}

// Get returns a registered match by ID.
func (mgr *Manager) Get(id uuid.UUID) (*Match, bool) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	m, ok := mgr.matches[id]
	return m, ok
}

// Remove drops a match from the registry, e.g. once it has ended and its
// result has been recorded elsewhere.
func (mgr *Manager) Remove(id uuid.UUID) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	delete(mgr.matches, id)
}

// Dispatch looks up a match and applies one Operation to it. It does not
// hold the registry lock while the operation runs: only the map lookup
// is guarded by mgr.mu, the operation itself is guarded by the match's
// own mutex.
func (mgr *Manager) Dispatch(id uuid.UUID, op Operation) (*Outcome, error) {
	m, ok := mgr.Get(id)
	if !ok {
		return nil, newError(ErrUnknownPlayer, "no such match %s", id)
	}

	switch op.Kind {
	case OpProcessDart:
		return m.ProcessDart(op.Dart)
	case OpConfirmBust:
		return m.ConfirmBust()
	case OpOverrideBust:
		return m.OverrideBust(op.BustID, op.Darts)
	case OpCorrectDart:
		return m.CorrectDart(op.PlayerID, op.CorrectIdx, op.CorrectDart)
	case OpStartNextLeg:
		return m.StartNextLeg()
	default:
		return nil, newError(ErrWrongPhase, "unknown operation kind %d", op.Kind)
	}
}
