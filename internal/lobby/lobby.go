// Package lobby tracks matches available for a spectator or sensor to
// attach to. It knows nothing about scoring: it is a thin directory that
// sits above the game engine and can list matches of any Mode, so a
// sibling game mode can share this directory without the engine ever
// importing that mode's code.
package lobby

import (
	"sync"
	"time"
)

// MatchMeta is the directory entry for one open match.
type MatchMeta struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Players    []string  `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Manager maintains the directory of open matches. It is separate from
// game.Manager, which holds the authoritative match state.
type Manager struct {
	mu      sync.RWMutex
	matches map[string]*MatchMeta
}

// NewManager returns an empty directory.
func NewManager() *Manager {
	return &Manager{matches: make(map[string]*MatchMeta)}
}

// Register adds a match to the directory under the given ID, as produced
// by game.Manager.CreateMatch.
func (m *Manager) Register(id, mode string, players []string, maxPlayers int) *MatchMeta {
	m.mu.Lock()
	defer m.mu.Unlock()
	meta := &MatchMeta{
		ID:         id,
		Mode:       mode,
		Players:    append([]string{}, players...),
		MaxPlayers: maxPlayers,
		CreatedAt:  time.Now(),
	}
	m.matches[id] = meta
	return meta
}

// Unregister removes a match from the directory, e.g. once it has ended.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
}

// Get returns a single directory entry.
func (m *Manager) Get(id string) (*MatchMeta, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	meta, ok := m.matches[id]
	return meta, ok
}

// List returns every open match in the directory, optionally filtered by
// mode (an empty mode lists all of them).
func (m *Manager) List(mode string) []*MatchMeta {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*MatchMeta, 0, len(m.matches))
	for _, meta := range m.matches {
		if mode != "" && meta.Mode != mode {
			continue
		}
		out = append(out, meta)
	}
	return out
}
