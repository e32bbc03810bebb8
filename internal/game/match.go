package game

import (
	"sync"

	"github.com/google/uuid"
)

// PlayerInit is the caller-supplied identity of one match participant.
type PlayerInit struct {
	ID   string
	Name string
}

// DartInput is a raw (segment, multiplier) pair, as received from a
// scorer or sensor, before validation.
type DartInput struct {
	Segment    int
	Multiplier int
}

// Match is the mutable root aggregate: one X01 contest between two or
// more players. All state transitions go through its exported methods,
// each of which checks Phase before doing anything else and returns the
// resulting Outcome as the sole channel for observers.
type Match struct {
	mu sync.Mutex

	ID    uuid.UUID
	Rules Rules

	Players            []*Player
	CurrentPlayerIndex int
	CurrentLeg         int
	CurrentSet         int
	LegWinnerID        string
	MatchWinnerID      string

	Phase       Phase
	CurrentTurn *Turn
	PendingBust *PendingBust

	legsStarted int
}

// NewMatch constructs a match in MatchNotStarted phase. It does not
// start the first leg; call StartMatch for that.
func NewMatch(rules Rules, players []PlayerInit) (*Match, error) {
	if len(players) < 2 {
		return nil, newError(ErrTooFewPlayers, "match requires at least 2 players, got %d", len(players))
	}
	ps := make([]*Player, 0, len(players))
	for _, pi := range players {
		ps = append(ps, newPlayer(pi.ID, pi.Name))
	}
	return &Match{
		ID:      uuid.New(),
		Rules:   rules,
		Players: ps,
		Phase:   MatchNotStarted,
	}, nil
}

func (m *Match) playerByID(id string) *Player {
	for _, p := range m.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByID is a read-only lookup for external collaborators (the HTTP
// layer, spectator views) that need to resolve a player ID to its
// current state without driving a state transition.
func (m *Match) PlayerByID(id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.playerByID(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, newError(ErrUnknownPlayer, "no such player %q in this match", id)
}

// startLeg is the shared internals of StartMatch and StartNextLeg. The
// caller must hold m.mu and must select the starting player index before
// clearing LegWinnerID, since WinnerStarts reads it.
func (m *Match) startLeg() (*Outcome, error) {
	idx := selectStartingPlayerIndex(m)
	m.CurrentLeg++
	m.legsStarted++
	m.LegWinnerID = ""

	for _, p := range m.Players {
		p.resetForLeg(m.Rules.StartingScore, m.Rules.DoubleIn)
	}

	m.CurrentPlayerIndex = idx
	m.Phase = LegInProgress
	openTurn(m)

	out := &Outcome{}
	out.add(LegStartedEvent{
		MatchID:        m.ID.String(),
		CurrentLeg:     m.CurrentLeg,
		StartingPlayer: m.Players[idx].ID,
	})
	return out, nil
}

// StartMatch opens the first leg. Valid only from MatchNotStarted.
func (m *Match) StartMatch() (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Phase != MatchNotStarted {
		return nil, newError(ErrWrongPhase, "cannot start match from phase %s", m.Phase)
	}
	return m.startLeg()
}

// StartNextLeg opens the next leg after the previous one (or set) ended.
func (m *Match) StartNextLeg() (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Phase != LegEnded && m.Phase != SetEnded {
		return nil, newError(ErrWrongPhase, "cannot start next leg from phase %s", m.Phase)
	}
	return m.startLeg()
}

func (m *Match) buildDart(in DartInput) (Dart, error) {
	return NewDart(in.Segment, in.Multiplier)
}

// ProcessDart applies one dart to the player on throw. Darts accumulate
// within the current turn until it busts, checks out, or reaches
// Rules.DartsPerTurn.
func (m *Match) ProcessDart(in DartInput) (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Phase != LegInProgress {
		return nil, newError(ErrWrongPhase, "cannot process a dart from phase %s", m.Phase)
	}

	dart, err := m.buildDart(in)
	if err != nil {
		return nil, err
	}

	player := m.Players[m.CurrentPlayerIndex]
	darts := append(append([]Dart{}, m.CurrentTurn.Darts...), dart)
	turn, finalIsIn, lastKind := recomputeTurn(&m.Rules, m.CurrentTurn.StartScore, m.CurrentTurn.StartIsIn, darts)
	turn.PlayerID = player.ID
	m.CurrentTurn = &turn
	player.DartsThrown++

	out := &Outcome{}
	out.add(DartProcessedEvent{
		MatchID:  m.ID.String(),
		PlayerID: player.ID,
		Dart:     dart,
		Result:   lastKind,
		Turn:     turn.Clone(),
		Phase:    m.Phase,
	})

	switch {
	case lastKind.isBust():
		m.Phase = BustPendingPhase
		player.Score = turn.ScoreAfter
		player.IsIn = finalIsIn
		m.PendingBust = &PendingBust{
			ID:       uuid.New(),
			PlayerID: player.ID,
			Reason:   lastKind.bustReason(),
			Turn:     turn.Clone(),
		}
		out.add(BustPendingEvent{MatchID: m.ID.String(), Pending: *m.PendingBust})

	case lastKind == ResultCheckout:
		player.Score = 0
		player.IsIn = true
		advanceOnCheckout(m, out, player.ID)

	default:
		player.Score = turn.ScoreAfter
		player.IsIn = finalIsIn
		if len(turn.Darts) >= m.Rules.DartsPerTurn {
			endTurn(m)
		}
	}

	return out, nil
}

// ConfirmBust accepts a pending bust: the turn ends, the player's score
// reverts to its value at the start of the turn, and play passes to the
// next player.
func (m *Match) ConfirmBust() (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Phase != BustPendingPhase || m.PendingBust == nil {
		return nil, newError(ErrWrongPhase, "cannot confirm a bust from phase %s", m.Phase)
	}

	pending := m.PendingBust
	pending.Turn.BustConfirmed = true
	m.PendingBust = nil
	m.Phase = LegInProgress
	m.CurrentTurn = &pending.Turn

	// Idempotent: the kernel already reverted the score and is_in when the
	// bust was first detected.
	if player := m.playerByID(pending.PlayerID); player != nil {
		player.Score = pending.Turn.StartScore
		player.IsIn = pending.Turn.StartIsIn
	}

	out := &Outcome{}
	out.add(BustConfirmedEvent{MatchID: m.ID.String(), Turn: pending.Turn.Clone()})
	endTurn(m)
	return out, nil
}

// OverrideBust replaces a pending bust's dart sequence with a corrected
// one (e.g. a sensor misread) and resumes play using the corrected
// result.
func (m *Match) OverrideBust(bustID uuid.UUID, darts []DartInput) (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Phase != BustPendingPhase || m.PendingBust == nil {
		return nil, newError(ErrWrongPhase, "cannot override a bust from phase %s", m.Phase)
	}
	if m.PendingBust.ID != bustID {
		return nil, newError(ErrUnknownPendingBust, "no pending bust with id %s", bustID)
	}

	corrected := make([]Dart, 0, len(darts))
	for _, in := range darts {
		d, err := m.buildDart(in)
		if err != nil {
			return nil, err
		}
		corrected = append(corrected, d)
	}

	player := m.playerByID(m.PendingBust.PlayerID)
	turn, finalIsIn, lastKind := recomputeTurn(&m.Rules, m.CurrentTurn.StartScore, m.CurrentTurn.StartIsIn, corrected)
	turn.PlayerID = player.ID
	m.CurrentTurn = &turn

	out := &Outcome{}

	if lastKind.isBust() {
		player.Score = turn.ScoreAfter
		player.IsIn = finalIsIn
		m.PendingBust = &PendingBust{
			ID:       uuid.New(),
			PlayerID: player.ID,
			Reason:   lastKind.bustReason(),
			Turn:     turn.Clone(),
		}
		out.add(BustPendingEvent{MatchID: m.ID.String(), Pending: *m.PendingBust})
		return out, nil
	}

	m.PendingBust = nil
	m.Phase = LegInProgress
	out.add(BustOverriddenEvent{MatchID: m.ID.String(), Turn: turn.Clone()})

	if lastKind == ResultCheckout {
		player.Score = 0
		player.IsIn = true
		advanceOnCheckout(m, out, player.ID)
	} else {
		player.Score = turn.ScoreAfter
		player.IsIn = finalIsIn
		endTurn(m)
	}

	return out, nil
}

// CorrectDart replaces one dart within the current turn or, if player_id
// is not on throw right now, that player's most recently completed turn
// in this leg, then recomputes the turn from its start snapshot.
// Correcting a turn that already ended in a checkout is not supported:
// reversing the leg/set/match cascade it triggered is out of scope, so
// that case returns NoSuchDart. Likewise, if correcting a past (already
// closed-out) turn would newly produce a bust or a checkout, the
// correction is rejected rather than retroactively reopening or
// re-resolving a turn that isn't on throw.
func (m *Match) CorrectDart(playerID string, index int, in DartInput) (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Phase != LegInProgress {
		return nil, newError(ErrWrongPhase, "cannot correct a dart from phase %s", m.Phase)
	}

	player := m.playerByID(playerID)
	if player == nil {
		return nil, newError(ErrUnknownPlayer, "no such player %q in this match", playerID)
	}

	isCurrent := m.CurrentTurn != nil && m.CurrentTurn.PlayerID == playerID

	var target *Turn
	historyIdx := -1
	if isCurrent {
		target = m.CurrentTurn
	} else if n := len(player.Turns); n > 0 {
		historyIdx = n - 1
		target = &player.Turns[historyIdx]
	}
	if target == nil {
		return nil, newError(ErrNoSuchDart, "no correctable turn for player %q", playerID)
	}
	if target.IsCheckout {
		return nil, newError(ErrNoSuchDart, "cannot correct a turn that already checked out")
	}
	if index < 0 || index >= len(target.Darts) {
		return nil, newError(ErrNoSuchDart, "no dart at index %d in that turn", index)
	}

	newDart, err := m.buildDart(in)
	if err != nil {
		return nil, err
	}

	darts := append([]Dart{}, target.Darts...)
	darts[index] = newDart

	turn, finalIsIn, lastKind := recomputeTurn(&m.Rules, target.StartScore, target.StartIsIn, darts)
	turn.PlayerID = playerID

	if !isCurrent && (lastKind.isBust() || lastKind == ResultCheckout) {
		return nil, newError(ErrNoSuchDart, "correcting player %q's last turn would change its outcome", playerID)
	}

	out := &Outcome{}
	out.add(DartCorrectedEvent{MatchID: m.ID.String(), Turn: turn.Clone()})

	if !isCurrent {
		player.Turns[historyIdx] = turn
		player.Score = turn.ScoreAfter
		player.IsIn = finalIsIn
		return out, nil
	}

	m.CurrentTurn = &turn

	switch {
	case lastKind.isBust():
		m.Phase = BustPendingPhase
		player.Score = turn.ScoreAfter
		player.IsIn = finalIsIn
		m.PendingBust = &PendingBust{
			ID:       uuid.New(),
			PlayerID: player.ID,
			Reason:   lastKind.bustReason(),
			Turn:     turn.Clone(),
		}
		out.add(BustPendingEvent{MatchID: m.ID.String(), Pending: *m.PendingBust})

	case lastKind == ResultCheckout:
		player.Score = 0
		player.IsIn = true
		advanceOnCheckout(m, out, player.ID)

	default:
		player.Score = turn.ScoreAfter
		player.IsIn = finalIsIn
		if len(turn.Darts) >= m.Rules.DartsPerTurn {
			endTurn(m)
		}
	}

	return out, nil
}
