package game

// selectStartingPlayerIndex picks the player index that opens the leg
// about to start, per Rules.StartingPlayerRule. It must be called before
// m.LegWinnerID is cleared, since WinnerStarts reads it.
func selectStartingPlayerIndex(m *Match) int {
	n := len(m.Players)
	switch m.Rules.StartingPlayerRule {
	case WinnerStarts:
		if m.LegWinnerID != "" {
			for i, p := range m.Players {
				if p.ID == m.LegWinnerID {
					return i
				}
			}
		}
		return 0
	case FixedRotation:
		idx := m.legsStarted % n
		return idx
	default: // Alternate
		idx := m.legsStarted % n
		return idx
	}
}

// openTurn starts a fresh Turn for the current player at their present
// score and double-in status.
func openTurn(m *Match) {
	p := m.Players[m.CurrentPlayerIndex]
	t := newTurn(p.ID, p.Score, p.IsIn)
	m.CurrentTurn = &t
}

// endTurn files the finishing player's completed turn into their
// per-leg history, advances to the next player, and opens their turn.
// Called after a turn completes with neither a bust nor a checkout, and
// after a bust is confirmed.
func endTurn(m *Match) {
	finishing := m.Players[m.CurrentPlayerIndex]
	if m.CurrentTurn != nil {
		finishing.Turns = append(finishing.Turns, m.CurrentTurn.Clone())
	}
	m.CurrentPlayerIndex = (m.CurrentPlayerIndex + 1) % len(m.Players)
	openTurn(m)
}

// advanceOnCheckout applies the leg/set/match win cascade for the player
// who just checked out, appending the resulting events to outcome. It
// leaves m.Phase at LegEnded, SetEnded or MatchEnded.
func advanceOnCheckout(m *Match, outcome *Outcome, playerID string) {
	winner := m.playerByID(playerID)
	if m.CurrentTurn != nil {
		winner.Turns = append(winner.Turns, m.CurrentTurn.Clone())
	}
	winner.LegsWon++
	m.LegWinnerID = playerID

	legsWon := map[string]int{}
	for _, p := range m.Players {
		legsWon[p.ID] = p.LegsWon
	}
	outcome.add(LegEndedEvent{
		MatchID:    m.ID.String(),
		WinnerID:   playerID,
		CurrentLeg: m.CurrentLeg,
		LegsWon:    legsWon,
	})

	if !m.Rules.SetsActive() {
		if winner.LegsWon >= m.Rules.LegsToWin {
			m.Phase = MatchEnded
			m.MatchWinnerID = playerID
			outcome.add(MatchEndedEvent{MatchID: m.ID.String(), WinnerID: playerID})
			return
		}
		m.Phase = LegEnded
		return
	}

	if winner.LegsWon >= m.Rules.LegsPerSet {
		winner.SetsWon++
		m.CurrentSet++
		setsWon := map[string]int{}
		for _, p := range m.Players {
			p.LegsWon = 0
			setsWon[p.ID] = p.SetsWon
		}
		outcome.add(SetEndedEvent{
			MatchID:    m.ID.String(),
			WinnerID:   playerID,
			CurrentSet: m.CurrentSet,
			SetsWon:    setsWon,
		})
		if winner.SetsWon >= m.Rules.SetsToWin {
			m.Phase = MatchEnded
			m.MatchWinnerID = playerID
			outcome.add(MatchEndedEvent{MatchID: m.ID.String(), WinnerID: playerID})
			return
		}
		m.Phase = SetEnded
		return
	}

	m.Phase = LegEnded
}
