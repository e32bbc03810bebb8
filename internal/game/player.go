package game

// Player is one participant in a match. Score and leg/set tallies are
// reset by the progression controller at leg and set boundaries.
type Player struct {
	ID          string
	Name        string
	Score       int
	LegsWon     int
	SetsWon     int
	IsIn        bool  // has the player satisfied double-in, if required
	DartsThrown int    // cumulative across the whole match, never reset
	Turns       []Turn // completed turns within the current leg, most-recent last
}

func newPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name}
}

// resetForLeg puts the player back to the leg's starting score, clears
// the double-in latch, and drops the prior leg's turn history.
func (p *Player) resetForLeg(startingScore int, doubleIn bool) {
	p.Score = startingScore
	p.IsIn = !doubleIn
	p.Turns = nil
}
