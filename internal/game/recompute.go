package game

// recomputeTurn replays darts from a turn's start snapshot (StartScore,
// startIsIn), dart by dart, through the scoring kernel. It halts at the
// first bust or checkout: any darts thrown after that point (e.g. because
// a sensor reported extra detections, or an earlier dart in the turn was
// later corrected) are discarded from the stored turn, matching how a
// real leg ends the moment a player busts or finishes. A bust reverts
// score and is_in to their values at the start of the turn.
func recomputeTurn(rules *Rules, startScore int, startIsIn bool, darts []Dart) (Turn, bool, DartResultKind) {
	turn := newTurn("", startScore, startIsIn)
	score := startScore
	isIn := startIsIn
	lastKind := ResultScored

	kept := make([]Dart, 0, len(darts))
	for _, d := range darts {
		eval := evaluateDart(rules, score, isIn, d)
		kept = append(kept, d)
		score = eval.ScoreAfter
		isIn = eval.IsInAfter
		lastKind = eval.Kind

		if eval.Kind.isBust() {
			turn.IsBusted = true
			turn.BustPending = true
			score = startScore
			isIn = startIsIn
			break
		}
		if eval.Kind == ResultCheckout {
			turn.IsCheckout = true
			break
		}
	}

	turn.Darts = kept
	turn.ScoreAfter = score
	return turn, isIn, lastKind
}
