package game

// dartEval is the pure result of applying one dart to a tentative
// (score, isIn) state. It never mutates its inputs; the turn recomputer
// folds a sequence of these to derive a turn's final state.
type dartEval struct {
	Kind       DartResultKind
	ScoreAfter int
	IsInAfter  bool
}

// evaluateDart classifies a single dart against a player's tentative
// score and double-in status, in the kernel's fixed precedence order:
// not-in consumption first, then bust-negative, then checkout (valid or
// invalid), then the score-equals-one trap, then double-in activation,
// then a plain score.
func evaluateDart(rules *Rules, score int, isIn bool, dart Dart) dartEval {
	if rules.DoubleIn && !isIn && dart.Multiplier != 2 {
		return dartEval{Kind: ResultConsumedNotIn, ScoreAfter: score, IsInAfter: isIn}
	}

	tentative := score - dart.Score

	if tentative < 0 {
		return dartEval{Kind: ResultBustNegative, ScoreAfter: score, IsInAfter: isIn}
	}

	if tentative == 0 {
		if rules.IsValidCheckout(dart.Multiplier) {
			return dartEval{Kind: ResultCheckout, ScoreAfter: 0, IsInAfter: true}
		}
		return dartEval{Kind: ResultBustInvalidCheckout, ScoreAfter: score, IsInAfter: isIn}
	}

	if tentative == 1 && rules.IsCheckoutInvalidWhenEqualsOne() {
		return dartEval{Kind: ResultBustScoreIsOne, ScoreAfter: score, IsInAfter: isIn}
	}

	if rules.DoubleIn && !isIn && dart.Multiplier == 2 {
		return dartEval{Kind: ResultDoubleInActivated, ScoreAfter: tentative, IsInAfter: true}
	}
	return dartEval{Kind: ResultScored, ScoreAfter: tentative, IsInAfter: isIn}
}

func (k DartResultKind) isBust() bool {
	switch k {
	case ResultBustNegative, ResultBustScoreIsOne, ResultBustInvalidCheckout:
		return true
	default:
		return false
	}
}

func (k DartResultKind) bustReason() BustReason {
	switch k {
	case ResultBustNegative:
		return BustNegative
	case ResultBustScoreIsOne:
		return BustScoreIsOne
	case ResultBustInvalidCheckout:
		return BustInvalidCheckout
	default:
		return BustNegative
	}
}
