package game

import "testing"

func straightRules() *Rules {
	r, err := NewRules(Rules{StartingScore: 501, LegsToWin: 1})
	if err != nil {
		panic(err)
	}
	return r
}

func doubleOutRules() *Rules {
	r, err := NewRules(Rules{StartingScore: 501, DoubleOut: true, LegsToWin: 1})
	if err != nil {
		panic(err)
	}
	return r
}

func TestEvaluateDart_PlainScore(t *testing.T) {
	rules := straightRules()
	eval := evaluateDart(rules, 100, true, Dart{Segment: 20, Multiplier: 3, Score: 60})
	if eval.Kind != ResultScored {
		t.Fatalf("expected ResultScored, got %s", eval.Kind)
	}
	if eval.ScoreAfter != 40 {
		t.Fatalf("expected score 40, got %d", eval.ScoreAfter)
	}
}

func TestEvaluateDart_BustNegative(t *testing.T) {
	rules := straightRules()
	eval := evaluateDart(rules, 10, true, Dart{Segment: 20, Multiplier: 1, Score: 20})
	if eval.Kind != ResultBustNegative {
		t.Fatalf("expected ResultBustNegative, got %s", eval.Kind)
	}
	if eval.ScoreAfter != 10 {
		t.Fatalf("bust must not change score, got %d", eval.ScoreAfter)
	}
}

func TestEvaluateDart_StraightCheckoutAnyMultiplier(t *testing.T) {
	rules := straightRules()
	eval := evaluateDart(rules, 5, true, Dart{Segment: 5, Multiplier: 1, Score: 5})
	if eval.Kind != ResultCheckout {
		t.Fatalf("expected ResultCheckout, got %s", eval.Kind)
	}
	if eval.ScoreAfter != 0 {
		t.Fatalf("expected score 0, got %d", eval.ScoreAfter)
	}
}

func TestEvaluateDart_DoubleOutInvalidCheckout(t *testing.T) {
	rules := doubleOutRules()
	eval := evaluateDart(rules, 20, true, Dart{Segment: 20, Multiplier: 1, Score: 20})
	if eval.Kind != ResultBustInvalidCheckout {
		t.Fatalf("expected ResultBustInvalidCheckout, got %s", eval.Kind)
	}
}

func TestEvaluateDart_DoubleOutValidCheckout(t *testing.T) {
	rules := doubleOutRules()
	eval := evaluateDart(rules, 40, true, Dart{Segment: 20, Multiplier: 2, Score: 40})
	if eval.Kind != ResultCheckout {
		t.Fatalf("expected ResultCheckout, got %s", eval.Kind)
	}
}

func TestEvaluateDart_ScoreIsOneBustsUnderDoubleOut(t *testing.T) {
	rules := doubleOutRules()
	eval := evaluateDart(rules, 21, true, Dart{Segment: 20, Multiplier: 1, Score: 20})
	if eval.Kind != ResultBustScoreIsOne {
		t.Fatalf("expected ResultBustScoreIsOne, got %s", eval.Kind)
	}
	if eval.ScoreAfter != 21 {
		t.Fatalf("bust must not change score, got %d", eval.ScoreAfter)
	}
}

func TestEvaluateDart_ScoreIsOneAllowedUnderStraightOut(t *testing.T) {
	rules := straightRules()
	eval := evaluateDart(rules, 21, true, Dart{Segment: 20, Multiplier: 1, Score: 20})
	if eval.Kind != ResultScored {
		t.Fatalf("expected ResultScored under straight-out rules, got %s", eval.Kind)
	}
	if eval.ScoreAfter != 1 {
		t.Fatalf("expected score 1, got %d", eval.ScoreAfter)
	}
}

func TestEvaluateDart_ConsumedNotIn(t *testing.T) {
	rules, err := NewRules(Rules{StartingScore: 501, DoubleIn: true, LegsToWin: 1})
	if err != nil {
		t.Fatal(err)
	}
	eval := evaluateDart(rules, 501, false, Dart{Segment: 20, Multiplier: 3, Score: 60})
	if eval.Kind != ResultConsumedNotIn {
		t.Fatalf("expected ResultConsumedNotIn, got %s", eval.Kind)
	}
	if eval.ScoreAfter != 501 || eval.IsInAfter {
		t.Fatalf("a not-in dart must not change score or isIn, got score=%d isIn=%v", eval.ScoreAfter, eval.IsInAfter)
	}
}

func TestEvaluateDart_DoubleInActivates(t *testing.T) {
	rules, err := NewRules(Rules{StartingScore: 501, DoubleIn: true, LegsToWin: 1})
	if err != nil {
		t.Fatal(err)
	}
	eval := evaluateDart(rules, 501, false, Dart{Segment: 20, Multiplier: 2, Score: 40})
	if eval.Kind != ResultDoubleInActivated {
		t.Fatalf("expected ResultDoubleInActivated, got %s", eval.Kind)
	}
	if !eval.IsInAfter {
		t.Fatal("expected isIn to become true")
	}
	if eval.ScoreAfter != 461 {
		t.Fatalf("expected score 461, got %d", eval.ScoreAfter)
	}
}

func TestEvaluateDart_DoubleInLandingOnOneBusts(t *testing.T) {
	// Double-in AND double-out: a double that would land on exactly 1 busts
	// rather than activating double-in, since double-out forbids finishing
	// (or sitting) on 1.
	rules, err := NewRules(Rules{StartingScore: 501, DoubleIn: true, DoubleOut: true, LegsToWin: 1})
	if err != nil {
		t.Fatal(err)
	}
	eval := evaluateDart(rules, 3, false, Dart{Segment: 1, Multiplier: 2, Score: 2})
	if eval.Kind != ResultBustScoreIsOne {
		t.Fatalf("expected ResultBustScoreIsOne to take precedence, got %s", eval.Kind)
	}
}

func TestEvaluateDart_MasterOutAllowsTriple(t *testing.T) {
	rules, err := NewRules(Rules{StartingScore: 501, MasterOut: true, LegsToWin: 1})
	if err != nil {
		t.Fatal(err)
	}
	eval := evaluateDart(rules, 60, true, Dart{Segment: 20, Multiplier: 3, Score: 60})
	if eval.Kind != ResultCheckout {
		t.Fatalf("expected ResultCheckout under master-out with a triple, got %s", eval.Kind)
	}
}

func TestEvaluateDart_MasterOutRejectsSingle(t *testing.T) {
	rules, err := NewRules(Rules{StartingScore: 501, MasterOut: true, LegsToWin: 1})
	if err != nil {
		t.Fatal(err)
	}
	eval := evaluateDart(rules, 20, true, Dart{Segment: 20, Multiplier: 1, Score: 20})
	if eval.Kind != ResultBustInvalidCheckout {
		t.Fatalf("expected ResultBustInvalidCheckout, got %s", eval.Kind)
	}
}

func TestEvaluateDart_DoubleInAndCheckoutInSameDart(t *testing.T) {
	// A double that both activates double-in and reduces score to zero
	// checks out in one dart: checkout takes precedence and sets isIn true
	// regardless of the player's prior double-in state.
	rules, err := NewRules(Rules{StartingScore: 20, DoubleIn: true, DoubleOut: true, LegsToWin: 1})
	if err != nil {
		t.Fatal(err)
	}
	eval := evaluateDart(rules, 20, false, Dart{Segment: 10, Multiplier: 2, Score: 20})
	if eval.Kind != ResultCheckout {
		t.Fatalf("expected ResultCheckout, got %s", eval.Kind)
	}
	if eval.ScoreAfter != 0 || !eval.IsInAfter {
		t.Fatalf("expected score 0 and isIn true, got score=%d isIn=%v", eval.ScoreAfter, eval.IsInAfter)
	}
}

func TestEvaluateDart_ScoreExactlyTwoWithDoubleOutSingleBusts(t *testing.T) {
	rules := doubleOutRules()
	eval := evaluateDart(rules, 2, true, Dart{Segment: 2, Multiplier: 1, Score: 2})
	if eval.Kind != ResultBustInvalidCheckout {
		t.Fatalf("expected a single-2 to bust under double-out, got %s", eval.Kind)
	}
}

func TestRules_BullseyeCannotBeTripled(t *testing.T) {
	if err := ValidateDart(25, 3); err == nil {
		t.Fatal("expected error validating a triple bullseye")
	}
}

func TestNewRules_RejectsUnsupportedStartingScore(t *testing.T) {
	if _, err := NewRules(Rules{StartingScore: 999, LegsToWin: 1}); err == nil {
		t.Fatal("expected error for unsupported starting score")
	}
}
