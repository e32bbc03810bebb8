package game

import (
	"testing"

	"github.com/google/uuid"
)

func TestManager_CreateAndDispatch(t *testing.T) {
	mgr := NewManager()
	rules, err := NewRules(Rules{StartingScore: 20, LegsToWin: 1})
	if err != nil {
		t.Fatal(err)
	}

	match, _, err := mgr.CreateMatch(*rules, []PlayerInit{{ID: "p1"}, {ID: "p2"}})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	if _, ok := mgr.Get(match.ID); !ok {
		t.Fatal("expected created match to be registered")
	}

	out, err := mgr.Dispatch(match.ID, Operation{Kind: OpProcessDart, Dart: DartInput{Segment: 20, Multiplier: 1}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(out.Events) == 0 {
		t.Fatal("expected at least one event from dispatch")
	}
}

func TestManager_DispatchUnknownMatch(t *testing.T) {
	mgr := NewManager()
	_, err := mgr.Dispatch(uuid.UUID{}, Operation{Kind: OpConfirmBust})
	if err == nil {
		t.Fatal("expected error dispatching against an unregistered match")
	}
}

func TestManager_Remove(t *testing.T) {
	mgr := NewManager()
	rules, _ := NewRules(Rules{StartingScore: 501, LegsToWin: 1})
	match, _, err := mgr.CreateMatch(*rules, []PlayerInit{{ID: "p1"}, {ID: "p2"}})
	if err != nil {
		t.Fatal(err)
	}
	mgr.Remove(match.ID)
	if _, ok := mgr.Get(match.ID); ok {
		t.Fatal("expected match to be gone after Remove")
	}
}
