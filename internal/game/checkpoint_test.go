package game

import "testing"

func TestCheckpoint_RoundTrip(t *testing.T) {
	m := newTestMatch(t, Rules{StartingScore: 501, LegsToWin: 1})
	throwDart(t, m, 20, 3)

	data, err := m.Checkpoint()
	if err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	restored, err := RestoreMatch(data)
	if err != nil {
		t.Fatalf("RestoreMatch: %v", err)
	}

	if restored.ID != m.ID {
		t.Fatalf("expected matching ID, got %s vs %s", restored.ID, m.ID)
	}
	if restored.Phase != m.Phase {
		t.Fatalf("expected matching phase, got %s vs %s", restored.Phase, m.Phase)
	}
	if len(restored.Players) != len(m.Players) {
		t.Fatalf("expected %d players, got %d", len(m.Players), len(restored.Players))
	}
	if restored.Players[0].Score != m.Players[0].Score {
		t.Fatalf("expected matching player score, got %d vs %d", restored.Players[0].Score, m.Players[0].Score)
	}
}
