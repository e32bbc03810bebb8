package lobby

import "testing"

func TestManager_RegisterAndList(t *testing.T) {
	m := NewManager()
	meta := m.Register("match-1", "x01", []string{"p1", "p2"}, 2)
	if meta.ID != "match-1" {
		t.Fatalf("expected ID match-1, got %s", meta.ID)
	}

	all := m.List("")
	if len(all) != 1 {
		t.Fatalf("expected 1 match, got %d", len(all))
	}

	x01Only := m.List("x01")
	if len(x01Only) != 1 {
		t.Fatalf("expected 1 x01 match, got %d", len(x01Only))
	}

	cricketOnly := m.List("cricket")
	if len(cricketOnly) != 0 {
		t.Fatalf("expected 0 cricket matches, got %d", len(cricketOnly))
	}
}

func TestManager_Unregister(t *testing.T) {
	m := NewManager()
	m.Register("match-1", "x01", []string{"p1", "p2"}, 2)
	m.Unregister("match-1")
	if _, ok := m.Get("match-1"); ok {
		t.Fatal("expected match to be gone after Unregister")
	}
}
