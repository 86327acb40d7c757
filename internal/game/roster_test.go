package game

import "testing"

func TestRosterJoin(t *testing.T) {
	r := NewRoster()

	if err := r.Join("p1", "Alice", "@alice"); err != nil {
		t.Fatalf("should be able to join: %v", err)
	}
	if err := r.Join("p1", "Someone", ""); err != ErrPlayerExists {
		t.Fatalf("expected ErrPlayerExists, got %v", err)
	}
	if err := r.Join("p2", "Alice", ""); err != ErrNameTaken {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	// Names are case-sensitive.
	if err := r.Join("p2", "alice", ""); err != nil {
		t.Fatalf("differently-cased name should be allowed: %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("expected 2 players, got %d", r.Len())
	}
	players := r.Players()
	if players[0].Name != "Alice" || players[1].Name != "alice" {
		t.Fatalf("players should keep join order, got %v", players)
	}
}

func TestRosterScores(t *testing.T) {
	r := NewRoster()
	r.Join("p1", "Alice", "")

	if score, ok := r.Score("p1"); !ok || score != 0 {
		t.Fatalf("new player should start at 0, got %d (%v)", score, ok)
	}
	if err := r.AdjustScore("p1", 300); err != nil {
		t.Fatalf("should be able to adjust: %v", err)
	}
	if err := r.AdjustScore("p1", -500); err != nil {
		t.Fatalf("should be able to go negative: %v", err)
	}
	if score, _ := r.Score("p1"); score != -200 {
		t.Fatalf("expected -200, got %d", score)
	}
	if err := r.SetScore("p1", 1000); err != nil {
		t.Fatalf("should be able to set: %v", err)
	}
	if score, _ := r.Score("p1"); score != 1000 {
		t.Fatalf("expected 1000, got %d", score)
	}

	if err := r.AdjustScore("ghost", 1); err != ErrUnknownPlayer {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
	if err := r.SetScore("ghost", 1); err != ErrUnknownPlayer {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
}

func TestRosterRenderScores(t *testing.T) {
	r := NewRoster()
	r.Join("p1", "Alice", "")
	r.Join("p2", "Bob", "")
	r.AdjustScore("p2", -100)

	if got := r.RenderScores(); got != "Alice: 0\nBob: -100\n" {
		t.Fatalf("unexpected scoreboard %q", got)
	}
}
