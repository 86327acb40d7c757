package game

import (
	"fmt"
	"strings"
)

// Roster tracks registered players and their scores. Players join once,
// keep their join order, and are never removed mid-session.
type Roster struct {
	players []*Player
	scores  map[string]int // playerID -> score
}

func NewRoster() *Roster {
	return &Roster{scores: make(map[string]int)}
}

// Join registers a new player with a zero score. The identity must be new and
// the name unused (case-sensitive).
func (r *Roster) Join(id, name, handle string) error {
	if r.ByID(id) != nil {
		return ErrPlayerExists
	}
	if r.ByName(name) != nil {
		return ErrNameTaken
	}
	r.players = append(r.players, &Player{ID: id, Name: name, Handle: handle})
	r.scores[id] = 0
	return nil
}

func (r *Roster) ByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Roster) ByName(name string) *Player {
	for _, p := range r.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Players returns the roster in join order.
func (r *Roster) Players() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *Roster) Len() int {
	return len(r.players)
}

func (r *Roster) Score(id string) (int, bool) {
	score, ok := r.scores[id]
	return score, ok
}

// AdjustScore adds delta (possibly negative) to the player's score.
func (r *Roster) AdjustScore(id string, delta int) error {
	if _, ok := r.scores[id]; !ok {
		return ErrUnknownPlayer
	}
	r.scores[id] += delta
	return nil
}

// SetScore replaces the player's score outright.
func (r *Roster) SetScore(id string, score int) error {
	if _, ok := r.scores[id]; !ok {
		return ErrUnknownPlayer
	}
	r.scores[id] = score
	return nil
}

// RenderScores lists "name: score" per player, in join order.
func (r *Roster) RenderScores() string {
	var sb strings.Builder
	for _, p := range r.players {
		fmt.Fprintf(&sb, "%s: %d\n", p.Name, r.scores[p.ID])
	}
	return sb.String()
}
