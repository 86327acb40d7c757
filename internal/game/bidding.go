package game

import (
	"sort"
	"strconv"
	"strings"
)

// NextBidder resolves who must act next in a sealed-bid auction round. Pure:
// the answer depends only on the arguments.
//
// Players are traversed in (score ascending, name ascending) order, starting
// right after the current bidder and wrapping around. A player is eligible if
// they have not passed and can cover the bid; a score exactly equal to the bid
// only counts when the current bidder is not already all-in at that amount (an
// all-in bid cannot be merely matched).
func NextBidder(current Player, bid int, scores map[Player]int, passed map[Player]bool) (Player, bool) {
	type entry struct {
		player Player
		score  int
	}
	players := make([]entry, 0, len(scores))
	for player, score := range scores {
		players = append(players, entry{player, score})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].score != players[j].score {
			return players[i].score < players[j].score
		}
		return players[i].player.Name < players[j].player.Name
	})

	// Players are the same iff their IDs match, so both the current bidder
	// and the pass set resolve by ID.
	passedIDs := make(map[string]bool, len(passed))
	for player := range passed {
		passedIDs[player.ID] = true
	}

	pos := -1
	for i, e := range players {
		if e.player.ID == current.ID {
			pos = i
			break
		}
	}
	if pos == -1 {
		return Player{}, false
	}
	allIn := players[pos].score == bid

	canBid := func(e entry) bool {
		if passedIDs[e.player.ID] {
			return false
		}
		if e.score < bid {
			return false
		}
		if e.score > bid {
			return true
		}
		return !allIn
	}

	for i := 1; i < len(players); i++ {
		e := players[(pos+i)%len(players)]
		if canBid(e) {
			return e.player, true
		}
	}
	return Player{}, false
}

var (
	allInBids = []string{"all-in", "all in", "allin"}
	passBids  = []string{"pass"}
)

// ParseBid turns a player's bid text into an amount: all-in aliases mean the
// player's whole score, pass aliases mean -1. No legality checking here.
func ParseBid(text string, score int) (int, error) {
	bid := strings.ToLower(strings.TrimSpace(text))
	for _, alias := range allInBids {
		if bid == alias {
			return score, nil
		}
	}
	for _, alias := range passBids {
		if bid == alias {
			return -1, nil
		}
	}
	return strconv.Atoi(bid)
}
