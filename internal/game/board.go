package game

import "github.com/quizdash/quizdash/internal/questions"

// Board is the per-tour matrix of topics and cost tiers. Costs move from
// available to taken exactly once and never come back within a tour.
type Board struct {
	multiplier int
	perTopic   int
	topics     []string         // tour order
	available  map[string][]int // ascending costs still on the board
	taken      map[string][]int // ascending costs already played
}

// NewBoard materializes the board for one tour: every topic starts with costs
// multiplier*1 .. multiplier*perTopic.
func NewBoard(tour questions.Tour, perTopic int) *Board {
	b := &Board{
		multiplier: tour.Multiplier,
		perTopic:   perTopic,
		available:  make(map[string][]int),
		taken:      make(map[string][]int),
	}
	for _, topic := range tour.Topics {
		costs := make([]int, 0, perTopic)
		for tier := 1; tier <= perTopic; tier++ {
			costs = append(costs, tier*tour.Multiplier)
		}
		b.topics = append(b.topics, topic.Name)
		b.available[topic.Name] = costs
	}
	return b
}

func (b *Board) Multiplier() int { return b.multiplier }

// MinCost and MaxCost bound the costs of this tour; a cat in a bag is played
// for one of the two.
func (b *Board) MinCost() int { return b.multiplier }
func (b *Board) MaxCost() int { return b.multiplier * b.perTopic }

// Take removes the cost from the topic's available set, permanently.
func (b *Board) Take(topic string, cost int) error {
	costs, ok := b.available[topic]
	if !ok {
		return ErrUnknownTopic
	}
	for i, c := range costs {
		if c == cost {
			b.available[topic] = append(costs[:i:i], costs[i+1:]...)
			b.taken[topic] = insertSorted(b.taken[topic], cost)
			return nil
		}
	}
	return ErrCostNotOffered
}

// RemainingTopics lists topics that still have at least one playable cost,
// in tour order.
func (b *Board) RemainingTopics() []string {
	var out []string
	for _, topic := range b.topics {
		if len(b.available[topic]) > 0 {
			out = append(out, topic)
		}
	}
	return out
}

// Costs returns the still-available costs for a topic, ascending.
func (b *Board) Costs(topic string) []int {
	costs := b.available[topic]
	out := make([]int, len(costs))
	copy(out, costs)
	return out
}

// Snapshot pairs every topic with the costs taken so far, for rendering the
// x-marked grid.
func (b *Board) Snapshot() ScoreTable {
	table := ScoreTable{}
	for tier := 1; tier <= b.perTopic; tier++ {
		table.Costs = append(table.Costs, tier*b.multiplier)
	}
	for _, topic := range b.topics {
		taken := make([]int, len(b.taken[topic]))
		copy(taken, b.taken[topic])
		table.Rows = append(table.Rows, ScoreRow{Topic: topic, Taken: taken})
	}
	return table
}

func insertSorted(costs []int, cost int) []int {
	for i, c := range costs {
		if cost < c {
			costs = append(costs, 0)
			copy(costs[i+1:], costs[i:])
			costs[i] = cost
			return costs
		}
	}
	return append(costs, cost)
}
