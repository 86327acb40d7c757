package game

import "errors"

var (
	ErrPlayerExists   = errors.New("player already exists")
	ErrNameTaken      = errors.New("player name already taken")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownTopic   = errors.New("unknown topic")
	ErrCostNotOffered = errors.New("cost not offered")
)

// Phase names the single state the session is in. Question-carrying phases
// (BeforeQuestion through Answering) read the live question payload held on
// the session.
type Phase string

const (
	PhaseWaitingForPlayers  Phase = "WaitingForPlayers"
	PhasePause              Phase = "Pause"
	PhaseWaitingForTopic    Phase = "WaitingForTopic"
	PhaseWaitingForQuestion Phase = "WaitingForQuestion"
	PhaseBeforeQuestion     Phase = "BeforeQuestion"
	PhaseFalsestart         Phase = "Falsestart"
	PhaseCanAnswer          Phase = "CanAnswer"
	PhaseAnswering          Phase = "Answering"
	PhaseWaitingForAuction  Phase = "WaitingForAuction"
	PhaseCatInBagPlayer     Phase = "CatInBagPlayer"
	PhaseCatInBagCost       Phase = "CatInBagCost"
)

// Delay is an abstract duration bucket; the transport maps buckets to real
// durations.
type Delay string

const (
	DelayShort  Delay = "short"
	DelayMedium Delay = "medium"
	DelayLong   Delay = "long"
)

// Kind classifies how a board cell resolves once selected.
type Kind int

const (
	KindAutomatic Kind = iota
	KindManual
	KindAuction
	KindCatInBag
)

// Player is a registered participant. Two players are the same iff their IDs
// match; names are display-only (but unique within a session).
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle,omitempty"`
}
