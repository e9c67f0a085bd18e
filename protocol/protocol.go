package protocol

import (
	"fmt"

	"github.com/minaorangina/palace/deck"
)

type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// Event is a single thing that happened during a game.
// The game never prints; sinks decide what to do with events.
type Event struct {
	Type     EventType `json:"type"`
	TurnNum  int       `json:"turn"`
	PlayerID string    `json:"playerID,omitempty"`
	Name     string    `json:"name,omitempty"`
	Message  string    `json:"message"`
	// Zone is the zone the player is playing from (hand, seen, unseen)
	Zone            string      `json:"zone,omitempty"`
	Cards           []deck.Card `json:"cards,omitempty"`
	Target          *Player     `json:"target,omitempty"`
	Count           int         `json:"count,omitempty"`
	PileTop         *deck.Card  `json:"pileTop,omitempty"`
	PileSize        int         `json:"pileSize"`
	DeckCount       int         `json:"deckCount"`
	FinishedPlayers []Player    `json:"finishedPlayers,omitempty"`
}

type EventType int

const (
	Null EventType = iota
	Setup
	Turn
	Play
	SkipTurn
	SkipsQueued
	Attack
	CounterAttack
	Block
	Mirror
	Burn
	BlindFailure
	PickUp
	Replenish
	PlayerFinished
	GameOver
)

var EventNames = map[EventType]string{
	Null:           "Null",
	Setup:          "Setup",
	Turn:           "Turn",
	Play:           "Play",
	SkipTurn:       "SkipTurn",
	SkipsQueued:    "SkipsQueued",
	Attack:         "Attack",
	CounterAttack:  "CounterAttack",
	Block:          "Block",
	Mirror:         "Mirror",
	Burn:           "Burn",
	BlindFailure:   "BlindFailure",
	PickUp:         "PickUp",
	Replenish:      "Replenish",
	PlayerFinished: "PlayerFinished",
	GameOver:       "GameOver",
}

var NameToEvent = map[string]EventType{
	"Null":           Null,
	"Setup":          Setup,
	"Turn":           Turn,
	"Play":           Play,
	"SkipTurn":       SkipTurn,
	"SkipsQueued":    SkipsQueued,
	"Attack":         Attack,
	"CounterAttack":  CounterAttack,
	"Block":          Block,
	"Mirror":         Mirror,
	"Burn":           Burn,
	"BlindFailure":   BlindFailure,
	"PickUp":         PickUp,
	"Replenish":      Replenish,
	"PlayerFinished": PlayerFinished,
	"GameOver":       GameOver,
}

func (e EventType) String() string {
	return EventNames[e]
}

// MarshalText lets events serialise with readable type names
func (e EventType) MarshalText() ([]byte, error) {
	name, ok := EventNames[e]
	if !ok {
		return nil, fmt.Errorf("unknown event type %d", int(e))
	}
	return []byte(name), nil
}

func (e *EventType) UnmarshalText(text []byte) error {
	et, ok := NameToEvent[string(text)]
	if !ok {
		return fmt.Errorf("unknown event type %q", string(text))
	}
	*e = et
	return nil
}
