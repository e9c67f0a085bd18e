package players

import (
	"github.com/minaorangina/palace/deck"
	"github.com/minaorangina/palace/game"
	"github.com/minaorangina/palace/protocol"
)

// Seat is anyone who can make a player's decisions
type Seat interface {
	game.MoveSelector
	game.SeenChooser
}

// Seats routes each decision to whoever sits in the acting player's seat.
// Empty seats are played by the fallback selector and game.LowestSeen.
type Seats struct {
	seats    map[string]Seat
	fallback game.MoveSelector
}

func NewSeats(fallback game.MoveSelector) *Seats {
	return &Seats{seats: map[string]Seat{}, fallback: fallback}
}

func (s *Seats) Sit(playerID string, seat Seat) {
	s.seats[playerID] = seat
}

func (s *Seats) SelectMove(view game.TurnView) []int {
	if seat, ok := s.seats[view.PlayerID]; ok {
		return seat.SelectMove(view)
	}
	return s.fallback.SelectMove(view)
}

func (s *Seats) ChooseSeen(player protocol.Player, hand []deck.Card) []int {
	if seat, ok := s.seats[player.PlayerID]; ok {
		return seat.ChooseSeen(player, hand)
	}
	return game.LowestSeen.ChooseSeen(player, hand)
}
