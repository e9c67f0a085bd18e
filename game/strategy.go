package game

import (
	"sort"

	"github.com/minaorangina/palace/deck"
)

// TurnView is what the current player knows when choosing a move.
// Unseen cards are masked: only their count is visible.
type TurnView struct {
	PlayerID  string
	Zone      Zone
	Cards     []deck.Card
	Pile      []deck.Card
	Mode      Mode
	Defending bool
}

// MoveSelector chooses what the current player plays.
// It returns indices into view.Cards, all of one rank, or nil to pick up the pile.
// When playing blind it returns a single index; the game reveals the card and judges it.
type MoveSelector interface {
	SelectMove(view TurnView) []int
}

// MoveSelectorFunc adapts a function to a MoveSelector
type MoveSelectorFunc func(view TurnView) []int

func (f MoveSelectorFunc) SelectMove(view TurnView) []int {
	return f(view)
}

// defencePriority is the order in which answers to an Ace attack are tried:
// block, burn, counter-attack, mirror.
var defencePriority = []deck.Rank{deck.Two, deck.Ten, deck.Ace, deck.Three}

// AutoPlayer plays every legal card of the lowest rank it holds,
// saving wild cards for later. Under attack it answers with the best defence.
type AutoPlayer struct {
	rand deck.Randomiser
}

func NewAutoPlayer(r deck.Randomiser) *AutoPlayer {
	return &AutoPlayer{rand: r}
}

func (a *AutoPlayer) SelectMove(view TurnView) []int {
	if len(view.Cards) == 0 {
		return nil
	}

	if view.Zone == Unseen {
		return []int{a.rand.Pick(view.Cards)}
	}

	legal := getLegalMoves(view.Pile, view.Cards, view.Mode)
	if len(legal) == 0 {
		return nil
	}

	groups := map[deck.Rank][]int{}
	for _, idx := range legal {
		rank := view.Cards[idx].Rank
		groups[rank] = append(groups[rank], idx)
	}

	if view.Defending {
		for _, rank := range defencePriority {
			if group, ok := groups[rank]; ok {
				return group
			}
		}
	}

	ranks := make([]int, 0, len(groups))
	for rank := range groups {
		ranks = append(ranks, int(rank))
	}
	sort.Ints(ranks)

	return groups[deck.Rank(ranks[0])]
}
