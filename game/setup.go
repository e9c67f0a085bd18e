package game

import (
	"fmt"
	"sort"

	"github.com/minaorangina/palace/deck"
	"github.com/minaorangina/palace/protocol"
)

var ErrInvalidSeenChoice = fmt.Errorf("%w: must choose %d distinct hand cards to place face up", ErrInvalidConfiguration, numCardsInGroup)

// SeenChooser decides which of the six dealt cards a player places face up
type SeenChooser interface {
	ChooseSeen(player protocol.Player, hand []deck.Card) []int
}

type SeenChooserFunc func(player protocol.Player, hand []deck.Card) []int

func (f SeenChooserFunc) ChooseSeen(player protocol.Player, hand []deck.Card) []int {
	return f(player, hand)
}

// LowestSeen places the three lowest cards face up
var LowestSeen SeenChooser = SeenChooserFunc(lowestSeen)

func lowestSeen(_ protocol.Player, hand []deck.Card) []int {
	indices := make([]int, len(hand))
	for i := range hand {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return hand[indices[a]].Less(hand[indices[b]])
	})

	if len(indices) > numCardsInGroup {
		indices = indices[:numCardsInGroup]
	}
	sort.Ints(indices)

	return indices
}

// Deal deals three unseen cards to each player, then six hand cards each,
// and lets chooser move three hand cards face up.
func Deal(d *deck.Deck, players []protocol.Player, chooser SeenChooser) (map[string]*PlayerCards, error) {
	needed := len(players) * (numCardsInGroup + numCardsDealt)
	if len(*d) < needed {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrDeckTooSmall, needed, len(*d))
	}

	playerCards := map[string]*PlayerCards{}
	for _, info := range players {
		playerCards[info.PlayerID] = NewPlayerCards(nil, nil, d.Deal(numCardsInGroup))
	}

	for _, info := range players {
		playerCards[info.PlayerID].Hand = d.Deal(numCardsDealt)
	}

	for _, info := range players {
		pc := playerCards[info.PlayerID]
		choice := chooser.ChooseSeen(info, copyCards(pc.Hand))
		if !validSeenChoice(choice, len(pc.Hand)) {
			return nil, fmt.Errorf("player %q: %w", info.PlayerID, ErrInvalidSeenChoice)
		}
		pc.Seen = pc.take(Hand, choice)
	}

	return playerCards, nil
}

func validSeenChoice(choice []int, handSize int) bool {
	if len(choice) != numCardsInGroup {
		return false
	}
	set := intSliceToSet(choice)
	if len(set) != numCardsInGroup {
		return false
	}
	for idx := range set {
		if idx < 0 || idx >= handSize {
			return false
		}
	}
	return true
}
