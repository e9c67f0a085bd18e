package game

import "github.com/minaorangina/palace/deck"

// PlayerCards holds a player's three zones.
// Hand is held, Seen lies face up on the table, Unseen lies face down beneath it.
type PlayerCards struct {
	Hand, Seen, Unseen []deck.Card
}

func NewPlayerCards(hand, seen, unseen []deck.Card) *PlayerCards {
	if hand == nil {
		hand = []deck.Card{}
	}
	if seen == nil {
		seen = []deck.Card{}
	}
	if unseen == nil {
		unseen = []deck.Card{}
	}

	return &PlayerCards{
		Hand:   hand,
		Seen:   seen,
		Unseen: unseen,
	}
}

// ActiveZone is derived from which zones are empty, never stored.
func (pc *PlayerCards) ActiveZone() Zone {
	switch {
	case len(pc.Hand) > 0:
		return Hand
	case len(pc.Seen) > 0:
		return Seen
	case len(pc.Unseen) > 0:
		return Unseen
	}
	return NoZone
}

// Playable returns the cards in the active zone
func (pc *PlayerCards) Playable() []deck.Card {
	return pc.zone(pc.ActiveZone())
}

// IsBlind reports whether the player can only play unseen cards
func (pc *PlayerCards) IsBlind() bool {
	return pc.ActiveZone() == Unseen
}

func (pc *PlayerCards) Empty() bool {
	return pc.ActiveZone() == NoZone
}

func (pc *PlayerCards) Count() int {
	return len(pc.Hand) + len(pc.Seen) + len(pc.Unseen)
}

func (pc *PlayerCards) zone(z Zone) []deck.Card {
	switch z {
	case Hand:
		return pc.Hand
	case Seen:
		return pc.Seen
	case Unseen:
		return pc.Unseen
	}
	return nil
}

func (pc *PlayerCards) setZone(z Zone, cards []deck.Card) {
	switch z {
	case Hand:
		pc.Hand = cards
	case Seen:
		pc.Seen = cards
	case Unseen:
		pc.Unseen = cards
	}
}

// take removes the cards at the given indices of zone z and returns them
// in index order. Indices must be valid and unique.
func (pc *PlayerCards) take(z Zone, indices []int) []deck.Card {
	cards := pc.zone(z)
	chosen := intSliceToSet(indices)

	taken := make([]deck.Card, 0, len(indices))
	kept := make([]deck.Card, 0, len(cards)-len(indices))
	for i, c := range cards {
		if _, ok := chosen[i]; ok {
			taken = append(taken, c)
			continue
		}
		kept = append(kept, c)
	}

	pc.setZone(z, kept)
	return taken
}

func playerCardsValid(cards *PlayerCards) bool {
	if cards == nil {
		return false
	}

	if len(cards.Seen) > numCardsInGroup {
		return false
	}

	if len(cards.Unseen) > numCardsInGroup {
		return false
	}

	visited := map[deck.Card]struct{}{}
	for _, group := range [][]deck.Card{cards.Hand, cards.Seen, cards.Unseen} {
		for _, c := range group {
			if _, ok := visited[c]; ok {
				return false
			}
			visited[c] = struct{}{}
		}
	}

	return true
}
