package game

import "github.com/minaorangina/palace/deck"

const (
	minPlayers      = 2
	maxPlayers      = 5
	burnNum         = 4
	numCardsInGroup = 3
	numCardsDealt   = 6
)

// wildRanks can be played whatever is on the pile.
// They are also the only answers to an Ace attack.
var wildRanks = map[deck.Rank]bool{
	deck.Two:   true,
	deck.Three: true,
	deck.Ten:   true,
	deck.Ace:   true,
}

func isWild(c deck.Card) bool {
	return wildRanks[c.Rank]
}

// IsLegal reports whether card may be played onto pile under mode.
func IsLegal(card deck.Card, pile []deck.Card, mode Mode) bool {
	top, ok := pileTop(pile)
	if !ok {
		return true
	}

	switch mode {
	case AceDefence:
		return isWild(card)

	case Blind:
		// an unseen card succeeds if it would beat the top card, is wild,
		// or goes low under a Seven
		return card.Rank >= top.Rank ||
			isWild(card) ||
			(top.Rank == deck.Seven && card.Rank <= deck.Seven)
	}

	if isWild(card) {
		return true
	}

	// Seven: play lower
	if top.Rank == deck.Seven {
		return card.Rank <= deck.Seven
	}

	return card.Rank >= top.Rank
}

// getLegalMoves returns the indices of the cards in toPlay that may be played
func getLegalMoves(pile, toPlay []deck.Card, mode Mode) []int {
	moves := map[int]struct{}{}
	for i, c := range toPlay {
		if IsLegal(c, pile, mode) {
			moves[i] = struct{}{}
		}
	}

	return setToIntSlice(moves)
}

// ShouldBurn reports whether pile is burnt: a Ten on top,
// or the last four cards sharing a rank.
func ShouldBurn(pile []deck.Card) bool {
	top, ok := pileTop(pile)
	if !ok {
		return false
	}

	if top.Rank == deck.Ten {
		return true
	}

	if len(pile) < burnNum {
		return false
	}

	for _, c := range pile[len(pile)-burnNum:] {
		if c.Rank != top.Rank {
			return false
		}
	}

	return true
}
