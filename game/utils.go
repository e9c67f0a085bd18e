package game

import (
	"sort"

	"github.com/minaorangina/palace/deck"
	uuid "github.com/satori/go.uuid"
)

// NewID constructs a game or player ID
func NewID() string {
	return uuid.NewV4().String()
}

func intSliceToSet(s []int) map[int]struct{} {
	set := map[int]struct{}{}
	for _, v := range s {
		set[v] = struct{}{}
	}

	return set
}

func setToIntSlice(set map[int]struct{}) []int {
	s := []int{}
	for key := range set {
		s = append(s, key)
	}

	sort.Ints(s)

	return s
}

func pileTop(pile []deck.Card) (deck.Card, bool) {
	if len(pile) == 0 {
		return deck.Card{}, false
	}
	return pile[len(pile)-1], true
}

func copyCards(cards []deck.Card) []deck.Card {
	c := make([]deck.Card, len(cards))
	copy(c, cards)
	return c
}
