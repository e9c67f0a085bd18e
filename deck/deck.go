package deck

// Deck represents a deck of cards.
// Cards are dealt from the end of the slice.
type Deck []Card

// New creates an ordered 52 card deck
func New() Deck {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards using r
func (d *Deck) Shuffle(r Randomiser) {
	r.Shuffle(*d)
}

// Deal deals n number of cards from the deck.
// If the deck holds fewer than n cards, it deals what is left.
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n <= 0 {
		return []Card{}
	}
	if n > numCardsInDeck {
		n = numCardsInDeck
	}
	startingIndex := numCardsInDeck - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return dealt
}

// Draw takes the top card. ok is false if the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	last := len(*d) - 1
	card = (*d)[last]
	*d = (*d)[:last]
	return card, true
}
