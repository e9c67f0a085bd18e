package deck

import "fmt"

// Rank represents a rank in a deck of cards.
// Ranks are ordered by value, Two being the lowest and Ace the highest.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = map[Rank]string{
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

// Suit represents a suit in a deck of cards. Suits are cosmetic.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitNames = []string{"♣", "♦", "♥", "♠"}

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return suitNames[s]
}

// Card represents a playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a card. It panics if rank or suit is out of range.
func NewCard(rank Rank, suit Suit) Card {
	if rank < Two || rank > Ace || suit < Clubs || suit > Spades {
		panic(fmt.Sprintf("card out of range: rank %d, suit %d", rank, suit))
	}
	return Card{Rank: rank, Suit: suit}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Equal reports whether two cards have the same rank.
// The suit plays no part in any rule, so it is ignored.
func (c Card) Equal(other Card) bool {
	return c.Rank == other.Rank
}

// Less orders cards by rank
func (c Card) Less(other Card) bool {
	return c.Rank < other.Rank
}
