package deck

import (
	"math/rand"
	"time"
)

// Randomiser is the source of every random decision in a game:
// the initial shuffle and the choice of an unseen card.
type Randomiser interface {
	Shuffle(cards []Card)
	// Pick returns the index of one card chosen uniformly from cards.
	// cards must not be empty.
	Pick(cards []Card) int
}

type seededRandomiser struct {
	r *rand.Rand
}

// NewRandomiser returns a Randomiser seeded with seed.
// A zero seed uses the current time.
func NewRandomiser(seed int64) Randomiser {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seededRandomiser{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandomiser) Shuffle(cards []Card) {
	s.r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func (s *seededRandomiser) Pick(cards []Card) int {
	return s.r.Intn(len(cards))
}
