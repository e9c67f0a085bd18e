package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/palace/engine"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrDuplicateGameID = errors.New("game ID already recorded")
)

type GameStore interface {
	AddResult(res engine.Result) error
	FindResult(gameID string) (engine.Result, error)
	Results() []engine.Result
	Summary() Summary
}

// InMemoryGameStore maps game id to the result of that game.
// It is safe for concurrent use.
type InMemoryGameStore struct {
	mu      sync.RWMutex
	results map[string]engine.Result
	order   []string
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		results: map[string]engine.Result{},
		order:   []string{},
	}
}

func (s *InMemoryGameStore) AddResult(res engine.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[res.GameID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, res.GameID)
	}

	s.results[res.GameID] = res
	s.order = append(s.order, res.GameID)
	return nil
}

func (s *InMemoryGameStore) FindResult(gameID string) (engine.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[gameID]
	if !ok {
		return engine.Result{}, fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	return res, nil
}

// Results returns every result in the order it was added
func (s *InMemoryGameStore) Results() []engine.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]engine.Result, 0, len(s.order))
	for _, id := range s.order {
		results = append(results, s.results[id])
	}
	return results
}

// Summary totals a batch of games
type Summary struct {
	Games        int            `json:"games"`
	Completed    int            `json:"completed"`
	Aborted      int            `json:"aborted"`
	AverageTurns float64        `json:"average_turns"`
	Wins         map[string]int `json:"wins"`
	Losses       map[string]int `json:"losses"`
}

// Summary totals wins and losses by player name.
// AverageTurns covers completed games only.
func (s *InMemoryGameStore) Summary() Summary {
	sum := Summary{
		Wins:   map[string]int{},
		Losses: map[string]int{},
	}

	totalTurns := 0
	for _, res := range s.Results() {
		sum.Games++
		if res.Aborted {
			sum.Aborted++
			continue
		}

		sum.Completed++
		totalTurns += res.Turns
		if len(res.FinishedPlayers) > 0 {
			sum.Wins[res.FinishedPlayers[0].Name]++
		}
		sum.Losses[res.Loser.Name]++
	}

	if sum.Completed > 0 {
		sum.AverageTurns = float64(totalTurns) / float64(sum.Completed)
	}

	return sum
}
