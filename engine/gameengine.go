package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/minaorangina/palace/game"
	"github.com/minaorangina/palace/protocol"
	"go.uber.org/zap"
)

// DefaultMaxTurns bounds a game that keeps cycling through pick-ups
const DefaultMaxTurns = 5000

var (
	ErrNilGame        = errors.New("game engine requires a game")
	ErrTurnLimit      = errors.New("turn limit reached")
	ErrAlreadyStarted = errors.New("game has already started")
)

// PlayState represents the state of the current game
// Idle -> not yet run
// InProgress -> turns are being played
// Finished -> the game ended, or was abandoned
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	Finished
)

func (ps PlayState) String() string {
	if ps == Idle {
		return "idle"
	} else if ps == InProgress {
		return "inProgress"
	} else if ps == Finished {
		return "finished"
	}
	return ""
}

// Result is the outcome of one game
type Result struct {
	GameID          string            `json:"game_id"`
	Turns           int               `json:"turns"`
	FinishedPlayers []protocol.Player `json:"finished_players"`
	Loser           protocol.Player   `json:"loser"`
	Aborted         bool              `json:"aborted"`
}

type GameEngineOpts struct {
	GameID   string
	Game     *game.Palace
	Sinks    []Sink
	Logger   *zap.Logger
	MaxTurns int
}

// GameEngine drives a game of Palace to completion,
// passing every event to its sinks.
type GameEngine struct {
	id        string
	game      *game.Palace
	sink      Sink
	logger    *zap.Logger
	maxTurns  int
	playState PlayState
}

// NewGameEngine constructs a new GameEngine
func NewGameEngine(opts GameEngineOpts) (*GameEngine, error) {
	if opts.Game == nil {
		return nil, ErrNilGame
	}
	if opts.GameID == "" {
		opts.GameID = opts.Game.ID
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}

	return &GameEngine{
		id:       opts.GameID,
		game:     opts.Game,
		sink:     MultiSink(opts.Sinks),
		logger:   opts.Logger.With(zap.String("game_id", opts.GameID)),
		maxTurns: opts.MaxTurns,
	}, nil
}

func (ge *GameEngine) ID() string {
	return ge.id
}

func (ge *GameEngine) PlayState() PlayState {
	return ge.playState
}

// Run plays turns until the game is over.
// A game still going after MaxTurns turns is abandoned with ErrTurnLimit.
func (ge *GameEngine) Run(ctx context.Context) (Result, error) {
	if ge.playState != Idle {
		return Result{}, ErrAlreadyStarted
	}
	ge.playState = InProgress
	defer func() { ge.playState = Finished }()

	ge.logger.Info("game started", zap.Strings("players", playerNames(ge.game.PlayerInfo)))

	if err := ge.send(ge.game.SetupEvents()); err != nil {
		return ge.result(0), err
	}

	turns := 0
	for !ge.game.GameOver() {
		if err := ctx.Err(); err != nil {
			return ge.result(turns), err
		}
		if turns >= ge.maxTurns {
			ge.logger.Warn("turn limit reached",
				zap.Int("turns", turns),
				zap.Int("active_players", len(ge.game.ActivePlayers)),
			)
			res := ge.result(turns)
			res.Aborted = true
			return res, fmt.Errorf("%w: %d turns", ErrTurnLimit, turns)
		}

		msgs, err := ge.game.Turn()
		if err != nil {
			return ge.result(turns), fmt.Errorf("turn %d: %w", turns+1, err)
		}
		turns++

		if err := ge.send(msgs); err != nil {
			return ge.result(turns), err
		}
	}

	res := ge.result(turns)
	ge.logger.Info("game over",
		zap.Int("turns", turns),
		zap.Strings("finished_order", playerNames(res.FinishedPlayers)),
	)

	return res, nil
}

func (ge *GameEngine) send(msgs []protocol.Event) error {
	for _, m := range msgs {
		if err := ge.sink.Send(m); err != nil {
			return fmt.Errorf("sending %s event: %w", m.Type, err)
		}
	}
	return nil
}

func (ge *GameEngine) result(turns int) Result {
	res := Result{
		GameID:          ge.id,
		Turns:           turns,
		FinishedPlayers: append([]protocol.Player{}, ge.game.FinishedPlayers...),
	}
	if ge.game.GameOver() && len(res.FinishedPlayers) > 0 {
		res.Loser = res.FinishedPlayers[len(res.FinishedPlayers)-1]
	}

	return res
}

func playerNames(players []protocol.Player) []string {
	names := []string{}
	for _, p := range players {
		names = append(names, p.Name)
	}

	return names
}
