package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/palace/config"
	"github.com/minaorangina/palace/deck"
	"github.com/minaorangina/palace/engine"
	"github.com/minaorangina/palace/game"
	"github.com/minaorangina/palace/players"
	"github.com/minaorangina/palace/protocol"
	"github.com/minaorangina/palace/store"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "palace",
		Usage: "play the Palace card game against computer players",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play one game and print what happens",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "text, json, log or none"},
					&cli.BoolFlag{Name: "human", Usage: "take the first seat yourself"},
				}, commonFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, logger, err := setup(cmd)
					if err != nil {
						return err
					}
					defer logger.Sync()

					var human *humanSeat
					if cmd.Bool("human") {
						human = &humanSeat{in: in, out: out}
					}

					return play(ctx, cfg, logger, out, human)
				},
			},
			{
				Name:  "simulate",
				Usage: "play many games in parallel and summarise the results",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Usage: "number of games"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "games played at once"},
					&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON"},
				}, commonFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, logger, err := setup(cmd)
					if err != nil {
						return err
					}
					defer logger.Sync()

					sum, err := simulate(ctx, cfg, logger)
					if err != nil {
						return err
					}
					return printSummary(out, sum, cfg.Players, cmd.Bool("json"))
				},
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "players", Aliases: []string{"p"}, Usage: "number of players (2-5)"},
		&cli.Int64Flag{Name: "seed", Usage: "random seed, 0 seeds from the clock"},
		&cli.IntFlag{Name: "max-turns", Usage: "abandon a game after this many turns"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		&cli.BoolFlag{Name: "dev", Usage: "human readable development logging"},
	}
}

// setup loads the environment config and applies any flags set on the command line
func setup(cmd *cli.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	if cmd.IsSet("players") {
		cfg.Players = cmd.Int("players")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("max-turns") {
		cfg.MaxTurns = cmd.Int("max-turns")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("games") {
		cfg.Games = cmd.Int("games")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	logger, err := initLogger(cfg.LogLevel, cmd.Bool("dev"))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

func initLogger(levelName string, dev bool) (*zap.Logger, error) {
	var level zapcore.Level
	switch levelName {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if dev {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// humanSeat puts a person at a terminal in the first seat
type humanSeat struct {
	in  io.Reader
	out io.Writer
}

func play(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer, human *humanSeat) error {
	var sinks []engine.Sink
	switch cfg.Output {
	case config.OutputText:
		sinks = append(sinks, engine.NewTextSink(out))
	case config.OutputJSON:
		sinks = append(sinks, engine.NewJSONSink(out))
	case config.OutputLog:
		sinks = append(sinks, engine.NewLogSink(logger))
	}

	_, err := runGame(ctx, cfg, cfg.Seed, sinks, logger, human)
	return err
}

// simulate plays cfg.Games games, cfg.Workers at a time.
// Game i is seeded with the base seed plus i, so a batch can be replayed.
func simulate(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Summary, error) {
	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	logger.Info("simulation started",
		zap.Int("games", cfg.Games),
		zap.Int("workers", cfg.Workers),
		zap.Int64("base_seed", baseSeed),
	)

	results := store.NewInMemoryGameStore()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < cfg.Games; i++ {
		seed := baseSeed + int64(i)
		g.Go(func() error {
			res, err := runGame(ctx, cfg, seed, nil, logger, nil)
			if err != nil && !errors.Is(err, engine.ErrTurnLimit) {
				return fmt.Errorf("game with seed %d: %w", seed, err)
			}
			return results.AddResult(res)
		})
	}

	if err := g.Wait(); err != nil {
		return store.Summary{}, err
	}

	sum := results.Summary()
	logger.Info("simulation finished",
		zap.Int("completed", sum.Completed),
		zap.Int("aborted", sum.Aborted),
		zap.Float64("average_turns", sum.AverageTurns),
	)

	return sum, nil
}

func runGame(ctx context.Context, cfg config.Config, seed int64, sinks []engine.Sink, logger *zap.Logger, human *humanSeat) (engine.Result, error) {
	infos := []protocol.Player{}
	for i := 1; i <= cfg.Players; i++ {
		infos = append(infos, protocol.Player{PlayerID: game.NewID(), Name: fmt.Sprintf("Player %d", i)})
	}

	random := deck.NewRandomiser(seed)
	seats := players.NewSeats(game.NewAutoPlayer(random))
	if human != nil {
		seats.Sit(infos[0].PlayerID, players.NewConsolePlayer(infos[0], human.in, human.out))
	}

	palace, err := game.NewPalace(game.PalaceOpts{
		Players:     infos,
		Random:      random,
		Selector:    seats,
		SeenChooser: seats,
		Logger:      logger,
	})
	if err != nil {
		return engine.Result{}, fmt.Errorf("could not initialise a new game: %w", err)
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		Game:     palace,
		Sinks:    sinks,
		Logger:   logger,
		MaxTurns: cfg.MaxTurns,
	})
	if err != nil {
		return engine.Result{}, err
	}

	return ge.Run(ctx)
}

func printSummary(w io.Writer, sum store.Summary, players int, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	if err := engine.SendText(w, "Games played: %d (%d completed, %d abandoned)\n", sum.Games, sum.Completed, sum.Aborted); err != nil {
		return err
	}
	if err := engine.SendText(w, "Average turns per completed game: %.1f\n", sum.AverageTurns); err != nil {
		return err
	}
	for i := 1; i <= players; i++ {
		name := fmt.Sprintf("Player %d", i)
		wins, losses := sum.Wins[name], sum.Losses[name]
		if err := engine.SendText(w, "%s: %d wins, %d losses\n", name, wins, losses); err != nil {
			return err
		}
	}

	return nil
}
