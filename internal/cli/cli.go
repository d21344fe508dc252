package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"cluedo-sim/internal/ai"
	"cluedo-sim/internal/card"
	"cluedo-sim/internal/config"
	"cluedo-sim/internal/game"
	"cluedo-sim/internal/player"
	"cluedo-sim/internal/sim"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var ErrUsage = errors.New("invalid usage")

// CLI manages all command-line interactions.
type CLI struct {
	log     *logrus.Logger
	out     io.Writer
	cfg     *config.GameConfig
	deck    *card.Deck
	rand    *rand.Rand
	metrics *sim.Metrics
}

// NewCLI creates a new command-line interface manager. Every command draws
// its seed from rng, so a fixed seed replays a whole session.
func NewCLI(log *logrus.Logger, out io.Writer, cfg *config.GameConfig, rng *rand.Rand, reg prometheus.Registerer) (*CLI, error) {
	deck, err := cfg.Deck()
	if err != nil {
		return nil, err
	}
	return &CLI{
		log:     log,
		out:     out,
		cfg:     cfg,
		deck:    deck,
		rand:    rng,
		metrics: sim.NewMetrics(reg),
	}, nil
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		c.printUsage()
		return fmt.Errorf("%w: no command provided", ErrUsage)
	}
	if args[0] == "shell" {
		return c.runShell(ctx)
	}
	return c.dispatch(ctx, args)
}

func (c *CLI) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "simulate":
		if len(args) < 3 || len(args) > 4 {
			c.printUsage()
			return fmt.Errorf("%w: simulate <players> <strategy> [trials]", ErrUsage)
		}
		players, err := parsePlayers(args[1])
		if err != nil {
			return err
		}
		trials := c.cfg.Simulation.Trials
		if len(args) == 4 {
			if trials, err = strconv.Atoi(args[3]); err != nil || trials < 1 {
				return fmt.Errorf("%w: trials must be a positive number, got %q", ErrUsage, args[3])
			}
		}
		return c.runSimulation(ctx, players, args[2], trials)
	case "play":
		if len(args) != 3 {
			c.printUsage()
			return fmt.Errorf("%w: play <players> <strategy>", ErrUsage)
		}
		players, err := parsePlayers(args[1])
		if err != nil {
			return err
		}
		return c.runGame(players, args[2])
	case "strategies":
		RenderStrategies(c.out, ai.Strategies(), c.cfg.Simulation.Opponents)
		return nil
	default:
		c.printUsage()
		return fmt.Errorf("%w: unknown command '%s'", ErrUsage, args[0])
	}
}

func (c *CLI) opponents() ([]player.Strategy, error) {
	return ai.LookupAll(c.cfg.Simulation.Opponents)
}

func (c *CLI) runSimulation(ctx context.Context, players int, name string, trials int) error {
	tested, err := ai.Lookup(name)
	if err != nil {
		return err
	}
	opponents, err := c.opponents()
	if err != nil {
		return err
	}

	C.Header.Fprintf(c.out, "--- Simulating %d games: %s with %d players ---\n", trials, tested.Name, players)
	runner := sim.NewRunner(c.deck, sim.Options{
		Players:   players,
		Trials:    trials,
		Workers:   c.cfg.Simulation.Workers,
		TurnLimit: c.cfg.Simulation.TurnLimit,
		Opponents: opponents,
	}, c.log, c.metrics)

	summary, err := runner.Run(ctx, tested, c.rand.Int63())
	RenderSummary(c.out, summary)
	return err
}

func (c *CLI) runGame(players int, name string) error {
	tested, err := ai.Lookup(name)
	if err != nil {
		return err
	}
	opponents, err := c.opponents()
	if err != nil {
		return err
	}

	builder := game.NewBuilder(c.deck, c.log, rand.New(rand.NewSource(c.rand.Int63())))
	builder.EventManager().Subscribe(NewSimulationRenderer(c.out, c.deck))
	g, err := builder.
		WithPlayers(players).
		WithOpponents(opponents...).
		WithTurnLimit(c.cfg.Simulation.TurnLimit).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build game: %w", err)
	}

	result, err := g.Play(tested)
	if err != nil {
		return err
	}
	outcome := "lost"
	if result.TestedWon {
		outcome = "won"
	}
	c.log.WithFields(logrus.Fields{
		"game":   result.GameID,
		"winner": result.Winner,
		"turns":  result.Turns,
	}).Infof("Tested seat %d %s.", result.TestedSeat, outcome)

	// Show the winner's reasoning, then the tested seat's if someone else won.
	RenderAgentNotes(c.out, g.Agent(result.Winner))
	if result.Winner != result.TestedSeat {
		RenderAgentNotes(c.out, g.Agent(result.TestedSeat))
	}
	return nil
}

func parsePlayers(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: player count must be a number, got %q", ErrUsage, arg)
	}
	if err := game.ValidatePlayerCount(n); err != nil {
		return 0, err
	}
	return n, nil
}
