package sim

import (
	"context"
	"errors"
	"io"
	"testing"

	"cluedo-sim/internal/ai"
	"cluedo-sim/internal/card"
	"cluedo-sim/internal/config"
	"cluedo-sim/internal/game"
	"cluedo-sim/internal/player"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
)

func testDeck(t *testing.T) *card.Deck {
	t.Helper()
	deck, err := config.Default().Deck()
	if err != nil {
		t.Fatalf("Failed to build deck: %v", err)
	}
	return deck
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// wrongAccuser names a card from its own hand, so every accusation is false.
var wrongAccuser = player.Strategy{Name: "wrong", New: func(seat player.Seat) player.Agent {
	return wrongAgent{first: seat.Hand[0]}
}}

type wrongAgent struct{ first card.Card }

func (w wrongAgent) MakeGuess() card.Guess {
	g := card.Accuse(0, 0, 0)
	switch w.first.Category {
	case card.CategorySuspect:
		g.Suspect, _ = w.first.Suspect()
	case card.CategoryWeapon:
		g.Weapon, _ = w.first.Weapon()
	case card.CategoryRoom:
		g.Room, _ = w.first.Room()
	}
	return g
}
func (wrongAgent) HandleResponse(int, card.Guess, *player.Response) {}

func TestRunnerPlaysEveryTrial(t *testing.T) {
	// GIVEN a runner for 4-player games against random opponents
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	runner := NewRunner(testDeck(t), Options{Players: 4, Trials: 200, Workers: 4}, quietLogger(), metrics)

	// WHEN the elimination strategy is simulated
	summary, err := runner.Run(context.Background(), ai.Elimination, 7)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// THEN every game completes and is won by the tested seat
	if summary.Games != 200 || summary.TestedWins != 200 || summary.WinRate() != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.MinTurns <= 0 || summary.MinTurns > summary.MaxTurns || summary.MaxTurns > game.DefaultTurnLimit {
		t.Errorf("turn bounds out of order: %+v", summary)
	}
	if mean := summary.MeanTurns(); mean < float64(summary.MinTurns) || mean > float64(summary.MaxTurns) {
		t.Errorf("mean turns %.2f outside [%d, %d]", mean, summary.MinTurns, summary.MaxTurns)
	}

	// AND the metrics agree
	if got := testutil.ToFloat64(metrics.games.WithLabelValues("elimination", OutcomeWin)); got != 200 {
		t.Errorf("expected 200 wins recorded, got %v", got)
	}
	if got := testutil.CollectAndCount(metrics.turns); got != 1 {
		t.Errorf("expected one turns series, got %d", got)
	}
	if got := testutil.CollectAndCount(metrics.failures); got != 0 {
		t.Errorf("expected no failures, got %d series", got)
	}
}

func TestRunnerIsReproducible(t *testing.T) {
	deck := testDeck(t)
	opponents := []player.Strategy{player.Random, ai.Elimination, ai.Detective}
	run := func(workers int) Summary {
		runner := NewRunner(deck, Options{Players: 5, Trials: 100, Workers: workers, Opponents: opponents}, quietLogger(), nil)
		summary, err := runner.Run(context.Background(), ai.Detective, 42)
		if err != nil {
			t.Fatalf("Run with %d workers failed: %v", workers, err)
		}
		summary.Elapsed = 0
		return summary
	}

	// GIVEN the same seed, WHEN the batch runs serially and in parallel
	serial, parallel := run(1), run(8)

	// THEN the summaries are identical
	if serial != parallel {
		t.Errorf("expected identical summaries, got %+v and %+v", serial, parallel)
	}
}

func TestRunnerFailures(t *testing.T) {
	deck := testDeck(t)

	t.Run("an incorrect accusation aborts the batch", func(t *testing.T) {
		metrics := NewMetrics(nil)
		runner := NewRunner(deck, Options{Players: 3, Trials: 50, Workers: 2}, quietLogger(), metrics)
		_, err := runner.Run(context.Background(), wrongAccuser, 1)
		if !errors.Is(err, game.ErrIncorrectAccusation) {
			t.Fatalf("expected ErrIncorrectAccusation, got %v", err)
		}
		if got := testutil.ToFloat64(metrics.failures.WithLabelValues(ReasonIncorrectAccusation)); got != 1 {
			t.Errorf("expected one failure recorded, got %v", got)
		}
	})

	t.Run("a game that never ends hits the turn limit", func(t *testing.T) {
		metrics := NewMetrics(nil)
		runner := NewRunner(deck, Options{Players: 3, Trials: 5, TurnLimit: 30}, quietLogger(), metrics)
		_, err := runner.Run(context.Background(), player.Random, 1)
		if !errors.Is(err, game.ErrTurnLimit) {
			t.Fatalf("expected ErrTurnLimit, got %v", err)
		}
		if got := testutil.ToFloat64(metrics.failures.WithLabelValues(ReasonTurnLimit)); got != 1 {
			t.Errorf("expected one turn-limit failure, got %v", got)
		}
	})

	t.Run("the player count is checked before any game runs", func(t *testing.T) {
		runner := NewRunner(deck, Options{Players: 7, Trials: 5}, quietLogger(), nil)
		summary, err := runner.Run(context.Background(), ai.Elimination, 1)
		if !errors.Is(err, game.ErrInvalidPlayerCount) || summary.Games != 0 {
			t.Errorf("expected ErrInvalidPlayerCount and no games, got %v and %+v", err, summary)
		}
	})

	t.Run("a cancelled context stops the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		runner := NewRunner(deck, Options{Players: 3, Trials: 100, Workers: 1}, quietLogger(), nil)
		summary, err := runner.Run(ctx, ai.Elimination, 1)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if summary.Games == 100 {
			t.Error("expected the batch to stop early")
		}
	})
}
