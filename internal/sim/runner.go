// Package sim plays many independent games in parallel and aggregates how a
// tested strategy fared against its opponents.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"cluedo-sim/internal/card"
	"cluedo-sim/internal/game"
	"cluedo-sim/internal/player"

	"github.com/sirupsen/logrus"
)

// Options controls a batch of games.
type Options struct {
	Players   int
	Trials    int
	Workers   int // 0 means runtime.NumCPU()
	TurnLimit int // 0 means game.DefaultTurnLimit
	Opponents []player.Strategy
}

// Summary aggregates the games a Runner completed.
type Summary struct {
	Strategy   string
	Players    int
	Games      int
	TestedWins int
	MinTurns   int
	MaxTurns   int
	TotalTurns int
	Elapsed    time.Duration
}

// WinRate is the fraction of completed games won by the tested seat.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TestedWins) / float64(s.Games)
}

func (s Summary) MeanTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

func (s *Summary) add(res game.Result) {
	if s.Games == 0 || res.Turns < s.MinTurns {
		s.MinTurns = res.Turns
	}
	s.MaxTurns = max(s.MaxTurns, res.Turns)
	s.TotalTurns += res.Turns
	s.Games++
	if res.TestedWon {
		s.TestedWins++
	}
}

// Runner plays batches of games on a bounded pool of goroutines.
type Runner struct {
	deck    *card.Deck
	opts    Options
	log     logrus.FieldLogger
	metrics *Metrics
}

func NewRunner(deck *card.Deck, opts Options, log logrus.FieldLogger, metrics *Metrics) *Runner {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if len(opts.Opponents) == 0 {
		opts.Opponents = []player.Strategy{player.Random}
	}
	return &Runner{deck: deck, opts: opts, log: log, metrics: metrics}
}

type trial struct {
	result game.Result
	err    error
	played bool
}

// Run plays opts.Trials games with tested at a random seat of each. Per-game
// seeds are drawn from seed up front, so the summary does not depend on the
// number of workers. The first failed game cancels the rest of the batch and
// its error is returned with the summary of the games that did complete.
func (r *Runner) Run(ctx context.Context, tested player.Strategy, seed int64) (Summary, error) {
	summary := Summary{Strategy: tested.Name, Players: r.opts.Players}
	if err := game.ValidatePlayerCount(r.opts.Players); err != nil {
		return summary, err
	}

	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, r.opts.Trials)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	trials := make([]trial, r.opts.Trials)
	sem := make(chan struct{}, r.opts.Workers)
	var wg sync.WaitGroup

dispatch:
	for i := range trials {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			res, err := r.playOne(tested, seeds[i])
			trials[i] = trial{result: res, err: err, played: true}
			if err != nil {
				cancel()
			}
		}()
	}
	wg.Wait()
	summary.Elapsed = time.Since(start)

	for _, t := range trials {
		if !t.played {
			continue
		}
		if t.err != nil {
			r.metrics.fail(t.err)
			return summary, t.err
		}
		summary.add(t.result)
		r.metrics.observe(tested.Name, t.result)
	}
	if err := ctx.Err(); err != nil && summary.Games < r.opts.Trials {
		return summary, err
	}

	r.log.WithFields(logrus.Fields{
		"strategy": tested.Name,
		"players":  r.opts.Players,
		"games":    summary.Games,
	}).Infof("Batch finished in %s, win rate %.1f%%.", summary.Elapsed.Round(time.Millisecond), 100*summary.WinRate())
	return summary, nil
}

func (r *Runner) playOne(tested player.Strategy, seed int64) (game.Result, error) {
	g, err := game.NewBuilder(r.deck, r.log, rand.New(rand.NewSource(seed))).
		WithPlayers(r.opts.Players).
		WithOpponents(r.opts.Opponents...).
		WithTurnLimit(r.opts.TurnLimit).
		Build()
	if err != nil {
		return game.Result{}, err
	}
	res, err := g.Play(tested)
	if err != nil {
		return res, fmt.Errorf("seed %d: %w", seed, err)
	}
	return res, nil
}
