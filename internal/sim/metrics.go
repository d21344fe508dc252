package sim

import (
	"errors"

	"cluedo-sim/internal/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for cluedo_games_total.
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// Failure reasons for cluedo_game_failures_total.
const (
	ReasonIncorrectAccusation = "incorrect_accusation"
	ReasonTurnLimit           = "turn_limit"
	ReasonOther               = "other"
)

// Metrics holds the collectors a Runner updates after every game.
type Metrics struct {
	games    *prometheus.CounterVec
	turns    *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the simulation collectors on reg. Passing nil uses a
// fresh private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cluedo_games_total",
			Help: "Completed games by tested strategy and whether the tested seat won.",
		}, []string{"strategy", "outcome"}),
		turns: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cluedo_game_turns",
			Help:    "Turns taken by completed games, including the final accusation.",
			Buckets: prometheus.ExponentialBuckets(4, 2, 8),
		}, []string{"strategy"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cluedo_game_failures_total",
			Help: "Games that ended in an error.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) observe(strategy string, res game.Result) {
	outcome := OutcomeLoss
	if res.TestedWon {
		outcome = OutcomeWin
	}
	m.games.WithLabelValues(strategy, outcome).Inc()
	m.turns.WithLabelValues(strategy).Observe(float64(res.Turns))
}

func (m *Metrics) fail(err error) {
	m.failures.WithLabelValues(failureReason(err)).Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, game.ErrIncorrectAccusation):
		return ReasonIncorrectAccusation
	case errors.Is(err, game.ErrTurnLimit):
		return ReasonTurnLimit
	default:
		return ReasonOther
	}
}
