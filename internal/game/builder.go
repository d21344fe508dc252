package game

import (
	"fmt"
	"math/rand"

	"cluedo-sim/internal/card"
	"cluedo-sim/internal/events"
	"cluedo-sim/internal/player"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultTurnLimit caps a game that never sees a correct accusation.
const DefaultTurnLimit = 500

// GameBuilder provides a step-by-step API for constructing a Game object.
type GameBuilder struct {
	deck         *card.Deck
	eventManager *events.Manager
	log          logrus.FieldLogger
	rand         *rand.Rand
	numPlayers   int
	opponents    []player.Strategy
	testedSeat   int
	turnLimit    int
	solution     *card.Solution
	hands        []card.Hand
}

// NewBuilder creates a new GameBuilder with its required dependencies.
func NewBuilder(deck *card.Deck, logger logrus.FieldLogger, rand *rand.Rand) *GameBuilder {
	return &GameBuilder{
		deck:         deck,
		log:          logger,
		rand:         rand,
		eventManager: events.NewManager(),
		opponents:    []player.Strategy{player.Random},
		testedSeat:   -1,
		turnLimit:    DefaultTurnLimit,
	}
}

// New deals a fresh game for the given number of players with default options.
func New(deck *card.Deck, players int, logger logrus.FieldLogger, rand *rand.Rand) (*Game, error) {
	return NewBuilder(deck, logger, rand).WithPlayers(players).Build()
}

// EventManager is a public getter for the unexported field.
func (b *GameBuilder) EventManager() *events.Manager {
	return b.eventManager
}

func (b *GameBuilder) WithPlayers(n int) *GameBuilder {
	b.numPlayers = n
	return b
}

// WithOpponents sets the pool every non-tested seat draws its strategy from.
func (b *GameBuilder) WithOpponents(strategies ...player.Strategy) *GameBuilder {
	b.opponents = strategies
	return b
}

// WithTestedSeat pins the seat that runs the strategy under test. By default
// it is drawn uniformly when the game is played.
func (b *GameBuilder) WithTestedSeat(seat int) *GameBuilder {
	b.testedSeat = seat
	return b
}

func (b *GameBuilder) WithTurnLimit(n int) *GameBuilder {
	b.turnLimit = n
	return b
}

// WithDeal replaces the random deal with a fixed one. The player count is
// taken from the number of hands.
func (b *GameBuilder) WithDeal(solution card.Solution, hands []card.Hand) *GameBuilder {
	b.solution = &solution
	b.hands = hands
	b.numPlayers = len(hands)
	return b
}

// Build constructs the Game object after all options have been configured.
func (b *GameBuilder) Build() (*Game, error) {
	if err := ValidatePlayerCount(b.numPlayers); err != nil {
		return nil, err
	}
	if b.testedSeat >= b.numPlayers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, b.testedSeat)
	}
	if len(b.opponents) == 0 {
		return nil, ErrNoOpponents
	}
	turnLimit := b.turnLimit
	if turnLimit <= 0 {
		turnLimit = DefaultTurnLimit
	}

	var (
		solution card.Solution
		hands    []card.Hand
	)
	if b.solution != nil {
		if err := validateDeal(b.deck, *b.solution, b.hands); err != nil {
			return nil, err
		}
		solution = *b.solution
		for _, h := range b.hands {
			hands = append(hands, h.Clone())
		}
	} else {
		var err error
		if solution, hands, err = Deal(b.deck, b.numPlayers, b.rand); err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	game := &Game{
		ID:           id,
		Deck:         b.deck,
		EventManager: b.eventManager,
		solution:     solution,
		hands:        hands,
		opponents:    b.opponents,
		testedSeat:   b.testedSeat,
		turnLimit:    turnLimit,
		log:          b.log.WithField("game", id),
		rand:         b.rand,
	}

	for i, h := range hands {
		game.log.Debugf("Seat %d hand: %s", i, describeHand(b.deck, h))
	}
	game.log.Debugf("Ground truth initialized. Solution: %s", b.deck.DescribeTriple(solution))
	return game, nil
}

func describeHand(deck *card.Deck, h card.Hand) []string {
	names := make([]string, 0, len(h))
	for _, c := range h {
		names = append(names, deck.Name(c))
	}
	return names
}
