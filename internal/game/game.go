package game

import (
	"fmt"
	"math/rand"

	"cluedo-sim/internal/card"
	"cluedo-sim/internal/events"
	"cluedo-sim/internal/player"

	"github.com/sirupsen/logrus"
)

// Game represents the dealt state of a single Cluedo game. The solution never
// leaves the engine while a game is being played.
type Game struct {
	ID           string
	Deck         *card.Deck
	EventManager *events.Manager
	solution     card.Solution
	hands        []card.Hand
	opponents    []player.Strategy
	testedSeat   int
	turnLimit    int
	turn         int
	seats        []*seat
	log          logrus.FieldLogger
	rand         *rand.Rand
}

type seat struct {
	position int
	strategy string
	hand     card.Hand
	agent    player.Agent
}

// Result is the terminal record of a played game.
type Result struct {
	GameID     string
	TestedSeat int
	Winner     int
	TestedWon  bool
	Turns      int // every guess made, including the final accusation
	Strategies []string
}

func (g *Game) Players() int { return len(g.hands) }

// Solution returns the hidden triple. It is meant for callers inspecting a
// game from outside; agents never receive it.
func (g *Game) Solution() card.Solution { return g.solution }

// Hand returns a copy of the cards dealt to a seat.
func (g *Game) Hand(position int) card.Hand { return g.hands[position].Clone() }

// Agent returns the agent seated at position during the last call to Play.
func (g *Game) Agent(position int) player.Agent {
	if position < 0 || position >= len(g.seats) {
		return nil
	}
	return g.seats[position].agent
}

// Play seats a fresh set of agents and runs turns until a correct accusation.
// An incorrect accusation aborts the game with an *IncorrectAccusationError;
// exceeding the turn limit returns ErrTurnLimit.
func (g *Game) Play(tested player.Strategy) (Result, error) {
	testedSeat := g.seatAgents(tested)
	result := Result{GameID: g.ID, TestedSeat: testedSeat, Winner: -1}
	for _, s := range g.seats {
		result.Strategies = append(result.Strategies, s.strategy)
	}

	for g.turn = 0; g.turn < g.turnLimit; g.turn++ {
		current := g.seats[g.turn%len(g.seats)]
		g.EventManager.Publish(events.TurnStartEvent{TurnNumber: g.turn + 1, Seat: current.position})

		guess := current.agent.MakeGuess()
		if guess.IsAccusation() {
			return g.resolveAccusation(current, guess, result)
		}

		g.EventManager.Publish(events.SuggestionMadeEvent{Seat: current.position, Guess: guess})
		g.resolveSuggestion(current, guess)
	}

	result.Turns = g.turn
	g.EventManager.Publish(events.GameOverEvent{
		GameID: g.ID, Winner: -1, TestedSeat: testedSeat, Turns: g.turn, Solution: g.solution,
	})
	return result, fmt.Errorf("game %s: %w (%d turns)", g.ID, ErrTurnLimit, g.turn)
}

// seatAgents builds one agent per seat and returns the tested seat.
func (g *Game) seatAgents(tested player.Strategy) int {
	testedSeat := g.testedSeat
	if testedSeat < 0 {
		testedSeat = g.rand.Intn(len(g.hands))
	}

	g.seats = g.seats[:0]
	ready := events.GameReadyEvent{GameID: g.ID, Deck: g.Deck, TestedSeat: testedSeat}
	for position, hand := range g.hands {
		strategy := tested
		if position != testedSeat {
			strategy = g.opponents[g.rand.Intn(len(g.opponents))]
		}
		// Inject a logger and a new random source for each agent
		agentRand := rand.New(rand.NewSource(g.rand.Int63()))
		agent := strategy.New(player.Seat{
			Position: position,
			Players:  len(g.hands),
			Hand:     hand.Clone(),
			Deck:     g.Deck,
			Rand:     agentRand,
			Log:      g.log.WithFields(logrus.Fields{"seat": position, "strategy": strategy.Name}),
		})
		g.seats = append(g.seats, &seat{position: position, strategy: strategy.Name, hand: hand, agent: agent})
		ready.Seats = append(ready.Seats, events.SeatInfo{Position: position, Strategy: strategy.Name, Hand: hand.Clone()})
	}
	g.EventManager.Publish(ready)
	return testedSeat
}

func (g *Game) resolveAccusation(current *seat, guess card.Guess, result Result) (Result, error) {
	correct := guess.Matches(g.solution)
	g.EventManager.Publish(events.GameOverEvent{
		GameID:     g.ID,
		Winner:     current.position,
		TestedSeat: result.TestedSeat,
		Turns:      g.turn + 1,
		Solution:   g.solution,
		Accusation: &guess,
		IsCorrect:  correct,
	})
	if !correct {
		return result, &IncorrectAccusationError{
			GameID:     g.ID,
			Seat:       current.position,
			Turn:       g.turn + 1,
			Accusation: guess.Triple(),
			Solution:   g.solution,
			deck:       g.Deck,
		}
	}

	result.Winner = current.position
	result.TestedWon = current.position == result.TestedSeat
	result.Turns = g.turn + 1
	g.log.WithFields(logrus.Fields{"winner": result.Winner, "turns": result.Turns}).
		Debugf("Seat %d (%s) accused correctly.", current.position, current.strategy)
	return result, nil
}

// findDisprover scans the seats after the suggester, wrapping around, and
// returns the first one holding any of the suggested cards.
func (g *Game) findDisprover(suggester int, guess card.Guess) (int, card.Card, bool) {
	n := len(g.seats)
	for i := 1; i < n; i++ {
		idx := (suggester + i) % n
		if shown, ok := g.seats[idx].hand.Match(guess); ok {
			return idx, shown, true
		}
	}
	return -1, card.Card{}, false
}

// resolveSuggestion notifies every seat. Each seat gets its own Response and
// only the suggester's carries the revealed card.
func (g *Game) resolveSuggestion(current *seat, guess card.Guess) {
	disprover, shown, found := g.findDisprover(current.position, guess)
	if found {
		g.EventManager.Publish(events.DisprovalEvent{Suggester: current.position, Disprover: disprover, RevealedCard: shown})
	} else {
		g.EventManager.Publish(events.NoDisprovalEvent{Suggester: current.position})
	}

	for _, s := range g.seats {
		var resp *player.Response
		if found {
			resp = &player.Response{From: disprover}
			if s.position == current.position {
				revealed := shown
				resp.Card = &revealed
			}
		}
		s.agent.HandleResponse(current.position, guess, resp)
	}
}
