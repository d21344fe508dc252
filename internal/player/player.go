package player

import (
	"math/rand"

	"cluedo-sim/internal/card"

	"github.com/sirupsen/logrus"
)

// Response is what one seat learns after a suggestion was disproved.
// Card is only set in the copy delivered to the suggester.
type Response struct {
	From int
	Card *card.Card
}

// Agent is the interface that every seated strategy must implement.
type Agent interface {
	// MakeGuess is called once per turn when the agent's seat is active.
	MakeGuess() card.Guess
	// HandleResponse is called on every seat after each suggestion. resp is
	// nil when no seat could disprove it.
	HandleResponse(suggester int, guess card.Guess, resp *Response)
}

// Seat carries everything a strategy needs to build an agent for one position.
type Seat struct {
	Position int
	Players  int
	Hand     card.Hand
	Deck     *card.Deck
	Rand     *rand.Rand
	Log      logrus.FieldLogger
}

// Factory builds a fresh agent for a seat.
type Factory func(seat Seat) Agent

// Strategy is a named agent factory.
type Strategy struct {
	Name string
	New  Factory
}
