package events

import (
	"cluedo-sim/internal/card"
)

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to events.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(e Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Manager (or Event Bus) manages listeners and dispatches events.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}
func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}
func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// --- Event Types for Rendering ---
//
// Events carry ground truth (hands, revealed cards, the solution). They are for
// observers of the simulation, never for the agents at the table.

// SeatInfo describes one seat when the game starts.
type SeatInfo struct {
	Position int
	Strategy string
	Hand     card.Hand
}

// GameReadyEvent is published once agents are seated, before the first turn.
type GameReadyEvent struct {
	GameID     string
	Deck       *card.Deck
	Seats      []SeatInfo
	TestedSeat int
}

type TurnStartEvent struct {
	TurnNumber int
	Seat       int
}

type SuggestionMadeEvent struct {
	Seat  int
	Guess card.Guess
}

type DisprovalEvent struct {
	Suggester    int
	Disprover    int
	RevealedCard card.Card // Ground truth, for logging
}

type NoDisprovalEvent struct {
	Suggester int
}

// GameOverEvent is published when the game stops for any reason. Winner is -1
// when no correct accusation was made.
type GameOverEvent struct {
	GameID     string
	Winner     int
	TestedSeat int
	Turns      int
	Solution   card.Solution
	Accusation *card.Guess // The final accusation made, if any
	IsCorrect  bool
}
