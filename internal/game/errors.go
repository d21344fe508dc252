package game

import (
	"errors"
	"fmt"

	"cluedo-sim/internal/card"
)

var (
	ErrInvalidPlayerCount  = errors.New("invalid number of players")
	ErrInvalidDeal         = errors.New("invalid deal")
	ErrInvalidSeat         = errors.New("invalid tested seat")
	ErrNoOpponents         = errors.New("no opponent strategies")
	ErrTurnLimit           = errors.New("turn limit reached without a correct accusation")
	ErrIncorrectAccusation = errors.New("incorrect accusation")
)

// IncorrectAccusationError reports an agent that accused the wrong triple.
// Under correct deduction this never happens, so the game is aborted.
type IncorrectAccusationError struct {
	GameID     string
	Seat       int
	Turn       int
	Accusation card.Solution
	Solution   card.Solution
	deck       *card.Deck
}

func (e *IncorrectAccusationError) Error() string {
	return fmt.Sprintf("game %s: seat %d accused %s on turn %d but the solution is %s",
		e.GameID, e.Seat, e.deck.DescribeTriple(e.Accusation), e.Turn, e.deck.DescribeTriple(e.Solution))
}

func (e *IncorrectAccusationError) Unwrap() error { return ErrIncorrectAccusation }
