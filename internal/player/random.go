package player

import "cluedo-sim/internal/card"

// Random is the strategy that suggests a uniformly random triple every turn.
var Random = Strategy{
	Name: "random",
	New:  func(seat Seat) Agent { return NewRandomPlayer(seat) },
}

// RandomPlayer ignores its hand and all history. It never accuses.
type RandomPlayer struct {
	deck    *card.Deck
	chooser Chooser
}

func NewRandomPlayer(seat Seat) *RandomPlayer {
	return &RandomPlayer{deck: seat.Deck, chooser: NewRandomChooser(seat.Rand)}
}

func (p *RandomPlayer) MakeGuess() card.Guess {
	suspects, weapons, rooms := p.deck.Suspects(), p.deck.Weapons(), p.deck.Rooms()
	return card.Suggest(
		suspects[p.chooser.Choose(len(suspects))],
		weapons[p.chooser.Choose(len(weapons))],
		rooms[p.chooser.Choose(len(rooms))],
	)
}

func (p *RandomPlayer) HandleResponse(int, card.Guess, *Response) {}
