package ai

import (
	"cluedo-sim/internal/card"
	"cluedo-sim/internal/player"

	"github.com/sirupsen/logrus"
)

// Elimination is the process-of-elimination strategy.
var Elimination = player.Strategy{
	Name: "elimination",
	New:  func(seat player.Seat) player.Agent { return NewEliminationPlayer(seat) },
}

// EliminationPlayer keeps one candidate list per category and strikes cards
// off as they are revealed. It only uses cards shown to itself.
type EliminationPlayer struct {
	position int
	deck     *card.Deck
	suspects []card.Suspect
	weapons  []card.Weapon
	rooms    []card.Room
	chooser  player.Chooser
	log      logrus.FieldLogger
}

// EliminationOption customizes an EliminationPlayer.
type EliminationOption func(*EliminationPlayer)

// WithChooser replaces the default lowest-index candidate selection.
func WithChooser(c player.Chooser) EliminationOption {
	return func(p *EliminationPlayer) { p.chooser = c }
}

func NewEliminationPlayer(seat player.Seat, opts ...EliminationOption) *EliminationPlayer {
	p := &EliminationPlayer{
		position: seat.Position,
		deck:     seat.Deck,
		suspects: seat.Deck.Suspects(),
		weapons:  seat.Deck.Weapons(),
		rooms:    seat.Deck.Rooms(),
		chooser:  player.DeterministicChooser{},
		log:      fieldLogger(seat.Log),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, c := range seat.Hand {
		p.eliminate(c)
	}
	return p
}

func (p *EliminationPlayer) Deck() *card.Deck { return p.deck }
func (p *EliminationPlayer) Position() int    { return p.position }

// Candidates returns copies of the three candidate lists.
func (p *EliminationPlayer) Candidates() ([]card.Suspect, []card.Weapon, []card.Room) {
	return append([]card.Suspect(nil), p.suspects...),
		append([]card.Weapon(nil), p.weapons...),
		append([]card.Room(nil), p.rooms...)
}

func (p *EliminationPlayer) MakeGuess() card.Guess {
	if len(p.suspects) == 1 && len(p.weapons) == 1 && len(p.rooms) == 1 {
		return card.Accuse(p.suspects[0], p.weapons[0], p.rooms[0])
	}
	return card.Suggest(
		p.suspects[p.chooser.Choose(len(p.suspects))],
		p.weapons[p.chooser.Choose(len(p.weapons))],
		p.rooms[p.chooser.Choose(len(p.rooms))],
	)
}

func (p *EliminationPlayer) HandleResponse(suggester int, guess card.Guess, resp *player.Response) {
	switch {
	case resp != nil && resp.Card != nil:
		p.eliminate(*resp.Card)
	case resp == nil && suggester == p.position && !guess.IsAccusation():
		// Nobody else holds any of the three and they were never in our hand.
		p.log.Debugf("My suggestion %s was not disproved! Collapsing candidates.", p.deck.Describe(guess))
		p.suspects = []card.Suspect{guess.Suspect}
		p.weapons = []card.Weapon{guess.Weapon}
		p.rooms = []card.Room{guess.Room}
	}
}

func (p *EliminationPlayer) eliminate(c card.Card) {
	p.log.Debugf("Eliminated '%s'.", p.deck.Name(c))
	switch c.Category {
	case card.CategorySuspect:
		s, _ := c.Suspect()
		p.suspects = card.Without(p.suspects, s)
	case card.CategoryWeapon:
		w, _ := c.Weapon()
		p.weapons = card.Without(p.weapons, w)
	case card.CategoryRoom:
		r, _ := c.Room()
		p.rooms = card.Without(p.rooms, r)
	}
}
