package ai

import (
	"math/rand"
	"sort"

	"cluedo-sim/internal/card"
	"cluedo-sim/internal/player"

	"github.com/sirupsen/logrus"
)

// Detective is the knowledge-grid strategy.
var Detective = player.Strategy{
	Name: "detective",
	New:  func(seat player.Seat) player.Agent { return NewDetectivePlayer(seat) },
}

// CardStatus defines the knowledge state of a card.
type CardStatus int

const (
	StatusMaybe CardStatus = iota
	StatusYes
	StatusNo
)

// DetectivePlayer tracks, for every card, which seat (or the solution) holds
// it. Unlike EliminationPlayer it also learns from suggestions made by other
// seats: who disproved them and which seats were skipped.
type DetectivePlayer struct {
	position              int
	players               int
	deck                  *card.Deck
	hand                  map[card.Card]struct{}
	knowledge             map[card.Card][]CardStatus // index players is the solution
	unresolvedSuggestions []UnresolvedSuggestion
	recentSurgicalTargets *CardDeque
	strategies            []SuggestionStrategy
	log                   logrus.FieldLogger
	chooser               player.Chooser
	rand                  *rand.Rand
}

// UnresolvedSuggestion tracks a disproval where the specific card shown is unknown.
type UnresolvedSuggestion struct {
	Disprover     int
	PossibleCards []card.Card
}

// NewDetectivePlayer is the constructor for the knowledge-grid agent.
func NewDetectivePlayer(seat player.Seat) *DetectivePlayer {
	ai := &DetectivePlayer{
		position:              seat.Position,
		players:               seat.Players,
		deck:                  seat.Deck,
		hand:                  make(map[card.Card]struct{}),
		knowledge:             make(map[card.Card][]CardStatus),
		recentSurgicalTargets: NewCardDeque(3),
		log:                   fieldLogger(seat.Log),
		rand:                  seat.Rand,
		chooser:               player.NewRandomChooser(seat.Rand),
	}
	ai.strategies = []SuggestionStrategy{
		&ExploitStrategy{},
		&SurgicalStrikeStrategy{},
		&ExploreStrategy{},
	}

	for _, c := range ai.deck.Cards() {
		ai.knowledge[c] = make([]CardStatus, ai.players+1)
	}
	for _, c := range seat.Hand {
		ai.hand[c] = struct{}{}
		ai.markCardLocation(c, ai.position)
	}
	for _, c := range ai.deck.Cards() {
		if _, inHand := ai.hand[c]; !inHand {
			ai.markNotHeld(c, ai.position)
		}
	}
	ai.runDeductionLoop()
	ai.log.Debugf("Deduction engine initialized.")
	return ai
}

// --- Public getters for the CLI ---

func (ai *DetectivePlayer) Deck() *card.Deck { return ai.deck }
func (ai *DetectivePlayer) Players() int     { return ai.players }
func (ai *DetectivePlayer) Position() int    { return ai.position }

// Status returns what the agent knows about a card at a location. Location
// Players() is the solution.
func (ai *DetectivePlayer) Status(c card.Card, location int) CardStatus {
	return ai.knowledge[c][location]
}

func (ai *DetectivePlayer) solution() int { return ai.players }

func (ai *DetectivePlayer) MakeGuess() card.Guess {
	if accusation, ok := ai.knownSolution(); ok {
		ai.log.Debugf("Solution proven, accusing %s.", ai.deck.DescribeTriple(accusation))
		return card.Accuse(accusation.Suspect, accusation.Weapon, accusation.Room)
	}
	for _, s := range ai.strategies {
		if suggestion, ok := s.BuildSuggestion(ai); ok {
			return suggestion
		}
	}
	return (&ExploreStrategy{}).mustBuild(ai)
}

func (ai *DetectivePlayer) HandleResponse(suggester int, guess card.Guess, resp *player.Response) {
	if guess.IsAccusation() {
		return
	}
	suggested := guess.Cards()

	if resp == nil {
		// Nobody but the suggester can hold any of the three.
		for seat := 0; seat < ai.players; seat++ {
			if seat == suggester {
				continue
			}
			for _, c := range suggested {
				ai.markNotHeld(c, seat)
			}
		}
		if suggester == ai.position {
			ai.log.Debugf("My suggestion was not disproved! Making powerful deductions.")
			for _, c := range suggested {
				if _, inHand := ai.hand[c]; !inHand {
					ai.markCardLocation(c, ai.solution())
				}
			}
		}
		ai.runDeductionLoop()
		return
	}

	// Every seat between the suggester and the disprover was skipped.
	for seat := (suggester + 1) % ai.players; seat != resp.From; seat = (seat + 1) % ai.players {
		for _, c := range suggested {
			ai.markNotHeld(c, seat)
		}
	}

	switch {
	case resp.Card != nil:
		ai.markCardLocation(*resp.Card, resp.From)
	case resp.From != ai.position:
		mystery := UnresolvedSuggestion{Disprover: resp.From, PossibleCards: suggested}
		ai.unresolvedSuggestions = append(ai.unresolvedSuggestions, mystery)
		ai.log.Debugf("Noted that seat %d holds one of %s.", resp.From, ai.deck.DescribeTriple(guess.Triple()))
	}
	ai.runDeductionLoop()
}

func (ai *DetectivePlayer) knownSolution() (card.Solution, bool) {
	var found [3]int
	for _, cat := range card.Categories {
		idx := -1
		for i := 0; i < ai.deck.Size(cat); i++ {
			if ai.knowledge[card.Card{Category: cat, Index: i}][ai.solution()] == StatusYes {
				idx = i
				break
			}
		}
		if idx < 0 {
			return card.Solution{}, false
		}
		found[cat] = idx
	}
	return card.Solution{
		Suspect: card.Suspect(found[card.CategorySuspect]),
		Weapon:  card.Weapon(found[card.CategoryWeapon]),
		Room:    card.Room(found[card.CategoryRoom]),
	}, true
}

// --- Internal deduction logic ---

func (ai *DetectivePlayer) runDeductionLoop() {
	for i := 0; i < 10; i++ { // Safety break
		var changed bool
		changed = ai.pruneAndSolveMysteries() || changed
		changed = ai.deduceSolutionByElimination() || changed
		changed = ai.deduceCardLocationsByElimination() || changed
		if !changed {
			break
		}
	}
}

// markCardLocation records that location holds c, which rules out every other location.
func (ai *DetectivePlayer) markCardLocation(c card.Card, location int) bool {
	row := ai.knowledge[c]
	switch row[location] {
	case StatusYes:
		return false
	case StatusNo:
		ai.log.Errorf("Contradiction: '%s' was ruled out at location %d.", ai.deck.Name(c), location)
		return false
	}
	ai.log.Debugf("Learned that '%s' is at location %d.", ai.deck.Name(c), location)
	for loc := range row {
		row[loc] = StatusNo
	}
	row[location] = StatusYes
	return true
}

func (ai *DetectivePlayer) markNotHeld(c card.Card, location int) bool {
	row := ai.knowledge[c]
	switch row[location] {
	case StatusNo:
		return false
	case StatusYes:
		ai.log.Errorf("Contradiction: '%s' is known to be at location %d.", ai.deck.Name(c), location)
		return false
	}
	row[location] = StatusNo
	return true
}

func (ai *DetectivePlayer) pruneAndSolveMysteries() bool {
	var changed bool
	var remaining []UnresolvedSuggestion
	for _, mystery := range ai.unresolvedSuggestions {
		var pruned []card.Card
		explained := false
		for _, c := range mystery.PossibleCards {
			switch ai.knowledge[c][mystery.Disprover] {
			case StatusYes:
				explained = true
			case StatusMaybe:
				pruned = append(pruned, c)
			}
		}
		if explained {
			// A card we already place with the disprover accounts for it.
			changed = true
			continue
		}
		if len(pruned) < len(mystery.PossibleCards) {
			mystery.PossibleCards = pruned
			changed = true
		}
		switch len(pruned) {
		case 0:
			ai.log.Errorf("Contradiction: seat %d can no longer hold any card it showed.", mystery.Disprover)
		case 1:
			ai.log.Debugf("Solved a mystery: seat %d must have shown '%s'.", mystery.Disprover, ai.deck.Name(pruned[0]))
			if ai.markCardLocation(pruned[0], mystery.Disprover) {
				changed = true
			}
		default:
			remaining = append(remaining, mystery)
		}
	}
	if len(remaining) < len(ai.unresolvedSuggestions) {
		changed = true
	}
	ai.unresolvedSuggestions = remaining
	return changed
}

func (ai *DetectivePlayer) deduceCardLocationsByElimination() bool {
	var changed bool
	for _, c := range ai.deck.Cards() {
		var maybes []int
		isKnown := false
		for loc, status := range ai.knowledge[c] {
			if status == StatusYes {
				isKnown = true
				break
			}
			if status == StatusMaybe {
				maybes = append(maybes, loc)
			}
		}
		if !isKnown && len(maybes) == 1 {
			if ai.markCardLocation(c, maybes[0]) {
				changed = true
			}
		}
	}
	return changed
}

func (ai *DetectivePlayer) deduceSolutionByElimination() bool {
	var changed bool
	for _, cat := range card.Categories {
		var maybes []card.Card
		isSolved := false
		for i := 0; i < ai.deck.Size(cat); i++ {
			c := card.Card{Category: cat, Index: i}
			switch ai.knowledge[c][ai.solution()] {
			case StatusYes:
				isSolved = true
			case StatusMaybe:
				maybes = append(maybes, c)
			}
		}
		if !isSolved && len(maybes) == 1 {
			if ai.markCardLocation(maybes[0], ai.solution()) {
				changed = true
			}
		}
	}
	return changed
}

func sortCards(cards []card.Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Category != cards[j].Category {
			return cards[i].Category < cards[j].Category
		}
		return cards[i].Index < cards[j].Index
	})
}
