package ai

import (
	"sort"

	"cluedo-sim/internal/card"
)

// SuggestionStrategy defines one step of the detective's decision chain.
type SuggestionStrategy interface {
	BuildSuggestion(ai *DetectivePlayer) (card.Guess, bool)
}

// --- Strategy Implementations ---

// 1. ExploitStrategy keeps the proven part of the solution fixed and probes the rest.
type ExploitStrategy struct{}

func (s *ExploitStrategy) BuildSuggestion(ai *DetectivePlayer) (card.Guess, bool) {
	known := make(map[card.Category]card.Card)
	for _, cat := range card.Categories {
		for i := 0; i < ai.deck.Size(cat); i++ {
			c := card.Card{Category: cat, Index: i}
			if ai.knowledge[c][ai.solution()] == StatusYes {
				known[cat] = c
				break
			}
		}
	}

	if len(known) == 0 || len(known) == 3 {
		return card.Guess{}, false
	}
	ai.log.Debugf("Strategy: EXPLOIT. I know %d/3 of the solution.", len(known))
	picks := make(map[card.Category]card.Card)
	for _, cat := range card.Categories {
		if c, ok := known[cat]; ok {
			picks[cat] = c
		} else {
			picks[cat] = ai.pickUnknownCard(cat)
		}
	}
	return suggestionFrom(picks), true
}

// 2. SurgicalStrikeStrategy targets the card that appears in most unresolved disprovals.
type SurgicalStrikeStrategy struct{}

func (s *SurgicalStrikeStrategy) BuildSuggestion(ai *DetectivePlayer) (card.Guess, bool) {
	if len(ai.unresolvedSuggestions) == 0 {
		return card.Guess{}, false
	}

	frequency := make(map[card.Card]int)
	for _, mystery := range ai.unresolvedSuggestions {
		for _, c := range mystery.PossibleCards {
			frequency[c]++
		}
	}

	sortedTargets := sortByFrequency(frequency)
	var patientTargets []card.Card
	for _, c := range sortedTargets {
		if !ai.recentSurgicalTargets.Contains(c) {
			patientTargets = append(patientTargets, c)
		}
	}
	if len(patientTargets) == 0 {
		patientTargets = sortedTargets
	}
	target := patientTargets[ai.chooser.Choose(len(patientTargets))]
	ai.log.Debugf("Strategy: SURGICAL STRIKE. Targeting '%s'.", ai.deck.Name(target))
	ai.recentSurgicalTargets.Push(target)
	return ai.buildSuggestionAroundTarget(target), true
}

// 3. ExploreStrategy gathers new information with unknown cards only.
type ExploreStrategy struct{}

func (s *ExploreStrategy) BuildSuggestion(ai *DetectivePlayer) (card.Guess, bool) {
	ai.log.Debugf("Strategy: EXPLORE. Gathering new information.")
	return s.mustBuild(ai), true
}

func (s *ExploreStrategy) mustBuild(ai *DetectivePlayer) card.Guess {
	return suggestionFrom(map[card.Category]card.Card{
		card.CategorySuspect: ai.pickUnknownCard(card.CategorySuspect),
		card.CategoryWeapon:  ai.pickUnknownCard(card.CategoryWeapon),
		card.CategoryRoom:    ai.pickUnknownCard(card.CategoryRoom),
	})
}

// --- Strategy Helpers ---

// pickUnknownCard prefers a card that may still be the solution, then any card
// not in our hand.
func (ai *DetectivePlayer) pickUnknownCard(cat card.Category) card.Card {
	var maybes, notMine []card.Card
	for i := 0; i < ai.deck.Size(cat); i++ {
		c := card.Card{Category: cat, Index: i}
		if _, inHand := ai.hand[c]; inHand {
			continue
		}
		notMine = append(notMine, c)
		if ai.knowledge[c][ai.solution()] == StatusMaybe {
			maybes = append(maybes, c)
		}
	}
	if len(maybes) > 0 {
		return maybes[ai.rand.Intn(len(maybes))]
	}
	if len(notMine) > 0 {
		return notMine[ai.chooser.Choose(len(notMine))]
	}
	return card.Card{Category: cat, Index: ai.chooser.Choose(ai.deck.Size(cat))}
}

// buildSuggestionAroundTarget pairs the target with cards from our own hand so
// that only the target can be shown back to us.
func (ai *DetectivePlayer) buildSuggestionAroundTarget(target card.Card) card.Guess {
	picks := map[card.Category]card.Card{target.Category: target}

	var mine []card.Card
	for c := range ai.hand {
		mine = append(mine, c)
	}
	sortCards(mine)
	ai.rand.Shuffle(len(mine), func(i, j int) { mine[i], mine[j] = mine[j], mine[i] })

	for _, c := range mine {
		if len(picks) == 3 {
			break
		}
		if _, exists := picks[c.Category]; !exists {
			picks[c.Category] = c
		}
	}
	for _, cat := range card.Categories {
		if _, ok := picks[cat]; !ok {
			picks[cat] = ai.pickUnknownCard(cat)
		}
	}
	return suggestionFrom(picks)
}

func suggestionFrom(picks map[card.Category]card.Card) card.Guess {
	s, _ := picks[card.CategorySuspect].Suspect()
	w, _ := picks[card.CategoryWeapon].Weapon()
	r, _ := picks[card.CategoryRoom].Room()
	return card.Suggest(s, w, r)
}

// --- Utility Types and Functions ---

// CardDeque remembers the last few surgical targets.
type CardDeque struct {
	elements []card.Card
	maxSize  int
}

func NewCardDeque(maxSize int) *CardDeque {
	return &CardDeque{maxSize: maxSize}
}

func (d *CardDeque) Push(c card.Card) {
	d.elements = append(d.elements, c)
	if len(d.elements) > d.maxSize {
		d.elements = d.elements[1:]
	}
}

func (d *CardDeque) Contains(c card.Card) bool {
	for _, e := range d.elements {
		if e == c {
			return true
		}
	}
	return false
}

func sortByFrequency(m map[card.Card]int) []card.Card {
	cards := make([]card.Card, 0, len(m))
	for c := range m {
		cards = append(cards, c)
	}
	sortCards(cards)
	sort.SliceStable(cards, func(i, j int) bool {
		return m[cards[i]] > m[cards[j]]
	})
	return cards
}
