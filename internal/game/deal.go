package game

import (
	"fmt"
	"math/rand"

	"cluedo-sim/internal/card"
)

const (
	MinPlayers = 3
	MaxPlayers = 6
)

// ValidatePlayerCount rejects a table outside MinPlayers..MaxPlayers.
func ValidatePlayerCount(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidPlayerCount, n, MinPlayers, MaxPlayers)
	}
	return nil
}

// Deal picks the solution and deals the remaining cards round-robin.
func Deal(deck *card.Deck, players int, rng *rand.Rand) (card.Solution, []card.Hand, error) {
	if err := ValidatePlayerCount(players); err != nil {
		return card.Solution{}, nil, err
	}

	suspects, weapons, rooms := deck.Suspects(), deck.Weapons(), deck.Rooms()
	card.Shuffle(rng, suspects)
	card.Shuffle(rng, weapons)
	card.Shuffle(rng, rooms)

	solution := card.Solution{
		Suspect: suspects[len(suspects)-1],
		Weapon:  weapons[len(weapons)-1],
		Room:    rooms[len(rooms)-1],
	}

	var cardsToDeal []card.Card
	for _, s := range suspects[:len(suspects)-1] {
		cardsToDeal = append(cardsToDeal, card.SuspectCard(s))
	}
	for _, w := range weapons[:len(weapons)-1] {
		cardsToDeal = append(cardsToDeal, card.WeaponCard(w))
	}
	for _, r := range rooms[:len(rooms)-1] {
		cardsToDeal = append(cardsToDeal, card.RoomCard(r))
	}
	card.Shuffle(rng, cardsToDeal)

	hands := make([]card.Hand, players)
	for i, c := range cardsToDeal {
		hands[i%players] = append(hands[i%players], c)
	}
	return solution, hands, nil
}

// validateDeal checks that the hands and the solution partition the deck and
// that hand sizes differ by at most one.
func validateDeal(deck *card.Deck, solution card.Solution, hands []card.Hand) error {
	if err := ValidatePlayerCount(len(hands)); err != nil {
		return err
	}
	seen := make(map[card.Card]int)
	for _, c := range solution.Cards() {
		seen[c]++
	}
	minSize, maxSize := len(hands[0]), len(hands[0])
	for _, h := range hands {
		minSize, maxSize = min(minSize, len(h)), max(maxSize, len(h))
		for _, c := range h {
			seen[c]++
		}
	}
	if maxSize-minSize > 1 {
		return fmt.Errorf("%w: hand sizes range from %d to %d", ErrInvalidDeal, minSize, maxSize)
	}
	all := deck.Cards()
	if len(seen) != len(all) {
		return fmt.Errorf("%w: %d distinct cards dealt, deck has %d", ErrInvalidDeal, len(seen), len(all))
	}
	for _, c := range all {
		if seen[c] != 1 {
			return fmt.Errorf("%w: %q dealt %d times", ErrInvalidDeal, deck.Name(c), seen[c])
		}
	}
	return nil
}
