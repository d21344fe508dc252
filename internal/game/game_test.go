package game

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	"cluedo-sim/internal/card"
	"cluedo-sim/internal/config"
	"cluedo-sim/internal/player"

	"github.com/sirupsen/logrus"
)

func testDeck(t *testing.T) *card.Deck {
	t.Helper()
	deck, err := config.Default().Deck()
	if err != nil {
		t.Fatalf("Failed to build deck: %v", err)
	}
	return deck
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	// For debugging a test, uncomment the line below:
	// log.SetLevel(logrus.DebugLevel)
	return log
}

// fixedDeal deals every non-solution card round-robin in deck order.
func fixedDeal(deck *card.Deck, solution card.Solution, players int) []card.Hand {
	hands := make([]card.Hand, players)
	i := 0
	for _, c := range deck.Cards() {
		if solution.Contains(c) {
			continue
		}
		hands[i%players] = append(hands[i%players], c)
		i++
	}
	return hands
}

func TestGameDeal(t *testing.T) {
	deck := testDeck(t)
	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := int64(0); seed < 50; seed++ {
			// GIVEN a seeded random source
			rng := rand.New(rand.NewSource(seed))

			// WHEN we deal a new game
			solution, hands, err := Deal(deck, players, rng)
			if err != nil {
				t.Fatalf("Deal(%d) failed: %v", players, err)
			}

			// THEN every card is accounted for exactly once
			if err := validateDeal(deck, solution, hands); err != nil {
				t.Fatalf("players=%d seed=%d: %v", players, seed, err)
			}

			// AND no player holds a solution card
			for i, h := range hands {
				for _, c := range h {
					if solution.Contains(c) {
						t.Errorf("seat %d was dealt a solution card: %s", i, deck.Name(c))
					}
				}
			}
		}
	}
}

func TestHandSizesDifferByAtMostOne(t *testing.T) {
	deck := testDeck(t)
	for players := MinPlayers; players <= MaxPlayers; players++ {
		_, hands, err := Deal(deck, players, rand.New(rand.NewSource(int64(players))))
		if err != nil {
			t.Fatalf("Deal(%d) failed: %v", players, err)
		}
		minSize, maxSize := len(hands[0]), len(hands[0])
		for _, h := range hands {
			minSize, maxSize = min(minSize, len(h)), max(maxSize, len(h))
		}
		if maxSize-minSize > 1 {
			t.Errorf("players=%d: hand sizes range from %d to %d", players, minSize, maxSize)
		}
	}
}

func TestInvalidPlayerCount(t *testing.T) {
	deck := testDeck(t)
	for _, n := range []int{0, 2, 7} {
		if _, err := New(deck, n, quietLogger(), rand.New(rand.NewSource(1))); !errors.Is(err, ErrInvalidPlayerCount) {
			t.Errorf("New(%d): expected ErrInvalidPlayerCount, got %v", n, err)
		}
	}
}

func TestBuilderValidation(t *testing.T) {
	deck := testDeck(t)
	solution := card.Solution{}

	t.Run("a fixed deal must partition the deck", func(t *testing.T) {
		hands := fixedDeal(deck, solution, 3)
		hands[0] = append(hands[0], card.SuspectCard(0))
		hands[2] = append(hands[2], card.RoomCard(8))
		_, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(1))).WithDeal(solution, hands).Build()
		if !errors.Is(err, ErrInvalidDeal) {
			t.Errorf("expected ErrInvalidDeal, got %v", err)
		}
	})

	t.Run("a fixed deal must be fair", func(t *testing.T) {
		hands := fixedDeal(deck, solution, 3)
		hands[0] = append(hands[0], hands[1][:2]...)
		hands[1] = hands[1][2:]
		_, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(1))).WithDeal(solution, hands).Build()
		if !errors.Is(err, ErrInvalidDeal) {
			t.Errorf("expected ErrInvalidDeal, got %v", err)
		}
	})

	t.Run("the tested seat must exist", func(t *testing.T) {
		_, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(1))).WithPlayers(4).WithTestedSeat(4).Build()
		if !errors.Is(err, ErrInvalidSeat) {
			t.Errorf("expected ErrInvalidSeat, got %v", err)
		}
	})

	t.Run("the opponent pool must not be empty", func(t *testing.T) {
		_, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(1))).WithPlayers(4).WithOpponents().Build()
		if !errors.Is(err, ErrNoOpponents) {
			t.Errorf("expected ErrNoOpponents, got %v", err)
		}
	})
}

func TestFindDisprover(t *testing.T) {
	// GIVEN a 3-player game with solution (suspect 0, weapon 0, room 0) where
	//   seat 0 holds S1 S4 W2 R1 R4 R7
	//   seat 1 holds S2 S5 W3 R2 R5 R8
	//   seat 2 holds S3 W1 W4 R3 R6
	deck := testDeck(t)
	solution := card.Solution{}
	g, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(1))).
		WithDeal(solution, fixedDeal(deck, solution, 3)).
		Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}
	g.seatAgents(player.Random)

	cases := []struct {
		name      string
		suggester int
		guess     card.Guess
		wantSeat  int
		wantCard  card.Card
		wantFound bool
	}{
		{"the next seat without a match is skipped", 0, card.Suggest(3, 0, 0), 2, card.SuspectCard(3), true},
		{"the scan wraps around to seat 0", 2, card.Suggest(1, 3, 0), 0, card.SuspectCard(1), true},
		{"the suggester's own hand never answers", 0, card.Suggest(1, 0, 0), -1, card.Card{}, false},
		{"a suspect is shown before weapon and room", 2, card.Suggest(2, 3, 2), 1, card.SuspectCard(2), true},
		{"the first seat wins even with a weaker card", 0, card.Suggest(0, 3, 3), 1, card.WeaponCard(3), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seat, shown, found := g.findDisprover(tc.suggester, tc.guess)
			if found != tc.wantFound || seat != tc.wantSeat || shown != tc.wantCard {
				t.Errorf("expected (%d, %s, %v), got (%d, %s, %v)",
					tc.wantSeat, deck.Name(tc.wantCard), tc.wantFound, seat, deck.Name(shown), found)
			}
		})
	}
}
