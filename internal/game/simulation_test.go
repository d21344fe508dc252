package game

import (
	"errors"
	"math/rand"
	"testing"

	"cluedo-sim/internal/ai"
	"cluedo-sim/internal/card"
	"cluedo-sim/internal/events"
	"cluedo-sim/internal/player"
)

// oracleAgent accuses a fixed triple on its first turn.
type oracleAgent struct{ accusation card.Solution }

func (o oracleAgent) MakeGuess() card.Guess {
	return card.Accuse(o.accusation.Suspect, o.accusation.Weapon, o.accusation.Room)
}
func (o oracleAgent) HandleResponse(int, card.Guess, *player.Response) {}

func oracle(accusation *card.Solution) player.Strategy {
	return player.Strategy{Name: "oracle", New: func(player.Seat) player.Agent {
		return oracleAgent{accusation: *accusation}
	}}
}

type observation struct {
	turn      int
	seat      int
	suggester int
	guess     card.Guess
	resp      *player.Response
}

// spyAgent plays randomly and records every response it receives.
type spyAgent struct {
	inner    player.Agent
	position int
	turn     *int
	seen     *[]observation
}

func (s *spyAgent) MakeGuess() card.Guess { return s.inner.MakeGuess() }
func (s *spyAgent) HandleResponse(suggester int, guess card.Guess, resp *player.Response) {
	*s.seen = append(*s.seen, observation{turn: *s.turn, seat: s.position, suggester: suggester, guess: guess, resp: resp})
}

func TestResponsePrivacy(t *testing.T) {
	// GIVEN a 5-player game of spies recording what each seat is told
	deck := testDeck(t)
	builder := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(11))).WithPlayers(5).WithTurnLimit(60)
	var turn int
	var seen []observation
	builder.EventManager().Subscribe(events.ListenerFunc(func(e events.Event) {
		if ts, ok := e.(events.TurnStartEvent); ok {
			turn = ts.TurnNumber
		}
	}))
	spy := player.Strategy{Name: "spy", New: func(seat player.Seat) player.Agent {
		return &spyAgent{inner: player.NewRandomPlayer(seat), position: seat.Position, turn: &turn, seen: &seen}
	}}
	g, err := builder.WithOpponents(spy).Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}

	// WHEN the game runs until the turn limit (nobody ever accuses)
	if _, err := g.Play(spy); !errors.Is(err, ErrTurnLimit) {
		t.Fatalf("expected ErrTurnLimit, got %v", err)
	}

	// THEN each suggestion reached every seat, and at most the suggester saw a card
	byTurn := make(map[int][]observation)
	for _, o := range seen {
		byTurn[o.turn] = append(byTurn[o.turn], o)
	}
	if len(byTurn) != 60 {
		t.Fatalf("expected 60 resolved suggestions, got %d", len(byTurn))
	}
	for turn, obs := range byTurn {
		if len(obs) != 5 {
			t.Fatalf("turn %d: expected 5 responses, got %d", turn, len(obs))
		}
		revealed := 0
		for _, o := range obs {
			if (o.resp == nil) != (obs[0].resp == nil) {
				t.Fatalf("turn %d: seats disagree on whether anyone responded", turn)
			}
			if o.resp == nil {
				continue
			}
			if o.resp.From != obs[0].resp.From || o.resp.From == o.suggester {
				t.Errorf("turn %d: bad responder %d for suggester %d", turn, o.resp.From, o.suggester)
			}
			if o.resp.Card == nil {
				continue
			}
			revealed++
			if o.seat != o.suggester {
				t.Errorf("turn %d: seat %d saw a card for seat %d's suggestion", turn, o.seat, o.suggester)
			}
			if !g.Hand(o.resp.From).Contains(*o.resp.Card) {
				t.Errorf("turn %d: seat %d was shown a card its responder does not hold", turn, o.seat)
			}
		}
		if revealed > 1 {
			t.Errorf("turn %d: %d seats saw the card", turn, revealed)
		}
		if obs[0].resp != nil && revealed != 1 {
			t.Errorf("turn %d: the suggester was not shown the card", turn)
		}
	}
}

func TestWinAttribution(t *testing.T) {
	deck := testDeck(t)

	t.Run("the tested seat wins on its own first turn", func(t *testing.T) {
		// GIVEN an oracle pinned to seat 2 among random opponents
		var solution card.Solution
		g, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(3))).
			WithPlayers(4).WithTestedSeat(2).Build()
		if err != nil {
			t.Fatalf("Failed to build game: %v", err)
		}
		solution = g.Solution()

		// WHEN the game is played
		res, err := g.Play(oracle(&solution))
		if err != nil {
			t.Fatalf("Play failed: %v", err)
		}

		// THEN seat 2 is credited after three turns
		if res.Winner != 2 || !res.TestedWon || res.Turns != 3 {
			t.Errorf("expected winner 2 after 3 turns, got %+v", res)
		}
	})

	t.Run("an opponent win is not credited to the tested seat", func(t *testing.T) {
		// GIVEN a random player at seat 0 and oracles everywhere else
		var solution card.Solution
		g, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(4))).
			WithPlayers(3).WithTestedSeat(0).WithOpponents(oracle(&solution)).Build()
		if err != nil {
			t.Fatalf("Failed to build game: %v", err)
		}
		solution = g.Solution()

		res, err := g.Play(player.Random)
		if err != nil {
			t.Fatalf("Play failed: %v", err)
		}
		if res.Winner != 1 || res.TestedWon || res.Turns != 2 {
			t.Errorf("expected seat 1 to win after 2 turns, got %+v", res)
		}
	})
}

func TestIncorrectAccusationAbortsTheGame(t *testing.T) {
	// GIVEN a tested agent that accuses the wrong suspect
	deck := testDeck(t)
	g, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(5))).
		WithPlayers(3).WithTestedSeat(0).Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}
	wrong := g.Solution()
	wrong.Suspect = card.Suspect((int(wrong.Suspect) + 1) % deck.Size(card.CategorySuspect))

	// WHEN it plays
	_, err = g.Play(oracle(&wrong))

	// THEN the error carries the accusation and the truth
	if !errors.Is(err, ErrIncorrectAccusation) {
		t.Fatalf("expected ErrIncorrectAccusation, got %v", err)
	}
	var accErr *IncorrectAccusationError
	if !errors.As(err, &accErr) {
		t.Fatalf("expected an *IncorrectAccusationError, got %T", err)
	}
	if accErr.Seat != 0 || accErr.Accusation != wrong || accErr.Solution != g.Solution() {
		t.Errorf("unexpected diagnostics: %+v", accErr)
	}
}

func TestEliminationTerminates(t *testing.T) {
	deck := testDeck(t)
	trials := 1000
	if testing.Short() {
		trials = 100
	}
	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := 0; seed < trials; seed++ {
			g, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(int64(seed)))).
				WithPlayers(players).WithTurnLimit(500).Build()
			if err != nil {
				t.Fatalf("Failed to build game: %v", err)
			}
			res, err := g.Play(ai.Elimination)
			if err != nil {
				t.Fatalf("players=%d seed=%d: %v", players, seed, err)
			}
			// Random opponents never accuse, so only the tested seat can win.
			if !res.TestedWon || res.Winner != res.TestedSeat {
				t.Fatalf("players=%d seed=%d: unexpected result %+v", players, seed, res)
			}
		}
	}
}

// monitoredAgent checks the belief-state invariants after every update.
type monitoredAgent struct {
	*ai.EliminationPlayer
	t        *testing.T
	solution *card.Solution
	sizes    [3]int
}

func (m *monitoredAgent) HandleResponse(suggester int, guess card.Guess, resp *player.Response) {
	m.EliminationPlayer.HandleResponse(suggester, guess, resp)
	suspects, weapons, rooms := m.Candidates()
	sizes := [3]int{len(suspects), len(weapons), len(rooms)}
	for i := range sizes {
		if sizes[i] > m.sizes[i] {
			m.t.Errorf("candidate list %d grew from %d to %d", i, m.sizes[i], sizes[i])
		}
	}
	m.sizes = sizes
	if !containsAll(suspects, m.solution.Suspect) || !containsAll(weapons, m.solution.Weapon) || !containsAll(rooms, m.solution.Room) {
		m.t.Errorf("candidates %v/%v/%v lost the solution %+v", suspects, weapons, rooms, *m.solution)
	}
}

func containsAll[T comparable](list []T, want T) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestEliminationMonotonicity(t *testing.T) {
	deck := testDeck(t)
	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := int64(0); seed < 100; seed++ {
			var solution card.Solution
			monitored := player.Strategy{Name: "monitored-elimination", New: func(seat player.Seat) player.Agent {
				p := ai.NewEliminationPlayer(seat)
				s, w, r := p.Candidates()
				return &monitoredAgent{EliminationPlayer: p, t: t, solution: &solution, sizes: [3]int{len(s), len(w), len(r)}}
			}}
			g, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(seed))).
				WithPlayers(players).
				WithOpponents(player.Random, monitored).
				Build()
			if err != nil {
				t.Fatalf("Failed to build game: %v", err)
			}
			solution = g.Solution()
			if _, err := g.Play(monitored); err != nil {
				t.Fatalf("players=%d seed=%d: %v", players, seed, err)
			}
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	// GIVEN 3 players, solution (Miss Scarlett, Lead Pipe, Kitchen) and a deal in
	// which seat 0 holds none of the solution cards
	deck := testDeck(t)
	solution := card.Solution{Suspect: 0, Weapon: 0, Room: 0}
	builder := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(1))).
		WithDeal(solution, fixedDeal(deck, solution, 3)).
		WithTestedSeat(0)
	var final *events.GameOverEvent
	builder.EventManager().Subscribe(events.ListenerFunc(func(e events.Event) {
		if over, ok := e.(events.GameOverEvent); ok {
			final = &over
		}
	}))
	g, err := builder.Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}

	// WHEN seat 0 plays process of elimination
	res, err := g.Play(ai.Elimination)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	// THEN its starting candidates still contained the solution
	t.Run("the hand does not eliminate the solution", func(t *testing.T) {
		fresh := ai.NewEliminationPlayer(player.Seat{Position: 0, Players: 3, Hand: g.Hand(0), Deck: deck})
		s, w, r := fresh.Candidates()
		if !containsAll(s, solution.Suspect) || !containsAll(w, solution.Weapon) || !containsAll(r, solution.Room) {
			t.Errorf("candidates %v/%v/%v do not contain the solution", s, w, r)
		}
	})

	// AND its accusation was exactly the solution
	t.Run("seat 0 accuses the solution", func(t *testing.T) {
		if res.Winner != 0 || !res.TestedWon {
			t.Errorf("expected seat 0 to win, got %+v", res)
		}
		if final == nil || final.Accusation == nil || final.Accusation.Triple() != solution {
			t.Errorf("expected an accusation of %s, got %+v", deck.DescribeTriple(solution), final)
		}
	})
}

func TestDetectiveNeverAccusesIncorrectly(t *testing.T) {
	deck := testDeck(t)
	trials := int64(200)
	if testing.Short() {
		trials = 20
	}
	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := int64(0); seed < trials; seed++ {
			g, err := NewBuilder(deck, quietLogger(), rand.New(rand.NewSource(seed))).
				WithPlayers(players).
				WithOpponents(player.Random, ai.Elimination, ai.Detective).
				Build()
			if err != nil {
				t.Fatalf("Failed to build game: %v", err)
			}
			if _, err := g.Play(ai.Detective); err != nil {
				t.Fatalf("players=%d seed=%d: %v", players, seed, err)
			}
		}
	}
}
