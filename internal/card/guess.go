package card

// GuessKind distinguishes a suggestion from an accusation.
type GuessKind int

const (
	KindSuggest GuessKind = iota
	KindAccuse
)

func (k GuessKind) String() string {
	if k == KindAccuse {
		return "accuse"
	}
	return "suggest"
}

// Guess is produced by an agent once per turn.
type Guess struct {
	Kind    GuessKind
	Suspect Suspect
	Weapon  Weapon
	Room    Room
}

func Suggest(s Suspect, w Weapon, r Room) Guess {
	return Guess{Kind: KindSuggest, Suspect: s, Weapon: w, Room: r}
}

func Accuse(s Suspect, w Weapon, r Room) Guess {
	return Guess{Kind: KindAccuse, Suspect: s, Weapon: w, Room: r}
}

func (g Guess) IsAccusation() bool { return g.Kind == KindAccuse }

// Cards returns the named cards in suspect, weapon, room priority.
func (g Guess) Cards() []Card {
	return []Card{SuspectCard(g.Suspect), WeaponCard(g.Weapon), RoomCard(g.Room)}
}

// Triple drops the kind and returns the named cards as a Solution value.
func (g Guess) Triple() Solution {
	return Solution{Suspect: g.Suspect, Weapon: g.Weapon, Room: g.Room}
}

// Matches reports whether all three components equal the solution.
func (g Guess) Matches(s Solution) bool {
	return g.Triple() == s
}
