package card

// Hand is the set of cards dealt to one seat.
type Hand []Card

func (h Hand) Contains(c Card) bool {
	for _, held := range h {
		if held == c {
			return true
		}
	}
	return false
}

// Match returns the card this hand must show against a suggestion. When the
// hand holds several of the named cards the suspect wins over the weapon and
// the weapon over the room.
func (h Hand) Match(g Guess) (Card, bool) {
	for _, c := range g.Cards() {
		if h.Contains(c) {
			return c, true
		}
	}
	return Card{}, false
}

// Clone returns a copy that can be handed to an agent without sharing storage.
func (h Hand) Clone() Hand {
	return append(Hand(nil), h...)
}
