package card

// Category defines the type of a card using a typed enum.
type Category int

const (
	CategorySuspect Category = iota
	CategoryWeapon
	CategoryRoom
)

// Categories lists every category in resolution priority order.
var Categories = []Category{CategorySuspect, CategoryWeapon, CategoryRoom}

func (cc Category) String() string {
	return []string{"suspects", "weapons", "rooms"}[cc]
}

// Suspect, Weapon and Room are indices into the corresponding name table of a Deck.
type (
	Suspect int
	Weapon  int
	Room    int
)

// Card is a tagged union over the three categories. Two cards are equal when
// both the category and the index match, so Card can be used as a map key.
type Card struct {
	Category Category
	Index    int
}

func SuspectCard(s Suspect) Card { return Card{Category: CategorySuspect, Index: int(s)} }
func WeaponCard(w Weapon) Card   { return Card{Category: CategoryWeapon, Index: int(w)} }
func RoomCard(r Room) Card       { return Card{Category: CategoryRoom, Index: int(r)} }

// Suspect returns the suspect carried by the card, if it is a suspect card.
func (c Card) Suspect() (Suspect, bool) {
	return Suspect(c.Index), c.Category == CategorySuspect
}

// Weapon returns the weapon carried by the card, if it is a weapon card.
func (c Card) Weapon() (Weapon, bool) {
	return Weapon(c.Index), c.Category == CategoryWeapon
}

// Room returns the room carried by the card, if it is a room card.
func (c Card) Room() (Room, bool) {
	return Room(c.Index), c.Category == CategoryRoom
}

// Solution is the hidden murder triple.
type Solution struct {
	Suspect Suspect
	Weapon  Weapon
	Room    Room
}

// Cards returns the solution as cards in suspect, weapon, room order.
func (s Solution) Cards() []Card {
	return []Card{SuspectCard(s.Suspect), WeaponCard(s.Weapon), RoomCard(s.Room)}
}

// Contains reports whether c is one of the three solution cards.
func (s Solution) Contains(c Card) bool {
	for _, sc := range s.Cards() {
		if sc == c {
			return true
		}
	}
	return false
}
