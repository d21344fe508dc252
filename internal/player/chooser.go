package player

import "math/rand"

// Chooser selects one option out of n. This allows us to swap out random and
// deterministic selection strategies.
type Chooser interface {
	Choose(n int) int
}

// RandomChooser picks an option uniformly at random.
type RandomChooser struct {
	rand *rand.Rand
}

func NewRandomChooser(rand *rand.Rand) *RandomChooser {
	return &RandomChooser{rand: rand}
}

func (r *RandomChooser) Choose(n int) int {
	if n <= 0 {
		return -1
	}
	return r.rand.Intn(n)
}

// DeterministicChooser always picks the first option. This is used for
// predictable play and testing.
type DeterministicChooser struct{}

func (d DeterministicChooser) Choose(n int) int {
	if n <= 0 {
		return -1
	}
	return 0
}
