package ai

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"cluedo-sim/internal/player"

	"github.com/sirupsen/logrus"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies lists every built-in strategy.
func Strategies() []player.Strategy {
	return []player.Strategy{player.Random, Elimination, Detective}
}

// Lookup returns the built-in strategy with the given name.
func Lookup(name string) (player.Strategy, error) {
	for _, s := range Strategies() {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return player.Strategy{}, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}

// LookupAll resolves a list of names, failing on the first unknown one.
func LookupAll(names []string) ([]player.Strategy, error) {
	out := make([]player.Strategy, 0, len(names))
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func fieldLogger(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}
