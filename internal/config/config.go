package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cluedo-sim/internal/card"
)

//go:embed default_config.json
var defaultConfig []byte

var (
	ErrInvalidTurnLimit = errors.New("turn_limit must be positive")
	ErrInvalidTrials    = errors.New("trials must be positive")
	ErrInvalidWorkers   = errors.New("workers must not be negative")
	ErrNoOpponents      = errors.New("at least one opponent strategy is required")
)

// SimulationConfig parameterizes the turn engine and the batch runner.
type SimulationConfig struct {
	TurnLimit int      `json:"turn_limit"`
	Trials    int      `json:"trials"`
	Workers   int      `json:"workers"` // 0 means one per CPU
	Opponents []string `json:"opponents"`
}

// GameConfig holds the static definitions for a game of Cluedo.
type GameConfig struct {
	Suspects   []string         `json:"suspects"`
	Weapons    []string         `json:"weapons"`
	Rooms      []string         `json:"rooms"`
	Simulation SimulationConfig `json:"simulation"`
}

// Default returns the built-in configuration (the classic board).
func Default() *GameConfig {
	var cfg GameConfig
	if err := json.Unmarshal(defaultConfig, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return &cfg
}

// Load reads a configuration file on top of the defaults. Fields missing from
// the file keep their default value. An empty path returns the defaults.
func Load(path string) (*GameConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the card tables and simulation parameters.
func (c *GameConfig) Validate() error {
	if _, err := c.Deck(); err != nil {
		return err
	}
	switch {
	case c.Simulation.TurnLimit <= 0:
		return ErrInvalidTurnLimit
	case c.Simulation.Trials <= 0:
		return ErrInvalidTrials
	case c.Simulation.Workers < 0:
		return ErrInvalidWorkers
	case len(c.Simulation.Opponents) == 0:
		return ErrNoOpponents
	}
	return nil
}

// Deck builds the card model described by the configuration.
func (c *GameConfig) Deck() (*card.Deck, error) {
	return card.NewDeck(c.Suspects, c.Weapons, c.Rooms)
}
