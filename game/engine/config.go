package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	MinPlayers = 4
	MaxPlayers = 6
)

var ErrInvalidPlayerCount = errors.New("invalid player count")

// GameConfig describes how a game is seated. It is loaded from preset JSON
// files or built from command line flags.
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PlayerCount int      `json:"player_count"`
	PlayerNames []string `json:"player_names,omitempty"`
}

// DefaultConfig returns the classic four-player game.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Four players, one per color",
		PlayerCount: MinPlayers,
	}
}

// ValidateGameConfig checks the seating before a game is created.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.PlayerCount < MinPlayers || config.PlayerCount > MaxPlayers {
		return fmt.Errorf("config validation: %w: player_count must be between %d and %d, got %d",
			ErrInvalidPlayerCount, MinPlayers, MaxPlayers, config.PlayerCount)
	}

	if len(config.PlayerNames) > config.PlayerCount {
		return fmt.Errorf("config validation: %d player_names given for %d players",
			len(config.PlayerNames), config.PlayerCount)
	}

	seen := make(map[string]bool, len(config.PlayerNames))
	for i, name := range config.PlayerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("config validation: player_names[%d] is empty", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("config validation: duplicate player name '%s'", name)
		}
		seen[key] = true
	}

	return nil
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
