package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/wricardo/ludo/game/engine"
)

// Settings are the process-level options read from the environment. Command
// line flags override them.
type Settings struct {
	Players      int      `env:"LUDO_PLAYERS"        envDefault:"4"`
	PlayerNames  []string `env:"LUDO_PLAYER_NAMES"   envSeparator:","`
	Preset       string   `env:"LUDO_PRESET"`
	ConfigDir    string   `env:"LUDO_CONFIG_DIR"     envDefault:"presets"`
	Seed         int64    `env:"LUDO_SEED"           envDefault:"0"`
	LogLevel     string   `env:"LUDO_LOG_LEVEL"      envDefault:"info"`
	RecordDir    string   `env:"LUDO_RECORD_DIR"`
	SpectateAddr string   `env:"LUDO_SPECTATE_ADDR"`
	Ngrok        bool     `env:"LUDO_NGROK"          envDefault:"false"`
	NgrokToken   string   `env:"NGROK_AUTHTOKEN"`
	NgrokDomain  string   `env:"NGROK_DOMAIN"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// GameConfig resolves the game to play: the named preset when set, else the
// player count and names from the settings.
func (s Settings) GameConfig(presets *Manager) (*engine.GameConfig, error) {
	if s.Preset != "" {
		if presets == nil {
			return nil, fmt.Errorf("preset %q requested without a preset directory", s.Preset)
		}
		return presets.LoadConfig(s.Preset)
	}

	config := &engine.GameConfig{
		Name:        "custom",
		Description: fmt.Sprintf("%d players", s.Players),
		PlayerCount: s.Players,
	}
	for _, name := range s.PlayerNames {
		if name = strings.TrimSpace(name); name != "" {
			config.PlayerNames = append(config.PlayerNames, name)
		}
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
