package config

import (
	"errors"
	"os"
	"testing"

	"github.com/wricardo/ludo/game/engine"
)

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{"LUDO_PLAYERS", "LUDO_PRESET", "LUDO_CONFIG_DIR", "LUDO_SEED", "LUDO_LOG_LEVEL", "LUDO_NGROK"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if s.Players != 4 || s.ConfigDir != "presets" || s.LogLevel != "info" || s.Seed != 0 || s.Ngrok {
		t.Errorf("Unexpected defaults: %+v", s)
	}
}

func TestLoadSettings_FromEnv(t *testing.T) {
	t.Setenv("LUDO_PLAYERS", "6")
	t.Setenv("LUDO_PLAYER_NAMES", "Ana,Bea")
	t.Setenv("LUDO_SEED", "99")
	t.Setenv("LUDO_SPECTATE_ADDR", ":8080")
	t.Setenv("LUDO_NGROK", "true")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if s.Players != 6 || s.Seed != 99 || s.SpectateAddr != ":8080" || !s.Ngrok {
		t.Errorf("Unexpected settings: %+v", s)
	}
	if len(s.PlayerNames) != 2 || s.PlayerNames[1] != "Bea" {
		t.Errorf("Unexpected player names: %v", s.PlayerNames)
	}
}

func TestLoadSettings_BadValue(t *testing.T) {
	t.Setenv("LUDO_PLAYERS", "many")

	if _, err := LoadSettings(); err == nil {
		t.Error("Expected parse error for non-numeric player count")
	}
}

func TestSettings_GameConfig(t *testing.T) {
	t.Run("from player count", func(t *testing.T) {
		s := Settings{Players: 5, PlayerNames: []string{" Ana ", ""}}
		config, err := s.GameConfig(nil)
		if err != nil {
			t.Fatalf("Failed to build config: %v", err)
		}
		if config.PlayerCount != 5 || len(config.PlayerNames) != 1 || config.PlayerNames[0] != "Ana" {
			t.Errorf("Unexpected config: %+v", config)
		}
	})

	t.Run("invalid player count", func(t *testing.T) {
		_, err := Settings{Players: 3}.GameConfig(nil)
		if !errors.Is(err, engine.ErrInvalidPlayerCount) {
			t.Errorf("Expected ErrInvalidPlayerCount, got %v", err)
		}
	})

	t.Run("preset wins over player count", func(t *testing.T) {
		dir := t.TempDir()
		six := createValidConfig()
		six.Name = "Six"
		six.PlayerCount = 6
		writeConfigFile(t, dir, "six_players", six)
		manager, _ := NewManager(dir)

		config, err := Settings{Players: 4, Preset: "six_players"}.GameConfig(manager)
		if err != nil {
			t.Fatalf("Failed to resolve preset: %v", err)
		}
		if config.PlayerCount != 6 {
			t.Errorf("Expected preset player count 6, got %d", config.PlayerCount)
		}
	})

	t.Run("preset without manager", func(t *testing.T) {
		if _, err := (Settings{Preset: "classic"}).GameConfig(nil); err == nil {
			t.Error("Expected error when no preset directory is available")
		}
	})
}
