// Package config provides configuration management for the race game.
//
// The config package handles:
//   - Loading seating presets from JSON files
//   - Preset validation and caching
//   - Default preset selection
//   - Process settings from environment variables
//
// Preset Format:
//
// Presets are stored as JSON files in the presets directory. Each preset
// defines the number of seats (4 to 6) and optional player names; seats
// without a name are named after their color:
//
//	{
//	  "name": "classic",
//	  "description": "Four players, one per color",
//	  "player_count": 4
//	}
//
// Usage:
//
//	manager, err := config.NewManager("presets")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific preset
//	gameConfig, err := manager.LoadConfig("six_players")
//
//	// Get default preset (classic.json when present)
//	defaultConfig := manager.GetDefault()
//
// Settings:
//
// Settings are parsed from LUDO_* environment variables. Command line flags
// take precedence over them.
package config
