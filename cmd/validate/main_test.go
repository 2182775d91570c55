package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePreset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}
	return path
}

func hasMessage(result ValidationResult, substr string) bool {
	for _, m := range result.Messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidatePreset_Valid(t *testing.T) {
	path := writePreset(t, "family.json", `{
		"name": "family",
		"description": "Five named seats",
		"player_count": 5,
		"player_names": ["Mom", "Dad"]
	}`)

	result := validatePreset(path)
	if !result.Valid {
		t.Fatalf("Expected valid preset, but got errors: %v", result.Messages)
	}
	if result.File != "family.json" {
		t.Errorf("Expected file name family.json, got %s", result.File)
	}

	for _, want := range []string{"Seats: 5 (2 named, 3 by color)", "Ring: 65 cells", "Preset ID: family"} {
		if !hasMessage(result, want) {
			t.Errorf("Expected '%s' in %v", want, result.Messages)
		}
	}
}

func TestValidatePreset_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected string
	}{
		{"Invalid JSON", "bad.json", `{"name": "bad", invalid}`, "Invalid JSON"},
		{"Unknown field", "grid.json", `{"name": "grid", "player_count": 4, "layout": []}`, "unknown field"},
		{"Too few seats", "small.json", `{"name": "small", "player_count": 3}`, "player_count must be between 4 and 6"},
		{"Too many seats", "big.json", `{"name": "big", "player_count": 7}`, "player_count must be between 4 and 6"},
		{"Missing name", "anon.json", `{"player_count": 4}`, "name is required"},
		{"Duplicate names", "dup.json", `{"name": "dup", "player_count": 4, "player_names": ["Ana", "ana"]}`, "duplicate player name"},
		{"Bad preset ID", "Six Players.json", `{"name": "six", "player_count": 6}`, "Preset ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validatePreset(writePreset(t, tt.file, tt.content))
			if result.Valid {
				t.Fatal("Expected invalid preset")
			}
			if !hasMessage(result, tt.expected) {
				t.Errorf("Expected '%s' in %v", tt.expected, result.Messages)
			}
		})
	}
}

func TestValidatePreset_MissingFile(t *testing.T) {
	result := validatePreset(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasMessage(result, "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Messages)
	}
}

func TestValidatePreset_NameDiffersFromID(t *testing.T) {
	result := validatePreset(writePreset(t, "six_players.json", `{"name": "Six", "player_count": 6}`))
	if !result.Valid {
		t.Fatalf("Expected valid preset, got %v", result.Messages)
	}
	if !hasMessage(result, "differs from preset ID") {
		t.Errorf("Expected a note about the name, got %v", result.Messages)
	}
}

func TestValidateBoard(t *testing.T) {
	for players := 4; players <= 6; players++ {
		if problems := validateBoard(players); len(problems) != 0 {
			t.Errorf("%d players: unexpected problems %v", players, problems)
		}
	}
}

func TestShippedPresets(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "presets", "*.json"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(files) == 0 {
		t.Skip("Skipping test - presets directory not found")
	}

	for _, file := range files {
		if result := validatePreset(file); !result.Valid {
			t.Errorf("%s is invalid: %v", file, result.Messages)
		}
	}
}
