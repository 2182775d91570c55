// Command validate checks seating preset JSON files. For every file it checks:
//   - JSON structure, with unknown fields rejected
//   - the rules enforced when a game is created (name, 4 to 6 seats, names)
//   - that the preset ID (file name) is usable with --preset
//   - that the ring built for the seat count has one entry, arrow and star
//     cell per reserved segment and no two markers share a cell
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/ludo/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages contains informational lines; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

var presetIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// validatePreset loads and validates a single preset file
func validatePreset(filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	id := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if !presetIDPattern.MatchString(id) {
		result.fail("Preset ID %q must be lowercase letters, digits, '-' or '_'", id)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	result.Messages = append(result.Messages, validateBoard(config.PlayerCount)...)
	for _, m := range result.Messages {
		if !strings.HasPrefix(m, "✓") {
			result.Valid = false
		}
	}

	if result.Valid {
		board := engine.BuildBoard(config.PlayerCount)
		named := len(config.PlayerNames)
		result.Messages = append(result.Messages,
			fmt.Sprintf("✓ Name: %s", config.Name),
			fmt.Sprintf("✓ Preset ID: %s", id),
			fmt.Sprintf("✓ Seats: %d (%d named, %d by color)", config.PlayerCount, named, config.PlayerCount-named),
			fmt.Sprintf("✓ Ring: %d cells", board.RingLength()),
		)
		if config.Name != id {
			result.Messages = append(result.Messages, fmt.Sprintf("✓ Note: name %q differs from preset ID %q", config.Name, id))
		}
	}

	return result
}

// validateBoard builds the ring for playerCount seats and checks every
// reserved segment got its markers on distinct cells.
func validateBoard(playerCount int) []string {
	var problems []string
	board := engine.BuildBoard(playerCount)

	owner := make(map[int]string)
	for i := 0; i < board.Seats; i++ {
		color := engine.Color(i)
		marks := map[string]int{
			"entry": board.EntryIndex(color),
			"arrow": board.ArrowIndex(color),
			"star":  board.StarIndex(color),
		}
		for kind, idx := range marks {
			label := fmt.Sprintf("%s %s", color, kind)
			if prev, taken := owner[idx]; taken {
				problems = append(problems, fmt.Sprintf("Cell %d is both %s and %s", idx, prev, label))
				continue
			}
			owner[idx] = label
		}
		if board.EndIndex(color) != board.ArrowIndex(color) {
			problems = append(problems, fmt.Sprintf("%s end cell %d is not marked by its arrow", color, board.EndIndex(color)))
		}
	}

	counts := make(map[engine.CellKind]int)
	for _, cell := range board.Cells {
		counts[cell.Kind]++
	}
	for _, kind := range []engine.CellKind{engine.CellEntry, engine.CellArrow, engine.CellStar} {
		if counts[kind] != board.Seats {
			problems = append(problems, fmt.Sprintf("Expected %d %s cells, got %d", board.Seats, kind, counts[kind]))
		}
	}

	return problems
}

func run(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(cmd.String("dir"), "*.json"))
		if err != nil {
			return fmt.Errorf("finding preset files: %w", err)
		}
		files = matches
	}
	if len(files) == 0 {
		return cli.Exit(fmt.Sprintf("no preset files found in %s", cmd.String("dir")), 1)
	}

	allValid := true
	for _, file := range files {
		result := validatePreset(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Messages {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Println("  ❌ " + msg)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		return cli.Exit("❌ Some presets have errors", 1)
	}
	fmt.Println("✅ All presets are valid!")
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "check seating preset files",
		ArgsUsage: "[preset.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "presets",
				Usage:   "directory scanned when no files are given",
				Sources: cli.EnvVars("LUDO_CONFIG_DIR"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
