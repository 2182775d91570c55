package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/ludo/game/engine"
	"github.com/wricardo/ludo/game/session"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewConsole(strings.NewReader(input), out), out
}

func turnFor(t *testing.T, game *engine.Game, seat int) engine.TurnContext {
	t.Helper()
	return game.TurnContext(game.Players()[seat])
}

func TestConsole_ChooseAction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected engine.Action
		prompts  int
	}{
		{"Roll", "r\n", engine.ActionRoll, 1},
		{"Quit", "q\n", engine.ActionQuit, 1},
		{"Upper case", "R\n", engine.ActionRoll, 1},
		{"Invalid key re-prompts", "x\n\nr\n", engine.ActionRoll, 3},
		{"Closed input quits", "", engine.ActionQuit, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console, out := newTestConsole(tt.input)
			game := engine.NewGameWithDefaults()

			action, err := console.ChooseAction(context.Background(), turnFor(t, game, 0))
			if err != nil {
				t.Fatalf("ChooseAction failed: %v", err)
			}
			if action != tt.expected {
				t.Errorf("Expected action %v, got %v", tt.expected, action)
			}
			if got := strings.Count(out.String(), "Enter r to roll_dice, q to quit: "); got != tt.prompts {
				t.Errorf("Expected %d prompts, got %d", tt.prompts, got)
			}
			if !strings.Contains(out.String(), "Now it's RED's turn.") {
				t.Errorf("Expected turn banner, got: %s", out.String())
			}
		})
	}
}

func TestConsole_PlayerInfo(t *testing.T) {
	console, out := newTestConsole("r\n")
	game := engine.NewGameWithDefaults()
	game.Players()[1].Pawns[2].Unrestrict()

	if _, err := console.ChooseAction(context.Background(), turnFor(t, game, 1)); err != nil {
		t.Fatalf("ChooseAction failed: %v", err)
	}

	for _, want := range []string{"you have 3 restricted pawns", "you have 1 unrestricted pawns", "pawn 2 at 13"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected '%s' in output, got: %s", want, out.String())
		}
	}
}

func TestConsole_ChooseUnrestrictOrMove(t *testing.T) {
	tests := []struct {
		input    string
		expected engine.Choice
	}{
		{"u\n", engine.ChoiceUnrestrict},
		{"m\n", engine.ChoiceMove},
		{"z\nm\n", engine.ChoiceMove},
	}

	for _, tt := range tests {
		console, out := newTestConsole(tt.input)
		turn := turnFor(t, engine.NewGameWithDefaults(), 0)
		turn.Roll = 6

		choice, err := console.ChooseUnrestrictOrMove(context.Background(), turn)
		if err != nil {
			t.Fatalf("ChooseUnrestrictOrMove(%q) failed: %v", tt.input, err)
		}
		if choice != tt.expected {
			t.Errorf("Input %q: expected %v, got %v", tt.input, tt.expected, choice)
		}
		if !strings.HasPrefix(out.String(), "You rolled 6\n") {
			t.Errorf("Expected the roll first, got: %s", out.String())
		}
	}
}

func TestConsole_ChoosePawnIndex(t *testing.T) {
	console, out := newTestConsole("7\nabc\n1\n3\n")
	game := engine.NewGameWithDefaults()
	red := game.Players()[0]
	red.Pawns[1].Unrestrict()
	red.Pawns[3].Unrestrict()
	turn := game.TurnContext(red)
	turn.Roll = 4

	index, err := console.ChoosePawnIndex(context.Background(), turn, turn.Unrestricted)
	if err != nil {
		t.Fatalf("ChoosePawnIndex failed: %v", err)
	}
	if index != 1 {
		t.Errorf("Expected pawn 1, got %d", index)
	}

	text := out.String()
	if got := strings.Count(text, "cannot be moved"); got != 2 {
		t.Errorf("Expected 2 rejections, got %d in: %s", got, text)
	}
	for _, want := range []string{"You rolled 4", "choose which pawn to move", "pawn 1 at 0", "pawn 3 at 0"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected '%s' in output, got: %s", want, text)
		}
	}
}

func TestConsole_ChoosePawnIndex_ClosedInput(t *testing.T) {
	console, _ := newTestConsole("")
	turn := turnFor(t, engine.NewGameWithDefaults(), 0)

	_, err := console.ChoosePawnIndex(context.Background(), turn, []int{0})
	if !errors.Is(err, ErrInputClosed) {
		t.Errorf("Expected ErrInputClosed, got %v", err)
	}
}

func TestConsole_ContextCancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	console := NewConsole(reader, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := console.ChooseAction(ctx, turnFor(t, engine.NewGameWithDefaults(), 0))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestConsole_AskPlayerCount(t *testing.T) {
	console, out := newTestConsole("3\nseven\n5\n")

	n, err := console.AskPlayerCount(context.Background())
	if err != nil {
		t.Fatalf("AskPlayerCount failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Expected 5 players, got %d", n)
	}
	if got := strings.Count(out.String(), "Enter the number of players (min 4, max 6): "); got != 3 {
		t.Errorf("Expected 3 prompts, got %d", got)
	}
}

func TestConsole_Render(t *testing.T) {
	console, out := newTestConsole("")
	board := engine.BuildBoard(4)

	console.Render(board, []int{0, 52})

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), lines)
	}
	ruler := strings.Repeat("#", 33)
	if lines[0] != ruler || lines[2] != ruler {
		t.Errorf("Expected rulers of 33 '#', got %q and %q", lines[0], lines[2])
	}
	cells := strings.Split(lines[1], " ")
	if len(cells) != 52 {
		t.Errorf("Expected 52 cells, got %d", len(cells))
	}
	if cells[0] != engine.OccupiedGlyph {
		t.Errorf("Expected cell 0 occupied, got %s", cells[0])
	}
}

func TestConsole_PlaysASession(t *testing.T) {
	// RED: forced out on a 6, then moves 3 after one bad index; GREEN quits
	console, out := newTestConsole("r\nr\n3\n0\nq\n")
	game := engine.NewGameWithDefaults()
	sess := session.New(game, session.NewScriptedDice(6, 3), console, console, session.WithListener(console))

	outcome, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != session.OutcomeQuit {
		t.Errorf("Expected quit, got %s", outcome)
	}
	if game.TotalTurns() != 2 {
		t.Errorf("Expected 2 turns, got %d", game.TotalTurns())
	}
	if pos := game.Players()[0].Pawns[0].CurPos(); pos != 3 {
		t.Errorf("Expected RED pawn 0 at 3, got %d", pos)
	}

	text := out.String()
	for _, want := range []string{
		"You rolled 6",
		"You have no movable pawns so unrestricting a pawn",
		"You rolled 3",
		"RED moved pawn 0 from 0 to 3",
		"Now it's GREEN's turn.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected '%s' in output, got: %s", want, text)
		}
	}
	if got := strings.Count(text, "You rolled 3"); got != 1 {
		t.Errorf("Expected the second roll printed once, got %d", got)
	}
	if got := strings.Count(text, strings.Repeat("#", 33)); got != 4 {
		t.Errorf("Expected two framed boards, got %d rulers", got)
	}
}
