package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/ludo/game/engine"
)

// RulerWidth is the width of the line printed above and below the board.
const RulerWidth = 33

var ErrInputClosed = errors.New("input closed")

type line struct {
	text string
	err  error
}

// Console plays a game at a terminal. It is the decision source for every
// seat, renders the board after each roll and prints what each roll did.
type Console struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan line

	// turn number whose roll was already printed by a prompt
	announced int
}

// NewConsole reads answers from in and writes prompts and frames to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

// scan feeds lines from the input to readLine. It runs until the input ends.
func (c *Console) scan() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- line{text: scanner.Text()}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	c.lines <- line{err: err}
	close(c.lines)
}

// readLine prints prompt and waits for one line of input or ctx.
func (c *Console) readLine(ctx context.Context, prompt string) (string, error) {
	c.once.Do(func() {
		c.lines = make(chan line)
		go c.scan()
	})

	fmt.Fprint(c.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if l.err != nil {
			if errors.Is(l.err, io.EOF) {
				return "", ErrInputClosed
			}
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return strings.ToLower(strings.TrimSpace(l.text)), nil
	}
}

// showPlayerInfo prints whose turn it is and where their pawns are.
func (c *Console) showPlayerInfo(turn engine.TurnContext) {
	fmt.Fprintf(c.out, "Now it's %s's turn.\n", turn.Player)
	fmt.Fprintf(c.out, "you have %d restricted pawns\n", len(turn.Restricted))
	fmt.Fprintf(c.out, "you have %d unrestricted pawns\n", len(turn.Unrestricted))
	c.showPawns(turn, turn.Unrestricted)
}

func (c *Console) showPawns(turn engine.TurnContext, indices []int) {
	for _, i := range indices {
		switch turn.Phases[i] {
		case engine.InFinalStretch:
			fmt.Fprintf(c.out, "pawn %d in final stretch\n", i)
		case engine.Won:
			fmt.Fprintf(c.out, "pawn %d has won\n", i)
		default:
			fmt.Fprintf(c.out, "pawn %d at %d\n", i, turn.Positions[i])
		}
	}
}

func (c *Console) announceRoll(turn engine.TurnContext) {
	if c.announced == turn.TurnNumber {
		return
	}
	c.announced = turn.TurnNumber
	fmt.Fprintf(c.out, "You rolled %d\n", turn.Roll)
}

// ChooseAction asks whether to roll or quit. Unknown keys re-prompt. A closed
// input quits the game.
func (c *Console) ChooseAction(ctx context.Context, turn engine.TurnContext) (engine.Action, error) {
	c.showPlayerInfo(turn)

	for {
		key, err := c.readLine(ctx, "Enter r to roll_dice, q to quit: ")
		if errors.Is(err, ErrInputClosed) {
			fmt.Fprintln(c.out)
			return engine.ActionQuit, nil
		}
		if err != nil {
			return engine.ActionQuit, err
		}

		switch key {
		case "r":
			return engine.ActionRoll, nil
		case "q":
			return engine.ActionQuit, nil
		default:
			fmt.Fprintln(c.out, "Enter the letter again")
		}
	}
}

// ChooseUnrestrictOrMove is asked on a six when both choices are legal.
func (c *Console) ChooseUnrestrictOrMove(ctx context.Context, turn engine.TurnContext) (engine.Choice, error) {
	c.announceRoll(turn)

	for {
		key, err := c.readLine(ctx, "Enter u to unrestrict a pawn, m to a move pawn already unrestricted: ")
		if err != nil {
			return engine.ChoiceMove, err
		}

		switch key {
		case "u":
			return engine.ChoiceUnrestrict, nil
		case "m":
			return engine.ChoiceMove, nil
		default:
			fmt.Fprintln(c.out, "Enter the letter again")
		}
	}
}

// ChoosePawnIndex lists the movable pawns and reads an index until one of
// candidates is entered.
func (c *Console) ChoosePawnIndex(ctx context.Context, turn engine.TurnContext, candidates []int) (int, error) {
	c.announceRoll(turn)
	fmt.Fprintln(c.out, "choose which pawn to move")
	c.showPawns(turn, candidates)

	for {
		answer, err := c.readLine(ctx, "enter the index of pawn you want to move: ")
		if err != nil {
			return 0, err
		}

		index, err := strconv.Atoi(answer)
		if err != nil || !slices.Contains(candidates, index) {
			log.Debug().Str("answer", answer).Ints("candidates", candidates).Msg("rejected pawn index")
			fmt.Fprintf(c.out, "pawn %q cannot be moved, choose one of %v\n", answer, candidates)
			continue
		}
		return index, nil
	}
}

// TurnResolved prints the messages of a resolved roll.
func (c *Console) TurnResolved(result *engine.TurnResult, snap *engine.Snapshot) {
	for _, event := range result.Events {
		if event.Type == "roll" && c.announced == result.TurnNumber {
			continue
		}
		fmt.Fprintln(c.out, event.Message)
	}
	if snap.AllWon {
		fmt.Fprintln(c.out, "Every player has won. Game over.")
	}
}

// Render prints the board between two rulers.
func (c *Console) Render(board engine.Board, occupied []int) {
	ruler := strings.Repeat("#", RulerWidth)
	fmt.Fprintln(c.out, ruler)
	fmt.Fprintln(c.out, engine.RenderOccupancy(board, occupied).String())
	fmt.Fprintln(c.out, ruler)
}

// AskPlayerCount reads the number of seats, re-prompting until it is between
// engine.MinPlayers and engine.MaxPlayers.
func (c *Console) AskPlayerCount(ctx context.Context) (int, error) {
	prompt := fmt.Sprintf("Enter the number of players (min %d, max %d): ", engine.MinPlayers, engine.MaxPlayers)
	for {
		answer, err := c.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= engine.MinPlayers && n <= engine.MaxPlayers {
			return n, nil
		}
		fmt.Fprintf(c.out, "%q is not a valid number of players\n", answer)
	}
}
