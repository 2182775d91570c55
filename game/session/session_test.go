package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wricardo/ludo/game/engine"
)

// cycleDice repeats a fixed pattern of rolls forever.
type cycleDice struct {
	rolls []int
	next  int
}

func (d *cycleDice) Roll() int {
	roll := d.rolls[d.next%len(d.rolls)]
	d.next++
	return roll
}

// greedyDecisions always rolls, prefers unrestricting, and moves the first
// pawn that has not won yet.
type greedyDecisions struct {
	quitAfter int
	actions   int
	err       error
}

func (d *greedyDecisions) ChooseAction(ctx context.Context, turn engine.TurnContext) (engine.Action, error) {
	if d.err != nil {
		return engine.ActionRoll, d.err
	}
	d.actions++
	if d.quitAfter > 0 && d.actions >= d.quitAfter {
		return engine.ActionQuit, nil
	}
	return engine.ActionRoll, nil
}

func (d *greedyDecisions) ChoosePawnIndex(ctx context.Context, turn engine.TurnContext, candidates []int) (int, error) {
	for _, i := range candidates {
		if turn.Phases[i] != engine.Won {
			return i, nil
		}
	}
	return candidates[0], nil
}

func (d *greedyDecisions) ChooseUnrestrictOrMove(ctx context.Context, turn engine.TurnContext) (engine.Choice, error) {
	return engine.ChoiceUnrestrict, nil
}

type recordingRenderer struct {
	calls    int
	occupied [][]int
}

func (r *recordingRenderer) Render(board engine.Board, occupied []int) {
	r.calls++
	r.occupied = append(r.occupied, occupied)
}

func newTestSession(t *testing.T, dice engine.DiceSource, decisions engine.DecisionSource, renderer Renderer, opts ...Option) *Session {
	t.Helper()
	game, err := engine.NewGame(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return New(game, dice, decisions, renderer, opts...)
}

func TestSession_RunsUntilEveryoneWins(t *testing.T) {
	renderer := &recordingRenderer{}
	var snapshots []*engine.Snapshot
	listener := ListenerFunc(func(result *engine.TurnResult, snap *engine.Snapshot) {
		snapshots = append(snapshots, snap)
	})

	sess := newTestSession(t, &cycleDice{rolls: []int{6, 5}}, &greedyDecisions{}, renderer, WithListener(listener))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	outcome, err := sess.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != OutcomeAllWon {
		t.Fatalf("Expected all_won, got %s", outcome)
	}

	game := sess.Game()
	if !game.AllWon() {
		t.Error("Expected every player to have won")
	}
	if renderer.calls != game.TotalTurns() {
		t.Errorf("Expected one render per turn, got %d renders for %d turns", renderer.calls, game.TotalTurns())
	}
	if len(snapshots) != game.TotalTurns() {
		t.Errorf("Expected one snapshot per turn, got %d", len(snapshots))
	}
	if !snapshots[len(snapshots)-1].AllWon {
		t.Error("Expected last snapshot to report all won")
	}
	if engine.CountPawnsInPhase(game.Players(), engine.Won) != 16 {
		t.Error("Expected 16 won pawns")
	}
}

func TestSession_FirstTurnScenario(t *testing.T) {
	renderer := &recordingRenderer{}
	sess := newTestSession(t, NewScriptedDice(6), &greedyDecisions{quitAfter: 2}, renderer)

	outcome, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != OutcomeQuit {
		t.Errorf("Expected quit, got %s", outcome)
	}

	game := sess.Game()
	red := game.Players()[0]
	if red.Pawns[0].CurPos() != 0 {
		t.Errorf("Expected red pawn 0 at 0, got %d", red.Pawns[0].CurPos())
	}
	if game.Queue().Front() != red || game.Queue().Len() != 4 {
		t.Error("Expected RED restored to the front after quitting")
	}
	if len(renderer.occupied) != 1 || len(renderer.occupied[0]) != 1 || renderer.occupied[0][0] != 0 {
		t.Errorf("Expected one render with [0], got %v", renderer.occupied)
	}
}

func TestSession_QuitBeforeRolling(t *testing.T) {
	dice := NewScriptedDice(3)
	sess := newTestSession(t, dice, &greedyDecisions{quitAfter: 1}, nil)

	outcome, err := sess.Run(context.Background())
	if err != nil || outcome != OutcomeQuit {
		t.Fatalf("Expected clean quit, got %s, %v", outcome, err)
	}
	if sess.Game().TotalTurns() != 0 {
		t.Errorf("Expected no turns, got %d", sess.Game().TotalTurns())
	}
	if dice.next != 0 {
		t.Error("Expected dice untouched when quitting")
	}
}

func TestSession_CancelledContext(t *testing.T) {
	sess := newTestSession(t, NewScriptedDice(2), &greedyDecisions{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sess.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSession_DecisionErrorEndsRun(t *testing.T) {
	boom := errors.New("stdin closed")
	sess := newTestSession(t, NewScriptedDice(2), &greedyDecisions{err: boom}, nil)

	_, err := sess.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Expected decision error, got %v", err)
	}
	if sess.Game().Queue().Front().Name != "RED" {
		t.Error("Expected RED back at the front")
	}
}

func TestSession_InvalidRollEndsRun(t *testing.T) {
	sess := newTestSession(t, NewScriptedDice(9), &greedyDecisions{}, nil)

	_, err := sess.Run(context.Background())
	if !errors.Is(err, engine.ErrInvalidRoll) {
		t.Errorf("Expected ErrInvalidRoll, got %v", err)
	}
}

func TestSession_IDs(t *testing.T) {
	sess := newTestSession(t, NewScriptedDice(1), &greedyDecisions{}, nil)
	if len(sess.ID) != 4 {
		t.Errorf("Expected 4-character generated ID, got %q", sess.ID)
	}

	named := newTestSession(t, NewScriptedDice(1), &greedyDecisions{}, nil, WithID("table1"))
	if named.ID != "table1" {
		t.Errorf("Expected ID table1, got %q", named.ID)
	}
	if named.Config.Name != "classic" {
		t.Errorf("Expected classic config, got %s", named.Config.Name)
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeQuit.String() != "quit" || OutcomeAllWon.String() != "all_won" {
		t.Errorf("Unexpected outcome names %s, %s", OutcomeQuit, OutcomeAllWon)
	}
}
