package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrInvalidRoll        = errors.New("invalid dice roll")
	ErrEmptyQueue         = errors.New("turn queue is empty")
)

// DiceSource supplies dice rolls in [DiceMin, DiceMax].
type DiceSource interface {
	Roll() int
}

// DecisionSource answers the questions the scheduler asks the current
// player. Calls block until the player responds.
type DecisionSource interface {
	// ChooseAction asks whether to roll or quit the game.
	ChooseAction(ctx context.Context, turn TurnContext) (Action, error)
	// ChoosePawnIndex must return one of candidates.
	ChoosePawnIndex(ctx context.Context, turn TurnContext, candidates []int) (int, error)
	// ChooseUnrestrictOrMove is only asked when both are legal.
	ChooseUnrestrictOrMove(ctx context.Context, turn TurnContext) (Choice, error)
}

// Scheduler rotates turns and applies the roll rules:
//
//   - a 6 grants a bonus turn: the player goes back to the front of the queue
//     whatever it does with the roll
//   - a 6 with no pawn out forces the lowest restricted pawn out
//   - a 6 with every pawn out requires a move
//   - a 6 otherwise lets the player unrestrict or move
//   - any other roll moves a pawn if one is out, else it is wasted, and the
//     player goes to the back of the queue
type Scheduler struct {
	game      *Game
	decisions DecisionSource
}

// NewScheduler creates a scheduler over game's queue.
func NewScheduler(game *Game, decisions DecisionSource) *Scheduler {
	return &Scheduler{game: game, decisions: decisions}
}

// Begin pops the player whose turn is current.
func (s *Scheduler) Begin() (*Player, error) {
	current := s.game.queue.PopFront()
	if current == nil {
		return nil, ErrEmptyQueue
	}
	return current, nil
}

// Abort returns a player taken by Begin to the front of the queue without
// resolving a roll.
func (s *Scheduler) Abort(current *Player) {
	s.game.queue.PushFront(current)
}

// Resolve applies roll for the current player, requeues it and records the
// turn. On error no pawn has been mutated and the player is back at the front.
func (s *Scheduler) Resolve(ctx context.Context, current *Player, roll int) (*TurnResult, error) {
	if roll < DiceMin || roll > DiceMax {
		s.Abort(current)
		return nil, fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidRoll, roll, DiceMin, DiceMax)
	}

	wasWon := current.HasWon()
	turn := s.game.TurnContext(current)
	turn.Roll = roll

	result := &TurnResult{
		TurnNumber: s.game.totalTurns + 1,
		Player:     current.Name,
		Color:      current.Color.String(),
		Roll:       roll,
		PawnIndex:  -1,
		Events: []GameEvent{{
			Type:      "roll",
			Message:   fmt.Sprintf("You rolled %d", roll),
			Timestamp: time.Now(),
		}},
		Timestamp: time.Now().Unix(),
	}

	var err error
	if roll == BonusRoll {
		err = s.resolveBonus(ctx, current, turn, result)
	} else {
		err = s.resolveRegular(ctx, current, turn, result)
	}
	if err != nil {
		s.Abort(current)
		return nil, err
	}

	if result.BonusTurn {
		s.game.queue.PushFront(current)
	} else {
		s.game.queue.PushBack(current)
	}

	if !wasWon && current.HasWon() {
		result.PlayerWon = true
		result.Events = append(result.Events, GameEvent{
			Type:      "player_won",
			Message:   fmt.Sprintf("%s has brought every pawn home", current.Name),
			Timestamp: time.Now(),
		})
	}

	s.game.record(result)
	return result, nil
}

func (s *Scheduler) resolveBonus(ctx context.Context, current *Player, turn TurnContext, result *TurnResult) error {
	result.BonusTurn = true
	defer func() {
		result.Events = append(result.Events, GameEvent{
			Type:      "bonus_turn",
			Message:   fmt.Sprintf("%s rolled a %d and plays again", current.Name, BonusRoll),
			Timestamp: time.Now(),
		})
	}()

	switch {
	case len(turn.Unrestricted) == 0:
		s.unrestrictFirst(current, result, TurnForcedUnrestrict)
		return nil
	case len(turn.Restricted) == 0:
		return s.move(ctx, current, turn, result)
	}

	choice, err := s.decisions.ChooseUnrestrictOrMove(ctx, turn)
	if err != nil {
		return fmt.Errorf("choose unrestrict or move: %w", err)
	}

	switch choice {
	case ChoiceUnrestrict:
		s.unrestrictFirst(current, result, TurnUnrestrict)
		return nil
	case ChoiceMove:
		return s.move(ctx, current, turn, result)
	default:
		return fmt.Errorf("%w: unknown choice %d", ErrInvariantViolation, choice)
	}
}

func (s *Scheduler) resolveRegular(ctx context.Context, current *Player, turn TurnContext, result *TurnResult) error {
	if len(turn.Unrestricted) > 0 {
		return s.move(ctx, current, turn, result)
	}

	result.Action = TurnWasted
	result.Events = append(result.Events, GameEvent{
		Type:      "wasted_roll",
		Message:   "you have no pawn to move try again",
		Timestamp: time.Now(),
	})
	return nil
}

// unrestrictFirst releases the lowest-index restricted pawn.
func (s *Scheduler) unrestrictFirst(current *Player, result *TurnResult, action TurnAction) {
	index := current.RestrictedPawns()[0]
	pawn := current.Pawns[index]
	pawn.Unrestrict()

	message := "Pawn unrestricted and start from your home"
	if action == TurnForcedUnrestrict {
		message = "You have no movable pawns so unrestricting a pawn"
	}

	result.Action = action
	result.PawnIndex = index
	result.Events = append(result.Events, GameEvent{
		Type:      "unrestrict",
		Message:   fmt.Sprintf("%s (pawn %d at %d)", message, index, pawn.CurPos()),
		Timestamp: time.Now(),
	})
}

// move asks for a pawn among the unrestricted ones and advances it.
func (s *Scheduler) move(ctx context.Context, current *Player, turn TurnContext, result *TurnResult) error {
	candidates := turn.Unrestricted
	index, err := s.decisions.ChoosePawnIndex(ctx, turn, candidates)
	if err != nil {
		return fmt.Errorf("choose pawn: %w", err)
	}
	if !slices.Contains(candidates, index) {
		return fmt.Errorf("%w: pawn %d not in %v", ErrInvariantViolation, index, candidates)
	}

	movement := Advance(current.Pawns[index], result.Roll, s.game.board.RingLength())

	result.Action = TurnMove
	result.PawnIndex = index
	result.Movement = &movement
	result.Events = append(result.Events, movementEvents(current, index, movement)...)
	return nil
}
