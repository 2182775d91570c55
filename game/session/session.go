package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/ludo/game/engine"
)

// Outcome is how a Run loop ended.
type Outcome int

const (
	OutcomeQuit Outcome = iota
	OutcomeAllWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeAllWon:
		return "all_won"
	default:
		return "unknown"
	}
}

// Renderer displays the board after every resolved roll.
type Renderer interface {
	Render(board engine.Board, occupied []int)
}

// Listener is notified after every resolved roll. Implementations must not
// retain result beyond the call unless they copy it; snap is already a copy.
type Listener interface {
	TurnResolved(result *engine.TurnResult, snap *engine.Snapshot)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(result *engine.TurnResult, snap *engine.Snapshot)

func (f ListenerFunc) TurnResolved(result *engine.TurnResult, snap *engine.Snapshot) {
	f(result, snap)
}

// Session runs one game from start to finish. The game is only touched by the
// goroutine calling Run; observers get snapshots through listeners.
type Session struct {
	ID        string
	Config    *engine.GameConfig
	CreatedAt time.Time

	game      *engine.Game
	scheduler *engine.Scheduler
	dice      engine.DiceSource
	decisions engine.DecisionSource
	renderer  Renderer
	listeners []Listener
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session ID instead of a generated one.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// WithListener registers a listener for resolved turns.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

// New creates a session over game. The renderer may be nil.
func New(game *engine.Game, dice engine.DiceSource, decisions engine.DecisionSource, renderer Renderer, opts ...Option) *Session {
	s := &Session{
		Config:    game.Config(),
		CreatedAt: time.Now(),
		game:      game,
		scheduler: engine.NewScheduler(game, decisions),
		dice:      dice,
		decisions: decisions,
		renderer:  renderer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ID == "" {
		s.ID = generateSessionID()
	}
	return s
}

// AddListener registers l. It must be called before Run.
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Game returns the game owned by the session.
func (s *Session) Game() *engine.Game {
	return s.game
}

// Run plays turns until every player has won, a player quits, or ctx is
// cancelled. Errors from the decision source end the loop.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	logger := log.With().Str("session", s.ID).Logger()
	logger.Debug().Int("players", len(s.game.Players())).Msg("session started")

	for {
		if s.game.AllWon() {
			logger.Debug().Int("turns", s.game.TotalTurns()).Msg("every player has won")
			return OutcomeAllWon, nil
		}
		if err := ctx.Err(); err != nil {
			return OutcomeQuit, err
		}

		current, err := s.scheduler.Begin()
		if err != nil {
			return OutcomeQuit, err
		}

		action, err := s.decisions.ChooseAction(ctx, s.game.TurnContext(current))
		if err != nil {
			s.scheduler.Abort(current)
			return OutcomeQuit, fmt.Errorf("choose action: %w", err)
		}
		if action == engine.ActionQuit {
			s.scheduler.Abort(current)
			logger.Debug().Str("player", current.Name).Msg("player quit")
			return OutcomeQuit, nil
		}

		roll := s.dice.Roll()
		result, err := s.scheduler.Resolve(ctx, current, roll)
		if err != nil {
			return OutcomeQuit, fmt.Errorf("resolve turn %d: %w", s.game.TotalTurns()+1, err)
		}

		logger.Debug().
			Int("turn", result.TurnNumber).
			Str("player", result.Player).
			Int("roll", result.Roll).
			Str("action", string(result.Action)).
			Int("pawn", result.PawnIndex).
			Bool("bonus", result.BonusTurn).
			Msg("turn resolved")

		s.notify(result)
		if s.renderer != nil {
			s.renderer.Render(s.game.Board(), s.game.OccupiedPositions())
		}
	}
}

func (s *Session) notify(result *engine.TurnResult) {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.game.Snapshot()
	for _, l := range s.listeners {
		l.TurnResolved(result, snap)
	}
}
