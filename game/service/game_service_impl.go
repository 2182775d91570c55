package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/ludo/game/engine"
	"github.com/wricardo/ludo/game/session"
)

var ErrNoConfigs = errors.New("no preset directory configured")

// SessionManager is the registry the service records watched sessions in
type SessionManager interface {
	Register(s *session.Session) error
	Get(id string) (*session.Session, error)
}

// watched is everything a spectator may read about one session. It is only
// written from the session's listener and read under the service lock.
type watched struct {
	id        string
	config    *engine.GameConfig
	board     engine.Board
	createdAt time.Time
	updatedAt time.Time
	snap      *engine.Snapshot
	turns     []engine.TurnResult
	outcome   string
}

// spectatorService implements the SpectatorService interface
type spectatorService struct {
	sessions    SessionManager
	configs     ConfigManager
	broadcaster Broadcaster
	watched     map[string]*watched
	mu          sync.RWMutex
}

// NewSpectatorService creates a new spectator service. configs and
// broadcaster may be nil.
func NewSpectatorService(sessions SessionManager, configs ConfigManager, broadcaster Broadcaster) SpectatorService {
	return &spectatorService{
		sessions:    sessions,
		configs:     configs,
		broadcaster: broadcaster,
		watched:     make(map[string]*watched),
	}
}

// Watch registers the session and subscribes to its turns
func (s *spectatorService) Watch(sess *session.Session) error {
	if err := s.sessions.Register(sess); err != nil {
		return fmt.Errorf("failed to register session: %w", err)
	}

	game := sess.Game()
	w := &watched{
		id:        sess.ID,
		config:    sess.Config,
		board:     game.Board(),
		createdAt: sess.CreatedAt,
		updatedAt: sess.CreatedAt,
		snap:      game.Snapshot(),
		turns:     []engine.TurnResult{},
	}

	s.mu.Lock()
	s.watched[strings.ToLower(sess.ID)] = w
	s.mu.Unlock()

	sess.AddListener(session.ListenerFunc(func(result *engine.TurnResult, snap *engine.Snapshot) {
		s.turnResolved(w, result, snap)
	}))
	log.Debug().Str("session", sess.ID).Str("config", sess.Config.Name).Msg("watching session")
	return nil
}

func (s *spectatorService) turnResolved(w *watched, result *engine.TurnResult, snap *engine.Snapshot) {
	turn := *result

	s.mu.Lock()
	w.turns = append(w.turns, turn)
	w.snap = snap
	w.updatedAt = time.Now()
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastFrame(w.id, snap, &turn)
	}
}

// Finish records how a watched session ended
func (s *spectatorService) Finish(sessionID string, outcome session.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.watched[strings.ToLower(sessionID)]; ok {
		w.outcome = outcome.String()
		w.updatedAt = time.Now()
		log.Debug().Str("session", w.id).Str("outcome", w.outcome).Int("turns", len(w.turns)).Msg("session finished")
	}
}

func (s *spectatorService) get(sessionID string) (*watched, error) {
	w, ok := s.watched[strings.ToLower(sessionID)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, sessionID)
	}
	return w, nil
}

func (w *watched) info() *SessionInfo {
	info := &SessionInfo{
		ID:         w.id,
		ConfigName: w.config.Name,
		CreatedAt:  w.createdAt,
		UpdatedAt:  w.updatedAt,
		TotalTurns: w.snap.TotalTurns,
		AllWon:     w.snap.AllWon,
		Outcome:    w.outcome,
		GameConfig: w.config,
	}
	for _, p := range w.snap.Players {
		info.Players = append(info.Players, p.Name)
	}
	return info
}

// ListSessions returns every watched session, oldest first
func (s *spectatorService) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*SessionInfo, 0, len(s.watched))
	for _, w := range s.watched {
		result = append(result, w.info())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// GetSession retrieves session information
func (s *spectatorService) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return w.info(), nil
}

// GetGameState returns the latest snapshot of a session
func (s *spectatorService) GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return w.snap, nil
}

// GetTurnHistory returns paginated turn history
func (s *spectatorService) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	history := w.turns
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = engine.DefaultHistoryLimit
	}
	if opts.Limit > engine.MaxHistoryLimit {
		opts.Limit = engine.MaxHistoryLimit
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	turns := []engine.TurnResult{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				turns = append(turns, history[i])
			}
		} else {
			turns = append(turns, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// GetBoard returns the ring with current occupancy and per-color markers
func (s *spectatorService) GetBoard(ctx context.Context, sessionID string) (*BoardResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	resp := &BoardResponse{
		SessionID:  w.id,
		Seats:      w.board.Seats,
		RingLength: w.board.RingLength(),
		Cells:      w.snap.Board,
		Line:       w.snap.Board.String(),
		Occupied:   w.snap.Occupied,
	}
	for i := 0; i < w.board.Seats; i++ {
		c := engine.Color(i)
		resp.Markers = append(resp.Markers, ColorMarkers{
			Color: c.String(),
			Entry: w.board.EntryIndex(c),
			End:   w.board.EndIndex(c),
			Arrow: w.board.ArrowIndex(c),
			Star:  w.board.StarIndex(c),
		})
	}
	return resp, nil
}

// ListConfigs returns available seating presets
func (s *spectatorService) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	if s.configs == nil {
		return []*ConfigInfo{}, nil
	}
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific preset
func (s *spectatorService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if s.configs == nil {
		return nil, ErrNoConfigs
	}
	return s.configs.LoadConfig(configName)
}
