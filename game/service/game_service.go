package service

import (
	"context"

	"github.com/wricardo/ludo/game/engine"
	"github.com/wricardo/ludo/game/session"
)

// SpectatorService is the read-only view of running games used by the HTTP,
// WebSocket and MCP surfaces. Spectators can observe; they never act.
type SpectatorService interface {
	// Watch starts tracking sess. It must be called before sess.Run.
	Watch(sess *session.Session) error
	// Finish records how a watched session ended.
	Finish(sessionID string, outcome session.Outcome)

	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)

	GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	GetBoard(ctx context.Context, sessionID string) (*BoardResponse, error)

	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
}

// ConfigManager handles seating preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
}

// Broadcaster pushes frames to live spectators of a session
type Broadcaster interface {
	BroadcastFrame(sessionID string, snap *engine.Snapshot, turn *engine.TurnResult)
}
