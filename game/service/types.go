package service

import (
	"time"

	"github.com/wricardo/ludo/game/engine"
)

// SessionInfo provides information about a watched session
type SessionInfo struct {
	ID         string             `json:"id"`
	ConfigName string             `json:"config_name"`
	Players    []string           `json:"players"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	TotalTurns int                `json:"total_turns"`
	AllWon     bool               `json:"all_won"`
	Outcome    string             `json:"outcome,omitempty"` // "quit" or "all_won" once the session has ended
	GameConfig *engine.GameConfig `json:"game_config"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnResult `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ColorMarkers are the ring indices reserved for one color
type ColorMarkers struct {
	Color string `json:"color"`
	Entry int    `json:"entry"`
	End   int    `json:"end"`
	Arrow int    `json:"arrow"`
	Star  int    `json:"star"`
}

// BoardResponse is the rendered ring of a session
type BoardResponse struct {
	SessionID  string         `json:"session_id"`
	Seats      int            `json:"seats"`
	RingLength int            `json:"ring_length"`
	Cells      engine.Frame   `json:"cells"`
	Line       string         `json:"line"`
	Occupied   []int          `json:"occupied"`
	Markers    []ColorMarkers `json:"markers"`
}

// ConfigInfo provides information about a seating preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to pass as --preset
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	PlayerCount int    `json:"player_count"`
}
