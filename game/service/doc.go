// Package service provides the read model behind the spectator surfaces.
//
// The service package implements:
//   - Tracking of running sessions through turn listeners
//   - Thread-safe snapshots of game state for HTTP, WebSocket and MCP readers
//   - Paginated turn history
//   - Board views with per-color markers
//   - Preset listing
//
// Core Interfaces:
//
// SpectatorService is the main service interface. Spectators can read; there
// is no operation that changes a game.
// SessionManager is the registry watched sessions are recorded in.
// ConfigManager lists and loads seating presets.
// Broadcaster pushes every resolved turn to live WebSocket spectators.
//
// Architecture:
//
// A session runs its game on a single goroutine. When the service watches a
// session it keeps the latest engine.Snapshot and a copy of every TurnResult
// under its own lock, so readers never touch the live game.
//
// Usage:
//
//	hub := websocket.NewHub()
//	svc := service.NewSpectatorService(session.NewManager(), configMgr, hub)
//
//	sess := session.New(game, dice, decisions, renderer)
//	if err := svc.Watch(sess); err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := sess.Run(ctx)
//	svc.Finish(sess.ID, outcome)
package service
