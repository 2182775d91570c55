// Package api serves the read-only spectator view of running games over HTTP.
//
// Endpoints:
//
// Sessions:
//   - GET /api/sessions - List watched sessions (?config=, ?limit=)
//   - GET /api/sessions/{id} - Session details and outcome
//   - GET /api/sessions/{id}/state - Latest snapshot: board, pawns, turn order
//   - GET /api/sessions/{id}/history - Turn history (?page=, ?limit=, ?order=asc|desc)
//   - GET /api/sessions/{id}/board - Ring line with per-color markers
//
// Configuration:
//   - GET /api/configs - List seating presets
//   - GET /api/configs/{name} - Load one preset
//
// Live updates and agents:
//   - GET /ws?sessionId={id} - WebSocket stream of frame_update messages
//   - POST /mcp - Model Context Protocol JSON-RPC endpoint
//   - GET /health - Liveness probe
//
// There is no endpoint that changes a game. Rolls and moves only come from the
// terminal the game was started on.
//
// Errors are returned as JSON with an HTTP status code:
//
//	{"error": "session not found: ab12"}
//
// Usage:
//
//	svc := service.NewSpectatorService(session.NewManager(), presets, hub)
//	mcpClient := mcp.NewClient("http://" + addr)
//	http.ListenAndServe(addr, api.NewServer(svc, hub, mcpClient.GetMCPServer()))
package api
