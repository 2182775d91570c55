// Package mcp exposes the spectator API to AI agents over the Model Context
// Protocol.
//
// The Client registers read-only tools on an MCP server and answers each one
// by calling the REST API, so agents see exactly what HTTP spectators see:
//   - list_sessions, get_session: the games being played
//   - game_state: board line, turn order and every pawn
//   - turn_history: paginated rolls and moves
//   - board: ring markers per color
//   - list_configs: seating presets
//   - game_rules: the rules text
//
// No tool changes a game. Games are played at the terminal.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	router.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
//		body, _ := io.ReadAll(r.Body)
//		resp := client.GetMCPServer().HandleMessage(r.Context(), body)
//		json.NewEncoder(w).Encode(resp)
//	})
package mcp
