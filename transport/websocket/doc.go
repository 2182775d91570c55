// Package websocket streams game frames to spectators.
//
// The websocket package implements:
//   - Session-aware spectator connections
//   - A frame_update broadcast after every resolved turn
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a read and a
// write goroutine; the hub's own goroutine is the only one touching the
// client registry.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//
//	{"session_id": "ab12", "event": "frame_update", "snapshot": {...}, "turn": {...}}
//
// Spectators cannot act on a game. Anything they send is read and discarded.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("sessionId"))
//	})
package websocket
