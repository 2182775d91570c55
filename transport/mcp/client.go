package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/ludo/game/engine"
	"github.com/wricardo/ludo/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ludo Race Spectator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ludo Race - MCP Spectator Interface

This is a thin client that proxies all requests to the REST API server.
Games are played at the terminal; through this interface you can only watch.

AVAILABLE TOOLS:
- list_sessions: List the games being played
- get_session: Get details of one game
- game_state: Current board, pawns and turn order
- turn_history: Past turns with rolls and moves
- board: The ring with every color's entry, end, arrow and star cells
- list_configs: Seating presets
- game_rules: The rules of the race`),
	)

	c.registerTools()
}

func sessionIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"session_id": map[string]interface{}{
			"type":        "string",
			"description": "Session ID",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List the games being played",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: sessionIDSchema(),
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, pawn positions and turn order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: sessionIDSchema(),
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	historyProps := sessionIDSchema()
	historyProps["page"] = map[string]interface{}{
		"type":        "number",
		"description": "Page number (default 1)",
	}
	historyProps["limit"] = map[string]interface{}{
		"type":        "number",
		"description": "Turns per page (default 20, max 100)",
	}
	historyProps["order"] = map[string]interface{}{
		"type":        "string",
		"description": "asc or desc (default desc, most recent first)",
		"enum":        []string{"asc", "desc"},
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get paginated turn history",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: historyProps,
			Required:   []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board",
		Description: "Get the ring with occupancy and each color's marker cells",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: sessionIDSchema(),
			Required:   []string{"session_id"},
		},
	}, c.handleBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available seating presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the rules of the race",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "playing"
		if s.Outcome != "" {
			status = s.Outcome
		}
		result += fmt.Sprintf("- %s (Config: %s, Players: %d, Turns: %d, %s)\n",
			s.ID, s.ConfigName, len(s.Players), s.TotalTurns, status)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var snap engine.Snapshot
	if err := c.apiCall(ctx, "GET", path, nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprintf("%d", int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params.Set("order", order)
	}

	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/board")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var board service.BoardResponse
	if err := c.apiCall(ctx, "GET", path, nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoard(&board)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Presets:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Players: %d\n\n",
			config.ConfigID, config.Name, config.Description, config.PlayerCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := fmt.Sprintf(`Ludo Race - Rules

OBJECTIVE:
Bring all %d of your pawns around the ring and through your final stretch.
Every player keeps playing until all players have won.

SEATS:
%d to %d players, one color each: RED, GREEN, YELLOW, BLUE, PURPLE, ORANGE.
The ring has %d cells per reserved segment and at least %d segments
(52 cells for 4 players, 65 for 5, 78 for 6).

TURNS:
• Players take turns in seating order. A turn is one roll of a six-sided die.
• Rolling a %d grants a bonus turn whatever you do with it.
• On a %d with no pawn out, your lowest restricted pawn is released automatically.
• On a %d with every pawn out, you must move one.
• On a %d otherwise, you choose to release a pawn or move one.
• Any other roll moves one of your pawns; with no pawn out the roll is wasted.

MOVEMENT:
• A released pawn starts on its color's entry cell.
• Pawns move one cell per pip. There is no capturing; pawns may share cells.
• When a pawn steps off its color's end cell it turns into its final stretch of
  %d steps. Steps beyond the last one are lost.
• A pawn that finishes its final stretch has won.

BOARD LEGEND:
  %s  empty cell
  🟥🟩🟨🟦  entry cell of a color
  %s🟥  arrow: the color's end cell, where pawns turn home
  %s  star, %d cells before the arrow
  %s  occupied cell

Spectators can only watch. Games are played at the terminal.`,
		engine.PawnsPerPlayer,
		engine.MinPlayers, engine.MaxPlayers,
		engine.SegmentLength, engine.MinSeats,
		engine.BonusRoll, engine.BonusRoll, engine.BonusRoll, engine.BonusRoll,
		engine.FinalStretchLength,
		engine.EmptyGlyph,
		engine.ArrowGlyphPrefix,
		engine.StarGlyph, engine.StarOffset-engine.ArrowOffset,
		engine.OccupiedGlyph,
	)

	return mcp.NewToolResultText(rules), nil
}

func formatSessionInfo(session *service.SessionInfo) string {
	status := "playing"
	if session.Outcome != "" {
		status = session.Outcome
	}
	return fmt.Sprintf("Session: %s\nConfig: %s\nPlayers: %s\nTurns: %d\nStatus: %s\nCreated: %s\n",
		session.ID, session.ConfigName, strings.Join(session.Players, ", "),
		session.TotalTurns, status, session.CreatedAt.Format(time.RFC3339))
}

func formatSnapshot(snap *engine.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Turns played: %d\n", snap.TotalTurns)
	if snap.AllWon {
		b.WriteString("Every player has won.\n")
	} else if len(snap.TurnOrder) > 0 {
		fmt.Fprintf(&b, "Next to play: %s\n", snap.TurnOrder[0])
		fmt.Fprintf(&b, "Turn order: %s\n", strings.Join(snap.TurnOrder, " → "))
	}

	if snap.LastTurn != nil {
		fmt.Fprintf(&b, "\nLast turn: %s rolled %d (%s)\n",
			snap.LastTurn.Player, snap.LastTurn.Roll, snap.LastTurn.Action)
	}

	b.WriteString("\nBoard:\n")
	b.WriteString(snap.Board.String())
	b.WriteString("\n\nPlayers:\n")

	for _, p := range snap.Players {
		status := ""
		if p.HasWon {
			status = " 🏆"
		}
		fmt.Fprintf(&b, "- %s (%s)%s: %d restricted, %d out\n",
			p.Name, p.Color, status, len(p.Restricted), len(p.Unrestricted))
		for _, pawn := range p.Pawns {
			fmt.Fprintf(&b, "    pawn %d: %s", pawn.Index, pawn.Phase)
			switch pawn.Phase {
			case engine.OnRing.String():
				fmt.Fprintf(&b, " at %d", pawn.Position)
			case engine.InFinalStretch.String():
				fmt.Fprintf(&b, ", %d steps left", pawn.FinalRemaining)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatBoard(board *service.BoardResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ring of %d cells for %d seats\n\n", board.RingLength, board.Seats)
	b.WriteString(board.Line)
	b.WriteString("\n\nMarkers:\n")
	for _, m := range board.Markers {
		fmt.Fprintf(&b, "- %s: entry %d, end %d, arrow %d, star %d\n",
			m.Color, m.Entry, m.End, m.Arrow, m.Star)
	}
	if len(board.Occupied) > 0 {
		fmt.Fprintf(&b, "\nOccupied: %v\n", board.Occupied)
	}

	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, turn := range history.Turns {
		fmt.Fprintf(&b, "%d. %s rolled %d: %s", turn.TurnNumber, turn.Player, turn.Roll, turn.Action)
		if turn.PawnIndex >= 0 {
			fmt.Fprintf(&b, " pawn %d", turn.PawnIndex)
		}
		if turn.Movement != nil {
			fmt.Fprintf(&b, " (%d → %d)", turn.Movement.From, turn.Movement.To)
		}
		if turn.BonusTurn {
			b.WriteString(" +bonus")
		}
		if turn.PlayerWon {
			b.WriteString(" 🏆")
		}
		b.WriteString("\n")
	}

	return b.String()
}
