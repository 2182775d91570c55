package engine

// Game owns the board, the players and the turn queue of one round.
type Game struct {
	config     *GameConfig
	board      Board
	players    []*Player
	queue      *TurnQueue
	history    []TurnResult
	totalTurns int
}

// CreateGame builds the board and seats playerCount players, one per color,
// named after their color. playerCount is expected in [MinPlayers, MaxPlayers];
// callers validate it (see ValidateGameConfig).
func CreateGame(playerCount int) (Board, []*Player) {
	board := BuildBoard(playerCount)
	players := make([]*Player, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		color := Color(i)
		players = append(players, NewPlayer(color.String(), color, board.RingLength()))
	}
	return board, players
}

// NewGame validates config and creates a game ready for its first turn.
func NewGame(config *GameConfig) (*Game, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	board, players := CreateGame(config.PlayerCount)
	for i, name := range config.PlayerNames {
		players[i].Name = name
	}

	return &Game{
		config:  config,
		board:   board,
		players: players,
		queue:   NewTurnQueue(players),
		history: []TurnResult{},
	}, nil
}

// NewGameWithDefaults creates a four-player game with color names.
func NewGameWithDefaults() *Game {
	game, _ := NewGame(DefaultConfig())
	return game
}

// Config returns the configuration the game was created from
func (g *Game) Config() *GameConfig { return g.config }

// Board returns the shared ring
func (g *Game) Board() Board { return g.board }

// Players returns the players in seating order
func (g *Game) Players() []*Player { return g.players }

// Queue returns the turn rotation
func (g *Game) Queue() *TurnQueue { return g.queue }

// TotalTurns returns the number of resolved rolls
func (g *Game) TotalTurns() int { return g.totalTurns }

// History returns every resolved turn, oldest first
func (g *Game) History() []TurnResult {
	out := make([]TurnResult, len(g.history))
	copy(out, g.history)
	return out
}

// LastTurn returns the most recent turn, or nil before the first roll
func (g *Game) LastTurn() *TurnResult {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}

// AllWon reports whether every seated player has won.
func (g *Game) AllWon() bool {
	for _, p := range g.players {
		if !p.HasWon() {
			return false
		}
	}
	return len(g.players) > 0
}

// OccupiedPositions collects the positions of every player's unrestricted
// pawns, in seating order.
func (g *Game) OccupiedPositions() []int {
	var positions []int
	for _, player := range g.players {
		for _, i := range player.UnrestrictedPawns() {
			positions = append(positions, player.Pawns[i].CurPos())
		}
	}
	return positions
}

// Frame renders the board with current occupancy.
func (g *Game) Frame() Frame {
	return RenderOccupancy(g.board, g.OccupiedPositions())
}

// TurnContext describes player p for a decision source.
func (g *Game) TurnContext(p *Player) TurnContext {
	turn := TurnContext{
		Player:       p.Name,
		Color:        p.Color,
		Restricted:   p.RestrictedPawns(),
		Unrestricted: p.UnrestrictedPawns(),
		TurnNumber:   g.totalTurns + 1,
	}
	for i, pawn := range p.Pawns {
		turn.Positions[i] = pawn.CurPos()
		turn.Phases[i] = pawn.Phase()
	}
	return turn
}

func (g *Game) record(result *TurnResult) {
	g.history = append(g.history, *result)
	g.totalTurns++
}
