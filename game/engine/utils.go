package engine

// PawnView is the display form of a pawn.
type PawnView struct {
	Index          int    `json:"index"`
	Phase          string `json:"phase"`
	Position       int    `json:"position"`
	FinalRemaining int    `json:"final_remaining"`
}

// PlayerView is the display form of a player.
type PlayerView struct {
	Name         string     `json:"name"`
	Color        string     `json:"color"`
	Restricted   []int      `json:"restricted"`
	Unrestricted []int      `json:"unrestricted"`
	HasWon       bool       `json:"has_won"`
	Pawns        []PawnView `json:"pawns"`
}

// Snapshot is an immutable copy of the game state for observers.
type Snapshot struct {
	Seats      int          `json:"seats"`
	RingLength int          `json:"ring_length"`
	Players    []PlayerView `json:"players"`
	TurnOrder  []string     `json:"turn_order"`
	Board      Frame        `json:"board"`
	Occupied   []int        `json:"occupied"`
	TotalTurns int          `json:"total_turns"`
	LastTurn   *TurnResult  `json:"last_turn,omitempty"`
	AllWon     bool         `json:"all_won"`
}

// Snapshot copies the current state. The result shares nothing with the game.
func (g *Game) Snapshot() *Snapshot {
	snap := &Snapshot{
		Seats:      g.board.Seats,
		RingLength: g.board.RingLength(),
		Players:    make([]PlayerView, 0, len(g.players)),
		Board:      g.Frame(),
		Occupied:   g.OccupiedPositions(),
		TotalTurns: g.totalTurns,
		LastTurn:   g.LastTurn(),
		AllWon:     g.AllWon(),
	}

	for _, p := range g.players {
		snap.Players = append(snap.Players, ViewPlayer(p))
	}
	for _, p := range g.queue.Players() {
		snap.TurnOrder = append(snap.TurnOrder, p.Name)
	}

	return snap
}

// ViewPlayer converts a player to its display form.
func ViewPlayer(p *Player) PlayerView {
	view := PlayerView{
		Name:         p.Name,
		Color:        p.Color.String(),
		Restricted:   p.RestrictedPawns(),
		Unrestricted: p.UnrestrictedPawns(),
		HasWon:       p.HasWon(),
		Pawns:        make([]PawnView, 0, PawnsPerPlayer),
	}
	for i, pawn := range p.Pawns {
		view.Pawns = append(view.Pawns, PawnView{
			Index:          i,
			Phase:          pawn.Phase().String(),
			Position:       pawn.CurPos(),
			FinalRemaining: pawn.FinalPhaseRemaining(),
		})
	}
	return view
}

// CountPawnsInPhase counts the pawns of all players in the given phase.
func CountPawnsInPhase(players []*Player, phase Phase) int {
	count := 0
	for _, p := range players {
		for _, pawn := range p.Pawns {
			if pawn.Phase() == phase {
				count++
			}
		}
	}
	return count
}
