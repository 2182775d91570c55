package engine

import "time"

const (
	// Board and rule constants
	PawnsPerPlayer      = 4
	SegmentLength       = 13
	MinSeats            = 4
	MaxColors           = 6
	FinalStretchLength  = 6
	EndOffsetFromEntry  = 2
	ArrowOffset         = 2
	StarOffset          = 5
	BonusRoll           = 6
	DiceMin             = 1
	DiceMax             = 6
	RestrictedPosition  = -1
	OccupiedGlyph       = "@"
	EmptyGlyph          = "⬜"
	StarGlyph           = "⭐"
	ArrowGlyphPrefix    = "↑"
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Color identifies a player slot. The ordinal determines the board offset.
type Color int

const (
	Red Color = iota
	Green
	Yellow
	Blue
	Purple
	Orange
)

var colorNames = map[Color]string{
	Red:    "RED",
	Green:  "GREEN",
	Yellow: "YELLOW",
	Blue:   "BLUE",
	Purple: "PURPLE",
	Orange: "ORANGE",
}

var colorGlyphs = map[Color]string{
	Red:    "🟥",
	Green:  "🟩",
	Yellow: "🟨",
	Blue:   "🟦",
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// Glyph returns the display marker for the color. Colors without an emoji
// fall back to their name.
func (c Color) Glyph() string {
	if g, ok := colorGlyphs[c]; ok {
		return g
	}
	return c.String()
}

// Phase is the tag of a pawn's location.
type Phase int

const (
	Restricted Phase = iota
	OnRing
	InFinalStretch
	Won
)

var phaseNames = map[Phase]string{
	Restricted:     "restricted",
	OnRing:         "on_ring",
	InFinalStretch: "final_stretch",
	Won:            "won",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// Pawn is a single piece. Its location is the (Phase, ringPos, remaining)
// triple; CurPos derives the flat position used by the display.
type Pawn struct {
	Color           Color
	StartPos        int
	EndPos          int
	FinalPhaseTotal int

	phase      Phase
	ringPos    int
	remaining  int
	ringLength int
}

// NewPawn creates a restricted pawn for the given color on a ring of ringLength cells.
func NewPawn(color Color, ringLength int) *Pawn {
	start := int(color) * SegmentLength
	return &Pawn{
		Color:           color,
		StartPos:        start,
		EndPos:          wrap(start-EndOffsetFromEntry, ringLength),
		FinalPhaseTotal: FinalStretchLength,
		phase:           Restricted,
		remaining:       FinalStretchLength,
		ringLength:      ringLength,
	}
}

// Phase returns the pawn's location tag.
func (p *Pawn) Phase() Phase { return p.phase }

// FinalPhaseRemaining counts down from FinalPhaseTotal to 0.
func (p *Pawn) FinalPhaseRemaining() int { return p.remaining }

func (p *Pawn) IsRestricted() bool { return p.phase == Restricted }

// InFinalPhase reports whether the pawn has left the shared ring.
func (p *Pawn) InFinalPhase() bool { return p.phase == InFinalStretch || p.phase == Won }

func (p *Pawn) HasWon() bool { return p.phase == Won }

// FinalStretchMarker is the position reported for pawns that left the ring.
// It equals the ring length, which is outside the ring index space.
func (p *Pawn) FinalStretchMarker() int { return p.ringLength }

// CurPos returns -1 for a restricted pawn, the ring index while on the ring,
// and the final-stretch marker afterwards.
func (p *Pawn) CurPos() int {
	switch p.phase {
	case Restricted:
		return RestrictedPosition
	case OnRing:
		return p.ringPos
	default:
		return p.FinalStretchMarker()
	}
}

// Unrestrict places a restricted pawn on its color's entry cell.
func (p *Pawn) Unrestrict() {
	if p.phase != Restricted {
		return
	}
	p.phase = OnRing
	p.ringPos = p.StartPos
}

// Player owns exactly PawnsPerPlayer pawns.
type Player struct {
	Name  string
	Color Color
	Pawns [PawnsPerPlayer]*Pawn
}

// NewPlayer creates a player with all pawns restricted.
func NewPlayer(name string, color Color, ringLength int) *Player {
	p := &Player{Name: name, Color: color}
	for i := range p.Pawns {
		p.Pawns[i] = NewPawn(color, ringLength)
	}
	return p
}

// RestrictedPawns returns the indices of pawns still at home.
func (p *Player) RestrictedPawns() []int {
	var idx []int
	for i, pawn := range p.Pawns {
		if pawn.IsRestricted() {
			idx = append(idx, i)
		}
	}
	return idx
}

// UnrestrictedPawns returns the indices of pawns that have left home.
func (p *Player) UnrestrictedPawns() []int {
	var idx []int
	for i, pawn := range p.Pawns {
		if !pawn.IsRestricted() {
			idx = append(idx, i)
		}
	}
	return idx
}

// HasWon reports whether all pawns finished the final stretch.
func (p *Player) HasWon() bool {
	for _, pawn := range p.Pawns {
		if !pawn.HasWon() {
			return false
		}
	}
	return true
}

// Action is the answer to the roll-or-quit prompt.
type Action int

const (
	ActionRoll Action = iota
	ActionQuit
)

// Choice is the answer when both unrestricting and moving are legal.
type Choice int

const (
	ChoiceUnrestrict Choice = iota
	ChoiceMove
)

// TurnAction classifies what a resolved roll did.
type TurnAction string

const (
	TurnUnrestrict       TurnAction = "unrestrict"
	TurnForcedUnrestrict TurnAction = "forced_unrestrict"
	TurnMove             TurnAction = "move"
	TurnWasted           TurnAction = "wasted"
)

// GameEvent represents something that happened during a turn
type GameEvent struct {
	Type      string    `json:"type"` // "roll", "unrestrict", "move", "final_stretch", "pawn_won", "player_won", "bonus_turn", "wasted_roll"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Movement summarises one Advance call.
type Movement struct {
	From           int  `json:"from"`
	To             int  `json:"to"`
	Steps          int  `json:"steps"`
	Absorbed       int  `json:"absorbed"`
	EnteredFinal   bool `json:"entered_final"`
	Won            bool `json:"won"`
	FinalRemaining int  `json:"final_remaining"`
}

// TurnResult is the record of one resolved roll.
type TurnResult struct {
	TurnNumber int         `json:"turn_number"`
	Player     string      `json:"player"`
	Color      string      `json:"color"`
	Roll       int         `json:"roll"`
	Action     TurnAction  `json:"action"`
	PawnIndex  int         `json:"pawn_index"`
	Movement   *Movement   `json:"movement,omitempty"`
	BonusTurn  bool        `json:"bonus_turn"`
	PlayerWon  bool        `json:"player_won"`
	Events     []GameEvent `json:"events"`
	Timestamp  int64       `json:"timestamp"`
}

// TurnContext is what a decision source sees when it is asked to act.
type TurnContext struct {
	Player       string                `json:"player"`
	Color        Color                 `json:"color"`
	Roll         int                   `json:"roll,omitempty"`
	Restricted   []int                 `json:"restricted"`
	Unrestricted []int                 `json:"unrestricted"`
	Positions    [PawnsPerPlayer]int   `json:"positions"`
	Phases       [PawnsPerPlayer]Phase `json:"phases"`
	TurnNumber   int                   `json:"turn_number"`
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
