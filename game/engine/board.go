package engine

import "strings"

// CellKind represents the marker drawn on a track cell
type CellKind string

const (
	CellEmpty CellKind = "empty"
	CellEntry CellKind = "entry"
	CellArrow CellKind = "arrow"
	CellStar  CellKind = "star"
)

// Cell is one cell of the shared ring.
type Cell struct {
	Kind  CellKind `json:"kind"`
	Color Color    `json:"color,omitempty"` // entry and arrow cells only
}

// Glyph returns the display marker for the cell.
func (c Cell) Glyph() string {
	switch c.Kind {
	case CellEntry:
		return c.Color.Glyph()
	case CellArrow:
		return ArrowGlyphPrefix + c.Color.Glyph()
	case CellStar:
		return StarGlyph
	default:
		return EmptyGlyph
	}
}

// Board is the shared ring. It is built once and never mutated during play;
// pawn occupancy is projected onto it by RenderOccupancy.
type Board struct {
	Cells []Cell `json:"cells"`
	Seats int    `json:"seats"`
}

// Frame is a rendered board, one glyph per cell.
type Frame []string

func (f Frame) String() string {
	return strings.Join(f, " ")
}

// Segments returns how many 13-cell color segments the track reserves.
// The track always has at least MinSeats segments.
func Segments(playerCount int) int {
	if playerCount < MinSeats {
		return MinSeats
	}
	return playerCount
}

// BuildBoard lays out the ring for playerCount seats. Entry, arrow and star
// markers are placed for every reserved segment; indices before 0 wrap to
// the end of the track.
func BuildBoard(playerCount int) Board {
	seats := Segments(playerCount)
	board := Board{
		Cells: make([]Cell, SegmentLength*seats),
		Seats: seats,
	}
	for i := range board.Cells {
		board.Cells[i] = Cell{Kind: CellEmpty}
	}

	for i := 0; i < seats; i++ {
		color := Color(i)
		board.Cells[board.EntryIndex(color)] = Cell{Kind: CellEntry, Color: color}
		board.Cells[board.ArrowIndex(color)] = Cell{Kind: CellArrow, Color: color}
		board.Cells[board.StarIndex(color)] = Cell{Kind: CellStar}
	}

	return board
}

// RingLength returns the number of cells on the shared ring.
func (b Board) RingLength() int {
	return len(b.Cells)
}

// EntryIndex is the cell where pawns of color c enter the ring.
func (b Board) EntryIndex(c Color) int {
	return wrap(int(c)*SegmentLength, b.RingLength())
}

// EndIndex is the last ring cell before color c turns into its final stretch.
func (b Board) EndIndex(c Color) int {
	return wrap(b.EntryIndex(c)-EndOffsetFromEntry, b.RingLength())
}

// ArrowIndex is the visual cue cell two steps before the entry.
func (b Board) ArrowIndex(c Color) int {
	return wrap(b.EntryIndex(c)-ArrowOffset, b.RingLength())
}

// StarIndex is the star cell five steps before the entry.
func (b Board) StarIndex(c Color) int {
	return wrap(b.EntryIndex(c)-StarOffset, b.RingLength())
}

// Glyphs renders the bare board without pawns.
func (b Board) Glyphs() Frame {
	frame := make(Frame, len(b.Cells))
	for i, cell := range b.Cells {
		frame[i] = cell.Glyph()
	}
	return frame
}

// RenderOccupancy projects occupied positions onto the board. Positions
// outside the ring (restricted or final stretch) are ignored. The board is
// not modified.
func RenderOccupancy(board Board, occupied []int) Frame {
	frame := board.Glyphs()
	for _, pos := range occupied {
		if pos >= 0 && pos < len(frame) {
			frame[pos] = OccupiedGlyph
		}
	}
	return frame
}
