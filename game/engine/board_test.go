package engine

import (
	"strings"
	"testing"
)

func TestBuildBoard_FourPlayers(t *testing.T) {
	board := BuildBoard(4)

	if board.RingLength() != 52 {
		t.Fatalf("Expected 52 cells, got %d", board.RingLength())
	}

	if board.Cells[0] != (Cell{Kind: CellEntry, Color: Red}) {
		t.Errorf("Expected red entry at 0, got %+v", board.Cells[0])
	}
	if board.Cells[47].Kind != CellStar {
		t.Errorf("Expected red star wrapped to 47, got %+v", board.Cells[47])
	}
	if board.Cells[50] != (Cell{Kind: CellArrow, Color: Red}) {
		t.Errorf("Expected red arrow wrapped to 50, got %+v", board.Cells[50])
	}
	if board.Cells[13] != (Cell{Kind: CellEntry, Color: Green}) {
		t.Errorf("Expected green entry at 13, got %+v", board.Cells[13])
	}
	if board.Cells[11] != (Cell{Kind: CellArrow, Color: Green}) {
		t.Errorf("Expected green arrow at 11, got %+v", board.Cells[11])
	}
	if board.Cells[8].Kind != CellStar {
		t.Errorf("Expected green star at 8, got %+v", board.Cells[8])
	}
}

func TestBuildBoard_ClampsToFourSegments(t *testing.T) {
	tests := []struct {
		players  int
		expected int
	}{
		{1, 52},
		{2, 52},
		{3, 52},
		{4, 52},
		{5, 65},
		{6, 78},
	}

	for _, tt := range tests {
		board := BuildBoard(tt.players)
		if board.RingLength() != tt.expected {
			t.Errorf("BuildBoard(%d) length = %d, expected %d", tt.players, board.RingLength(), tt.expected)
		}
		if board.Seats != Segments(tt.players) {
			t.Errorf("BuildBoard(%d) seats = %d, expected %d", tt.players, board.Seats, Segments(tt.players))
		}
	}

	// Fewer seats still mark every reserved segment
	board := BuildBoard(2)
	if board.Cells[39] != (Cell{Kind: CellEntry, Color: Blue}) {
		t.Errorf("Expected blue entry on a clamped board, got %+v", board.Cells[39])
	}
}

func TestBuildBoard_MarkerCounts(t *testing.T) {
	board := BuildBoard(6)

	counts := map[CellKind]int{}
	for _, cell := range board.Cells {
		counts[cell.Kind]++
	}

	if counts[CellEntry] != 6 || counts[CellArrow] != 6 || counts[CellStar] != 6 {
		t.Errorf("Expected 6 of each marker, got %v", counts)
	}
	if counts[CellEmpty] != 78-18 {
		t.Errorf("Expected %d empty cells, got %d", 78-18, counts[CellEmpty])
	}
}

func TestBoard_Topology(t *testing.T) {
	board := BuildBoard(6)

	tests := []struct {
		color Color
		entry int
		end   int
		arrow int
		star  int
	}{
		{Red, 0, 76, 76, 73},
		{Green, 13, 11, 11, 8},
		{Orange, 65, 63, 63, 60},
	}

	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			if got := board.EntryIndex(tt.color); got != tt.entry {
				t.Errorf("EntryIndex = %d, expected %d", got, tt.entry)
			}
			if got := board.EndIndex(tt.color); got != tt.end {
				t.Errorf("EndIndex = %d, expected %d", got, tt.end)
			}
			if got := board.ArrowIndex(tt.color); got != tt.arrow {
				t.Errorf("ArrowIndex = %d, expected %d", got, tt.arrow)
			}
			if got := board.StarIndex(tt.color); got != tt.star {
				t.Errorf("StarIndex = %d, expected %d", got, tt.star)
			}
		})
	}

	// The pawn offsets agree with the board topology
	for c := Red; c <= Orange; c++ {
		p := NewPawn(c, board.RingLength())
		if p.StartPos != board.EntryIndex(c) || p.EndPos != board.EndIndex(c) {
			t.Errorf("Pawn offsets for %s disagree with the board: %d/%d", c, p.StartPos, p.EndPos)
		}
	}
}

func TestCell_Glyph(t *testing.T) {
	tests := []struct {
		cell     Cell
		expected string
	}{
		{Cell{Kind: CellEmpty}, "⬜"},
		{Cell{Kind: CellEntry, Color: Blue}, "🟦"},
		{Cell{Kind: CellArrow, Color: Yellow}, "↑🟨"},
		{Cell{Kind: CellArrow, Color: Orange}, "↑ORANGE"},
		{Cell{Kind: CellStar}, "⭐"},
	}

	for _, tt := range tests {
		if got := tt.cell.Glyph(); got != tt.expected {
			t.Errorf("Glyph(%+v) = %s, expected %s", tt.cell, got, tt.expected)
		}
	}
}

func TestRenderOccupancy(t *testing.T) {
	board := BuildBoard(4)
	before := board.Glyphs()

	frame := RenderOccupancy(board, []int{0, 5, 52, -1, 5})

	if frame[0] != OccupiedGlyph || frame[5] != OccupiedGlyph {
		t.Errorf("Expected occupied markers at 0 and 5, got %s and %s", frame[0], frame[5])
	}
	if frame[1] != EmptyGlyph {
		t.Errorf("Expected empty cell at 1, got %s", frame[1])
	}
	if len(frame) != 52 {
		t.Errorf("Expected 52 cells, got %d", len(frame))
	}

	after := board.Glyphs()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("RenderOccupancy mutated cell %d", i)
		}
	}
	if board.Cells[0].Kind != CellEntry {
		t.Error("Expected board entry cell untouched")
	}
}

func TestFrame_String(t *testing.T) {
	frame := Frame{"a", "@", "b"}
	if frame.String() != "a @ b" {
		t.Errorf("Unexpected frame string %q", frame.String())
	}

	line := RenderOccupancy(BuildBoard(4), nil).String()
	if strings.Count(line, " ") != 51 {
		t.Errorf("Expected 51 separators, got %d", strings.Count(line, " "))
	}
}
