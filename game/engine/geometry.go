package engine

import "fmt"

// ShipBoundingBox is one ship stored as the inclusive segment from start to
// end. Values are built by NewShip and never change afterwards.
type ShipBoundingBox struct {
	shipID int
	start  Cell
	end    Cell
}

// ID returns the ship id, which is also the ship's length
func (s ShipBoundingBox) ID() int {
	return s.shipID
}

// Start returns the origin cell (smallest column and row)
func (s ShipBoundingBox) Start() Cell {
	return s.start
}

// End returns the last cell covered by the ship
func (s ShipBoundingBox) End() Cell {
	return s.end
}

// Orientation reports Vertical when start and end share a column, which
// includes single-cell ships, and Horizontal otherwise.
func (s ShipBoundingBox) Orientation() Direction {
	return orientationOf(s.start, s.end)
}

// Horizontal reports whether the ship runs along a row
func (s ShipBoundingBox) Horizontal() bool {
	return s.Orientation() == Horizontal
}

// Vertical reports whether the ship runs along a column
func (s ShipBoundingBox) Vertical() bool {
	return s.Orientation() == Vertical
}

// Diagonal reports a box whose ends share neither row nor column
func (s ShipBoundingBox) Diagonal() bool {
	return s.start.Col != s.end.Col && s.start.Row != s.end.Row
}

// Length returns the number of cells covered
func (s ShipBoundingBox) Length() int {
	if s.Vertical() {
		return s.end.Row - s.start.Row + 1
	}
	return s.end.Col - s.start.Col + 1
}

// Cells lists every covered cell from start to end
func (s ShipBoundingBox) Cells() []Cell {
	cells := make([]Cell, 0, s.Length())
	if s.Vertical() {
		for row := s.start.Row; row <= s.end.Row; row++ {
			cells = append(cells, Cell{Col: s.start.Col, Row: row})
		}
		return cells
	}
	for col := s.start.Col; col <= s.end.Col; col++ {
		cells = append(cells, Cell{Col: col, Row: s.start.Row})
	}
	return cells
}

// Overlaps reports whether the two ships share at least one cell
func (s ShipBoundingBox) Overlaps(other ShipBoundingBox) bool {
	return segmentsOverlap(s.start, s.end, other.start, other.end)
}

// OverlapPossible is Overlaps against a candidate that has not been built
// yet. It skips all placement validation, so it is cheap enough to run for
// every origin during a layout search.
func (s ShipBoundingBox) OverlapPossible(length int, start Cell, dir Direction) bool {
	return segmentsOverlap(s.start, s.end, start, endCell(start, length, dir))
}

// PointInShip reports whether (row, col) lies on the ship
func (s ShipBoundingBox) PointInShip(row, col int) bool {
	if s.Vertical() {
		return col == s.start.Col && row >= s.start.Row && row <= s.end.Row
	}
	return row == s.start.Row && col >= s.start.Col && col <= s.end.Col
}

func (s ShipBoundingBox) String() string {
	return fmt.Sprintf("ship %d %s-%s %s", s.shipID, s.start, s.end, s.Orientation())
}

// endCell computes the last cell of a ship of the given length
func endCell(start Cell, length int, dir Direction) Cell {
	if dir == Vertical {
		return Cell{Col: start.Col, Row: start.Row + length - 1}
	}
	return Cell{Col: start.Col + length - 1, Row: start.Row}
}

func orientationOf(start, end Cell) Direction {
	if start.Col == end.Col {
		return Vertical
	}
	return Horizontal
}

// segmentsOverlap expects start <= end on both axes for each segment
func segmentsOverlap(aStart, aEnd, bStart, bEnd Cell) bool {
	aDir := orientationOf(aStart, aEnd)
	bDir := orientationOf(bStart, bEnd)

	switch {
	case aDir == Horizontal && bDir == Horizontal:
		return aStart.Row == bStart.Row &&
			aStart.Col <= bEnd.Col && bStart.Col <= aEnd.Col
	case aDir == Vertical && bDir == Vertical:
		return aStart.Col == bStart.Col &&
			aStart.Row <= bEnd.Row && bStart.Row <= aEnd.Row
	}

	// One of each: the horizontal row must cross the vertical column range
	hStart, hEnd, vStart, vEnd := aStart, aEnd, bStart, bEnd
	if aDir == Vertical {
		hStart, hEnd, vStart, vEnd = bStart, bEnd, aStart, aEnd
	}
	return hStart.Col <= vStart.Col && vStart.Col <= hEnd.Col &&
		vStart.Row <= hStart.Row && hStart.Row <= vEnd.Row
}
