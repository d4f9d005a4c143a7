package engine

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrMalformedShip = errors.New("malformed ship")
	ErrGridShape     = errors.New("grid shape does not match game dimensions")
)

// ReconstructShips rebuilds a player's fleet from a grid in which every
// non-zero value v marks a cell of ship v, and ship v must be exactly v
// cells long. Each id must form one straight contiguous run. On error the
// player is left unchanged.
func ReconstructShips(game *GameData, player *PlayBoard, grid Grid) error {
	if grid.Rows() != game.Rows() {
		return fmt.Errorf("%w: got %d rows, want %d", ErrGridShape, grid.Rows(), game.Rows())
	}

	parts := make(map[int]map[Cell]struct{})
	for row, values := range grid {
		if len(values) != game.Cols() {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrGridShape, row+1, len(values), game.Cols())
		}
		for col, id := range values {
			if id == 0 {
				continue
			}
			if id < 0 {
				return fmt.Errorf("%w: negative value %d at row %d, column %d", ErrMalformedShip, id, row+1, col+1)
			}
			if parts[id] == nil {
				parts[id] = make(map[Cell]struct{})
			}
			parts[id][Cell{Col: col, Row: row}] = struct{}{}
		}
	}

	ids := make([]int, 0, len(parts))
	for id := range parts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	scratch := player.Clone()
	for _, id := range ids {
		start, dir, err := shipFromCells(id, parts[id])
		if err != nil {
			return err
		}
		ship, err := CheckPlacement(id, start, dir, game, scratch)
		if err != nil {
			return fmt.Errorf("%w: ship %d cannot be placed: %v", ErrMalformedShip, id, err)
		}
		scratch.AddShip(ship)
	}

	*player = *scratch
	return nil
}

// shipFromCells derives the origin and direction of one ship's cells
func shipFromCells(id int, cells map[Cell]struct{}) (Cell, Direction, error) {
	first := true
	var minRow, maxRow, minCol, maxCol int
	for c := range cells {
		if first {
			minRow, maxRow, minCol, maxCol = c.Row, c.Row, c.Col, c.Col
			first = false
			continue
		}
		minRow, maxRow = min(minRow, c.Row), max(maxRow, c.Row)
		minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
	}

	if maxRow > minRow && maxCol > minCol {
		return Cell{}, Horizontal, fmt.Errorf("%w: ship %d is not a straight line", ErrMalformedShip, id)
	}

	// A single cell has maxCol == minCol and is treated as vertical
	dir := Vertical
	span := maxRow - minRow + 1
	if maxCol > minCol {
		dir = Horizontal
		span = maxCol - minCol + 1
	}

	for i := 0; i < span; i++ {
		c := Cell{Col: minCol, Row: minRow + i}
		if dir == Horizontal {
			c = Cell{Col: minCol + i, Row: minRow}
		}
		if _, ok := cells[c]; !ok {
			return Cell{}, dir, fmt.Errorf("%w: ship %d has a gap at %s", ErrMalformedShip, id, c)
		}
	}

	if span != id {
		return Cell{}, dir, fmt.Errorf("%w: ship %d spans %d cells, want %d", ErrMalformedShip, id, span, id)
	}

	return Cell{Col: minCol, Row: minRow}, dir, nil
}

// FlattenShips drains the player's fleet and paints each ship's id into a
// zeroed rows x cols grid. The player has no ships afterwards. Cells outside
// the grid, which only a ship validated against another game can have, are
// not painted.
func FlattenShips(game *GameData, player *PlayBoard) Grid {
	grid := NewGrid(game.Rows(), game.Cols())
	for {
		ship, ok := player.RemoveFirstShip()
		if !ok {
			break
		}
		for _, c := range ship.Cells() {
			if game.InBounds(c) {
				grid[c.Row][c.Col] = ship.shipID
			}
		}
	}
	return grid
}

// PlayerGrid is FlattenShips on a copy, leaving the player's fleet intact
func PlayerGrid(game *GameData, player *PlayBoard) Grid {
	return FlattenShips(game, player.Clone())
}
