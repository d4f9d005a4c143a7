package engine

import (
	"fmt"
	"math"
	"strings"
)

// Direction is the axis a ship extends along from its origin
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts "H"/"V" and the full words, case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("invalid direction %q", s)
}

const (
	// MaxSize is the largest accepted row or column count
	MaxSize = math.MaxInt16
	MinSize = 1

	DefaultRows         = 10
	DefaultCols         = 10
	DefaultPlayerCount  = 1
	DefaultSmallestShip = 2
	DefaultLargestShip  = 5

	// MaxPlacementRetries bounds consecutive failures in the retry layout strategy
	MaxPlacementRetries = 100
)

// Cell is a zero-based (column, row) grid coordinate
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Grid is a rows x cols matrix where 0 is water and a positive value is the
// id of the ship covering that cell
type Grid [][]int

// NewGrid returns a zeroed rows x cols grid
func NewGrid(rows, cols int) Grid {
	grid := make(Grid, rows)
	for i := range grid {
		grid[i] = make([]int, cols)
	}
	return grid
}

// Rows returns the number of rows in the grid
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the first row, or 0 for an empty grid
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}
