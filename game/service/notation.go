package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

var ErrBadNotation = errors.New("bad coordinate notation")

// maxColumnLetters covers every column up to engine.MaxSize
const maxColumnLetters = 4

// ParseCell reads A1 notation: letters name the column (A is 0, Z is 25,
// AA is 26) and digits name the 1-based row
func ParseCell(s string) (engine.Cell, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	letters, digits := s[:i], s[i:]
	if letters == "" || digits == "" {
		return engine.Cell{}, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	if len(letters) > maxColumnLetters {
		return engine.Cell{}, fmt.Errorf("%w: column %q too large", ErrBadNotation, letters)
	}

	col := 0
	for _, l := range letters {
		col = col*26 + int(l-'A'+1)
	}

	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return engine.Cell{}, fmt.Errorf("%w: row %q", ErrBadNotation, digits)
	}

	return engine.Cell{Col: col - 1, Row: row - 1}, nil
}

// FormatCell is the inverse of ParseCell
func FormatCell(c engine.Cell) string {
	return ColumnLabel(c.Col) + strconv.Itoa(c.Row+1)
}

// ColumnLabel returns the letters for a zero-based column
func ColumnLabel(col int) string {
	var label []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		label = append([]byte{byte('A' + (n-1)%26)}, label...)
	}
	return string(label)
}

// Placement is a parsed ID:CELL:DIR command such as 3:C5:H
type Placement struct {
	ShipID    int
	Origin    engine.Cell
	Direction engine.Direction
}

// ParsePlacement reads the ID:CELL:DIR form
func ParsePlacement(s string) (Placement, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return Placement{}, fmt.Errorf("%w: placement %q must look like ID:CELL:DIR", ErrBadNotation, s)
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Placement{}, fmt.Errorf("%w: ship id %q", ErrBadNotation, parts[0])
	}
	origin, err := ParseCell(parts[1])
	if err != nil {
		return Placement{}, err
	}
	dir, err := engine.ParseDirection(parts[2])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: %v", ErrBadNotation, err)
	}

	return Placement{ShipID: id, Origin: origin, Direction: dir}, nil
}

// String formats the placement back to ID:CELL:DIR
func (p Placement) String() string {
	dir := "H"
	if p.Direction == engine.Vertical {
		dir = "V"
	}
	return fmt.Sprintf("%d:%s:%s", p.ShipID, FormatCell(p.Origin), dir)
}
