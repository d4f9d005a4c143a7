package service

import (
	"strconv"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

// RenderGrid draws a grid with column letters and 1-based row numbers.
// Water is shown as '.', ship cells as their id.
func RenderGrid(grid engine.Grid) string {
	rows, cols := grid.Rows(), grid.Cols()
	if rows == 0 || cols == 0 {
		return ""
	}

	width := len(ColumnLabel(cols - 1))
	for _, row := range grid {
		for _, v := range row {
			width = max(width, len(strconv.Itoa(v)))
		}
	}
	gutter := len(strconv.Itoa(rows))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutter))
	for col := 0; col < cols; col++ {
		b.WriteByte(' ')
		b.WriteString(pad(ColumnLabel(col), width))
	}
	b.WriteByte('\n')

	for r, row := range grid {
		b.WriteString(pad(strconv.Itoa(r+1), gutter))
		for _, v := range row {
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			b.WriteByte(' ')
			b.WriteString(pad(cell, width))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
