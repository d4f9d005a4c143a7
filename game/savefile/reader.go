package savefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

var ErrMalformedFile = errors.New("malformed save file")

// maxLineSize fits a row of MaxSize columns of five-digit ids
const maxLineSize = 8 << 20

// lineReader numbers the lines it hands out so errors can point at them
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{scanner: scanner}
}

// next returns the next line with surrounding whitespace removed
func (lr *lineReader) next() (string, bool, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", false, fmt.Errorf("read line %d: %w", lr.line+1, err)
		}
		return "", false, nil
	}
	lr.line++
	return strings.TrimSpace(lr.scanner.Text()), true, nil
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedFile, lr.line, fmt.Sprintf(format, args...))
}

// Read parses a save file. Players are numbered from 1 in file order and
// their ships are rebuilt from the grids. Nothing is returned on error.
func Read(r io.Reader) (*engine.GameData, error) {
	lr := newLineReader(r)
	game := engine.NewGameData()

	rows, err := readScalar(lr, "rows")
	if err != nil {
		return nil, err
	}
	cols, err := readScalar(lr, "cols")
	if err != nil {
		return nil, err
	}
	if err := game.SetDimensions(rows, cols); err != nil {
		return nil, lr.errorf("%v", err)
	}
	count, err := readScalar(lr, "player count")
	if err != nil {
		return nil, err
	}
	if err := game.SetPlayerCount(count); err != nil {
		return nil, lr.errorf("%v", err)
	}

	for {
		name, ok, err := nextName(lr)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if game.BoardCount() == count {
			return nil, lr.errorf("found player %q but the file declares %d players", name, count)
		}

		board := engine.NewPlayBoard(name, game.BoardCount()+1)
		grid, err := readGrid(lr, game, name)
		if err != nil {
			return nil, err
		}
		if err := engine.ReconstructShips(game, board, grid); err != nil {
			return nil, fmt.Errorf("%w: player %q: %w", ErrMalformedFile, name, err)
		}
		game.AddBoard(board)
	}

	return game, nil
}

// LoadFile reads a save file from disk and records where it came from
func LoadFile(path string) (*engine.GameData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open save file: %w", err)
	}
	defer f.Close()

	game, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	game.SetLoaded(true)
	game.SetFilename(path)
	return game, nil
}

func readScalar(lr *lineReader, what string) (int, error) {
	line, ok, err := lr.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedFile, what)
	}
	if line == "" {
		return 0, lr.errorf("empty %s line", what)
	}
	n, err := engine.ParseDimension(line)
	if err != nil {
		return 0, lr.errorf("%s: %v", what, err)
	}
	return n, nil
}

// nextName skips blank lines and returns the next player name. Blank lines
// followed only by more blank lines are ignored; a blank line followed by
// content is a missing name.
func nextName(lr *lineReader) (string, bool, error) {
	blankAt := 0
	for {
		line, ok, err := lr.next()
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
		if line == "" {
			if blankAt == 0 {
				blankAt = lr.line
			}
			continue
		}
		if blankAt != 0 {
			return "", false, fmt.Errorf("%w: line %d: empty player name", ErrMalformedFile, blankAt)
		}
		if strings.Contains(line, ",") {
			return "", false, lr.errorf("expected a player name, found grid data")
		}
		return line, true, nil
	}
}

// readGrid reads exactly rows lines of cells for one player
func readGrid(lr *lineReader, game *engine.GameData, name string) (engine.Grid, error) {
	grid := engine.NewGrid(game.Rows(), game.Cols())
	for row := range grid {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: player %q has %d rows, want %d", ErrMalformedFile, name, row, game.Rows())
		}
		if line == "" {
			continue
		}

		tokens := strings.Split(line, ",")
		if len(tokens) > game.Cols() {
			return nil, lr.errorf("row %d of player %q has %d columns, want at most %d", row+1, name, len(tokens), game.Cols())
		}
		for col, token := range tokens {
			value, err := parseCell(token)
			if err != nil {
				return nil, lr.errorf("column %d: %v", col+1, err)
			}
			grid[row][col] = value
		}
	}
	return grid, nil
}

func parseCell(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", engine.ErrNotANumber, token)
	}
	if value < 0 || value > engine.MaxSize {
		return 0, fmt.Errorf("cell value %d outside [0, %d]", value, engine.MaxSize)
	}
	return value, nil
}
