package savefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

// Write serializes a game. Each board is flattened in turn, which drains
// its ships, so callers that keep using the game should pass a Clone. Every
// board is checked first; on error the game is left as it was.
func Write(w io.Writer, game *engine.GameData) error {
	if err := engine.ValidateGameData(game); err != nil {
		return err
	}
	if err := engine.ValidateDimension(game.PlayerCount()); err != nil {
		return fmt.Errorf("player count: %w", err)
	}
	if game.BoardCount() > game.PlayerCount() {
		return fmt.Errorf("game has %d boards but declares %d players", game.BoardCount(), game.PlayerCount())
	}

	for _, board := range game.Boards() {
		if err := checkBoard(game, board); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n%d\n", game.Rows(), game.Cols(), game.PlayerCount())

	for _, board := range game.Boards() {
		fmt.Fprintln(bw, board.PlayerName())

		grid := engine.FlattenShips(game, board)
		for _, row := range grid {
			bw.WriteString(joinRow(row))
			bw.WriteByte('\n')
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write save data: %w", err)
	}
	return nil
}

// SaveFile writes the game to path through a temporary file in the same
// directory, so a failed save leaves any previous file intact
func SaveFile(path string, game *engine.GameData) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, game); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}

// checkBoard rejects boards that cannot be written faithfully. It runs for
// every board before any is flattened, so a failed Write drains nothing.
func checkBoard(game *engine.GameData, board *engine.PlayBoard) error {
	name := board.PlayerName()
	if name == "" || strings.ContainsAny(name, ",\n") {
		return fmt.Errorf("player %d has an unsaveable name %q", board.PlayerNum(), name)
	}
	for _, ship := range board.Ships() {
		if !game.ContainsShip(ship) {
			return fmt.Errorf("%s's ship %d at %s-%s lies outside the %dx%d grid",
				name, ship.ID(), ship.Start(), ship.End(), game.Rows(), game.Cols())
		}
	}
	return nil
}

func joinRow(row []int) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
