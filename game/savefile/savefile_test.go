package savefile

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/battleship/game/engine"
)

const twoPlayerSave = `3
4
2
Alice
2,2,0,3
0,0,0,3
0,0,0,3
Bob
0,0

1
`

func TestRead_ValidFile(t *testing.T) {
	game, err := Read(strings.NewReader(twoPlayerSave))
	if err != nil {
		t.Fatalf("Expected file to load, got %v", err)
	}

	if game.Rows() != 3 || game.Cols() != 4 {
		t.Errorf("Expected 3 rows x 4 cols, got %dx%d", game.Rows(), game.Cols())
	}
	if game.PlayerCount() != 2 || game.BoardCount() != 2 {
		t.Fatalf("Expected 2 players and 2 boards, got %d and %d", game.PlayerCount(), game.BoardCount())
	}

	alice, ok := game.Board(1)
	if !ok || alice.PlayerName() != "Alice" {
		t.Fatalf("Expected player 1 to be Alice, got %v", alice)
	}
	ids := alice.ShipIDs()
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Errorf("Expected Alice to have ships 2 and 3, got %v", ids)
	}
	if id, hit := alice.HandleShot(2, 3); !hit || id != 3 {
		t.Errorf("Expected hit on ship 3 at row 2 col 3, got (%d, %v)", id, hit)
	}

	bob, ok := game.Board(2)
	if !ok || bob.PlayerName() != "Bob" {
		t.Fatalf("Expected player 2 to be Bob, got %v", bob)
	}
	ships := bob.Ships()
	if len(ships) != 1 || ships[0].Start() != (engine.Cell{Col: 0, Row: 2}) {
		t.Errorf("Expected Bob to have ship 1 at (0,2), got %v", ships)
	}
}

func TestRead_ContiguousPairIsRejectedForLengthOne(t *testing.T) {
	_, err := Read(strings.NewReader("2\n3\n1\nAlice\n1,1,0\n0,0,0\n"))
	if !errors.Is(err, ErrMalformedFile) {
		t.Fatalf("Expected ErrMalformedFile, got %v", err)
	}
	if !errors.Is(err, engine.ErrMalformedShip) {
		t.Errorf("Expected the cause to be a malformed ship, got %v", err)
	}
	if !strings.Contains(err.Error(), "Alice") {
		t.Errorf("Expected error to name the player, got %q", err.Error())
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"zero rows", "0\n3\n1\n", "line 1: rows"},
		{"rows not a number", "ten\n3\n1\n", "not a valid number"},
		{"cols too big", "3\n40000\n1\n", "line 2: cols"},
		{"empty scalar line", "3\n\n1\n", "empty cols line"},
		{"missing player count", "3\n3\n", "missing player count"},
		{"zero player count", "3\n3\n0\n", "player count"},
		{"name with comma", "1\n2\n1\n0,0\n", "found grid data"},
		{"blank name between players", "1\n2\n2\nAlice\n0,0\n\n\n0,0\n", "line 6: empty player name"},
		{"row too wide", "1\n2\n1\nAlice\n0,0,0\n", "has 3 columns"},
		{"too few rows", "3\n2\n1\nAlice\n0,0\n", "has 1 rows, want 3"},
		{"negative cell", "1\n2\n1\nAlice\n0,-1\n", "outside"},
		{"non-numeric cell", "1\n2\n1\nAlice\n0,x\n", "column 2"},
		{"too many players", "1\n2\n1\nAlice\n0,0\nBob\n0,0\n", "declares 1 players"},
		{"ship shorter than its id","1\n3\n1\nAlice\n0,2,0\n", "spans 1 cells"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game, err := Read(strings.NewReader(test.input))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if game != nil {
				t.Error("Expected no game on error")
			}
			if !errors.Is(err, ErrMalformedFile) {
				t.Errorf("Expected ErrMalformedFile, got %v", err)
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Errorf("Expected error to contain %q, got %q", test.message, err.Error())
			}
		})
	}
}

func TestRead_TrailingBlankLinesAndFewerPlayers(t *testing.T) {
	game, err := Read(strings.NewReader("1\n2\n3\nAlice\n2,2\n\n\n"))
	if err != nil {
		t.Fatalf("Expected file to load, got %v", err)
	}
	if game.PlayerCount() != 3 || game.BoardCount() != 1 {
		t.Errorf("Expected 3 declared players and 1 board, got %d and %d", game.PlayerCount(), game.BoardCount())
	}
}

func TestWrite_Format(t *testing.T) {
	game := engine.NewGameData()
	if err := game.SetDimensions(2, 3); err != nil {
		t.Fatalf("Failed to set dimensions: %v", err)
	}
	board := engine.NewPlayBoard("Alice", 1)
	engine.PlaceShip(game, board, 2, engine.Cell{Col: 1, Row: 1}, engine.Horizontal)
	game.AddBoard(board)

	var buf bytes.Buffer
	if err := Write(&buf, game); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := "2\n3\n1\nAlice\n0,0,0\n0,2,2\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
	if board.ShipCount() != 0 {
		t.Errorf("Expected Write to drain the board, got %d ships", board.ShipCount())
	}
}

func TestWrite_RejectsUnsaveableGames(t *testing.T) {
	game := engine.NewGameData()
	game.AddBoard(engine.NewPlayBoard("Alice", 1))
	game.AddBoard(engine.NewPlayBoard("Bob", 2))

	if err := Write(&bytes.Buffer{}, game); err == nil {
		t.Error("Expected more boards than players to fail")
	}

	game = engine.NewGameData()
	game.AddBoard(engine.NewPlayBoard("A,B", 1))
	if err := Write(&bytes.Buffer{}, game); err == nil {
		t.Error("Expected a name with a comma to fail")
	}
}

func TestWrite_LeavesGameOnError(t *testing.T) {
	big := engine.NewGameData()
	if err := big.SetDimensions(20, 20); err != nil {
		t.Fatalf("Failed to set dimensions: %v", err)
	}

	tests := []struct {
		name   string
		second func() *engine.PlayBoard
		want   string
	}{
		{"unsaveable name", func() *engine.PlayBoard {
			board := engine.NewPlayBoard("B,ob", 2)
			engine.PlaceShip(engine.NewGameData(), board, 2, engine.Cell{Col: 0, Row: 5}, engine.Horizontal)
			return board
		}, "unsaveable name"},
		{"ship outside the grid", func() *engine.PlayBoard {
			board := engine.NewPlayBoard("Bob", 2)
			engine.PlaceShip(big, board, 5, engine.Cell{Col: 12, Row: 12}, engine.Vertical)
			return board
		}, "outside the 10x10 grid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := engine.NewGameData()
			game.SetPlayerCount(2)
			alice := engine.NewPlayBoard("Alice", 1)
			engine.PlaceShip(game, alice, 3, engine.Cell{Col: 0, Row: 0}, engine.Horizontal)
			game.AddBoard(alice)
			second := tt.second()
			game.AddBoard(second)

			var buf bytes.Buffer
			err := Write(&buf, game)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Expected error containing %q, got %v", tt.want, err)
			}
			if buf.Len() != 0 {
				t.Errorf("Expected nothing written, got %q", buf.String())
			}
			if alice.ShipCount() != 1 || second.ShipCount() != 1 {
				t.Errorf("Expected both fleets intact, got %d and %d ships", alice.ShipCount(), second.ShipCount())
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	game := engine.NewGameData()
	if err := game.SetDimensions(9, 13); err != nil {
		t.Fatalf("Failed to set dimensions: %v", err)
	}
	game.SetPlayerCount(0)
	rng := rand.New(rand.NewPCG(3, 4))
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		board := engine.NewPlayBoard(name, i+1)
		engine.RandomLayout(game, board, engine.StrategyExhaustive, rng)
		game.AddBoard(board)
		game.IncrementPlayerCount()
	}

	var expected []engine.Grid
	for _, board := range game.Boards() {
		expected = append(expected, engine.PlayerGrid(game, board))
	}

	var buf bytes.Buffer
	if err := Write(&buf, game.Clone()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	loaded, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if loaded.Rows() != 9 || loaded.Cols() != 13 || loaded.PlayerCount() != 3 {
		t.Fatalf("Expected 9x13 with 3 players, got %dx%d with %d", loaded.Rows(), loaded.Cols(), loaded.PlayerCount())
	}
	for i, board := range loaded.Boards() {
		if board.PlayerNum() != i+1 {
			t.Errorf("Expected player number %d, got %d", i+1, board.PlayerNum())
		}
		got := engine.PlayerGrid(loaded, board)
		for row := range got {
			for col := range got[row] {
				if got[row][col] != expected[i][row][col] {
					t.Fatalf("Player %s cell (%d,%d): expected %d, got %d", board.PlayerName(), col, row, expected[i][row][col], got[row][col])
				}
			}
		}
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "fleet.txt")

	game := engine.NewGameData()
	board := engine.NewPlayBoard("Alice", 1)
	engine.PlaceShip(game, board, 5, engine.Cell{Col: 0, Row: 0}, engine.Vertical)
	game.AddBoard(board)

	if err := SaveFile(path, game.Clone()); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !loaded.Loaded() {
		t.Error("Expected game to be marked as loaded")
	}
	if loaded.Filename() != path {
		t.Errorf("Expected filename %q, got %q", path, loaded.Filename())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the save file to remain, got %d entries", len(entries))
	}
}

func TestSaveFile_KeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.txt")
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	game := engine.NewGameData()
	game.AddBoard(engine.NewPlayBoard("", 1))
	if err := SaveFile(path, game); err == nil {
		t.Fatal("Expected SaveFile to fail")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "previous" {
		t.Errorf("Expected previous content to survive, got %q", string(data))
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Expected missing file to fail")
	}
}
