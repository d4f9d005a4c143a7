// Command analyze prints quick, human-readable statistics about save files:
// grid size, how much of each board the fleet covers, ship orientations,
// and how much room is left for the ship sizes a player has not placed yet.
//
// With no arguments it analyzes every *.txt file in the saves directory.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/savefile"
)

// PlayerStats summarizes one player's board
type PlayerStats struct {
	Name       string
	Ships      int
	Occupied   int
	Horizontal int
	Vertical   int
	// Room counts legal origins for each size not yet placed
	Room map[int]int
}

// Coverage is the fraction of the board covered by ships
func (p PlayerStats) Coverage(cells int) float64 {
	if cells == 0 {
		return 0
	}
	return float64(p.Occupied) / float64(cells)
}

// GameStats summarizes a save file
type GameStats struct {
	Rows, Cols   int
	Smallest     int
	Largest      int
	DeclaredSeat int
	Players      []PlayerStats
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		matches, err := filepath.Glob(filepath.Join("saves", "*.txt"))
		if err != nil {
			fmt.Printf("Error finding save files: %v\n", err)
			os.Exit(1)
		}
		paths = matches
	}

	for _, path := range paths {
		fmt.Printf("\n=== Analyzing %s ===\n", path)
		analyzeFile(os.Stdout, path)
	}
}

func analyzeFile(w io.Writer, path string) {
	game, err := savefile.LoadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error loading file: %v\n", err)
		return
	}
	printStats(w, analyzeGame(game))
}

func analyzeGame(game *engine.GameData) GameStats {
	smallest, largest := game.ShipSizes()
	stats := GameStats{
		Rows:         game.Rows(),
		Cols:         game.Cols(),
		Smallest:     smallest,
		Largest:      largest,
		DeclaredSeat: game.PlayerCount(),
	}

	for _, board := range game.Boards() {
		p := PlayerStats{
			Name:  board.PlayerName(),
			Ships: board.ShipCount(),
			Room:  make(map[int]int),
		}
		for _, ship := range board.Ships() {
			p.Occupied += ship.Length()
			if ship.Horizontal() {
				p.Horizontal++
			} else {
				p.Vertical++
			}
		}
		for size := smallest; size <= largest; size++ {
			if board.HasShipID(size) {
				continue
			}
			room := 0
			for _, c := range engine.ValidPlacements(game, board, size) {
				room += len(c.Directions)
			}
			p.Room[size] = room
		}
		stats.Players = append(stats.Players, p)
	}
	return stats
}

func printStats(w io.Writer, stats GameStats) {
	cells := stats.Rows * stats.Cols
	fmt.Fprintf(w, "Grid: %d x %d (%d cells)\n", stats.Rows, stats.Cols, cells)
	fmt.Fprintf(w, "Ship sizes: %d-%d\n", stats.Smallest, stats.Largest)
	fmt.Fprintf(w, "Players: %d of %d\n", len(stats.Players), stats.DeclaredSeat)

	for _, p := range stats.Players {
		fmt.Fprintf(w, "\n%s: %d ships, %d cells (%.1f%%), %d horizontal, %d vertical\n",
			p.Name, p.Ships, p.Occupied, 100*p.Coverage(cells), p.Horizontal, p.Vertical)

		if len(p.Room) == 0 {
			fmt.Fprintf(w, "✅ Fleet complete\n")
			continue
		}
		for size := stats.Smallest; size <= stats.Largest; size++ {
			room, missing := p.Room[size]
			if !missing {
				continue
			}
			if room == 0 {
				fmt.Fprintf(w, "⚠️  Ship %d: no room left\n", size)
			} else {
				fmt.Fprintf(w, "   Ship %d: %d possible placements\n", size, room)
			}
		}
	}
}
