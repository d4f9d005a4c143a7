// Command validate checks rule presets and save files. It checks:
//   - JSON structure of presets (*.json) and their grid and ship settings
//   - that a full fleet of one ship per size fits on an empty board
//   - that save files (*.txt) load and every ship is a straight line of
//     cells matching its id
//
// With no arguments it scans ../configs. Otherwise each argument is a file or
// a directory to scan.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/savefile"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages holds informational lines; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...any) {
	r.Messages = append(r.Messages, "✓ "+fmt.Sprintf(format, args...))
}

// validatePreset loads a rule preset and checks that its settings are legal
// and that a complete fleet can be laid out under them
func validatePreset(filePath string) ValidationResult {
	result := ValidationResult{File: filepath.Base(filePath), Valid: true}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var rules engine.GameRules
	if err := json.Unmarshal(data, &rules); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}
	if rules.Name == "" {
		rules.Name = strings.TrimSuffix(result.File, filepath.Ext(result.File))
	}

	game, err := rules.NewGame()
	if err != nil {
		result.fail("%v", err)
		return result
	}
	if rules.Players < 1 {
		result.fail("players must be at least 1, got %d", rules.Players)
	}

	if warnings := fleetFits(game); len(warnings) > 0 {
		for _, w := range warnings {
			result.fail("Fleet does not fit: %s", w)
		}
	}

	if result.Valid {
		result.info("Name: %s", rules.Name)
		result.info("Grid: %dx%d", rules.Rows, rules.Cols)
		result.info("Ships: %d-%d", rules.SmallestShip, rules.LargestShip)
		result.info("Players: %d", rules.Players)
	}
	return result
}

// fleetFits lays out one ship of every size on an empty board. The
// exhaustive strategy only gives up when a size truly has no room left.
func fleetFits(game *engine.GameData) []string {
	board := engine.NewPlayBoard("check", 1)
	rng := rand.New(rand.NewPCG(1, 1))
	return engine.RandomLayout(game, board, engine.StrategyExhaustive, rng).Warnings
}

// validateSave loads a save file, which rebuilds and checks every ship
func validateSave(filePath string) ValidationResult {
	result := ValidationResult{File: filepath.Base(filePath), Valid: true}

	game, err := savefile.LoadFile(filePath)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	ships := 0
	for _, board := range game.Boards() {
		ships += board.ShipCount()
	}
	result.info("Grid: %dx%d", game.Rows(), game.Cols())
	result.info("Players: %d of %d", game.BoardCount(), game.PlayerCount())
	result.info("Ships: %d", ships)
	return result
}

func validateFile(path string) (ValidationResult, bool) {
	switch filepath.Ext(path) {
	case ".json":
		return validatePreset(path), true
	case ".txt":
		return validateSave(path), true
	}
	return ValidationResult{}, false
}

// collectFiles expands directories into their preset and save files
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		for _, pattern := range []string{"*.json", "*.txt"} {
			matches, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	return files, nil
}

// main validates every file found and exits with non-zero status if any
// are invalid
func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{"../configs"}
	}

	files, err := collectFiles(paths)
	if err != nil {
		fmt.Printf("Error finding files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result, ok := validateFile(file)
		if !ok {
			continue
		}

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Messages {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Println("  ❌ " + msg)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All files are valid!")
	} else {
		fmt.Println("❌ Some files have errors")
		os.Exit(1)
	}
}
