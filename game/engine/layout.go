package engine

import (
	"fmt"
	"strings"
)

// Rand is the randomness the layout generator needs. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// LayoutStrategy selects how RandomLayout searches for positions
type LayoutStrategy string

const (
	// StrategyExhaustive enumerates every legal placement and picks one
	StrategyExhaustive LayoutStrategy = "exhaustive"
	// StrategyRetry draws random placements until one fits or the retry
	// budget runs out
	StrategyRetry LayoutStrategy = "retry"
)

// ParseLayoutStrategy maps a strategy name to its constant
func ParseLayoutStrategy(s string) (LayoutStrategy, error) {
	switch LayoutStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyExhaustive, "":
		return StrategyExhaustive, nil
	case StrategyRetry:
		return StrategyRetry, nil
	}
	return "", fmt.Errorf("unknown layout strategy %q (use %q or %q)", s, StrategyExhaustive, StrategyRetry)
}

// LayoutResult lists the ships placed by a layout run and any sizes that
// could not be placed
type LayoutResult struct {
	Placed   []ShipBoundingBox
	Warnings []string
}

// LayoutOptions tunes a layout run
type LayoutOptions struct {
	Strategy LayoutStrategy
	// MaxRetries bounds consecutive failures for StrategyRetry; zero means
	// MaxPlacementRetries
	MaxRetries int
}

// RandomLayout places one ship of every configured size, largest first,
// using the default retry budget
func RandomLayout(game *GameData, player *PlayBoard, strategy LayoutStrategy, rng Rand) LayoutResult {
	return RandomLayoutWithOptions(game, player, LayoutOptions{Strategy: strategy}, rng)
}

// RandomLayoutWithOptions places one ship of every size in the game's range.
// A size that does not fit produces a warning instead of an error, so the
// resulting layout may be partial. Every loop is bounded.
func RandomLayoutWithOptions(game *GameData, player *PlayBoard, opts LayoutOptions, rng Rand) LayoutResult {
	var result LayoutResult
	smallest, largest := game.ShipSizes()

	for size := largest; size >= smallest; size-- {
		if player.HasShipID(size) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("ship %d already placed for %s", size, player.PlayerName()))
			continue
		}

		var (
			ship ShipBoundingBox
			ok   bool
		)
		switch opts.Strategy {
		case StrategyRetry:
			ship, ok = placeByRetry(game, player, size, opts.MaxRetries, rng)
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("gave up placing ship size %d after %d attempts", size, retryBudget(opts.MaxRetries)))
				continue
			}
		default:
			ship, ok = placeExhaustive(game, player, size, rng)
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("no space for ship size %d", size))
				continue
			}
		}

		if player.AddShip(ship) {
			result.Placed = append(result.Placed, ship)
		}
	}

	return result
}

// Candidate is an origin together with the directions a ship fits in there
type Candidate struct {
	Origin     Cell
	Directions []Direction
}

// ValidPlacements lists every origin where a ship of the given size fits on
// the player's board, with the directions allowed at each origin. Origins
// are in row-major order.
func ValidPlacements(game *GameData, player *PlayBoard, size int) []Candidate {
	var candidates []Candidate
	rows, cols := game.Rows(), game.Cols()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			origin := Cell{Col: col, Row: row}
			var dirs []Direction

			if col+size <= cols && !player.CheckCollision(origin, size, Horizontal) {
				dirs = append(dirs, Horizontal)
			}
			if row+size <= rows && !player.CheckCollision(origin, size, Vertical) {
				dirs = append(dirs, Vertical)
			}
			if len(dirs) > 0 {
				candidates = append(candidates, Candidate{Origin: origin, Directions: dirs})
			}
		}
	}

	return candidates
}

func placeExhaustive(game *GameData, player *PlayBoard, size int, rng Rand) (ShipBoundingBox, bool) {
	candidates := ValidPlacements(game, player, size)
	pick, ok := PickRandom(candidates, rng)
	if !ok {
		return ShipBoundingBox{}, false
	}
	dir, _ := PickRandom(pick.Directions, rng)
	return NewShip(size, pick.Origin, dir, game, player)
}

func placeByRetry(game *GameData, player *PlayBoard, size, maxRetries int, rng Rand) (ShipBoundingBox, bool) {
	budget := retryBudget(maxRetries)
	for attempt := 0; attempt < budget; attempt++ {
		origin := Cell{Col: rng.IntN(game.Cols()), Row: rng.IntN(game.Rows())}
		dir := Horizontal
		if rng.IntN(2) == 1 {
			dir = Vertical
		}
		if ship, ok := NewShip(size, origin, dir, game, player); ok {
			return ship, true
		}
	}
	return ShipBoundingBox{}, false
}

func retryBudget(maxRetries int) int {
	if maxRetries <= 0 {
		return MaxPlacementRetries
	}
	return maxRetries
}
