package engine

import "fmt"

// GameRules is a named preset for new games: grid size, ship-size range
// and the number of players to seat
type GameRules struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Rows         int    `json:"rows"`
	Cols         int    `json:"cols"`
	SmallestShip int    `json:"smallest_ship"`
	LargestShip  int    `json:"largest_ship"`
	Players      int    `json:"players"`
}

// DefaultRules matches NewGameData
func DefaultRules() *GameRules {
	return &GameRules{
		Name:         "default",
		Description:  "10x10 grid, ships of length 2 to 5",
		Rows:         DefaultRows,
		Cols:         DefaultCols,
		SmallestShip: DefaultSmallestShip,
		LargestShip:  DefaultLargestShip,
		Players:      DefaultPlayerCount,
	}
}

// ValidateGameRules applies the same checks as ValidateGameData
func ValidateGameRules(rules *GameRules) error {
	if rules == nil {
		return fmt.Errorf("rules cannot be nil")
	}
	if rules.Name == "" {
		return fmt.Errorf("rules name is required")
	}
	if err := ValidateDimension(rules.Rows); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	if err := ValidateDimension(rules.Cols); err != nil {
		return fmt.Errorf("cols: %w", err)
	}
	if err := ValidateShipSizes(rules.SmallestShip, rules.LargestShip); err != nil {
		return err
	}
	if rules.Players < 0 {
		return fmt.Errorf("players must not be negative, got %d", rules.Players)
	}
	return nil
}

// NewGame builds an empty game from the rules. The player count starts at
// zero and grows as boards are added.
func (r *GameRules) NewGame() (*GameData, error) {
	if err := ValidateGameRules(r); err != nil {
		return nil, err
	}
	game := NewGameData()
	game.rows, game.cols = r.Rows, r.Cols
	game.smallestShip, game.largestShip = r.SmallestShip, r.LargestShip
	game.playerCount = 0
	return game, nil
}
