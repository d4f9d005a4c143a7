package service

import (
	"time"

	"github.com/wricardo/battleship/game/engine"
)

// CreateOptions describes a new game. Non-zero fields override the preset.
type CreateOptions struct {
	Preset       string `json:"preset,omitempty"`
	Rows         int    `json:"rows,omitempty"`
	Cols         int    `json:"cols,omitempty"`
	SmallestShip int    `json:"smallest_ship,omitempty"`
	LargestShip  int    `json:"largest_ship,omitempty"`
	// SeatPlayers seats the preset's declared number of players as
	// "Player 1", "Player 2" and so on
	SeatPlayers bool `json:"seat_players,omitempty"`
}

// GameInfo summarizes an open game
type GameInfo struct {
	ID             string        `json:"id"`
	Preset         string        `json:"preset,omitempty"`
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	PlayerCount    int           `json:"player_count"`
	SmallestShip   int           `json:"smallest_ship"`
	LargestShip    int           `json:"largest_ship"`
	Loaded         bool          `json:"loaded"`
	Filename       string        `json:"filename,omitempty"`
	Players        []*PlayerInfo `json:"players"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
}

// PlayerInfo describes one player's board
type PlayerInfo struct {
	Name   string     `json:"name"`
	Number int        `json:"number"`
	Ships  []ShipInfo `json:"ships"`
}

// ShipInfo describes a placed ship in A1 notation
type ShipInfo struct {
	ID        int    `json:"id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Direction string `json:"direction"`
	Length    int    `json:"length"`
}

// PlacementResult reports a placement attempt. A rejected placement is not
// an error; Reason says why it failed.
type PlacementResult struct {
	Success bool      `json:"success"`
	Reason  string    `json:"reason,omitempty"`
	Ship    *ShipInfo `json:"ship,omitempty"`
}

// LayoutReport lists what a random layout placed and what did not fit
type LayoutReport struct {
	Player   string     `json:"player"`
	Placed   []ShipInfo `json:"placed"`
	Warnings []string   `json:"warnings,omitempty"`
}

// ShotResult is the outcome of looking up one cell on a player's board
type ShotResult struct {
	Player string `json:"player"`
	Cell   string `json:"cell"`
	Hit    bool   `json:"hit"`
	ShipID int    `json:"ship_id,omitempty"`
}

// BoardView is a player's fleet as a grid of ship ids
type BoardView struct {
	Player string      `json:"player"`
	Number int         `json:"number"`
	Grid   engine.Grid `json:"grid"`
	Text   string      `json:"text"`
}

// VerifyReport is the result of checking a save file
type VerifyReport struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Rows    int    `json:"rows,omitempty"`
	Cols    int    `json:"cols,omitempty"`
	Players int    `json:"players,omitempty"`
	Ships   int    `json:"ships,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ConfigInfo provides information about a rule preset
// PresetOptions describes a preset to store. Zero fields take the built-in
// defaults; an empty Name becomes the preset id.
type PresetOptions struct {
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Rows         int    `json:"rows,omitempty"`
	Cols         int    `json:"cols,omitempty"`
	SmallestShip int    `json:"smallest_ship,omitempty"`
	LargestShip  int    `json:"largest_ship,omitempty"`
	Players      int    `json:"players,omitempty"`
}

type ConfigInfo struct {
	Filename     string `json:"filename"`
	ConfigID     string `json:"config_id"` // The identifier to use for game creation
	Name         string `json:"name"`      // Display name
	Description  string `json:"description"`
	Rows         int    `json:"rows"`
	Cols         int    `json:"cols"`
	SmallestShip int    `json:"smallest_ship"`
	LargestShip  int    `json:"largest_ship"`
	Players      int    `json:"players"`
}
