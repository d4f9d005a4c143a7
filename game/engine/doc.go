// Package engine provides the board and ship-placement logic for Battleship.
//
// The engine package implements:
//   - Ship geometry as start/end bounding boxes with overlap detection
//   - Per-player boards that keep ship ids unique and ships disjoint
//   - Validated ship placement against grid bounds
//   - Random fleet layout with bounded search
//   - Conversion between ship sets and id-painted cell grids
//
// Core Types:
//
// GameData is the root aggregate holding the grid dimensions, the allowed
// ship-size range and one PlayBoard per player. Non-zero ShipBoundingBox
// values are only produced by NewShip, which validates a proposed placement
// and never mutates state. PlayBoard.AddShip refuses the zero value, so every
// ship on a board has a positive id equal to its length.
//
// Usage:
//
//	game := engine.NewGameData()
//	player := engine.NewPlayBoard("Alice", 1)
//
//	if !engine.PlaceShip(game, player, 3, engine.Cell{Col: 2, Row: 4}, engine.Horizontal) {
//		log.Println("placement rejected")
//	}
//
//	result := engine.RandomLayout(game, player, engine.StrategyExhaustive, rng)
//	for _, w := range result.Warnings {
//		log.Printf("Warning: %s", w)
//	}
//	game.AddBoard(player)
//
// Ship ids double as ship lengths: ship 3 always covers three cells. A ship
// of length one is treated as vertical by every orientation-dependent
// operation.
//
// The engine is single-threaded; callers own GameData exclusively.
package engine
