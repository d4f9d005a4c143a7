// Package service provides the command layer for battleship games.
//
// The service package implements:
//   - Multi-game management over a SessionManager
//   - Player seating and manual ship placement in ID:CELL:DIR notation
//   - Random fleet layout with the configured strategy
//   - Single-cell shot lookup
//   - Loading, saving and verifying save files
//
// Core Interfaces:
//
// GameService is the main interface used by the CLI and the MCP transport.
// SessionManager stores open games. ConfigManager supplies rule presets.
//
// Coordinates:
//
// Cells use A1 notation. Letters name the column in base 26 (A, B, ... Z,
// AA, AB, ...) and digits name the 1-based row, so C5 is column 2, row 4.
// A placement such as 3:C5:H puts ship 3 (three cells long) horizontally
// with its first cell on C5.
//
// Usage:
//
//	sessions := session.NewManager()
//	configs, _ := config.NewManager("configs")
//	svc := service.NewGameService(sessions, configs, service.Options{})
//
//	game, err := svc.CreateGame(ctx, service.CreateOptions{Preset: "classic"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc.AddPlayer(ctx, game.ID, "Alice")
//	result, err := svc.PlaceShip(ctx, game.ID, "Alice", "3:C5:H")
//	report, err := svc.RandomLayout(ctx, game.ID, "Alice")
//
// A rejected placement is reported through PlacementResult rather than an
// error; errors are reserved for unknown games or players and unparseable
// input. All operations on one service are serialized.
package service
