// Package mcp exposes the battleship game service as Model Context Protocol
// tools for AI agents.
//
// MCP Tools:
//   - create_game, get_game, list_games, delete_game
//   - add_player: seat a player with an empty board
//   - place_ship: place one ship from ID:CELL:DIR notation
//   - random_layout: place one ship of every configured size
//   - shoot: look up the ship covering a cell
//   - show_board: render a player's board
//   - load_game, save_game, verify_save: plain-text save files
//   - list_presets, save_preset: read and store rule presets
//
// Service errors are returned as tool errors. A rejected placement is a
// normal result that carries the reason.
//
// Usage:
//
//	srv := mcp.NewServer(gameService)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
