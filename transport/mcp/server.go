package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/battleship/game/service"
)

// Server exposes the game service as MCP tools
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by the given game service
func NewServer(gameService service.GameService) *Server {
	s := &Server{service: gameService}
	s.initMCPServer()
	return s
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Battleship Board Engine",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Battleship Board Engine - MCP Interface

Create games, seat players, place fleets by hand or at random, look up
cells and read or write plain-text save files.

NOTATION:
- Cells use A1 notation: letters are the column, the number is the row.
- Placements are ID:CELL:DIR, e.g. 3:C5:H. The ship id is also its length
  and must lie within the game's ship-size range.
- Players can be named or given by number (1 is the first seated).

AVAILABLE TOOLS:
- create_game, get_game, list_games, delete_game
- add_player, place_ship, random_layout, shoot, show_board
- load_game, save_game, verify_save
- list_presets, save_preset`),
	)

	s.registerTools()
}

func (s *Server) registerTools() {
	gameID := map[string]interface{}{
		"type":        "string",
		"description": "Game ID returned by create_game or load_game",
	}
	player := map[string]interface{}{
		"type":        "string",
		"description": "Player name or number",
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new empty game from a preset, optionally overriding its settings and seating players",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"preset": map[string]interface{}{
					"type":        "string",
					"description": "Preset name (see list_presets); the default preset is used when omitted",
				},
				"rows":          map[string]interface{}{"type": "integer", "description": "Grid rows"},
				"cols":          map[string]interface{}{"type": "integer", "description": "Grid columns"},
				"smallest_ship": map[string]interface{}{"type": "integer", "description": "Smallest ship length"},
				"largest_ship":  map[string]interface{}{"type": "integer", "description": "Largest ship length"},
				"players": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Player names to seat in order; when omitted the preset's players are seated as Player 1, Player 2 and so on",
				},
			},
		},
	}, s.handleCreateGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get details of a game including every player's fleet",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameID},
			Required:   []string{"game_id"},
		},
	}, s.handleGetGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all open games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListGames)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_game",
		Description: "Close a game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameID},
			Required:   []string{"game_id"},
		},
	}, s.handleDeleteGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "add_player",
		Description: "Seat a new player with an empty board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameID,
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Player name; must not be a number or contain commas",
				},
			},
			Required: []string{"game_id", "name"},
		},
	}, s.handleAddPlayer)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "place_ship",
		Description: "Place one ship. A rejected placement is reported with its reason and leaves the board unchanged.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameID,
				"player":  player,
				"placement": map[string]interface{}{
					"type":        "string",
					"description": "Placement as ID:CELL:DIR, e.g. 4:B2:V",
				},
			},
			Required: []string{"game_id", "player", "placement"},
		},
	}, s.handlePlaceShip)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "random_layout",
		Description: "Place one ship of every configured size at random positions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameID, "player": player},
			Required:   []string{"game_id", "player"},
		},
	}, s.handleRandomLayout)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "shoot",
		Description: "Look up which ship, if any, covers a cell on a player's board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameID,
				"player":  player,
				"cell": map[string]interface{}{
					"type":        "string",
					"description": "Target cell in A1 notation",
				},
			},
			Required: []string{"game_id", "player", "cell"},
		},
	}, s.handleShoot)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "show_board",
		Description: "Render a player's board as a grid of ship ids",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameID, "player": player},
			Required:   []string{"game_id", "player"},
		},
	}, s.handleShowBoard)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "load_game",
		Description: "Open a save file as a new game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{"type": "string", "description": "Path to the save file"},
			},
			Required: []string{"path"},
		},
	}, s.handleLoadGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "save_game",
		Description: "Write a game to a save file",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameID,
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Destination path; defaults to the file the game was loaded from or last saved to",
				},
			},
			Required: []string{"game_id"},
		},
	}, s.handleSaveGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "verify_save",
		Description: "Check that a save file loads cleanly without opening it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{"type": "string", "description": "Path to the save file"},
			},
			Required: []string{"path"},
		},
	}, s.handleVerifySave)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_presets",
		Description: "List available game presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListPresets)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "save_preset",
		Description: "Store a game preset in the config directory. Unset values take the built-in defaults.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id":            map[string]interface{}{"type": "string", "description": "Preset id used by create_game"},
				"name":          map[string]interface{}{"type": "string", "description": "Display name; defaults to the id"},
				"description":   map[string]interface{}{"type": "string", "description": "One-line description"},
				"rows":          map[string]interface{}{"type": "integer", "description": "Grid rows"},
				"cols":          map[string]interface{}{"type": "integer", "description": "Grid columns"},
				"smallest_ship": map[string]interface{}{"type": "integer", "description": "Smallest ship length"},
				"largest_ship":  map[string]interface{}{"type": "integer", "description": "Largest ship length"},
				"players":       map[string]interface{}{"type": "integer", "description": "Players seated when create_game names none"},
			},
			Required: []string{"id"},
		},
	}, s.handleSavePreset)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin and stdout until the input closes
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Tool handlers

func (s *Server) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	playersRaw, _ := args["players"].([]interface{})
	opts := service.CreateOptions{
		Preset:       stringArg(args, "preset"),
		Rows:         intArg(args, "rows"),
		Cols:         intArg(args, "cols"),
		SmallestShip: intArg(args, "smallest_ship"),
		LargestShip:  intArg(args, "largest_ship"),
		SeatPlayers:  len(playersRaw) == 0,
	}

	info, err := s.service.CreateGame(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	for _, p := range playersRaw {
		name, ok := p.(string)
		if !ok {
			continue
		}
		if _, err := s.service.AddPlayer(ctx, info.ID, name); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("created game %s but could not seat %q: %v", info.ID, name, err)), nil
		}
	}

	if len(playersRaw) > 0 {
		if info, err = s.service.GetGame(ctx, info.ID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	return mcp.NewToolResultText("Created game: " + info.ID + "\n" + formatGameInfo(info)), nil
}

func (s *Server) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.service.GetGame(ctx, stringArg(request.GetArguments(), "game_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameInfo(info)), nil
}

func (s *Server) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games, err := s.service.ListGames(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Open Games (%d):\n\n", len(games))
	for _, g := range games {
		result += fmt.Sprintf("- %s (%dx%d, %d players, Created: %s)\n",
			g.ID, g.Rows, g.Cols, len(g.Players), g.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleDeleteGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request.GetArguments(), "game_id")
	if err := s.service.DeleteGame(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Deleted game: " + id), nil
}

func (s *Server) handleAddPlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	info, err := s.service.AddPlayer(ctx, stringArg(args, "game_id"), stringArg(args, "name"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Seated %s as player %d", info.Name, info.Number)), nil
}

func (s *Server) handlePlaceShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	result, err := s.service.PlaceShip(ctx, stringArg(args, "game_id"), stringArg(args, "player"), stringArg(args, "placement"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatPlacementResult(result)), nil
}

func (s *Server) handleRandomLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	report, err := s.service.RandomLayout(ctx, stringArg(args, "game_id"), stringArg(args, "player"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatLayoutReport(report)), nil
}

func (s *Server) handleShoot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	shot, err := s.service.Shoot(ctx, stringArg(args, "game_id"), stringArg(args, "player"), stringArg(args, "cell"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatShotResult(shot)), nil
}

func (s *Server) handleShowBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	view, err := s.service.GetBoard(ctx, stringArg(args, "game_id"), stringArg(args, "player"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Player %d: %s\n\n%s", view.Number, view.Player, view.Text)), nil
}

func (s *Server) handleLoadGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.service.LoadGame(ctx, stringArg(request.GetArguments(), "path"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Loaded game: " + info.ID + "\n" + formatGameInfo(info)), nil
}

func (s *Server) handleSaveGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, err := s.service.SaveGame(ctx, stringArg(args, "game_id"), stringArg(args, "path"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Saved to " + path), nil
}

func (s *Server) handleVerifySave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.service.Verify(ctx, stringArg(request.GetArguments(), "path"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatVerifyReport(report)), nil
}

func (s *Server) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configs, err := s.service.ListConfigs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Presets:\n\n"
	for _, cfg := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Ships: %d-%d, Players: %d\n\n",
			cfg.ConfigID, cfg.Name, cfg.Description, cfg.Rows, cfg.Cols, cfg.SmallestShip, cfg.LargestShip, cfg.Players)
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSavePreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	cfg, err := s.service.SavePreset(ctx, stringArg(args, "id"), service.PresetOptions{
		Name:         stringArg(args, "name"),
		Description:  stringArg(args, "description"),
		Rows:         intArg(args, "rows"),
		Cols:         intArg(args, "cols"),
		SmallestShip: intArg(args, "smallest_ship"),
		LargestShip:  intArg(args, "largest_ship"),
		Players:      intArg(args, "players"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Saved preset %s (%s)\nGrid: %dx%d, Ships: %d-%d, Players: %d",
		cfg.ConfigID, cfg.Name, cfg.Rows, cfg.Cols, cfg.SmallestShip, cfg.LargestShip, cfg.Players)), nil
}

// Argument helpers. JSON numbers arrive as float64.

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Formatting

func formatGameInfo(info *service.GameInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grid: %dx%d\n", info.Rows, info.Cols)
	fmt.Fprintf(&b, "Ships: %d-%d\n", info.SmallestShip, info.LargestShip)
	if info.Preset != "" {
		fmt.Fprintf(&b, "Preset: %s\n", info.Preset)
	}
	if info.Filename != "" {
		fmt.Fprintf(&b, "File: %s\n", info.Filename)
	}
	fmt.Fprintf(&b, "Players: %d\n", len(info.Players))
	for _, p := range info.Players {
		fmt.Fprintf(&b, "  %d. %s (%d ships)\n", p.Number, p.Name, len(p.Ships))
		for _, ship := range p.Ships {
			fmt.Fprintf(&b, "     %s\n", formatShip(ship))
		}
	}
	return b.String()
}

func formatShip(ship service.ShipInfo) string {
	return fmt.Sprintf("ship %d: %s-%s %s", ship.ID, ship.Start, ship.End, ship.Direction)
}

func formatPlacementResult(result *service.PlacementResult) string {
	if !result.Success {
		return "✗ Placement rejected: " + result.Reason
	}
	return "✓ Placed " + formatShip(*result.Ship)
}

func formatLayoutReport(report *service.LayoutReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Random layout for %s: %d ships placed\n", report.Player, len(report.Placed))
	for _, ship := range report.Placed {
		fmt.Fprintf(&b, "  %s\n", formatShip(ship))
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(&b, "⚠️ %s\n", w)
	}
	return b.String()
}

func formatShotResult(shot *service.ShotResult) string {
	if !shot.Hit {
		return fmt.Sprintf("%s on %s's board: miss", shot.Cell, shot.Player)
	}
	return fmt.Sprintf("%s on %s's board: hit ship %d", shot.Cell, shot.Player, shot.ShipID)
}

func formatVerifyReport(report *service.VerifyReport) string {
	if !report.Valid {
		return fmt.Sprintf("✗ %s is invalid: %s", report.Path, report.Error)
	}
	return fmt.Sprintf("✓ %s is valid: %dx%d grid, %d players, %d ships",
		report.Path, report.Rows, report.Cols, report.Players, report.Ships)
}
