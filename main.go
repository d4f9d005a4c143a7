// Command battleship builds, edits and checks battleship fleet layouts.
//
// Games are created from rule presets, filled by hand in ID:CELL:DIR
// notation or at random, and written to plain-text save files. The mcp
// command serves the same operations as Model Context Protocol tools over
// stdio.
//
// Settings come from BATTLESHIP_* environment variables (optionally read
// from a .env file) and can be overridden by the global flags.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/battleship/game/config"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/game/session"
	"github.com/wricardo/battleship/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "battleship"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(settings, os.Stdout).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// app carries the environment settings and output shared by every command
type app struct {
	settings config.Settings
	out      io.Writer
}

// newApp builds the command tree. Flag defaults come from settings.
func newApp(settings config.Settings, out io.Writer) *cli.Command {
	a := &app{settings: settings, out: out}
	return &cli.Command{
		Name:    AppName,
		Usage:   "battleship board and fleet placement engine",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: settings.ConfigDir, Usage: "directory containing rule presets"},
			&cli.StringFlag{Name: "saves-dir", Value: settings.SavesDir, Usage: "directory for persisted MCP games"},
			&cli.StringFlag{Name: "layout", Value: settings.LayoutStrategy, Usage: "random layout strategy: exhaustive or retry"},
			&cli.StringFlag{Name: "default-preset", Value: settings.DefaultPreset, Usage: "preset used by create when --preset is omitted (default classic)"},
			&cli.IntFlag{Name: "max-retries", Usage: "retry budget per ship for the retry strategy (default from BATTLESHIP_MAX_RETRIES)"},
			&cli.IntFlag{Name: "seed", Usage: "random layout seed; 0 seeds from the clock (default from BATTLESHIP_SEED)"},
			&cli.BoolFlag{Name: "debug", Value: settings.Debug, Usage: "enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.createCommand(),
			a.loadCommand(),
			a.placeCommand(),
			a.shootCommand(),
			a.verifyCommand(),
			a.presetsCommand(),
			a.mcpCommand(),
		},
	}
}

func (a *app) createCommand() *cli.Command {
	out := a.out
	return &cli.Command{
		Name:  "create",
		Usage: "create a game, seat players and place their fleets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "preset", Usage: "rule preset; the default preset when omitted"},
			&cli.IntFlag{Name: "rows", Usage: "override grid rows"},
			&cli.IntFlag{Name: "cols", Usage: "override grid columns"},
			&cli.IntFlag{Name: "smallest", Usage: "override smallest ship length"},
			&cli.IntFlag{Name: "largest", Usage: "override largest ship length"},
			&cli.StringSliceFlag{Name: "player", Aliases: []string{"p"}, Usage: "player name, repeat for each player; without it the preset's players are seated as Player 1..N"},
			&cli.StringSliceFlag{Name: "place", Usage: "manual placement as PLAYER=ID:CELL:DIR"},
			&cli.BoolFlag{Name: "random", Usage: "fill every fleet at random after manual placements"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "save file to write"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := a.gameService(cmd)
			if err != nil {
				return err
			}

			info, err := svc.CreateGame(ctx, service.CreateOptions{
				Preset:       cmd.String("preset"),
				Rows:         int(cmd.Int("rows")),
				Cols:         int(cmd.Int("cols")),
				SmallestShip: int(cmd.Int("smallest")),
				LargestShip:  int(cmd.Int("largest")),
				SeatPlayers:  len(cmd.StringSlice("player")) == 0,
			})
			if err != nil {
				return err
			}

			for _, name := range cmd.StringSlice("player") {
				if _, err := svc.AddPlayer(ctx, info.ID, name); err != nil {
					return err
				}
			}
			if err := applyPlacements(ctx, svc, info.ID, cmd.StringSlice("place"), out); err != nil {
				return err
			}
			if cmd.Bool("random") {
				if err := fillRandom(ctx, svc, info.ID, out); err != nil {
					return err
				}
			}

			if path := cmd.String("out"); path != "" {
				saved, err := svc.SaveGame(ctx, info.ID, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved to %s\n", saved)
			}
			return printGame(ctx, svc, info.ID, out)
		},
	}
}

func (a *app) loadCommand() *cli.Command {
	out := a.out
	return &cli.Command{
		Name:      "load",
		Aliases:   []string{"display"},
		Usage:     "show the fleets in a save file",
		ArgsUsage: "FILE [PLAYER]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 1 {
				return fmt.Errorf("load needs a save file")
			}
			svc, err := a.gameService(cmd)
			if err != nil {
				return err
			}
			info, err := svc.LoadGame(ctx, cmd.Args().First())
			if err != nil {
				return err
			}

			if player := cmd.Args().Get(1); player != "" {
				return printBoard(ctx, svc, info.ID, player, out)
			}
			return printGame(ctx, svc, info.ID, out)
		},
	}
}

func (a *app) placeCommand() *cli.Command {
	out := a.out
	return &cli.Command{
		Name:      "place",
		Usage:     "add ships to a player in a save file and write it back",
		ArgsUsage: "FILE PLAYER ID:CELL:DIR...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "random", Usage: "place the player's remaining ships at random"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) < 2 {
				return fmt.Errorf("place needs a save file and a player")
			}
			svc, err := a.gameService(cmd)
			if err != nil {
				return err
			}
			info, err := svc.LoadGame(ctx, args[0])
			if err != nil {
				return err
			}

			pairs := make([]string, 0, len(args)-2)
			for _, placement := range args[2:] {
				pairs = append(pairs, args[1]+"="+placement)
			}
			if err := applyPlacements(ctx, svc, info.ID, pairs, out); err != nil {
				return err
			}
			if cmd.Bool("random") {
				report, err := svc.RandomLayout(ctx, info.ID, args[1])
				if err != nil {
					return err
				}
				printLayout(report, out)
			}

			saved, err := svc.SaveGame(ctx, info.ID, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved to %s\n", saved)
			return printBoard(ctx, svc, info.ID, args[1], out)
		},
	}
}

func (a *app) shootCommand() *cli.Command {
	out := a.out
	return &cli.Command{
		Name:      "shoot",
		Usage:     "look up which ship covers a cell",
		ArgsUsage: "FILE PLAYER CELL",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 3 {
				return fmt.Errorf("shoot needs a save file, a player and a cell")
			}
			svc, err := a.gameService(cmd)
			if err != nil {
				return err
			}
			info, err := svc.LoadGame(ctx, args[0])
			if err != nil {
				return err
			}
			shot, err := svc.Shoot(ctx, info.ID, args[1], args[2])
			if err != nil {
				return err
			}

			if shot.Hit {
				fmt.Fprintf(out, "%s: hit ship %d\n", shot.Cell, shot.ShipID)
			} else {
				fmt.Fprintf(out, "%s: miss\n", shot.Cell)
			}
			return nil
		},
	}
}

func (a *app) verifyCommand() *cli.Command {
	out := a.out
	return &cli.Command{
		Name:      "verify",
		Usage:     "check that save files load cleanly",
		ArgsUsage: "FILE...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("verify needs at least one save file")
			}
			svc, err := a.gameService(cmd)
			if err != nil {
				return err
			}

			invalid := 0
			for _, path := range paths {
				report, err := svc.Verify(ctx, path)
				if err != nil {
					return err
				}
				if !report.Valid {
					invalid++
					fmt.Fprintf(out, "✗ %s: %s\n", report.Path, report.Error)
					continue
				}
				fmt.Fprintf(out, "✓ %s: %dx%d, %d players, %d ships\n",
					report.Path, report.Rows, report.Cols, report.Players, report.Ships)
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d save files are invalid", invalid, len(paths))
			}
			return nil
		},
	}
}

func (a *app) presetsCommand() *cli.Command {
	out := a.out
	return &cli.Command{
		Name:  "presets",
		Usage: "list available rule presets",
		Commands: []*cli.Command{
			a.presetSaveCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := a.gameService(cmd)
			if err != nil {
				return err
			}
			configs, err := svc.ListConfigs(ctx)
			if err != nil {
				return err
			}
			for _, cfg := range configs {
				fmt.Fprintf(out, "%-10s %dx%d, ships %d-%d, %d players  %s\n",
					cfg.ConfigID, cfg.Rows, cfg.Cols, cfg.SmallestShip, cfg.LargestShip, cfg.Players, cfg.Description)
			}
			return nil
		},
	}
}

func (a *app) presetSaveCommand() *cli.Command {
	out := a.out
	return &cli.Command{
		Name:      "save",
		Usage:     "store a rule preset in the config directory; unset values take the built-in defaults",
		ArgsUsage: "ID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "display name (default ID)"},
			&cli.StringFlag{Name: "description", Usage: "one-line description"},
			&cli.IntFlag{Name: "rows", Usage: "grid rows"},
			&cli.IntFlag{Name: "cols", Usage: "grid columns"},
			&cli.IntFlag{Name: "smallest", Usage: "smallest ship length"},
			&cli.IntFlag{Name: "largest", Usage: "largest ship length"},
			&cli.IntFlag{Name: "players", Usage: "players seated by create when none are named"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("presets save needs a preset id")
			}
			svc, err := a.gameService(cmd)
			if err != nil {
				return err
			}
			cfg, err := svc.SavePreset(ctx, cmd.Args().First(), service.PresetOptions{
				Name:         cmd.String("name"),
				Description:  cmd.String("description"),
				Rows:         int(cmd.Int("rows")),
				Cols:         int(cmd.Int("cols")),
				SmallestShip: int(cmd.Int("smallest")),
				LargestShip:  int(cmd.Int("largest")),
				Players:      int(cmd.Int("players")),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved preset %s: %dx%d, ships %d-%d, %d players\n",
				cfg.ConfigID, cfg.Rows, cfg.Cols, cfg.SmallestShip, cfg.LargestShip, cfg.Players)
			return nil
		},
	}
}

func (a *app) mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp"},
		Usage:   "serve the game tools over MCP stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svcs, err := initializeServices(a.settingsFromFlags(cmd), true)
			if err != nil {
				return err
			}
			go sessionCleanupRoutine(ctx, svcs.sessions)
			go presetSyncRoutine(ctx, svcs.configs)
			defer func() {
				if err := svcs.sessions.SaveAllSessions(); err != nil {
					log.Printf("Warning: %v", err)
				}
			}()

			log.Printf("Starting %s v%s MCP stdio server", AppName, Version)
			return mcp.NewServer(svcs.game).ServeStdio()
		},
	}
}

// settingsFromFlags applies the global flags over the environment settings
func (a *app) settingsFromFlags(cmd *cli.Command) config.Settings {
	root := cmd.Root()
	s := a.settings
	s.ConfigDir = root.String("config-dir")
	s.SavesDir = root.String("saves-dir")
	s.LayoutStrategy = root.String("layout")
	s.DefaultPreset = root.String("default-preset")
	s.Debug = root.Bool("debug")
	if root.IsSet("max-retries") {
		s.MaxRetries = int(root.Int("max-retries"))
	}
	if root.IsSet("seed") {
		s.Seed = uint64(root.Int("seed"))
	}
	return s
}

// gameService builds a service without persistence for one-shot commands
func (a *app) gameService(cmd *cli.Command) (service.GameService, error) {
	svcs, err := initializeServices(a.settingsFromFlags(cmd), false)
	if err != nil {
		return nil, err
	}
	return svcs.game, nil
}

// services holds everything initializeServices wires together
type services struct {
	game     service.GameService
	sessions *session.Manager
	configs  *config.Manager
}

// initializeServices wires the config and session managers into a game
// service. With persist set, open games are stored under the saves directory
// and reloaded on start.
func initializeServices(settings config.Settings, persist bool) (*services, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	configManager, err := config.NewManager(settings.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if settings.DefaultPreset != "" {
		if err := configManager.SetDefault(settings.DefaultPreset); err != nil {
			return nil, fmt.Errorf("default preset: %w", err)
		}
	}

	sessionManager := session.NewManager()
	if persist {
		persistence, err := session.NewFilePersistence(settings.SavesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
		sessionManager = session.NewManagerWithPersistence(persistence)
		if err := sessionManager.LoadPersistedSessions(); err != nil {
			log.Printf("Warning: Failed to load persisted sessions: %v", err)
		}
	}

	gameService := service.NewGameService(sessionManager, configManager, service.Options{
		Layout: settings.LayoutOptions(),
		Rand:   settings.NewRand(),
	})
	return &services{game: gameService, sessions: sessionManager, configs: configManager}, nil
}

// sessionCleanupRoutine drops games idle for a day from memory. Their save
// files stay on disk and reload on the next access.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(24 * time.Hour); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// presetSyncRoutine reloads presets from disk so edits made while the server
// runs reach new games
func presetSyncRoutine(ctx context.Context, configs *config.Manager) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := configs.RefreshCache(); err != nil {
				log.Printf("Warning: failed to reload presets: %v", err)
			}
		}
	}
}

// applyPlacements places PLAYER=ID:CELL:DIR arguments in order. A rejected
// placement is reported and skipped.
func applyPlacements(ctx context.Context, svc service.GameService, gameID string, args []string, out io.Writer) error {
	for _, arg := range args {
		player, placement, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("placement %q must look like PLAYER=ID:CELL:DIR", arg)
		}
		result, err := svc.PlaceShip(ctx, gameID, player, placement)
		if err != nil {
			return err
		}
		if !result.Success {
			fmt.Fprintf(out, "Rejected %s for %s: %s\n", placement, player, result.Reason)
		}
	}
	return nil
}

func fillRandom(ctx context.Context, svc service.GameService, gameID string, out io.Writer) error {
	info, err := svc.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	for _, p := range info.Players {
		report, err := svc.RandomLayout(ctx, gameID, p.Name)
		if err != nil {
			return err
		}
		printLayout(report, out)
	}
	return nil
}

func printLayout(report *service.LayoutReport, out io.Writer) {
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "Warning: %s: %s\n", report.Player, w)
	}
}

func printGame(ctx context.Context, svc service.GameService, gameID string, out io.Writer) error {
	info, err := svc.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Grid %dx%d, ships %d-%d, %d players\n",
		info.Rows, info.Cols, info.SmallestShip, info.LargestShip, info.PlayerCount)
	for _, p := range info.Players {
		fmt.Fprintln(out)
		if err := printBoard(ctx, svc, gameID, p.Name, out); err != nil {
			return err
		}
	}
	return nil
}

func printBoard(ctx context.Context, svc service.GameService, gameID, player string, out io.Writer) error {
	view, err := svc.GetBoard(ctx, gameID, player)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Player %d: %s\n%s", view.Number, view.Player, view.Text)
	return nil
}
