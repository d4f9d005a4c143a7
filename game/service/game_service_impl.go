package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/savefile"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrDuplicatePlayer   = errors.New("player already exists")
	ErrInvalidPlayerName = errors.New("invalid player name")
	ErrOutOfBounds       = errors.New("cell is outside the grid")
	ErrNoSavePath        = errors.New("no save path given and the game has no file")
)

// Options tunes the service
type Options struct {
	Layout engine.LayoutOptions
	// Rand drives random layouts; nil seeds from the clock
	Rand engine.Rand
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	layout   engine.LayoutOptions
	rng      engine.Rand
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts Options) GameService {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		layout:   opts.Layout,
		rng:      rng,
	}
}

// CreateGame starts an empty game from a preset with optional overrides
func (s *gameServiceImpl) CreateGame(ctx context.Context, opts CreateOptions) (*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var base *engine.GameRules
	if opts.Preset != "" {
		rules, err := s.configs.LoadConfig(opts.Preset)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("failed to load preset '%s' (available: %s): %w", opts.Preset, strings.Join(configIDs, ", "), err)
			}
			return nil, fmt.Errorf("failed to load preset '%s': %w", opts.Preset, err)
		}
		base = rules
	} else {
		base = s.configs.GetDefault()
	}
	if base == nil {
		base = engine.DefaultRules()
	}

	rules := *base
	if opts.Rows != 0 {
		rules.Rows = opts.Rows
	}
	if opts.Cols != 0 {
		rules.Cols = opts.Cols
	}
	if opts.SmallestShip != 0 {
		rules.SmallestShip = opts.SmallestShip
		if opts.LargestShip == 0 {
			rules.LargestShip = max(rules.LargestShip, opts.SmallestShip)
		}
	}
	if opts.LargestShip != 0 {
		rules.LargestShip = opts.LargestShip
	}

	game, err := rules.NewGame()
	if err != nil {
		return nil, fmt.Errorf("invalid game settings: %w", err)
	}

	if opts.SeatPlayers {
		for i := 1; i <= rules.Players; i++ {
			if _, err := seatPlayer(game, fmt.Sprintf("Player %d", i)); err != nil {
				return nil, err
			}
		}
	}

	sess, err := s.sessions.Create("", game, opts.Preset)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Printf("Created game %s (%dx%d, ships %d-%d)", sess.ID, game.Rows(), game.Cols(), rules.SmallestShip, rules.LargestShip)
	return gameInfo(sess), nil
}

// GetGame returns a summary of one game
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(gameID)
	if err != nil {
		return nil, err
	}
	return gameInfo(sess), nil
}

// ListGames returns all open games ordered by creation time
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*GameInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, gameInfo(sess))
	}
	return result, nil
}

// DeleteGame closes a game
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Delete(gameID)
}

// AddPlayer seats a new player with an empty board. Player numbers follow
// seating order starting at 1.
func (s *gameServiceImpl) AddPlayer(ctx context.Context, gameID, name string) (*PlayerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(gameID)
	if err != nil {
		return nil, err
	}

	board, err := seatPlayer(sess.Game, name)
	if err != nil {
		return nil, err
	}

	s.touch(sess.ID)
	return playerInfo(board), nil
}

// seatPlayer adds an empty board for name and keeps the declared player
// count at least the number of boards
func seatPlayer(game *engine.GameData, name string) (*engine.PlayBoard, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, ",\n\r") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlayerName, name)
	}
	if _, err := strconv.Atoi(name); err == nil {
		return nil, fmt.Errorf("%w: %q looks like a player number", ErrInvalidPlayerName, name)
	}

	if _, exists := game.BoardByName(name); exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
	}

	board := engine.NewPlayBoard(name, game.BoardCount()+1)
	game.AddBoard(board)
	if game.BoardCount() > game.PlayerCount() {
		game.IncrementPlayerCount()
	}
	return board, nil
}

// PlaceShip places one ship from ID:CELL:DIR notation
func (s *gameServiceImpl) PlaceShip(ctx context.Context, gameID, player, placement string) (*PlacementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, board, err := s.getBoard(gameID, player)
	if err != nil {
		return nil, err
	}
	p, err := ParsePlacement(placement)
	if err != nil {
		return nil, err
	}
	if smallest, largest := sess.Game.ShipSizes(); p.ShipID < smallest || p.ShipID > largest {
		return &PlacementResult{
			Success: false,
			Reason:  fmt.Sprintf("ship %d is outside the allowed sizes %d-%d", p.ShipID, smallest, largest),
		}, nil
	}

	ship, err := engine.CheckPlacement(p.ShipID, p.Origin, p.Direction, sess.Game, board)
	if err != nil {
		var perr *engine.PlacementError
		if errors.As(err, &perr) {
			return &PlacementResult{Success: false, Reason: describePlacementError(perr)}, nil
		}
		return nil, err
	}
	board.AddShip(ship)

	s.touch(sess.ID)
	info := shipInfo(ship)
	return &PlacementResult{Success: true, Ship: &info}, nil
}

// RandomLayout fills a player's board with one ship of each configured size
func (s *gameServiceImpl) RandomLayout(ctx context.Context, gameID, player string) (*LayoutReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, board, err := s.getBoard(gameID, player)
	if err != nil {
		return nil, err
	}

	result := engine.RandomLayoutWithOptions(sess.Game, board, s.layout, s.rng)
	for _, warning := range result.Warnings {
		log.Printf("Warning: game %s, player %s: %s", sess.ID, board.PlayerName(), warning)
	}

	report := &LayoutReport{
		Player:   board.PlayerName(),
		Placed:   make([]ShipInfo, 0, len(result.Placed)),
		Warnings: result.Warnings,
	}
	for _, ship := range result.Placed {
		report.Placed = append(report.Placed, shipInfo(ship))
	}

	s.touch(sess.ID)
	return report, nil
}

// Shoot looks up what occupies a cell on a player's board
func (s *gameServiceImpl) Shoot(ctx context.Context, gameID, player, cell string) (*ShotResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, board, err := s.getBoard(gameID, player)
	if err != nil {
		return nil, err
	}
	target, err := ParseCell(cell)
	if err != nil {
		return nil, err
	}
	if !sess.Game.InBounds(target) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, FormatCell(target))
	}

	id, hit := board.HandleShot(target.Row, target.Col)
	return &ShotResult{
		Player: board.PlayerName(),
		Cell:   FormatCell(target),
		Hit:    hit,
		ShipID: id,
	}, nil
}

// GetBoard returns a player's fleet as a grid and as text
func (s *gameServiceImpl) GetBoard(ctx context.Context, gameID, player string) (*BoardView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, board, err := s.getBoard(gameID, player)
	if err != nil {
		return nil, err
	}

	grid := engine.PlayerGrid(sess.Game, board)
	return &BoardView{
		Player: board.PlayerName(),
		Number: board.PlayerNum(),
		Grid:   grid,
		Text:   RenderGrid(grid),
	}, nil
}

// LoadGame opens a save file as a new game
func (s *gameServiceImpl) LoadGame(ctx context.Context, path string) (*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := savefile.LoadFile(path)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create("", game, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Printf("Loaded %s as game %s (%d players)", path, sess.ID, game.BoardCount())
	return gameInfo(sess), nil
}

// SaveGame writes a game to path, or to the file it was loaded from or last
// saved to when path is empty. The open game keeps its ships.
func (s *gameServiceImpl) SaveGame(ctx context.Context, gameID, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(gameID)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = sess.Game.Filename()
	}
	if path == "" {
		return "", ErrNoSavePath
	}

	if err := savefile.SaveFile(path, sess.Game.Clone()); err != nil {
		return "", err
	}
	sess.Game.SetFilename(path)

	log.Printf("Saved game %s to %s", sess.ID, path)
	s.touch(sess.ID)
	return path, nil
}

// Verify checks that a save file loads cleanly without opening it as a
// game. A broken file is reported in the result, not as an error.
func (s *gameServiceImpl) Verify(ctx context.Context, path string) (*VerifyReport, error) {
	report := &VerifyReport{Path: path}

	game, err := savefile.LoadFile(path)
	if err != nil {
		report.Error = err.Error()
		return report, nil
	}

	report.Valid = true
	report.Rows, report.Cols = game.Rows(), game.Cols()
	report.Players = game.BoardCount()
	for _, board := range game.Boards() {
		report.Ships += board.ShipCount()
	}
	return report, nil
}

// ListConfigs returns the available presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig returns one preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameRules, error) {
	return s.configs.LoadConfig(configName)
}

// SavePreset stores a preset under id, filling unset fields from the
// built-in defaults
func (s *gameServiceImpl) SavePreset(ctx context.Context, id string, opts PresetOptions) (*ConfigInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	rules := *engine.DefaultRules()
	rules.Name = id
	rules.Description = opts.Description
	if opts.Name != "" {
		rules.Name = opts.Name
	}
	if opts.Rows != 0 {
		rules.Rows = opts.Rows
	}
	if opts.Cols != 0 {
		rules.Cols = opts.Cols
	}
	if opts.SmallestShip != 0 {
		rules.SmallestShip = opts.SmallestShip
		if opts.LargestShip == 0 {
			rules.LargestShip = max(rules.LargestShip, opts.SmallestShip)
		}
	}
	if opts.LargestShip != 0 {
		rules.LargestShip = opts.LargestShip
	}
	if opts.Players != 0 {
		rules.Players = opts.Players
	}

	if err := s.configs.SaveConfig(id, &rules); err != nil {
		return nil, fmt.Errorf("failed to save preset '%s': %w", id, err)
	}

	log.Printf("Saved preset %s (%dx%d, ships %d-%d, %d players)", id, rules.Rows, rules.Cols, rules.SmallestShip, rules.LargestShip, rules.Players)
	return &ConfigInfo{
		Filename:     id + ".json",
		ConfigID:     id,
		Name:         rules.Name,
		Description:  rules.Description,
		Rows:         rules.Rows,
		Cols:         rules.Cols,
		SmallestShip: rules.SmallestShip,
		LargestShip:  rules.LargestShip,
		Players:      rules.Players,
	}, nil
}

func (s *gameServiceImpl) getSession(gameID string) (*Session, error) {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	return sess, nil
}

// getBoard resolves a player by name or by number
func (s *gameServiceImpl) getBoard(gameID, player string) (*Session, *engine.PlayBoard, error) {
	sess, err := s.getSession(gameID)
	if err != nil {
		return nil, nil, err
	}

	player = strings.TrimSpace(player)
	if board, ok := sess.Game.BoardByName(player); ok {
		return sess, board, nil
	}
	if num, err := strconv.Atoi(player); err == nil {
		if board, ok := sess.Game.Board(num); ok {
			return sess, board, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %q in game %s", ErrPlayerNotFound, player, sess.ID)
}

// touch records access and persists the game
func (s *gameServiceImpl) touch(gameID string) {
	if err := s.sessions.UpdateLastAccessed(gameID); err != nil {
		log.Printf("Warning: failed to update game %s: %v", gameID, err)
	}
}

func describePlacementError(perr *engine.PlacementError) string {
	start := FormatCell(perr.Start)
	switch perr.Reason {
	case engine.ReasonOverlap:
		return fmt.Sprintf("ship %d at %s overlaps ship %d", perr.ShipID, start, perr.Other)
	case engine.ReasonOutOfBounds:
		return fmt.Sprintf("ship %d at %s does not fit on the grid", perr.ShipID, start)
	case engine.ReasonDuplicateID:
		return fmt.Sprintf("ship %d is already placed", perr.ShipID)
	case engine.ReasonInvalidSize:
		return fmt.Sprintf("ship id %d is not a valid length", perr.ShipID)
	default:
		return perr.Error()
	}
}

func gameInfo(sess *Session) *GameInfo {
	game := sess.Game
	smallest, largest := game.ShipSizes()
	info := &GameInfo{
		ID:             sess.ID,
		Preset:         sess.Preset,
		Rows:           game.Rows(),
		Cols:           game.Cols(),
		PlayerCount:    game.PlayerCount(),
		SmallestShip:   smallest,
		LargestShip:    largest,
		Loaded:         game.Loaded(),
		Filename:       game.Filename(),
		Players:        make([]*PlayerInfo, 0, game.BoardCount()),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
	for _, board := range game.Boards() {
		info.Players = append(info.Players, playerInfo(board))
	}
	return info
}

func playerInfo(board *engine.PlayBoard) *PlayerInfo {
	info := &PlayerInfo{
		Name:   board.PlayerName(),
		Number: board.PlayerNum(),
		Ships:  make([]ShipInfo, 0, board.ShipCount()),
	}
	for _, ship := range board.Ships() {
		info.Ships = append(info.Ships, shipInfo(ship))
	}
	return info
}

func shipInfo(ship engine.ShipBoundingBox) ShipInfo {
	return ShipInfo{
		ID:        ship.ID(),
		Start:     FormatCell(ship.Start()),
		End:       FormatCell(ship.End()),
		Direction: ship.Orientation().String(),
		Length:    ship.Length(),
	}
}
