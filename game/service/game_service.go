package service

import (
	"context"
	"time"

	"github.com/wricardo/battleship/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Game management
	CreateGame(ctx context.Context, opts CreateOptions) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// Players and fleets
	AddPlayer(ctx context.Context, gameID, name string) (*PlayerInfo, error)
	PlaceShip(ctx context.Context, gameID, player, placement string) (*PlacementResult, error)
	RandomLayout(ctx context.Context, gameID, player string) (*LayoutReport, error)
	Shoot(ctx context.Context, gameID, player, cell string) (*ShotResult, error)
	GetBoard(ctx context.Context, gameID, player string) (*BoardView, error)

	// Save files
	LoadGame(ctx context.Context, path string) (*GameInfo, error)
	SaveGame(ctx context.Context, gameID, path string) (string, error)
	Verify(ctx context.Context, path string) (*VerifyReport, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameRules, error)
	SavePreset(ctx context.Context, id string, opts PresetOptions) (*ConfigInfo, error)
}

// SessionManager defines game session storage operations
type SessionManager interface {
	Create(id string, game *engine.GameData, preset string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles rule preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameRules, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameRules
	SaveConfig(name string, rules *engine.GameRules) error
}

// Session is one open game
type Session struct {
	ID             string
	Game           *engine.GameData
	Preset         string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
