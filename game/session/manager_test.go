package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/battleship/game/engine"
)

func createTestGame() *engine.GameData {
	game := engine.NewGameData()
	board := engine.NewPlayBoard("Alice", 1)
	engine.PlaceShip(game, board, 3, engine.Cell{Col: 2, Row: 4}, engine.Horizontal)
	game.AddBoard(board)
	return game
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", createTestGame(), "classic")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Game == nil {
			t.Error("Expected game to be set")
		}
		if session.Preset != "classic" {
			t.Errorf("Expected preset 'classic', got '%s'", session.Preset)
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", createTestGame(), "")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 6 {
			t.Errorf("Expected 6-character ID, got '%s'", session.ID)
		}
	})

	t.Run("duplicate ID is case-insensitive", func(t *testing.T) {
		if _, err := manager.Create("TEST-SESSION", createTestGame(), ""); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		if _, err := manager.Create("../escape", createTestGame(), ""); !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("nil game", func(t *testing.T) {
		if _, err := manager.Create("nil-game", nil, ""); err == nil {
			t.Error("Expected nil game to be rejected")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("MixedCase", createTestGame(), "")

	session, err := manager.Get("mixedcase")
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if session != created {
		t.Error("Expected the same session instance")
	}

	if _, err := manager.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	manager.Create("doomed", createTestGame(), "")

	if err := manager.Delete("doomed"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected session to be gone")
	}
	if err := manager.Delete("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	for i := 0; i < 3; i++ {
		manager.Create(fmt.Sprintf("game-%d", i), createTestGame(), "")
	}

	if len(manager.List()) != 3 || manager.Count() != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(manager.List()))
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, _ := manager.Create("touch", createTestGame(), "")
	before := session.LastAccessedAt

	time.Sleep(5 * time.Millisecond)
	if err := manager.UpdateLastAccessed("touch"); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to move forward")
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	old, _ := manager.Create("old", createTestGame(), "")
	manager.Create("fresh", createTestGame(), "")
	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	if removed := manager.CleanupExpiredSessions(time.Hour); removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Error("Expected fresh session to remain")
	}
}

func TestManager_SaveWithoutPersistence(t *testing.T) {
	manager := NewManager()
	if err := manager.Save("anything"); err != nil {
		t.Errorf("Expected no-op save, got %v", err)
	}
	if err := manager.LoadPersistedSessions(); err != nil {
		t.Errorf("Expected no-op load, got %v", err)
	}
	if err := manager.SaveAllSessions(); err != nil {
		t.Errorf("Expected no-op save all, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("concurrent-%d", i)
			if _, err := manager.Create(id, createTestGame(), ""); err != nil {
				t.Errorf("Failed to create %s: %v", id, err)
				return
			}
			if _, err := manager.Get(id); err != nil {
				t.Errorf("Failed to get %s: %v", id, err)
			}
			manager.UpdateLastAccessed(id)
			manager.List()
		}(i)
	}
	wg.Wait()

	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		session, err := manager.Create("", createTestGame(), "")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if seen[session.ID] {
			t.Fatalf("Duplicate session ID %s", session.ID)
		}
		seen[session.ID] = true
	}
}
