package session

import (
	"os"
	"testing"
)

func TestManagerWithPersistence(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "manager_persistence_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	persistence, err := NewFilePersistence(tempDir)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	manager := NewManagerWithPersistence(persistence)

	t.Run("Create Session Auto-Saves", func(t *testing.T) {
		if _, err := manager.Create("auto1", createTestGame(), ""); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if !persistence.Exists("auto1") {
			t.Error("Expected session to be persisted on create")
		}
	})

	t.Run("Get Falls Back To Storage", func(t *testing.T) {
		fresh := NewManagerWithPersistence(persistence)
		session, err := fresh.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to load persisted session: %v", err)
		}
		if session.Game.BoardCount() != 1 {
			t.Errorf("Expected 1 board, got %d", session.Game.BoardCount())
		}
		if fresh.Count() != 1 {
			t.Errorf("Expected session to be cached, got %d", fresh.Count())
		}
	})

	t.Run("Update Persists Changes", func(t *testing.T) {
		session, _ := manager.Get("auto1")
		board, _ := session.Game.Board(1)
		board.SetPlayerName("Alicia")

		if err := manager.UpdateLastAccessed("auto1"); err != nil {
			t.Fatalf("Failed to update: %v", err)
		}

		reloaded, err := persistence.Load("auto1")
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		if _, ok := reloaded.Game.BoardByName("Alicia"); !ok {
			t.Error("Expected renamed player to be persisted")
		}
	})

	t.Run("Load Persisted Sessions", func(t *testing.T) {
		manager.Create("auto2", createTestGame(), "")

		fresh := NewManagerWithPersistence(persistence)
		if err := fresh.LoadPersistedSessions(); err != nil {
			t.Fatalf("Failed to load persisted sessions: %v", err)
		}
		if fresh.Count() != 2 {
			t.Errorf("Expected 2 sessions, got %d", fresh.Count())
		}
		if err := fresh.SaveAllSessions(); err != nil {
			t.Errorf("Failed to save all sessions: %v", err)
		}
	})

	t.Run("Delete Removes From Storage", func(t *testing.T) {
		if err := manager.Delete("auto2"); err != nil {
			t.Fatalf("Failed to delete: %v", err)
		}
		if persistence.Exists("auto2") {
			t.Error("Expected persisted file to be removed")
		}
	})
}
