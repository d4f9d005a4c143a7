package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/battleship/game/savefile"
	"github.com/wricardo/battleship/game/service"
)

const saveExt = ".txt"

// FilePersistence stores each session as a save file named <id>.txt
type FilePersistence struct {
	savesDir string
}

// NewFilePersistence creates the saves directory if needed
func NewFilePersistence(savesDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create saves directory: %w", err)
	}
	return &FilePersistence{savesDir: savesDir}, nil
}

// Save writes the session's game. The live game keeps its ships. Games
// with no players yet cannot be expressed in the save format and are
// skipped until the first player joins.
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if session.Game.BoardCount() == 0 {
		return nil
	}
	if err := savefile.SaveFile(fp.getFilePath(session.ID), session.Game.Clone()); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads a session back. Creation and access times come from the file's
// modification time since the save format does not carry them.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	path := fp.getFilePath(id)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat session file: %w", err)
	}

	game, err := savefile.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load session file: %w", err)
	}
	// The store file is not a user save location
	game.SetFilename("")

	return &service.Session{
		ID:             id,
		Game:           game,
		CreatedAt:      info.ModTime(),
		LastAccessedAt: info.ModTime(),
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}
	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns all persisted session IDs in sorted order
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.savesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read saves directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, saveExt) && !strings.HasPrefix(name, ".") {
			ids = append(ids, strings.TrimSuffix(name, saveExt))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.savesDir, strings.ToLower(id)+saveExt)
}
