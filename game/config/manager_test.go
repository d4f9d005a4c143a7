package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/battleship/game/engine"
)

func createTestConfigDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	return dir
}

func createValidRules() *engine.GameRules {
	return &engine.GameRules{
		Name:         "Test Rules",
		Description:  "Test preset",
		Rows:         8,
		Cols:         8,
		SmallestShip: 2,
		LargestShip:  4,
		Players:      2,
	}
}

func writeConfigFile(t *testing.T, dir, name string, rules *engine.GameRules) {
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal rules: %v", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("classic preset becomes default", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		classic := createValidRules()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)
		writeConfigFile(t, dir, "another", createValidRules())

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Classic" {
			t.Errorf("Expected default 'Classic', got '%s'", manager.GetDefault().Name)
		}
	})

	t.Run("first preset without classic", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		alpha := createValidRules()
		alpha.Name = "Alpha"
		writeConfigFile(t, dir, "alpha", alpha)
		zulu := createValidRules()
		zulu.Name = "Zulu"
		writeConfigFile(t, dir, "zulu", zulu)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Alpha" {
			t.Errorf("Expected default 'Alpha', got '%s'", manager.GetDefault().Name)
		}
	})

	t.Run("missing directory uses built-in defaults", func(t *testing.T) {
		manager, err := NewManager("/non/existent/path")
		if err != nil {
			t.Fatalf("Expected missing directory to be treated as empty, got %v", err)
		}

		rules := manager.GetDefault()
		if rules == nil {
			t.Fatal("Expected default rules")
		}
		if rules.Rows != engine.DefaultRows || rules.LargestShip != engine.DefaultLargestShip {
			t.Errorf("Expected engine defaults, got %+v", rules)
		}

		configs, err := manager.ListConfigs()
		if err != nil || len(configs) != 0 {
			t.Errorf("Expected no presets, got %d (%v)", len(configs), err)
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		file := filepath.Join(dir, "file")
		os.WriteFile(file, []byte("x"), 0644)

		if _, err := NewManager(file); err == nil {
			t.Error("Expected error when config path is a file")
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	small := createValidRules()
	small.Name = "Small"
	small.Rows, small.Cols = 6, 6
	writeConfigFile(t, dir, "small", small)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing preset", func(t *testing.T) {
		rules, err := manager.LoadConfig("small")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if rules.Name != "Small" || rules.Rows != 6 {
			t.Errorf("Expected Small 6x6, got %s %dx%d", rules.Name, rules.Rows, rules.Cols)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		rules, err := manager.LoadConfig("small.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if rules.Name != "Small" {
			t.Errorf("Expected config name 'Small', got '%s'", rules.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		first, _ := manager.LoadConfig("small")
		second, err := manager.LoadConfig("small")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}
		if first != second {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent preset", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("reject path traversal", func(t *testing.T) {
		_, err := manager.LoadConfig("../small")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("name defaults to file id", func(t *testing.T) {
		os.WriteFile(filepath.Join(dir, "unnamed.json"),
			[]byte(`{"rows": 5, "cols": 5, "smallest_ship": 2, "largest_ship": 3}`), 0644)

		rules, err := manager.LoadConfig("unnamed")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if rules.Name != "unnamed" {
			t.Errorf("Expected name 'unnamed', got '%s'", rules.Name)
		}
	})

	t.Run("load invalid preset", func(t *testing.T) {
		os.WriteFile(filepath.Join(dir, "invalid.json"),
			[]byte(`{"name": "Zero", "rows": 0, "cols": 5, "smallest_ship": 2, "largest_ship": 3}`), 0644)

		_, err := manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		os.WriteFile(filepath.Join(dir, "malformed.json"), []byte(`{"name": "Malformed", invalid json}`), 0644)

		_, err := manager.LoadConfig("malformed")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	for _, id := range []string{"large", "classic", "small"} {
		rules := createValidRules()
		rules.Name = id
		writeConfigFile(t, dir, id, rules)
	}
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 3 {
		t.Fatalf("Expected 3 presets, got %d", len(configs))
	}

	for i, id := range []string{"classic", "large", "small"} {
		if configs[i].ConfigID != id {
			t.Errorf("Expected preset %d to be %s, got %s", i, id, configs[i].ConfigID)
		}
		if configs[i].Filename != id+".json" {
			t.Errorf("Expected filename %s.json, got %s", id, configs[i].Filename)
		}
		if configs[i].Rows != 8 || configs[i].LargestShip != 4 {
			t.Errorf("Expected preset details to be copied, got %+v", configs[i])
		}
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	rules := createValidRules()
	rules.Name = "Saved"
	if err := manager.SaveConfig("saved", rules); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json to exist: %v", err)
	}

	loaded, err := manager.LoadConfig("saved")
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Name != "Saved" {
		t.Errorf("Expected 'Saved', got '%s'", loaded.Name)
	}

	bad := createValidRules()
	bad.SmallestShip = 1
	if err := manager.SaveConfig("bad", bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", createValidRules()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected bad name to be rejected, got %v", err)
	}
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	classic := createValidRules()
	classic.Name = "Classic"
	writeConfigFile(t, dir, "classic", classic)
	large := createValidRules()
	large.Name = "Large"
	writeConfigFile(t, dir, "large", large)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("large"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Large" {
		t.Errorf("Expected default 'Large', got '%s'", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	large.Rows = 12
	writeConfigFile(t, dir, "large", large)
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh: %v", err)
	}
	if got := manager.GetDefault(); got.Name != "Large" || got.Rows != 12 {
		t.Errorf("Expected refreshed Large with 12 rows, got %+v", got)
	}

	os.Remove(filepath.Join(dir, "large.json"))
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh: %v", err)
	}
	if got := manager.GetDefault(); got.Name != "Classic" {
		t.Errorf("Expected fallback to Classic once large is gone, got %+v", got)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "classic", createValidRules())
	writeConfigFile(t, dir, "small", createValidRules())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("small"); err != nil {
				t.Errorf("Concurrent load failed: %v", err)
			}
			if _, err := manager.ListConfigs(); err != nil {
				t.Errorf("Concurrent list failed: %v", err)
			}
			_ = manager.GetDefault()
		}()
	}
	wg.Wait()
}

func TestConfigPresetsShippedWithRepo(t *testing.T) {
	manager, err := NewManager(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	for _, id := range []string{"classic", "small", "large"} {
		rules, err := manager.LoadConfig(id)
		if err != nil {
			t.Errorf("Preset %s failed to load: %v", id, err)
			continue
		}
		if _, err := rules.NewGame(); err != nil {
			t.Errorf("Preset %s does not build a game: %v", id, err)
		}
	}
}
