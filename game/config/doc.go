// Package config provides rule presets and process settings for battleship.
//
// Presets are JSON files in a config directory, one per file:
//
//	{
//	  "name": "Classic",
//	  "description": "10x10 grid, ships of length 2 to 5",
//	  "rows": 10,
//	  "cols": 10,
//	  "smallest_ship": 2,
//	  "largest_ship": 5,
//	  "players": 2
//	}
//
// The file name without its extension is the preset id used by the CLI and
// the MCP tools. Manager validates presets with the engine's own validators
// and caches them after the first load. When the directory has no classic
// preset, the first valid file becomes the default, and when it has none at
// all the built-in engine defaults are used.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadConfig("small")
//	presets, err := manager.ListConfigs()
//
// Settings come from the environment (and a .env file loaded by main):
//
//	BATTLESHIP_CONFIG_DIR       preset directory (configs)
//	BATTLESHIP_SAVES_DIR        save directory (saves)
//	BATTLESHIP_LAYOUT_STRATEGY  exhaustive or retry (exhaustive)
//	BATTLESHIP_MAX_RETRIES      retry budget per ship (100)
//	BATTLESHIP_SEED             fixed layout seed, 0 for the clock (0)
//	BATTLESHIP_DEBUG            file:line log prefixes (false)
package config
