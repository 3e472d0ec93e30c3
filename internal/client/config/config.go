package config

import "time"

// Config holds runtime settings for the draftpad client.
//
// Sources are layered: defaults, then environment (including a .env file),
// then a JSON config file, then command-line flags. Later sources win.
type Config struct {
	// RemoteBaseURL is the base URL of the document sync backend.
	RemoteBaseURL string
	// ShareBaseURL is the public base for generated sharing links.
	ShareBaseURL string
	// DatabasePath is the SQLite file backing the local store.
	DatabasePath string
	// LegacyStorePath points at the old flat JSON export, checked once at
	// startup by the legacy migration runner.
	LegacyStorePath string
	// SyncDebounce is the quiet period before a sync status check fires.
	SyncDebounce time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteBaseURL = "http://127.0.0.1:8080"
	c.ShareBaseURL = "https://draftpad.app"
	c.DatabasePath = "draftpad.db"
	c.LegacyStorePath = "legacy_store.json"
	c.SyncDebounce = time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
