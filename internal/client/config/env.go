package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with DRAFTPAD_* environment variables. A .env
// file in the working directory is loaded first when present; real
// environment variables take precedence over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("DRAFTPAD_REMOTE_URL"); v != "" {
		cfg.RemoteBaseURL = v
	}
	if v := os.Getenv("DRAFTPAD_SHARE_URL"); v != "" {
		cfg.ShareBaseURL = v
	}
	if v := os.Getenv("DRAFTPAD_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("DRAFTPAD_LEGACY_PATH"); v != "" {
		cfg.LegacyStorePath = v
	}
	if v := os.Getenv("DRAFTPAD_SYNC_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SyncDebounce = d
		}
	}
}
