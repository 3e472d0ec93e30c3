package config

import (
	"encoding/json"
	"os"
	"time"

	"draftpad/internal/flagx"
	"draftpad/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the debounce either as a string
// like "1s" or as integer nanoseconds.
type JsonConfig struct {
	RemoteBaseURL   string         `json:"remote_base_url"`
	ShareBaseURL    string         `json:"share_base_url"`
	DatabasePath    string         `json:"database_path"`
	LegacyStorePath string         `json:"legacy_store_path"`
	SyncDebounce    timex.Duration `json:"sync_debounce"`
}

// parseJson overlays Config with values from the file named by the -c or
// -config flag. Absent flag means no JSON stage. Only fields actually set
// in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RemoteBaseURL != "" {
		cfg.RemoteBaseURL = jc.RemoteBaseURL
	}
	if jc.ShareBaseURL != "" {
		cfg.ShareBaseURL = jc.ShareBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LegacyStorePath != "" {
		cfg.LegacyStorePath = jc.LegacyStorePath
	}
	if jc.SyncDebounce.Duration > 0 {
		cfg.SyncDebounce = time.Duration(jc.SyncDebounce.Duration)
	}
}
