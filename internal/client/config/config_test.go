package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.RemoteBaseURL)
	assert.Equal(t, "https://draftpad.app", cfg.ShareBaseURL)
	assert.Equal(t, "draftpad.db", cfg.DatabasePath)
	assert.Equal(t, "legacy_store.json", cfg.LegacyStorePath)
	assert.Equal(t, time.Second, cfg.SyncDebounce)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("DRAFTPAD_REMOTE_URL", "https://api.example.com")
	t.Setenv("DRAFTPAD_DB_PATH", "/tmp/d.db")
	t.Setenv("DRAFTPAD_SYNC_DEBOUNCE", "250ms")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "https://api.example.com", cfg.RemoteBaseURL)
	assert.Equal(t, "/tmp/d.db", cfg.DatabasePath)
	assert.Equal(t, 250*time.Millisecond, cfg.SyncDebounce)
	// untouched fields keep their defaults
	assert.Equal(t, "https://draftpad.app", cfg.ShareBaseURL)
}

func TestParseEnv_BadDebounceIgnored(t *testing.T) {
	t.Setenv("DRAFTPAD_SYNC_DEBOUNCE", "soon")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, time.Second, cfg.SyncDebounce)
}

func TestParseJson_Overrides(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"remote_base_url": "https://json.example.com",
		"sync_debounce": "2s"
	}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"app", "-c", file}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "https://json.example.com", cfg.RemoteBaseURL)
	assert.Equal(t, 2*time.Second, cfg.SyncDebounce)
	assert.Equal(t, "draftpad.db", cfg.DatabasePath)
}

func TestParseFlags_Overrides(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"app", "-r", "https://flag.example.com", "-d", "flag.db", "-unknown", "x"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, "https://flag.example.com", cfg.RemoteBaseURL)
	assert.Equal(t, "flag.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagBeatsJson(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"database_path": "json.db"}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"app", "-c", file, "-d", "flag.db"}

	cfg := LoadConfig()
	assert.Equal(t, "flag.db", cfg.DatabasePath)
}
