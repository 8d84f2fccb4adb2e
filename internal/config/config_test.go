package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/sebastiantruijens/moviescores/internal/config"
)

func TestLoadDefaultConfigUsesEnvKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "moviescores")
	if cfg.Storage.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Storage.DataDir, wantData)
	}
	if cfg.OMDb.APIKey != "test-key" {
		t.Fatalf("expected OMDb key from env, got %q", cfg.OMDb.APIKey)
	}
	if cfg.Storage.Backend != config.BackendFile {
		t.Fatalf("unexpected backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Slot != "myMovieScores" {
		t.Fatalf("unexpected slot %q", cfg.Storage.Slot)
	}
	if cfg.Debounce() != time.Second {
		t.Fatalf("unexpected debounce %v", cfg.Debounce())
	}
	if cfg.LookupTimeout() != 10*time.Second {
		t.Fatalf("unexpected lookup timeout %v", cfg.LookupTimeout())
	}
	if cfg.Logging.File != filepath.Join(wantData, "moviescores.log") {
		t.Fatalf("unexpected log file %q", cfg.Logging.File)
	}
	if cfg.SlotFilePath() != filepath.Join(wantData, "myMovieScores.json") {
		t.Fatalf("unexpected slot file %q", cfg.SlotFilePath())
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Fatalf("RequireAPIKey returned error: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := config.Default()
	cfg.OMDb.APIKey = "file-key"
	cfg.Storage.Backend = "SQLite"
	cfg.Storage.DataDir = filepath.Join(dir, "data")
	cfg.Search.DebounceMillis = 250
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be loaded, got %q (exists=%v)", path, resolved, exists)
	}
	if loaded.OMDb.APIKey != "file-key" {
		t.Fatalf("unexpected key %q", loaded.OMDb.APIKey)
	}
	if loaded.Storage.Backend != config.BackendSQLite {
		t.Fatalf("backend should be normalized, got %q", loaded.Storage.Backend)
	}
	if loaded.Debounce() != 250*time.Millisecond {
		t.Fatalf("unexpected debounce %v", loaded.Debounce())
	}
	if loaded.DatabasePath() != filepath.Join(dir, "data", "moviescores.db") {
		t.Fatalf("unexpected database path %q", loaded.DatabasePath())
	}
}

func TestRequireAPIKeyMissing(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("HOME", t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	err = cfg.RequireAPIKey()
	if err == nil || !strings.Contains(err.Error(), "OMDB_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestValidateRejectsSlotWithSeparator(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Slot = "../escape"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for slot containing a path separator")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Storage.Slot != "myMovieScores" {
		t.Fatalf("unexpected slot %q", cfg.Storage.Slot)
	}
}
