package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebastiantruijens/moviescores/internal/logging"
)

func TestNewJSONWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	logging.NewComponentLogger(logger, "store").Info("saved", logging.Int("entry_count", 2))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if record[logging.FieldComponent] != "store" {
		t.Fatalf("missing component attribute: %v", record)
	}
	if record["entry_count"] != float64(2) {
		t.Fatalf("missing entry_count attribute: %v", record)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, _, err := logging.New(logging.Options{Level: "loud", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestNewWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "moviescores.log")
	logger, closer, err := logging.New(logging.Options{File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logging.NewNop().Error("ignored")
	logging.NewComponentLogger(nil, "x").Info("ignored")
}
