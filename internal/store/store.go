package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/sebastiantruijens/moviescores/internal/config"
	"github.com/sebastiantruijens/moviescores/internal/logging"
	"github.com/sebastiantruijens/moviescores/internal/movies"
)

// Store reads and writes the saved-movie list through a Slot.
type Store struct {
	slot   Slot
	logger *slog.Logger
}

// New wraps slot. A nil logger discards log output.
func New(slot Slot, logger *slog.Logger) *Store {
	return &Store{
		slot:   slot,
		logger: logging.NewComponentLogger(logger, "store"),
	}
}

// Open builds the store selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		slot, err := OpenSQLiteSlot(ctx, cfg.DatabasePath(), cfg.Storage.Slot)
		if err != nil {
			return nil, err
		}
		return New(slot, logger), nil
	case config.BackendFile, "":
		return New(NewFileSlot(afero.NewOsFs(), cfg.Storage.DataDir, cfg.Storage.Slot), logger), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// Load returns the saved list. A missing, unreadable or malformed slot is an
// empty list; the cause is logged and never returned.
func (s *Store) Load(ctx context.Context) []movies.Entry {
	data, ok, err := s.slot.Read(ctx)
	if err != nil {
		s.logger.Warn("failed to read saved movies",
			logging.String(logging.FieldEventType, "store_read_failed"),
			logging.String("slot", s.slot.Name()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "starting with an empty list"))
		return []movies.Entry{}
	}
	if !ok || len(data) == 0 {
		return []movies.Entry{}
	}

	var entries []movies.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("saved movies are not valid JSON",
			logging.String(logging.FieldEventType, "store_decode_failed"),
			logging.String("slot", s.slot.Name()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "starting with an empty list"))
		return []movies.Entry{}
	}
	if entries == nil {
		entries = []movies.Entry{}
	}

	s.logger.Debug("loaded saved movies",
		logging.String("slot", s.slot.Name()),
		logging.Int("entry_count", len(entries)))
	return entries
}

// Save overwrites the slot with the full list.
func (s *Store) Save(ctx context.Context, entries []movies.Entry) error {
	if entries == nil {
		entries = []movies.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode saved movies: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("persist saved movies: %w", err)
	}
	s.logger.Debug("saved movies",
		logging.String("slot", s.slot.Name()),
		logging.Int("entry_count", len(entries)))
	return nil
}

// Close releases the slot.
func (s *Store) Close() error {
	return s.slot.Close()
}
