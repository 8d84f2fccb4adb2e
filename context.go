package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/moviescores/internal/config"
	"github.com/sebastiantruijens/moviescores/internal/logging"
	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/omdb"
	"github.com/sebastiantruijens/moviescores/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger opens the configured log sink and tags every record with a fresh
// session id.
func (c *commandContext) newLogger() (*slog.Logger, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldSessionID, uuid.NewString()))
	return logger, func() { _ = closer.Close() }, nil
}

// withStore opens the configured store for the duration of fn.
func (c *commandContext) withStore(ctx context.Context, logger *slog.Logger, fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

// loadEntries reads the saved list without holding the session lock.
func (c *commandContext) loadEntries(ctx context.Context) ([]movies.Entry, error) {
	var entries []movies.Entry
	err := c.withStore(ctx, logging.NewNop(), func(st *store.Store) error {
		entries = st.Load(ctx)
		return nil
	})
	return entries, err
}

func (c *commandContext) newLookup(logger *slog.Logger) (*omdb.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	return omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL,
		omdb.WithTimeout(cfg.LookupTimeout()),
		omdb.WithLogger(logger))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func (c *commandContext) requireAPIKey() error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	return cfg.RequireAPIKey()
}
