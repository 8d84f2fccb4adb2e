package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/moviescores/internal/logging"
	"github.com/sebastiantruijens/moviescores/internal/store"
	"github.com/sebastiantruijens/moviescores/internal/tracker"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "moviescores",
		Short:         "Search movies, rate them and keep your list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// runInteractive holds the session lock and runs the full-screen tracker
// until the user quits.
func runInteractive(cmd *cobra.Command, ctx *commandContext) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("interactive mode needs a terminal; use `moviescores list` or `moviescores export` instead")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	logger, closeLog, err := ctx.newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	lookup, err := ctx.newLookup(logger)
	if err != nil {
		return err
	}

	lock, err := store.AcquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release lock failed", logging.Error(err))
		}
	}()

	runCtx := cmd.Context()
	st, err := store.Open(runCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	entries := st.Load(runCtx)
	logger.Info("session started",
		logging.String(logging.FieldEventType, "session_started"),
		logging.String("backend", cfg.Storage.Backend),
		logging.Int("entries", len(entries)))

	model := NewModel(ModelParams{
		Session:  tracker.NewSession(entries, st, logger),
		Lookup:   lookup,
		Logger:   logger,
		Debounce: cfg.Debounce(),
		Timeout:  cfg.LookupTimeout(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(runCtx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interactive session: %w", err)
	}
	logger.Info("session ended", logging.String(logging.FieldEventType, "session_ended"))
	return nil
}
