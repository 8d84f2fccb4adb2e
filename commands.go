package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"github.com/sebastiantruijens/moviescores/internal/config"
	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/omdb"
	"github.com/sebastiantruijens/moviescores/internal/render"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var filter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the saved list",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := ctx.loadEntries(cmd.Context())
			if err != nil {
				return err
			}
			entries = filterEntries(entries, filter)

			if asJSON {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No movies rated yet")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Title, e.Year, e.Director, e.Rating + "/10", e.Review, e.IMDbID})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Year", "Director", "Rating", "Review", "IMDb"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft},
				colourOutput(out),
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show entries whose title or director contains TEXT")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Search OMDb and print the candidates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.requireAPIKey(); err != nil {
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
			term := strings.Join(args, " ")
			candidates, err := lookup.Search(cmd.Context(), term)
			if err != nil {
				return fmt.Errorf("search %q: %s", term, omdb.Notice(err))
			}

			if asJSON {
				return writeJSON(cmd, candidates)
			}
			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No results for %q\n", term)
				return nil
			}
			rows := make([][]string, 0, len(candidates))
			for _, c := range candidates {
				rows = append(rows, []string{c.Title, c.Year, c.Type, c.IMDbID})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Year", "Type", "IMDb"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
				colourOutput(out),
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the candidates as JSON")
	return cmd
}

// Export formats.
const (
	formatHTML = "html"
	formatJSON = "json"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved list as HTML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != formatHTML && format != formatJSON {
				return fmt.Errorf("export format: unsupported value %q (want html or json)", format)
			}
			entries, err := ctx.loadEntries(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := writeExport(&buf, format, entries); err != nil {
				return err
			}

			target := strings.TrimSpace(output)
			if target == "" || target == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			target, err = config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d movies to %s\n", len(entries), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatHTML, "Export format: html or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default stdout)")
	return cmd
}

func writeExport(w io.Writer, format string, entries []movies.Entry) error {
	if format == formatJSON {
		return encodeJSON(w, entries)
	}
	return render.HTML(w, render.Project(entries, nil))
}

// filterEntries keeps entries whose title or director contains query,
// compared case-insensitively.
func filterEntries(entries []movies.Entry, query string) []movies.Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]movies.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(fold.String(e.Title), needle) || strings.Contains(fold.String(e.Director), needle) {
			out = append(out, e)
		}
	}
	return out
}

func colourOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
