package main

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/omdb"
)

// searchCmd runs a search in the background and always reports back with a
// searchResultsMsg tagged with seq.
func searchCmd(lookup omdb.Lookup, timeout time.Duration, seq uint64, term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := lookupContext(timeout)
		defer cancel()
		results, err := lookup.Search(ctx, term)
		return searchResultsMsg{seq: seq, results: results, err: err}
	}
}

// detailCmd fetches full detail for an exact title and reports back with a
// movieDetailsMsg tagged with seq.
func detailCmd(lookup omdb.Lookup, timeout time.Duration, seq uint64, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := lookupContext(timeout)
		defer cancel()
		selection, err := lookup.FetchDetail(ctx, title)
		return movieDetailsMsg{seq: seq, selection: selection, err: err}
	}
}

func lookupContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// openIMDbCmd opens the public page of a movie in the default browser.
func openIMDbCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return openBrowserMsg{err: openBrowser(movies.IMDbURL(id))}
	}
}

// openBrowser opens a URL in the default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default: // "linux", "freebsd", etc.
		cmd = "xdg-open"
	}
	args = append(args, url)

	return exec.Command(cmd, args...).Start()
}
