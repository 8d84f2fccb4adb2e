package omdb_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sebastiantruijens/moviescores/internal/logging"
	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/omdb"
)

func newServer(t *testing.T, handler http.HandlerFunc) *omdb.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := omdb.New("key", server.URL+"/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := omdb.New(" ", "https://example.com"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestSearchSuccess(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "key" {
			t.Errorf("expected apikey query parameter, got %q", r.URL.RawQuery)
		}
		if q.Get("s") != "dune" {
			t.Errorf("expected s=dune, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Search":[{"Title":"Dune","Year":"2021","imdbID":"tt1160419","Type":"movie","Poster":"https://example.com/d.jpg"},{"Title":"Dune","Year":"1984","imdbID":"tt0087182","Type":"movie","Poster":"N/A"}],"totalResults":"2","Response":"True"}`))
	})

	got, err := client.Search(context.Background(), "  dune ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %#v", got)
	}
	want := movies.Candidate{Poster: "https://example.com/d.jpg", Title: "Dune", Year: "2021", IMDbID: "tt1160419", Type: "movie"}
	if got[0] != want {
		t.Fatalf("unexpected first candidate: %#v", got[0])
	}
}

func TestSearchNotFoundIsAPIError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})

	_, err := client.Search(context.Background(), "zzzz")
	var apiErr *omdb.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if omdb.Notice(err) != "Movie not found!" {
		t.Fatalf("unexpected notice %q", omdb.Notice(err))
	}
}

func TestAPIErrorWithoutMessageUsesDefaultNotice(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False"}`))
	})

	_, err := client.FetchDetail(context.Background(), "Nothing")
	if got := omdb.Notice(err); got != "Movie not found. Please try another search." {
		t.Fatalf("unexpected notice %q", got)
	}
}

func TestSearchHTTPError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
	})

	_, err := client.Search(context.Background(), "dune")
	var statusErr *omdb.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected StatusError 401, got %v", err)
	}
	if omdb.Notice(err) != "An error occurred while fetching movie data. Please try again." {
		t.Fatalf("unexpected notice %q", omdb.Notice(err))
	}
}

func TestSearchMalformedBody(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	if _, err := client.Search(context.Background(), "dune"); !errors.Is(err, omdb.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestSearchRejectsDetailShape(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Title":"Dune","Response":"True"}`))
	})

	if _, err := client.Search(context.Background(), "dune"); !errors.Is(err, omdb.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestEmptyQueryMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	if _, err := client.Search(context.Background(), "   "); !errors.Is(err, omdb.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if _, err := client.FetchDetail(context.Background(), ""); !errors.Is(err, omdb.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no requests, got %d", calls.Load())
	}
}

func TestFetchDetailNormalizes(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("t") != "The Terminator" {
			t.Errorf("expected t=The Terminator, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"Title":"The Terminator","Year":"1984","Director":"James Cameron","Poster":"N/A","imdbID":"tt0088247","Type":"movie","Response":"True"}`))
	})

	got, err := client.FetchDetail(context.Background(), "The Terminator")
	if err != nil {
		t.Fatalf("FetchDetail returned error: %v", err)
	}
	want := movies.Selection{
		Poster:   movies.PosterPlaceholder,
		Title:    "The Terminator",
		Year:     "1984",
		Director: "James Cameron",
		IMDbID:   "tt0088247",
	}
	if *got != want {
		t.Fatalf("unexpected selection: %#v", got)
	}
}

func TestFetchDetailMissingTitle(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"True","Year":"2021"}`))
	})

	if _, err := client.FetchDetail(context.Background(), "Dune"); !errors.Is(err, omdb.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestFetchDetailMissingIMDbID(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"True","Title":"Dune","Year":"2021","Director":"Denis Villeneuve"}`))
	})

	if _, err := client.FetchDetail(context.Background(), "Dune"); !errors.Is(err, omdb.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Search":[],"Response":"True"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Search(ctx, "dune"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestNoticeNil(t *testing.T) {
	if omdb.Notice(nil) != "" {
		t.Fatal("expected empty notice for nil error")
	}
}

func TestWithLoggerRecordsLatency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Search":[],"Response":"True"}`))
	}))
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	client, err := omdb.New("key", server.URL+"/", omdb.WithLogger(logger))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Search(context.Background(), "dune"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"omdb request", "latency=", "transport_ok=true", "component=omdb"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to contain %q, got %q", want, out)
		}
	}
}
