package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/moviescores/internal/config"
	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/store"
	"github.com/sebastiantruijens/moviescores/internal/tracker"
)

func sampleEntries() []movies.Entry {
	return []movies.Entry{
		{Poster: "https://example.com/dune.jpg", Title: "Dune", Year: "2021", Director: "Denis Villeneuve", IMDbID: "tt1160419", Review: "Great", Rating: "9"},
		{Poster: movies.PosterPlaceholder, Title: "The Terminator", Year: "1984", Director: "James Cameron", IMDbID: "tt0088247", Review: "Classic \"robot\" <film>", Rating: "8"},
	}
}

func TestFileSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	s := store.New(store.NewFileSlot(fsys, "/data", "myMovieScores"), nil)

	assert.Empty(t, s.Load(ctx))

	want := sampleEntries()
	require.NoError(t, s.Save(ctx, want))
	assert.Equal(t, want, s.Load(ctx))

	exists, err := afero.Exists(fsys, "/data/myMovieScores.json")
	require.NoError(t, err)
	assert.True(t, exists)
	tmp, err := afero.Exists(fsys, "/data/myMovieScores.json.tmp")
	require.NoError(t, err)
	assert.False(t, tmp)
}

func TestSaveEmptyListRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewFileSlot(afero.NewMemMapFs(), "/data", "slot"), nil)

	require.NoError(t, s.Save(ctx, sampleEntries()))
	require.NoError(t, s.Save(ctx, nil))
	got := s.Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadMalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/myMovieScores.json", []byte("{not json"), 0o644))

	s := store.New(store.NewFileSlot(fsys, "/data", "myMovieScores"), nil)
	got := s.Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadNullIsEmpty(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/myMovieScores.json", []byte("null"), 0o644))

	got := store.New(store.NewFileSlot(fsys, "/data", "myMovieScores"), nil).Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadAcceptsBrowserExport(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	raw := `[{"poster":"N/A","title":"Dune","year":"2021","director":"Denis Villeneuve","imdbID":"tt1160419","review":"Great","rating":"9"}]`
	require.NoError(t, afero.WriteFile(fsys, "/data/myMovieScores.json", []byte(raw), 0o644))

	got := store.New(store.NewFileSlot(fsys, "/data", "myMovieScores"), nil).Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "tt1160419", got[0].IMDbID)
	assert.Equal(t, "N/A", got[0].Poster)
}

func TestLoadBrowserExportWithMissingAndRepeatedIDs(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	// The browser page drops an undefined imdbID when it serializes the list.
	raw := `[
		{"poster":"N/A","title":"First","year":"2001","director":"A","imdbID":"tt0000001","review":"a","rating":"5"},
		{"poster":"N/A","title":"Second","year":"2002","director":"B","imdbID":"tt0000001","review":"b","rating":"6"},
		{"poster":"N/A","title":"Third","year":"2003","director":"C","review":"c","rating":"7"}
	]`
	require.NoError(t, afero.WriteFile(fsys, "/data/myMovieScores.json", []byte(raw), 0o644))
	st := store.New(store.NewFileSlot(fsys, "/data", "myMovieScores"), nil)

	loaded := st.Load(ctx)
	require.Len(t, loaded, 3)
	assert.Empty(t, loaded[2].IMDbID)

	session := tracker.NewSession(loaded, st, nil)
	second, ok := session.EntryAt(1)
	require.True(t, ok)
	require.NoError(t, session.BeginEdit(second.IMDbID))
	require.NoError(t, session.SaveEdit(ctx, "edited", "9"))

	third, ok := session.EntryAt(2)
	require.True(t, ok)
	require.NoError(t, session.RequestDelete(third.IMDbID))
	deleted, err := session.ConfirmDelete(ctx, true)
	require.NoError(t, err)
	require.True(t, deleted)

	reloaded := st.Load(ctx)
	require.Len(t, reloaded, 2)
	assert.Equal(t, "First", reloaded[0].Title)
	assert.Equal(t, "a", reloaded[0].Review)
	assert.Equal(t, "tt0000001", reloaded[0].IMDbID)
	assert.Equal(t, "Second", reloaded[1].Title)
	assert.Equal(t, "edited", reloaded[1].Review)
	assert.NotEqual(t, reloaded[0].IMDbID, reloaded[1].IMDbID)
}

type failingSlot struct{ err error }

func (failingSlot) Name() string { return "broken" }
func (f failingSlot) Read(context.Context) ([]byte, bool, error) {
	return nil, false, f.err
}
func (f failingSlot) Write(context.Context, []byte) error { return f.err }
func (failingSlot) Close() error { return nil }

func TestReadFailureIsEmptyAndWriteFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	s := store.New(failingSlot{err: boom}, nil)

	assert.Empty(t, s.Load(ctx))
	assert.ErrorIs(t, s.Save(ctx, sampleEntries()), boom)
}

func TestSQLiteSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "moviescores.db")

	slot, err := store.OpenSQLiteSlot(ctx, dbPath, "myMovieScores")
	require.NoError(t, err)
	s := store.New(slot, nil)
	assert.Empty(t, s.Load(ctx))

	want := sampleEntries()
	require.NoError(t, s.Save(ctx, want))
	require.NoError(t, s.Save(ctx, want[:1]))
	require.NoError(t, s.Close())

	reopened, err := store.OpenSQLiteSlot(ctx, dbPath, "myMovieScores")
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	assert.Equal(t, want[:1], store.New(reopened, nil).Load(ctx))

	other, err := store.OpenSQLiteSlot(ctx, dbPath, "otherSlot")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })
	assert.Empty(t, store.New(other, nil).Load(ctx))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.DataDir = t.TempDir()

	cfg.Storage.Backend = config.BackendSQLite
	s, err := store.Open(ctx, &cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleEntries()))
	require.NoError(t, s.Close())
	assert.FileExists(t, cfg.DatabasePath())

	cfg.Storage.Backend = config.BackendFile
	s, err = store.Open(ctx, &cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleEntries()))
	assert.FileExists(t, cfg.SlotFilePath())

	cfg.Storage.Backend = "redis"
	_, err = store.Open(ctx, &cfg, nil)
	assert.Error(t, err)
}

func TestLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myMovieScores.lock")

	first, err := store.AcquireLock(path)
	require.NoError(t, err)

	_, err = store.AcquireLock(path)
	assert.ErrorIs(t, err, store.ErrLocked)

	require.NoError(t, first.Release())
	second, err := store.AcquireLock(path)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}
