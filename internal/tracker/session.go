package tracker

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sebastiantruijens/moviescores/internal/logging"
	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/omdb"
)

// Saver persists the full list after every mutation.
type Saver interface {
	Save(ctx context.Context, entries []movies.Entry) error
}

// Session owns the saved list and every piece of transient interaction state.
// It is not safe for concurrent use.
type Session struct {
	saver  Saver
	logger *slog.Logger

	entries []movies.Entry

	state        State
	query        string
	seq          uint64
	candidates   []movies.Candidate
	highlighted  int
	dropdownOpen bool

	pending *movies.Selection
	review  string
	rating  string

	edit          *EditSession
	deletePending string
	deleteArmed   bool
}

// NewSession starts a session over entries, which the session takes
// ownership of. Entries with a blank or repeated identifier are given a local
// one so each can be edited and deleted on its own.
func NewSession(entries []movies.Entry, saver Saver, logger *slog.Logger) *Session {
	if entries == nil {
		entries = []movies.Entry{}
	}
	s := &Session{
		saver:   saver,
		logger:  logging.NewComponentLogger(logger, "tracker"),
		entries: entries,
		state:   StateIdle,
		rating:  movies.DefaultRating,
	}
	if n := movies.EnsureUniqueIDs(s.entries); n > 0 {
		s.logger.Warn("saved movies had missing or repeated identifiers",
			logging.String(logging.FieldEventType, "ids_repaired"),
			logging.Int("entry_count", n),
			logging.String(logging.FieldErrorHint, "local identifiers assigned"))
	}
	return s
}

// State returns the current search/selection stage.
func (s *Session) State() State { return s.state }

// Query returns the search text as last typed.
func (s *Session) Query() string { return s.query }

// Candidates returns the search hits currently on offer.
func (s *Session) Candidates() []movies.Candidate { return s.candidates }

// DropdownOpen reports whether the candidate list is visible.
func (s *Session) DropdownOpen() bool { return s.dropdownOpen && len(s.candidates) > 0 }

// Highlighted returns the index of the highlighted candidate.
func (s *Session) Highlighted() int { return s.highlighted }

// Pending returns the selection awaiting a review, or nil.
func (s *Session) Pending() *movies.Selection { return s.pending }

// Review returns the review typed for the pending selection.
func (s *Session) Review() string { return s.review }

// Rating returns the rating typed for the pending selection.
func (s *Session) Rating() string { return s.rating }

// Entries returns a copy of the saved list.
func (s *Session) Entries() []movies.Entry {
	out := make([]movies.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of saved entries.
func (s *Session) Len() int { return len(s.entries) }

// EntryAt returns the saved entry at position i.
func (s *Session) EntryAt(i int) (movies.Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return movies.Entry{}, false
	}
	return s.entries[i], true
}

// IndexOf returns the position of the saved entry with the given identifier, or -1.
func (s *Session) IndexOf(id string) int {
	return movies.IndexOf(s.entries, id)
}

// Type records new search text. Blank text clears the search at once and
// returns false; otherwise the caller should schedule BeginSearch after the
// debounce period.
func (s *Session) Type(text string) bool {
	s.query = text
	if strings.TrimSpace(text) == "" {
		s.ClearSearch()
		return false
	}
	return true
}

// BeginSearch starts a search for the current text. It returns ok=false and
// issues nothing when the text is blank.
func (s *Session) BeginSearch() (seq uint64, term string, ok bool) {
	term = strings.TrimSpace(s.query)
	if term == "" {
		s.ClearSearch()
		return 0, "", false
	}
	s.seq++
	s.state = StateSearching
	s.logger.Debug("search issued", logging.Uint64("seq", s.seq), logging.String("term", term))
	return s.seq, term, true
}

// ApplySearch delivers a search response. Responses for anything but the
// latest request are dropped and reported as not applied. The returned notice
// is non-empty when the search failed.
func (s *Session) ApplySearch(seq uint64, candidates []movies.Candidate, err error) (notice string, applied bool) {
	if seq != s.seq || s.state != StateSearching {
		s.logger.Debug("stale search response dropped",
			logging.Uint64("seq", seq),
			logging.Uint64("latest_seq", s.seq))
		return "", false
	}
	s.highlighted = 0
	if err != nil {
		s.logger.Warn("search failed",
			logging.String(logging.FieldEventType, "search_failed"),
			logging.Uint64("seq", seq),
			logging.Error(err))
		s.candidates = nil
		s.dropdownOpen = false
		s.settle()
		return omdb.Notice(err), true
	}
	s.candidates = candidates
	if len(candidates) == 0 {
		s.dropdownOpen = false
		s.settle()
		return "", true
	}
	s.dropdownOpen = true
	s.state = StateCandidatesShown
	return "", true
}

// MoveHighlight moves the candidate highlight by delta, clamped to the list.
func (s *Session) MoveHighlight(delta int) {
	if len(s.candidates) == 0 {
		return
	}
	s.highlighted += delta
	if s.highlighted < 0 {
		s.highlighted = 0
	}
	if s.highlighted >= len(s.candidates) {
		s.highlighted = len(s.candidates) - 1
	}
}

// BeginDetail starts the exact-title lookup for the highlighted candidate.
func (s *Session) BeginDetail() (seq uint64, title string, ok bool) {
	return s.BeginDetailAt(s.highlighted)
}

// BeginDetailAt starts the exact-title lookup for candidate i. The summary is
// never reused; full detail is always fetched.
func (s *Session) BeginDetailAt(i int) (seq uint64, title string, ok bool) {
	if s.state != StateCandidatesShown || i < 0 || i >= len(s.candidates) {
		return 0, "", false
	}
	s.highlighted = i
	s.seq++
	s.state = StateDetailLoading
	title = s.candidates[i].Title
	s.logger.Debug("detail issued", logging.Uint64("seq", s.seq), logging.String("title", title))
	return s.seq, title, true
}

// ApplyDetail delivers a detail response. On failure the candidates are shown
// again and the returned notice explains why.
func (s *Session) ApplyDetail(seq uint64, selection *movies.Selection, err error) (notice string, applied bool) {
	if seq != s.seq || s.state != StateDetailLoading {
		s.logger.Debug("stale detail response dropped",
			logging.Uint64("seq", seq),
			logging.Uint64("latest_seq", s.seq))
		return "", false
	}
	if err != nil || selection == nil || strings.TrimSpace(selection.Title) == "" || strings.TrimSpace(selection.IMDbID) == "" {
		if err != nil {
			s.logger.Warn("detail lookup failed",
				logging.String(logging.FieldEventType, "detail_failed"),
				logging.Error(err))
		}
		s.state = StateCandidatesShown
		s.dropdownOpen = true
		var apiErr *omdb.APIError
		if errors.As(err, &apiErr) {
			return omdb.Notice(err), true
		}
		return noticeDetailFailed, true
	}

	sel := selection.Normalize()
	s.pending = &sel
	s.query = sel.Title
	s.review = ""
	s.rating = movies.DefaultRating
	s.dropdownOpen = false
	s.state = StatePendingSubmit
	s.logger.Info("movie selected",
		logging.String("imdb_id", sel.IMDbID),
		logging.String("title", sel.Title))
	return "", true
}

// CloseDropdown dismisses the candidate list without clearing the search.
func (s *Session) CloseDropdown() {
	s.dropdownOpen = false
	if s.state == StateCandidatesShown {
		s.settle()
	}
}

// ClearSearch empties the search, hides the dropdown and the editor panel,
// and discards the pending selection. In-flight lookups become stale.
func (s *Session) ClearSearch() {
	s.seq++
	s.query = ""
	s.candidates = nil
	s.highlighted = 0
	s.dropdownOpen = false
	s.pending = nil
	s.review = ""
	s.rating = movies.DefaultRating
	s.state = StateIdle
}

// SetReview sets the review for the pending selection.
func (s *Session) SetReview(review string) { s.review = strings.TrimSpace(review) }

// SetRating sets the rating for the pending selection.
func (s *Session) SetRating(rating string) { s.rating = strings.TrimSpace(rating) }

// Submit saves the pending selection with its review and rating. Input
// errors leave the session untouched. A *PersistError means the entry was
// added but could not be written.
func (s *Session) Submit(ctx context.Context) error {
	if s.pending == nil {
		return ErrNoSelection
	}
	rating, err := movies.ValidateReview(s.review, s.rating)
	if err != nil {
		if errors.Is(err, movies.ErrEmptyFields) {
			return ErrSubmitIncomplete
		}
		return err
	}

	entry := s.pending.Entry(s.review, rating)
	entries, err := movies.Add(s.entries, entry)
	if err != nil {
		return err
	}
	s.entries = entries
	s.ClearSearch()
	s.logger.Info("movie added",
		logging.String("imdb_id", entry.IMDbID),
		logging.String("title", entry.Title),
		logging.String("rating", entry.Rating))
	return s.persist(ctx)
}

// Editing returns the active edit, if any.
func (s *Session) Editing() (EditSession, bool) {
	if s.edit == nil {
		return EditSession{}, false
	}
	return *s.edit, true
}

// BeginEdit puts the entry with the given identifier in edit form, replacing
// any other active edit.
func (s *Session) BeginEdit(id string) error {
	i := s.IndexOf(id)
	if i < 0 {
		return movies.ErrUnknownEntry
	}
	s.edit = &EditSession{
		IMDbID: id,
		Review: s.entries[i].Review,
		Rating: s.entries[i].Rating,
	}
	return nil
}

// UpdateDraft records the edit fields as typed so a re-render keeps them.
func (s *Session) UpdateDraft(review, rating string) {
	if s.edit == nil {
		return
	}
	s.edit.Review = review
	s.edit.Rating = rating
}

// SaveEdit replaces the review and rating of the entry in edit form. Every
// other field keeps its saved value.
func (s *Session) SaveEdit(ctx context.Context, review, rating string) error {
	if s.edit == nil {
		return ErrNoEdit
	}
	review = strings.TrimSpace(review)
	rating = strings.TrimSpace(rating)
	rating, err := movies.ValidateReview(review, rating)
	if err != nil {
		if errors.Is(err, movies.ErrEmptyFields) {
			return ErrEditIncomplete
		}
		return err
	}
	id := s.edit.IMDbID
	if err := movies.Rate(s.entries, id, review, rating); err != nil {
		s.edit = nil
		return err
	}
	s.edit = nil
	s.logger.Info("movie updated",
		logging.String("imdb_id", id),
		logging.String("rating", rating))
	return s.persist(ctx)
}

// CancelEdit leaves edit form without changing the entry.
func (s *Session) CancelEdit() {
	s.edit = nil
}

// RequestDelete asks for confirmation before removing the entry with the
// given identifier.
func (s *Session) RequestDelete(id string) error {
	if s.IndexOf(id) < 0 {
		return movies.ErrUnknownEntry
	}
	s.deletePending = id
	s.deleteArmed = true
	return nil
}

// PendingDelete returns the identifier awaiting delete confirmation.
func (s *Session) PendingDelete() (string, bool) {
	return s.deletePending, s.deleteArmed
}

// ConfirmDelete answers the delete prompt. Declining changes nothing.
func (s *Session) ConfirmDelete(ctx context.Context, yes bool) (bool, error) {
	if !s.deleteArmed {
		return false, ErrNoDeletePending
	}
	id := s.deletePending
	s.deletePending = ""
	s.deleteArmed = false
	if !yes {
		return false, nil
	}

	entries, err := movies.Remove(s.entries, id)
	if err != nil {
		return false, err
	}
	s.entries = entries
	if s.edit != nil && s.edit.IMDbID == id {
		s.edit = nil
	}
	s.logger.Info("movie deleted", logging.String("imdb_id", id))
	return true, s.persist(ctx)
}

func (s *Session) persist(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(ctx, s.entries); err != nil {
		s.logger.Error("failed to persist list",
			logging.String(logging.FieldEventType, "persist_failed"),
			logging.Error(err))
		return &PersistError{Err: err}
	}
	return nil
}

// settle returns to PendingSubmit when a selection is waiting, else Idle.
func (s *Session) settle() {
	if s.pending != nil {
		s.state = StatePendingSubmit
		return
	}
	s.state = StateIdle
}
