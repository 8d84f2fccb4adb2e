package tracker

import (
	"errors"
	"fmt"

	"github.com/sebastiantruijens/moviescores/internal/movies"
)

const (
	noticeNoSelection      = "Please select a movie from the search results."
	noticeSubmitIncomplete = "Please enter a review and rating before submitting."
	noticeEditIncomplete   = "Please enter a review and rating before saving."
	noticeDuplicate        = "This movie is already on your list"
	noticeDetailFailed     = "Movie details could not be loaded."
	noticeRatingRange      = "Please enter a rating from 1 to 10."

	// DeletePrompt is asked before a saved movie is removed.
	DeletePrompt = "Are you sure you want to delete this movie?"
)

var (
	// ErrNoSelection rejects a submit before a candidate has been chosen.
	ErrNoSelection = errors.New("no movie selected")
	// ErrSubmitIncomplete rejects a submit with an empty review or rating.
	ErrSubmitIncomplete = fmt.Errorf("%w before submitting", movies.ErrEmptyFields)
	// ErrEditIncomplete rejects an edit save with an empty review or rating.
	ErrEditIncomplete = fmt.Errorf("%w before saving", movies.ErrEmptyFields)
	// ErrNoEdit reports a save or cancel with no entry in edit form.
	ErrNoEdit = errors.New("no movie is being edited")
	// ErrNoDeletePending reports a confirmation with nothing to confirm.
	ErrNoDeletePending = errors.New("no delete awaiting confirmation")
)

// PersistError reports a mutation that was applied in memory but could not be
// written to the store.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string { return "save list: " + e.Err.Error() }

func (e *PersistError) Unwrap() error { return e.Err }

// Notice returns the message shown to the user for an error returned by a
// Session operation.
func Notice(err error) string {
	var persistErr *PersistError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &persistErr):
		return "Your list could not be saved: " + persistErr.Err.Error()
	case errors.Is(err, ErrNoSelection):
		return noticeNoSelection
	case errors.Is(err, ErrSubmitIncomplete):
		return noticeSubmitIncomplete
	case errors.Is(err, ErrEditIncomplete):
		return noticeEditIncomplete
	case errors.Is(err, movies.ErrEmptyFields):
		return noticeSubmitIncomplete
	case errors.Is(err, movies.ErrRatingRange):
		return noticeRatingRange
	case errors.Is(err, movies.ErrDuplicate):
		return noticeDuplicate
	default:
		return err.Error()
	}
}
