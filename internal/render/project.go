package render

import (
	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/tracker"
)

// Action is an affordance offered on a rendered entry.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionSave   Action = "save"
	ActionCancel Action = "cancel"
)

// Item is one entry as it should be drawn.
type Item struct {
	Index   int
	Entry   movies.Entry
	Poster  string
	Editing bool
	// Draft fields are set only while Editing.
	DraftReview string
	DraftRating string
	Actions     []Action
}

// Project builds the view of entries. edit may be nil; when it names an entry
// that entry is drawn in edit form and every other entry is drawn normally.
func Project(entries []movies.Entry, edit *tracker.EditSession) []Item {
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		item := Item{
			Index:   i,
			Entry:   entry,
			Poster:  movies.PosterOrPlaceholder(entry.Poster),
			Actions: []Action{ActionEdit, ActionDelete},
		}
		if edit != nil && edit.IMDbID == entry.IMDbID {
			item.Editing = true
			item.DraftReview = edit.Review
			item.DraftRating = edit.Rating
			item.Actions = []Action{ActionSave, ActionCancel}
		}
		items = append(items, item)
	}
	return items
}
