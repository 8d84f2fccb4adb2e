// Package movies defines the saved-movie record, the search candidate and the
// pending selection, plus the collection operations that keep external
// identifiers unique.
package movies

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// PosterPlaceholder is stored in place of a missing poster URL.
	PosterPlaceholder = "/img/no_movie_poster.jpg"
	// DefaultRating is the value the rating field starts with.
	DefaultRating = "5"
	MinRating     = 1
	MaxRating     = 10

	notAvailable  = "N/A"
	unknown       = "Unknown"
	localIDPrefix = "local-"
)

var (
	// ErrDuplicate reports an entry whose external identifier is already saved.
	ErrDuplicate = errors.New("movie already on list")
	// ErrEmptyFields reports a missing review or rating.
	ErrEmptyFields = errors.New("review and rating required")
	// ErrRatingRange reports a rating outside 1..10.
	ErrRatingRange = fmt.Errorf("rating must be a whole number from %d to %d", MinRating, MaxRating)
	// ErrUnknownEntry reports an identifier or index with no saved entry.
	ErrUnknownEntry = errors.New("movie is not on your list")
)

// Entry is one saved movie with the user's review and rating. The JSON keys
// match the browser storage slot so existing exports load unchanged.
type Entry struct {
	Poster   string `json:"poster"`
	Title    string `json:"title"`
	Year     string `json:"year"`
	Director string `json:"director"`
	IMDbID   string `json:"imdbID"`
	Review   string `json:"review"`
	Rating   string `json:"rating"`
}

// Candidate is a search hit shown before full detail is fetched.
type Candidate struct {
	Poster string `json:"poster"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"type"`
}

// Selection holds the full detail of a chosen candidate before it is saved.
type Selection struct {
	Poster   string
	Title    string
	Year     string
	Director string
	IMDbID   string
}

// Normalize fills the placeholder values used when the lookup service omits a field.
func (s Selection) Normalize() Selection {
	s.Poster = PosterOrPlaceholder(s.Poster)
	if strings.TrimSpace(s.Title) == "" {
		s.Title = unknown
	}
	if strings.TrimSpace(s.Year) == "" {
		s.Year = notAvailable
	}
	if strings.TrimSpace(s.Director) == "" {
		s.Director = unknown
	}
	return s
}

// Entry combines the selection with a review and rating.
func (s Selection) Entry(review, rating string) Entry {
	return Entry{
		Poster:   s.Poster,
		Title:    s.Title,
		Year:     s.Year,
		Director: s.Director,
		IMDbID:   s.IMDbID,
		Review:   review,
		Rating:   rating,
	}
}

// PosterOrPlaceholder maps an empty or "N/A" poster to PosterPlaceholder.
func PosterOrPlaceholder(poster string) string {
	poster = strings.TrimSpace(poster)
	if poster == "" || poster == notAvailable {
		return PosterPlaceholder
	}
	return poster
}

// HasPoster reports whether poster is a real URL rather than the placeholder.
func HasPoster(poster string) bool {
	return PosterOrPlaceholder(poster) != PosterPlaceholder
}

// ValidateReview checks the review and rating a user typed. Both are trimmed
// by the caller. The returned rating is canonical, so "05" and "+5" become "5".
func ValidateReview(review, rating string) (string, error) {
	if review == "" || rating == "" {
		return "", ErrEmptyFields
	}
	n, err := strconv.Atoi(rating)
	if err != nil || n < MinRating || n > MaxRating {
		return "", ErrRatingRange
	}
	return strconv.Itoa(n), nil
}

// IMDbURL returns the public page for an external identifier. Local
// identifiers have no page.
func IMDbURL(id string) string {
	if id == "" || IsLocalID(id) {
		return ""
	}
	return "https://www.imdb.com/title/" + id + "/"
}

// IsLocalID reports whether id was assigned by EnsureUniqueIDs rather than
// by the lookup service.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, localIDPrefix)
}

// EnsureUniqueIDs gives every entry whose identifier is blank or repeats an
// earlier entry's a fresh local identifier, so each entry can be addressed on
// its own. It returns the number of entries changed.
func EnsureUniqueIDs(entries []Entry) int {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if id := strings.TrimSpace(e.IMDbID); id != "" {
			seen[id] = false
		}
	}
	changed := 0
	next := 1
	for i := range entries {
		id := strings.TrimSpace(entries[i].IMDbID)
		if id != "" && !seen[id] {
			seen[id] = true
			continue
		}
		for {
			candidate := localIDPrefix + strconv.Itoa(next)
			next++
			if _, taken := seen[candidate]; !taken {
				entries[i].IMDbID = candidate
				seen[candidate] = true
				break
			}
		}
		changed++
	}
	return changed
}

// IndexOf returns the position of the entry with the given identifier, or -1.
func IndexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.IMDbID == id {
			return i
		}
	}
	return -1
}

// Add appends entry unless its identifier is already present.
func Add(entries []Entry, entry Entry) ([]Entry, error) {
	if IndexOf(entries, entry.IMDbID) >= 0 {
		return entries, ErrDuplicate
	}
	return append(entries, entry), nil
}

// Rate replaces the review and rating of the entry with the given identifier.
// Every other field is left as saved.
func Rate(entries []Entry, id, review, rating string) error {
	i := IndexOf(entries, id)
	if i < 0 {
		return ErrUnknownEntry
	}
	entries[i].Review = review
	entries[i].Rating = rating
	return nil
}

// Remove deletes the entry with the given identifier; later entries shift down
// by one position.
func Remove(entries []Entry, id string) ([]Entry, error) {
	i := IndexOf(entries, id)
	if i < 0 {
		return entries, ErrUnknownEntry
	}
	return append(entries[:i], entries[i+1:]...), nil
}
