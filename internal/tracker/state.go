package tracker

// State is the search/selection stage of a Session.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateCandidatesShown
	StateDetailLoading
	StatePendingSubmit
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateCandidatesShown:
		return "candidates"
	case StateDetailLoading:
		return "detail_loading"
	case StatePendingSubmit:
		return "pending_submit"
	default:
		return "unknown"
	}
}

// EditSession is the entry currently shown in edit form with its draft fields.
type EditSession struct {
	IMDbID string
	Review string
	Rating string
}
