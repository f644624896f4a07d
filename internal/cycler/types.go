package cycler

import "pagefind/internal/domain"

// State is the position of a session in the find state machine.
type State int

const (
	// StateEmpty has no matches; FindNext is a no-op
	StateEmpty State = iota
	// StateSearched has matches but no active cursor
	StateSearched
	// StateActive has matches and a cursor
	StateActive
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSearched:
		return "searched"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// session holds everything findAll replaces wholesale.
type session struct {
	query   string
	matches []domain.Match
	cursor  int // -1 when unset
}

func emptySession() session {
	return session{cursor: -1}
}
