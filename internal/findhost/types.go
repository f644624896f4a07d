package findhost

import (
	"errors"

	"pagefind/internal/domain"
	"pagefind/internal/matcher"
)

// ErrClosed is returned for requests made after Close
var ErrClosed = errors.New("find host closed")

// DefaultQueueSize is used when Options.QueueSize is zero
const DefaultQueueSize = 64

// Options configures a Host
type Options struct {
	Matcher   matcher.Matcher // nil means case-insensitive literal
	QueueSize int
}

// FindListener receives the result of every completed request, in request order.
// It runs on the host worker goroutine: it must not block on further host calls,
// and a listener that blocks at all stalls every queued request.
type FindListener func(domain.FindResult)

type requestKind int

const (
	requestFindAll requestKind = iota
	requestFindNext
	requestClear
	requestLoad
	requestSnapshot
)

func (k requestKind) String() string {
	switch k {
	case requestFindAll:
		return "findAll"
	case requestFindNext:
		return "findNext"
	case requestClear:
		return "clearMatches"
	case requestLoad:
		return "loadDocument"
	case requestSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

type request struct {
	kind    requestKind
	query   string
	forward bool
	doc     *domain.Document
	reply   chan reply // nil for fire-and-forget requests
}

type reply struct {
	result domain.FindResult
	index  int
}
