// Package matcher locates every occurrence of a query in a document text.
package matcher

import (
	"errors"
	"fmt"
	"strings"

	"pagefind/internal/domain"
)

// Engine names accepted by New
const (
	EngineLiteral = "literal"
	EngineRegex   = "regex"
)

var (
	ErrUnknownEngine  = errors.New("unknown match engine")
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Matcher finds all non-overlapping matches of query in text, in document order.
// An empty query never matches.
type Matcher interface {
	FindAll(text, query string) ([]domain.Match, error)
}

// New returns the matcher registered under engine
func New(engine string, caseSensitive bool) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineLiteral:
		return Literal{CaseSensitive: caseSensitive}, nil
	case EngineRegex:
		return NewPattern(caseSensitive), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Engines lists the valid engine names
func Engines() []string {
	return []string{EngineLiteral, EngineRegex}
}
