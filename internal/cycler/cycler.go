// Package cycler implements find-in-page match cycling over a document snapshot.
//
// A MatchCycler is not safe for concurrent use. Hosts that expose find
// asynchronously must serialize calls onto one goroutine; overlapping calls
// are unsupported and their results undefined.
package cycler

import (
	"log"

	"pagefind/internal/domain"
	"pagefind/internal/matcher"
)

// MatchCycler owns the search state for one document.
type MatchCycler struct {
	doc     *domain.Document
	matcher matcher.Matcher
	state   session
	lastErr error
}

// New creates a cycler over doc. A nil matcher means case-insensitive literal matching.
func New(doc *domain.Document, m matcher.Matcher) *MatchCycler {
	if m == nil {
		m = matcher.Literal{}
	}
	return &MatchCycler{
		doc:     doc,
		matcher: m,
		state:   emptySession(),
	}
}

// FindAll recomputes every match of query and unsets the cursor.
// Returns the match count; an empty query always yields 0.
func (c *MatchCycler) FindAll(query string) int {
	c.state = emptySession()
	c.state.query = query
	c.lastErr = nil

	if query == "" || c.doc == nil {
		return 0
	}

	matches, err := c.matcher.FindAll(c.doc.Text, query)
	if err != nil {
		log.Printf("Find for %q failed: %v", query, err)
		c.lastErr = err
		return 0
	}
	c.state.matches = matches

	log.Printf("Find completed for %q: found %d matches", query, len(matches))
	return len(matches)
}

// FindNext moves the cursor and returns its new 0-based index.
// With no matches it returns 0 and changes nothing. An unset cursor lands
// on the first match in either direction; otherwise the cursor wraps.
func (c *MatchCycler) FindNext(forward bool) int {
	n := len(c.state.matches)
	if n == 0 {
		return 0
	}

	if c.state.cursor < 0 {
		c.state.cursor = 0
		return 0
	}

	if forward {
		c.state.cursor = (c.state.cursor + 1) % n
	} else {
		c.state.cursor = (c.state.cursor - 1 + n) % n
	}
	return c.state.cursor
}

// ClearMatches drops the matches and the cursor.
func (c *MatchCycler) ClearMatches() {
	c.state = emptySession()
	c.lastErr = nil
}

// SetDocument swaps the document and clears the session.
func (c *MatchCycler) SetDocument(doc *domain.Document) {
	c.doc = doc
	c.ClearMatches()
}

// Document returns the current document.
func (c *MatchCycler) Document() *domain.Document {
	return c.doc
}

// Query returns the query of the last FindAll.
func (c *MatchCycler) Query() string {
	return c.state.query
}

// Count returns the number of matches.
func (c *MatchCycler) Count() int {
	return len(c.state.matches)
}

// Active returns the cursor, false when unset.
func (c *MatchCycler) Active() (int, bool) {
	if c.state.cursor < 0 || len(c.state.matches) == 0 {
		return -1, false
	}
	return c.state.cursor, true
}

// Current returns the active match.
func (c *MatchCycler) Current() (domain.Match, bool) {
	idx, ok := c.Active()
	if !ok {
		return domain.Match{}, false
	}
	return c.state.matches[idx], true
}

// Matches returns a copy of the match set.
func (c *MatchCycler) Matches() []domain.Match {
	if len(c.state.matches) == 0 {
		return nil
	}
	out := make([]domain.Match, len(c.state.matches))
	copy(out, c.state.matches)
	return out
}

// State reports the state machine position.
func (c *MatchCycler) State() State {
	switch {
	case len(c.state.matches) == 0:
		return StateEmpty
	case c.state.cursor < 0:
		return StateSearched
	default:
		return StateActive
	}
}

// LastError returns the matcher error of the last FindAll, if any.
func (c *MatchCycler) LastError() error {
	return c.lastErr
}

// Result summarizes the session for host listeners.
func (c *MatchCycler) Result() domain.FindResult {
	active, _ := c.Active()
	current, _ := c.Current()
	return domain.FindResult{
		Query:   c.state.query,
		Active:  active,
		Count:   len(c.state.matches),
		Current: current,
		Done:    true,
	}
}
