package domain

// Document is a read-only text snapshot searched by a find session
type Document struct {
	Name string // usually the file path it was loaded from
	Text string
}

// Len returns the document length in bytes
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Text)
}

// Match is a located occurrence of a query, as a half-open byte range into Document.Text
type Match struct {
	Start int
	End   int
}

// Len returns the match length in bytes
func (m Match) Len() int {
	return m.End - m.Start
}

// FindResult is what a host reports back after every find request
type FindResult struct {
	Query   string
	Active  int   // raw 0-based cursor, -1 when no match is active
	Count   int   // number of matches
	Current Match // range of the active match, zero when none
	Wrapped bool  // the navigation that produced this result crossed the end of the match set
	Done    bool  // counting finished; always true for synchronous matching
}

// HasActive reports whether a match is currently active
func (r FindResult) HasActive() bool {
	return r.Count > 0 && r.Active >= 0
}

// Ordinal returns the 1-based "match i of N" display value, 0 if no match is active
func (r FindResult) Ordinal() int {
	if !r.HasActive() {
		return 0
	}
	return r.Active + 1
}
