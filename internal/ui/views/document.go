package views

import (
	"fmt"
	"sort"
	"strings"

	"pagefind/internal/domain"
)

// DocumentView renders document text for the viewport and maps byte
// offsets back to display lines
type DocumentView struct {
	lineStarts []int
	content    string
}

// NewDocumentView splits doc into lines, optionally prefixed with line numbers
func NewDocumentView(doc *domain.Document, lineNumbers bool, styles *Styles) *DocumentView {
	v := &DocumentView{}
	if doc == nil || doc.Text == "" {
		v.lineStarts = []int{0}
		return v
	}

	lines := strings.Split(doc.Text, "\n")
	v.lineStarts = make([]int, len(lines))
	width := len(fmt.Sprint(len(lines)))

	var b strings.Builder
	offset := 0
	for i, line := range lines {
		v.lineStarts[i] = offset
		offset += len(line) + 1

		if lineNumbers {
			num := fmt.Sprintf("%*d ", width, i+1)
			if styles != nil {
				num = styles.LineNumber.Render(num)
			}
			b.WriteString(num)
		}
		b.WriteString(strings.TrimRight(line, "\r"))
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	v.content = b.String()
	return v
}

// Content returns the rendered text
func (v *DocumentView) Content() string {
	return v.content
}

// LineCount returns the number of display lines
func (v *DocumentView) LineCount() int {
	return len(v.lineStarts)
}

// LineOf returns the 0-based line containing byte offset
func (v *DocumentView) LineOf(offset int) int {
	if offset <= 0 {
		return 0
	}
	return sort.SearchInts(v.lineStarts, offset+1) - 1
}
