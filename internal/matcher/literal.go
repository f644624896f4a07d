package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pagefind/internal/domain"
)

// Literal matches the query text verbatim. Unless CaseSensitive is set,
// runes are compared after lower-casing each side.
type Literal struct {
	CaseSensitive bool
}

func (l Literal) FindAll(text, query string) ([]domain.Match, error) {
	if query == "" || len(text) == 0 {
		return nil, nil
	}
	if l.CaseSensitive {
		return exactMatches(text, query), nil
	}
	return foldedMatches(text, query), nil
}

func exactMatches(text, query string) []domain.Match {
	var res []domain.Match
	offset := 0
	for {
		idx := strings.Index(text[offset:], query)
		if idx < 0 {
			return res
		}
		start := offset + idx
		res = append(res, domain.Match{Start: start, End: start + len(query)})
		offset = start + len(query)
	}
}

func foldedMatches(text, query string) []domain.Match {
	queryRunes := foldRunes(query)
	qlen := len(queryRunes)

	// textRunes[i] starts at byte offsets[i]; offsets has one extra entry for len(text)
	textRunes := make([]rune, 0, utf8.RuneCountInString(text))
	offsets := make([]int, 0, cap(textRunes)+1)
	for i, r := range text {
		textRunes = append(textRunes, foldRune(text, i, r))
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	var res []domain.Match
	for i := 0; i+qlen <= len(textRunes); {
		match := true
		for j := 0; j < qlen; j++ {
			if textRunes[i+j] != queryRunes[j] {
				match = false
				break
			}
		}
		if match {
			res = append(res, domain.Match{Start: offsets[i], End: offsets[i+qlen]})
			i += qlen
			continue
		}
		i++
	}
	return res
}

func foldRunes(s string) []rune {
	out := make([]rune, 0, len(s))
	for i, r := range s {
		out = append(out, foldRune(s, i, r))
	}
	return out
}

// foldRune lower-cases r, the rune decoded at s[i]. An invalid byte maps to
// a negative value of its own so it only matches the same byte.
func foldRune(s string, i int, r rune) rune {
	if r == utf8.RuneError {
		if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
			return -1 - rune(s[i])
		}
	}
	return unicode.ToLower(r)
}
