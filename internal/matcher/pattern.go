package matcher

import (
	"fmt"
	"regexp/syntax"
	"slices"
	"sync"
	"unicode"

	"github.com/coregx/coregex"

	"pagefind/internal/domain"
)

const patternCacheSize = 32

// Pattern treats the query as a regular expression. Zero-width matches are
// skipped so that every reported match covers at least one byte. Queries
// without metacharacters are matched by Literal.
type Pattern struct {
	CaseSensitive bool

	mu    sync.Mutex
	cache map[string]*coregex.Regex
}

// NewPattern creates a regex matcher
func NewPattern(caseSensitive bool) *Pattern {
	return &Pattern{
		CaseSensitive: caseSensitive,
		cache:         make(map[string]*coregex.Regex),
	}
}

func (p *Pattern) FindAll(text, query string) ([]domain.Match, error) {
	if query == "" {
		return nil, nil
	}
	if Quote(query) == query {
		return Literal{CaseSensitive: p.CaseSensitive}.FindAll(text, query)
	}
	re, err := p.compile(query)
	if err != nil {
		return nil, err
	}

	indices := re.FindAllStringIndex(text, -1)
	if len(indices) == 0 {
		return nil, nil
	}
	res := make([]domain.Match, 0, len(indices))
	for _, idx := range indices {
		if len(idx) != 2 || idx[1] <= idx[0] {
			continue
		}
		res = append(res, domain.Match{Start: idx[0], End: idx[1]})
	}
	return res, nil
}

func (p *Pattern) compile(query string) (*coregex.Regex, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache == nil {
		p.cache = make(map[string]*coregex.Regex)
	}
	if re, ok := p.cache[query]; ok {
		return re, nil
	}

	expr := query
	if !p.CaseSensitive {
		folded, err := foldPattern(query)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, query, err)
		}
		expr = folded
	}
	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, query, err)
	}

	if len(p.cache) >= patternCacheSize {
		p.cache = make(map[string]*coregex.Regex)
	}
	p.cache[query] = re
	return re, nil
}

// foldPattern parses query case-insensitively and spells every folded
// literal out as a character class. coregex compiles a FoldCase literal
// byte for byte, so (?i)wood would only match "WOOD".
func foldPattern(query string) (string, error) {
	re, err := syntax.Parse("(?i)"+query, syntax.Perl)
	if err != nil {
		return "", err
	}
	return expandFold(re).String(), nil
}

func expandFold(re *syntax.Regexp) *syntax.Regexp {
	for i, sub := range re.Sub {
		re.Sub[i] = expandFold(sub)
	}
	if re.Op != syntax.OpLiteral || re.Flags&syntax.FoldCase == 0 {
		return re
	}

	flags := re.Flags &^ syntax.FoldCase
	parts := make([]*syntax.Regexp, 0, len(re.Rune))
	for _, r := range re.Rune {
		parts = append(parts, foldRuneClass(r, flags))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return &syntax.Regexp{Op: syntax.OpConcat, Flags: flags, Sub: parts}
}

// foldRuneClass returns [Rr] for a rune with case variants, the bare rune otherwise
func foldRuneClass(r rune, flags syntax.Flags) *syntax.Regexp {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	if len(orbit) == 1 {
		return &syntax.Regexp{Op: syntax.OpLiteral, Flags: flags, Rune: []rune{r}}
	}

	slices.Sort(orbit)
	ranges := make([]rune, 0, 2*len(orbit))
	for _, f := range orbit {
		if n := len(ranges); n > 0 && ranges[n-1]+1 == f {
			ranges[n-1] = f
			continue
		}
		ranges = append(ranges, f, f)
	}
	return &syntax.Regexp{Op: syntax.OpCharClass, Flags: flags, Rune: ranges}
}

// Quote escapes query so that the regex engine matches it literally
func Quote(query string) string {
	return coregex.QuoteMeta(query)
}
