package cycler

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagefind/internal/domain"
	"pagefind/internal/matcher"
)

const woodchuck = "How much wood would a woodchuck chuck if a woodchuck could chuck wood?"

func newWoodchuck() *MatchCycler {
	return New(&domain.Document{Name: "woodchuck.txt", Text: woodchuck}, nil)
}

func TestFindAllFinds(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 4, c.FindAll("wood"))
	assert.Equal(t, StateSearched, c.State())
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestFindAllDouble(t *testing.T) {
	c := newWoodchuck()
	c.FindAll("wood")
	assert.Equal(t, 4, c.FindAll("chuck"))
	assert.Equal(t, "chuck", c.Query())
}

func TestFindAllDoesNotFind(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 0, c.FindAll("foo"))
	assert.Equal(t, StateEmpty, c.State())
}

func TestFindAllEmptyPage(t *testing.T) {
	c := New(&domain.Document{}, nil)
	assert.Equal(t, 0, c.FindAll("foo"))
}

func TestFindAllNilDocument(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, 0, c.FindAll("foo"))
	assert.Equal(t, 0, c.FindNext(true))
}

func TestFindAllEmptyString(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 0, c.FindAll(""))
	assert.Equal(t, StateEmpty, c.State())
}

func TestFindAllTwiceResetsCursor(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 4, c.FindAll("wood"))
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, 1, c.FindNext(true))

	assert.Equal(t, 4, c.FindAll("wood"))
	assert.Equal(t, StateSearched, c.State())
	assert.Equal(t, 0, c.FindNext(true))
}

func TestFindNextForwardWraps(t *testing.T) {
	c := newWoodchuck()
	require.Equal(t, 4, c.FindAll("wood"))

	for i := 0; i < 4; i++ {
		assert.Equal(t, i, c.FindNext(true))
	}
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, StateActive, c.State())
}

func TestFindNextBackwardStartsAtFirstThenWraps(t *testing.T) {
	c := newWoodchuck()
	require.Equal(t, 4, c.FindAll("wood"))

	assert.Equal(t, 0, c.FindNext(false))
	assert.Equal(t, 3, c.FindNext(false))
	assert.Equal(t, 2, c.FindNext(false))
	assert.Equal(t, 1, c.FindNext(false))
	assert.Equal(t, 0, c.FindNext(false))
	assert.Equal(t, 3, c.FindNext(false))
}

func TestFindNextSymmetry(t *testing.T) {
	c := newWoodchuck()
	require.Equal(t, 4, c.FindAll("wood"))
	c.FindNext(true)
	start := c.FindNext(true)

	c.FindNext(true)
	assert.Equal(t, start, c.FindNext(false))
}

func TestFindNextOnEmptySetIsNoop(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, 0, c.FindNext(false))
	assert.Equal(t, StateEmpty, c.State())

	c.FindAll("foo")
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, StateEmpty, c.State())
}

func TestFindNextBeforeFindAll(t *testing.T) {
	c := newWoodchuck()
	c.FindNext(true)
	assert.Equal(t, 4, c.FindAll("wood"))
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, 1, c.FindNext(true))
	assert.Equal(t, 0, c.FindNext(false))
	assert.Equal(t, 3, c.FindNext(false))
}

func TestFindAllEmptyThenNext(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 4, c.FindAll("wood"))
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, 0, c.FindAll(""))
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, 0, c.FindAll(""))
	assert.Equal(t, 4, c.FindAll("wood"))
	assert.Equal(t, 0, c.FindNext(true))
}

func TestClearMatches(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 4, c.FindAll("wood"))
	c.FindNext(true)

	c.ClearMatches()
	assert.Equal(t, StateEmpty, c.State())
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, "", c.Query())
	assert.Equal(t, 0, c.FindNext(true))

	c.ClearMatches()
	assert.Equal(t, StateEmpty, c.State())
}

func TestClearThenFindNext(t *testing.T) {
	c := newWoodchuck()
	assert.Equal(t, 4, c.FindAll("wood"))
	c.ClearMatches()
	assert.Equal(t, 4, c.FindAll("wood"))
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, 1, c.FindNext(true))
}

func TestSetDocumentClears(t *testing.T) {
	c := newWoodchuck()
	c.FindAll("wood")
	c.FindNext(true)

	c.SetDocument(&domain.Document{Text: "wood wood"})
	assert.Equal(t, StateEmpty, c.State())
	assert.Equal(t, 0, c.FindNext(true))
	assert.Equal(t, 2, c.FindAll("wood"))
}

func TestCurrentAndMatches(t *testing.T) {
	c := newWoodchuck()
	c.FindAll("wood")

	_, ok := c.Current()
	assert.False(t, ok)

	c.FindNext(true)
	c.FindNext(true)
	m, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "wood", woodchuck[m.Start:m.End])
	assert.Equal(t, strings.Index(woodchuck, "woodchuck"), m.Start)

	matches := c.Matches()
	require.Len(t, matches, 4)
	matches[0] = domain.Match{}
	assert.NotEqual(t, domain.Match{}, c.Matches()[0])
}

func TestResult(t *testing.T) {
	c := newWoodchuck()
	c.FindAll("wood")
	r := c.Result()
	assert.Equal(t, domain.FindResult{Query: "wood", Active: -1, Count: 4, Done: true}, r)
	assert.Equal(t, 0, r.Ordinal())

	c.FindNext(false)
	c.FindNext(false)
	r = c.Result()
	assert.Equal(t, 3, r.Active)
	assert.Equal(t, "wood", woodchuck[r.Current.Start:r.Current.End])
	assert.Equal(t, len(woodchuck)-1, r.Current.End)
	assert.Equal(t, 4, r.Ordinal())
}

func TestMatcherErrorIsZeroMatches(t *testing.T) {
	c := New(&domain.Document{Text: woodchuck}, matcher.NewPattern(false))
	assert.Equal(t, 0, c.FindAll("("))
	require.ErrorIs(t, c.LastError(), matcher.ErrInvalidPattern)
	assert.Equal(t, 0, c.FindNext(true))

	assert.Equal(t, 4, c.FindAll("wo+d"))
	assert.NoError(t, c.LastError())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "searched", StateSearched.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestCountMatchesNonOverlappingFoldedCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("abAB ")

	for i := 0; i < 200; i++ {
		text := randomString(rng, alphabet, rng.Intn(60))
		query := randomString(rng, alphabet[:4], 1+rng.Intn(3))

		c := New(&domain.Document{Text: text}, nil)
		want := strings.Count(strings.ToLower(text), strings.ToLower(query))
		n := c.FindAll(query)
		require.Equal(t, want, n, "text=%q query=%q", text, query)

		for k := 0; k < n; k++ {
			require.Equal(t, k, c.FindNext(true))
		}
		if n > 0 {
			require.Equal(t, 0, c.FindNext(true))
		}
	}
}

func randomString(rng *rand.Rand, alphabet []byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
