package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagefind/internal/domain"
	"pagefind/internal/findhost"
)

const woodchuck = "How much wood would a woodchuck chuck if a woodchuck could chuck wood?"

func TestParse(t *testing.T) {
	src := `# comment
find wood

next
PREV
find
find two words
clear
status
load  ./page.txt
`
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 8)

	assert.Equal(t, Command{Line: 2, Op: OpFind, Arg: "wood"}, cmds[0])
	assert.Equal(t, Command{Line: 4, Op: OpNext}, cmds[1])
	assert.Equal(t, OpPrev, cmds[2].Op)
	assert.Equal(t, Command{Line: 6, Op: OpFind, Arg: ""}, cmds[3])
	assert.Equal(t, "two words", cmds[4].Arg)
	assert.Equal(t, OpClear, cmds[5].Op)
	assert.Equal(t, OpStatus, cmds[6].Op)
	assert.Equal(t, Command{Line: 10, Op: OpLoad, Arg: "./page.txt"}, cmds[7])
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"jump 3", "next 2", "load", "find wood\nclear all"} {
		_, err := Parse(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrSyntax, "script %q", src)
	}

	_, err := Parse(strings.NewReader("find wood\nclear all"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func runScript(t *testing.T, src string) string {
	t.Helper()
	h := findhost.New(findhost.Options{}, nil)
	t.Cleanup(h.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.LoadDocument(ctx, &domain.Document{Name: "woodchuck", Text: woodchuck}))

	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(ctx, h, cmds, &out))
	return out.String()
}

func TestRunWrapAround(t *testing.T) {
	out := runScript(t, "find wood\nnext\nnext\nnext\nnext\nnext\nstatus\n")
	assert.Equal(t, `find "wood": 4 matches
next: 0 (match 1 of 4)
next: 1 (match 2 of 4)
next: 2 (match 3 of 4)
next: 3 (match 4 of 4)
next: 0 (match 1 of 4)
status: match 1 of 4 for "wood"
`, out)
}

func TestRunEmptyAndClear(t *testing.T) {
	out := runScript(t, "status\nfind\nnext\nfind wood\nstatus\nclear\nprev\nfind foo\nstatus\n")
	assert.Equal(t, `status: no search
find "": 0 matches
next: 0 (no matches)
find "wood": 4 matches
status: 4 matches for "wood", none active
clear
prev: 0 (no matches)
find "foo": 0 matches
status: no matches for "foo"
`, out)
}

func TestRunLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(path, []byte("one wood"), 0644))

	out := runScript(t, "find wood\nnext\nload "+path+"\nnext\nfind wood\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "load "+path+": 8 bytes", lines[2])
	assert.Equal(t, "next: 0 (no matches)", lines[3])
	assert.Equal(t, `find "wood": 1 match`, lines[4])
}

func TestRunReportsFailingLine(t *testing.T) {
	h := findhost.New(findhost.Options{}, nil)
	defer h.Close()

	cmds, err := Parse(strings.NewReader("find wood\nload /does/not/exist\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	err = Run(context.Background(), h, cmds, &out)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "line 2 (load)")
	assert.Equal(t, "find \"wood\": 0 matches\n", out.String())
}
