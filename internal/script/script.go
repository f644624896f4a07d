// Package script runs line-oriented find commands against a host.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pagefind/internal/document"
	"pagefind/internal/domain"
)

// Op is a script command verb
type Op string

const (
	OpFind   Op = "find"
	OpNext   Op = "next"
	OpPrev   Op = "prev"
	OpClear  Op = "clear"
	OpLoad   Op = "load"
	OpStatus Op = "status"
)

var ErrSyntax = errors.New("script syntax error")

// Command is one parsed script line
type Command struct {
	Line int
	Op   Op
	Arg  string
}

// Host is the part of findhost.Host a script needs
type Host interface {
	FindAll(ctx context.Context, query string) (int, error)
	FindNext(ctx context.Context, forward bool) (int, error)
	ClearMatches(ctx context.Context) error
	LoadDocument(ctx context.Context, doc *domain.Document) error
	Snapshot(ctx context.Context) (domain.FindResult, error)
}

// Parse reads commands, one per line. Blank lines and '#' comments are skipped.
// The argument of find is the rest of the line after a single space and may be empty.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		verb, arg, _ := strings.Cut(strings.TrimLeft(text, " \t"), " ")
		cmd := Command{Line: line, Op: Op(strings.ToLower(verb)), Arg: arg}
		switch cmd.Op {
		case OpFind:
		case OpNext, OpPrev, OpClear, OpStatus:
			if strings.TrimSpace(arg) != "" {
				return nil, fmt.Errorf("%w: line %d: %s takes no argument", ErrSyntax, line, cmd.Op)
			}
		case OpLoad:
			cmd.Arg = strings.TrimSpace(arg)
			if cmd.Arg == "" {
				return nil, fmt.Errorf("%w: line %d: load needs a path", ErrSyntax, line)
			}
		default:
			return nil, fmt.Errorf("%w: line %d: unknown command %q", ErrSyntax, line, verb)
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}

// Run executes cmds in order and writes one line of output per command
func Run(ctx context.Context, h Host, cmds []Command, w io.Writer) error {
	for _, cmd := range cmds {
		out, err := exec(ctx, h, cmd)
		if err != nil {
			return fmt.Errorf("line %d (%s): %w", cmd.Line, cmd.Op, err)
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func exec(ctx context.Context, h Host, cmd Command) (string, error) {
	switch cmd.Op {
	case OpFind:
		n, err := h.FindAll(ctx, cmd.Arg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("find %q: %d %s", cmd.Arg, n, plural(n, "match", "matches")), nil

	case OpNext, OpPrev:
		idx, err := h.FindNext(ctx, cmd.Op == OpNext)
		if err != nil {
			return "", err
		}
		snap, err := h.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		if snap.Count == 0 {
			return fmt.Sprintf("%s: %d (no matches)", cmd.Op, idx), nil
		}
		return fmt.Sprintf("%s: %d (match %d of %d)", cmd.Op, idx, idx+1, snap.Count), nil

	case OpClear:
		if err := h.ClearMatches(ctx); err != nil {
			return "", err
		}
		return "clear", nil

	case OpLoad:
		doc, err := document.Load(cmd.Arg)
		if err != nil {
			return "", err
		}
		if err := h.LoadDocument(ctx, doc); err != nil {
			return "", err
		}
		return fmt.Sprintf("load %s: %d bytes", doc.Name, doc.Len()), nil

	case OpStatus:
		snap, err := h.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		return FormatStatus(snap), nil
	}
	return "", fmt.Errorf("%w: unknown command %q", ErrSyntax, cmd.Op)
}

// FormatStatus renders a result the way the script prints status lines
func FormatStatus(r domain.FindResult) string {
	switch {
	case r.Query == "" && r.Count == 0:
		return "status: no search"
	case r.Count == 0:
		return fmt.Sprintf("status: no matches for %q", r.Query)
	case !r.HasActive():
		return fmt.Sprintf("status: %d %s for %q, none active", r.Count, plural(r.Count, "match", "matches"), r.Query)
	default:
		return fmt.Sprintf("status: match %d of %d for %q", r.Ordinal(), r.Count, r.Query)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
