package converters

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/darianmavgo/mkfixture/workspace"
)

// FixtureNames lists the fixture files the Aggregator will read, in order:
// every entry ending in the statement suffix except the combined output itself.
func FixtureNames(ws workspace.Workspace, opts *Options) ([]string, error) {
	names, err := opts.entries(ws)
	if err != nil {
		return nil, err
	}
	suffix := opts.statementSuffix()
	combined := opts.combinedName()

	var fixtures []string
	for _, name := range names {
		if name == combined || !strings.HasSuffix(name, suffix) {
			continue
		}
		fixtures = append(fixtures, name)
	}
	return fixtures, nil
}

// Combine concatenates every fixture file in the workspace, generated or
// hand-written, into the combined output. The combined output is never read
// back, so repeated runs produce the same result.
func Combine(ws workspace.Workspace, opts *Options) (err error) {
	fixtures, err := FixtureNames(ws, opts)
	if err != nil {
		return err
	}
	combined := opts.combinedName()

	out, err := ws.Create(combined)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", combined, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", combined, closeErr)
		}
	}()

	if err := Concat(ws, fixtures, out); err != nil {
		return err
	}
	if opts.verbose() {
		log.Printf("[MKFIXTURE] Combined %d fixture files into %s", len(fixtures), combined)
	}
	return nil
}

// Concat copies the named entries to w in order. A newline is added after any
// entry that does not end with one, so the last statement of one file never
// runs into the first statement of the next.
func Concat(ws workspace.Workspace, names []string, w io.Writer) error {
	for _, name := range names {
		if err := copyEntry(ws, name, w); err != nil {
			return err
		}
	}
	return nil
}

func copyEntry(ws workspace.Workspace, name string, w io.Writer) error {
	r, err := ws.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer r.Close()

	tail := &lastByteWriter{w: w}
	if _, err := io.Copy(tail, r); err != nil {
		return fmt.Errorf("failed to copy %s: %w", name, err)
	}
	if tail.n > 0 && tail.last != '\n' {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("failed to terminate %s: %w", name, err)
		}
	}
	return nil
}

// lastByteWriter remembers the final byte written through it.
type lastByteWriter struct {
	w    io.Writer
	n    int64
	last byte
}

func (l *lastByteWriter) Write(p []byte) (int, error) {
	n, err := l.w.Write(p)
	if n > 0 {
		l.n += int64(n)
		l.last = p[n-1]
	}
	return n, err
}

// CombinedLines is a convenience for callers that want the combined stream as
// text without writing it to the workspace.
func CombinedLines(ws workspace.Workspace, opts *Options) ([]string, error) {
	fixtures, err := FixtureNames(ws, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Concat(ws, fixtures, &buf); err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(buf.String(), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
