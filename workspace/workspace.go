// Package workspace abstracts the place where sources are read and fixture
// files are written, so conversion never depends on the process working directory.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Workspace enumerates, reads, writes and removes named entries.
// Entries whose names end in a compression suffix (.gz, .bz2, .xz, .zst) are
// decompressed on Open and compressed on Create.
type Workspace interface {
	// List returns entry names in enumeration order.
	List() ([]string, error)
	Open(name string) (io.ReadCloser, error)
	// Create truncates or creates the entry. Content is visible once the writer is closed.
	Create(name string) (io.WriteCloser, error)
	Remove(name string) error
}

// Dir is a Workspace backed by the regular files of one directory.
// Subdirectories are not visited.
type Dir struct {
	root string
}

// Ensure Dir implements Workspace
var _ Workspace = (*Dir)(nil)

// NewDir returns a Workspace over the directory at root.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", root)
	}
	return &Dir{root: root}, nil
}

// Root returns the directory the workspace operates on.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid entry name %q", name)
	}
	return filepath.Join(d.root, name), nil
}

// List implements Workspace. Names are returned sorted, as os.ReadDir does.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Open implements Workspace
func (d *Dir) Open(name string) (io.ReadCloser, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	rc, err := wrapReader(name, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return rc, nil
}

// Create implements Workspace
func (d *Dir) Create(name string) (io.WriteCloser, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	wc, err := wrapWriter(name, f)
	if err != nil {
		f.Close()
		os.Remove(p)
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return wc, nil
}

// Remove implements Workspace. Removing a missing entry is not an error.
func (d *Dir) Remove(name string) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
