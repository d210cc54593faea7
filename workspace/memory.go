package workspace

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

// Memory is an in-memory Workspace. List returns names in insertion order.
type Memory struct {
	names   []string
	entries map[string][]byte
}

// Ensure Memory implements Workspace
var _ Workspace = (*Memory)(nil)

// NewMemory returns an empty Memory workspace.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

// Put stores raw bytes under name, as if a file had been dropped into a directory.
// No compression is applied.
func (m *Memory) Put(name string, content []byte) {
	if _, ok := m.entries[name]; !ok {
		m.names = append(m.names, name)
	}
	m.entries[name] = bytes.Clone(content)
}

// Get returns the raw stored bytes of name.
func (m *Memory) Get(name string) ([]byte, bool) {
	b, ok := m.entries[name]
	return b, ok
}

// List implements Workspace
func (m *Memory) List() ([]string, error) {
	return slices.Clone(m.names), nil
}

// Open implements Workspace
func (m *Memory) Open(name string) (io.ReadCloser, error) {
	b, ok := m.entries[name]
	if !ok {
		return nil, fmt.Errorf("failed to open %s: entry does not exist", name)
	}
	rc, err := wrapReader(name, io.NopCloser(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return rc, nil
}

// Create implements Workspace
func (m *Memory) Create(name string) (io.WriteCloser, error) {
	wc, err := wrapWriter(name, &memoryFile{mem: m, name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return wc, nil
}

// Remove implements Workspace
func (m *Memory) Remove(name string) error {
	if _, ok := m.entries[name]; !ok {
		return nil
	}
	delete(m.entries, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
	return nil
}

// memoryFile buffers writes and commits them to the workspace on Close.
type memoryFile struct {
	mem  *Memory
	name string
	buf  bytes.Buffer
}

func (f *memoryFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memoryFile) Close() error {
	f.mem.Put(f.name, f.buf.Bytes())
	return nil
}
