package explore

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/namedlogs/pkg"
)

// historyMode is the permission mode of the history file.
const historyMode os.FileMode = 0o600

// History is the persisted list of committed pattern specs, oldest first.
// Each spec appears at most once.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory returns an empty History persisted at path. An empty path
// keeps the history in memory only.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those of the history file. A missing file
// is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = slices.DeleteFunc(h.entries, func(e string) bool {
			return e == line
		})
		h.entries = append(h.entries, line)
	}

	return scanner.Err()
}

// Add appends spec, moving it to the end if already present, and persists
// the history.
func (h *History) Add(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == spec {
		return nil
	}

	i := slices.Index(h.entries, spec)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, spec)

	if h.path == "" {
		return nil
	}

	// A moved entry requires rewriting the file; otherwise append.
	if i >= 0 {
		return h.rewrite()
	}

	return h.append(spec)
}

// Get returns the entry at index i, where 0 is the oldest.
func (h *History) Get(i int) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", false
	}

	return h.entries[i], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// Must be called with h.mu held.
func (h *History) append(spec string) error {
	if err := os.MkdirAll(filepath.Dir(h.path), pkg.DirMode); err != nil {
		return err
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, historyMode)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(spec + "\n")

	return err
}

// Must be called with h.mu held.
func (h *History) rewrite() error {
	if err := os.MkdirAll(filepath.Dir(h.path), pkg.DirMode); err != nil {
		return err
	}

	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), historyMode)
}
