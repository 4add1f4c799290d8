package session

import (
	"bufio"
	"os"
	"path/filepath"
)

// HistoryManager keeps the command history for one shell run and
// persists it across runs.
type HistoryManager struct {
	path    string
	maxSize int
	entries []string
}

// NewHistoryManager creates a manager bound to path, loading any
// existing history. A missing file is not an error.
func NewHistoryManager(path string, maxSize int) (*HistoryManager, error) {
	h := &HistoryManager{path: path, maxSize: maxSize}
	if err := h.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return h, nil
}

// DefaultHistoryPath returns the history file location.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xcsh_history"
	}
	return filepath.Join(home, ".xcsh_history")
}

func (h *HistoryManager) load() error {
	file, err := os.Open(h.path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
	return scanner.Err()
}

// Save writes the history back to its file.
func (h *HistoryManager) Save() error {
	dir := filepath.Dir(h.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(h.path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	for _, entry := range h.entries {
		if _, err := file.WriteString(entry + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Add appends an entry, suppressing empty lines and immediate
// duplicates of the last entry.
func (h *HistoryManager) Add(entry string) {
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Entries returns the full history in submission order.
func (h *HistoryManager) Entries() []string {
	return h.entries
}

// Last returns up to n most recent entries, oldest first.
func (h *HistoryManager) Last(n int) []string {
	if n <= 0 || len(h.entries) == 0 {
		return nil
	}
	if len(h.entries) <= n {
		return h.entries
	}
	return h.entries[len(h.entries)-n:]
}
