package history

import (
	"strings"
	"sync"
)

const maxHistorySize = 1000

// History keeps the prompts sent during a session so they can be recalled.
// Nothing is persisted.
type History struct {
	entries []string
	index   int    // Current position in history (-1 means new input)
	current string // Stores current input when navigating history
	mu      sync.Mutex
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{index: -1}
}

// Add adds a new entry to history
func (h *History) Add(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = -1
	h.current = ""
	// Don't add duplicates of the last entry
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > maxHistorySize {
		h.entries = h.entries[len(h.entries)-maxHistorySize:]
	}
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Previous returns the previous entry in history.
// currentInput is the current textarea content (saved when first navigating)
func (h *History) Previous(currentInput string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}

	if h.index == -1 {
		h.current = currentInput
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	} else {
		// Already at oldest entry
		return h.entries[0], false
	}

	return h.entries[h.index], true
}

// Next returns the next entry in history (toward present)
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index == -1 {
		return "", false
	}

	h.index++
	if h.index >= len(h.entries) {
		// Back to what was being typed.
		h.index = -1
		return h.current, true
	}

	return h.entries[h.index], true
}

// Reset resets the navigation index (call when input is modified)
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = -1
	h.current = ""
}
