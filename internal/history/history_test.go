package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory()
	_, ok := h.Previous("draft")
	assert.False(t, ok, "empty history has nothing to recall")

	h.Add("first")
	h.Add("second")
	h.Add("second")
	h.Add("   ")
	assert.Equal(t, 2, h.Len())

	entry, ok := h.Previous("draft")
	assert.True(t, ok)
	assert.Equal(t, "second", entry)

	entry, ok = h.Previous("ignored")
	assert.True(t, ok)
	assert.Equal(t, "first", entry)

	entry, ok = h.Previous("ignored")
	assert.False(t, ok)
	assert.Equal(t, "first", entry)

	entry, ok = h.Next()
	assert.True(t, ok)
	assert.Equal(t, "second", entry)

	entry, ok = h.Next()
	assert.True(t, ok)
	assert.Equal(t, "draft", entry, "walking past the newest entry restores the draft")

	_, ok = h.Next()
	assert.False(t, ok)
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory()
	h.Add("one")
	_, _ = h.Previous("typed")
	h.Reset()
	_, ok := h.Next()
	assert.False(t, ok)
}
