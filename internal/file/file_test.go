package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/.config/gemchat/config.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/gemchat/config.json"), expanded)

	unchanged, err := ExpandPath("/etc/gemchat.json")
	require.NoError(t, err)
	assert.Equal(t, "/etc/gemchat.json", unchanged)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	ok, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(dir)
	require.NoError(t, err)
	assert.False(t, ok, "directories are not files")
}

func TestEnsureParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "debug.log")
	require.NoError(t, EnsureParentDirectory(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
