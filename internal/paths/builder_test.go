package paths

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPathLayout(t *testing.T) {
	base := t.TempDir()
	b := NewBuilder(base)

	start := time.Date(2025, time.March, 7, 14, 30, 5, 0, time.Local)
	path, err := b.SessionPath(start, "")
	require.NoError(t, err)

	want := filepath.Join(base, "2025", "03-March", "07", "session_143005.mid")
	assert.Equal(t, want, path)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSessionPathSuffixBeforeExtension(t *testing.T) {
	base := t.TempDir()
	b := NewBuilder(base)

	start := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.Local)
	path, err := b.SessionPath(start, "-bookmark")
	require.NoError(t, err)

	assert.Equal(t, "session_235959-bookmark.mid", filepath.Base(path))
	assert.Contains(t, path, filepath.Join("2025", "12-December", "31"))
}

func TestSessionPathUnwritableBase(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}
	base := t.TempDir()
	require.NoError(t, os.Chmod(base, 0o500))
	t.Cleanup(func() { _ = os.Chmod(base, 0o700) })

	b := NewBuilder(filepath.Join(base, "nested"))
	_, err := b.SessionPath(time.Now(), "")
	assert.Error(t, err)
}
