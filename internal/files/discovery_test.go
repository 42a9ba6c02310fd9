package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "crimescope/internal/errors"
)

func touch(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestFindSnapshots(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := touch(t, dir, "old.csv", now.Add(-2*time.Hour))
	newest := touch(t, dir, "newest.xlsx", now)
	mid := touch(t, dir, "mid.csv", now.Add(-time.Hour))
	touch(t, dir, "notes.txt", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	found, err := FindSnapshots(dir)
	require.NoError(t, err)
	require.Len(t, found, 3, "only csv and xlsx files count")

	assert.Equal(t, newest, found[0].Path)
	assert.Equal(t, mid, found[1].Path)
	assert.Equal(t, old, found[2].Path)
}

func TestLatestSnapshot_EmptyDir(t *testing.T) {
	_, err := LatestSnapshot(t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "old.csv", now.Add(-time.Hour))
	newest := touch(t, dir, "new.csv", now)

	t.Run("file passes through", func(t *testing.T) {
		resolved, err := ResolveInput(newest)
		require.NoError(t, err)
		assert.Equal(t, newest, resolved)
	})

	t.Run("directory resolves to newest snapshot", func(t *testing.T) {
		resolved, err := ResolveInput(dir)
		require.NoError(t, err)
		assert.Equal(t, newest, resolved)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ResolveInput(filepath.Join(dir, "absent.csv"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})
}
