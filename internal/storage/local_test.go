package storage

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadListDownload(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	tick := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return tick }

	first, err := s.UploadFromBytes([]byte("one"), "snapshot.json", "backups")
	require.NoError(t, err)
	assert.Contains(t, first, "backups/2025/03/")

	tick = tick.Add(time.Hour)
	second, err := s.UploadFromBytes([]byte("two"), "snapshot.json", "backups")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := s.List("backups")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].Path, "newest first")

	r, err := s.Download(first)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	r.Close()
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
	assert.True(t, s.Exists(first))
}

func TestLocalStorage_Prune(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	tick := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return tick }
	for i := 0; i < 4; i++ {
		_, err := s.UploadFromBytes([]byte("x"), "snapshot.json", "backups")
		require.NoError(t, err)
		tick = tick.Add(time.Minute)
	}

	removed, err := s.Prune("backups", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := s.List("backups")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLocalStorage_ListMissingDirIsEmpty(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	entries, err := s.List("nothing-here")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_PathsStayInsideBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	assert.Equal(t, base+"/etc/passwd", s.GetFullPath("etc/passwd"))
	assert.False(t, s.Exists("../../etc/passwd"))
	assert.Error(t, s.Delete(""))
}
