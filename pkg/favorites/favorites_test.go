package favorites

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	assert.False(t, s.IsFavorite("device", "d1"))

	require.NoError(t, s.Add("device", "d1"))
	require.NoError(t, s.Add("device", "d1"))
	require.NoError(t, s.Add("country", "USA"))
	assert.True(t, s.IsFavorite("device", "d1"))
	assert.False(t, s.IsFavorite("country", "d1"), "favorites are scoped by level")

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "country", list[0].Level)
	assert.Equal(t, "d1", list[1].Value)

	require.NoError(t, s.Remove("device", "d1"))
	require.NoError(t, s.Remove("device", "never-added"))
	assert.False(t, s.IsFavorite("device", "d1"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "favorites.db")
	s, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Add("device", "d9"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	assert.True(t, reopened.IsFavorite("device", "d9"), "favorites survive reopening")
}
