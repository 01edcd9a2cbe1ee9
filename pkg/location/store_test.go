package location

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/selection"
)

func TestReadTriState(t *testing.T) {
	s, err := Parse("?var-device=d1&var-device=d2&var-country=&from=now-1h")
	require.NoError(t, err)

	cur := s.Read("device")
	assert.Equal(t, selection.StatePopulated, cur.State)
	assert.Equal(t, []string{"d1", "d2"}, cur.Values)

	assert.Equal(t, selection.StateEmpty, s.Read("country").State)
	assert.Equal(t, selection.StateAbsent, s.Read("missing").State)
	assert.Equal(t, []string{"country", "device"}, s.Names())
}

func TestWriteEmptyKeepsEntry(t *testing.T) {
	s := New()
	s.Write("device", nil)
	assert.Equal(t, selection.StateEmpty, s.Read("device").State)
	assert.Equal(t, "var-device=", s.Encode())

	s.Write("device", []string{"All"})
	assert.Equal(t, []string{"All"}, s.Read("device").Values)

	s.Delete("device")
	assert.Equal(t, selection.StateAbsent, s.Read("device").State)
}

func TestWriteCopiesValues(t *testing.T) {
	s := New()
	values := []string{"a", "b"}
	s.Write("v", values)
	values[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, s.Read("v").Values)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "location")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.Names())

	s.Write("device", []string{"d 1", "d&2"})
	s.Write("country", nil)
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"d 1", "d&2"}, loaded.Read("device").Values)
	assert.Equal(t, selection.StateEmpty, loaded.Read("country").State)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("var-x=%zz")
	assert.Error(t, err)
}

func TestZeroValueStore(t *testing.T) {
	var s Store
	assert.Equal(t, selection.StateAbsent, s.Read("device").State)

	s.Write("device", []string{"d1"})
	assert.Equal(t, []string{"d1"}, s.Read("device").Values)
	assert.Equal(t, "var-device=d1", s.Encode())
}
