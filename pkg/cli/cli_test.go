package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testData = `
frames:
  - refId: A
    fields:
      - name: country
        values: [USA, USA, Japan]
      - name: device
        values: [device1, device11, device12]
`
	testVariables = `
variables:
  - name: country
    multi: true
    options:
      - value: USA
      - value: Japan
  - name: device
    multi: true
    include_all: true
    options:
      - value: device1
      - value: device11
      - value: device12
`
	testConfig = `
data_files: [data.yaml]
variables_file: variables.yaml
state_file: state/location
favorites_db: state/favorites.db
variable: device
groups:
  - name: geo
    levels:
      - name: country
        source: A
      - name: device
        source: A
  - name: flat
    levels:
      - name: device
        source: 0
`
)

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"data.yaml":      testData,
		"variables.yaml": testVariables,
		"hp.yaml":        testConfig,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "hp.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTreeCommand(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, dir, "tree")
	require.NoError(t, err)
	want := strings.Join([]string{
		"geo",
		"───",
		"▸ USA (2)",
		"  [ ] device1  ☆",
		"  [ ] device11 ☆",
		"▸ Japan (1)",
		"  [ ] device12 ☆",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestTreeCommandSearchAndGroup(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, dir, "tree", "--search", "device12")
	require.NoError(t, err)
	assert.Contains(t, out, "Japan")
	assert.Contains(t, out, "device12")
	assert.NotContains(t, out, "USA")

	out, err = run(t, dir, "--group", "flat", "--favorites=false", "tree")
	require.NoError(t, err)
	assert.Equal(t, "flat\n────\n[ ] device1\n[ ] device11\n[ ] device12\n", out)
}

func TestSelectCommandCascadesAndPersists(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, dir, "select", "USA")
	require.NoError(t, err)
	assert.Equal(t, "country = USA\ndevice = device1, device11\n", out)

	state, err := os.ReadFile(filepath.Join(dir, "state", "location"))
	require.NoError(t, err)
	assert.Equal(t, "var-country=USA&var-device=device1&var-device=device11\n", string(state))

	out, err = run(t, dir, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] USA (2)")
	assert.Contains(t, out, "  [x] device11 ☆")
	assert.Contains(t, out, "  [ ] device12 ☆")
}

func TestSelectCommandAll(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, dir, "--show-all", "select", "all")
	require.NoError(t, err)
	assert.Equal(t, "device = All\n", out)

	out, err = run(t, dir, "--show-all", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] All")
	assert.Contains(t, out, "  [x] device12 ☆")
}

func TestSelectCommandUnknownValue(t *testing.T) {
	dir := setupProject(t)
	_, err := run(t, dir, "select", "nope")
	assert.Error(t, err)
}

func TestFavoriteCommands(t *testing.T) {
	dir := setupProject(t)

	_, err := run(t, dir, "favorite", "add", "device", "device11")
	require.NoError(t, err)

	out, err := run(t, dir, "favorite", "list")
	require.NoError(t, err)
	assert.Equal(t, "device\tdevice11\n", out)

	out, err = run(t, dir, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "▸ USA (2, ★1)")
	assert.Contains(t, out, "  [ ] device11 ★")

	_, err = run(t, dir, "favorite", "remove", "device", "device11")
	require.NoError(t, err)
	out, err = run(t, dir, "favorite", "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, dir, "--favorites=false", "favorite", "list")
	assert.Error(t, err)
}

func TestFavoriteRejectsGroupsAndAll(t *testing.T) {
	dir := setupProject(t)

	_, err := run(t, dir, "favorite", "add", "country", "USA")
	assert.Error(t, err, "groups cannot be favorites")
	_, err = run(t, dir, "--show-all", "favorite", "add", "device", "All")
	assert.Error(t, err, "the All row cannot be a favorite")
	_, err = run(t, dir, "favorite", "add", "device", "nope")
	assert.Error(t, err)

	_, err = run(t, dir, "favorite", "add", "device", "device1")
	require.NoError(t, err)
	_, err = run(t, dir, "favorite", "add", "device", "device1")
	require.NoError(t, err, "adding twice is a no-op")
	_, err = run(t, dir, "favorite", "remove", "device", "device12")
	require.NoError(t, err, "removing a non-favorite is a no-op")

	out, err := run(t, dir, "favorite", "list")
	require.NoError(t, err)
	assert.Equal(t, "device\tdevice1\n", out)
}

func TestGroupsCommand(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, dir, "groups")
	require.NoError(t, err)
	assert.Equal(t, "* geo: country@A > device@A\n  flat: device@0\n", out)
}

func TestMissingSourceFrame(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.yaml"), []byte("frames:\n  - refId: B\n"), 0644))

	_, err := run(t, dir, "tree")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSource))
}

func TestMissingDataFileKeepsOtherFrames(t *testing.T) {
	dir := setupProject(t)
	cfg := strings.Replace(testConfig, "data_files: [data.yaml]", "data_files: [missing.yaml, data.yaml]", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hp.yaml"), []byte(cfg), 0644))

	out, err := run(t, dir, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "▸ USA (2)")
	assert.Contains(t, out, "  [ ] device12 ☆")
}

func TestVersionCommandSkipsConfig(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", "/nonexistent/hp.yaml", "version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "hp v")
}
