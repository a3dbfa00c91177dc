package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `yaml:"name" json:"name"`
	N    int    `yaml:"n" json:"n"`
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := FileExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = FileExists(dir)
	assert.Error(t, err, "a directory is not a file")

	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	ok, err = FileExists(p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteYAML_ReadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "dir", "c.yml")

	require.NoError(t, WriteYAML(p, sample{Name: "api", N: 3}, 0o644))

	var got sample
	require.NoError(t, ReadYAML(p, &got))
	assert.Equal(t, sample{Name: "api", N: 3}, got)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestReadYAML_EmptyKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.yml")
	require.NoError(t, os.WriteFile(p, nil, 0o600))

	got := sample{Name: "default"}
	require.NoError(t, ReadYAML(p, &got))
	assert.Equal(t, "default", got.Name)
}

func TestReadYAML_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.yml")
	require.NoError(t, os.WriteFile(p, []byte("name: [unclosed"), 0o600))
	assert.Error(t, ReadYAML(p, &sample{}))
}

func TestWriteJSON_ReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "storage.json")

	require.NoError(t, WriteJSON(p, sample{Name: "a"}, 0o600))
	require.NoError(t, WriteJSON(p, sample{Name: "b", N: 1}, 0o600))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"b","n":1}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.json")
	assert.Error(t, WriteJSON(p, make(chan int), 0o600))
	ok, err := FileExists(p)
	require.NoError(t, err)
	assert.False(t, ok)
}
