package results

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("0, 150.00 mm\n"), 0o644))
	mt := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mt, mt))
}

func TestFileServiceList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "old.csv", 2*time.Hour)
	touch(t, dir, "new.csv", time.Minute)
	touch(t, dir, "notes.txt", 0)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	svc, err := NewFileService(dir)
	require.NoError(t, err)
	runs, err := svc.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].Name)
	assert.Equal(t, "old", runs[1].Name)
	assert.Equal(t, filepath.Join(dir, "old.csv"), runs[1].Path)
	assert.Positive(t, runs[0].Size)
}

func TestFileServiceGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "run.csv", 0)
	svc, err := NewFileService(dir)
	require.NoError(t, err)

	for _, name := range []string{"run", "run.csv"} {
		r, err := svc.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, "run", r.Name)
	}
	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = svc.Get("")
	assert.Error(t, err)
}

func TestNewFileServiceCreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewFileService(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	_, err = NewFileService("")
	assert.Error(t, err)
}

func TestResultsEnterOpensSelected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "run.csv", 0)
	svc, err := NewFileService(dir)
	require.NoError(t, err)

	r := NewResults(svc)
	require.Len(t, r.Runs, 1)
	cmd := r.Update(tea.KeyMsg{Type: tea.KeyEnter}, 80, 24)
	require.NotNil(t, cmd)
	assert.Equal(t, OpenMsg{Path: filepath.Join(dir, "run.csv")}, cmd())

	touch(t, dir, "second.csv", 0)
	r.Reload()
	assert.Len(t, r.Runs, 2)
	assert.Contains(t, r.View(), "Results")
}
