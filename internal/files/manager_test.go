package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	m := NewManager("/base")
	assert.Equal(t, filepath.Join("/base", "a", "b.csv"), m.Resolve(filepath.Join("a", "b.csv")))
	assert.Equal(t, "/abs/c.csv", m.Resolve("/abs/c.csv"))
}

func TestWriteReadMove(t *testing.T) {
	m := NewManager(t.TempDir())

	require.NoError(t, m.WriteFile("sub/one.txt", []byte("conteudo")))
	assert.True(t, m.FileExists("sub/one.txt"))

	data, err := m.ReadFile("sub/one.txt")
	require.NoError(t, err)
	assert.Equal(t, "conteudo", string(data))

	require.NoError(t, m.MoveFile("sub/one.txt", "other/two.txt"))
	assert.False(t, m.FileExists("sub/one.txt"))
	assert.True(t, m.FileExists("other/two.txt"))
}

func TestEnsureDirectory(t *testing.T) {
	m := NewManager(t.TempDir())

	require.NoError(t, m.EnsureDirectory("exports/concluida"))
	info, err := os.Stat(m.Resolve("exports/concluida"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Existing directories are fine.
	require.NoError(t, m.EnsureDirectory("exports/concluida"))
}

func TestNewestFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.csv"), []byte("a"), 0o644))
	older := time.Now().Add(-1 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.csv"), older, older))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte("b"), 0o644))

	name, ok := m.NewestFile(".")
	require.True(t, ok)
	assert.Equal(t, "new.csv", name)
}

func TestNewestFileEmptyDir(t *testing.T) {
	m := NewManager(t.TempDir())
	_, ok := m.NewestFile(".")
	assert.False(t, ok)

	_, ok = m.NewestFile("missing")
	assert.False(t, ok)
}
