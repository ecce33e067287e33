// Package files provides the file management operations used by the
// download handler and the artifact store.
package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Manager provides file operations resolved against a base directory.
type Manager struct {
	baseDir string
}

// NewManager creates a manager rooted at baseDir.
func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Resolve returns the absolute form of a path. Relative paths are
// resolved against the manager's base directory.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// FileExists checks if a file exists at the given path.
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(m.Resolve(path))
	return err == nil
}

// EnsureDirectory creates a directory if it doesn't exist.
func (m *Manager) EnsureDirectory(path string) error {
	return os.MkdirAll(m.Resolve(path), 0755)
}

// MoveFile moves a file, creating the destination directory as needed.
func (m *Manager) MoveFile(src, dst string) error {
	srcPath := m.Resolve(src)
	dstPath := m.Resolve(dst)

	slog.Debug("Moving file",
		slog.String("src", srcPath),
		slog.String("dst", dstPath))

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	return os.Rename(srcPath, dstPath)
}

// WriteFile writes data to a file, creating its directory as needed.
func (m *Manager) WriteFile(path string, data []byte) error {
	fullPath := m.Resolve(path)

	slog.Debug("Writing file",
		slog.String("path", fullPath),
		slog.Int("size_bytes", len(data)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(fullPath, data, 0644)
}

// ReadFile reads the entire content of a file.
func (m *Manager) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(m.Resolve(path))
}

// NewestFile returns the name of the most recently modified regular
// file in dir, or ok=false when the directory is empty or unreadable.
func (m *Manager) NewestFile(dir string) (name string, ok bool) {
	entries, err := os.ReadDir(m.Resolve(dir))
	if err != nil {
		return "", false
	}

	var newest time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if name == "" || info.ModTime().After(newest) {
			name = entry.Name()
			newest = info.ModTime()
		}
	}
	return name, name != ""
}
