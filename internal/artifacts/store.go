// Package artifacts stores generated document sources on disk and exposes
// them by URL under the server's artifacts mount.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BasePath is the URL path prefix under which stored artifacts are served.
const BasePath = "/artifacts"

// Store writes artifact files into a single flat directory.
type Store struct {
	dir string
}

// NewStore creates the artifacts directory if needed and returns a Store over it.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifacts directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}

// Write stores content under name and returns the URL it is served at.
// Name must be a bare file name; path separators are rejected.
func (s *Store) Write(name string, content []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid artifact name: %q", name)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return BasePath + "/" + name, nil
}

// Path returns the on-disk path for a stored artifact name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Exists reports whether an artifact with the given name is stored.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// SafeName replaces characters unsuitable for file names with underscores.
func SafeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
