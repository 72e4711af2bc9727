// Package reporoot locates the repository that holds the example registry.
package reporoot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMarkers identify a repository root, checked in order in each directory.
var DefaultMarkers = []string{"examples.yaml", ".git"}

// ErrNotFound is returned when no directory above start holds a marker.
var ErrNotFound = errors.New("repository root not found")

// Find walks upward from start and returns the first directory containing
// one of markers. A file path starts the search from its directory.
func Find(start string, markers ...string) (string, error) {
	if start == "" {
		return "", errors.New("start directory is empty")
	}
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(cur, marker)); err == nil {
				return cur, nil
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("%w above %s", ErrNotFound, abs)
		}
		cur = parent
	}
}

// Resolve returns path unchanged when absolute, otherwise joined to root.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
