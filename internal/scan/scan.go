// Package scan enumerates the input files for a conversion run.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Files resolves the input path to the list of files to convert. A
// plain file yields itself; a directory yields its immediate entries,
// optionally filtered by the extension allow-list (lowercase, no
// leading dot). The scan is non-recursive and preserves
// directory-listing order.
func Files(input string, extensions []string) ([]string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolving input path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading input path: %w", err)
	}

	if !info.IsDir() {
		return []string{abs}, nil
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("listing directory %s: %w", abs, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !matchesExtension(entry.Name(), extensions) {
			continue
		}
		files = append(files, filepath.Join(abs, entry.Name()))
	}

	return files, nil
}

// matchesExtension reports whether name passes the allow-list. An
// empty list accepts everything.
func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
