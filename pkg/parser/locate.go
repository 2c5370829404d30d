package parser

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// NormalizeExtensions lowercases extensions and drops blanks and duplicates,
// keeping the first-seen order.
func NormalizeExtensions(extensions []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		result = append(result, ext)
	}

	return result
}

// MatchesExtension reports whether name ends with any of the extensions,
// ignoring case. Extensions are expected to be normalized.
func MatchesExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// LocateFiles recursively lists the regular files under baseDir whose name
// ends with one of the extensions. The result is sorted for deterministic ordering.
func LocateFiles(fsys FileSystem, baseDir string, extensions []string) ([]string, error) {
	exts := NormalizeExtensions(extensions)
	var result []string

	err := fsys.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if MatchesExtension(d.Name(), exts) {
			result = append(result, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", baseDir, err)
	}

	sort.Strings(result)

	return result, nil
}
