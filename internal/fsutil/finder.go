// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GlobRecursive expands pattern relative to root and then applies the same
// base-name pattern inside every subdirectory below the pattern's directory,
// so "src/*.go" also matches "src/pkg/x.go". Results are absolute paths,
// sorted within each directory level, parents before children.
//
// Directories are descended with Lstat, so symlinked directories are not
// followed.
func GlobRecursive(root, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty glob pattern")
	}
	if filepath.IsAbs(pattern) {
		return globRecursive(filepath.Clean(pattern))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return globRecursive(filepath.Join(escapeMeta(abs), pattern))
}

// escapeMeta quotes glob metacharacters so that a literal directory can be
// used as a pattern prefix. Windows has no glob escape character.
func escapeMeta(path string) string {
	if runtime.GOOS == "windows" {
		return path
	}
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func globRecursive(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	dirs, err := filepath.Glob(filepath.Join(filepath.Dir(pattern), "*"))
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	base := filepath.Base(pattern)
	for _, dir := range dirs {
		info, err := os.Lstat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		sub, err := globRecursive(filepath.Join(escapeMeta(dir), base))
		if err != nil {
			return nil, err
		}
		matches = append(matches, sub...)
	}
	return matches, nil
}

// ExpandAll expands every pattern in order and concatenates the results.
// Overlapping patterns yield duplicate paths; callers that need a set must
// de-duplicate themselves.
func ExpandAll(root string, patterns []string) ([]string, error) {
	var all []string
	for _, p := range patterns {
		files, err := GlobRecursive(root, p)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}
