package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsExcludedPath reports whether path matches one of the exclude globs.
// Patterns are matched against the slash separated path; a pattern also
// excludes everything below a matching directory.
func (c *Config) IsExcludedPath(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	slashed = strings.TrimPrefix(slashed, "./")

	for _, pattern := range c.ExcludePaths {
		if matchGlob(pattern, slashed) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, path string) bool {
	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	// Also test every parent directory so "vendor/**" style and "**/.*"
	// patterns exclude nested files.
	for dir := filepath.ToSlash(filepath.Dir(path)); dir != "." && dir != "/"; dir = filepath.ToSlash(filepath.Dir(dir)) {
		if ok, err := doublestar.Match(pattern, dir); err == nil && ok {
			return true
		}
	}
	return false
}

// IsMarkdownFile reports whether path has one of the Markdown extensions.
// The comparison ignores case.
func (c *Config) IsMarkdownFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(c.MarkdownFileExtensions, func(candidate string) bool {
		return strings.EqualFold(strings.TrimPrefix(candidate, "."), ext)
	})
}
