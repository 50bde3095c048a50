// Package utils contains general helper functions shared by the dump and undump tools.
package utils

import (
	"path"
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the slash-separated relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// NormalizeRelativePath converts a user or walk supplied path into the canonical
// slash-separated form used for comparisons: backslashes become slashes, a
// leading "./" is dropped and the result is cleaned. An empty input yields ".".
func NormalizeRelativePath(candidate string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(candidate), "\\", pathSegmentSeparator)
	if normalized == "" {
		return "."
	}
	return path.Clean(normalized)
}

// HasPathPrefix reports whether relativePath equals prefix or lies below it.
// Matching is done on whole path segments, so "src" matches "src/main.go"
// but not "srcgen/main.go". The prefix "." matches every path.
func HasPathPrefix(relativePath string, prefix string) bool {
	normalizedPath := NormalizeRelativePath(relativePath)
	normalizedPrefix := NormalizeRelativePath(prefix)
	if normalizedPrefix == "." {
		return true
	}
	if normalizedPath == normalizedPrefix {
		return true
	}
	return strings.HasPrefix(normalizedPath, normalizedPrefix+pathSegmentSeparator)
}

// PathSegments splits a slash-separated relative path into its components.
func PathSegments(relativePath string) []string {
	normalizedPath := NormalizeRelativePath(relativePath)
	if normalizedPath == "." {
		return nil
	}
	return strings.Split(normalizedPath, pathSegmentSeparator)
}

// IsWithinDirectory reports whether candidatePath resolves inside directoryPath.
func IsWithinDirectory(candidatePath string, directoryPath string) bool {
	relativePath, relErr := filepath.Rel(filepath.Clean(directoryPath), filepath.Clean(candidatePath))
	if relErr != nil {
		return false
	}
	if relativePath == "." {
		return true
	}
	return relativePath != ".." && !strings.HasPrefix(relativePath, ".."+string(filepath.Separator))
}
