package commands

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/projdump/internal/config"
	"github.com/temirov/projdump/internal/utils"
)

// FilterReason names the rule that decided a path's inclusion.
type FilterReason string

const (
	FilterReasonDuplicate        FilterReason = "duplicate"
	FilterReasonForceExcluded    FilterReason = "force_exclude"
	FilterReasonForceIncluded    FilterReason = "force_include"
	FilterReasonExtension        FilterReason = "extension"
	FilterReasonIgnoredDirectory FilterReason = "ignored_dir"
	FilterReasonGitignore        FilterReason = "gitignore"
	FilterReasonAccepted         FilterReason = "accepted"
	FilterReasonInvalidPath      FilterReason = "invalid_path"
)

// FileFilter decides which files enter a dump. A FileFilter belongs to a single
// run: it remembers every path it accepted and rejects repeats.
type FileFilter struct {
	allowedExtensions  map[string]struct{}
	allowedNames       map[string]struct{}
	ignoredDirectories map[string]struct{}
	forceInclude       []string
	forceExclude       []string
	gitIgnore          *ignore.GitIgnore
	included           map[string]struct{}
}

// NewFileFilter builds a filter from configuration. gitIgnore may be nil.
func NewFileFilter(configuration config.Configuration, gitIgnore *ignore.GitIgnore) *FileFilter {
	filter := &FileFilter{
		allowedExtensions:  map[string]struct{}{},
		allowedNames:       map[string]struct{}{},
		ignoredDirectories: map[string]struct{}{},
		gitIgnore:          gitIgnore,
		included:           map[string]struct{}{},
	}
	for _, entry := range configuration.AllowedExtensions {
		normalizedEntry := config.NormalizeExtension(entry)
		if normalizedEntry == "" {
			continue
		}
		if strings.HasPrefix(normalizedEntry, ".") {
			filter.allowedExtensions[normalizedEntry] = struct{}{}
		} else {
			filter.allowedNames[normalizedEntry] = struct{}{}
		}
	}
	for _, directoryName := range configuration.IgnoredDirs {
		if trimmedName := strings.TrimSpace(directoryName); trimmedName != "" {
			filter.ignoredDirectories[trimmedName] = struct{}{}
		}
	}
	filter.forceInclude = normalizedPrefixes(configuration.ForceInclude)
	filter.forceExclude = normalizedPrefixes(configuration.ForceExclude)
	return filter
}

// LoadGitIgnore compiles the .gitignore at the root of rootDirectoryPath.
// It returns nil without error when the file does not exist.
func LoadGitIgnore(rootDirectoryPath string) (*ignore.GitIgnore, error) {
	gitIgnorePath := filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
	compiled, compileError := ignore.CompileIgnoreFile(gitIgnorePath)
	if compileError != nil {
		if errors.Is(compileError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, compileError
	}
	return compiled, nil
}

// Evaluate applies the inclusion rules in order and reports the deciding rule.
// An accepted path is remembered so that a second evaluation rejects it.
func (filter *FileFilter) Evaluate(relativePath string) (bool, FilterReason) {
	normalizedPath := utils.NormalizeRelativePath(relativePath)

	if _, seen := filter.included[normalizedPath]; seen {
		return false, FilterReasonDuplicate
	}
	if filter.IsForceExcluded(normalizedPath) {
		return false, FilterReasonForceExcluded
	}
	if matchesAnyPrefix(normalizedPath, filter.forceInclude) {
		filter.included[normalizedPath] = struct{}{}
		return true, FilterReasonForceIncluded
	}
	if !filter.allowsName(path.Base(normalizedPath)) {
		return false, FilterReasonExtension
	}
	segments := utils.PathSegments(normalizedPath)
	for _, directoryName := range segments[:max(len(segments)-1, 0)] {
		if filter.IsIgnoredDirectory(directoryName) {
			return false, FilterReasonIgnoredDirectory
		}
	}
	if filter.gitIgnore != nil && filter.gitIgnore.MatchesPath(normalizedPath) {
		return false, FilterReasonGitignore
	}
	filter.included[normalizedPath] = struct{}{}
	return true, FilterReasonAccepted
}

// IsIgnoredDirectory reports whether a directory name is listed in ignored_dirs.
func (filter *FileFilter) IsIgnoredDirectory(directoryName string) bool {
	_, ignored := filter.ignoredDirectories[directoryName]
	return ignored
}

// IsForceExcluded reports whether relativePath lies under a force_exclude prefix.
func (filter *FileFilter) IsForceExcluded(relativePath string) bool {
	return matchesAnyPrefix(relativePath, filter.forceExclude)
}

// ForceIncludeReaches reports whether some force_include prefix equals, contains
// or lies below the directory at relativeDirectory. The walker uses it to keep
// descending into ignored directories that hold force-included files.
func (filter *FileFilter) ForceIncludeReaches(relativeDirectory string) bool {
	for _, prefix := range filter.forceInclude {
		if utils.HasPathPrefix(relativeDirectory, prefix) || utils.HasPathPrefix(prefix, relativeDirectory) {
			return true
		}
	}
	return false
}

// IncludedCount returns how many distinct paths the filter has accepted.
func (filter *FileFilter) IncludedCount() int {
	return len(filter.included)
}

func (filter *FileFilter) allowsName(baseName string) bool {
	if _, allowed := filter.allowedNames[baseName]; allowed {
		return true
	}
	extension := strings.ToLower(path.Ext(baseName))
	if extension == "" {
		return false
	}
	_, allowed := filter.allowedExtensions[extension]
	return allowed
}

func matchesAnyPrefix(relativePath string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if utils.HasPathPrefix(relativePath, prefix) {
			return true
		}
	}
	return false
}

func normalizedPrefixes(prefixes []string) []string {
	result := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		if strings.TrimSpace(prefix) == "" {
			continue
		}
		result = append(result, utils.NormalizeRelativePath(prefix))
	}
	return utils.DeduplicatePatterns(result)
}
