package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/projdump/internal/artifact"
	"github.com/temirov/projdump/internal/types"
	"github.com/temirov/projdump/internal/utils"
)

const (
	// WarningAccessPathFormat is used when a walked path cannot be accessed.
	WarningAccessPathFormat = "Warning: error accessing path %s: %v"
	// WarningFileReadFormat is used when an included file cannot be read.
	WarningFileReadFormat = "Warning: failed to read file %s: %v"
	// WarningSpecialFileFormat is used when an included path is not a regular file.
	WarningSpecialFileFormat = "Warning: skipping %s: not a regular file"
	// WarningLineBreakNameFormat is used when an included path cannot be framed as a record.
	WarningLineBreakNameFormat = "Warning: skipping %q: file names containing line breaks cannot be dumped"

	errorStrictReadFormat = "reading %s: %s"
	replacementCharacter  = "\uFFFD"
)

var (
	errNilFilter  = errors.New("content stream filter is nil")
	errNilVisitor = errors.New("content stream visitor is nil")
)

// ContentVisitor receives each FileRecord accepted during traversal.
type ContentVisitor func(types.FileRecord) error

// ContentOptions configures StreamContent.
type ContentOptions struct {
	Root   string
	Filter *FileFilter
	// ExcludedPaths are absolute paths never visited, such as the dump being written.
	ExcludedPaths []string
	// Strict stops the walk after the first record that could not be read.
	Strict bool
	Warn   func(message string)
	// Skipped receives every path the filter or the walker rejected.
	Skipped func(relativePath string, reason FilterReason)
}

// StreamContent walks options.Root depth-first in lexical order and invokes visitor
// for every file accepted by the filter. Ignored and force-excluded directories
// are pruned without being read. Files that cannot be read are still visited,
// carrying a placeholder and the read error.
func StreamContent(options ContentOptions, visitor ContentVisitor) error {
	if options.Filter == nil {
		return errNilFilter
	}
	if visitor == nil {
		return errNilVisitor
	}
	absoluteRootPath, absolutePathError := filepath.Abs(options.Root)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, options.Root, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)
	excluded := (&TreeBuilder{ExcludedPaths: options.ExcludedPaths}).excludedSet()

	warn := options.Warn
	if warn == nil {
		warn = func(string) {}
	}
	skipped := options.Skipped
	if skipped == nil {
		skipped = func(string, FilterReason) {}
	}

	visitRecord := func(record types.FileRecord) error {
		if record.Failed() {
			warn(fmt.Sprintf(WarningFileReadFormat, record.AbsolutePath, record.ReadError))
		}
		if visitError := visitor(record); visitError != nil {
			return visitError
		}
		if record.Failed() && options.Strict {
			return fmt.Errorf(errorStrictReadFormat, record.RelativePath, record.ReadError)
		}
		return nil
	}

	return filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if accessError != nil {
			if relativePath == "." {
				return accessError
			}
			if directoryEntry != nil && directoryEntry.IsDir() {
				warn(fmt.Sprintf(WarningAccessPathFormat, walkedPath, accessError))
				return filepath.SkipDir
			}
			if included, reason := options.Filter.Evaluate(relativePath); !included {
				skipped(relativePath, reason)
				return nil
			}
			if hasLineBreak(relativePath) {
				warn(fmt.Sprintf(WarningLineBreakNameFormat, relativePath))
				skipped(relativePath, FilterReasonInvalidPath)
				return nil
			}
			return visitRecord(failedRecord(walkedPath, relativePath, accessError))
		}

		if relativePath == "." {
			return nil
		}
		if _, isExcluded := excluded[walkedPath]; isExcluded {
			return nil
		}

		if directoryEntry.IsDir() {
			if options.Filter.IsForceExcluded(relativePath) {
				skipped(relativePath, FilterReasonForceExcluded)
				return filepath.SkipDir
			}
			if options.Filter.IsIgnoredDirectory(directoryEntry.Name()) && !options.Filter.ForceIncludeReaches(relativePath) {
				skipped(relativePath, FilterReasonIgnoredDirectory)
				return filepath.SkipDir
			}
			return nil
		}

		included, reason := options.Filter.Evaluate(relativePath)
		if !included {
			skipped(relativePath, reason)
			return nil
		}
		if hasLineBreak(relativePath) {
			warn(fmt.Sprintf(WarningLineBreakNameFormat, relativePath))
			skipped(relativePath, FilterReasonInvalidPath)
			return nil
		}
		entryType := directoryEntry.Type()
		if !entryType.IsRegular() && entryType&fs.ModeSymlink == 0 {
			warn(fmt.Sprintf(WarningSpecialFileFormat, walkedPath))
			return nil
		}
		return visitRecord(readFileRecord(walkedPath, relativePath))
	})
}

// hasLineBreak reports whether relativePath would break the record header line.
func hasLineBreak(relativePath string) bool {
	return strings.ContainsAny(relativePath, "\r\n")
}

// readFileRecord loads the whole file, replacing invalid UTF-8 sequences.
func readFileRecord(absolutePath string, relativePath string) types.FileRecord {
	// #nosec G304
	fileBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return failedRecord(absolutePath, relativePath, readError)
	}
	return types.FileRecord{
		FileEntry:    types.FileEntry{RelativePath: relativePath, Type: types.NodeTypeFile},
		AbsolutePath: absolutePath,
		Content:      strings.ToValidUTF8(string(fileBytes), replacementCharacter),
		SizeBytes:    int64(len(fileBytes)),
	}
}

func failedRecord(absolutePath string, relativePath string, cause error) types.FileRecord {
	return types.FileRecord{
		FileEntry:    types.FileEntry{RelativePath: relativePath, Type: types.NodeTypeFile},
		AbsolutePath: absolutePath,
		Content:      fmt.Sprintf(artifact.ReadErrorContentFormat, cause),
		ReadError:    cause.Error(),
	}
}
