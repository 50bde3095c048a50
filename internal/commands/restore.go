package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/projdump/internal/artifact"
	"github.com/temirov/projdump/internal/utils"
)

const (
	restoreDirectoryPermissions os.FileMode = 0o755
	restoreFilePermissions      os.FileMode = 0o644

	logCreatedFile         = "Created file"
	logSkippedReadError    = "Skipping file recorded with a read error"
	logRestoreFailed       = "Failed to restore file"
	logFieldPath           = "path"
	logFieldReason         = "reason"
	errorCreateProjectDir  = "creating project directory %s: %w"
	errorEscapingPath      = "path %s resolves outside %s"
	errorCreateParentDir   = "creating directory for %s: %w"
	errorWriteRestoredFile = "writing %s: %w"
	errorStrictRestore     = "restoring %s: %w"
)

// RestoreOptions configures RestoreProject.
type RestoreOptions struct {
	// OutputRoot is the directory that receives the project directory.
	OutputRoot string
	// Strict aborts on the first record that cannot be written.
	Strict bool
	Logger *zap.Logger
}

// RestoreResult reports the outcome of RestoreProject.
type RestoreResult struct {
	ProjectDirectory string
	Written          int
	Failed           int
	Skipped          int
	Duration         time.Duration
}

// RestoreProject recreates every record of document under
// <OutputRoot>/<ProjectName>, creating parent directories as needed and
// overwriting existing files. Records carrying a read error are skipped.
// Paths that are absolute or escape the project directory count as failures.
func RestoreProject(document artifact.Document, options RestoreOptions) (RestoreResult, error) {
	startTime := time.Now()
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	outputRoot := options.OutputRoot
	if outputRoot == "" {
		outputRoot = "."
	}
	absoluteOutputRoot, absolutePathError := filepath.Abs(outputRoot)
	if absolutePathError != nil {
		return RestoreResult{}, fmt.Errorf(errorAbsolutePathFormat, outputRoot, absolutePathError)
	}
	projectDirectory := filepath.Join(absoluteOutputRoot, document.ProjectName)
	result := RestoreResult{ProjectDirectory: projectDirectory}
	if mkdirError := os.MkdirAll(projectDirectory, restoreDirectoryPermissions); mkdirError != nil {
		return result, fmt.Errorf(errorCreateProjectDir, projectDirectory, mkdirError)
	}

	for _, record := range document.Records {
		if record.Failed() {
			logger.Warn(logSkippedReadError, zap.String(logFieldPath, record.Path), zap.String(logFieldReason, record.ReadError))
			result.Skipped++
			continue
		}
		targetPath, writeError := restoreRecord(projectDirectory, record)
		if writeError != nil {
			result.Failed++
			logger.Error(logRestoreFailed, zap.String(logFieldPath, record.Path), zap.Error(writeError))
			if options.Strict {
				result.Duration = time.Since(startTime)
				return result, fmt.Errorf(errorStrictRestore, record.Path, writeError)
			}
			continue
		}
		result.Written++
		logger.Debug(logCreatedFile, zap.String(logFieldPath, targetPath))
	}

	result.Duration = time.Since(startTime)
	return result, nil
}

func restoreRecord(projectDirectory string, record artifact.Record) (string, error) {
	nativePath := filepath.FromSlash(record.Path)
	if filepath.IsAbs(nativePath) || filepath.VolumeName(nativePath) != "" || filepath.IsAbs(record.Path) {
		return "", fmt.Errorf(errorEscapingPath, record.Path, projectDirectory)
	}
	targetPath := filepath.Join(projectDirectory, nativePath)
	if targetPath == projectDirectory || !utils.IsWithinDirectory(targetPath, projectDirectory) {
		return "", fmt.Errorf(errorEscapingPath, record.Path, projectDirectory)
	}
	if mkdirError := os.MkdirAll(filepath.Dir(targetPath), restoreDirectoryPermissions); mkdirError != nil {
		return "", fmt.Errorf(errorCreateParentDir, record.Path, mkdirError)
	}
	if writeError := os.WriteFile(targetPath, []byte(record.Content), restoreFilePermissions); writeError != nil {
		return "", fmt.Errorf(errorWriteRestoredFile, targetPath, writeError)
	}
	return targetPath, nil
}
