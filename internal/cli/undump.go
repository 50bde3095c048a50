package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/projdump/internal/artifact"
	"github.com/temirov/projdump/internal/commands"
	"github.com/temirov/projdump/internal/utils"
)

const (
	undumpUse              = "projundump"
	undumpShortDescription = "recreate a project from a projdump file"
	undumpLongDescription  = `projundump reads a file written by projdump and recreates every dumped file
below <output>/<project name>, creating directories as needed and overwriting
existing files.`
	undumpUsageExample = `  # Restore project_dump.txt into the current directory
  projundump

  # Restore a specific dump into /tmp and list every created file
  projundump -d context.txt -o /tmp -v`

	dumpFileFlagName        = "dump-file"
	dumpFileFlagShorthand   = "d"
	dumpFileFlagDescription = "dump file to read"
	outputFlagShorthand     = "o"
	undumpOutputDescription = "directory that receives the recreated project"
	defaultUndumpOutput     = "."

	logUndumpStarted    = "Recreating project %s from %s"
	logMissingHeader    = "Warning: no project information found, using %s"
	logNoRecords        = "Warning: no file records found in %s"
	logTruncatedDump    = "Warning: dump declares %d files but only %d were found"
	logUndumpFinished   = "Recreated %d files in %s seconds."
	logUndumpSkipped    = "Skipped %d %s recorded with read errors"
	logUndumpFailed     = "Failed to recreate %d %s"
	logProjectRecreated = "Project recreated in %s"
)

type undumpOptions struct {
	shared     sharedOptions
	dumpFile   string
	outputRoot string
}

func newUndumpCommand(logger *zap.Logger, level zap.AtomicLevel) *cobra.Command {
	var options undumpOptions

	undumpCommand := &cobra.Command{
		Use:           undumpUse,
		Short:         undumpShortDescription,
		Long:          undumpLongDescription,
		Example:       undumpUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if applySharedOptions(command, options.shared, level) {
				return nil
			}
			return runUndump(options, logger)
		},
	}

	flagSet := undumpCommand.Flags()
	flagSet.StringVarP(&options.dumpFile, dumpFileFlagName, dumpFileFlagShorthand, utils.DefaultDumpFileName, dumpFileFlagDescription)
	flagSet.StringVarP(&options.outputRoot, outputFlagName, outputFlagShorthand, defaultUndumpOutput, undumpOutputDescription)
	registerSharedFlags(flagSet, &options.shared)
	return undumpCommand
}

func runUndump(options undumpOptions, logger *zap.Logger) error {
	dumpPath, resolveError := resolveExistingPath(options.dumpFile, false)
	if resolveError != nil {
		return resolveError
	}
	document, parseError := artifact.ParseFile(dumpPath)
	if parseError != nil {
		return parseError
	}

	if !document.HasHeader {
		logger.Warn(fmt.Sprintf(logMissingHeader, document.ProjectName))
	}
	if len(document.Records) == 0 {
		logger.Warn(fmt.Sprintf(logNoRecords, dumpPath))
	}
	if document.Truncated() {
		logger.Warn(fmt.Sprintf(logTruncatedDump, document.DeclaredFiles, len(document.Records)))
	}
	logger.Info(fmt.Sprintf(logUndumpStarted, document.ProjectName, dumpPath))

	result, restoreError := commands.RestoreProject(document, commands.RestoreOptions{
		OutputRoot: options.outputRoot,
		Strict:     options.shared.strict,
		Logger:     logger,
	})
	if restoreError != nil {
		return restoreError
	}

	if result.Skipped > 0 {
		logger.Warn(fmt.Sprintf(logUndumpSkipped, result.Skipped, utils.Pluralize(result.Skipped, "file", "files")))
	}
	if result.Failed > 0 {
		logger.Warn(fmt.Sprintf(logUndumpFailed, result.Failed, utils.Pluralize(result.Failed, "file", "files")))
	}
	logger.Info(fmt.Sprintf(logUndumpFinished, result.Written, utils.FormatSeconds(result.Duration)))
	logger.Info(fmt.Sprintf(logProjectRecreated, result.ProjectDirectory))
	return nil
}
