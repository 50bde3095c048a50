package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/projdump/internal/config"
	"github.com/temirov/projdump/internal/output"
	"github.com/temirov/projdump/internal/services/clipboard"
	"github.com/temirov/projdump/internal/services/stream"
	"github.com/temirov/projdump/internal/tokenizer"
	"github.com/temirov/projdump/internal/types"
	"github.com/temirov/projdump/internal/utils"
)

const (
	dumpUse              = "projdump <project_dir>"
	dumpShortDescription = "dump a project into a single text file"
	dumpLongDescription  = `projdump writes the structure and the text contents of a project directory
into one delimited file that projundump can turn back into a directory tree.
Files are selected by the JSON configuration given with --config; when it is
missing or invalid the built-in defaults are used.`
	dumpUsageExample = `  # Dump the current directory with config.json
  projdump .

  # Dump with a custom configuration, then copy the result to the clipboard
  projdump --config dump.json --output context.txt --copy ./service

  # Write the default configuration for editing
  projdump --init-config --config dump.json`

	configFlagName            = "config"
	configFlagDescription     = "configuration file"
	outputFlagName            = "output"
	dumpOutputDescription     = "dump file to write"
	copyFlagName              = "copy"
	copyFlagDescription       = "copy the dump to the system clipboard"
	tokensFlagName            = "tokens"
	tokensFlagDescription     = "report the token count of the dump"
	modelFlagName             = "model"
	modelFlagDescription      = "tokenizer model to use for token counting"
	initConfigFlagName        = "init-config"
	initConfigFlagDescription = "write the default configuration to --config and exit"
	forceFlagName             = "force"
	forceFlagDescription      = "allow --init-config to overwrite an existing file"

	logConfigurationLoaded   = "Loaded configuration from %s"
	logConfigurationDefaults = "Using default configuration: %s"
	logConfigurationWritten  = "Wrote default configuration to %s"
	logDumpStarted           = "Dumping %s into %s"
	logDumpFinished          = "Project dumped successfully to %s"
	logDumpCounts            = "Included %d %s, %d %s with errors, total size %s"
	logTokenCount            = "Dump contains %d tokens (%s)"
	logCopied                = "Copied %s to the clipboard"
	warningTokenCountFormat  = "Warning: failed to count tokens for %s: %v"
	warningCopyFormat        = "Warning: failed to copy %s to the clipboard: %v"

	errorProjectDirRequired = "a project directory is required"
	errorCreateOutputFormat = "creating dump file %s: %w"
	errorCloseOutputFormat  = "closing dump file %s: %w"
)

type dumpOptions struct {
	shared     sharedOptions
	configPath string
	outputPath string
	copy       bool
	tokens     bool
	model      string
	initConfig bool
	force      bool
}

func newDumpCommand(logger *zap.Logger, level zap.AtomicLevel, deps dependencies) *cobra.Command {
	var options dumpOptions

	dumpCommand := &cobra.Command{
		Use:           dumpUse,
		Short:         dumpShortDescription,
		Long:          dumpLongDescription,
		Example:       dumpUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if applySharedOptions(command, options.shared, level) {
				return nil
			}
			if options.initConfig {
				writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Path: options.configPath, Force: options.force})
				if initError != nil {
					return initError
				}
				logger.Info(fmt.Sprintf(logConfigurationWritten, writtenPath))
				return nil
			}
			if len(arguments) == 0 {
				return errors.New(errorProjectDirRequired)
			}
			return runDump(command, arguments[0], options, logger, deps)
		},
	}

	flagSet := dumpCommand.Flags()
	flagSet.StringVar(&options.configPath, configFlagName, utils.DefaultConfigFileName, configFlagDescription)
	flagSet.StringVar(&options.outputPath, outputFlagName, utils.DefaultDumpFileName, dumpOutputDescription)
	flagSet.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerBooleanFlag(flagSet, &options.copy, copyFlagName, "", copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens, tokensFlagName, "", tokensFlagDescription)
	registerBooleanFlag(flagSet, &options.initConfig, initConfigFlagName, "", initConfigFlagDescription)
	registerBooleanFlag(flagSet, &options.force, forceFlagName, "", forceFlagDescription)
	registerSharedFlags(flagSet, &options.shared)
	return dumpCommand
}

func runDump(command *cobra.Command, projectArgument string, options dumpOptions, logger *zap.Logger, deps dependencies) error {
	projectDirectory, resolveError := resolveExistingPath(projectArgument, true)
	if resolveError != nil {
		return resolveError
	}
	outputPath, absolutePathError := filepath.Abs(options.outputPath)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, options.outputPath, absolutePathError)
	}

	loadResult := config.LoadConfiguration(options.configPath)
	if loadResult.UsedDefaults() {
		logger.Warn(fmt.Sprintf(logConfigurationDefaults, loadResult.FallbackReason))
	} else {
		logger.Info(fmt.Sprintf(logConfigurationLoaded, loadResult.SourcePath))
	}

	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}
	logger.Info(fmt.Sprintf(logDumpStarted, projectDirectory, outputPath))

	renderers := []output.StreamRenderer{
		output.NewLogStreamRenderer(logger),
		output.NewArtifactStreamRenderer(outputFile),
	}
	var summary types.DumpSummary
	streamOptions := stream.DumpOptions{
		Root:          projectDirectory,
		Configuration: loadResult.Configuration,
		ConfigSource:  loadResult.Annotation(),
		OutputPath:    outputPath,
		Strict:        options.shared.strict,
		GeneratedAt:   deps.now(),
	}
	dispatchError := dispatchStream(
		command.Context(),
		func(ctx context.Context, events chan<- stream.Event) error {
			return stream.StreamDump(ctx, streamOptions, events)
		},
		func(event stream.Event) error {
			if event.Kind == stream.EventKindSummary && event.Summary != nil {
				summary = *event.Summary
			}
			for _, renderer := range renderers {
				if err := renderer.Handle(event); err != nil {
					return err
				}
			}
			return nil
		},
	)
	for _, renderer := range renderers {
		if flushError := renderer.Flush(); flushError != nil && dispatchError == nil {
			dispatchError = flushError
		}
	}
	if closeError := outputFile.Close(); closeError != nil && dispatchError == nil {
		dispatchError = fmt.Errorf(errorCloseOutputFormat, outputPath, closeError)
	}
	if dispatchError != nil {
		return dispatchError
	}

	logger.Info(fmt.Sprintf(logDumpFinished, outputPath))
	logger.Info(fmt.Sprintf(logDumpCounts,
		summary.IncludedFiles, utils.Pluralize(summary.IncludedFiles, "file", "files"),
		summary.FailedFiles, utils.Pluralize(summary.FailedFiles, "file", "files"),
		utils.FormatFileSize(summary.TotalBytes)))

	if options.tokens {
		reportTokenCount(outputPath, options.model, logger, deps)
	}
	if options.copy {
		if copyError := clipboard.CopyFile(deps.copier, outputPath); copyError != nil {
			logger.Warn(fmt.Sprintf(warningCopyFormat, outputPath, copyError))
		} else {
			logger.Info(fmt.Sprintf(logCopied, outputPath))
		}
	}
	return nil
}

func reportTokenCount(outputPath string, model string, logger *zap.Logger, deps dependencies) {
	counter, encodingName, counterError := deps.counterFactory(model)
	if counterError != nil {
		logger.Warn(fmt.Sprintf(warningTokenCountFormat, outputPath, counterError))
		return
	}
	tokens, countError := tokenizer.CountFile(counter, outputPath)
	if countError != nil {
		logger.Warn(fmt.Sprintf(warningTokenCountFormat, outputPath, countError))
		return
	}
	logger.Info(fmt.Sprintf(logTokenCount, tokens, encodingName))
}
