// Package cli provides the projdump and projundump command line interfaces.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/projdump/internal/services/clipboard"
	"github.com/temirov/projdump/internal/services/stream"
	"github.com/temirov/projdump/internal/tokenizer"
	"github.com/temirov/projdump/internal/utils"
)

const (
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a dump target that is not a directory.
	errorNotDirectoryFormat = "'%s' is not a directory"
	// errorNotFileFormat reports a dump file path that is a directory.
	errorNotFileFormat = "'%s' is a directory, not a dump file"
)

// dependencies are the collaborators a command reaches outside the file system.
type dependencies struct {
	copier         clipboard.Copier
	counterFactory func(model string) (tokenizer.Counter, string, error)
	now            func() time.Time
}

func defaultDependencies() dependencies {
	return dependencies{
		copier:         clipboard.NewService(),
		counterFactory: tokenizer.NewCounter,
		now:            time.Now,
	}
}

// ExecuteDump runs the projdump application.
func ExecuteDump(logger *zap.Logger, level zap.AtomicLevel) error {
	return newDumpCommand(logger, level, defaultDependencies()).Execute()
}

// ExecuteUndump runs the projundump application.
func ExecuteUndump(logger *zap.Logger, level zap.AtomicLevel) error {
	return newUndumpCommand(logger, level).Execute()
}

func applySharedOptions(command *cobra.Command, options sharedOptions, level zap.AtomicLevel) bool {
	if options.showVersion {
		fmt.Fprintf(command.OutOrStdout(), versionTemplate, command.Name(), utils.GetApplicationVersion())
		return true
	}
	if options.verbose {
		level.SetLevel(zap.DebugLevel)
	}
	return false
}

// dispatchStream runs produce and consume concurrently over an unbuffered
// channel so that a single event is in flight at any time.
func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// resolveExistingPath converts inputPath to a clean absolute path and requires
// it to exist as a directory when wantDirectory is set, or as a file otherwise.
func resolveExistingPath(inputPath string, wantDirectory bool) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return "", fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if wantDirectory && !info.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	if !wantDirectory && info.IsDir() {
		return "", fmt.Errorf(errorNotFileFormat, inputPath)
	}
	return cleanPath, nil
}
