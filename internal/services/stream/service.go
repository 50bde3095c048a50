// Package stream turns a dump run into an ordered sequence of events.
package stream

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/projdump/internal/commands"
	"github.com/temirov/projdump/internal/config"
	"github.com/temirov/projdump/internal/types"
	"github.com/temirov/projdump/internal/utils"
)

const (
	warningGitIgnoreFormat = "Warning: ignoring unreadable %s: %v"
	errorRootNotDirFormat  = "stream: %s is not a directory"
	errorRootStatFormat    = "stream: %s: %w"
)

var (
	errNilChannel = errors.New("stream: event channel is nil")
	errEmptyRoot  = errors.New("stream: dump root path is empty")
)

// DumpOptions configures StreamDump.
type DumpOptions struct {
	Root          string
	Configuration config.Configuration
	// ConfigSource is recorded verbatim in the project information block.
	ConfigSource string
	// OutputPath is the artifact being written; it is left out of the tree and the contents.
	OutputPath  string
	Strict      bool
	GeneratedAt time.Time
}

type emitter struct {
	ctx     context.Context
	out     chan<- Event
	command string
}

func newEmitter(ctx context.Context, out chan<- Event, command string) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out, command: command}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return errNilChannel
	}
	if event.Command == "" {
		event.Command = e.command
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) warn(path, message string) {
	trimmed := strings.TrimRight(message, "\n")
	if trimmed == "" {
		return
	}
	_ = e.send(Event{
		Kind:    EventKindWarning,
		Path:    path,
		Message: &LogEvent{Message: trimmed},
	})
}

func (e *emitter) fail(path string, err error) error {
	_ = e.send(Event{Kind: EventKindError, Path: path, Err: &ErrorEvent{Message: err.Error()}})
	return err
}

type summaryTracker struct {
	summary types.DumpSummary
}

func (tracker *summaryTracker) add(record types.FileRecord) {
	if record.Failed() {
		tracker.summary.FailedFiles++
		return
	}
	tracker.summary.IncludedFiles++
	tracker.summary.TotalBytes += record.SizeBytes
}

// StreamDump walks opts.Root and emits, in order: start, tree, one file event
// per accepted file, summary and done. Warnings and skipped paths are
// interleaved as they occur. The function returns after the done event or the
// first error; it never closes out.
func StreamDump(ctx context.Context, opts DumpOptions, out chan<- Event) error {
	if opts.Root == "" {
		return errEmptyRoot
	}
	absoluteRoot, absoluteError := filepath.Abs(opts.Root)
	if absoluteError != nil {
		return fmt.Errorf(errorRootStatFormat, opts.Root, absoluteError)
	}
	info, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return fmt.Errorf(errorRootStatFormat, opts.Root, statError)
	}
	if !info.IsDir() {
		return fmt.Errorf(errorRootNotDirFormat, opts.Root)
	}

	emitter := newEmitter(ctx, out, types.CommandDump)
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	if err := emitter.send(Event{
		Kind: EventKindStart,
		Path: absoluteRoot,
		Header: &HeaderEvent{
			ProjectPath:  absoluteRoot,
			ConfigSource: opts.ConfigSource,
			GeneratedAt:  generatedAt,
		},
	}); err != nil {
		return err
	}

	var excludedPaths []string
	if opts.OutputPath != "" {
		excludedPaths = append(excludedPaths, opts.OutputPath)
	}
	warn := func(message string) { emitter.warn(absoluteRoot, message) }

	treeBuilder := &commands.TreeBuilder{
		IgnoredDirectories: opts.Configuration.IgnoredDirs,
		ExcludedPaths:      excludedPaths,
		Warn:               warn,
	}
	tree, treeError := treeBuilder.GetTreeData(absoluteRoot)
	if treeError != nil {
		return emitter.fail(absoluteRoot, treeError)
	}
	if err := emitter.send(Event{Kind: EventKindTree, Path: absoluteRoot, Tree: tree}); err != nil {
		return err
	}

	var gitIgnore *ignore.GitIgnore
	if opts.Configuration.RespectGitignore {
		compiled, loadError := commands.LoadGitIgnore(absoluteRoot)
		if loadError != nil {
			warn(fmt.Sprintf(warningGitIgnoreFormat, filepath.Join(absoluteRoot, utils.GitIgnoreFileName), loadError))
		}
		gitIgnore = compiled
	}

	tracker := &summaryTracker{}
	contentOptions := commands.ContentOptions{
		Root:          absoluteRoot,
		Filter:        commands.NewFileFilter(opts.Configuration, gitIgnore),
		ExcludedPaths: excludedPaths,
		Strict:        opts.Strict,
		Warn:          warn,
		Skipped: func(relativePath string, reason commands.FilterReason) {
			_ = emitter.send(Event{Kind: EventKindSkipped, Path: relativePath, Skip: &SkipEvent{Reason: reason}})
		},
	}
	visit := func(record types.FileRecord) error {
		tracker.add(record)
		copied := record
		return emitter.send(Event{Kind: EventKindFile, Path: record.RelativePath, File: &copied})
	}
	if streamError := commands.StreamContent(contentOptions, visit); streamError != nil {
		return emitter.fail(absoluteRoot, streamError)
	}

	summary := tracker.summary
	if err := emitter.send(Event{Kind: EventKindSummary, Path: absoluteRoot, Summary: &summary}); err != nil {
		return err
	}
	return emitter.send(Event{Kind: EventKindDone, Path: absoluteRoot})
}
