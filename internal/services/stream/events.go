package stream

import (
	"time"

	"github.com/temirov/projdump/internal/commands"
	"github.com/temirov/projdump/internal/types"
)

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindTree    EventKind = "tree"
	EventKindFile    EventKind = "file"
	EventKindSkipped EventKind = "skipped"
	EventKindWarning EventKind = "warning"
	EventKindSummary EventKind = "summary"
	EventKindError   EventKind = "error"
	EventKindDone    EventKind = "done"
)

// Event is one step of a dump run, delivered in the order the artifact is written.
type Event struct {
	Kind      EventKind
	Command   string
	Path      string
	EmittedAt time.Time

	Header  *HeaderEvent
	Tree    *types.TreeNode
	File    *types.FileRecord
	Skip    *SkipEvent
	Summary *types.DumpSummary
	Message *LogEvent
	Err     *ErrorEvent
}

// HeaderEvent carries the project information block.
type HeaderEvent struct {
	ProjectPath  string
	ConfigSource string
	GeneratedAt  time.Time
}

type SkipEvent struct {
	Reason commands.FilterReason
}

type LogEvent struct {
	Message string
}

type ErrorEvent struct {
	Message string
}
