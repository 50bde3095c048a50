package output

import (
	"errors"
	"io"

	"github.com/temirov/projdump/internal/artifact"
	"github.com/temirov/projdump/internal/services/stream"
)

var errHeaderMissing = errors.New("output: artifact event received before start")

type artifactStreamRenderer struct {
	writer  *artifact.Writer
	started bool
}

// NewArtifactStreamRenderer writes dump events to destination in the artifact format.
func NewArtifactStreamRenderer(destination io.Writer) StreamRenderer {
	return &artifactStreamRenderer{writer: artifact.NewWriter(destination)}
}

func (renderer *artifactStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		if event.Header == nil {
			return nil
		}
		renderer.started = true
		return renderer.writer.WriteHeader(artifact.Header{
			ProjectPath:  event.Header.ProjectPath,
			ConfigSource: event.Header.ConfigSource,
			GeneratedAt:  event.Header.GeneratedAt,
		})
	case stream.EventKindTree:
		if !renderer.started {
			return errHeaderMissing
		}
		return renderer.writer.WriteTree(TreeLines(event.Tree))
	case stream.EventKindFile:
		if !renderer.started {
			return errHeaderMissing
		}
		if event.File == nil {
			return nil
		}
		return renderer.writer.WriteRecord(artifact.Record{
			Path:      event.File.RelativePath,
			Content:   event.File.Content,
			ReadError: event.File.ReadError,
		})
	case stream.EventKindSummary:
		if !renderer.started {
			return errHeaderMissing
		}
		if event.Summary == nil {
			return nil
		}
		return renderer.writer.WriteSummary(*event.Summary)
	case stream.EventKindDone:
		return renderer.writer.Flush()
	default:
		return nil
	}
}

func (renderer *artifactStreamRenderer) Flush() error {
	return renderer.writer.Flush()
}
