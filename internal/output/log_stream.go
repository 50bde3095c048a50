package output

import (
	"go.uber.org/zap"

	"github.com/temirov/projdump/internal/services/stream"
)

const (
	logSkippedPath = "Skipped"
	logFieldPath   = "path"
	logFieldReason = "reason"
)

type logStreamRenderer struct {
	logger *zap.Logger
}

// NewLogStreamRenderer reports warnings and, at debug level, every skipped path.
func NewLogStreamRenderer(logger *zap.Logger) StreamRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logStreamRenderer{logger: logger}
}

func (renderer *logStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindWarning:
		if event.Message != nil {
			renderer.logger.Warn(event.Message.Message)
		}
	case stream.EventKindSkipped:
		if event.Skip != nil {
			renderer.logger.Debug(logSkippedPath, zap.String(logFieldPath, event.Path), zap.String(logFieldReason, string(event.Skip.Reason)))
		}
	case stream.EventKindError:
		if event.Err != nil {
			renderer.logger.Error(event.Err.Message)
		}
	}
	return nil
}

func (renderer *logStreamRenderer) Flush() error {
	return nil
}
