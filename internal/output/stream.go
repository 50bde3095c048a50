// Package output renders dump events into the artifact and the log.
package output

import (
	"github.com/temirov/projdump/internal/services/stream"
)

type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
