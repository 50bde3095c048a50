// Package clipboard copies a finished dump to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

var errUnsupported = errors.New("clipboard: no clipboard utility available on this system")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}

// CopyFile places the contents of the file at path on the clipboard through copier.
func CopyFile(copier Copier, path string) error {
	// #nosec G304
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("clipboard: read %s: %w", path, readErr)
	}
	if copyErr := copier.Copy(string(data)); copyErr != nil {
		return fmt.Errorf("clipboard: copy %s: %w", path, copyErr)
	}
	return nil
}

var _ Copier = (*Service)(nil)
