package clipboard_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/projdump/internal/services/clipboard"
)

type recordingCopier struct {
	copied string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = text
	return copier.err
}

func TestCopyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project_dump.txt")
	if err := os.WriteFile(path, []byte("<<PROJECT_INFO>>\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	copier := &recordingCopier{}
	if err := clipboard.CopyFile(copier, path); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	if copier.copied != "<<PROJECT_INFO>>\n" {
		t.Fatalf("unexpected clipboard contents %q", copier.copied)
	}

	failing := &recordingCopier{err: errors.New("boom")}
	if err := clipboard.CopyFile(failing, path); err == nil {
		t.Fatalf("expected copy error")
	}
	if err := clipboard.CopyFile(copier, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected read error")
	}
}
