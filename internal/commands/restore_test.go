package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/projdump/internal/artifact"
	"github.com/temirov/projdump/internal/commands"
)

func TestRestoreProjectCreatesNestedFiles(t *testing.T) {
	outputRoot := t.TempDir()
	document := artifact.Document{
		ProjectName: "demo",
		Records: []artifact.Record{
			{Path: "a/b/c.go", Content: "package b\n"},
			{Path: "top.txt", Content: "<<CONTENT_END>>\n"},
			{Path: "broken.go", Content: "[Error reading file: denied]", ReadError: "denied"},
			{Path: "../escape.go", Content: "x"},
			{Path: "/abs/escape.go", Content: "x"},
		},
	}
	existingPath := filepath.Join(outputRoot, "demo", "top.txt")
	if mkdirError := os.MkdirAll(filepath.Dir(existingPath), 0o755); mkdirError != nil {
		t.Fatalf("mkdir: %v", mkdirError)
	}
	if writeError := os.WriteFile(existingPath, []byte("old"), 0o644); writeError != nil {
		t.Fatalf("write: %v", writeError)
	}

	result, restoreError := commands.RestoreProject(document, commands.RestoreOptions{OutputRoot: outputRoot})
	if restoreError != nil {
		t.Fatalf("RestoreProject error: %v", restoreError)
	}
	if result.Written != 2 || result.Failed != 2 || result.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.ProjectDirectory != filepath.Join(outputRoot, "demo") {
		t.Fatalf("unexpected project directory %s", result.ProjectDirectory)
	}

	expectedFiles := map[string]string{
		"a/b/c.go": "package b\n",
		"top.txt":  "<<CONTENT_END>>\n",
	}
	for relativePath, expectedContent := range expectedFiles {
		data, readError := os.ReadFile(filepath.Join(result.ProjectDirectory, filepath.FromSlash(relativePath)))
		if readError != nil {
			t.Fatalf("read %s: %v", relativePath, readError)
		}
		if string(data) != expectedContent {
			t.Fatalf("content mismatch for %s: %q", relativePath, data)
		}
	}
	for _, unexpectedPath := range []string{
		filepath.Join(outputRoot, "escape.go"),
		filepath.Join(result.ProjectDirectory, "broken.go"),
	} {
		if _, statError := os.Stat(unexpectedPath); !os.IsNotExist(statError) {
			t.Fatalf("expected %s to be absent", unexpectedPath)
		}
	}
}

func TestRestoreProjectStrictStopsOnFirstFailure(t *testing.T) {
	document := artifact.Document{
		ProjectName: "demo",
		Records: []artifact.Record{
			{Path: "../escape.go", Content: "x"},
			{Path: "later.go", Content: "package later\n"},
		},
	}
	result, restoreError := commands.RestoreProject(document, commands.RestoreOptions{OutputRoot: t.TempDir(), Strict: true})
	if restoreError == nil {
		t.Fatalf("expected strict restore to fail")
	}
	if result.Written != 0 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
