package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/projdump/internal/commands"
	"github.com/temirov/projdump/internal/types"
)

func collectRecords(t *testing.T, options commands.ContentOptions) ([]types.FileRecord, error) {
	t.Helper()
	var records []types.FileRecord
	streamError := commands.StreamContent(options, func(record types.FileRecord) error {
		records = append(records, record)
		return nil
	})
	return records, streamError
}

func recordPaths(records []types.FileRecord) []string {
	paths := make([]string, 0, len(records))
	for _, record := range records {
		paths = append(paths, record.RelativePath)
	}
	return paths
}

func TestStreamContentWalksInLexicalOrder(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFixture(t, rootDirectory, map[string]string{
		"README.md":        "# readme",
		"a.go":             "package a\n",
		"b.txt":            "bee",
		"project_dump.txt": "previous dump",
		"sub/c.go":         "package sub\n",
		"vendor/x.go":      "package x\n",
		"vendor/keep/y.go": "package keep\n",
	})
	configuration := testConfiguration()
	configuration.ForceInclude = []string{"vendor/keep"}

	var skipped []string
	records, streamError := collectRecords(t, commands.ContentOptions{
		Root:          rootDirectory,
		Filter:        commands.NewFileFilter(configuration, nil),
		ExcludedPaths: []string{filepath.Join(rootDirectory, "project_dump.txt")},
		Skipped: func(relativePath string, reason commands.FilterReason) {
			skipped = append(skipped, relativePath+":"+string(reason))
		},
	})
	if streamError != nil {
		t.Fatalf("StreamContent error: %v", streamError)
	}

	expected := []string{"a.go", "b.txt", "sub/c.go", "vendor/keep/y.go"}
	actual := recordPaths(records)
	if strings.Join(actual, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
	if records[0].Content != "package a\n" || records[0].SizeBytes != int64(len("package a\n")) || records[0].Failed() {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if strings.Join(skipped, ",") != "README.md:extension,vendor/x.go:ignored_dir" {
		t.Fatalf("unexpected skipped paths: %v", skipped)
	}
}

func TestStreamContentNeverEntersIgnoredDirectory(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFixture(t, rootDirectory, map[string]string{
		"main.go":        "package main\n",
		".git/config.go": "secret",
	})
	lockedDirectory := filepath.Join(rootDirectory, ".git")
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		t.Fatalf("chmod: %v", chmodError)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	var warnings []string
	records, streamError := collectRecords(t, commands.ContentOptions{
		Root:   rootDirectory,
		Filter: commands.NewFileFilter(testConfiguration(), nil),
		Warn:   func(message string) { warnings = append(warnings, message) },
	})
	if streamError != nil {
		t.Fatalf("StreamContent error: %v", streamError)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(records) != 1 || records[0].RelativePath != "main.go" {
		t.Fatalf("unexpected records: %v", recordPaths(records))
	}
}

func TestStreamContentRecordsReadErrors(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFixture(t, rootDirectory, map[string]string{"ok.go": "package ok\n"})
	danglingPath := filepath.Join(rootDirectory, "dangling.go")
	if symlinkError := os.Symlink(filepath.Join(rootDirectory, "missing.go"), danglingPath); symlinkError != nil {
		t.Skipf("symlinks unavailable: %v", symlinkError)
	}

	var warnings []string
	records, streamError := collectRecords(t, commands.ContentOptions{
		Root:   rootDirectory,
		Filter: commands.NewFileFilter(testConfiguration(), nil),
		Warn:   func(message string) { warnings = append(warnings, message) },
	})
	if streamError != nil {
		t.Fatalf("StreamContent error: %v", streamError)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %v", recordPaths(records))
	}
	failedRecord := records[0]
	if failedRecord.RelativePath != "dangling.go" || !failedRecord.Failed() {
		t.Fatalf("expected failed dangling.go record, got %+v", failedRecord)
	}
	if !strings.HasPrefix(failedRecord.Content, "[Error reading file: ") {
		t.Fatalf("unexpected placeholder content %q", failedRecord.Content)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}

	_, strictError := collectRecords(t, commands.ContentOptions{
		Root:   rootDirectory,
		Filter: commands.NewFileFilter(testConfiguration(), nil),
		Strict: true,
	})
	if strictError == nil {
		t.Fatalf("expected strict mode to stop on the read error")
	}
}

func TestStreamContentReplacesInvalidUTF8(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFixture(t, rootDirectory, map[string]string{"bytes.txt": "ok\xffok"})
	records, streamError := collectRecords(t, commands.ContentOptions{
		Root:   rootDirectory,
		Filter: commands.NewFileFilter(testConfiguration(), nil),
	})
	if streamError != nil {
		t.Fatalf("StreamContent error: %v", streamError)
	}
	if len(records) != 1 || records[0].Content != "ok\uFFFDok" || records[0].SizeBytes != 5 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestStreamContentSkipsNamesWithLineBreaks(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFixture(t, rootDirectory, map[string]string{
		"main.go": "package main\n",
		"zz.go":   "package main\n",
	})
	brokenName := "bad\nname.go"
	if writeError := os.WriteFile(filepath.Join(rootDirectory, brokenName), []byte("package bad\n"), 0o600); writeError != nil {
		t.Skipf("file system rejects line breaks in names: %v", writeError)
	}

	var warnings []string
	var skipped []string
	records, streamError := collectRecords(t, commands.ContentOptions{
		Root:   rootDirectory,
		Filter: commands.NewFileFilter(testConfiguration(), nil),
		Warn: func(message string) {
			warnings = append(warnings, message)
		},
		Skipped: func(relativePath string, reason commands.FilterReason) {
			skipped = append(skipped, relativePath+":"+string(reason))
		},
	})
	if streamError != nil {
		t.Fatalf("StreamContent error: %v", streamError)
	}
	if strings.Join(recordPaths(records), ",") != "main.go,zz.go" {
		t.Fatalf("expected main.go and zz.go, got %v", recordPaths(records))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"bad\nname.go"`) {
		t.Fatalf("expected one line break warning, got %v", warnings)
	}
	if len(skipped) != 1 || skipped[0] != brokenName+":"+string(commands.FilterReasonInvalidPath) {
		t.Fatalf("unexpected skipped paths: %q", skipped)
	}
}
