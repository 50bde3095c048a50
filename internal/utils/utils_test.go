package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/projdump/internal/utils"
)

// textFileName defines the name of the text file used in tests.
const textFileName = "sample.txt"

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected length %d, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %s at position %d, got %s", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

// TestRelativePathOrSelf verifies relative path calculations.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	nestedPath := filepath.Join(temporaryRoot, "nested", textFileName)
	if mkdirError := os.MkdirAll(filepath.Dir(nestedPath), 0o755); mkdirError != nil {
		testingInstance.Fatalf("failed to create directory: %v", mkdirError)
	}
	if creationError := os.WriteFile(nestedPath, []byte("content"), 0o600); creationError != nil {
		testingInstance.Fatalf("failed to create file: %v", creationError)
	}
	testCases := []struct {
		testName string
		fullPath string
		expected string
	}{
		{testName: "root path returns dot", fullPath: temporaryRoot, expected: "."},
		{testName: "nested path uses slashes", fullPath: nestedPath, expected: "nested/" + textFileName},
	}
	for index, testCase := range testCases {
		actual := utils.RelativePathOrSelf(testCase.fullPath, temporaryRoot)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

func TestHasPathPrefix(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		prefix   string
		expected bool
	}{
		{name: "exact match", path: "src", prefix: "src", expected: true},
		{name: "nested below prefix", path: "src/app/main.go", prefix: "src", expected: true},
		{name: "sibling sharing letters", path: "srcgen/main.go", prefix: "src", expected: false},
		{name: "leading dot slash", path: "src/main.go", prefix: "./src/", expected: true},
		{name: "backslash prefix", path: "src/app/main.go", prefix: `src\app`, expected: true},
		{name: "dot matches all", path: "anything.go", prefix: ".", expected: true},
		{name: "prefix deeper than path", path: "src", prefix: "src/app", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := utils.HasPathPrefix(testCase.path, testCase.prefix); actual != testCase.expected {
				t.Fatalf("HasPathPrefix(%q, %q) = %t, want %t", testCase.path, testCase.prefix, actual, testCase.expected)
			}
		})
	}
}

func TestPathSegments(t *testing.T) {
	segments := utils.PathSegments("./a/b/../c/file.txt")
	expected := []string{"a", "c", "file.txt"}
	if len(segments) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, segments)
	}
	for index := range expected {
		if segments[index] != expected[index] {
			t.Fatalf("expected %v, got %v", expected, segments)
		}
	}
	if utils.PathSegments(".") != nil {
		t.Fatalf("expected no segments for the root")
	}
}

func TestIsWithinDirectory(t *testing.T) {
	root := t.TempDir()
	testCases := []struct {
		name      string
		candidate string
		expected  bool
	}{
		{name: "root itself", candidate: root, expected: true},
		{name: "nested file", candidate: filepath.Join(root, "a", "b.txt"), expected: true},
		{name: "parent escape", candidate: filepath.Join(root, "..", "outside.txt"), expected: false},
		{name: "dotted sibling name", candidate: filepath.Join(root, "..data"), expected: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := utils.IsWithinDirectory(testCase.candidate, root); actual != testCase.expected {
				t.Fatalf("IsWithinDirectory(%q) = %t, want %t", testCase.candidate, actual, testCase.expected)
			}
		})
	}
}
