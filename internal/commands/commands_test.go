package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/projdump/internal/config"
)

// writeFixture creates every file in files below rootDirectory, keyed by slash path.
func writeFixture(testingHandle *testing.T, rootDirectory string, files map[string]string) {
	testingHandle.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if mkdirError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); mkdirError != nil {
			testingHandle.Fatalf("mkdir %s: %v", relativePath, mkdirError)
		}
		if writeError := os.WriteFile(absolutePath, []byte(content), 0o644); writeError != nil {
			testingHandle.Fatalf("write %s: %v", relativePath, writeError)
		}
	}
}

func testConfiguration() config.Configuration {
	configuration := config.DefaultConfiguration()
	configuration.AllowedExtensions = []string{".go", ".txt", "Makefile"}
	configuration.IgnoredDirs = []string{"vendor", ".git"}
	configuration.ForceInclude = []string{}
	configuration.ForceExclude = []string{}
	return configuration
}
