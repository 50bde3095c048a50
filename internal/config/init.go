package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Path  string
	Force bool
}

// InitializeConfiguration writes the default configuration as JSON to options.Path.
// An existing file is only replaced when options.Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath := options.Path
	if destinationPath == "" {
		return "", fmt.Errorf("configuration path is empty")
	}
	if filepath.Ext(destinationPath) == "" {
		return "", fmt.Errorf("configuration path %s needs a file extension such as .json", destinationPath)
	}

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	if directory := filepath.Dir(destinationPath); directory != "" {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", directory, err)
		}
	}

	defaults := DefaultConfiguration()
	writer := viper.New()
	writer.SetConfigType(configurationType)
	writer.Set(AllowedExtensionsKey, defaults.AllowedExtensions)
	writer.Set(IgnoredDirsKey, defaults.IgnoredDirs)
	writer.Set(ForceIncludeKey, defaults.ForceInclude)
	writer.Set(ForceExcludeKey, defaults.ForceExclude)
	writer.Set(RespectGitignoreKey, defaults.RespectGitignore)
	if err := writer.WriteConfigAs(destinationPath); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}
