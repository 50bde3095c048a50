// Package config loads the dump configuration that selects which files enter the artifact.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/projdump/internal/utils"
)

const (
	// AllowedExtensionsKey lists extensions (".go") or bare file names ("Dockerfile") to dump.
	AllowedExtensionsKey = "allowed_extensions"
	// IgnoredDirsKey lists directory names pruned wherever they occur.
	IgnoredDirsKey = "ignored_dirs"
	// ForceIncludeKey lists path prefixes included regardless of extension and ignored directories.
	ForceIncludeKey = "force_include"
	// ForceExcludeKey lists path prefixes that are never included.
	ForceExcludeKey = "force_exclude"
	// RespectGitignoreKey enables filtering through the project's root .gitignore.
	RespectGitignoreKey = "respect_gitignore"

	configurationType = "json"

	reasonMissingFormat       = "config file %s not found"
	reasonEmptyFormat         = "config file %s is empty"
	reasonInvalidFormat       = "config file %s is not valid JSON: %v"
	reasonUnreadableFormat    = "config file %s could not be read: %v"
	reasonDirectoryFormat     = "config path %s is a directory"
	reasonInvalidValueFormat  = "config key %q in %s must be %s"
	reasonMissingKeyFormat    = "config key %q is missing after merging %s"
	defaultsAnnotationFormat  = "defaults (%s)"
	expectedStringListMessage = "a list of strings"
	expectedBooleanMessage    = "a boolean"
)

// Configuration selects the files that are serialized into a dump.
type Configuration struct {
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	IgnoredDirs       []string `mapstructure:"ignored_dirs"`
	ForceInclude      []string `mapstructure:"force_include"`
	ForceExclude      []string `mapstructure:"force_exclude"`
	RespectGitignore  bool     `mapstructure:"respect_gitignore"`
}

var defaultConfiguration = Configuration{
	AllowedExtensions: []string{
		".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".kt", ".c", ".h", ".cpp", ".hpp",
		".cs", ".rs", ".rb", ".php", ".swift", ".sh", ".sql", ".html", ".css", ".scss",
		".md", ".txt", ".json", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".xml", ".mod",
		"Dockerfile", "Makefile",
	},
	IgnoredDirs: []string{
		".git", ".hg", ".svn", ".idea", ".vscode", "node_modules", "__pycache__",
		".venv", "venv", "dist", "build", "target", ".pytest_cache", ".mypy_cache",
	},
	ForceInclude: []string{},
	ForceExclude: []string{},
}

// DefaultConfiguration returns a copy of the embedded default configuration.
func DefaultConfiguration() Configuration {
	return defaultConfiguration.clone()
}

// LoadResult is the configuration chosen for a run and where it came from.
type LoadResult struct {
	Configuration Configuration
	SourcePath    string
	// FallbackReason explains why the embedded defaults were used; empty when the file was applied.
	FallbackReason string
}

// UsedDefaults reports whether the embedded defaults replaced the configuration file.
func (result LoadResult) UsedDefaults() bool {
	return result.FallbackReason != ""
}

// Annotation renders the configuration provenance recorded in the dump header.
func (result LoadResult) Annotation() string {
	if result.UsedDefaults() {
		return fmt.Sprintf(defaultsAnnotationFormat, result.FallbackReason)
	}
	return result.SourcePath
}

// LoadConfiguration reads the JSON configuration at path and merges it over the defaults.
// It never fails: a missing, empty, invalid or incomplete file yields the defaults and a reason.
func LoadConfiguration(path string) LoadResult {
	fallback := func(reason string) LoadResult {
		return LoadResult{Configuration: DefaultConfiguration(), SourcePath: path, FallbackReason: reason}
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return fallback(fmt.Sprintf(reasonMissingFormat, path))
		}
		return fallback(fmt.Sprintf(reasonUnreadableFormat, path, statErr))
	}
	if info.IsDir() {
		return fallback(fmt.Sprintf(reasonDirectoryFormat, path))
	}
	if info.Size() == 0 {
		return fallback(fmt.Sprintf(reasonEmptyFormat, path))
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(configurationType)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return fallback(fmt.Sprintf(reasonInvalidFormat, path, readErr))
	}

	merged, mergeReason := mergeOverDefaults(reader, path)
	if mergeReason != "" {
		return fallback(mergeReason)
	}
	if validationReason := merged.validate(path); validationReason != "" {
		return fallback(validationReason)
	}
	return LoadResult{Configuration: merged.normalized(), SourcePath: path}
}

// mergeOverDefaults overlays every key present in reader onto the defaults.
func mergeOverDefaults(reader *viper.Viper, path string) (Configuration, string) {
	merged := DefaultConfiguration()
	listTargets := []struct {
		key      string
		target   *[]string
		required bool
	}{
		{key: AllowedExtensionsKey, target: &merged.AllowedExtensions, required: true},
		{key: IgnoredDirsKey, target: &merged.IgnoredDirs, required: true},
		{key: ForceIncludeKey, target: &merged.ForceInclude},
		{key: ForceExcludeKey, target: &merged.ForceExclude},
	}
	presentKeys := map[string]struct{}{}
	for _, key := range reader.AllKeys() {
		presentKeys[key] = struct{}{}
	}
	for _, listTarget := range listTargets {
		rawValue := reader.Get(listTarget.key)
		if rawValue == nil {
			// A key written as null is present without a value.
			if _, present := presentKeys[listTarget.key]; present && listTarget.required {
				return Configuration{}, fmt.Sprintf(reasonMissingKeyFormat, listTarget.key, path)
			}
			continue
		}
		values, ok := toStringList(rawValue)
		if !ok {
			return Configuration{}, fmt.Sprintf(reasonInvalidValueFormat, listTarget.key, path, expectedStringListMessage)
		}
		*listTarget.target = values
	}

	if rawValue := reader.Get(RespectGitignoreKey); rawValue != nil {
		flag, ok := rawValue.(bool)
		if !ok {
			return Configuration{}, fmt.Sprintf(reasonInvalidValueFormat, RespectGitignoreKey, path, expectedBooleanMessage)
		}
		merged.RespectGitignore = flag
	}
	return merged, ""
}

func toStringList(rawValue any) ([]string, bool) {
	switch typed := rawValue.(type) {
	case []string:
		return append([]string{}, typed...), true
	case []any:
		values := make([]string, 0, len(typed))
		for _, element := range typed {
			text, ok := element.(string)
			if !ok {
				return nil, false
			}
			values = append(values, text)
		}
		return values, true
	default:
		return nil, false
	}
}

// validate reports a reason when a required key did not survive the merge.
func (configuration Configuration) validate(path string) string {
	if configuration.AllowedExtensions == nil {
		return fmt.Sprintf(reasonMissingKeyFormat, AllowedExtensionsKey, path)
	}
	if configuration.IgnoredDirs == nil {
		return fmt.Sprintf(reasonMissingKeyFormat, IgnoredDirsKey, path)
	}
	return ""
}

// normalized trims entries, lower-cases dotted extensions and removes duplicates.
func (configuration Configuration) normalized() Configuration {
	result := configuration.clone()
	result.AllowedExtensions = normalizeEntries(result.AllowedExtensions, NormalizeExtension)
	result.IgnoredDirs = normalizeEntries(result.IgnoredDirs, strings.TrimSpace)
	result.ForceInclude = normalizeEntries(result.ForceInclude, normalizePrefix)
	result.ForceExclude = normalizeEntries(result.ForceExclude, normalizePrefix)
	return result
}

// NormalizeExtension lower-cases entries starting with "." and keeps bare names as written.
func NormalizeExtension(entry string) string {
	trimmed := strings.TrimSpace(entry)
	if strings.HasPrefix(trimmed, ".") {
		return strings.ToLower(trimmed)
	}
	return trimmed
}

func normalizePrefix(entry string) string {
	if strings.TrimSpace(entry) == "" {
		return ""
	}
	return utils.NormalizeRelativePath(entry)
}

func normalizeEntries(entries []string, normalize func(string) string) []string {
	normalizedEntries := make([]string, 0, len(entries))
	for _, entry := range entries {
		normalizedEntry := normalize(entry)
		if normalizedEntry == "" {
			continue
		}
		normalizedEntries = append(normalizedEntries, normalizedEntry)
	}
	return utils.DeduplicatePatterns(normalizedEntries)
}

func (configuration Configuration) clone() Configuration {
	return Configuration{
		AllowedExtensions: append([]string{}, configuration.AllowedExtensions...),
		IgnoredDirs:       append([]string{}, configuration.IgnoredDirs...),
		ForceInclude:      append([]string{}, configuration.ForceInclude...),
		ForceExclude:      append([]string{}, configuration.ForceExclude...),
		RespectGitignore:  configuration.RespectGitignore,
	}
}
