package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestInitializeConfigurationWritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	writtenPath, err := InitializeConfiguration(InitOptions{Path: path})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if writtenPath != path {
		t.Fatalf("expected path %s, got %s", path, writtenPath)
	}

	result := LoadConfiguration(path)
	if result.UsedDefaults() {
		t.Fatalf("expected written configuration to load, got fallback: %s", result.FallbackReason)
	}
	if !reflect.DeepEqual(result.Configuration, DefaultConfiguration()) {
		t.Fatalf("round-tripped configuration differs:\n got %+v\nwant %+v", result.Configuration, DefaultConfiguration())
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("write seed config: %v", err)
	}
	if _, err := InitializeConfiguration(InitOptions{Path: path}); err == nil {
		t.Fatalf("expected error when configuration already exists")
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if string(content) != "existing" {
		t.Fatalf("existing configuration was modified: %q", string(content))
	}

	if _, err := InitializeConfiguration(InitOptions{Path: path, Force: true}); err != nil {
		t.Fatalf("expected forced initialization to succeed: %v", err)
	}
	if result := LoadConfiguration(path); result.UsedDefaults() {
		t.Fatalf("expected forced configuration to load, got fallback: %s", result.FallbackReason)
	}
}

func TestInitializeConfigurationRequiresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if _, err := InitializeConfiguration(InitOptions{Path: path}); err == nil {
		t.Fatalf("expected error for a path without extension")
	}
}
