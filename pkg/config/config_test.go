package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// A missing file is an empty config, not an error.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	cfg.KaistID = "student123"
	cfg.Headless = true
	cfg.AccentColor = "212"

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, ".otl2everytime.json")); os.IsNotExist(err) {
		t.Errorf("expected config file to be created in %s", tempDir)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loaded, cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	path := filepath.Join(tempDir, ".otl2everytime.json")
	if err := os.WriteFile(path, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvKaistID, "student123")
	t.Setenv(EnvEverytimeID, "evtuser")
	t.Setenv(EnvEverytimePW, "secret")

	creds := CredentialsFromEnv()
	if !creds.Complete() {
		t.Fatalf("expected complete credentials, got %+v", creds)
	}
	if creds.KaistID != "student123" {
		t.Errorf("wrong KaistID: %q", creds.KaistID)
	}
}

func TestCredentialsIncomplete(t *testing.T) {
	t.Setenv(EnvKaistID, "student123")
	t.Setenv(EnvEverytimeID, "")
	t.Setenv(EnvEverytimePW, "")

	if CredentialsFromEnv().Complete() {
		t.Error("expected incomplete credentials without the Everytime pair")
	}
}
