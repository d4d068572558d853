package zconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alanquatermain/zilc/zconfig"
)

func TestLoadFromMissingFileReturnsDefault(t *testing.T) {
	cfg, err := zconfig.LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Project.Version != zconfig.DefaultConfig().Project.Version {
		t.Errorf("expected default version, got %d", cfg.Project.Version)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zilc.toml")

	cfg := zconfig.DefaultConfig()
	cfg.Project.Version = 8
	cfg.Project.Serial = "260731"
	cfg.Project.Output = "game.z8"
	cfg.Run.Interpreter = "/usr/local/bin/frotz"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := zconfig.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if loaded.Project.Version != 8 {
		t.Errorf("Version = %d, want 8", loaded.Project.Version)
	}
	if loaded.Project.Serial != "260731" {
		t.Errorf("Serial = %q, want 260731", loaded.Project.Serial)
	}
	if loaded.Run.Interpreter != "/usr/local/bin/frotz" {
		t.Errorf("Interpreter = %q, want /usr/local/bin/frotz", loaded.Run.Interpreter)
	}
}

func TestLoadFromRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zilc.toml")
	if err := os.WriteFile(path, []byte("this is not valid toml = = ="), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := zconfig.LoadFrom(path); err == nil {
		t.Fatal("expected parse error for malformed TOML")
	}
}
