package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !strings.HasSuffix(cfg.DataFile, ".taskmaster.json") {
		t.Errorf("DataFile = %q, want a .taskmaster.json path", cfg.DataFile)
	}
	if cfg.Theme.Primary != "#D97757" {
		t.Errorf("Theme.Primary = %q, want #D97757", cfg.Theme.Primary)
	}
	if !cfg.UX.ConfirmDeletions {
		t.Error("UX.ConfirmDeletions = false, want true by default")
	}
	if cfg.UX.DueSoonHours != 24 {
		t.Errorf("UX.DueSoonHours = %d, want 24", cfg.UX.DueSoonHours)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want nil for missing file", err)
	}
	if cfg.Theme.Primary != Default().Theme.Primary {
		t.Error("missing config did not yield defaults")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	path := writeConfig(t, `
data_file: /tmp/custom-tasks.json
theme:
  primary: "#FF0000"
  muted: "#333333"
keys:
  quit: x
  toggle: "t,space"
ux:
  confirm_deletions: false
  due_soon_hours: 48
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.DataFile != "/tmp/custom-tasks.json" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("Theme.Primary = %q, want #FF0000", cfg.Theme.Primary)
	}
	if cfg.Theme.Muted != "#333333" {
		t.Errorf("Theme.Muted = %q, want #333333", cfg.Theme.Muted)
	}
	// Unset theme values keep their defaults.
	if cfg.Theme.Danger != "#EF4444" {
		t.Errorf("Theme.Danger = %q, want default", cfg.Theme.Danger)
	}
	if cfg.Keys.Quit != "x" {
		t.Errorf("Keys.Quit = %q, want x", cfg.Keys.Quit)
	}
	if cfg.Keys.Toggle != "t,space" {
		t.Errorf("Keys.Toggle = %q", cfg.Keys.Toggle)
	}
	if cfg.Keys.Delete != "" {
		t.Errorf("Keys.Delete = %q, want empty (built-in default applies later)", cfg.Keys.Delete)
	}
	if cfg.UX.ConfirmDeletions {
		t.Error("UX.ConfirmDeletions = true, want false from config")
	}
	if cfg.UX.DueSoonHours != 48 {
		t.Errorf("UX.DueSoonHours = %d, want 48", cfg.UX.DueSoonHours)
	}
}

func TestLoadFrom_FalseIsNotAbsent(t *testing.T) {
	// confirm_deletions: false must override the true default even though
	// false is the zero value.
	path := writeConfig(t, "ux:\n  confirm_deletions: false\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.UX.ConfirmDeletions {
		t.Error("explicit false was treated as absent")
	}

	// And an absent ux section keeps the default.
	path = writeConfig(t, "theme:\n  primary: \"#123456\"\n")
	cfg, err = LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !cfg.UX.ConfirmDeletions {
		t.Error("absent ux section lost the default")
	}
}

func TestLoadFrom_InvalidDueSoonHours(t *testing.T) {
	path := writeConfig(t, "ux:\n  due_soon_hours: -5\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.UX.DueSoonHours != 24 {
		t.Errorf("UX.DueSoonHours = %d, want default 24 for non-positive value", cfg.UX.DueSoonHours)
	}
}

func TestLoadFrom_Malformed(t *testing.T) {
	path := writeConfig(t, "theme: [not, a, mapping\n")

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() error = nil for malformed YAML")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandHome("~/tasks.json"); got != filepath.Join(home, "tasks.json") {
		t.Errorf("expandHome(~/tasks.json) = %q", got)
	}
	if got := expandHome("/abs/path.json"); got != "/abs/path.json" {
		t.Errorf("expandHome(abs) = %q", got)
	}
	if got := expandHome("relative.json"); got != "relative.json" {
		t.Errorf("expandHome(relative) = %q", got)
	}
}
