package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed for missing file: %v", err)
	}
	if cfg.Graphics != GraphicsUnicode {
		t.Fatalf("Graphics = %q, want %q", cfg.Graphics, GraphicsUnicode)
	}
	if cfg.GraphicsMode() {
		t.Fatalf("unicode mode reported as graphics mode")
	}
}

func TestLoadReadsYAMLFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "graphics: kitty\npreviewers_dir: ''\nshow_hidden: true\nmedia_command: definitely-not-on-path-xyz\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Graphics != "kitty" || !cfg.GraphicsMode() {
		t.Fatalf("Graphics = %q, want kitty with graphics mode on", cfg.Graphics)
	}
	if !cfg.ShowHidden {
		t.Fatalf("ShowHidden not read from file")
	}
	if cfg.MediaAvailable() {
		t.Fatalf("missing media command reported as available")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("graphics: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed config loaded without error")
	}
}

func TestFinishProbesMediaCommand(t *testing.T) {
	cfg := Config{MediaCommand: "sh"}.Finish()
	if !cfg.MediaAvailable() {
		t.Fatalf("sh not detected as available media command")
	}

	cfg = Config{MediaCommand: ""}.Finish()
	if cfg.MediaAvailable() {
		t.Fatalf("empty media command reported as available")
	}
}
