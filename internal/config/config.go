package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GraphicsUnicode is the plain-terminal graphics mode. Any other value names
// a graphical protocol and enables graphics-producing external previewers.
const GraphicsUnicode = "unicode"

// Config holds the user-tunable settings the preview pipeline consumes.
type Config struct {
	// Graphics selects "unicode" or a graphical protocol name.
	Graphics string `yaml:"graphics"`
	// PreviewersDir holds external previewer scripts named after the file
	// extensions they handle.
	PreviewersDir string `yaml:"previewers_dir"`
	// MediaCommand renders image/video/audio previews. It is invoked as
	// `<command> <kind> <width> <height> <path>` and must emit text lines.
	MediaCommand string `yaml:"media_command"`
	// ShowHidden includes dotfiles in listings.
	ShowHidden bool `yaml:"show_hidden"`

	mediaAvailable bool
}

// Default returns the built-in configuration. Media availability is not
// probed here; Load and Finish do that.
func Default() Config {
	cfg := Config{
		Graphics:     GraphicsUnicode,
		MediaCommand: "finch-media",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.PreviewersDir = filepath.Join(dir, "finch", "previewers")
	}
	return cfg
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "finch", "config.yaml"), nil
}

// Load reads path on top of the defaults. A missing file is not an error;
// the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg.Finish(), nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Graphics == "" {
		cfg.Graphics = GraphicsUnicode
	}
	return cfg.Finish(), nil
}

// Finish probes the media command and returns the completed config.
func (c Config) Finish() Config {
	c.mediaAvailable = false
	if c.MediaCommand != "" {
		if resolved, err := exec.LookPath(c.MediaCommand); err == nil && resolved != "" {
			c.mediaAvailable = true
		}
	}
	return c
}

// MediaAvailable reports whether the media command was found on PATH.
func (c Config) MediaAvailable() bool {
	return c.mediaAvailable
}

// GraphicsMode reports whether graphics-producing previewers may be used.
func (c Config) GraphicsMode() bool {
	return c.Graphics != GraphicsUnicode
}

// PreviewTempDir is where graphical previewers leave rendered artifacts.
// It is wiped at the start of every preview build.
func PreviewTempDir() string {
	return filepath.Join(os.TempDir(), "finch-previews")
}
