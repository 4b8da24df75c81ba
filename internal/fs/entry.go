package fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry is a dotfile.
func (e Entry) IsHidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// Ext returns the lower-cased extension without the leading dot, or "".
func (e Entry) Ext() string {
	ext := filepath.Ext(e.FullPath)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Dir returns the directory containing the entry.
func (e Entry) Dir() string {
	return filepath.Dir(e.FullPath)
}
