package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Lister reads directory contents. The previewer consumes this interface so
// tests can substitute fakes with controlled timing.
type Lister interface {
	List(dir string, showHidden bool) ([]Entry, error)
}

// DirLister is the default Lister backed by the real filesystem.
type DirLister struct{}

// List returns the sorted, optionally hidden-filtered entries of dir.
// Directories sort before files, then by name.
func (DirLister) List(dir string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		info, err := e.Info()
		if err != nil {
			continue
		}

		rawName := e.Name()
		fullPath := filepath.Join(dir, rawName)

		isDir := e.IsDir()
		isSymlink := (info.Mode() & os.ModeSymlink) != 0
		if isSymlink {
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
		}

		entry := Entry{
			Name:      norm.NFC.String(rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		}

		if !showHidden && entry.IsHidden() {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// Stat returns a single Entry for path.
func Stat(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Name:      norm.NFC.String(info.Name()),
		FullPath:  path,
		IsDir:     info.IsDir(),
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
	}, nil
}
