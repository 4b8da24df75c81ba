package preview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kaji-lab/finch/internal/fs"
)

// ListingView previews a directory's entries.
type ListingView struct {
	viewport
	dir     string
	entries []fs.Entry
}

// NewListingView wraps an already-sorted slice of entries.
func NewListingView(dir string, entries []fs.Entry) *ListingView {
	return &ListingView{dir: dir, entries: entries}
}

// Dir returns the previewed directory path.
func (v *ListingView) Dir() string {
	return v.dir
}

// Entries returns the listed entries without transferring ownership.
func (v *ListingView) Entries() []fs.Entry {
	return v.entries
}

// TakeEntries hands ownership of the listing out and empties the view.
// Used to promote a previewed directory into the primary file list.
func (v *ListingView) TakeEntries() []fs.Entry {
	entries := v.entries
	v.entries = nil
	return entries
}

func (v *ListingView) visibleLines() []string {
	lines := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		lines = append(lines, formatListingEntry(e))
	}
	if v.scroll < len(lines) {
		lines = lines[v.scroll:]
	} else {
		lines = nil
	}
	return revealLines(lines, v.height, v.reveal)
}

func formatListingEntry(e fs.Entry) string {
	name := e.Name
	if e.IsDir {
		name += "/"
	}
	if e.IsSymlink {
		name += " ->"
	}
	return name
}

func (v *ListingView) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		v.scrollBy(-1, len(v.entries))
	case tcell.KeyDown:
		v.scrollBy(1, len(v.entries))
	case tcell.KeyPgUp:
		v.scrollBy(-v.height, len(v.entries))
	case tcell.KeyPgDn:
		v.scrollBy(v.height, len(v.entries))
	}
}
