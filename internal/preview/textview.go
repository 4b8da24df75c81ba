package preview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kaji-lab/finch/internal/fs"
)

// TextView previews plain text. File-backed views load only as many lines
// as fit the pane; LoadFull replaces that with the whole file on demand.
// Views holding external previewer output have no backing path.
type TextView struct {
	viewport
	path      string
	lines     []string
	truncated bool
}

// NewBlankTextView returns the empty placeholder view.
func NewBlankTextView() *TextView {
	return &TextView{}
}

// NewTextViewLines wraps already-produced lines, as from an external
// previewer.
func NewTextViewLines(lines []string) *TextView {
	return &TextView{lines: lines}
}

// NewTextViewFromFile loads up to maxLines lines of path.
func NewTextViewFromFile(path string, maxLines int) (*TextView, error) {
	lines, truncated, err := fs.ReadHeadLines(path, maxLines)
	if err != nil {
		return nil, err
	}
	return &TextView{path: path, lines: lines, truncated: truncated}, nil
}

// LoadFull replaces the bounded head read with the entire file. A no-op for
// views without a backing file.
func (v *TextView) LoadFull() error {
	if v.path == "" || !v.truncated {
		return nil
	}
	lines, err := fs.ReadAllLines(v.path)
	if err != nil {
		return err
	}
	v.lines = lines
	v.truncated = false
	return nil
}

// Truncated reports whether more content exists than was loaded.
func (v *TextView) Truncated() bool {
	return v.truncated
}

// LineCount returns the number of loaded lines.
func (v *TextView) LineCount() int {
	return len(v.lines)
}

func (v *TextView) visibleLines() []string {
	lines := v.lines
	if v.scroll < len(lines) {
		lines = lines[v.scroll:]
	} else {
		lines = nil
	}
	return revealLines(lines, v.height, v.reveal)
}

func (v *TextView) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		v.scrollBy(-1, len(v.lines))
	case tcell.KeyDown:
		v.scrollBy(1, len(v.lines))
	case tcell.KeyPgUp:
		v.scrollBy(-v.height, len(v.lines))
	case tcell.KeyPgDn:
		v.scrollBy(v.height, len(v.lines))
	}
}
