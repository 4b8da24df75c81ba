package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kaji-lab/finch/internal/fs"
)

// Frame is everything the renderer needs for one redraw pass. The app
// assembles it from its navigation state and the previewer.
type Frame struct {
	Path         string
	Entries      []fs.Entry
	Selected     int
	Scroll       int
	PreviewLines []string
	Status       string
}

// Renderer draws the file list pane, the preview pane and the chrome.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, theme: DefaultTheme()}
}

// Render draws the whole UI.
func (r *Renderer) Render(frame Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h < 3 {
		r.screen.Show()
		return
	}

	listWidth := ListPaneWidth(w)
	contentHeight := h - 2

	r.drawHeader(frame, w)
	r.drawList(frame, listWidth, contentHeight)
	for y := 1; y <= contentHeight; y++ {
		r.screen.SetContent(listWidth, y, tcell.RuneVLine, nil, tcell.StyleDefault)
	}
	r.drawPreview(frame, listWidth+1, w, contentHeight)
	r.drawStatus(frame, w, h)

	r.screen.Show()
}

// ListPaneWidth returns the width of the file list pane for a given screen
// width; the preview pane takes the rest.
func ListPaneWidth(screenWidth int) int {
	listWidth := screenWidth / 2
	if listWidth < 1 {
		listWidth = 1
	}
	return listWidth
}

func (r *Renderer) drawHeader(frame Frame, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	text := "finch  " + frame.Path
	x := r.drawTextLine(0, 0, w, text, style)
	for ; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
}

func (r *Renderer) drawList(frame Frame, width, height int) {
	for row := 0; row < height; row++ {
		idx := frame.Scroll + row
		if idx >= len(frame.Entries) {
			break
		}
		entry := frame.Entries[idx]

		style := tcell.StyleDefault
		if entry.IsDir {
			style = style.Foreground(r.theme.DirFg)
		}
		if idx == frame.Selected {
			style = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		}

		name := entry.Name
		if entry.IsDir {
			name += "/"
		}
		x := r.drawTextLine(0, row+1, width, name, style)
		if idx == frame.Selected {
			for ; x < width; x++ {
				r.screen.SetContent(x, row+1, ' ', nil, style)
			}
		}
	}
}

func (r *Renderer) drawPreview(frame Frame, startX, w, height int) {
	for row, line := range frame.PreviewLines {
		if row >= height {
			break
		}
		r.drawTextLine(startX, row+1, w-startX, line, tcell.StyleDefault)
	}
}

func (r *Renderer) drawStatus(frame Frame, w, h int) {
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	status := frame.Status
	if status == "" {
		status = fmt.Sprintf("%d items", len(frame.Entries))
	}
	x := r.drawTextLine(0, h-1, w, status, style)
	for ; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

// drawTextLine draws text clipped to maxWidth cells and returns the next
// free column.
func (r *Renderer) drawTextLine(x, y, maxWidth int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		if col+width > x+maxWidth {
			break
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += width
	}
	return col
}
