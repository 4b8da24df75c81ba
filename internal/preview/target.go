package preview

import "github.com/gdamore/tcell/v2"

// Kind identifies the live preview variant.
type Kind int

const (
	// KindText is a plain-text document (or the blank placeholder).
	KindText Kind = iota
	// KindListing is a directory listing.
	KindListing
	// KindImage is a still image rendered to terminal lines.
	KindImage
	// KindMedia is a video or audio stream.
	KindMedia
	// KindExternal is text produced by an external previewer program.
	KindExternal
)

// Target is the tagged union of preview variants. Exactly one variant is
// live, selected by Kind; every operation dispatches through one exhaustive
// switch so a new variant cannot be added without extending each.
type Target struct {
	Kind    Kind
	Text    *TextView
	Listing *ListingView
	Image   *ImageView
	Media   *MediaView
}

func (t *Target) geometry() *viewport {
	switch t.Kind {
	case KindText, KindExternal:
		return &t.Text.viewport
	case KindListing:
		return &t.Listing.viewport
	case KindImage:
		return &t.Image.viewport
	case KindMedia:
		return &t.Media.viewport
	}
	return nil
}

// Resize propagates the pane size to the live variant.
func (t *Target) Resize(w, h int) {
	if vp := t.geometry(); vp != nil {
		vp.resize(w, h)
	}
}

// SetReveal arms the slide-up animation at n rows of offset.
func (t *Target) SetReveal(n int) {
	if vp := t.geometry(); vp != nil {
		vp.setReveal(n)
	}
}

// StepReveal advances the animation one frame; reports whether more remain.
func (t *Target) StepReveal() bool {
	if vp := t.geometry(); vp != nil {
		return vp.stepReveal()
	}
	return false
}

// Revealing reports whether a slide-up animation is in progress.
func (t *Target) Revealing() bool {
	if vp := t.geometry(); vp != nil {
		return vp.reveal > 0
	}
	return false
}

// VisibleLines returns the pane content for the current scroll, reveal and
// size.
func (t *Target) VisibleLines() []string {
	switch t.Kind {
	case KindText, KindExternal:
		return t.Text.visibleLines()
	case KindListing:
		return t.Listing.visibleLines()
	case KindImage:
		return t.Image.visibleLines()
	case KindMedia:
		return t.Media.visibleLines()
	}
	return nil
}

// HandleKey forwards key input to the live variant. Image and media views
// take no input.
func (t *Target) HandleKey(ev *tcell.EventKey) {
	switch t.Kind {
	case KindText, KindExternal:
		t.Text.handleKey(ev)
	case KindListing:
		t.Listing.handleKey(ev)
	case KindImage, KindMedia:
	}
}
