package preview

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/kaji-lab/finch/internal/async"
	"github.com/kaji-lab/finch/internal/cancel"
	"github.com/kaji-lab/finch/internal/config"
	"github.com/kaji-lab/finch/internal/event"
	"github.com/kaji-lab/finch/internal/fs"
	"github.com/kaji-lab/finch/internal/proc"
)

// State describes the previewer's visible condition.
type State int

const (
	// StateBlank shows the initial empty pane.
	StateBlank State = iota
	// StatePending means a build is running in the background.
	StatePending
	// StateReady means the current target is displayable.
	StateReady
	// StateFailed means the last build errored; the requested file is kept
	// so Reload can retry.
	StateFailed
)

// Previewer owns the asynchronous preview pipeline for one pane. SetFile
// starts a background build for the selected file; rapid re-selection
// supersedes in-flight builds through the container's token generations, so
// the visible target always corresponds to the newest selection.
//
// All exported methods are UI-goroutine only; background producers touch
// nothing but their own token, the collaborators, and the process registry.
type Previewer struct {
	container *async.Container[Target]
	file      *fs.Entry
	animator  cancel.Token

	lister   fs.Lister
	mime     fs.MimeResolver
	procs    *proc.Registry
	queue    *event.Queue
	snapshot func() config.Config

	width  int
	height int
	tick   int
}

// NewPreviewer builds a previewer showing the blank placeholder. snapshot
// returns the current configuration; it is called once per build so a
// config reload applies to the next generation.
func NewPreviewer(lister fs.Lister, mime fs.MimeResolver, procs *proc.Registry, queue *event.Queue, snapshot func() config.Config) *Previewer {
	p := &Previewer{
		animator: cancel.NewToken(),
		lister:   lister,
		mime:     mime,
		procs:    procs,
		queue:    queue,
		snapshot: snapshot,
	}
	p.container = async.New(func(cancel.Token) (Target, error) {
		return Target{Kind: KindText, Text: NewBlankTextView()}, nil
	}, p.notifyReady)
	return p
}

func (p *Previewer) notifyReady() {
	p.queue.Dispatch(event.WidgetReady{})
}

func (p *Previewer) notifyTick() {
	p.queue.Dispatch(event.Tick{})
}

// SetFile selects the file to preview. Re-selecting the current file while
// its build is still valid is a no-op; anything else supersedes the
// in-flight generation and starts a new one.
func (p *Previewer) SetFile(file fs.Entry) {
	if p.file != nil && p.file.FullPath == file.FullPath && !p.container.IsStale() {
		return
	}

	// Same-directory transitions keep the reveal animation fluid; a hard
	// context switch cancels it so the new preview appears at once.
	sameDir := p.file == nil || p.file.Dir() == file.Dir()
	if sameDir {
		p.animator.SetFresh()
	} else {
		p.animator.SetStale()
	}

	f := file
	p.file = &f

	cfg := p.snapshot()
	width, height := p.width, p.height

	p.container.ChangeTo(func(tok cancel.Token) (Target, error) {
		return p.build(f, cfg, width, height, tok)
	})
}

// build runs on the container's background goroutine. It kills the previous
// external previewer, wipes stale artifacts, then dispatches on file kind
// and MIME type, checkpointing the token around every blocking step.
func (p *Previewer) build(file fs.Entry, cfg config.Config, width, height int, tok cancel.Token) (Target, error) {
	p.procs.Kill()
	if err := os.RemoveAll(config.PreviewTempDir()); err != nil {
		slog.Warn("preview: removing temp artifacts", "error", err)
	}
	if tok.IsStale() {
		return Target{}, ErrStale
	}

	if file.IsDir {
		return p.buildListing(file, cfg, width, height, tok)
	}

	mime, err := p.mime.MimeType(file.FullPath)
	if err != nil {
		// Soft failure: an unclassifiable file gets the blank view.
		if !errors.Is(err, fs.ErrMimeUndetermined) {
			slog.Warn("preview: mime resolution", "file", file.FullPath, "error", err)
		}
		return p.buildBlank(width, height), nil
	}

	hasMedia := cfg.MediaAvailable()
	switch {
	case mime.Type == "video" || (mime.Subtype == "gif" && hasMedia):
		return p.buildMedia(file, cfg, MediaVideo, width, height, tok)
	case mime.Type == "image" && hasMedia:
		// Animate the indicator while the decode runs; the decode cannot
		// checkpoint, so the ticker runs off the token.
		ticker := StartTicker(p.notifyTick)
		defer ticker.Stop()
		return p.buildImage(file.FullPath, cfg, width, height, tok)
	case mime.Type == "audio" && hasMedia:
		return p.buildMedia(file, cfg, MediaAudio, width, height, tok)
	case mime.IsPlainText():
		return p.buildText(file, width, height, tok)
	default:
		target, err := p.buildExternal(file, cfg, width, height, tok)
		if err == nil {
			return target, nil
		}
		if errors.Is(err, ErrStale) {
			return Target{}, err
		}
		if !errors.Is(err, ErrNoPreviewer) {
			slog.Warn("preview: external previewer", "file", file.FullPath, "error", err)
		}
		return p.buildBlank(width, height), nil
	}
}

func (p *Previewer) buildBlank(width, height int) Target {
	blank := NewBlankTextView()
	blank.resize(width, height)
	return Target{Kind: KindText, Text: blank}
}

func (p *Previewer) buildListing(file fs.Entry, cfg config.Config, width, height int, tok cancel.Token) (Target, error) {
	if tok.IsStale() {
		return Target{}, ErrStale
	}

	entries, err := p.lister.List(file.FullPath, cfg.ShowHidden)
	if err != nil {
		return Target{}, buildFailed(file.FullPath, err)
	}
	if tok.IsStale() {
		return Target{}, ErrStale
	}

	view := NewListingView(file.FullPath, entries)
	view.resize(width, height)
	return Target{Kind: KindListing, Listing: view}, nil
}

func (p *Previewer) buildText(file fs.Entry, width, height int, tok cancel.Token) (Target, error) {
	ticker := StartTicker(p.notifyTick)
	defer ticker.Stop()

	view, err := NewTextViewFromFile(file.FullPath, height)
	if err != nil {
		return Target{}, buildFailed(file.FullPath, err)
	}
	if tok.IsStale() {
		return Target{}, ErrStale
	}

	view.resize(width, height)
	return Target{Kind: KindText, Text: view}, nil
}

func (p *Previewer) buildImage(path string, cfg config.Config, width, height int, tok cancel.Token) (Target, error) {
	lines, err := p.renderMedia(cfg, "image", path, width, height, tok)
	if err != nil {
		if errors.Is(err, ErrStale) {
			return Target{}, err
		}
		return Target{}, buildFailed(path, err)
	}

	view := NewImageView(path, lines)
	view.resize(width, height)
	return Target{Kind: KindImage, Image: view}, nil
}

func (p *Previewer) buildMedia(file fs.Entry, cfg config.Config, kind MediaKind, width, height int, tok cancel.Token) (Target, error) {
	lines, err := p.renderMedia(cfg, kind.String(), file.FullPath, width, height, tok)
	if err != nil {
		if errors.Is(err, ErrStale) {
			return Target{}, err
		}
		return Target{}, buildFailed(file.FullPath, err)
	}

	view := NewMediaView(kind, file.FullPath, lines)
	view.resize(width, height)
	return Target{Kind: KindMedia, Media: view}, nil
}

func (p *Previewer) renderMedia(cfg config.Config, kind, path string, width, height int, tok cancel.Token) ([]string, error) {
	if !cfg.MediaAvailable() {
		return nil, buildFailed(path, errors.New("no media backend"))
	}
	argv := []string{cfg.MediaCommand, kind, strconv.Itoa(width), strconv.Itoa(height), path}
	return runExternal(argv, p.procs, tok)
}

func (p *Previewer) buildExternal(file fs.Entry, cfg config.Config, width, height int, tok cancel.Token) (Target, error) {
	ticker := StartTicker(p.notifyTick)
	defer ticker.Stop()

	previewer, err := FindPreviewer(cfg.PreviewersDir, file, cfg.GraphicsMode())
	if err != nil {
		return Target{}, err
	}
	if tok.IsStale() {
		return Target{}, ErrStale
	}

	lines, err := runExternal([]string{previewer.Path, file.FullPath}, p.procs, tok)
	if err != nil {
		return Target{}, err
	}
	if tok.IsStale() {
		return Target{}, ErrStale
	}

	if previewer.Graphics {
		if len(lines) == 0 || lines[0] == "" {
			return Target{}, buildFailed(file.FullPath, errors.New("graphics previewer emitted no artifact path"))
		}
		return p.buildImage(lines[0], cfg, width, height, tok)
	}

	view := NewTextViewLines(lines)
	view.resize(width, height)
	return Target{Kind: KindExternal, Text: view}, nil
}

// Reload re-issues SetFile for the current file, forcing a rebuild (after a
// hidden-files toggle, for instance).
func (p *Previewer) Reload() {
	if p.file == nil {
		return
	}
	file := *p.file
	p.file = nil
	p.SetFile(file)
}

// ReloadText forces a full read of the current text preview.
func (p *Previewer) ReloadText() {
	target, err := p.container.Get()
	if err != nil || target.Kind != KindText {
		return
	}
	if err := target.Text.LoadFull(); err != nil {
		slog.Warn("preview: full text load", "error", err)
	}
}

// TakeFiles hands ownership of the current directory listing out and empties
// the container's listing slot. Fails with ErrNoListing for any other
// variant.
func (p *Previewer) TakeFiles() ([]fs.Entry, error) {
	target, err := p.container.Get()
	if err != nil || target.Kind != KindListing {
		return nil, ErrNoListing
	}
	entries := target.Listing.TakeEntries()
	p.file = nil
	return entries, nil
}

// PutListing installs an already-loaded listing without re-reading the
// directory, so navigating back shows the right pane instantly.
func (p *Previewer) PutListing(dir fs.Entry, entries []fs.Entry) {
	d := dir
	p.file = &d
	p.animator.SetStale()

	width, height := p.width, p.height
	p.container.ChangeTo(func(tok cancel.Token) (Target, error) {
		if tok.IsStale() {
			return Target{}, ErrStale
		}
		view := NewListingView(dir.FullPath, entries)
		view.resize(width, height)
		return Target{Kind: KindListing, Listing: view}, nil
	})
}

// GetFile returns the currently previewed file, or nil.
func (p *Previewer) GetFile() *fs.Entry {
	return p.file
}

// SetStale cancels the in-flight build and the reveal animation.
func (p *Previewer) SetStale() {
	p.animator.SetStale()
	p.container.SetStale()
}

// State reports the previewer's visible condition.
func (p *Previewer) State() State {
	_, err := p.container.Get()
	switch {
	case err == nil && p.file == nil:
		return StateBlank
	case err == nil:
		return StateReady
	case errors.Is(err, async.ErrNotReady):
		return StatePending
	default:
		return StateFailed
	}
}

// OnReady is called by the UI loop when the widget-ready notification
// arrives. It sizes the finished target and arms the reveal animation if
// the animator survived the transition.
func (p *Previewer) OnReady() {
	target, err := p.container.Get()
	if err != nil {
		if !errors.Is(err, async.ErrNotReady) && !errors.Is(err, ErrStale) {
			slog.Warn("preview: build failed", "error", err)
		}
		return
	}

	target.Resize(p.width, p.height)
	if !p.animator.IsStale() {
		target.SetReveal(p.height)
	}
}

// Tick advances the loading indicator and the reveal animation one frame.
// It reports whether further ticks are wanted.
func (p *Previewer) Tick() bool {
	p.tick++

	target, err := p.container.Get()
	if err != nil {
		return errors.Is(err, async.ErrNotReady)
	}
	if !target.Revealing() {
		return false
	}
	if p.animator.IsStale() {
		target.SetReveal(0)
		return false
	}
	return target.StepReveal()
}

// Animating reports whether the reveal animation is running.
func (p *Previewer) Animating() bool {
	target, err := p.container.Get()
	return err == nil && target.Revealing() && !p.animator.IsStale()
}

// Resize updates the pane geometry.
func (p *Previewer) Resize(w, h int) {
	p.width = w
	p.height = h
	if target, err := p.container.Get(); err == nil {
		target.Resize(w, h)
	}
}

// HandleKey forwards key input to the visible target.
func (p *Previewer) HandleKey(ev *tcell.EventKey) {
	if target, err := p.container.Get(); err == nil {
		target.HandleKey(ev)
	}
}

// VisibleLines returns the pane content: the loading indicator while a
// build is pending, nothing for stale or failed builds, and the target's
// lines otherwise.
func (p *Previewer) VisibleLines() []string {
	target, err := p.container.Get()
	if err != nil {
		if errors.Is(err, async.ErrNotReady) && !p.container.IsStale() {
			return []string{tickFrame(p.tick)}
		}
		return nil
	}
	if p.container.IsStale() {
		return nil
	}
	return target.VisibleLines()
}
