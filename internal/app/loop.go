package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kaji-lab/finch/internal/config"
	"github.com/kaji-lab/finch/internal/event"
	"github.com/kaji-lab/finch/internal/fs"
)

const animationInterval = 40 * time.Millisecond

// Run drives the UI loop until quit. All state mutation happens here, on
// this goroutine; background work reaches it only through the event queue.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.frame())
	renderPending := false

	screenEvents := make(chan tcell.Event)
	go func() {
		for {
			screenEvents <- app.screen.PollEvent()
		}
	}()

	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.frame())
			renderPending = false
		}

		if app.previewer.Animating() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-screenEvents:
			if app.handleScreenEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			app.previewer.Tick()
			renderPending = true
		case ev := <-app.queue.C():
			if app.handleQueueEvent(ev) {
				renderPending = true
			}
		}
	}

	stopAnimation()
}

func (app *Application) handleScreenEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return app.handleKey(ev)
	case *tcell.EventResize:
		app.width, app.height = ev.Size()
		app.previewer.Resize(app.previewPaneSize())
		app.screen.Sync()
		return true
	default:
		return false
	}
}

func (app *Application) handleQueueEvent(ev event.Event) bool {
	switch ev.(type) {
	case event.WidgetReady:
		app.previewer.OnReady()
		return true
	case event.Tick:
		app.previewer.Tick()
		return true
	case event.ConfigChanged:
		app.reloadConfig()
		return true
	default:
		return false
	}
}

// reloadConfig re-reads the config file and pushes visibility changes into
// the listing and the previewer.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(app.cfgPath)
	if err != nil {
		slog.Warn("config reload", "error", err)
		return
	}

	hiddenChanged := cfg.ShowHidden != app.cfg.ShowHidden
	app.cfg = cfg

	if hiddenChanged {
		if err := app.loadDirectory(app.currentPath); err != nil {
			app.status = err.Error()
			return
		}
		app.previewer.Reload()
		app.previewSelection()
	}
	app.status = "config reloaded"
}

func (app *Application) handleKey(ev *tcell.EventKey) bool {
	app.status = ""

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.shouldQuit = true
		return false
	case tcell.KeyUp:
		return app.moveSelection(-1)
	case tcell.KeyDown:
		return app.moveSelection(1)
	case tcell.KeyEnter, tcell.KeyRight:
		return app.enterSelection()
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		return app.goToParent()
	case tcell.KeyPgUp, tcell.KeyPgDn:
		app.previewer.HandleKey(ev)
		return true
	}

	switch ev.Rune() {
	case 'q':
		app.shouldQuit = true
		return false
	case 'j':
		return app.moveSelection(1)
	case 'k':
		return app.moveSelection(-1)
	case 'r':
		app.previewer.Reload()
		return true
	case 'f':
		app.previewer.ReloadText()
		return true
	case '.':
		return app.toggleHidden()
	}

	return false
}

func (app *Application) moveSelection(delta int) bool {
	if len(app.entries) == 0 {
		return false
	}
	next := app.selected + delta
	if next < 0 || next >= len(app.entries) {
		return false
	}
	app.selected = next
	app.clampScroll()
	app.previewSelection()
	return true
}

func (app *Application) clampScroll() {
	visible := app.height - 2
	if visible < 1 {
		visible = 1
	}
	if app.selected < app.scroll {
		app.scroll = app.selected
	}
	if app.selected >= app.scroll+visible {
		app.scroll = app.selected - visible + 1
	}
}

// enterSelection descends into the selected directory. The previewed
// listing is promoted into the main pane when it is ready, so descending
// needs no second disk read.
func (app *Application) enterSelection() bool {
	if app.selected < 0 || app.selected >= len(app.entries) {
		return false
	}
	target := app.entries[app.selected]
	if !target.IsDir {
		return false
	}

	entries, err := app.previewer.TakeFiles()
	if err != nil {
		entries, err = app.lister.List(target.FullPath, app.cfg.ShowHidden)
		if err != nil {
			app.status = err.Error()
			return true
		}
	}

	dirEntry, statErr := fs.Stat(app.currentPath)
	if statErr != nil {
		dirEntry = fs.Entry{Name: filepath.Base(app.currentPath), FullPath: app.currentPath, IsDir: true}
	}
	app.navStack = append(app.navStack, navFrame{
		dir:      dirEntry,
		entries:  app.entries,
		selected: app.selected,
		scroll:   app.scroll,
	})

	app.currentPath = target.FullPath
	app.entries = entries
	app.selected = 0
	app.scroll = 0
	app.previewSelection()
	return true
}

// goToParent returns to the parent directory, restoring the saved listing
// when we navigated here from it.
func (app *Application) goToParent() bool {
	parent := filepath.Dir(app.currentPath)
	if parent == app.currentPath {
		return false
	}

	if n := len(app.navStack); n > 0 && app.navStack[n-1].dir.FullPath == parent {
		frame := app.navStack[n-1]
		app.navStack = app.navStack[:n-1]

		leavingDir, err := fs.Stat(app.currentPath)
		if err == nil {
			app.previewer.PutListing(leavingDir, app.entries)
		}

		app.currentPath = frame.dir.FullPath
		app.entries = frame.entries
		app.selected = frame.selected
		app.scroll = frame.scroll
		return true
	}

	child := app.currentPath
	if err := app.loadDirectory(parent); err != nil {
		app.status = err.Error()
		return true
	}
	for i, e := range app.entries {
		if e.FullPath == child {
			app.selected = i
			break
		}
	}
	app.clampScroll()
	app.previewSelection()
	return true
}

func (app *Application) toggleHidden() bool {
	app.cfg.ShowHidden = !app.cfg.ShowHidden

	selectedPath := ""
	if app.selected >= 0 && app.selected < len(app.entries) {
		selectedPath = app.entries[app.selected].FullPath
	}

	if err := app.loadDirectory(app.currentPath); err != nil {
		app.status = err.Error()
		return true
	}
	for i, e := range app.entries {
		if e.FullPath == selectedPath {
			app.selected = i
			break
		}
	}
	app.clampScroll()

	app.previewer.Reload()
	app.previewSelection()
	app.status = fmt.Sprintf("hidden files: %v", app.cfg.ShowHidden)
	return true
}
