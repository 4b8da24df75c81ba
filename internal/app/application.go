package app

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"github.com/kaji-lab/finch/internal/config"
	"github.com/kaji-lab/finch/internal/event"
	"github.com/kaji-lab/finch/internal/fs"
	"github.com/kaji-lab/finch/internal/preview"
	"github.com/kaji-lab/finch/internal/proc"
	renderui "github.com/kaji-lab/finch/internal/ui/render"
)

// navFrame remembers a directory we descended from so going back restores
// the listing (and its preview) without re-reading the disk.
type navFrame struct {
	dir      fs.Entry
	entries  []fs.Entry
	selected int
	scroll   int
}

// Application wires the panes, the previewer and the event queue together.
type Application struct {
	screen    tcell.Screen
	queue     *event.Queue
	registry  *proc.Registry
	previewer *preview.Previewer
	renderer  *renderui.Renderer
	lister    fs.Lister
	watcher   *fsnotify.Watcher

	cfg     config.Config
	cfgPath string

	currentPath string
	entries     []fs.Entry
	selected    int
	scroll      int
	navStack    []navFrame

	width      int
	height     int
	status     string
	shouldQuit bool
}

// NewApplication initializes the screen and loads the starting directory.
func NewApplication(cfg config.Config, cfgPath string) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		screen.Fini()
		return nil, err
	}

	app := &Application{
		screen:      screen,
		queue:       event.NewQueue(32),
		registry:    proc.NewRegistry(),
		renderer:    renderui.NewRenderer(screen),
		lister:      fs.DirLister{},
		cfg:         cfg,
		cfgPath:     cfgPath,
		currentPath: cwd,
	}

	app.previewer = preview.NewPreviewer(
		app.lister,
		fs.SniffResolver{},
		app.registry,
		app.queue,
		func() config.Config { return app.cfg },
	)

	app.width, app.height = screen.Size()
	app.previewer.Resize(app.previewPaneSize())

	if err := app.loadDirectory(cwd); err != nil {
		screen.Fini()
		return nil, err
	}
	app.previewSelection()

	if cfgPath != "" {
		if watcher, err := config.Watch(cfgPath, func() {
			app.queue.Dispatch(event.ConfigChanged{})
		}); err == nil {
			app.watcher = watcher
		}
	}

	return app, nil
}

// Close releases the screen and any running previewer subprocess.
func (app *Application) Close() error {
	app.previewer.SetStale()
	app.registry.Kill()
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	app.screen.Fini()
	return nil
}

// GetCurrentPath returns the directory to report on exit.
func (app *Application) GetCurrentPath() string {
	return app.currentPath
}

func (app *Application) previewPaneSize() (int, int) {
	listWidth := renderui.ListPaneWidth(app.width)
	w := app.width - listWidth - 1
	if w < 0 {
		w = 0
	}
	h := app.height - 2
	if h < 0 {
		h = 0
	}
	return w, h
}

func (app *Application) loadDirectory(dir string) error {
	entries, err := app.lister.List(dir, app.cfg.ShowHidden)
	if err != nil {
		return err
	}
	app.currentPath = dir
	app.entries = entries
	app.selected = 0
	app.scroll = 0
	return nil
}

// previewSelection points the previewer at the selected entry.
func (app *Application) previewSelection() {
	if app.selected < 0 || app.selected >= len(app.entries) {
		return
	}
	app.previewer.SetFile(app.entries[app.selected])
}

func (app *Application) frame() renderui.Frame {
	return renderui.Frame{
		Path:         app.currentPath,
		Entries:      app.entries,
		Selected:     app.selected,
		Scroll:       app.scroll,
		PreviewLines: app.previewer.VisibleLines(),
		Status:       app.status,
	}
}
