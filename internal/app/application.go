package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/wayfinder/internal/config"
	fsutil "github.com/kk-code-lab/wayfinder/internal/fs"
	"github.com/kk-code-lab/wayfinder/internal/logging"
	statepkg "github.com/kk-code-lab/wayfinder/internal/state"
	inputui "github.com/kk-code-lab/wayfinder/internal/ui/input"
	renderui "github.com/kk-code-lab/wayfinder/internal/ui/render"
)

const actionBuffer = 64

// Options configures a new Application.
type Options struct {
	StartDir string // defaults to the working directory
	Config   *config.Config
	Logger   logrus.FieldLogger
}

// Application represents the running app.
type Application struct {
	screen    tcell.Screen
	state     *statepkg.AppState
	reducer   *statepkg.StateReducer
	renderer  *renderui.Renderer
	input     *inputui.InputHandler
	scanner   statepkg.ScanDispatcher
	watcher   *DirWatcher
	actionCh  chan statepkg.Action
	log       logrus.FieldLogger
	editorCmd []string
	shellCmd  []string
}

// NewApplication initialises the terminal and issues the first scan.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	startDir := opts.StartDir
	if startDir == "" {
		cwd, err := GetCwd()
		if err != nil {
			return nil, err
		}
		startDir = cwd
	}

	hide, err := fsutil.NewHideMatcher(cfg.Hide)
	if err != nil {
		logger.WithError(err).Warn("ignoring invalid hide patterns")
	}

	scanner := statepkg.NewAsyncScanDispatcher(hide, logger)
	aliases := cfg.Aliases()
	state := statepkg.NewAppState(startDir, statepkg.Options{
		Scanner: scanner,
		Aliases: aliases,
		Logger:  logger,
	})

	actionCh := make(chan statepkg.Action, actionBuffer)
	app := &Application{
		screen:    screen,
		state:     state,
		reducer:   statepkg.NewStateReducer(),
		renderer:  renderui.NewRenderer(screen),
		input:     inputui.NewInputHandler(actionCh),
		scanner:   scanner,
		actionCh:  actionCh,
		log:       logger,
		editorCmd: detectEditorCommand(),
		shellCmd:  detectShellCommand(runtime.GOOS, os.Getenv),
	}

	if watcher, err := NewDirWatcher(logger); err != nil {
		logger.WithError(err).Warn("directory watcher unavailable")
	} else {
		app.watcher = watcher
	}

	if err := state.Start(); err != nil {
		app.shutdown()
		return nil, fmt.Errorf("initial scan of %s: %w", startDir, err)
	}
	app.syncWatcher()

	logger.WithFields(logrus.Fields{
		"dir":     state.CurrentPath,
		"aliases": aliases.Len(),
		"hide":    len(cfg.Hide),
	}).Info("wayfinder started")
	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.shutdown()
	app.screen.Fini()
	return nil
}

func (app *Application) shutdown() {
	app.scanner.Close()
	if app.watcher != nil {
		app.watcher.Close()
	}
}

// CurrentPath returns the directory being browsed.
func (app *Application) CurrentPath() string {
	return app.state.CurrentPath
}

// syncWatcher points the watcher at the directory currently shown.
func (app *Application) syncWatcher() {
	if app.watcher == nil || app.watcher.Dir() == app.state.CurrentPath {
		return
	}
	if err := app.watcher.Watch(app.state.CurrentPath); err != nil {
		app.log.WithError(err).Warn("cannot watch directory")
	}
}

// GetCwd returns current working directory.
func GetCwd() (string, error) {
	return os.Getwd()
}
