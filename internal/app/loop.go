package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/wayfinder/internal/state"
)

// scanDrainInterval bounds how long a finished scan waits before the loop
// picks it up even when no other event arrives.
const scanDrainInterval = 150 * time.Millisecond

// Run drives the UI until the state asks to quit.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-stop:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	ticker := time.NewTicker(scanDrainInterval)
	defer ticker.Stop()

	for !app.state.ShouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			app.handleAction(action)
			renderPending = true
		case result := <-app.scanner.Results():
			app.handleAction(statepkg.DirectoryLoadedAction(result))
			renderPending = true
		case <-ticker.C:
			if app.drainScanResults() {
				renderPending = true
			}
		case dir := <-app.watcherChanges():
			if dir == app.state.CurrentPath {
				app.handleAction(statepkg.RefreshAction{Reason: "filesystem change"})
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlZ {
			app.suspendToShell()
			return app.resumeAfterStop()
		}
		return app.input.ProcessEvent(ev)
	case *tcell.EventResize:
		app.screen.Sync()
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			app.handleAction(action)
			changed = true
		default:
			return changed
		}
	}
}

// drainScanResults applies every scan result that is already waiting.
func (app *Application) drainScanResults() bool {
	changed := false
	for {
		select {
		case result := <-app.scanner.Results():
			app.handleAction(statepkg.DirectoryLoadedAction(result))
			changed = true
		default:
			return changed
		}
	}
}

// handleAction reduces action and then serves whatever the state queued
// for the terminal owner.
func (app *Application) handleAction(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.log.WithError(err).Warn("action rejected")
	}

	if cmd := app.state.TakeExternalCommand(); cmd != nil {
		err := app.runExternal(cmd)
		app.handleAction(statepkg.ExternalCommandDoneAction{Command: cmd, Err: err})
		return
	}
	app.syncWatcher()
}

func (app *Application) watcherChanges() <-chan string {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Changes()
}
