package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"slices"

	statepkg "github.com/kk-code-lab/wayfinder/internal/state"
)

var commandBuilder = exec.Command

var openTTY = func() (*os.File, error) {
	if runtime.GOOS == "windows" {
		return nil, errors.New("no controlling terminal device")
	}
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// runExternal hands the terminal to an editor or shell until it exits.
func (app *Application) runExternal(cmd statepkg.ExternalCommand) error {
	var args []string
	dir := ""
	switch c := cmd.(type) {
	case statepkg.EditRequest:
		if len(app.editorCmd) == 0 {
			return errors.New("no editor configured")
		}
		args = append(slices.Clone(app.editorCmd), c.Path)
	case statepkg.ShellRequest:
		if len(app.shellCmd) == 0 {
			return errors.New("no shell configured")
		}
		args = slices.Clone(app.shellCmd)
		dir = c.Dir
	default:
		return fmt.Errorf("unsupported external command %T", cmd)
	}

	app.log.WithField("args", args).Debug("handing terminal to external command")
	return app.runInTerminal(args, dir)
}

func (app *Application) runInTerminal(args []string, dir string) error {
	tty, err := openTTY()
	if err != nil {
		return app.runInTerminalFallback(args, dir)
	}
	defer func() {
		_ = tty.Close()
	}()

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	runErr := cmd.Run()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", args[0], runErr)
	}
	return nil
}

func (app *Application) runInTerminalFallback(args []string, dir string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}
