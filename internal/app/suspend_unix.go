//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func (app *Application) suspendToShell() {
	// Hand the terminal back to the shell before stopping.
	if err := app.screen.Suspend(); err != nil {
		app.log.Warn("suspend failed", zap.Error(err))
		return
	}
	// Stop only this process so job control in the parent shell keeps working.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	app.mouseDown = false
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	return true
}
