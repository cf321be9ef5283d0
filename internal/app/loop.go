package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kk-code-lab/twindir/internal/commander"
	"github.com/kk-code-lab/twindir/internal/pane"
	inputui "github.com/kk-code-lab/twindir/internal/ui/input"
	renderui "github.com/kk-code-lab/twindir/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

// Run processes terminal events until the user quits. Every event is
// followed by a commander tick, so queued pane events and requested moves
// are handled on this goroutine only.
func (app *Application) Run() {
	app.render()

	eventChan := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
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

	for !app.shouldQuit {
		select {
		case ev := <-eventChan:
			app.handleEvent(ev)
		case <-sigContCh:
			if app.resumeAfterStop() {
				app.dirty = true
			}
		}
		app.step()
	}
	app.log.Info("quit")
}

// step drains pane queues, runs pending controls and repaints if anything
// visible changed.
func (app *Application) step() {
	app.cmdr.Tick()
	app.render()
}

func (app *Application) render() {
	if app.helpVisible {
		if app.dirty {
			app.renderer.RenderHelp()
			app.dirty = false
		}
		return
	}

	left, right := app.cmdr.Snapshots()
	status := app.cmdr.Status()
	prints := [2]uint64{left.Fingerprint, right.Fingerprint}
	if !app.dirty && prints == app.lastPrints && status == app.lastStatus {
		return
	}
	app.renderer.Render(left, right, status)
	app.lastPrints = prints
	app.lastStatus = status
	app.dirty = false
	if app.afterRender != nil {
		app.afterRender(left, right)
	}
}

func (app *Application) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.handleKey(ev)
	case *tcell.EventResize:
		app.screen.Sync()
		app.dirty = true
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		// Wake from a watcher or resume; the following tick does the work.
	}
}

func (app *Application) handleKey(ev *tcell.EventKey) {
	if app.helpVisible {
		if ev.Key() == tcell.KeyCtrlC {
			app.shouldQuit = true
			return
		}
		switch {
		case ev.Key() == tcell.KeyEscape,
			ev.Key() == tcell.KeyRune && (ev.Rune() == '?' || ev.Rune() == 'q' || ev.Rune() == 'Q'):
			app.helpVisible = false
			app.dirty = true
		}
		return
	}

	_, h := app.screen.Size()
	switch cmd := app.cmdr.HandleKey(ev, renderui.PageStep(h)); cmd {
	case inputui.CommandQuit:
		app.shouldQuit = true
	case inputui.CommandSuspend:
		app.log.Debug("suspend")
		app.suspendToShell()
	case inputui.CommandToggleHelp:
		app.helpVisible = true
		app.dirty = true
	}
}

// handleMouse focuses the clicked pane and moves its cursor to the clicked
// row. A second click on the same directory row within the double click
// threshold opens it.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasDown := app.mouseDown
	app.mouseDown = pressed
	if !pressed || wasDown || app.helpVisible {
		return
	}

	x, y := ev.Position()
	side, item, ok := app.renderer.PaneAt(x, y)
	if !ok {
		return
	}
	focus := commander.Focus(side)
	if app.cmdr.Focus() != focus {
		app.cmdr.SetFocus(focus)
		app.dirty = true
	}
	if item < 0 {
		return
	}

	snap := app.cmdr.Pane(focus).Snapshot(true)
	if item >= len(snap.Items) {
		return
	}

	now := time.Now()
	key := [2]int{side, item}
	double := key == app.lastClickKey && now.Sub(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = key
	app.lastClickTime = now

	app.cmdr.Post(focus, pane.SelectionMovedEvent{Index: item})
	if double && snap.Items[item].IsDir() {
		app.log.Debug("open by double click", zap.String("path", snap.Items[item].FullPath))
		app.cmdr.Post(focus, pane.DirectoryOpenedEvent{Path: snap.Items[item].FullPath})
		app.lastClickTime = time.Time{}
	}
}
