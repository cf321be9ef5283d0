// Package input turns terminal key events into pane events and global
// commander commands.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/twindir/internal/pane"
)

// Command is a twin-pane level intent.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandSuspend
	CommandFocusLeft
	CommandFocusRight
	CommandToggleFocus
	CommandMoveSelected
	CommandToggleHelp
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandSuspend:
		return "suspend"
	case CommandFocusLeft:
		return "focus-left"
	case CommandFocusRight:
		return "focus-right"
	case CommandToggleFocus:
		return "toggle-focus"
	case CommandMoveSelected:
		return "move-selected"
	case CommandToggleHelp:
		return "toggle-help"
	default:
		return "none"
	}
}

// GlobalCommand decodes keys handled above the focused pane. Keys that are
// not global return CommandNone.
func GlobalCommand(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return CommandQuit
	case tcell.KeyCtrlZ:
		return CommandSuspend
	case tcell.KeyLeft:
		return CommandFocusLeft
	case tcell.KeyRight:
		return CommandFocusRight
	case tcell.KeyTab:
		return CommandToggleFocus
	case tcell.KeyF6:
		return CommandMoveSelected
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return CommandNone
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return CommandQuit
		case '?':
			return CommandToggleHelp
		}
	}
	return CommandNone
}

// Decoder maps keys received by the focused pane to pane events.
type Decoder struct{}

// Decode returns the event for ev given the pane's current snapshot and the
// number of rows a page spans. ok is false when the key means nothing to the
// pane or the pane has nothing to act on.
func (Decoder) Decode(ev *tcell.EventKey, snap pane.Snapshot, pageStep int) (pane.Event, bool) {
	count := len(snap.Items)
	cursor := snap.CursorIndex
	if cursor < 0 {
		cursor = 0
	}
	if pageStep < 1 {
		pageStep = 1
	}
	mods := ev.Modifiers()
	shift := mods&tcell.ModShift != 0
	ctrl := mods&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return pane.TraversedUpEvent{}, true

	case tcell.KeyEnter:
		item, ok := snap.CursorItem()
		if !ok || !item.IsDir() {
			return nil, false
		}
		return pane.DirectoryOpenedEvent{Path: item.FullPath}, true

	case tcell.KeyDown:
		if count == 0 {
			return nil, false
		}
		return pane.SelectionMovedEvent{
			Index:     min(cursor+1, count-1),
			Extend:    shift,
			Additive:  ctrl,
			Direction: pane.DirectionDown,
		}, true

	case tcell.KeyUp:
		if count == 0 {
			return nil, false
		}
		return pane.SelectionMovedEvent{
			Index:     max(cursor-1, 0),
			Extend:    shift,
			Additive:  ctrl,
			Direction: pane.DirectionUp,
		}, true

	case tcell.KeyPgDn:
		if count == 0 {
			return nil, false
		}
		return pane.SelectionMovedEvent{Index: wrap(cursor+pageStep, count)}, true

	case tcell.KeyPgUp:
		if count == 0 {
			return nil, false
		}
		return pane.SelectionMovedEvent{Index: wrap(cursor-pageStep, count)}, true
	}
	return nil, false
}

func wrap(index, count int) int {
	return ((index % count) + count) % count
}
