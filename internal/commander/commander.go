// Package commander coordinates the two panes: it owns the focus, routes
// keys to the focused pane and runs moves between the panes.
package commander

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kk-code-lab/twindir/internal/pane"
	"github.com/kk-code-lab/twindir/internal/ui/input"
)

// Focus names one of the two panes.
type Focus int

const (
	FocusLeft Focus = iota
	FocusRight
)

func (f Focus) String() string {
	if f == FocusRight {
		return "right"
	}
	return "left"
}

// Other returns the opposite side.
func (f Focus) Other() Focus {
	if f == FocusLeft {
		return FocusRight
	}
	return FocusLeft
}

// Control is an event on the controls channel.
type Control int

const (
	ControlMoveSelected Control = iota + 1
)

// Pane is the part of pane.Controller the commander drives.
type Pane interface {
	Post(ev pane.Event)
	Drain() int
	Refresh()
	MoveSelected(dest string) pane.MoveReport
	Snapshot(focused bool) pane.Snapshot
	CurrentPath() string
	Close() error
}

// Commander owns both panes and the focus.
type Commander struct {
	panes    [2]Pane
	focus    Focus
	controls chan Control
	decoder  input.Decoder
	status   string
	log      *zap.Logger
}

// New wraps two already constructed panes. Focus starts on the left.
func New(left, right Pane, logger *zap.Logger) *Commander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Commander{
		panes:    [2]Pane{left, right},
		focus:    FocusLeft,
		controls: make(chan Control, 1),
		log:      logger,
	}
}

// Options configures both panes built by Open.
type Options struct {
	Left          string
	Right         string
	Debounce      time.Duration
	RefreshPolicy pane.RefreshPolicy
	Logger        *zap.Logger
	Wake          func()
}

// Open builds both panes concurrently and returns a commander over them. If
// either pane fails the other one is closed.
func Open(ctx context.Context, opts Options) (*Commander, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var controllers [2]*pane.Controller
	paths := [2]string{opts.Left, opts.Right}
	g, gctx := errgroup.WithContext(ctx)
	for i := range controllers {
		side := Focus(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := pane.New(pane.Options{
				Name:          side.String(),
				Path:          paths[side],
				Debounce:      opts.Debounce,
				RefreshPolicy: opts.RefreshPolicy,
				Logger:        logger.Named("pane." + side.String()),
				Wake:          opts.Wake,
			})
			if err != nil {
				return fmt.Errorf("%s pane: %w", side, err)
			}
			controllers[side] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, c := range controllers {
			if c != nil {
				_ = c.Close()
			}
		}
		return nil, err
	}

	return New(controllers[FocusLeft], controllers[FocusRight], logger.Named("commander")), nil
}

// Focus returns the focused side.
func (c *Commander) Focus() Focus {
	return c.focus
}

// SetFocus moves the focus to side.
func (c *Commander) SetFocus(side Focus) {
	if side != FocusLeft && side != FocusRight {
		return
	}
	c.focus = side
}

// ToggleFocus swaps the focused pane.
func (c *Commander) ToggleFocus() {
	c.focus = c.focus.Other()
}

// Pane returns the pane on side.
func (c *Commander) Pane(side Focus) Pane {
	return c.panes[side]
}

// Status returns the last user-facing message.
func (c *Commander) Status() string {
	return c.status
}

// SetStatus replaces the user-facing message.
func (c *Commander) SetStatus(msg string) {
	c.status = msg
}

// RequestMove queues a move of the focused pane's selection. Requests made
// before the next Tick collapse into one.
func (c *Commander) RequestMove() {
	select {
	case c.controls <- ControlMoveSelected:
	default:
	}
}

// HandleKey routes a key event. Global keys are handled here; every other key
// is decoded against the focused pane and queued on it until the next Tick.
// The returned command lets the caller react to quit and suspend.
func (c *Commander) HandleKey(ev *tcell.EventKey, pageStep int) input.Command {
	cmd := input.GlobalCommand(ev)
	switch cmd {
	case input.CommandFocusLeft:
		c.SetFocus(FocusLeft)
	case input.CommandFocusRight:
		c.SetFocus(FocusRight)
	case input.CommandToggleFocus:
		c.ToggleFocus()
	case input.CommandMoveSelected:
		c.RequestMove()
	case input.CommandNone:
		focused := c.panes[c.focus]
		if pev, ok := c.decoder.Decode(ev, focused.Snapshot(true), pageStep); ok {
			focused.Post(pev)
		}
	}
	return cmd
}

// Post queues an event on the pane at side.
func (c *Commander) Post(side Focus, ev pane.Event) {
	c.panes[side].Post(ev)
}

// Tick drains both panes, then runs pending controls.
func (c *Commander) Tick() {
	c.panes[FocusLeft].Drain()
	c.panes[FocusRight].Drain()

	for {
		select {
		case ctl := <-c.controls:
			c.runControl(ctl)
		default:
			return
		}
	}
}

func (c *Commander) runControl(ctl Control) {
	switch ctl {
	case ControlMoveSelected:
		src := c.panes[c.focus]
		dst := c.panes[c.focus.Other()]
		dest := dst.CurrentPath()

		report := src.MoveSelected(dest)
		dst.Refresh()
		c.status = describeMove(report)
		c.log.Info("move finished",
			zap.Stringer("from", c.focus),
			zap.String("dest", dest),
			zap.Int("moved", report.Moved),
			zap.Int("failed", len(report.Failed)))
	}
}

// Snapshots returns the left and right snapshots with the focus flag set.
func (c *Commander) Snapshots() (left, right pane.Snapshot) {
	left = c.panes[FocusLeft].Snapshot(c.focus == FocusLeft)
	right = c.panes[FocusRight].Snapshot(c.focus == FocusRight)
	return left, right
}

// Close closes both panes and returns the first error.
func (c *Commander) Close() error {
	var first error
	for _, p := range c.panes {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func describeMove(r pane.MoveReport) string {
	switch {
	case r.Skipped:
		return "both panes show the same directory"
	case r.Moved == 0 && len(r.Failed) == 0:
		return "nothing selected"
	case len(r.Failed) == 0:
		if r.Moved == 1 {
			return "moved 1 item"
		}
		return fmt.Sprintf("moved %d items", r.Moved)
	case len(r.Failed) == 1:
		return fmt.Sprintf("moved %d, 1 failed: %v", r.Moved, r.Failed[0].Err)
	default:
		return fmt.Sprintf("moved %d, %d failed", r.Moved, len(r.Failed))
	}
}
