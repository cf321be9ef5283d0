// Package pane binds one directory listing, its watcher and its selection
// into a single event-driven state machine.
package pane

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	fsutil "github.com/kk-code-lab/twindir/internal/fs"
	"github.com/kk-code-lab/twindir/internal/watch"
)

// eventQueueSize bounds the inbound channel of a pane.
const eventQueueSize = 8

// RefreshPolicy decides where the cursor lands after an external change.
type RefreshPolicy int

const (
	// RefreshFirst selects the first item.
	RefreshFirst RefreshPolicy = iota
	// RefreshPreserve keeps the cursor on the same name when it still exists.
	RefreshPreserve
)

func (p RefreshPolicy) String() string {
	if p == RefreshPreserve {
		return "preserve"
	}
	return "first"
}

// ParseRefreshPolicy accepts "first" or "preserve" (case-insensitive).
func ParseRefreshPolicy(s string) (RefreshPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return RefreshFirst, nil
	case "preserve":
		return RefreshPreserve, nil
	default:
		return RefreshFirst, fmt.Errorf("unknown refresh policy %q (want first or preserve)", s)
	}
}

// Options configures a Controller.
type Options struct {
	Name          string
	Path          string
	Debounce      time.Duration
	RefreshPolicy RefreshPolicy
	Logger        *zap.Logger
	// Wake is called from the watcher goroutine after a change was queued.
	Wake func()
}

type dirWatcher interface {
	Watch(path string) error
	Close() error
}

var newWatcherFn = func(path string, debounce time.Duration, notify func(), logger *zap.Logger) (dirWatcher, error) {
	return watch.New(path, debounce, notify, logger)
}

var moveFn = fsutil.DurableMove

// MoveFailure records one item that could not be moved.
type MoveFailure struct {
	Name string
	Err  error
}

// MoveReport summarizes a MoveSelected batch.
type MoveReport struct {
	Moved   int
	Failed  []MoveFailure
	Skipped bool // destination is the pane's own directory
}

// Controller owns the navigator, watcher, selection and item list of one pane.
// All methods except the watcher callback run on the UI goroutine.
type Controller struct {
	name   string
	nav    *fsutil.Navigator
	items  []fsutil.Entry
	crumbs []string
	sel    *Selection

	watcher dirWatcher
	events  chan Event
	policy  RefreshPolicy
	log     *zap.Logger
	wake    func()
	lastErr error

	closeOnce sync.Once
}

// New lists the initial directory and starts watching it. Either failure is
// returned; the caller treats it as a startup error.
func New(opts Options) (*Controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Path == "" {
		return nil, errors.New("pane path is empty")
	}

	c := &Controller{
		name:   opts.Name,
		nav:    fsutil.NewNavigator(opts.Path),
		events: make(chan Event, eventQueueSize),
		policy: opts.RefreshPolicy,
		log:    logger,
		wake:   opts.Wake,
	}

	items, err := c.nav.List()
	if err != nil {
		return nil, err
	}
	c.setItems(items)
	c.sel = NewSelection(len(items))
	c.selectFirst()

	w, err := newWatcherFn(opts.Path, opts.Debounce, c.filesChanged, logger.Named("watch"))
	if err != nil {
		return nil, err
	}
	c.watcher = w

	c.log.Debug("pane ready", zap.String("path", opts.Path), zap.Int("items", len(items)))
	return c, nil
}

// Name returns the label given in Options.
func (c *Controller) Name() string {
	return c.name
}

// CurrentPath returns the directory the pane shows.
func (c *Controller) CurrentPath() string {
	return c.nav.Current()
}

// LastError returns the most recent listing failure, cleared by the next
// successful listing.
func (c *Controller) LastError() error {
	return c.lastErr
}

// Selection exposes the selection model.
func (c *Controller) Selection() *Selection {
	return c.sel
}

// Post queues an event. When the queue is full it is drained first, so Post
// never drops user input and never blocks.
func (c *Controller) Post(ev Event) {
	for {
		select {
		case c.events <- ev:
			return
		default:
			c.Drain()
		}
	}
}

// Drain applies every queued event in FIFO order and returns how many were
// applied.
func (c *Controller) Drain() int {
	n := 0
	for {
		select {
		case ev := <-c.events:
			c.Apply(ev)
			n++
		default:
			return n
		}
	}
}

// Apply performs the reaction to a single event.
func (c *Controller) Apply(ev Event) {
	switch e := ev.(type) {
	case DirectoryOpenedEvent:
		c.navigate(func(n *fsutil.Navigator) { n.Open(e.Path) })
	case TraversedUpEvent:
		c.navigate(func(n *fsutil.Navigator) { n.GoUp() })
	case SelectionMovedEvent:
		c.sel.Apply(Move{
			Index:     e.Index,
			Extend:    e.Extend,
			Additive:  e.Additive,
			Direction: e.Direction,
		})
	case FilesUpdatedEvent:
		c.Refresh()
	default:
		c.log.Warn("unknown event", zap.String("type", fmt.Sprintf("%T", ev)))
	}
}

// Refresh relists the current directory and repositions the cursor according
// to the refresh policy. A listing failure keeps the previous items.
func (c *Controller) Refresh() {
	prevName := ""
	if cur := c.sel.Cursor(); cur >= 0 && cur < len(c.items) {
		prevName = c.items[cur].Name
	}
	prevCursor := c.sel.Cursor()

	items, err := c.nav.List()
	if err != nil {
		c.lastErr = err
		c.log.Error("refresh failed", zap.String("path", c.nav.Current()), zap.Error(err))
		return
	}
	c.lastErr = nil
	c.setItems(items)
	c.sel.Reset(len(items))

	switch c.policy {
	case RefreshPreserve:
		c.restoreCursor(prevName, prevCursor)
	default:
		c.selectFirst()
	}
}

// MoveSelected durably moves every selected item into dest, continuing past
// per-item failures, then relists and puts the cursor after the last moved
// position.
func (c *Controller) MoveSelected(dest string) MoveReport {
	var report MoveReport
	current := c.nav.Current()

	if filepath.Clean(dest) == filepath.Clean(current) {
		c.log.Info("move skipped, destination is current directory", zap.String("dir", dest))
		report.Skipped = true
		return report
	}

	indices := c.sel.Selected()
	if len(indices) == 0 {
		return report
	}

	maxIndex := indices[len(indices)-1]
	for _, i := range indices {
		if i >= len(c.items) {
			continue
		}
		name := c.items[i].Name
		src := filepath.Join(current, name)
		dst := filepath.Join(dest, name)
		if err := moveFn(src, dst); err != nil {
			c.log.Warn("move failed",
				zap.String("src", src),
				zap.String("dst", dst),
				zap.Stringer("kind", fsutil.KindOf(err)),
				zap.Error(err))
			report.Failed = append(report.Failed, MoveFailure{Name: name, Err: err})
			continue
		}
		c.log.Info("moved", zap.String("src", src), zap.String("dst", dst))
		report.Moved++
	}

	items, err := c.nav.List()
	if err != nil {
		c.lastErr = err
		c.log.Error("relist after move failed", zap.String("path", current), zap.Error(err))
		c.setItems(nil)
		c.sel.Clear()
		return report
	}
	c.lastErr = nil
	c.setItems(items)
	c.sel.Reset(len(items))
	if len(items) > 0 {
		c.sel.SelectSingle(min(maxIndex+1, len(items)-1))
	}
	return report
}

// Snapshot returns a copy of the visible state.
func (c *Controller) Snapshot(focused bool) Snapshot {
	snap := Snapshot{
		Name:            c.name,
		Path:            c.nav.Current(),
		Items:           append([]fsutil.Entry(nil), c.items...),
		Columns:         DefaultColumns(),
		Breadcrumbs:     append([]string(nil), c.crumbs...),
		CursorIndex:     c.sel.Cursor(),
		SelectedIndices: c.sel.Selected(),
		Focused:         focused,
		Err:             c.lastErr,
	}
	snap.Fingerprint = fingerprint(&snap)
	return snap
}

// Close stops the watcher. Queued events are discarded.
func (c *Controller) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.watcher != nil {
			err = c.watcher.Close()
		}
	})
	return err
}

func (c *Controller) navigate(change func(*fsutil.Navigator)) {
	prev := c.nav.Current()
	change(c.nav)
	target := c.nav.Current()
	if target == prev {
		return
	}

	items, err := c.nav.List()
	if err != nil {
		c.nav.Open(prev)
		c.lastErr = fmt.Errorf("cannot open %s: %w", target, err)
		c.log.Error("open failed", zap.String("path", target), zap.Error(err))
		return
	}
	if err := c.watcher.Watch(target); err != nil {
		c.nav.Open(prev)
		c.lastErr = err
		c.log.Error("retarget failed", zap.String("path", target), zap.Error(err))
		return
	}

	c.log.Debug("navigated", zap.String("from", prev), zap.String("to", target))
	c.lastErr = nil
	c.setItems(items)
	c.sel.Reset(len(items))
	c.selectFirst()
}

func (c *Controller) setItems(items []fsutil.Entry) {
	c.items = items
	c.crumbs = c.nav.Breadcrumbs()
}

func (c *Controller) selectFirst() {
	if len(c.items) > 0 {
		c.sel.SelectSingle(0)
	}
}

func (c *Controller) restoreCursor(name string, prev int) {
	if len(c.items) == 0 {
		return
	}
	if name != "" {
		for i, it := range c.items {
			if it.Name == name {
				c.sel.SelectSingle(i)
				return
			}
		}
	}
	if prev < 0 {
		prev = 0
	}
	c.sel.SelectSingle(min(prev, len(c.items)-1))
}

// filesChanged runs on the watcher goroutine. A full queue already holds a
// pending change, so the signal is coalesced.
func (c *Controller) filesChanged() {
	select {
	case c.events <- FilesUpdatedEvent{}:
	default:
	}
	if c.wake != nil {
		c.wake()
	}
}
