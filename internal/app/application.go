package app

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kk-code-lab/twindir/internal/commander"
	"github.com/kk-code-lab/twindir/internal/config"
	"github.com/kk-code-lab/twindir/internal/pane"
	renderui "github.com/kk-code-lab/twindir/internal/ui/render"
)

var newScreenFn = tcell.NewScreen

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	cmdr     *commander.Commander
	renderer *renderui.Renderer
	log      *zap.Logger

	shouldQuit  bool
	helpVisible bool
	dirty       bool

	lastPrints [2]uint64
	lastStatus string

	// afterRender runs on the loop goroutine after each pane redraw.
	afterRender func(left, right pane.Snapshot)

	mouseDown     bool
	lastClickKey  [2]int
	lastClickTime time.Time

	closeOnce sync.Once
}

// NewApplication opens the terminal and both panes.
func NewApplication(cfg config.Config, logger *zap.Logger) (*Application, error) {
	screen, err := newScreenFn()
	if err != nil {
		return nil, err
	}
	return newApplication(screen, cfg, logger)
}

func newApplication(screen tcell.Screen, cfg config.Config, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	wake := func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}

	cmdr, err := commander.Open(context.Background(), commander.Options{
		Left:          cfg.Left,
		Right:         cfg.Right,
		Debounce:      cfg.Debounce,
		RefreshPolicy: cfg.RefreshPolicy,
		Logger:        logger,
		Wake:          wake,
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}

	logger.Info("started",
		zap.String("left", cfg.Left),
		zap.String("right", cfg.Right),
		zap.Float64("scale", cfg.Scale))

	return &Application{
		screen:   screen,
		cmdr:     cmdr,
		renderer: renderui.NewRenderer(screen, cfg.Scale),
		log:      logger.Named("app"),
		dirty:    true,
	}, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	app.closeOnce.Do(func() {
		err = app.cmdr.Close()
		app.screen.Fini()
	})
	return err
}
