package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	apppkg "github.com/kk-code-lab/twindir/internal/app"
	"github.com/kk-code-lab/twindir/internal/config"
	"github.com/kk-code-lab/twindir/internal/logging"
)

func main() {
	// Fall back to UTF-8 so non-ASCII file names render on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cfg, flags, err := config.FromArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if flags.Help {
		fmt.Print(flags.Usage())
		os.Exit(0)
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := apppkg.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("init failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
}
