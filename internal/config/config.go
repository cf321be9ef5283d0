// Package config resolves the startup configuration from command-line flags
// and an optional YAML file. Flags set on the command line win over the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/twindir/internal/pane"
	"github.com/kk-code-lab/twindir/internal/watch"
)

const (
	appName        = "twindir"
	configFileName = "config.yaml"
	defaultLogName = "twindir.log"
)

var (
	userHomeDirFn   = os.UserHomeDir
	userConfigDirFn = os.UserConfigDir
	tempDirFn       = os.TempDir
)

// Config is the resolved startup configuration.
type Config struct {
	Left          string
	Right         string
	Scale         float64
	Debounce      time.Duration
	RefreshPolicy pane.RefreshPolicy
	LogLevel      string
	LogFormat     string
	LogFile       string
}

// Flags holds the parsed command line.
type Flags struct {
	Left       string
	Right      string
	Scale      float64
	ConfigPath string
	LogLevel   string
	LogFile    string
	Debounce   time.Duration
	Refresh    string
	Help       bool

	set     *pflag.FlagSet
	changed map[string]bool
}

// Changed reports whether name was given on the command line.
func (f *Flags) Changed(name string) bool {
	return f.changed[name]
}

// Usage returns the help text.
func (f *Flags) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - twin-pane file commander\n\nUSAGE:\n    %s [OPTIONS]\n\nOPTIONS:\n", appName, appName)
	b.WriteString(f.set.FlagUsages())
	return b.String()
}

// File mirrors the YAML configuration file.
type File struct {
	Left          string   `yaml:"left"`
	Right         string   `yaml:"right"`
	Scale         *float64 `yaml:"scale"`
	Debounce      string   `yaml:"debounce"`
	RefreshPolicy string   `yaml:"refresh_policy"`
	Log           struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"log"`
}

// Parse parses args (without the program name). -h/--help sets Help and is
// not an error.
func Parse(args []string) (*Flags, error) {
	f := &Flags{changed: make(map[string]bool)}
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVar(&f.Left, "left", "", "initial directory of the left pane (default: home)")
	fs.StringVar(&f.Right, "right", "", "initial directory of the right pane (default: --left, else home)")
	fs.Float64Var(&f.Scale, "scale", 1.0, "UI scale factor applied to column widths")
	fs.StringVar(&f.ConfigPath, "config", "", "configuration file (default: <user config dir>/twindir/config.yaml)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&f.LogFile, "log-file", "", "log file (default: <temp dir>/twindir.log)")
	fs.DurationVar(&f.Debounce, "debounce", watch.DefaultDebounce, "window that coalesces directory change bursts")
	fs.StringVar(&f.Refresh, "refresh", "first", "cursor after external changes: first or preserve")
	fs.BoolVarP(&f.Help, "help", "h", false, "show this help message and exit")
	f.set = fs

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			f.Help = true
			return f, nil
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	fs.Visit(func(fl *pflag.Flag) {
		f.changed[fl.Name] = true
	})
	return f, nil
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := userConfigDirFn()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Load reads the YAML file at path. A missing file yields an empty File
// unless required is set.
func Load(path string, required bool) (*File, error) {
	file := &File{}
	if path == "" {
		return file, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return file, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return file, nil
}

// Resolve merges file and flags, applies defaults and validates the result.
func Resolve(flags *Flags, file *File) (Config, error) {
	if file == nil {
		file = &File{}
	}
	cfg := Config{
		Scale:     1.0,
		Debounce:  watch.DefaultDebounce,
		LogLevel:  "info",
		LogFormat: "console",
	}

	left := pick(file.Left, flags.Left, flags.Changed("left"))
	right := pick(file.Right, flags.Right, flags.Changed("right"))

	if file.Scale != nil {
		cfg.Scale = *file.Scale
	}
	if flags.Changed("scale") {
		cfg.Scale = flags.Scale
	}
	if cfg.Scale <= 0 || math.IsNaN(cfg.Scale) || math.IsInf(cfg.Scale, 0) {
		return Config{}, fmt.Errorf("scale must be a positive number, got %v", cfg.Scale)
	}

	if file.Debounce != "" {
		d, err := time.ParseDuration(file.Debounce)
		if err != nil {
			return Config{}, fmt.Errorf("invalid debounce %q: %w", file.Debounce, err)
		}
		cfg.Debounce = d
	}
	if flags.Changed("debounce") {
		cfg.Debounce = flags.Debounce
	}
	if cfg.Debounce <= 0 {
		return Config{}, fmt.Errorf("debounce must be positive, got %v", cfg.Debounce)
	}

	policy, err := pane.ParseRefreshPolicy(pick(file.RefreshPolicy, flags.Refresh, flags.Changed("refresh")))
	if err != nil {
		return Config{}, err
	}
	cfg.RefreshPolicy = policy

	if level := pick(file.Log.Level, flags.LogLevel, flags.Changed("log-level")); level != "" {
		cfg.LogLevel = level
	}
	if file.Log.Format != "" {
		cfg.LogFormat = file.Log.Format
	}
	cfg.LogFile = pick(file.Log.File, flags.LogFile, flags.Changed("log-file"))
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(tempDirFn(), defaultLogName)
	}

	if left == "" {
		home, err := userHomeDirFn()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		left = home
	}
	if right == "" {
		right = left
	}

	if cfg.Left, err = resolveDir("left", left); err != nil {
		return Config{}, err
	}
	if cfg.Right, err = resolveDir("right", right); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromArgs runs Parse, Load and Resolve. When usage was requested
// flags.Help is set and cfg is empty.
func FromArgs(args []string) (cfg Config, flags *Flags, err error) {
	flags, err = Parse(args)
	if err != nil {
		return Config{}, nil, err
	}
	if flags.Help {
		return Config{}, flags, nil
	}

	path, required := flags.ConfigPath, flags.Changed("config")
	if !required {
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}
	file, err := Load(path, required)
	if err != nil {
		return Config{}, flags, err
	}
	cfg, err = Resolve(flags, file)
	return cfg, flags, err
}

func pick(fileValue, flagValue string, flagSet bool) string {
	if flagSet {
		return flagValue
	}
	return fileValue
}

func resolveDir(side, path string) (string, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("%s path %s: %w", side, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%s path: %w", side, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s path %s is not a directory", side, abs)
	}
	return abs, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := userHomeDirFn()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
