package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/blendboard/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envCatalog    = "BLENDBOARD_CATALOG"
	envWidth      = "BLENDBOARD_WIDTH"
	envHeight     = "BLENDBOARD_HEIGHT"
	envShowFooter = "BLENDBOARD_FOOTER"
	envTrace      = "BLENDBOARD_TRACE"
	envLogFile    = "BLENDBOARD_LOG_FILE"
	envPoll       = "BLENDBOARD_POLL"
	envTransition = "BLENDBOARD_TRANSITION"
	envPage       = "BLENDBOARD_PAGE"
)

const defaultPoll = 1500 * time.Millisecond

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("blendboard", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	catalogPath := fs.String("catalog", envOrDefault(env, envCatalog, ""), "path to the YAML catalog (built-in catalog when empty)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, defaultPoll), "catalog poll interval")
	transition := fs.String("transition", envOrDefault(env, envTransition, app.TransitionSync), "page transition: sync or scheduled")
	page := fs.String("page", envOrDefault(env, envPage, ""), "id of the page shown first")
	snapshot := fs.Bool("snapshot", false, "print the first frame and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			CatalogPath:  *catalogPath,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			PollInterval: *poll,
			Transition:   strings.ToLower(strings.TrimSpace(*transition)),
			RootPage:     *page,
			Snapshot:     *snapshot,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"catalog":    *catalogPath,
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"logFile":    *logFile,
			"poll":       poll.String(),
			"transition": *transition,
			"page":       *page,
			"snapshot":   strconv.FormatBool(*snapshot),
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects sizes, intervals and transitions the board cannot use.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive (got %s)", cfg.App.PollInterval)
	}
	switch cfg.App.Transition {
	case app.TransitionSync, app.TransitionScheduled:
	default:
		return fmt.Errorf("unknown transition %q (want %s or %s)", cfg.App.Transition, app.TransitionSync, app.TransitionScheduled)
	}
	return nil
}
