package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/blendboard/internal/app"
	"github.com/atomicstack/blendboard/internal/config"
	"github.com/atomicstack/blendboard/internal/logging"
	"github.com/atomicstack/blendboard/internal/logging/events"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupPayload(cfg, probeTerminal(os.Stdout.Fd())))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminal is what the board learns about the output descriptor before the
// program takes it over.
type terminal struct {
	Interactive bool   `json:"interactive"`
	Cygwin      bool   `json:"cygwin,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Error       string `json:"error,omitempty"`
}

func probeTerminal(fd uintptr) terminal {
	t := terminal{
		Interactive: isatty.IsTerminal(fd),
		Cygwin:      isatty.IsCygwinTerminal(fd),
	}
	if !t.Interactive {
		return t
	}
	w, h, err := term.GetSize(int(fd))
	if err != nil {
		t.Error = err.Error()
		return t
	}
	t.Width, t.Height = w, h
	return t
}

// startupPayload describes the board about to be shown: where its catalog
// comes from, how pages change and what the terminal offers.
func startupPayload(cfg config.Config, tty terminal) map[string]interface{} {
	source := cfg.App.CatalogPath
	if source == "" {
		source = "built-in"
	}
	page := cfg.App.RootPage
	if page == "" {
		page = "(first)"
	}
	mode := "interactive"
	switch {
	case cfg.App.Snapshot:
		mode = "snapshot"
	case !tty.Interactive && !tty.Cygwin:
		mode = "no-tty"
	}
	payload := map[string]interface{}{
		"catalog":    source,
		"watch":      cfg.App.CatalogPath != "" && !cfg.App.Snapshot,
		"poll":       cfg.App.PollInterval.String(),
		"transition": cfg.App.Transition,
		"page":       page,
		"mode":       mode,
		"size":       viewportSize(cfg.App, tty),
		"tty":        tty,
		"flags":      cfg.Flags,
		"argv":       cfg.Args,
		"logFile":    logging.Path(),
	}
	return payload
}

// viewportSize reports the size the board will draw at: fixed flags win over
// the terminal.
func viewportSize(a app.Config, tty terminal) string {
	w, h := a.Width, a.Height
	if w == 0 {
		w = tty.Width
	}
	if h == 0 {
		h = tty.Height
	}
	if w == 0 && h == 0 {
		return "auto"
	}
	return fmt.Sprintf("%dx%d", w, h)
}
