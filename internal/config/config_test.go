package config

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/blendboard/internal/app"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.PollInterval != defaultPoll {
		t.Fatalf("expected default poll, got %s", cfg.App.PollInterval)
	}
	if cfg.App.Transition != app.TransitionSync {
		t.Fatalf("expected sync transition, got %q", cfg.App.Transition)
	}
	if cfg.App.CatalogPath != "" || cfg.App.ShowFooter || cfg.Logging.Trace {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestEnvironmentOverridesAndFlagsWin(t *testing.T) {
	env := []string{
		"BLENDBOARD_CATALOG=/tmp/env.yaml",
		"BLENDBOARD_WIDTH=100",
		"BLENDBOARD_FOOTER=true",
		"BLENDBOARD_POLL=250ms",
		"BLENDBOARD_TRANSITION=Scheduled",
		"BLENDBOARD_PAGE=inbox",
		"BLENDBOARD_TRACE=not-a-bool",
		"malformed",
	}
	cfg, err := LoadArgs([]string{"-catalog", "/tmp/flag.yaml", "-height", "30"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.CatalogPath != "/tmp/flag.yaml" {
		t.Fatalf("expected flag to win, got %q", cfg.App.CatalogPath)
	}
	if cfg.App.Width != 100 || cfg.App.Height != 30 || !cfg.App.ShowFooter {
		t.Fatalf("unexpected sizes %+v", cfg.App)
	}
	if cfg.App.PollInterval != 250*time.Millisecond {
		t.Fatalf("expected env poll, got %s", cfg.App.PollInterval)
	}
	if cfg.App.Transition != app.TransitionScheduled || cfg.App.RootPage != "inbox" {
		t.Fatalf("unexpected transition/page %+v", cfg.App)
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected unparsable bool to fall back")
	}
	if cfg.Flags["catalog"] != "/tmp/flag.yaml" || cfg.Flags["poll"] != "250ms" {
		t.Fatalf("unexpected flags map %v", cfg.Flags)
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := map[string][]string{
		"negative width":     {"-width", "-1"},
		"negative height":    {"-height", "-2"},
		"zero poll":          {"-poll", "0s"},
		"unknown transition": {"-transition", "fade"},
		"unknown flag":       {"-socket", "x"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadArgs(args, nil); err == nil {
				t.Fatalf("expected error for %s", strings.Join(args, " "))
			}
		})
	}
}
