package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/blendboard/internal/backend"
	"github.com/atomicstack/blendboard/internal/catalog"
	"github.com/atomicstack/blendboard/internal/logging/events"
	"github.com/atomicstack/blendboard/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	TransitionSync      = "sync"
	TransitionScheduled = "scheduled"
)

// Config describes user-provided application options.
type Config struct {
	CatalogPath  string
	Width        int
	Height       int
	ShowFooter   bool
	PollInterval time.Duration
	Transition   string
	RootPage     string
	Snapshot     bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg Config, out io.Writer) error {
	c, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	var watcher *backend.Watcher
	if cfg.CatalogPath != "" && !cfg.Snapshot {
		watcher = backend.NewWatcher(cfg.CatalogPath, cfg.PollInterval)
		defer watcher.Stop()
	}

	model, err := ui.NewModel(ui.Options{
		Catalog:    c,
		Source:     cfg.CatalogPath,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Scheduled:  cfg.Transition == TransitionScheduled,
		RootPage:   cfg.RootPage,
	}, watcher)
	if err != nil {
		return err
	}

	if cfg.Snapshot {
		events.App.Snapshot(cfg.Width, cfg.Height)
		_, err := fmt.Fprintln(out, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func loadCatalog(path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}
