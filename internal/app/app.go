package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/webtop/internal/backend"
	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/menu"
	"github.com/atomicstack/webtop/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	MenuFile        string
	RegistryEnabled bool
	Launch          []string
	PollInterval    time.Duration
	URLPolicy       desktop.URLPolicy
}

// NewDesktop assembles the desktop described by cfg and opens the startup
// applications.
func NewDesktop(cfg Config) (*desktop.Desktop, error) {
	bar := desktop.DefaultMenu()
	if cfg.MenuFile != "" {
		loaded, err := menu.LoadBar(cfg.MenuFile)
		if err != nil {
			return nil, err
		}
		bar = loaded
	}
	d := desktop.New(desktop.Config{
		DefaultMenu:     bar,
		RegistryEnabled: cfg.RegistryEnabled,
		URLPolicy:       cfg.URLPolicy,
	})
	for _, typ := range cfg.Launch {
		if _, err := d.Launch(typ, ""); err != nil {
			return nil, fmt.Errorf("launch: %w", err)
		}
	}
	return d, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	d, err := NewDesktop(cfg)
	if err != nil {
		return err
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	watcher := backend.NewWatcher(d.Store(), interval)
	defer watcher.Stop()
	model := ui.NewModel(ui.Options{
		Desktop:    d,
		Watcher:    watcher,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	events.App.Stop(d.Store().WindowCount())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
