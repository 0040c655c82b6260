package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/webtop/internal/app"
	"github.com/atomicstack/webtop/internal/config"
	"github.com/atomicstack/webtop/internal/logging"
	"github.com/atomicstack/webtop/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("stdout is not a terminal; pass -width and -height to render anyway")

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := probeTerminals()
	events.App.Start(startupTracePayload(runtimeCfg, tty))
	if err := requireTerminal(runtimeCfg.App, tty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// requireTerminal refuses to start the desktop on a pipe unless the viewport
// is fixed, since there is no size to lay windows out in otherwise.
func requireTerminal(cfg app.Config, tty ttyReport) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		return nil
	}
	if probe, ok := tty.lookup("stdout"); ok && probe.IsTerminal {
		return nil
	}
	return errNoTerminal
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyReport) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

type ttyReport struct {
	Size   *ttySize   `json:"size,omitempty"`
	Probes []ttyProbe `json:"probes"`
}

type ttySize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Error      string `json:"error,omitempty"`
}

func (r ttyReport) lookup(name string) (ttyProbe, bool) {
	for _, probe := range r.Probes {
		if probe.Name == name {
			return probe, true
		}
	}
	return ttyProbe{}, false
}

// probeTerminals records which standard descriptors are terminals and the
// first size one of them reports.
func probeTerminals() ttyReport {
	var report ttyReport
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		probe := ttyProbe{Name: strings.TrimPrefix(f.Name(), "/dev/")}
		fd := int(f.Fd())
		if probe.IsTerminal = term.IsTerminal(fd); probe.IsTerminal {
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case report.Size == nil:
				report.Size = &ttySize{Source: probe.Name, Width: width, Height: height}
			}
		}
		report.Probes = append(report.Probes, probe)
	}
	return report
}
