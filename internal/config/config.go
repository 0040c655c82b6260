package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/webtop/internal/app"
	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envWidth        = "WEBTOP_WIDTH"
	envHeight       = "WEBTOP_HEIGHT"
	envShowFooter   = "WEBTOP_FOOTER"
	envVerbose      = "WEBTOP_VERBOSE"
	envTrace        = "WEBTOP_TRACE"
	envLogFile      = "WEBTOP_LOG_FILE"
	envMenuFile     = "WEBTOP_MENU_FILE"
	envMenuRegistry = "WEBTOP_MENU_REGISTRY"
	envLaunch       = "WEBTOP_LAUNCH"
	envAllowDomains = "WEBTOP_ALLOW_DOMAINS"
	envBlockDomains = "WEBTOP_BLOCK_DOMAINS"
	envPoll         = "WEBTOP_POLL_INTERVAL"
)

const defaultPollInterval = time.Second

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("webtop", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "YAML file with the default menu bar")
	registry := fs.Bool("menu-registry", envOrBool(env, envMenuRegistry, true), "let applications contribute menus")
	launch := fs.String("launch", envOrDefault(env, envLaunch, ""), "comma-separated applications to open at startup")
	allow := fs.String("allow-domains", envOrDefault(env, envAllowDomains, ""), "comma-separated domains browser windows may open")
	block := fs.String("block-domains", envOrDefault(env, envBlockDomains, ""), "comma-separated domains browser windows refuse")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, defaultPollInterval), "interval between clock and page-load polls")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *poll <= 0 {
		return Config{}, fmt.Errorf("poll must be > 0 (got %s)", *poll)
	}

	cfg := Config{
		App: app.Config{
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Verbose:         *verbose,
			MenuFile:        *menuFile,
			RegistryEnabled: *registry,
			Launch:          splitList(*launch),
			PollInterval:    *poll,
			URLPolicy: desktop.URLPolicy{
				AllowedDomains: splitList(*allow),
				BlockedDomains: splitList(*block),
			},
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"menuFile":     *menuFile,
			"menuRegistry": strconv.FormatBool(*registry),
			"launch":       *launch,
			"allowDomains": *allow,
			"blockDomains": *block,
			"poll":         poll.String(),
		},
		Args: append([]string(nil), args...),
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

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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

// Validate checks the values that can only be judged against the bundled
// applications or the filesystem.
func Validate(cfg Config) error {
	known := make(map[string]bool)
	for _, a := range desktop.BundledApps() {
		known[a.Type] = true
	}
	var errs []error
	for _, typ := range cfg.App.Launch {
		if !known[typ] {
			errs = append(errs, fmt.Errorf("launch: %w: %q", desktop.ErrUnknownApp, typ))
		}
	}
	if cfg.App.MenuFile != "" {
		if _, err := menu.LoadBar(cfg.App.MenuFile); err != nil {
			errs = append(errs, fmt.Errorf("menu-file: %w", err))
		}
	}
	return errors.Join(errs...)
}
