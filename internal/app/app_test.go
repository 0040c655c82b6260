package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/menu"
)

func TestNewDesktopLaunchesStartupApps(t *testing.T) {
	d, err := NewDesktop(Config{RegistryEnabled: true, Launch: []string{"calculator", "browser"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Store().WindowCount(); got != 2 {
		t.Fatalf("expected 2 windows, got %d", got)
	}
	win, ok := d.Store().ActiveWindow()
	if !ok || win.Type != "browser" {
		t.Fatalf("expected the last launch active, got %+v", win)
	}
}

func TestNewDesktopUnknownApp(t *testing.T) {
	_, err := NewDesktop(Config{Launch: []string{"spreadsheet"}})
	if !errors.Is(err, desktop.ErrUnknownApp) {
		t.Fatalf("expected ErrUnknownApp, got %v", err)
	}
}

func TestNewDesktopReadsMenuFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	body := "- label: Tools\n  content:\n    - label: About\n      action: desktop:about\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write menu file: %v", err)
	}
	d, err := NewDesktop(Config{MenuFile: path, RegistryEnabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	labels := menu.Labels(d.MenuBar())
	if len(labels) != 2 || labels[1] != "Tools" {
		t.Fatalf("expected webtop and Tools, got %v", labels)
	}
}

func TestNewDesktopMissingMenuFile(t *testing.T) {
	if _, err := NewDesktop(Config{MenuFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for a missing menu file")
	}
}
