package ui

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/webtop/internal/format/table"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleDiagnosticsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "?", "q", "enter":
		m.setMode(ModeDesktop)
	}
	return nil
}

// diagnosticsLines describes the registry behind the current menu bar: one
// row per fragment in merge order.
func (m *Model) diagnosticsLines() []string {
	reg := m.desktop.Registry()
	scope := "desktop"
	if win, ok := m.activeWindow(); ok {
		scope = win.Label()
	}
	status := "enabled"
	if !reg.Enabled() {
		status = "disabled"
	}
	lines := []string{
		fmt.Sprintf("menus for %s, registry %s, revision %d", scope, status, m.desktop.MenuRevision()),
		"",
	}
	frags := reg.Fragments()
	if len(frags) == 0 {
		return append(lines, "no fragments registered; the bar shows the defaults")
	}
	rows := [][]string{{"ID", "COMPONENT", "MENU", "PRIORITY", "STRATEGY", "EXCL", "ITEMS"}}
	for _, f := range frags {
		excl := ""
		if f.Exclusive {
			excl = "yes"
		}
		rows = append(rows, []string{
			f.ID,
			f.Component,
			f.Label,
			string(f.Priority),
			string(f.Strategy),
			excl,
			strconv.Itoa(len(f.Content)),
		})
	}
	aligns := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight}
	return append(lines, table.Format(rows, aligns)...)
}
