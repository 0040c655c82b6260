package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	dockPrefix  = " ▤ "
	emptyHint   = "n new window · 1-4 apps · f10 menus · q quit"
	clockLayout = "15:04:05"
)

type span struct {
	x, w int
}

// View renders the menu bar, the desktop area, the dock and the status line.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderMenuBar())
	lines = append(lines, m.renderDesktop().lines()...)
	lines = append(lines, m.renderDock(), m.renderStatus())
	if m.showFooter {
		lines = append(lines, m.renderFooter())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) menuBarSpans() []span {
	bar := m.menuBar()
	spans := make([]span, len(bar))
	x := 0
	for i, cfg := range bar {
		w := ansi.StringWidth(cfg.Label) + 2
		spans[i] = span{x: x, w: w}
		x += w
	}
	return spans
}

func (m *Model) renderMenuBar() string {
	var b strings.Builder
	for i, cfg := range m.menuBar() {
		style := styles.MenuBarItem
		if m.menus.open && m.menus.index == i {
			style = styles.MenuBarActive
		}
		b.WriteString(style.Render(cfg.Label))
	}
	left := b.String()
	right := ""
	if now := m.desktop.Dispatcher().Clock(); !now.IsZero() {
		right = now.Format(clockLayout) + " "
	}
	if m.pending > 0 {
		right = "… " + right
	}
	return fillLine(left, right, m.width, styles.MenuBar)
}

// fillLine lays left and right out across width on a styled background,
// cutting left when both do not fit.
func fillLine(left, right string, width int, style *lipgloss.Style) string {
	rw := ansi.StringWidth(right)
	if ansi.StringWidth(left)+rw > width {
		room := max(width-rw, 0)
		left = truncate.StringWithTail(left, uint(room), "…")
		if room == 0 {
			right = truncate.String(right, uint(width))
			rw = ansi.StringWidth(right)
		}
	}
	gap := max(width-ansi.StringWidth(left)-rw, 0)
	line := left + strings.Repeat(" ", gap) + right
	if style == nil {
		return line
	}
	return style.Render(line)
}

func (m *Model) renderDesktop() *canvas {
	dw, dh := m.desktopSize()
	c := newCanvas(dw, dh, " ", styles.Desktop)
	wins := m.visibleWindows()
	activeID := m.store.ActiveWindowID()
	for _, win := range wins {
		m.drawWindow(c, win, win.ID == activeID)
	}
	if len(wins) == 0 && dh > 0 {
		hint := truncate.StringWithTail(emptyHint, uint(dw), "…")
		c.put(max((dw-ansi.StringWidth(hint))/2, 0), dh/2, hint, styles.Footer)
	}
	if m.menus.open {
		m.drawDropdowns(c)
	}
	switch m.mode {
	case ModeSwitcher:
		m.drawSwitcher(c)
	case ModeDiagnostics:
		m.drawPanel(c, "Menus", m.diagnosticsLines())
	}
	return c
}

func (m *Model) drawWindow(c *canvas, win state.Window, active bool) {
	r := m.windowRect(win)
	frame, border := styles.Window, lipgloss.NormalBorder()
	title := styles.WindowTitle
	switch {
	case m.drag != nil && m.drag.id == win.ID:
		frame, border, title = styles.WindowMoving, lipgloss.DoubleBorder(), styles.WindowTitleActive
	case active:
		frame, border, title = styles.WindowActive, lipgloss.ThickBorder(), styles.WindowTitleActive
	}
	body := styles.WindowBody
	if desktop.DarkBody(win) {
		body = styles.WindowDark
	}
	c.fill(r.x+1, r.y+1, r.w-2, r.h-2, " ", body)
	c.box(r.x, r.y, r.w, r.h, border, frame)

	controls := ansi.StringWidth(titleControls)
	room := r.w - 3 - controls
	if room > 2 {
		label := truncate.StringWithTail(" "+desktop.Icon(win.Type)+" "+win.Title+" ", uint(room), "…")
		c.put(r.x+1, r.y, label, title)
	}
	c.put(r.x+r.w-1-controls, r.y, titleControls, frame)

	for i, line := range desktop.Body(win, r.w-2) {
		if i >= r.h-2 {
			break
		}
		c.put(r.x+1, r.y+1+i, line, body)
	}
}

// dropdownRects lays out the open dropdown and its submenus in desktop-area
// coordinates.
func (m *Model) dropdownRects() []rect {
	if !m.menus.open {
		return nil
	}
	dw, dh := m.desktopSize()
	spans := m.menuBarSpans()
	rects := make([]rect, 0, len(m.menus.stack))
	for depth, dd := range m.menus.stack {
		r := rect{w: dd.innerWidth() + 2, h: len(dd.rows) + 2}
		if depth == 0 {
			if m.menus.index < len(spans) {
				r.x = spans[m.menus.index].x
			}
		} else {
			parent := rects[depth-1]
			r.x = parent.x + parent.w - 1
			r.y = parent.y + max(m.menus.stack[depth-1].cursor, 0)
			if r.x+r.w > dw {
				r.x = parent.x - r.w + 1
			}
		}
		r.x = max(min(r.x, dw-r.w), 0)
		r.y = max(min(r.y, dh-r.h), 0)
		rects = append(rects, r)
	}
	return rects
}

func (m *Model) drawDropdowns(c *canvas) {
	for depth, r := range m.dropdownRects() {
		dd := m.menus.stack[depth]
		c.fill(r.x+1, r.y+1, r.w-2, r.h-2, " ", styles.Dropdown)
		c.box(r.x, r.y, r.w, r.h, lipgloss.RoundedBorder(), styles.Dropdown)
		inner := r.w - 2
		for i, row := range dd.rows {
			y := r.y + 1 + i
			if row.kind == rowSeparator {
				c.put(r.x, y, "├"+strings.Repeat("─", inner)+"┤", styles.Dropdown)
				continue
			}
			style := styles.DropdownItem
			switch {
			case i == dd.cursor:
				style = styles.DropdownSelected
			case row.disabled:
				style = styles.DropdownDisabled
			}
			text := " " + row.text()
			pad := inner - ansi.StringWidth(text) - ansi.StringWidth(row.shortcut) - 1
			line := text + strings.Repeat(" ", max(pad, 1)) + row.shortcut + " "
			line = truncate.String(line, uint(inner))
			c.put(r.x+1, y, line, style)
			if row.shortcut != "" && style == styles.DropdownItem {
				c.put(r.x+1+inner-1-ansi.StringWidth(row.shortcut), y, row.shortcut, styles.Shortcut)
			}
		}
	}
}

// panelRect centres a box of the given content size on the desktop area.
func (m *Model) panelRect(contentW, contentH int) rect {
	dw, dh := m.desktopSize()
	w := min(contentW+4, dw)
	h := min(contentH+2, dh)
	return rect{x: max((dw-w)/2, 0), y: max((dh-h)/2, 0), w: w, h: h}
}

func (m *Model) drawPanel(c *canvas, title string, lines []string) {
	width := ansi.StringWidth(title) + 2
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	r := m.panelRect(width, len(lines))
	m.drawPanelFrame(c, r, title)
	for i, line := range lines {
		if i >= r.h-2 {
			break
		}
		c.put(r.x+2, r.y+1+i, truncate.StringWithTail(line, uint(max(r.w-4, 0)), "…"), styles.Item)
	}
}

func (m *Model) drawPanelFrame(c *canvas, r rect, title string) {
	c.fill(r.x+1, r.y+1, r.w-2, r.h-2, " ", styles.Dropdown)
	c.box(r.x, r.y, r.w, r.h, lipgloss.RoundedBorder(), styles.Separator)
	if title != "" && r.w > 4 {
		c.put(r.x+2, r.y, truncate.String(" "+title+" ", uint(r.w-4)), styles.Header)
	}
}

func (m *Model) drawSwitcher(c *canvas) {
	lvl := m.switcher
	if lvl == nil {
		return
	}
	visible := m.maxVisibleItems()
	width := 30
	for _, item := range lvl.Full {
		width = max(width, ansi.StringWidth(item.Label)+ansi.StringWidth(item.Detail)+6)
	}
	rows := max(min(len(lvl.Items), visible), 1)
	r := m.panelRect(width, rows)
	title := fmt.Sprintf("%s %d/%d", lvl.Title, len(lvl.Items), len(lvl.Full))
	m.drawPanelFrame(c, r, title)
	inner := max(r.w-4, 0)
	if len(lvl.Items) == 0 {
		c.put(r.x+2, r.y+1, truncate.String("no matches", uint(inner)), styles.FilterPlaceholder)
		return
	}
	end := min(lvl.ViewportOffset+r.h-2, len(lvl.Items))
	for i := lvl.ViewportOffset; i < end; i++ {
		item := lvl.Items[i]
		marker := "  "
		if lvl.IsMarked(item.ID) {
			marker = "✓ "
		}
		style := styles.Item
		if i == lvl.Cursor {
			style = styles.SelectedItem
		}
		pad := inner - ansi.StringWidth(marker+item.Label) - ansi.StringWidth(item.Detail)
		line := marker + item.Label + strings.Repeat(" ", max(pad, 1)) + item.Detail
		c.put(r.x+2, r.y+1+i-lvl.ViewportOffset, truncate.String(line, uint(inner)), style)
	}
}

func (m *Model) dockSpans(items []state.Window) []span {
	spans := make([]span, len(items))
	x := ansi.StringWidth(dockPrefix)
	for i, win := range items {
		w := ansi.StringWidth(dockLabel(win)) + 2
		spans[i] = span{x: x, w: w}
		x += w
	}
	return spans
}

func (m *Model) renderDock() string {
	items := m.dockItems()
	var b strings.Builder
	b.WriteString(dockPrefix)
	if len(items) == 0 {
		b.WriteString("dock empty")
	}
	for i, win := range items {
		style := styles.DockItem
		if m.mode == ModeDock && i == m.dockIdx {
			style = styles.DockSelected
		}
		b.WriteString(style.Render(dockLabel(win)))
	}
	return fillLine(b.String(), "", m.width, styles.Dock)
}

func (m *Model) renderStatus() string {
	var left string
	switch m.mode {
	case ModePrompt:
		left = m.viewPrompt()
	case ModeSwitcher:
		left = m.filterPrompt()
	case ModeMove:
		left = styles.Header.Render("move") + " arrows to move, shift for larger steps, enter to drop, esc to cancel"
	case ModeInput:
		label := ""
		if win, ok := m.activeWindow(); ok {
			label = win.Label()
		}
		left = styles.Header.Render("type") + " keys go to " + label + ", esc to stop"
	case ModeDock:
		left = styles.Header.Render("dock") + " ←/→ choose, enter restore, w close, esc back"
	}
	if left == "" {
		switch {
		case m.errMsg != "":
			left = styles.Error.Render(m.errMsg)
		case m.currentInfo() != "":
			left = styles.Info.Render(m.infoMsg)
		default:
			if warn, msg := m.hasBackendIssue(); warn {
				left = styles.Error.Render("backend: " + msg)
			}
		}
	}
	var right []string
	if m.mode == ModePrompt {
		right = append(right, m.promptHelp())
	}
	if loading := m.store.LoadingBrowsers(); len(loading) > 0 {
		right = append(right, styles.Loading.Render(fmt.Sprintf("loading %d", len(loading))))
	}
	if win, ok := m.activeWindow(); ok && m.mode != ModePrompt {
		right = append(right, win.Title)
	}
	right = append(right, fmt.Sprintf("%d windows ", m.store.WindowCount()))
	return fillLine(left, strings.Join(right, " · "), m.width, nil)
}

func (m *Model) renderFooter() string {
	h := help.New()
	h.Width = m.width
	h.ShortSeparator = " · "
	view := h.ShortHelpView(keys.footer())
	return styles.Footer.Render(truncate.StringWithTail(view, uint(max(m.width, 0)), "…"))
}
