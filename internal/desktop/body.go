package desktop

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/webtop/internal/state"
	"github.com/charmbracelet/x/ansi"
)

// Body renders the inside of a window as plain lines no wider than width.
// The presentation layer frames and styles them.
func Body(win state.Window, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	switch win.Type {
	case "calculator":
		lines = calculatorBody(win, width)
	case "editor":
		lines = textBody(win, width, extraBool(win, extraWordWrap), false)
	case "note":
		lines = textBody(win, width, true, extraBool(win, extraWordCount))
	case state.BrowserWindowType:
		lines = browserBody(win, width)
	default:
		lines = []string{
			fmt.Sprintf("%s window", win.Type),
			fmt.Sprintf("id %s", shortID(win.ID)),
		}
		if win.Position != nil && win.Size != nil {
			lines = append(lines, fmt.Sprintf("at %d,%d  %dx%d", win.Position.X, win.Position.Y, win.Size.Width, win.Size.Height))
		}
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return lines
}

// DarkBody reports whether the window asked for its dark theme.
func DarkBody(win state.Window) bool {
	return extraBool(win, extraDarkTheme)
}

func calculatorBody(win state.Window, width int) []string {
	display := extraString(win, extraDisplay)
	if display == "" {
		display = "0"
	}
	status := extraString(win, extraMode)
	if extraBool(win, extraMemoryIndicator) && extraFloat(win, extraMemory) != 0 {
		status = "M  " + status
	}
	op := extraString(win, extraOp)
	lines := []string{
		padLeft(status, width),
		padLeft(display, width),
		padLeft(op, width),
		"",
		"7 8 9 /",
		"4 5 6 *",
		"1 2 3 -",
		"0 . = +",
	}
	return lines
}

func textBody(win state.Window, width int, wrap, wordCount bool) []string {
	content := extraString(win, extraContent)
	var lines []string
	if content == "" {
		lines = []string{"(empty)"}
	} else {
		if wrap {
			content = ansi.Wrap(content, width, "")
		}
		lines = strings.Split(content, "\n")
	}
	if extraBool(win, extraModified) {
		lines = append(lines, "● modified")
	}
	if wordCount {
		lines = append(lines, fmt.Sprintf("%d words  %d chars", len(strings.Fields(content)), utf8.RuneCountInString(extraString(win, extraContent))))
	}
	return lines
}

func browserBody(win state.Window, width int) []string {
	b := win.Browser
	if b == nil {
		return []string{"about:blank"}
	}
	lines := []string{"⟨" + b.CurrentURL + "⟩", strings.Repeat("─", width)}
	switch {
	case b.Error != "":
		lines = append(lines, "✗ "+b.Error)
	case b.Loading:
		lines = append(lines, "Loading…")
	default:
		lines = append(lines, b.Title)
	}
	lines = append(lines, "", fmt.Sprintf("history %d/%d", b.HistoryIndex+1, len(b.History)))
	return lines
}

func padLeft(s string, width int) string {
	pad := width - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
