package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Press sends named keys in order. Names follow tea.KeyMsg.String, so
// "enter", "esc", "f10" and "shift+tab" work; anything else is typed as runes.
func (h *Harness) Press(names ...string) {
	for _, name := range names {
		h.Send(keyMsg(name))
	}
}

// Type sends each rune of text as its own key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Click presses and releases the left button at a screen cell.
func (h *Harness) Click(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

// Drag presses at (x0, y0), moves through (x1, y1) and releases there.
func (h *Harness) Drag(x0, y0, x1, y1 int) {
	h.Send(tea.MouseMsg{X: x0, Y: y0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.Send(tea.MouseMsg{X: (x0 + x1) / 2, Y: (y0 + y1) / 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	h.Send(tea.MouseMsg{X: x1, Y: y1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	h.Send(tea.MouseMsg{X: x1, Y: y1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

var namedKeys = map[string]tea.KeyType{
	"enter":       tea.KeyEnter,
	"esc":         tea.KeyEsc,
	"tab":         tea.KeyTab,
	"shift+tab":   tea.KeyShiftTab,
	"backspace":   tea.KeyBackspace,
	"delete":      tea.KeyDelete,
	"up":          tea.KeyUp,
	"down":        tea.KeyDown,
	"left":        tea.KeyLeft,
	"right":       tea.KeyRight,
	"shift+up":    tea.KeyShiftUp,
	"shift+down":  tea.KeyShiftDown,
	"shift+left":  tea.KeyShiftLeft,
	"shift+right": tea.KeyShiftRight,
	"home":        tea.KeyHome,
	"end":         tea.KeyEnd,
	"pgup":        tea.KeyPgUp,
	"pgdown":      tea.KeyPgDown,
	"f10":         tea.KeyF10,
	"ctrl+c":      tea.KeyCtrlC,
	"ctrl+u":      tea.KeyCtrlU,
	"ctrl+w":      tea.KeyCtrlW,
	"ctrl+x":      tea.KeyCtrlX,
	" ":           tea.KeySpace,
}

func keyMsg(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		msg := tea.KeyMsg{Type: t}
		if t == tea.KeySpace {
			msg.Runes = []rune{' '}
		}
		return msg
	}
	if len(name) > 4 && name[:4] == "alt+" {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name[4:]), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}
