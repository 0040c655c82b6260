package desktop

var windowIcons = map[string]string{
	"calculator": "🖩",
	"browser":    "🌐",
	"editor":     "📄",
	"text":       "📄",
	"code":       "⌨",
	"terminal":   "▣",
	"notebook":   "📓",
	"note":       "📓",
	"settings":   "⚙",
	"file":       "📕",
	"document":   "📘",
	"draw":       "✎",
	"paint":      "✎",
	"dashboard":  "▦",
}

const defaultWindowIcon = "▢"

// Icon returns the glyph drawn in title bars and the dock for a window type.
func Icon(windowType string) string {
	if icon, ok := windowIcons[windowType]; ok {
		return icon
	}
	return defaultWindowIcon
}
