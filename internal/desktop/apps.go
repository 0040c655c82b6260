package desktop

import (
	"strings"

	"github.com/atomicstack/webtop/internal/menu"
	"github.com/atomicstack/webtop/internal/state"
)

const desktopComponent = "Desktop"

// Extra keys shared between the menu renderers and the action handlers.
const (
	extraDisplay         = "display"
	extraMemory          = "memory"
	extraMode            = "mode"
	extraMemoryIndicator = "memoryIndicator"
	extraContent         = "content"
	extraModified        = "modified"
	extraAutoSave        = "autoSave"
	extraWordWrap        = "wordWrap"
	extraDarkTheme       = "darkTheme"
	extraWordCount       = "wordCount"
	extraRecent          = "recent"
)

// App describes a bundled application: the window it opens and the menus it
// contributes while mounted.
type App struct {
	Type      string
	Title     string
	Component string
	Size      state.Size
	Home      string
	Priority  menu.Priority
	Strategy  menu.MergeStrategy
	Exclusive bool
	Extra     map[string]any
	// Menus renders the contribution from the window's current state. Nil
	// means the application contributes nothing.
	Menus func(state.Window) []menu.Config
}

func (a App) initialExtra() map[string]any {
	if len(a.Extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(a.Extra))
	for k, v := range a.Extra {
		out[k] = v
	}
	return out
}

func (a App) menuID() string {
	var b strings.Builder
	for i, r := range a.Component {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	b.WriteString("-menu")
	return b.String()
}

func (a App) options() menu.Options {
	return menu.Options{
		Component: a.Component,
		Priority:  a.Priority,
		Strategy:  a.Strategy,
		Exclusive: a.Exclusive,
	}
}

// BundledApps returns the applications every desktop can launch.
func BundledApps() []App {
	return []App{
		{
			Type:      state.DefaultWindowType,
			Title:     "Window",
			Component: "BasicWindow",
			Size:      state.Size{Width: 36, Height: 10},
		},
		{
			Type:      "calculator",
			Title:     "Calculator",
			Component: "Calculator",
			Size:      state.Size{Width: 28, Height: 12},
			Priority:  menu.PriorityHigh,
			Strategy:  menu.MergeAppend,
			Exclusive: true,
			Extra: map[string]any{
				extraDisplay:         "0",
				extraMemory:          0.0,
				extraMode:            "basic",
				extraMemoryIndicator: true,
			},
			Menus: calculatorMenus,
		},
		{
			Type:      "editor",
			Title:     "Text Editor",
			Component: "TextEditor",
			Size:      state.Size{Width: 44, Height: 14},
			Priority:  menu.PriorityNormal,
			Strategy:  menu.MergeAppend,
			Exclusive: true,
			Extra: map[string]any{
				extraContent:  "",
				extraModified: false,
				extraAutoSave: true,
				extraWordWrap: false,
			},
			Menus: editorMenus,
		},
		{
			Type:      "note",
			Title:     "Notes",
			Component: "NoteEditor",
			Size:      state.Size{Width: 48, Height: 16},
			Priority:  menu.PriorityNormal,
			Strategy:  menu.MergeAppend,
			Exclusive: true,
			Extra: map[string]any{
				extraContent:   "",
				extraModified:  false,
				extraDarkTheme: false,
				extraWordCount: true,
			},
			Menus: noteMenus,
		},
		{
			Type:      state.BrowserWindowType,
			Title:     "Browser",
			Component: "Browser",
			Size:      state.Size{Width: 56, Height: 16},
			Home:      "https://example.com",
			Priority:  menu.PriorityNormal,
			Strategy:  menu.MergeAppend,
			Menus:     browserMenus,
		},
	}
}

// DefaultMenu is the menu bar shown when no menu file is configured.
func DefaultMenu() []menu.Config {
	return []menu.Config{
		{Label: "Application", Content: []menu.Item{
			menu.ActionItem{Label: "New Window", Shortcut: "n", Action: "desktop:launch", Value: state.DefaultWindowType},
			menu.Submenu{Label: "Open", Items: []menu.Item{
				menu.ActionItem{Label: "Calculator", Action: "desktop:launch", Value: "calculator"},
				menu.ActionItem{Label: "Text Editor", Action: "desktop:launch", Value: "editor"},
				menu.ActionItem{Label: "Notes", Action: "desktop:launch", Value: "note"},
				menu.ActionItem{Label: "Browser", Action: "desktop:launch", Value: state.BrowserWindowType},
			}},
		}},
		{Label: "Edit", Content: []menu.Item{
			menu.ActionItem{Label: "Undo", Disabled: true},
			menu.ActionItem{Label: "Redo", Disabled: true},
		}},
		{Label: "View", Content: []menu.Item{
			menu.ActionItem{Label: "Minimize All", Action: "windows:minimize-all"},
			menu.ActionItem{Label: "Restore All", Action: "windows:restore-all"},
		}},
	}
}

// systemMenu is always the first entry of the menu bar.
func systemMenu(registryEnabled bool) menu.Config {
	return menu.Config{Label: "webtop", Content: []menu.Item{
		menu.ActionItem{Label: "About webtop", Action: "desktop:about"},
		menu.CheckboxItem{Label: "Menu Registry", Checked: registryEnabled, Action: "menu:toggle-registry"},
		menu.Separator{},
		menu.ActionItem{Label: "Minimize All", Action: "windows:minimize-all"},
		menu.ActionItem{Label: "Restore All", Action: "windows:restore-all"},
		menu.ActionItem{Label: "Close All", Action: "windows:close-all"},
	}}
}

// Actions with this prefix ask the front end for a value before running the
// named follow-up action.
const (
	PromptPrefix   = "prompt:"
	PromptRename   = PromptPrefix + "rename"
	PromptLocation = PromptPrefix + "location"
)

func windowMenus() []menu.Config {
	return []menu.Config{{Label: "Window", Content: []menu.Item{
		menu.ActionItem{Label: "Minimize", Shortcut: "m", Action: "window:minimize"},
		menu.ActionItem{Label: "Maximize", Shortcut: "x", Action: "window:maximize"},
		menu.ActionItem{Label: "Restore", Action: "window:restore"},
		menu.ActionItem{Label: "Bring to Front", Action: "window:front"},
		menu.ActionItem{Label: "Rename…", Shortcut: "t", Action: PromptRename},
		menu.Separator{},
		menu.ActionItem{Label: "Close", Shortcut: "w", Action: "window:close"},
	}}}
}

func calculatorMenus(win state.Window) []menu.Config {
	return []menu.Config{
		{Label: "Calculator", Content: []menu.Item{
			menu.ActionItem{Label: "Copy Result", Shortcut: "⌘C", Action: "calculator:copy"},
			menu.ActionItem{Label: "Clear All", Shortcut: "⌘⌫", Action: "calculator:clear"},
			menu.Separator{},
			menu.CheckboxItem{Label: "Show Memory Indicator", Checked: extraBool(win, extraMemoryIndicator), Action: "calculator:memory-indicator"},
		}},
		{Label: "Memory", Content: []menu.Item{
			menu.ActionItem{Label: "Memory Store (M+)", Shortcut: "⌘M", Action: "calculator:memory-add"},
			menu.ActionItem{Label: "Memory Subtract (M-)", Action: "calculator:memory-subtract"},
			menu.ActionItem{Label: "Memory Recall (MR)", Action: "calculator:memory-recall"},
			menu.ActionItem{Label: "Memory Clear (MC)", Action: "calculator:memory-clear"},
		}},
		{Label: "View", Content: []menu.Item{
			menu.RadioGroup{
				Value:  extraString(win, extraMode),
				Action: "calculator:mode",
				Options: []menu.RadioOption{
					{Value: "basic", Label: "Basic"},
					{Value: "scientific", Label: "Scientific"},
				},
			},
		}},
	}
}

func editorMenus(win state.Window) []menu.Config {
	return []menu.Config{
		{Label: "Editor", Content: []menu.Item{
			menu.ActionItem{Label: "New Document", Shortcut: "⌘N", Action: "editor:new"},
			menu.ActionItem{Label: "Save", Shortcut: "⌘S", Action: "editor:save", Disabled: !extraBool(win, extraModified)},
			menu.Separator{},
			menu.CheckboxItem{Label: "Auto Save", Checked: extraBool(win, extraAutoSave), Action: "editor:autosave"},
		}},
		{Label: "Format", Content: []menu.Item{
			menu.ActionItem{Label: "Clear All", Action: "editor:clear"},
			menu.ActionItem{Label: "Uppercase", Action: "editor:upper"},
			menu.ActionItem{Label: "Lowercase", Action: "editor:lower"},
			menu.Separator{},
			menu.CheckboxItem{Label: "Word Wrap", Checked: extraBool(win, extraWordWrap), Action: "editor:wrap"},
		}},
	}
}

func noteMenus(win state.Window) []menu.Config {
	file := []menu.Item{
		menu.ActionItem{Label: "New Document", Shortcut: "⌘N", Action: "note:new"},
		menu.ActionItem{Label: "Save", Shortcut: "⌘S", Action: "note:save", Disabled: !extraBool(win, extraModified)},
	}
	if recent := extraStrings(win, extraRecent); len(recent) > 0 {
		items := make([]menu.Item, 0, len(recent))
		for _, stamp := range recent {
			items = append(items, menu.ActionItem{Label: stamp, Action: "note:open", Value: stamp})
		}
		file = append(file, menu.Separator{}, menu.Submenu{Label: "Recent Documents", Items: items})
	}
	return []menu.Config{
		{Label: "File", Content: file},
		{Label: "Edit", Content: []menu.Item{
			menu.ActionItem{Label: "Select All", Action: "note:select-all"},
			menu.Separator{},
			menu.ActionItem{Label: "Uppercase", Action: "note:upper"},
			menu.ActionItem{Label: "Lowercase", Action: "note:lower"},
		}},
		{Label: "View", Content: []menu.Item{
			menu.CheckboxItem{Label: "Dark Theme", Checked: extraBool(win, extraDarkTheme), Action: "note:dark-theme"},
			menu.ActionItem{Label: "Fullscreen", Shortcut: "⌘⇧F", Action: "window:maximize"},
			menu.Separator{},
			menu.CheckboxItem{Label: "Show Word Count", Checked: extraBool(win, extraWordCount), Action: "note:word-count"},
		}},
	}
}

var bookmarks = []struct{ label, url string }{
	{"Example", "https://example.com"},
	{"Go", "https://go.dev"},
	{"Charm", "https://charm.sh"},
}

func browserMenus(win state.Window) []menu.Config {
	marks := make([]menu.Item, 0, len(bookmarks))
	for _, bm := range bookmarks {
		marks = append(marks, menu.ActionItem{Label: bm.label, Action: "browser:open", Value: bm.url})
	}
	return []menu.Config{
		{Label: "History", Content: []menu.Item{
			menu.ActionItem{Label: "Open Location…", Shortcut: "o", Action: PromptLocation},
			menu.Separator{},
			menu.ActionItem{Label: "Back", Shortcut: "⌘[", Action: "browser:back", Disabled: !win.Browser.CanGoBack()},
			menu.ActionItem{Label: "Forward", Shortcut: "⌘]", Action: "browser:forward", Disabled: !win.Browser.CanGoForward()},
			menu.ActionItem{Label: "Reload", Shortcut: "⌘R", Action: "browser:reload"},
			menu.Separator{},
			menu.ActionItem{Label: "Home", Action: "browser:home"},
		}},
		{Label: "Bookmarks", Content: marks},
	}
}

func extraBool(win state.Window, key string) bool {
	v, _ := win.Extra[key].(bool)
	return v
}

func extraString(win state.Window, key string) string {
	v, _ := win.Extra[key].(string)
	return v
}

func extraFloat(win state.Window, key string) float64 {
	v, _ := win.Extra[key].(float64)
	return v
}

func extraStrings(win state.Window, key string) []string {
	v, _ := win.Extra[key].([]string)
	return v
}
