package menu

// Item is one entry inside a menu's content list. The concrete types below
// are the only implementations.
type Item interface {
	isItem()
}

// ActionItem is a plain clickable entry. Value is passed to Action
// unchanged.
type ActionItem struct {
	Label    string
	Shortcut string
	Disabled bool
	Inset    bool
	Action   string
	Value    string
}

// Separator draws a divider between groups of entries.
type Separator struct{}

// CheckboxItem toggles a boolean and reports the new value to Action.
type CheckboxItem struct {
	Label    string
	Checked  bool
	Disabled bool
	Action   string
}

// RadioOption is one choice inside a RadioGroup.
type RadioOption struct {
	Value string
	Label string
}

// RadioGroup selects one value among Options and reports it to Action.
type RadioGroup struct {
	Value   string
	Options []RadioOption
	Action  string
}

// Submenu nests a further list of entries.
type Submenu struct {
	Label string
	Items []Item
}

func (ActionItem) isItem()   {}
func (Separator) isItem()    {}
func (CheckboxItem) isItem() {}
func (RadioGroup) isItem()   {}
func (Submenu) isItem()      {}

// Config is one top-level menu. A menu bar is an ordered []Config.
type Config struct {
	Label   string
	Content []Item
}

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// ItemLabel returns the display label for it, or "" for items without one.
func ItemLabel(it Item) string {
	switch v := it.(type) {
	case ActionItem:
		return v.Label
	case CheckboxItem:
		return v.Label
	case Submenu:
		return v.Label
	case RadioGroup:
		for _, opt := range v.Options {
			if opt.Value == v.Value {
				return opt.Label
			}
		}
	}
	return ""
}

// IsSeparator reports whether it is a separator.
func IsSeparator(it Item) bool {
	_, ok := it.(Separator)
	return ok
}

// Labels lists the top-level labels of a menu bar in order.
func Labels(bar []Config) []string {
	out := make([]string, 0, len(bar))
	for _, cfg := range bar {
		out = append(out, cfg.Label)
	}
	return out
}

// Find returns the menu with the given label.
func Find(bar []Config, label string) (Config, bool) {
	for _, cfg := range bar {
		if cfg.Label == label {
			return cfg, true
		}
	}
	return Config{}, false
}

func cloneConfigs(in []Config) []Config {
	if in == nil {
		return nil
	}
	out := make([]Config, len(in))
	for i, cfg := range in {
		out[i] = Config{Label: cfg.Label, Content: cloneItems(cfg.Content)}
	}
	return out
}

func cloneItems(in []Item) []Item {
	if in == nil {
		return nil
	}
	out := make([]Item, len(in))
	for i, it := range in {
		switch v := it.(type) {
		case RadioGroup:
			v.Options = append([]RadioOption(nil), v.Options...)
			out[i] = v
		case Submenu:
			v.Items = cloneItems(v.Items)
			out[i] = v
		default:
			out[i] = it
		}
	}
	return out
}
