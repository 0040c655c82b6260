package menu

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlItem struct {
	Type     string      `yaml:"type"`
	Label    string      `yaml:"label"`
	Shortcut string      `yaml:"shortcut"`
	Disabled bool        `yaml:"disabled"`
	Inset    bool        `yaml:"inset"`
	Action   string      `yaml:"action"`
	Checked  bool        `yaml:"checked"`
	Value    string      `yaml:"value"`
	Items    []yaml.Node `yaml:"items"`
}

type yamlOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type yamlConfig struct {
	Label   string      `yaml:"label"`
	Content []yaml.Node `yaml:"content"`
}

// UnmarshalYAML decodes a menu with its content items.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw yamlConfig
	if err := node.Decode(&raw); err != nil {
		return err
	}
	items, err := decodeItems(raw.Content)
	if err != nil {
		return fmt.Errorf("menu %q: %w", raw.Label, err)
	}
	c.Label = raw.Label
	c.Content = items
	return nil
}

func decodeItems(nodes []yaml.Node) ([]Item, error) {
	items := make([]Item, 0, len(nodes))
	for i := range nodes {
		it, err := decodeItem(&nodes[i])
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// decodeItem maps the type field onto an Item. Unknown types decode as
// plain action items.
func decodeItem(node *yaml.Node) (Item, error) {
	var raw yamlItem
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	switch raw.Type {
	case "separator":
		return Separator{}, nil
	case "checkbox":
		return CheckboxItem{Label: raw.Label, Checked: raw.Checked, Disabled: raw.Disabled, Action: raw.Action}, nil
	case "radioGroup":
		opts := make([]RadioOption, 0, len(raw.Items))
		for i := range raw.Items {
			var opt yamlOption
			if err := raw.Items[i].Decode(&opt); err != nil {
				return nil, fmt.Errorf("line %d: %w", raw.Items[i].Line, err)
			}
			opts = append(opts, RadioOption{Value: opt.Value, Label: opt.Label})
		}
		return RadioGroup{Value: raw.Value, Options: opts, Action: raw.Action}, nil
	case "submenu":
		children, err := decodeItems(raw.Items)
		if err != nil {
			return nil, err
		}
		return Submenu{Label: raw.Label, Items: children}, nil
	default:
		return ActionItem{
			Label:    raw.Label,
			Shortcut: raw.Shortcut,
			Disabled: raw.Disabled,
			Inset:    raw.Inset,
			Action:   raw.Action,
			Value:    raw.Value,
		}, nil
	}
}

// DecodeBar reads a YAML list of menus.
func DecodeBar(r io.Reader) ([]Config, error) {
	var bar []Config
	if err := yaml.NewDecoder(r).Decode(&bar); err != nil {
		if err == io.EOF {
			return []Config{}, nil
		}
		return nil, fmt.Errorf("decode menu bar: %w", err)
	}
	return bar, nil
}

// LoadBar reads a YAML menu bar from path.
func LoadBar(path string) ([]Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()
	return DecodeBar(f)
}
