package menu

// merge folds the sorted fragments into base. Fragments sharing a label are
// combined in sort order; when any fragment is exclusive the base is dropped.
func merge(base []Config, fragments []Fragment) []Config {
	order := make([]string, 0, len(fragments))
	groups := make(map[string][]Fragment, len(fragments))
	exclusive := false
	for _, frag := range fragments {
		if _, seen := groups[frag.Label]; !seen {
			order = append(order, frag.Label)
		}
		groups[frag.Label] = append(groups[frag.Label], frag)
		exclusive = exclusive || frag.Exclusive
	}

	merged := make([]Config, 0, len(order))
	for _, label := range order {
		merged = append(merged, mergeGroup(label, groups[label]))
	}
	if exclusive {
		return merged
	}

	out := cloneConfigs(base)
	if out == nil {
		out = make([]Config, 0, len(merged))
	}
	for _, cfg := range merged {
		replaced := false
		for i := range out {
			if out[i].Label == cfg.Label {
				out[i] = cfg
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, cfg)
		}
	}
	return out
}

// mergeGroup combines fragments sharing label. replace only takes effect
// while the accumulator is still empty, so a later replace never clears
// content placed by an earlier fragment.
func mergeGroup(label string, group []Fragment) Config {
	if len(group) == 1 {
		return group[0].Config()
	}
	var acc []Item
	for _, frag := range group {
		content := cloneItems(frag.Content)
		switch frag.Strategy {
		case MergePrepend:
			acc = append(content, acc...)
		case MergeReplace:
			if len(acc) == 0 {
				acc = append(acc, content...)
			}
		default:
			acc = append(acc, content...)
		}
	}
	return Config{Label: label, Content: collapseSeparators(acc)}
}

// collapseSeparators drops leading separators and runs of adjacent ones.
func collapseSeparators(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if IsSeparator(it) && (len(out) == 0 || IsSeparator(out[len(out)-1])) {
			continue
		}
		out = append(out, it)
	}
	return out
}
