package menu

import (
	"context"
	"reflect"
	"testing"
)

func item(label string) Item {
	return ActionItem{Label: label, Action: "test:" + label}
}

func defaultBar() []Config {
	return []Config{
		{Label: "File", Content: []Item{item("New"), item("Open")}},
		{Label: "Edit", Content: []Item{item("Undo")}},
	}
}

func contentLabels(t *testing.T, bar []Config, label string) []string {
	t.Helper()
	cfg, ok := Find(bar, label)
	if !ok {
		t.Fatalf("expected menu %q in %v", label, Labels(bar))
	}
	out := make([]string, 0, len(cfg.Content))
	for _, it := range cfg.Content {
		if IsSeparator(it) {
			out = append(out, "---")
			continue
		}
		out = append(out, ItemLabel(it))
	}
	return out
}

func TestMergedWithoutFragmentsReturnsBase(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	if got := reg.Merged(nil); !reflect.DeepEqual(got, defaultBar()) {
		t.Fatalf("expected defaults, got %#v", got)
	}
	override := []Config{{Label: "Only"}}
	if got := reg.Merged(override); !reflect.DeepEqual(got, override) {
		t.Fatalf("expected override, got %#v", got)
	}
}

func TestPrependHighPrioritySortsBeforeAppend(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	reg.Register("a", []Config{{Label: "File", Content: []Item{item("ItemA")}}}, Options{Component: "A", Strategy: MergeAppend})
	reg.Register("b", []Config{{Label: "File", Content: []Item{item("ItemB")}}}, Options{Component: "B", Strategy: MergePrepend, Priority: PriorityHigh})

	got := contentLabels(t, reg.Merged(nil), "File")
	want := []string{"ItemB", "ItemA"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	frags := reg.Fragments()
	if frags[0].ID != "b" || frags[1].ID != "a" {
		t.Fatalf("expected high priority first, got %s, %s", frags[0].ID, frags[1].ID)
	}
}

func TestExclusiveSuppressesDefaults(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	reg.Register("tools", []Config{{Label: "Tools", Content: []Item{item("Run")}}}, Options{Component: "Tools", Exclusive: true})

	got := Labels(reg.Merged(nil))
	if !reflect.DeepEqual(got, []string{"Tools"}) {
		t.Fatalf("expected only Tools, got %v", got)
	}
	got = Labels(reg.Merged(defaultBar()))
	if !reflect.DeepEqual(got, []string{"Tools"}) {
		t.Fatalf("expected override to be suppressed too, got %v", got)
	}
}

func TestExclusiveFromAnyFragmentDropsBaseForAll(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	reg.Register("plain", []Config{{Label: "File", Content: []Item{item("Save")}}}, Options{Component: "Plain"})
	reg.Register("excl", []Config{{Label: "View", Content: []Item{item("Zoom")}}}, Options{Component: "Excl", Exclusive: true})

	got := reg.Merged(nil)
	if !reflect.DeepEqual(Labels(got), []string{"File", "View"}) {
		t.Fatalf("expected registered labels only, got %v", Labels(got))
	}
	if labels := contentLabels(t, got, "File"); !reflect.DeepEqual(labels, []string{"Save"}) {
		t.Fatalf("expected default File content to be gone, got %v", labels)
	}
}

func TestSeparatorsCollapseInMergedGroups(t *testing.T) {
	reg := NewRegistry()
	reg.Register("one", []Config{{Label: "File", Content: []Item{Separator{}, item("X"), Separator{}}}}, Options{Component: "One"})
	reg.Register("two", []Config{{Label: "File", Content: []Item{Separator{}, Separator{}, item("Y")}}}, Options{Component: "Two"})

	got := contentLabels(t, reg.Merged(nil), "File")
	want := []string{"X", "---", "Y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSingleFragmentContentIsUntouched(t *testing.T) {
	reg := NewRegistry()
	reg.Register("one", []Config{{Label: "File", Content: []Item{Separator{}, Separator{}, item("X")}}}, Options{})

	got := contentLabels(t, reg.Merged(nil), "File")
	want := []string{"---", "---", "X"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReplaceOnlySticksOnEmptyAccumulator(t *testing.T) {
	cases := []struct {
		name   string
		first  MergeStrategy
		second MergeStrategy
		want   []string
	}{
		{name: "append then replace", first: MergeAppend, second: MergeReplace, want: []string{"A"}},
		{name: "replace then append", first: MergeReplace, second: MergeAppend, want: []string{"A", "B"}},
		{name: "replace then replace", first: MergeReplace, second: MergeReplace, want: []string{"A"}},
		{name: "replace then prepend", first: MergeReplace, second: MergePrepend, want: []string{"B", "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.Register("first", []Config{{Label: "File", Content: []Item{item("A")}}}, Options{Component: "First", Strategy: tc.first, Priority: PriorityHigh})
			reg.Register("second", []Config{{Label: "File", Content: []Item{item("B")}}}, Options{Component: "Second", Strategy: tc.second})
			got := contentLabels(t, reg.Merged(nil), "File")
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNonExclusiveReplacesOrAppendsLabels(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	reg.Register("edit", []Config{{Label: "Edit", Content: []Item{item("Redo")}}}, Options{Component: "Editor"})
	reg.Register("help", []Config{{Label: "Help", Content: []Item{item("About")}}}, Options{Component: "Editor", Priority: PriorityLow})

	got := reg.Merged(nil)
	if !reflect.DeepEqual(Labels(got), []string{"File", "Edit", "Help"}) {
		t.Fatalf("unexpected labels %v", Labels(got))
	}
	if labels := contentLabels(t, got, "Edit"); !reflect.DeepEqual(labels, []string{"Redo"}) {
		t.Fatalf("expected Edit to be replaced, got %v", labels)
	}
	if labels := contentLabels(t, got, "File"); !reflect.DeepEqual(labels, []string{"New", "Open"}) {
		t.Fatalf("expected File untouched, got %v", labels)
	}
}

func TestMergedIsIdempotent(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	reg.Register("a", []Config{{Label: "File", Content: []Item{item("A"), Separator{}}}}, Options{Component: "A"})
	reg.Register("b", []Config{{Label: "File", Content: []Item{Separator{}, item("B")}}}, Options{Component: "B", Strategy: MergePrepend})
	first := reg.Merged(nil)
	second := reg.Merged(nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %#v and %#v", first, second)
	}
}

func TestMergedResultDoesNotAliasRegistry(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	got := reg.Merged(nil)
	got[0].Content[0] = item("Mutated")
	if labels := contentLabels(t, reg.Merged(nil), "File"); labels[0] != "New" {
		t.Fatalf("expected defaults to be unaffected, got %v", labels)
	}
}

func TestUnregisterComponentRestoresDefaults(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	reg.Register("calc", []Config{
		{Label: "File", Content: []Item{item("Clear")}},
		{Label: "View", Content: []Item{item("Scientific")}},
	}, Options{Component: "Calculator"})
	if n := len(reg.FragmentsByComponent("Calculator")); n != 2 {
		t.Fatalf("expected 2 fragments, got %d", n)
	}

	reg.UnregisterComponent("Calculator")
	if got := reg.FragmentsByComponent("Calculator"); len(got) != 0 {
		t.Fatalf("expected no fragments, got %#v", got)
	}
	if got := reg.Merged(nil); !reflect.DeepEqual(got, defaultBar()) {
		t.Fatalf("expected defaults after cleanup, got %v", Labels(got))
	}
}

func TestRegisterSuffixesMultipleConfigs(t *testing.T) {
	reg := NewRegistry()
	reg.Register("calc", []Config{{Label: "File"}, {Label: "View"}}, Options{Component: "Calculator"})
	frags := reg.Fragments()
	if len(frags) != 2 || frags[0].ID != "calc-1" || frags[1].ID != "calc-2" {
		t.Fatalf("unexpected fragments %#v", frags)
	}
	if frags[0].Seq >= frags[1].Seq {
		t.Fatalf("expected increasing seq, got %d and %d", frags[0].Seq, frags[1].Seq)
	}

	reg.Register("calc", []Config{{Label: "View"}}, Options{Component: "Calculator"})
	frags = reg.Fragments()
	if len(frags) != 1 || frags[0].ID != "calc" {
		t.Fatalf("expected re-registration to replace prior batch, got %#v", frags)
	}
}

func TestRegisterKeepsOtherComponentsWithSamePrefix(t *testing.T) {
	reg := NewRegistry()
	reg.Register("editor", []Config{{Label: "File"}}, Options{Component: "TextEditor"})
	reg.Register("editor", []Config{{Label: "File"}}, Options{Component: "NoteEditor"})
	if n := len(reg.Fragments()); n != 2 {
		t.Fatalf("expected fragments from both components, got %d", n)
	}
	reg.Unregister("editor")
	if n := len(reg.Fragments()); n != 0 {
		t.Fatalf("expected exact id removal to drop both, got %d", n)
	}
}

func TestRegisterDefaultsOptions(t *testing.T) {
	reg := NewRegistry()
	reg.Register("x", []Config{{Label: "File"}}, Options{Priority: "urgent", Strategy: "merge"})
	frag := reg.Fragments()[0]
	if frag.Component != DefaultComponent || frag.Priority != PriorityNormal || frag.Strategy != MergeAppend {
		t.Fatalf("unexpected defaults %#v", frag)
	}
}

func TestRegisterIgnoredWhenDisabledOrEmpty(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()), WithEnabled(false))
	reg.Register("x", []Config{{Label: "Tools"}}, Options{Exclusive: true})
	if n := len(reg.Fragments()); n != 0 {
		t.Fatalf("expected disabled registry to drop contributions, got %d", n)
	}
	reg.SetEnabled(true)
	if n := len(reg.Fragments()); n != 0 {
		t.Fatalf("expected no replay after enabling, got %d", n)
	}
	reg.Register("x", nil, Options{})
	if n := len(reg.Fragments()); n != 0 {
		t.Fatalf("expected empty registration to be ignored, got %d", n)
	}
}

func TestDisabledMergedReturnsBase(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	reg.Register("x", []Config{{Label: "Tools"}}, Options{Exclusive: true})
	reg.SetEnabled(false)
	if reg.Enabled() {
		t.Fatalf("expected registry to be disabled")
	}
	if got := reg.Merged(nil); !reflect.DeepEqual(got, defaultBar()) {
		t.Fatalf("expected defaults, got %v", Labels(got))
	}
}

func TestUnregisterUnknownIsNoOp(t *testing.T) {
	reg := NewRegistry()
	reg.Register("x", []Config{{Label: "File"}}, Options{})
	reg.Unregister("missing")
	reg.UnregisterComponent("missing")
	reg.Update("missing", []Config{{Label: "Edit"}})
	if n := len(reg.Fragments()); n != 1 {
		t.Fatalf("expected fragment to survive, got %d", n)
	}
}

func TestUpdatePatchesPayloadOnly(t *testing.T) {
	reg := NewRegistry()
	reg.Register("editor", []Config{{Label: "Format", Content: []Item{CheckboxItem{Label: "Word Wrap"}}}}, Options{Component: "TextEditor", Priority: PriorityHigh})
	before := reg.Fragments()[0]

	reg.Update("editor", []Config{{Label: "Format", Content: []Item{CheckboxItem{Label: "Word Wrap", Checked: true}}}})
	after := reg.Fragments()[0]
	if after.ID != before.ID || after.Seq != before.Seq || after.Priority != before.Priority || after.Component != before.Component {
		t.Fatalf("expected identity metadata unchanged, got %#v", after)
	}
	box, ok := after.Content[0].(CheckboxItem)
	if !ok || !box.Checked {
		t.Fatalf("expected checked checkbox, got %#v", after.Content[0])
	}
}

func TestChangeHandlerReceivesSortedFragments(t *testing.T) {
	var calls [][]Fragment
	reg := NewRegistry(WithChangeHandler(func(frags []Fragment) { calls = append(calls, frags) }))
	reg.Register("low", []Config{{Label: "A"}}, Options{Priority: PriorityLow})
	reg.Register("high", []Config{{Label: "B"}}, Options{Component: "Other", Priority: PriorityHigh})
	reg.Unregister("low")

	if len(calls) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(calls))
	}
	if calls[1][0].ID != "high" {
		t.Fatalf("expected high priority first, got %s", calls[1][0].ID)
	}
	if len(calls[2]) != 1 {
		t.Fatalf("expected 1 fragment after unregister, got %d", len(calls[2]))
	}
}

func TestFromContextFallsBackToNoop(t *testing.T) {
	c := FromContext(context.Background(), defaultBar())
	c.Register("x", []Config{{Label: "Tools"}}, Options{Exclusive: true})
	c.SetEnabled(true)
	if c.Enabled() {
		t.Fatalf("expected fallback to report disabled")
	}
	if n := len(c.Fragments()); n != 0 {
		t.Fatalf("expected no fragments, got %d", n)
	}
	if got := c.Merged(nil); !reflect.DeepEqual(got, defaultBar()) {
		t.Fatalf("expected caller defaults, got %v", Labels(got))
	}
	override := []Config{{Label: "Only"}}
	if got := c.Merged(override); !reflect.DeepEqual(got, override) {
		t.Fatalf("expected override, got %v", Labels(got))
	}
}

func TestFromContextReturnsScopedRegistry(t *testing.T) {
	reg := NewRegistry()
	ctx := NewContext(context.Background(), reg)
	c := FromContext(ctx, nil)
	c.Register("x", []Config{{Label: "Tools"}}, Options{})
	if n := len(reg.Fragments()); n != 1 {
		t.Fatalf("expected write to reach scoped registry, got %d", n)
	}
}

func TestMountTeardownUnregistersComponent(t *testing.T) {
	reg := NewRegistry(WithDefaults(defaultBar()))
	unmount := Mount(reg, "calc", []Config{{Label: "View"}, {Label: "File"}}, Options{Component: "Calculator"})
	if n := len(reg.FragmentsByComponent("Calculator")); n != 2 {
		t.Fatalf("expected 2 fragments, got %d", n)
	}
	unmount()
	if n := len(reg.Fragments()); n != 0 {
		t.Fatalf("expected teardown to clear fragments, got %d", n)
	}
}

func TestScopesIsolateRegistries(t *testing.T) {
	scopes := NewScopes(WithDefaults(defaultBar()))
	scopes.For("w1").Register("calc", []Config{{Label: "Tools"}}, Options{Exclusive: true})
	if got := Labels(scopes.For("w2").Merged(nil)); !reflect.DeepEqual(got, []string{"File", "Edit"}) {
		t.Fatalf("expected w2 to see defaults, got %v", got)
	}
	if got := scopes.Keys(); !reflect.DeepEqual(got, []string{"w1", "w2"}) {
		t.Fatalf("unexpected keys %v", got)
	}
	scopes.Drop("w1")
	if _, ok := scopes.Lookup("w1"); ok {
		t.Fatalf("expected w1 to be dropped")
	}
}
