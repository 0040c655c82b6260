package menu

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/atomicstack/webtop/internal/logging/events"
)

// Priority orders fragments for merging; high sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// MergeStrategy governs how a fragment's content joins other fragments that
// share its label.
type MergeStrategy string

const (
	MergeAppend  MergeStrategy = "append"
	MergePrepend MergeStrategy = "prepend"
	MergeReplace MergeStrategy = "replace"
)

// DefaultComponent names fragments registered without an owner.
const DefaultComponent = "Unknown"

// Options describes ownership and merge behaviour for a registration.
type Options struct {
	Component string
	Priority  Priority
	Strategy  MergeStrategy
	Exclusive bool
}

func (o Options) normalized() Options {
	if o.Component == "" {
		o.Component = DefaultComponent
	}
	switch o.Priority {
	case PriorityHigh, PriorityNormal, PriorityLow:
	default:
		o.Priority = PriorityNormal
	}
	switch o.Strategy {
	case MergeAppend, MergePrepend, MergeReplace:
	default:
		o.Strategy = MergeAppend
	}
	return o
}

// Fragment is one registered menu contribution.
type Fragment struct {
	ID        string
	Component string
	Priority  Priority
	Strategy  MergeStrategy
	Exclusive bool
	Seq       int
	Label     string
	Content   []Item
}

// Config strips the registry metadata.
func (f Fragment) Config() Config {
	return Config{Label: f.Label, Content: cloneItems(f.Content)}
}

func (f Fragment) clone() Fragment {
	f.Content = cloneItems(f.Content)
	return f
}

// ChangeHandler observes the sorted fragment list after every mutation.
type ChangeHandler func([]Fragment)

// Registry merges menu fragments contributed by independently mounted
// components into one menu bar. It never returns errors: unknown ids are
// ignored and a disabled registry drops contributions.
type Registry struct {
	mu        sync.RWMutex
	fragments []Fragment
	defaults  []Config
	enabled   bool
	seq       int
	onChange  []ChangeHandler
}

// RegistryOption customises a Registry at construction time.
type RegistryOption func(*Registry)

// WithDefaults sets the base menu bar used when no override is supplied.
func WithDefaults(defaults []Config) RegistryOption {
	return func(r *Registry) {
		r.defaults = cloneConfigs(defaults)
	}
}

// WithEnabled sets the initial state of the kill switch.
func WithEnabled(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.enabled = enabled
	}
}

// WithChangeHandler subscribes fn to fragment list changes.
func WithChangeHandler(fn ChangeHandler) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.onChange = append(r.onChange, fn)
		}
	}
}

// NewRegistry constructs an enabled, empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{enabled: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds one fragment per entry of configs. A single config keeps id;
// several get "{id}-{n}" with n counting from 1. Earlier fragments owned by
// the same component whose id starts with id are removed first.
func (r *Registry) Register(id string, configs []Config, opts Options) {
	opts = opts.normalized()
	r.mu.Lock()
	if !r.enabled || len(configs) == 0 {
		r.mu.Unlock()
		reason := events.MenuReasonEmpty
		if len(configs) > 0 {
			reason = events.MenuReasonDisabled
		}
		events.Menu.Drop(id, reason)
		return
	}

	kept := r.fragments[:0:0]
	for _, frag := range r.fragments {
		if frag.Component == opts.Component && strings.HasPrefix(frag.ID, id) {
			continue
		}
		kept = append(kept, frag)
	}
	for i, cfg := range configs {
		fragID := id
		if len(configs) > 1 {
			fragID = fmt.Sprintf("%s-%d", id, i+1)
		}
		r.seq++
		kept = append(kept, Fragment{
			ID:        fragID,
			Component: opts.Component,
			Priority:  opts.Priority,
			Strategy:  opts.Strategy,
			Exclusive: opts.Exclusive,
			Seq:       r.seq,
			Label:     cfg.Label,
			Content:   cloneItems(cfg.Content),
		})
	}
	sortFragments(kept)
	r.fragments = kept
	snapshot, handlers := r.snapshotLocked()
	r.mu.Unlock()

	events.Menu.Register(id, opts.Component, len(configs), string(opts.Priority), string(opts.Strategy), opts.Exclusive)
	notify(handlers, snapshot)
}

// Unregister removes the fragment with exactly this id.
func (r *Registry) Unregister(id string) {
	removed := r.remove(func(f Fragment) bool { return f.ID == id })
	events.Menu.Unregister(id, removed)
}

// UnregisterComponent removes every fragment owned by component. Components
// call it on teardown.
func (r *Registry) UnregisterComponent(component string) {
	removed := r.remove(func(f Fragment) bool { return f.Component == component })
	events.Menu.UnregisterComponent(component, removed)
}

func (r *Registry) remove(match func(Fragment) bool) int {
	r.mu.Lock()
	kept := r.fragments[:0:0]
	for _, frag := range r.fragments {
		if !match(frag) {
			kept = append(kept, frag)
		}
	}
	removed := len(r.fragments) - len(kept)
	r.fragments = kept
	snapshot, handlers := r.snapshotLocked()
	r.mu.Unlock()

	notify(handlers, snapshot)
	return removed
}

// Update replaces the label and content of the first fragment with id,
// keeping its identity metadata. Only configs[0] is used.
func (r *Registry) Update(id string, configs []Config) {
	if len(configs) == 0 {
		return
	}
	r.mu.Lock()
	idx := -1
	for i, frag := range r.fragments {
		if frag.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		events.Menu.Drop(id, events.MenuReasonMissing)
		return
	}
	r.fragments[idx].Label = configs[0].Label
	r.fragments[idx].Content = cloneItems(configs[0].Content)
	snapshot, handlers := r.snapshotLocked()
	r.mu.Unlock()

	events.Menu.Update(id)
	notify(handlers, snapshot)
}

// Fragments returns the live fragments in merge order.
func (r *Registry) Fragments() []Fragment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneFragments(r.fragments)
}

// FragmentsByComponent returns the live fragments owned by component.
func (r *Registry) FragmentsByComponent(component string) []Fragment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Fragment, 0)
	for _, frag := range r.fragments {
		if frag.Component == component {
			out = append(out, frag.clone())
		}
	}
	return out
}

// Enabled reports the kill switch state.
func (r *Registry) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// SetEnabled flips the kill switch. Fragments registered earlier stay put but
// are ignored by Merged while disabled.
func (r *Registry) SetEnabled(enabled bool) {
	r.mu.Lock()
	r.enabled = enabled
	r.mu.Unlock()
	events.Menu.Enabled(enabled)
}

// Defaults returns the base menu bar.
func (r *Registry) Defaults() []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneConfigs(r.defaults)
}

// Merged computes the effective menu bar. A nil override selects the
// registry defaults as the base.
func (r *Registry) Merged(override []Config) []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	base := r.defaults
	if override != nil {
		base = override
	}
	if !r.enabled || len(r.fragments) == 0 {
		return cloneConfigs(base)
	}
	return merge(base, r.fragments)
}

func (r *Registry) snapshotLocked() ([]Fragment, []ChangeHandler) {
	if len(r.onChange) == 0 {
		return nil, nil
	}
	return cloneFragments(r.fragments), r.onChange
}

func notify(handlers []ChangeHandler, snapshot []Fragment) {
	for _, fn := range handlers {
		fn(snapshot)
	}
}

func sortFragments(frags []Fragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		pi, pj := frags[i].Priority.rank(), frags[j].Priority.rank()
		if pi != pj {
			return pi > pj
		}
		return frags[i].Seq < frags[j].Seq
	})
}

func cloneFragments(in []Fragment) []Fragment {
	out := make([]Fragment, len(in))
	for i, frag := range in {
		out[i] = frag.clone()
	}
	return out
}
