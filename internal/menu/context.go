package menu

import "context"

// Contributor is the surface components use to contribute menus. Both
// *Registry and the fallback returned by FromContext satisfy it.
type Contributor interface {
	Register(id string, configs []Config, opts Options)
	Unregister(id string)
	UnregisterComponent(component string)
	Update(id string, configs []Config)
	Fragments() []Fragment
	FragmentsByComponent(component string) []Fragment
	Merged(override []Config) []Config
	Enabled() bool
	SetEnabled(enabled bool)
}

type contextKey struct{}

// NewContext returns a copy of ctx scoped to reg.
func NewContext(ctx context.Context, reg Contributor) context.Context {
	return context.WithValue(ctx, contextKey{}, reg)
}

// FromContext returns the registry scoped into ctx. Outside any scope it
// returns a contributor that ignores writes and merges to the override or
// defaults, so callers never need to check for a registry.
func FromContext(ctx context.Context, defaults []Config) Contributor {
	if ctx != nil {
		if reg, ok := ctx.Value(contextKey{}).(Contributor); ok && reg != nil {
			return reg
		}
	}
	return noopRegistry{defaults: cloneConfigs(defaults)}
}

type noopRegistry struct {
	defaults []Config
}

func (noopRegistry) Register(string, []Config, Options)     {}
func (noopRegistry) Unregister(string)                      {}
func (noopRegistry) UnregisterComponent(string)             {}
func (noopRegistry) Update(string, []Config)                {}
func (noopRegistry) Fragments() []Fragment                  { return []Fragment{} }
func (noopRegistry) FragmentsByComponent(string) []Fragment { return []Fragment{} }
func (noopRegistry) Enabled() bool                          { return false }
func (noopRegistry) SetEnabled(bool)                        {}

func (n noopRegistry) Merged(override []Config) []Config {
	if override != nil {
		return cloneConfigs(override)
	}
	return cloneConfigs(n.defaults)
}

// Mount registers configs for a component and returns the teardown that
// removes every fragment the component owns.
func Mount(c Contributor, id string, configs []Config, opts Options) func() {
	opts = opts.normalized()
	c.Register(id, configs, opts)
	return func() {
		c.UnregisterComponent(opts.Component)
	}
}
