package registry

import "fmt"

// Constructor creates a Registry from provider settings.
type Constructor func(cfg Config) (Registry, error)

var providers = map[string]Constructor{}

// Register adds a registry constructor under the given provider name.
// Called from provider package init functions.
func Register(name string, ctor Constructor) {
	providers[name] = ctor
}

// Get returns the registry constructor for the given provider name.
func Get(name string) (Constructor, error) {
	ctor, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown registry provider: %s", name)
	}
	return ctor, nil
}

// Providers returns the names of all registered providers.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}
