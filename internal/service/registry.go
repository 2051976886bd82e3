package service

import (
	"fmt"
	"sort"
)

// Factory builds a TransformationService instance.
type Factory func() TransformationService

var registry = map[string]Factory{}

// Register is called from each service's init() or the launcher main.
func Register(name string, f Factory) {
	registry[name] = f
}

// New returns a service instance by registered name.
func New(name string) (TransformationService, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("service: unknown service %q (registered: %v)", name, Names())
}

// Names lists the registered service names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
