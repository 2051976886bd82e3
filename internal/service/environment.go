package service

// Environment is the shared key-value context handed to every lifecycle
// hook. The launcher only forwards it; keys and values belong to the
// services. Not safe for concurrent use: startup drives one phase at a
// time (see the launcher package).
type Environment struct {
	values map[string]any
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]any)}
}

func (e *Environment) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

func (e *Environment) Set(key string, value any) {
	e.values[key] = value
}

// GetOrSet returns the existing value for key, computing and storing one
// via fn on first use.
func (e *Environment) GetOrSet(key string, fn func() any) any {
	if v, ok := e.values[key]; ok {
		return v
	}
	v := fn()
	e.values[key] = v
	return v
}
