package events

import "fmt"

// Adapter is the common behaviour every event sink exposes.
type Adapter interface {
	Configure(any) error // driver-specific config struct
	Emit(Event) error    // deliver one event
	Close() error        // idempotent
}

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown event sink %q", name)
}
