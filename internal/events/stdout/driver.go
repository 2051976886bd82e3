package stdout

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"modlaunch/internal/events"
)

type Config struct {
	JSON         bool `yaml:"json"`          // one JSON object per line
	PrintCounter bool `yaml:"print_counter"` // prepend seq#
}

type driver struct {
	cfg Config
}

var seq uint64

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-events: expected Config, got %T", raw)
	}
	d.cfg = c
	return nil
}

func (d *driver) Emit(ev events.Event) error {
	if d.cfg.JSON {
		b, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	if d.cfg.PrintCounter {
		fmt.Printf("[event %06d] ", atomic.AddUint64(&seq, 1))
	}
	fmt.Printf("%s %s/%s %s %s\n", ev.At.Format("15:04:05.000"), ev.Service, ev.Phase, ev.Level, ev.Detail)
	return nil
}

func (d *driver) Close() error { return nil }

func init() {
	events.Register("stdout", func() events.Adapter { return &driver{} })
}
