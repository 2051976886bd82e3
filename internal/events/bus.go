package events

import (
	"time"

	"github.com/google/uuid"

	"modlaunch/internal/logging"
)

// Bus stamps events with the run identity and fans them out to every
// configured sink. A nil *Bus is a valid no-op emitter.
type Bus struct {
	runID string
	sinks []Adapter
	now   func() time.Time
}

func NewBus(sinks ...Adapter) *Bus {
	return &Bus{
		runID: uuid.NewString(),
		sinks: sinks,
		now:   time.Now,
	}
}

func (b *Bus) RunID() string {
	if b == nil {
		return ""
	}
	return b.runID
}

func (b *Bus) Emit(service, phase, level, detail string) {
	if b == nil {
		return
	}
	ev := Event{
		RunID:   b.runID,
		Service: service,
		Phase:   phase,
		Level:   level,
		Detail:  detail,
		At:      b.now(),
	}
	for _, s := range b.sinks {
		if err := s.Emit(ev); err != nil {
			logging.L().Warn("event sink emit failed", "phase", phase, "err", err)
		}
	}
}

func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	var firstErr error
	for _, s := range b.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
