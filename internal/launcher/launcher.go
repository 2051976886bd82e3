package launcher

import (
	"context"
	"fmt"

	"modlaunch/internal/events"
	"modlaunch/internal/logging"
	"modlaunch/internal/service"
	"modlaunch/internal/telemetry"
	"modlaunch/internal/transform"
)

// Launcher drives a set of transformation services through the startup
// phases in order: load, initialize, gather transformers, scan, complete
// scan. Services whose environment is incompatible drop out after load;
// any other failure aborts the run. One goroutine drives all phases: the
// environment, the store, and the trackers are never shared concurrently.
type Launcher struct {
	trackers []*ServiceTracker
	names    []string
	store    *transform.Store
	env      *service.Environment
	bus      *events.Bus
}

func New(env *service.Environment, store *transform.Store, bus *events.Bus, svcs ...service.TransformationService) (*Launcher, error) {
	seen := make(map[string]struct{}, len(svcs))
	l := &Launcher{store: store, env: env, bus: bus}
	for _, svc := range svcs {
		name := svc.Name()
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("launcher: duplicate service name %q", name)
		}
		seen[name] = struct{}{}
		l.trackers = append(l.trackers, NewServiceTracker(svc))
		l.names = append(l.names, name)
	}
	return l, nil
}

func (l *Launcher) Store() *transform.Store { return l.store }

func (l *Launcher) Environment() *service.Environment { return l.env }

// Close releases the event sinks.
func (l *Launcher) Close() error { return l.bus.Close() }

// othersFor is the name set passed to a service's load hook: every service
// in the run except itself. Fresh copy per call; trackers share nothing.
func (l *Launcher) othersFor(i int) []string {
	others := make([]string, 0, len(l.names)-1)
	for j, name := range l.names {
		if j != i {
			others = append(others, name)
		}
	}
	return others
}

// LoadServices loads every service. Incompatible services stay in the run
// as invalid trackers; later phases skip them.
func (l *Launcher) LoadServices() error {
	for i, t := range l.trackers {
		if err := t.Load(l.env, l.othersFor(i)); err != nil {
			l.bus.Emit(l.names[i], "load", events.LevelError, err.Error())
			return fmt.Errorf("load %s: %w", l.names[i], err)
		}
		if !t.IsValid() {
			logging.L().Warn("skipping incompatible service", "service", l.names[i])
			l.bus.Emit(l.names[i], "load", events.LevelError, "incompatible environment")
			continue
		}
		l.bus.Emit(l.names[i], "load", events.LevelInfo, "")
	}
	return nil
}

func (l *Launcher) InitializeServices() error {
	for i, t := range l.trackers {
		if !t.IsValid() {
			continue
		}
		if err := t.Initialize(l.env); err != nil {
			l.bus.Emit(l.names[i], "initialize", events.LevelError, err.Error())
			return fmt.Errorf("initialize %s: %w", l.names[i], err)
		}
		l.bus.Emit(l.names[i], "initialize", events.LevelInfo, "")
	}
	return nil
}

// GatherTransformers collects every valid service's rules into the store.
// The first inconsistent service fails the run; earlier services' entries
// stay registered.
func (l *Launcher) GatherTransformers() error {
	for i, t := range l.trackers {
		if !t.IsValid() {
			continue
		}
		if err := t.GatherTransformers(l.store); err != nil {
			l.bus.Emit(l.names[i], "transformers", events.LevelError, err.Error())
			return fmt.Errorf("transformers %s: %w", l.names[i], err)
		}
		l.bus.Emit(l.names[i], "transformers", events.LevelInfo, "")
	}
	return nil
}

func (l *Launcher) RunScans() ([]service.Resource, error) {
	var all []service.Resource
	for i, t := range l.trackers {
		if !t.IsValid() {
			continue
		}
		res, err := t.RunScan(l.env)
		if err != nil {
			l.bus.Emit(l.names[i], "scan", events.LevelError, err.Error())
			return nil, fmt.Errorf("scan %s: %w", l.names[i], err)
		}
		telemetry.ScanResources.Add(float64(len(res)))
		l.bus.Emit(l.names[i], "scan", events.LevelInfo, fmt.Sprintf("%d resources", len(res)))
		all = append(all, res...)
	}
	return all, nil
}

func (l *Launcher) CompleteScans(layers service.ModuleLayerManager) ([]service.Resource, error) {
	var all []service.Resource
	for i, t := range l.trackers {
		if !t.IsValid() {
			continue
		}
		res, err := t.CompleteScan(layers)
		if err != nil {
			l.bus.Emit(l.names[i], "complete-scan", events.LevelError, err.Error())
			return nil, fmt.Errorf("complete scan %s: %w", l.names[i], err)
		}
		telemetry.ScanResources.Add(float64(len(res)))
		l.bus.Emit(l.names[i], "complete-scan", events.LevelInfo, fmt.Sprintf("%d resources", len(res)))
		all = append(all, res...)
	}
	return all, nil
}

// Run executes the full phase sequence and returns every resource the
// services surfaced. Each phase runs to completion synchronously; ctx is
// checked between phases, so a shutdown signal stops the run at the next
// phase boundary.
func (l *Launcher) Run(ctx context.Context, layers service.ModuleLayerManager) ([]service.Resource, error) {
	phases := []func() error{
		l.LoadServices,
		l.InitializeServices,
		l.GatherTransformers,
	}
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := phase(); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scanned, err := l.RunScans()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	completed, err := l.CompleteScans(layers)
	if err != nil {
		return nil, err
	}
	return append(scanned, completed...), nil
}
