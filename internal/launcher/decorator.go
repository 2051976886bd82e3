package launcher

import (
	"errors"
	"fmt"

	"modlaunch/internal/logging"
	"modlaunch/internal/service"
	"modlaunch/internal/telemetry"
	"modlaunch/internal/transform"
)

// Fatal configuration errors from GatherTransformers. Both wrap the
// offending service and rule, so callers match them with errors.Is.
var (
	ErrNilTransformers = errors.New("transformers list must not be nil")
	ErrInvalidTargets  = errors.New("transformer targets disagree with its declared type")
)

// State records the outcome of a service's load phase. It is set exactly
// once, by Load, and never changes afterwards.
type State int

const (
	StateUnloaded State = iota
	StateLoadValid
	StateLoadInvalid
)

// TransformerRegistry receives validated registrations from
// GatherTransformers. *transform.Store implements it.
type TransformerRegistry interface {
	Add(target transform.Target, xform transform.Transformer, owner transform.Owner)
}

// ServiceTracker wraps one transformation service to track its load state
// and drive it through the startup phases. It performs no gating itself
// beyond the load outcome: callers must check IsValid before continuing
// with a service.
type ServiceTracker struct {
	svc   service.TransformationService
	state State
}

func NewServiceTracker(svc service.TransformationService) *ServiceTracker {
	return &ServiceTracker{svc: svc}
}

// Load invokes the service's load hook with the names of all other
// services in the run. An incompatible environment is consumed here: the
// tracker turns invalid and Load returns nil. Any other failure leaves the
// tracker unloaded and propagates.
func (t *ServiceTracker) Load(env *service.Environment, otherServices []string) error {
	logging.L().Debug("loading service", "service", t.svc.Name())
	if err := t.svc.OnLoad(env, otherServices); err != nil {
		if service.IsIncompatibleEnvironment(err) {
			logging.L().Error("service failed to load", "service", t.svc.Name(), "err", err)
			t.state = StateLoadInvalid
			telemetry.ServicesLoaded.WithLabelValues("invalid").Inc()
			return nil
		}
		return err
	}
	t.state = StateLoadValid
	telemetry.ServicesLoaded.WithLabelValues("valid").Inc()
	logging.L().Debug("loaded service", "service", t.svc.Name())
	return nil
}

// IsValid reports whether the load phase completed successfully.
func (t *ServiceTracker) IsValid() bool { return t.state == StateLoadValid }

func (t *ServiceTracker) State() State { return t.state }

func (t *ServiceTracker) Initialize(env *service.Environment) error {
	logging.L().Debug("initializing transformation service", "service", t.svc.Name())
	if err := t.svc.Initialize(env); err != nil {
		return err
	}
	logging.L().Debug("initialized transformation service", "service", t.svc.Name())
	return nil
}

// GatherTransformers validates the service's reported rules and registers
// one entry per concrete target. A nil rule list, a missing declared target
// type, or a rule whose targets disagree with its declared type fails the
// whole call; rules with no targets contribute nothing. Entries registered
// before a failure stay in the registry: a broken service aborts startup
// entirely, so partial state is moot.
func (t *ServiceTracker) GatherTransformers(registry TransformerRegistry) error {
	logging.L().Debug("gathering transformers", "service", t.svc.Name())
	xforms := t.svc.Transformers()
	if xforms == nil {
		return fmt.Errorf("service %s: %w", t.svc.Name(), ErrNilTransformers)
	}
	for _, xf := range xforms {
		declared := xf.TargetType()
		if declared == "" {
			return fmt.Errorf("service %s: transformer %s: %w", t.svc.Name(), xf.Name(), transform.ErrNoTargetType)
		}
		targets := xf.Targets()
		if len(targets) == 0 {
			continue
		}
		// One pass: count targets per type. Valid means exactly one
		// distinct type and it is the declared one.
		byType := make(map[transform.TargetType]int, 1)
		for _, tgt := range targets {
			byType[tgt.Type]++
		}
		if len(byType) > 1 || byType[declared] == 0 {
			logging.L().Error("invalid targets for transformer",
				"service", t.svc.Name(), "transformer", xf.Name(), "target_type", declared)
			return fmt.Errorf("service %s: transformer %s declares %s: %w",
				t.svc.Name(), xf.Name(), declared, ErrInvalidTargets)
		}
		for _, tgt := range targets {
			registry.Add(tgt, xf, t.svc)
			telemetry.TransformersRegistered.WithLabelValues(string(tgt.Type)).Inc()
		}
	}
	logging.L().Debug("gathered transformers", "service", t.svc.Name())
	return nil
}

// RunScan forwards to the service's scan hook and returns its resources
// unchanged.
func (t *ServiceTracker) RunScan(env *service.Environment) ([]service.Resource, error) {
	logging.L().Debug("begin scan trigger", "service", t.svc.Name())
	res, err := t.svc.BeginScanning(env)
	logging.L().Debug("end scan trigger", "service", t.svc.Name())
	return res, err
}

func (t *ServiceTracker) CompleteScan(layers service.ModuleLayerManager) ([]service.Resource, error) {
	return t.svc.CompleteScan(layers)
}

// Service returns the wrapped handle for later phases.
func (t *ServiceTracker) Service() service.TransformationService { return t.svc }
