package launcher

import (
	"fmt"

	"modlaunch/internal/config"
	"modlaunch/internal/events"
	"modlaunch/internal/events/kafka"
	"modlaunch/internal/events/stdout"
	"modlaunch/internal/logging"
	"modlaunch/internal/service"
	"modlaunch/internal/telemetry"
	"modlaunch/internal/transform"
)

// Bootstrap builds a Launcher from the loaded config: constructs every
// enabled manifest service through the registry, seeds the environment
// with manifest properties, and wires event sinks and metrics.
func Bootstrap(cfg config.Config) (*Launcher, error) {
	manifest, err := config.LoadManifest(cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	env := service.NewEnvironment()
	var svcs []service.TransformationService
	for _, entry := range manifest.Services {
		if !entry.IsEnabled() {
			logging.L().Debug("service disabled by manifest", "service", entry.Name)
			continue
		}
		svc, err := service.New(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
		for k, v := range entry.Properties {
			env.Set(fmt.Sprintf("service.%s.%s", entry.Name, k), v)
		}
		svcs = append(svcs, svc)
	}

	sinks, err := buildSinks(cfg.Events)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	bus := events.NewBus(sinks...)
	logging.L().Info("launcher run starting", "run_id", bus.RunID(), "services", len(svcs))

	telemetry.Expose(cfg.MetricsPort)

	return New(env, transform.NewStore(), bus, svcs...)
}

func buildSinks(cfg config.EventsCfg) ([]events.Adapter, error) {
	var sinks []events.Adapter
	for _, name := range cfg.Sinks {
		a, err := events.NewAdapter(name)
		if err != nil {
			return nil, err
		}
		switch name {
		case "stdout":
			err = a.Configure(stdout.Config{JSON: cfg.JSON, PrintCounter: cfg.PrintCounter})
		case "kafka":
			err = a.Configure(kafka.Config{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
				Acks:    cfg.Kafka.Acks,
			})
		default:
			err = fmt.Errorf("no config block for event sink %q", name)
		}
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, a)
	}
	return sinks, nil
}
