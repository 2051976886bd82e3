// Package service defines the contract a transformation service implements
// to take part in launcher startup, plus the environment and resources the
// phases exchange. Implementations register with the factory registry and
// are selected through the launcher manifest.
package service

import "modlaunch/internal/transform"

// Resource is what a service surfaces from its scan phases: content it
// wants placed on a module layer.
type Resource struct {
	Layer string
	Paths []string
}

// ModuleLayerManager gives scan completion access to the layers built in
// earlier phases. Opaque to the launcher core.
type ModuleLayerManager interface {
	Layer(name string) (any, bool)
}

// LayerMap is a minimal in-memory ModuleLayerManager.
type LayerMap map[string]any

func (m LayerMap) Layer(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// TransformationService is the capability set the launcher drives. Each
// instance is wrapped by exactly one tracker and called in the fixed order
// OnLoad, Initialize, Transformers, BeginScanning, CompleteScan.
type TransformationService interface {
	Name() string

	// OnLoad receives the environment and the names of every other service
	// in this run, so the service can detect conflicts itself. Returning an
	// IncompatibleEnvironmentError marks the service invalid without
	// failing startup; any other error does fail it.
	OnLoad(env *Environment, otherServices []string) error

	Initialize(env *Environment) error

	// Transformers reports the rules this service contributes. A nil slice
	// is a contract violation; an empty slice contributes nothing.
	Transformers() []transform.Transformer

	BeginScanning(env *Environment) ([]Resource, error)

	CompleteScan(layers ModuleLayerManager) ([]Resource, error)
}
