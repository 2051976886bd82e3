package spec

// ServiceEntry selects one registered service for a launcher run. Enabled
// defaults to true when omitted.
type ServiceEntry struct {
	Name       string            `yaml:"name"`
	Enabled    *bool             `yaml:"enabled"`
	Properties map[string]string `yaml:"properties"`
}

func (e ServiceEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	// Ordered list of services driven through the startup phases.
	Services []ServiceEntry `yaml:"services"`
}
