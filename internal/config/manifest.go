package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"modlaunch/internal/spec"
)

const SupportedSchema = "v1"

// LoadManifest parses a service manifest YAML and validates schema_version.
func LoadManifest(path string) (spec.File, error) {
	var m spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return m, err
	}
	if m.SchemaVersion == "" {
		m.SchemaVersion = SupportedSchema
	}
	if m.SchemaVersion != SupportedSchema {
		return m, fmt.Errorf("manifest schema_version %q not supported (want %q)", m.SchemaVersion, SupportedSchema)
	}
	return m, nil
}
