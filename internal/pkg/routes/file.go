package routes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type routesFile struct {
	Routes []Descriptor `yaml:"routes"`
}

// LoadFile reads descriptors from a YAML document with a top level
// "routes" list and loads them.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file %s: %w", path, err)
	}

	var file routesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse routes file %s: %w", path, err)
	}

	table, err := Load(file.Routes)
	if err != nil {
		return nil, fmt.Errorf("routes file %s: %w", path, err)
	}
	return table, nil
}
