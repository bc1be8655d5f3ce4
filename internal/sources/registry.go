package sources

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SourceConfig describes one adapter in the registry file. Endpoint
// overrides the built-in URL; Feeds applies to the syndication source only.
type SourceConfig struct {
	Enabled  *bool      `yaml:"enabled"`
	Endpoint string     `yaml:"endpoint"`
	Feeds    []FeedSpec `yaml:"feeds"`
}

// Registry is the declarative source list: adapters are added and removed
// here without touching merge or aggregation logic.
type Registry struct {
	Sources map[string]SourceConfig `yaml:"sources"`
}

// Registry keys, in the fixed pipeline order.
var sourceOrder = []string{
	"malwarebazaar",
	"urlhaus",
	"blogs",
	"vxunderground",
	"malpedia",
	"anyrun",
}

// DefaultRegistry enables every known source with built-in endpoints.
func DefaultRegistry() *Registry {
	sources := make(map[string]SourceConfig, len(sourceOrder))
	for _, name := range sourceOrder {
		sources[name] = SourceConfig{}
	}
	return &Registry{Sources: sources}
}

// LoadRegistry reads a registry file. A missing file degrades to the
// defaults rather than failing; a malformed file is an error.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRegistry(), nil
		}
		return nil, err
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if reg.Sources == nil {
		return DefaultRegistry(), nil
	}
	for name := range reg.Sources {
		if !knownSource(name) {
			return nil, fmt.Errorf("registry %s: unknown source %q", path, name)
		}
	}
	return &reg, nil
}

// Enabled reports whether a source should run. Sources absent from the
// file are disabled; present sources default to enabled.
func (r *Registry) Enabled(name string) bool {
	cfg, ok := r.Sources[name]
	if !ok {
		return false
	}
	return cfg.Enabled == nil || *cfg.Enabled
}

// Build returns the enabled adapters in the fixed pipeline order.
func (r *Registry) Build(client *Client, logger *zap.SugaredLogger) []Adapter {
	var adapters []Adapter
	for _, name := range sourceOrder {
		if !r.Enabled(name) {
			continue
		}
		cfg := r.Sources[name]
		switch name {
		case "malwarebazaar":
			adapters = append(adapters, NewMalwareBazaar(client, cfg.Endpoint))
		case "urlhaus":
			adapters = append(adapters, NewURLhaus(client, cfg.Endpoint))
		case "blogs":
			adapters = append(adapters, NewSecurityBlogs(client, cfg.Feeds, logger))
		case "vxunderground":
			adapters = append(adapters, NewVXUnderground(client, cfg.Endpoint))
		case "malpedia":
			adapters = append(adapters, NewMalpedia(client, cfg.Endpoint))
		case "anyrun":
			adapters = append(adapters, NewAnyRun(client, cfg.Endpoint))
		}
	}
	return adapters
}

func knownSource(name string) bool {
	for _, s := range sourceOrder {
		if s == name {
			return true
		}
	}
	return false
}
