package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from wiregraph.yml.
// CLI flags override anything set here.
type ProjectConfig struct {
	Direction         string   `yaml:"direction,omitempty"`         // downstream, upstream, both
	Entry             []string `yaml:"entry,omitempty"`             // entry class names for sub-graph extraction
	IncludeDecorators *bool    `yaml:"includeDecorators,omitempty"` // capture qualifier flags on edges (default true)
	ExcludeDirs       []string `yaml:"excludeDirs,omitempty"`       // directories skipped during analysis
	Output            string   `yaml:"output,omitempty"`            // output file path ("" means stdout)
	Verbose           bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read wiregraph.yml or wiregraph.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"wiregraph.yml", "wiregraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
