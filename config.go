package srcview

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration consumed by the srcview front-ends. It
// names the externally built inventory dump and the project mappings whose
// targets form the root set.
type Config struct {
	// Inventory is the path to the serialized inventory dump.
	Inventory string `yaml:"inventory"`
	// Projects maps a project name to its target: a single root string or a
	// sequence whose first element is the root.
	Projects map[string]Target `yaml:"projects"`
}

// DefaultConfig returns an empty configuration.
func DefaultConfig() *Config {
	return &Config{
		Projects: map[string]Target{},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Projects) == 0 {
		return fmt.Errorf("at least one project mapping is required")
	}

	for name, target := range c.Projects {
		if target.Root() == "" {
			return fmt.Errorf("project %q has an empty target", name)
		}
	}

	return nil
}

// ProjectList returns the configured projects ordered by name.
func (c *Config) ProjectList() []Project {
	names := mapKeys(c.Projects)
	sort.Strings(names)

	projects := make([]Project, 0, len(names))
	for _, name := range names {
		projects = append(projects, Project{Name: name, Target: c.Projects[name]})
	}

	return projects
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
