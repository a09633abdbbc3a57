package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/petrarca/stack-advisor/internal/validation"
	"gopkg.in/yaml.v3"
)

// projectConfigNames are the accepted project config file names, tried
// in order.
var projectConfigNames = []string{".stack-advisor.yaml", ".stack-advisor.yml"}

// ProjectConfig represents the .stack-advisor.yaml configuration file
// placed in a project root.
type ProjectConfig struct {
	Properties map[string]interface{} `yaml:"properties,omitempty"`
	Exclude    []string               `yaml:"exclude,omitempty"`
	CatalogDir string                 `yaml:"catalog_dir,omitempty"` // external catalog override
	MaxDepth   int                    `yaml:"max_depth,omitempty"`
}

// LoadProjectConfig attempts to load the project config from the
// project root. A missing file yields an empty config, not an error;
// a file that fails schema validation is an error.
func LoadProjectConfig(projectPath string) (*ProjectConfig, error) {
	for _, name := range projectConfigNames {
		configPath := filepath.Join(projectPath, name)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}

		if err := validation.ValidateYAML("stack-advisor-config.json", data); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		var config ProjectConfig
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		return &config, nil
	}

	return &ProjectConfig{}, nil
}

// MergeExcludes merges config excludes with CLI excludes, deduplicated
// and sorted for deterministic scans.
func (c *ProjectConfig) MergeExcludes(cliExcludes []string) []string {
	excludeMap := make(map[string]bool)

	if c != nil {
		for _, exclude := range c.Exclude {
			excludeMap[exclude] = true
		}
	}
	for _, exclude := range cliExcludes {
		excludeMap[exclude] = true
	}

	result := make([]string, 0, len(excludeMap))
	for exclude := range excludeMap {
		result = append(result, exclude)
	}
	sort.Strings(result)
	return result
}
