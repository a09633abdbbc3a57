package manifests

import (
	"encoding/json"
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
)

// PHPParser handles composer.json parsing.
type PHPParser struct{}

// NewPHPParser creates a new PHP parser
func NewPHPParser() *PHPParser {
	return &PHPParser{}
}

// ComposerJSON represents the structure of composer.json
type ComposerJSON struct {
	Name       string            `json:"name"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

func (p *PHPParser) Name() string {
	return "php"
}

func (p *PHPParser) Matches(fileName string) bool {
	return fileName == "composer.json"
}

// Parse extracts dependencies from composer.json, skipping the php
// runtime constraint and ext-* platform requirements.
func (p *PHPParser) Parse(fileName string, content []byte) (*Manifest, error) {
	var composer ComposerJSON
	if err := json.Unmarshal(content, &composer); err != nil {
		return nil, err
	}

	manifest := &Manifest{Ecosystem: "composer", PackageName: composer.Name}
	manifest.Dependencies = append(manifest.Dependencies, composerDeps(composer.Require, types.ScopeProduction, fileName)...)
	manifest.Dependencies = append(manifest.Dependencies, composerDeps(composer.RequireDev, types.ScopeDevelopment, fileName)...)
	return manifest, nil
}

func composerDeps(section map[string]string, scope types.DependencyScope, sourceFile string) []types.Dependency {
	var deps []types.Dependency
	for name, version := range section {
		if name == "php" || strings.HasPrefix(name, "ext-") {
			continue
		}
		deps = append(deps, types.Dependency{
			Name:       name,
			Version:    version,
			Scope:      scope,
			Ecosystem:  "composer",
			SourceFile: sourceFile,
		})
	}
	return deps
}
