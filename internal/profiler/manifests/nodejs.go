package manifests

import (
	"encoding/json"

	"github.com/petrarca/stack-advisor/internal/types"
)

// NodeJSParser handles package.json parsing.
type NodeJSParser struct{}

// NewNodeJSParser creates a new Node.js parser
func NewNodeJSParser() *NodeJSParser {
	return &NodeJSParser{}
}

// PackageJSON represents the structure of package.json
type PackageJSON struct {
	Name                 string            `json:"name"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

func (p *NodeJSParser) Name() string {
	return "nodejs"
}

func (p *NodeJSParser) Matches(fileName string) bool {
	return fileName == "package.json"
}

// Parse extracts dependencies from package.json across all four
// dependency sections.
func (p *NodeJSParser) Parse(fileName string, content []byte) (*Manifest, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, err
	}

	manifest := &Manifest{Ecosystem: "npm", PackageName: pkg.Name}
	manifest.Dependencies = append(manifest.Dependencies, toDependencies(pkg.Dependencies, types.ScopeProduction, "npm", fileName)...)
	manifest.Dependencies = append(manifest.Dependencies, toDependencies(pkg.DevDependencies, types.ScopeDevelopment, "npm", fileName)...)
	manifest.Dependencies = append(manifest.Dependencies, toDependencies(pkg.PeerDependencies, types.ScopePeer, "npm", fileName)...)
	manifest.Dependencies = append(manifest.Dependencies, toDependencies(pkg.OptionalDependencies, types.ScopeOptional, "npm", fileName)...)
	return manifest, nil
}

func toDependencies(section map[string]string, scope types.DependencyScope, ecosystem, sourceFile string) []types.Dependency {
	deps := make([]types.Dependency, 0, len(section))
	for name, version := range section {
		deps = append(deps, types.Dependency{
			Name:       name,
			Version:    version,
			Scope:      scope,
			Ecosystem:  ecosystem,
			SourceFile: sourceFile,
		})
	}
	return deps
}
