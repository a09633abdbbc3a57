package types

import "sort"

// DependencyScope identifies which manifest section a dependency came from.
type DependencyScope string

const (
	ScopeProduction  DependencyScope = "production"
	ScopeDevelopment DependencyScope = "development"
	ScopePeer        DependencyScope = "peer"
	ScopeOptional    DependencyScope = "optional"
)

// Dependency is a single dependency extracted from a manifest file.
type Dependency struct {
	Name       string          `json:"name"`
	Version    string          `json:"version,omitempty"`
	Scope      DependencyScope `json:"scope"`
	Ecosystem  string          `json:"ecosystem"`             // npm, go, pypi, cargo, gem, composer
	SourceFile string          `json:"source_file,omitempty"` // manifest the dependency was read from
}

// Infrastructure holds boolean-presence infrastructure markers detected
// from known file and directory names.
type Infrastructure struct {
	Containers        []string `json:"containers,omitempty"`
	Orchestration     []string `json:"orchestration,omitempty"`
	CICD              []string `json:"ci_cd,omitempty"`
	DeploymentTargets []string `json:"deployment_targets,omitempty"`
}

// License is a detected project license.
type License struct {
	Name       string  `json:"name"`
	Confidence float32 `json:"confidence"`
	SourceFile string  `json:"source_file,omitempty"`
}

// RepoInfo describes the git repository containing the project, if any.
type RepoInfo struct {
	RemoteURL string `json:"remote_url,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Dirty     bool   `json:"dirty"`
}

// ProjectProfile is the structured summary of a scanned project:
// weighted languages, frameworks grouped by category, dependency sets
// per scope, and infrastructure markers. It is produced once per
// discovery run by the profiler and read-only afterward.
type ProjectProfile struct {
	Root               string              `json:"root"`
	Languages          map[string]int      `json:"languages"`
	PrimaryLanguage    string              `json:"primary_language,omitempty"`
	Frameworks         map[string][]string `json:"frameworks,omitempty"` // category (web/mobile/desktop/backend) -> names
	Dependencies       []Dependency        `json:"dependencies,omitempty"`
	Infrastructure     Infrastructure      `json:"infrastructure"`
	EnvironmentMarkers []string            `json:"environment_markers,omitempty"`
	Licenses           []License           `json:"licenses,omitempty"`
	Repository         *RepoInfo           `json:"repository,omitempty"`

	// Match evidence for the scorer; not part of the serialized profile.
	Files            []string          `json:"-"` // deduplicated file names seen during the walk
	Directories      []string          `json:"-"` // deduplicated directory names seen during the walk
	ManifestContents map[string]string `json:"-"` // manifest/config file name -> content
}

// InfrastructureMarkers returns every infrastructure and environment
// marker as one sorted slice.
func (p *ProjectProfile) InfrastructureMarkers() []string {
	var out []string
	out = append(out, p.Infrastructure.Containers...)
	out = append(out, p.Infrastructure.Orchestration...)
	out = append(out, p.Infrastructure.CICD...)
	out = append(out, p.Infrastructure.DeploymentTargets...)
	out = append(out, p.EnvironmentMarkers...)
	sort.Strings(out)
	return out
}

// HasDependency reports whether a dependency with the given name was
// detected in any scope.
func (p *ProjectProfile) HasDependency(name string) bool {
	for _, dep := range p.Dependencies {
		if dep.Name == name {
			return true
		}
	}
	return false
}

// DependencyNames returns the sorted, deduplicated names of all
// detected dependencies across every scope.
func (p *ProjectProfile) DependencyNames() []string {
	seen := make(map[string]bool, len(p.Dependencies))
	for _, dep := range p.Dependencies {
		seen[dep.Name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FrameworkNames returns the sorted names of all detected frameworks
// across every category.
func (p *ProjectProfile) FrameworkNames() []string {
	seen := make(map[string]bool)
	for _, names := range p.Frameworks {
		for _, name := range names {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasFramework reports whether the named framework was detected in any
// category.
func (p *ProjectProfile) HasFramework(name string) bool {
	for _, names := range p.Frameworks {
		for _, existing := range names {
			if existing == name {
				return true
			}
		}
	}
	return false
}

// HasWebFramework reports whether any web framework was detected.
func (p *ProjectProfile) HasWebFramework() bool {
	return len(p.Frameworks["web"]) > 0
}

// HasDeploymentTarget reports whether any deployment-target marker was
// detected.
func (p *ProjectProfile) HasDeploymentTarget() bool {
	return len(p.Infrastructure.DeploymentTargets) > 0
}
