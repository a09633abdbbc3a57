package profiler

import (
	"sort"
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
)

// partial is a profile accumulator. Partials are merged with
// associative, commutative operations (map sum, set union) so
// independent subtree or manifest contributions can be combined in any
// order and still build the same profile.
type partial struct {
	languages  map[string]int
	files      map[string]bool
	dirs       map[string]bool
	frameworks map[string]map[string]bool // category -> names
	deps       []types.Dependency
	depSeen    map[string]bool
	infra      map[string]map[string]bool // bucket -> markers
	env        map[string]bool
	manifests  map[string]string
	licenses   []types.License
	warnings   []string
}

func newPartial() *partial {
	return &partial{
		languages:  make(map[string]int),
		files:      make(map[string]bool),
		dirs:       make(map[string]bool),
		frameworks: make(map[string]map[string]bool),
		depSeen:    make(map[string]bool),
		infra:      make(map[string]map[string]bool),
		env:        make(map[string]bool),
		manifests:  make(map[string]string),
	}
}

func (p *partial) addLanguage(language string, weight int) {
	p.languages[strings.ToLower(language)] += weight
}

func (p *partial) addFile(name string) {
	p.files[name] = true
}

func (p *partial) addDir(name string) {
	p.dirs[name] = true
}

func (p *partial) addFramework(category, name string) {
	if p.frameworks[category] == nil {
		p.frameworks[category] = make(map[string]bool)
	}
	p.frameworks[category][name] = true
}

func (p *partial) addDependency(dep types.Dependency) {
	key := dep.Name + "|" + string(dep.Scope) + "|" + dep.SourceFile
	if p.depSeen[key] {
		return
	}
	p.depSeen[key] = true
	p.deps = append(p.deps, dep)
}

func (p *partial) addInfra(bucket, marker string) {
	if p.infra[bucket] == nil {
		p.infra[bucket] = make(map[string]bool)
	}
	p.infra[bucket][marker] = true
}

func (p *partial) addEnv(marker string) {
	p.env[marker] = true
}

func (p *partial) addManifestContent(name, content string) {
	p.manifests[name] = content
}

func (p *partial) addLicense(license types.License) {
	p.licenses = append(p.licenses, license)
}

func (p *partial) addWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

// merge folds another partial into this one.
func (p *partial) merge(other *partial) {
	if other == nil {
		return
	}
	for lang, weight := range other.languages {
		p.languages[lang] += weight
	}
	for name := range other.files {
		p.files[name] = true
	}
	for name := range other.dirs {
		p.dirs[name] = true
	}
	for category, names := range other.frameworks {
		for name := range names {
			p.addFramework(category, name)
		}
	}
	for _, dep := range other.deps {
		p.addDependency(dep)
	}
	for bucket, markers := range other.infra {
		for marker := range markers {
			p.addInfra(bucket, marker)
		}
	}
	for marker := range other.env {
		p.env[marker] = true
	}
	for name, content := range other.manifests {
		p.manifests[name] = content
	}
	p.licenses = append(p.licenses, other.licenses...)
	p.warnings = append(p.warnings, other.warnings...)
}

// build freezes the accumulator into an immutable profile with sorted
// slices, so two identical scans serialize identically.
func (p *partial) build(root string) *types.ProjectProfile {
	profile := &types.ProjectProfile{
		Root:         root,
		Languages:    p.languages,
		Frameworks:   make(map[string][]string, len(p.frameworks)),
		Dependencies: p.deps,
		Infrastructure: types.Infrastructure{
			Containers:        sortedKeys(p.infra[bucketContainers]),
			Orchestration:     sortedKeys(p.infra[bucketOrchestration]),
			CICD:              sortedKeys(p.infra[bucketCICD]),
			DeploymentTargets: sortedKeys(p.infra[bucketDeployment]),
		},
		EnvironmentMarkers: sortedKeys(p.env),
		Licenses:           p.licenses,
		Files:              sortedKeys(p.files),
		Directories:        sortedKeys(p.dirs),
		ManifestContents:   p.manifests,
	}

	for category, names := range p.frameworks {
		profile.Frameworks[category] = sortedKeys(names)
	}

	sort.Slice(profile.Dependencies, func(i, j int) bool {
		a, b := profile.Dependencies[i], profile.Dependencies[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Scope != b.Scope {
			return a.Scope < b.Scope
		}
		return a.SourceFile < b.SourceFile
	})

	profile.PrimaryLanguage = primaryLanguage(p.languages)
	return profile
}

// primaryLanguage picks the highest-weighted language, ties broken
// alphabetically for determinism.
func primaryLanguage(languages map[string]int) string {
	best := ""
	bestWeight := 0
	for lang, weight := range languages {
		if weight > bestWeight || (weight == bestWeight && (best == "" || lang < best)) {
			best = lang
			bestWeight = weight
		}
	}
	return best
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
