package manifests

import (
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
)

// RustParser handles Cargo.toml parsing. The TOML is parsed manually,
// section by section, to avoid an extra dependency.
type RustParser struct{}

// NewRustParser creates a new Rust parser
func NewRustParser() *RustParser {
	return &RustParser{}
}

func (p *RustParser) Name() string {
	return "rust"
}

func (p *RustParser) Matches(fileName string) bool {
	return fileName == "Cargo.toml"
}

func (p *RustParser) Parse(fileName string, content []byte) (*Manifest, error) {
	manifest := &Manifest{Ecosystem: "cargo"}

	var section string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}

		if section == "package" {
			if name, value, found := strings.Cut(line, "="); found && strings.TrimSpace(name) == "name" {
				manifest.PackageName = strings.Trim(strings.TrimSpace(value), `"`)
			}
			continue
		}

		scope, ok := cargoSectionScope(section)
		if !ok {
			continue
		}

		name, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		manifest.Dependencies = append(manifest.Dependencies, types.Dependency{
			Name:       name,
			Version:    cargoVersion(strings.TrimSpace(value)),
			Scope:      scope,
			Ecosystem:  "cargo",
			SourceFile: fileName,
		})
	}

	return manifest, nil
}

func cargoSectionScope(section string) (types.DependencyScope, bool) {
	switch section {
	case "dependencies", "workspace.dependencies":
		return types.ScopeProduction, true
	case "dev-dependencies":
		return types.ScopeDevelopment, true
	case "build-dependencies":
		return types.ScopeOptional, true
	}
	return "", false
}

// cargoVersion extracts the version from either the string form
// (`"1.0"`) or the inline table form (`{ version = "1.0", ... }`).
func cargoVersion(value string) string {
	if strings.HasPrefix(value, `"`) {
		return strings.Trim(value, `"`)
	}
	if idx := strings.Index(value, "version"); idx >= 0 {
		rest := value[idx:]
		if _, after, found := strings.Cut(rest, `"`); found {
			if version, _, found := strings.Cut(after, `"`); found {
				return version
			}
		}
	}
	return ""
}
