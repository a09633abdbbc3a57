package manifests

import (
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
)

// PythonParser handles requirements files and pyproject.toml. The TOML
// sections we need are simple enough that a line-based parse avoids an
// extra dependency, same as the Cargo parser.
type PythonParser struct{}

// NewPythonParser creates a new Python parser
func NewPythonParser() *PythonParser {
	return &PythonParser{}
}

func (p *PythonParser) Name() string {
	return "python"
}

func (p *PythonParser) Matches(fileName string) bool {
	switch fileName {
	case "requirements.txt", "requirements-dev.txt", "dev-requirements.txt", "pyproject.toml":
		return true
	}
	return false
}

func (p *PythonParser) Parse(fileName string, content []byte) (*Manifest, error) {
	manifest := &Manifest{Ecosystem: "pypi"}

	if fileName == "pyproject.toml" {
		manifest.Dependencies = p.parsePyproject(fileName, string(content))
		return manifest, nil
	}

	scope := types.ScopeProduction
	if strings.Contains(fileName, "dev") {
		scope = types.ScopeDevelopment
	}
	manifest.Dependencies = p.parseRequirements(fileName, string(content), scope)
	return manifest, nil
}

// parseRequirements parses a requirements file line by line, stripping
// PEP 508 extras, constraints and environment markers down to the name.
func (p *PythonParser) parseRequirements(fileName, content string, scope types.DependencyScope) []types.Dependency {
	var deps []types.Dependency
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		deps = append(deps, types.Dependency{
			Name:       canonPythonName(name),
			Version:    version,
			Scope:      scope,
			Ecosystem:  "pypi",
			SourceFile: fileName,
		})
	}
	return deps
}

// parsePyproject extracts [project] dependencies, [project.optional-dependencies]
// and [tool.poetry.dependencies] / [tool.poetry.group.dev.dependencies].
func (p *PythonParser) parsePyproject(fileName, content string) []types.Dependency {
	var deps []types.Dependency
	var section string
	var inProjectDeps bool

	addRequirement := func(raw string, scope types.DependencyScope) {
		name, version := splitRequirement(raw)
		if name == "" || name == "python" {
			return
		}
		deps = append(deps, types.Dependency{
			Name:       canonPythonName(name),
			Version:    version,
			Scope:      scope,
			Ecosystem:  "pypi",
			SourceFile: fileName,
		})
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") && !strings.HasPrefix(line, "[[") {
			section = strings.Trim(line, "[]")
			inProjectDeps = false
			continue
		}

		switch {
		case section == "project" && strings.HasPrefix(line, "dependencies"):
			inProjectDeps = true
			line = strings.TrimPrefix(line, "dependencies")
			fallthrough
		case section == "project" && inProjectDeps:
			for _, raw := range extractQuoted(line) {
				addRequirement(raw, types.ScopeProduction)
			}
			if strings.Contains(line, "]") {
				inProjectDeps = false
			}
		case strings.HasPrefix(section, "project.optional-dependencies"):
			for _, raw := range extractQuoted(line) {
				addRequirement(raw, types.ScopeOptional)
			}
		case section == "tool.poetry.dependencies":
			if name, _, found := strings.Cut(line, "="); found {
				addRequirement(strings.TrimSpace(name), types.ScopeProduction)
			}
		case strings.HasPrefix(section, "tool.poetry.group") && strings.HasSuffix(section, ".dependencies"),
			section == "tool.poetry.dev-dependencies":
			if name, _, found := strings.Cut(line, "="); found {
				addRequirement(strings.TrimSpace(name), types.ScopeDevelopment)
			}
		}
	}
	return deps
}

// splitRequirement splits a PEP 508 requirement into name and the raw
// version constraint, dropping extras and environment markers.
func splitRequirement(raw string) (string, string) {
	raw = strings.TrimSpace(strings.Trim(raw, `"',`))
	if raw == "" {
		return "", ""
	}

	nameEnd := strings.IndexAny(raw, " \t[(;<=!~>")
	if nameEnd < 0 {
		return raw, ""
	}
	if nameEnd == 0 {
		return "", ""
	}

	name := raw[:nameEnd]
	rest := strings.TrimLeft(raw[nameEnd:], " \t")

	// Drop extras section
	if strings.HasPrefix(rest, "[") {
		if end := strings.IndexByte(rest, ']'); end >= 0 {
			rest = strings.TrimLeft(rest[end+1:], " \t")
		}
	}

	// Constraint runs until an environment marker
	version, _, _ := strings.Cut(rest, ";")
	return name, strings.TrimSpace(version)
}

// canonPythonName normalizes a package name per PEP 503
func canonPythonName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}

// extractQuoted returns every single- or double-quoted string in a line
func extractQuoted(line string) []string {
	var out []string
	for {
		start := strings.IndexAny(line, `"'`)
		if start < 0 {
			return out
		}
		quote := line[start]
		rest := line[start+1:]
		end := strings.IndexByte(rest, quote)
		if end < 0 {
			return out
		}
		out = append(out, rest[:end])
		line = rest[end+1:]
	}
}
