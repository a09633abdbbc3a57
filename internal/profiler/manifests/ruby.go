package manifests

import (
	"regexp"
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
)

// RubyParser handles Gemfile parsing.
type RubyParser struct{}

// NewRubyParser creates a new Ruby parser
func NewRubyParser() *RubyParser {
	return &RubyParser{}
}

var (
	gemLineRegex   = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)
	groupLineRegex = regexp.MustCompile(`^\s*group\s+(.+?)\s+do`)
)

func (p *RubyParser) Name() string {
	return "ruby"
}

func (p *RubyParser) Matches(fileName string) bool {
	return fileName == "Gemfile"
}

// Parse extracts gem declarations. Gems inside development or test
// group blocks land in the development scope.
func (p *RubyParser) Parse(fileName string, content []byte) (*Manifest, error) {
	manifest := &Manifest{Ecosystem: "gem"}

	scope := types.ScopeProduction
	groupDepth := 0

	for _, line := range strings.Split(string(content), "\n") {
		if m := groupLineRegex.FindStringSubmatch(line); m != nil {
			groupDepth++
			if strings.Contains(m[1], ":development") || strings.Contains(m[1], ":test") {
				scope = types.ScopeDevelopment
			}
			continue
		}

		if strings.TrimSpace(line) == "end" && groupDepth > 0 {
			groupDepth--
			if groupDepth == 0 {
				scope = types.ScopeProduction
			}
			continue
		}

		if m := gemLineRegex.FindStringSubmatch(line); m != nil {
			manifest.Dependencies = append(manifest.Dependencies, types.Dependency{
				Name:       m[1],
				Version:    m[2],
				Scope:      scope,
				Ecosystem:  "gem",
				SourceFile: fileName,
			})
		}
	}

	return manifest, nil
}
