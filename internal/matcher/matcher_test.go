package matcher

import (
	"context"
	"testing"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptor(name string, patterns ...types.Pattern) *types.ServiceDescriptor {
	return &types.ServiceDescriptor{Name: name, Type: "test", Priority: 50, Patterns: patterns}
}

func TestScore_NoPatterns(t *testing.T) {
	profile := &types.ProjectProfile{Files: []string{"main.go"}}
	candidate := Score(profile, descriptor("empty"))

	assert.Equal(t, 20, candidate.Confidence)
	assert.Empty(t, candidate.Reasons)
}

func TestScore_ExactFilePattern(t *testing.T) {
	profile := &types.ProjectProfile{Files: []string{"package.json", "index.js"}}
	desc := descriptor("npm-tool", types.Pattern{Kind: types.PatternFile, Value: "package.json"})

	candidate := Score(profile, desc)

	// base 20 + pattern 25 + exact file 10
	assert.Equal(t, 55, candidate.Confidence)
	require.Len(t, candidate.Reasons, 1)
	assert.Contains(t, candidate.Reasons[0], "package.json")
}

func TestScore_GlobFilePattern(t *testing.T) {
	profile := &types.ProjectProfile{Files: []string{"next.config.mjs"}}
	desc := descriptor("nextjs-tool", types.Pattern{Kind: types.PatternFile, Value: "next.config.*"})

	candidate := Score(profile, desc)

	// glob matches earn the pattern bonus but not the exact-file bonus
	assert.Equal(t, 45, candidate.Confidence)
}

func TestScore_DependencyPattern(t *testing.T) {
	profile := &types.ProjectProfile{
		Dependencies: []types.Dependency{{Name: "redis", Scope: types.ScopeProduction}},
	}
	desc := descriptor("redis", types.Pattern{Kind: types.PatternDependency, Value: "redis"})

	candidate := Score(profile, desc)
	assert.Equal(t, 45, candidate.Confidence)
}

func TestScore_DependencyPatternMatchesFramework(t *testing.T) {
	profile := &types.ProjectProfile{
		Frameworks: map[string][]string{"backend": {"django"}},
	}
	desc := descriptor("django-tool", types.Pattern{Kind: types.PatternDependency, Value: "django"})

	candidate := Score(profile, desc)

	// pattern 25 + framework mention 20
	assert.Equal(t, 65, candidate.Confidence)
}

func TestScore_ContentPattern(t *testing.T) {
	profile := &types.ProjectProfile{
		ManifestContents: map[string]string{
			"docker-compose.yml": "services:\n  cache:\n    image: redis:7\n",
		},
	}
	desc := descriptor("redis", types.Pattern{Kind: types.PatternContent, Value: "redis"})

	candidate := Score(profile, desc)
	assert.Equal(t, 45, candidate.Confidence)
}

func TestScore_DirectoryPattern(t *testing.T) {
	profile := &types.ProjectProfile{Directories: []string{"k8s", "src"}}
	desc := descriptor("kube-tool", types.Pattern{Kind: types.PatternDirectory, Value: "k8s"})

	candidate := Score(profile, desc)
	assert.Equal(t, 45, candidate.Confidence)
}

func TestScore_InfrastructureMarkerFallback(t *testing.T) {
	profile := &types.ProjectProfile{
		Infrastructure: types.Infrastructure{DeploymentTargets: []string{"vercel"}},
	}
	desc := descriptor("vercel-tool", types.Pattern{Kind: types.PatternFile, Value: "vercel.json"})

	candidate := Score(profile, desc)
	assert.Equal(t, 45, candidate.Confidence)
}

func TestScore_PrimaryLanguageBonus(t *testing.T) {
	profile := &types.ProjectProfile{
		PrimaryLanguage: "go",
		Files:           []string{"go.mod"},
	}
	desc := descriptor("go-tool", types.Pattern{Kind: types.PatternFile, Value: "go.mod"})

	candidate := Score(profile, desc)

	// pattern 25 + exact 10 + language mention 15
	assert.Equal(t, 70, candidate.Confidence)
}

func TestScore_LanguageBonusAppliesOnce(t *testing.T) {
	profile := &types.ProjectProfile{PrimaryLanguage: "go"}
	desc := descriptor("go-tool",
		types.Pattern{Kind: types.PatternFile, Value: "go.mod"},
		types.Pattern{Kind: types.PatternFile, Value: "go.sum"},
	)

	candidate := Score(profile, desc)

	// Neither file is present, so only the single language bonus applies.
	assert.Equal(t, 35, candidate.Confidence)
}

func TestScore_ClampedAt100(t *testing.T) {
	profile := &types.ProjectProfile{
		Files:           []string{"package.json", "jest.config.js", "babel.config.js"},
		PrimaryLanguage: "javascript",
		Frameworks:      map[string][]string{"web": {"react"}},
		Dependencies:    []types.Dependency{{Name: "jest"}, {Name: "react"}},
	}
	desc := descriptor("jest",
		types.Pattern{Kind: types.PatternFile, Value: "jest.config.js"},
		types.Pattern{Kind: types.PatternFile, Value: "babel.config.js"},
		types.Pattern{Kind: types.PatternDependency, Value: "jest"},
		types.Pattern{Kind: types.PatternDependency, Value: "react"},
		types.Pattern{Kind: types.PatternContent, Value: "javascript"},
	)

	candidate := Score(profile, desc)
	assert.Equal(t, 100, candidate.Confidence)
}

func TestMatch_FiltersAndSorts(t *testing.T) {
	root := &types.Category{
		Name: "catalog",
		Children: []types.CatalogNode{
			descriptor("zulu", types.Pattern{Kind: types.PatternFile, Value: "zulu.toml"}),
			descriptor("alpha", types.Pattern{Kind: types.PatternFile, Value: "alpha.toml"}),
			descriptor("never", types.Pattern{Kind: types.PatternFile, Value: "missing.toml"}),
		},
	}
	cat, err := catalog.New(root)
	require.NoError(t, err)

	profile := &types.ProjectProfile{Files: []string{"alpha.toml", "zulu.toml"}}

	candidates, err := New(cat, nil).Match(context.Background(), profile)
	require.NoError(t, err)

	// "never" stays at base confidence 20 and is dropped.
	require.Len(t, candidates, 2)
	assert.Equal(t, "alpha", candidates[0].Descriptor.Name)
	assert.Equal(t, "zulu", candidates[1].Descriptor.Name)
}

func TestMatch_Deterministic(t *testing.T) {
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)

	profile := &types.ProjectProfile{
		PrimaryLanguage: "typescript",
		Files:           []string{"package.json", "Dockerfile", ".eslintrc.json"},
		Dependencies: []types.Dependency{
			{Name: "express"}, {Name: "redis"}, {Name: "jest"},
		},
		Frameworks: map[string][]string{"backend": {"express"}},
	}

	m := New(cat, nil)
	first, err := m.Match(context.Background(), profile)
	require.NoError(t, err)
	second, err := m.Match(context.Background(), profile)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Descriptor.Name, second[i].Descriptor.Name)
		assert.Equal(t, first[i].Confidence, second[i].Confidence)
	}
}

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"package.json", "package.json", true},
		{"Package.JSON", "package.json", true},
		{"next.config.*", "next.config.mjs", true},
		{"next.config.*", "next.config", false},
		{"*.tf", "main.tf", true},
		{"*.tf", "main.go", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, globMatch(tt.pattern, tt.name), "%s vs %s", tt.pattern, tt.name)
	}
}
