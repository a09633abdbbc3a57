package profiler

import (
	"context"
	"testing"

	"github.com/petrarca/stack-advisor/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packageJSON = `{
  "name": "webapp",
  "dependencies": {
    "express": "^4.18.0",
    "react": "^18.2.0"
  },
  "devDependencies": {
    "jest": "^29.0.0"
  }
}`

func TestProfile_NodeProject(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/package.json", packageJSON)
	fake.AddFile("/Dockerfile", "FROM node:20\n")
	fake.AddFile("/.env", "DATABASE_URL=postgres://localhost\n")
	fake.AddFile("/src/index.ts", "console.log('hi')\n")

	p := New(fake, Options{})
	profile, warnings, err := p.Profile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.True(t, profile.HasDependency("express"))
	assert.True(t, profile.HasDependency("react"))
	assert.True(t, profile.HasDependency("jest"))

	assert.Contains(t, profile.Frameworks["backend"], "express")
	assert.Contains(t, profile.Frameworks["web"], "react")

	assert.Equal(t, "typescript", profile.PrimaryLanguage)

	assert.Contains(t, profile.Infrastructure.Containers, "docker")
	assert.Equal(t, []string{".env"}, profile.EnvironmentMarkers)

	assert.Contains(t, profile.Files, "package.json")
	assert.Contains(t, profile.Directories, "src")
	assert.Contains(t, profile.ManifestContents, "package.json")
	assert.Contains(t, profile.ManifestContents, "Dockerfile")
}

func TestProfile_BrokenManifestWarns(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/package.json", "{not valid json")
	fake.AddFile("/main.go", "package main\n")

	p := New(fake, Options{})
	profile, warnings, err := p.Profile(context.Background())
	require.NoError(t, err)

	// The broken manifest surfaces as a warning; the rest of the scan
	// still completes.
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "failed to parse")
	assert.Empty(t, profile.Dependencies)
	assert.Equal(t, "go", profile.PrimaryLanguage)
}

func TestProfile_SkipsGeneratedDirectories(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/app.py", "print('hi')\n")
	fake.AddFile("/node_modules/leftpad/package.json", `{"dependencies":{"hidden":"1.0.0"}}`)

	p := New(fake, Options{})
	profile, _, err := p.Profile(context.Background())
	require.NoError(t, err)

	// The directory name itself is evidence, its contents are not.
	assert.Contains(t, profile.Directories, "node_modules")
	assert.False(t, profile.HasDependency("hidden"))
	assert.NotContains(t, profile.Files, "leftpad")
}

func TestProfile_DepthBound(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/shallow.go", "package shallow\n")
	fake.AddFile("/a/b/deep.go", "package deep\n")

	p := New(fake, Options{MaxDepth: 2})
	profile, _, err := p.Profile(context.Background())
	require.NoError(t, err)

	assert.Contains(t, profile.Files, "shallow.go")
	assert.NotContains(t, profile.Files, "deep.go")
}

func TestProfile_ExcludePatterns(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/keep.go", "package keep\n")
	fake.AddFile("/generated/skip.go", "package skip\n")
	fake.AddFile("/secret.pem", "")

	p := New(fake, Options{ExcludePatterns: []string{"generated", "*.pem"}})
	profile, _, err := p.Profile(context.Background())
	require.NoError(t, err)

	assert.Contains(t, profile.Files, "keep.go")
	assert.NotContains(t, profile.Files, "skip.go")
	assert.NotContains(t, profile.Files, "secret.pem")
	assert.NotContains(t, profile.Directories, "generated")
}

func TestProfile_GitHubActionsMarker(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/.github/workflows/ci.yml", "on: push\n")
	fake.AddFile("/main.go", "package main\n")

	p := New(fake, Options{})
	profile, _, err := p.Profile(context.Background())
	require.NoError(t, err)

	assert.Contains(t, profile.Infrastructure.CICD, "github-actions")
}

func TestProfile_FrameworkByConfigFile(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/next.config.js", "module.exports = {}\n")

	p := New(fake, Options{})
	profile, _, err := p.Profile(context.Background())
	require.NoError(t, err)

	assert.Contains(t, profile.Frameworks["web"], "nextjs")
	assert.True(t, profile.HasWebFramework())
}

func TestProfile_CancelledContext(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/main.go", "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(fake, Options{})
	_, _, err := p.Profile(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProfile_Deterministic(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/package.json", packageJSON)
	fake.AddFile("/go.mod", "module example.com/app\n\ngo 1.22\n\nrequire github.com/gin-gonic/gin v1.10.0\n")
	fake.AddFile("/Dockerfile", "FROM golang:1.22\n")

	first, _, err := New(fake, Options{}).Profile(context.Background())
	require.NoError(t, err)
	second, _, err := New(fake, Options{}).Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Dependencies, second.Dependencies)
	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, first.Frameworks, second.Frameworks)
	assert.Equal(t, first.PrimaryLanguage, second.PrimaryLanguage)
}

func TestPrimaryLanguage_TieBreaksAlphabetically(t *testing.T) {
	assert.Equal(t, "go", primaryLanguage(map[string]int{"go": 10, "rust": 10}))
	assert.Equal(t, "", primaryLanguage(nil))
	assert.Equal(t, "python", primaryLanguage(map[string]int{"python": 12, "shell": 3}))
}
