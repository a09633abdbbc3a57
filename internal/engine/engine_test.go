package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/petrarca/stack-advisor/internal/provider"
	"github.com/petrarca/stack-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeProject() *provider.FakeProvider {
	fake := provider.NewFakeProvider()
	fake.AddFile("/package.json", `{
		"name": "webapp",
		"dependencies": {"express": "^4.18.0", "redis": "^4.6.0", "prisma": "^5.0.0"},
		"devDependencies": {"jest": "^29.0.0", "eslint": "^9.0.0"}
	}`)
	fake.AddFile("/Dockerfile", "FROM node:20\n")
	fake.AddFile("/src/index.ts", "export const app = 1\n")
	return fake
}

func TestDiscover_EndToEnd(t *testing.T) {
	result, err := Discover(context.Background(), "/", Options{
		Provider: nodeProject(),
		Version:  "test",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.NotNil(t, result.Profile)
	assert.True(t, result.Profile.HasDependency("express"))
	assert.Equal(t, "typescript", result.Profile.PrimaryLanguage)

	assert.NotEmpty(t, result.Recommendations)
	// One configuration per recommendation, plus any dependencies the
	// resolver had to pull in.
	assert.GreaterOrEqual(t, len(result.Configurations), len(result.Recommendations))

	// Core tooling is always present as essential.
	foundEssential := false
	for _, rec := range result.Recommendations {
		if rec.Tier == types.TierEssential {
			foundEssential = true
			break
		}
	}
	assert.True(t, foundEssential)

	// Every configuration has all four environments.
	for _, config := range result.Configurations {
		assert.Len(t, config.Environments, 4, config.DescriptorName)
	}
}

func TestDiscover_Deterministic(t *testing.T) {
	first, err := Discover(context.Background(), "/", Options{Provider: nodeProject(), Version: "test"})
	require.NoError(t, err)
	second, err := Discover(context.Background(), "/", Options{Provider: nodeProject(), Version: "test"})
	require.NoError(t, err)

	// Metadata carries timestamps and durations; everything else must
	// be byte-for-byte identical across runs.
	first.Metadata = nil
	second.Metadata = nil

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestDiscover_MissingRoot(t *testing.T) {
	fake := provider.NewFakeProvider()

	result, err := Discover(context.Background(), "/nope", Options{Provider: fake})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profiling failed")

	// The failure result carries the failing phase for serialization.
	require.NotNil(t, result)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "profiling failed")
	assert.Empty(t, result.Recommendations)
}

func TestDiscover_CompatibilityMatrix(t *testing.T) {
	result, err := Discover(context.Background(), "/", Options{Provider: nodeProject(), Version: "test"})
	require.NoError(t, err)

	require.NotEmpty(t, result.Compatibility)
	for name, row := range result.Compatibility {
		_, selfListed := row[name]
		assert.False(t, selfListed, "matrix row %s lists itself", name)
		for _, verdict := range row {
			assert.Contains(t, []string{
				types.CompatCompatible, types.CompatExclusive, types.CompatRequires,
			}, verdict)
		}
	}
}

func TestDiscover_CodeStats(t *testing.T) {
	result, err := Discover(context.Background(), "/", Options{
		Provider:         nodeProject(),
		CollectCodeStats: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, result.CodeStats)
}

func TestVerdict(t *testing.T) {
	a := &types.ServiceConfiguration{DescriptorName: "kibana", DependsOn: []string{"elasticsearch"}}
	b := &types.ServiceConfiguration{DescriptorName: "elasticsearch"}
	assert.Equal(t, types.CompatRequires, verdict(a, b))
	assert.Equal(t, types.CompatCompatible, verdict(b, a))

	c := &types.ServiceConfiguration{DescriptorName: "vite", Exclusive: "bundler"}
	d := &types.ServiceConfiguration{DescriptorName: "webpack", Exclusive: "bundler"}
	assert.Equal(t, types.CompatExclusive, verdict(c, d))

	// A declared dependency outranks a shared exclusivity group.
	e := &types.ServiceConfiguration{DescriptorName: "a", Exclusive: "g", DependsOn: []string{"b"}}
	f := &types.ServiceConfiguration{DescriptorName: "b", Exclusive: "g"}
	assert.Equal(t, types.CompatRequires, verdict(e, f))
}
