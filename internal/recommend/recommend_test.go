package recommend

import (
	"context"
	"testing"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/matcher"
	"github.com/petrarca/stack-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	root := &types.Category{
		Name: "catalog",
		Children: []types.CatalogNode{
			&types.ServiceDescriptor{Name: "editorconfig", Type: "editor_config", Category: "core", Priority: 50},
			&types.ServiceDescriptor{Name: "postgresql", Type: "database", Category: "databases", Priority: 90, Port: 5432},
			&types.ServiceDescriptor{Name: "prometheus", Type: "monitoring", Category: "monitoring", Priority: 70, Port: 9090},
			&types.ServiceDescriptor{Name: "grafana", Type: "monitoring", Category: "monitoring", Priority: 60, Port: 3000},
			&types.ServiceDescriptor{Name: "sentry", Type: "error_tracking", Category: "error-tracking", Priority: 65},
			&types.ServiceDescriptor{Name: "flyway", Type: "backup_migration", Category: "operations", Priority: 55},
			&types.ServiceDescriptor{Name: "trivy", Type: "security_scanner", Category: "security", Priority: 60},
		},
	}
	cat, err := catalog.New(root)
	require.NoError(t, err)
	return cat
}

func candidateFor(cat *catalog.Catalog, name string, confidence int) types.Candidate {
	return types.Candidate{Descriptor: cat.Lookup(name), Confidence: confidence}
}

func findRecommendation(recs []types.Recommendation, name string) *types.Recommendation {
	for i := range recs {
		if recs[i].Candidate.Descriptor.Name == name {
			return &recs[i]
		}
	}
	return nil
}

func TestRecommend_TierBands(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{}

	tests := []struct {
		confidence  int
		wantTier    types.Tier
		autoInstall bool
	}{
		{95, types.TierHighlyRecommended, true},
		{80, types.TierHighlyRecommended, true},
		{79, types.TierRecommended, false},
		{50, types.TierRecommended, false},
		{49, types.TierSuggested, false},
		{30, types.TierSuggested, false},
	}

	for _, tt := range tests {
		recs := New(cat).Recommend(profile, []types.Candidate{
			candidateFor(cat, "postgresql", tt.confidence),
		})

		rec := findRecommendation(recs, "postgresql")
		require.NotNil(t, rec, "confidence %d", tt.confidence)
		assert.Equal(t, tt.wantTier, rec.Tier, "confidence %d", tt.confidence)
		assert.Equal(t, tt.autoInstall, rec.AutoInstall, "confidence %d", tt.confidence)
	}
}

func TestRecommend_CoreAlwaysEssential(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{}

	// No candidates at all: the core descriptor is still injected.
	recs := New(cat).Recommend(profile, nil)

	rec := findRecommendation(recs, "editorconfig")
	require.NotNil(t, rec)
	assert.Equal(t, types.TierEssential, rec.Tier)
	assert.True(t, rec.AutoInstall)
}

func TestRecommend_CoreCandidateKeepsEssential(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{}

	// Even a weak scored core candidate stays essential.
	recs := New(cat).Recommend(profile, []types.Candidate{
		candidateFor(cat, "editorconfig", 30),
	})

	rec := findRecommendation(recs, "editorconfig")
	require.NotNil(t, rec)
	assert.Equal(t, types.TierEssential, rec.Tier)
	assert.Equal(t, 30, rec.Candidate.Confidence)

	// Injection must not duplicate the existing entry.
	count := 0
	for _, r := range recs {
		if r.Candidate.Descriptor.Name == "editorconfig" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRecommend_WebFrameworkAugmentation(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{
		Frameworks: map[string][]string{"web": {"nextjs"}},
	}

	recs := New(cat).Recommend(profile, nil)

	// The highest-priority monitoring descriptor is injected.
	monitoring := findRecommendation(recs, "prometheus")
	require.NotNil(t, monitoring)
	assert.Equal(t, types.TierSuggested, monitoring.Tier)
	assert.Equal(t, 40, monitoring.Candidate.Confidence)
	assert.False(t, monitoring.AutoInstall)
	assert.Nil(t, findRecommendation(recs, "grafana"))

	tracking := findRecommendation(recs, "sentry")
	require.NotNil(t, tracking)
	assert.Equal(t, types.TierSuggested, tracking.Tier)
}

func TestRecommend_AugmentationSkippedWhenTypePresent(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{
		Frameworks: map[string][]string{"web": {"nextjs"}},
	}

	recs := New(cat).Recommend(profile, []types.Candidate{
		candidateFor(cat, "grafana", 85),
	})

	// grafana already covers monitoring, so prometheus is not injected.
	assert.Nil(t, findRecommendation(recs, "prometheus"))
	assert.NotNil(t, findRecommendation(recs, "grafana"))
}

func TestRecommend_ORMAugmentation(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{
		Dependencies: []types.Dependency{{Name: "prisma", Scope: types.ScopeProduction}},
	}

	recs := New(cat).Recommend(profile, nil)

	rec := findRecommendation(recs, "flyway")
	require.NotNil(t, rec)
	assert.Equal(t, types.TierSuggested, rec.Tier)
	assert.Equal(t, 40, rec.Candidate.Confidence)
}

func TestRecommend_DeploymentTargetAugmentation(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{
		Infrastructure: types.Infrastructure{DeploymentTargets: []string{"vercel"}},
	}

	recs := New(cat).Recommend(profile, nil)

	rec := findRecommendation(recs, "trivy")
	require.NotNil(t, rec)
	assert.Equal(t, types.TierRecommended, rec.Tier)
	assert.Equal(t, 60, rec.Candidate.Confidence)
}

func TestRecommend_NoAugmentationWithoutTriggers(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{}

	recs := New(cat).Recommend(profile, nil)

	assert.Nil(t, findRecommendation(recs, "prometheus"))
	assert.Nil(t, findRecommendation(recs, "sentry"))
	assert.Nil(t, findRecommendation(recs, "flyway"))
	assert.Nil(t, findRecommendation(recs, "trivy"))
}

func TestRecommend_OrderedByCompositeScore(t *testing.T) {
	cat := testCatalog(t)
	profile := &types.ProjectProfile{}

	recs := New(cat).Recommend(profile, []types.Candidate{
		candidateFor(cat, "postgresql", 60), // 0.6*60 + 0.4*90 = 72
		candidateFor(cat, "grafana", 90),    // 0.6*90 + 0.4*60 = 78
	})

	grafanaIdx, postgresIdx := -1, -1
	for i, rec := range recs {
		switch rec.Candidate.Descriptor.Name {
		case "grafana":
			grafanaIdx = i
		case "postgresql":
			postgresIdx = i
		}
	}
	require.NotEqual(t, -1, grafanaIdx)
	require.NotEqual(t, -1, postgresIdx)
	assert.Less(t, grafanaIdx, postgresIdx)
}

func TestRecommend_NextjsVercelProject(t *testing.T) {
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)

	profile := &types.ProjectProfile{
		Languages:       map[string]int{"typescript": 90},
		PrimaryLanguage: "typescript",
		Frameworks:      map[string][]string{"web": {"nextjs"}},
		Dependencies:    []types.Dependency{{Name: "next", Scope: types.ScopeProduction}},
		Infrastructure:  types.Infrastructure{DeploymentTargets: []string{"vercel"}},
		Files:           []string{"next.config.js", "package.json", "vercel.json"},
	}

	candidates, err := matcher.New(cat, nil).Match(context.Background(), profile)
	require.NoError(t, err)
	recs := New(cat).Recommend(profile, candidates)

	nextjs := findRecommendation(recs, "nextjs")
	require.NotNil(t, nextjs)
	assert.Equal(t, types.TierHighlyRecommended, nextjs.Tier)

	vercel := findRecommendation(recs, "vercel")
	require.NotNil(t, vercel)
	assert.Equal(t, types.TierHighlyRecommended, vercel.Tier)

	// The deployment target pulls in a security scanner.
	scanner := findRecommendation(recs, "trivy")
	require.NotNil(t, scanner)
	assert.Equal(t, types.TierRecommended, scanner.Tier)
	assert.Equal(t, "security_scanner", scanner.Candidate.Descriptor.Type)
}
