// Package recommend buckets scored candidates into recommendation
// tiers and injects a small fixed set of cross-category suggestions.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/matcher"
	"github.com/petrarca/stack-advisor/internal/types"
)

// Tier thresholds on candidate confidence.
const (
	highlyRecommendedFloor = 80
	recommendedFloor       = 50
)

// Fixed confidences for injected cross-category recommendations. These
// come from heuristic rules, not the pattern scorer, so they carry flat
// values inside their tier's band.
const (
	injectedSuggestedConfidence   = 40
	injectedRecommendedConfidence = 60
)

// ormDependencies lists dependency names that indicate an ORM or
// query-builder layer and therefore a database worth backing up.
var ormDependencies = map[string]bool{
	"prisma":         true,
	"@prisma/client": true,
	"sequelize":      true,
	"typeorm":        true,
	"mongoose":       true,
	"knex":           true,
	"drizzle-orm":    true,
	"gorm.io/gorm":   true,
	"ent":            true,
	"sqlalchemy":     true,
	"alembic":        true,
	"peewee":         true,
	"activerecord":   true,
	"doctrine/orm":   true,
	"diesel":         true,
	"sea-orm":        true,
	"sqlx":           true,
}

// Recommender turns candidates into tiered recommendations.
type Recommender struct {
	catalog *catalog.Catalog
}

// New creates a recommender over the given catalog.
func New(cat *catalog.Catalog) *Recommender {
	return &Recommender{catalog: cat}
}

// Recommend tiers the candidates, guarantees every core descriptor is
// present as essential, applies the cross-category augmentation rules,
// and returns the recommendations ordered by composite score.
func (r *Recommender) Recommend(profile *types.ProjectProfile, candidates []types.Candidate) []types.Recommendation {
	recommendations := make([]types.Recommendation, 0, len(candidates))
	present := make(map[string]bool, len(candidates))

	for _, candidate := range candidates {
		recommendations = append(recommendations, tierCandidate(candidate))
		present[candidate.Descriptor.Name] = true
	}

	// Core descriptors are essential for every project, whether or not
	// the scorer kept them.
	for _, desc := range r.catalog.CoreDescriptors() {
		if present[desc.Name] {
			continue
		}
		candidate := matcher.Score(profile, desc)
		recommendations = append(recommendations, types.Recommendation{
			Candidate:   candidate,
			Tier:        types.TierEssential,
			Reason:      "core tooling applies to every project",
			AutoInstall: true,
		})
		present[desc.Name] = true
	}

	recommendations = r.augment(profile, recommendations, present)

	sort.Slice(recommendations, func(i, j int) bool {
		a, b := &recommendations[i], &recommendations[j]
		scoreA, scoreB := a.CompositeScore(), b.CompositeScore()
		if scoreA != scoreB {
			return scoreA > scoreB
		}
		return a.Candidate.Descriptor.Name < b.Candidate.Descriptor.Name
	})
	return recommendations
}

// tierCandidate applies the tiering precedence: core first, then the
// confidence bands.
func tierCandidate(candidate types.Candidate) types.Recommendation {
	desc := candidate.Descriptor

	switch {
	case desc.Category == catalog.CategoryCore:
		return types.Recommendation{
			Candidate:   candidate,
			Tier:        types.TierEssential,
			Reason:      "core tooling applies to every project",
			AutoInstall: true,
		}
	case candidate.Confidence >= highlyRecommendedFloor:
		return types.Recommendation{
			Candidate:   candidate,
			Tier:        types.TierHighlyRecommended,
			Reason:      fmt.Sprintf("strong match (confidence %d)", candidate.Confidence),
			AutoInstall: true,
		}
	case candidate.Confidence >= recommendedFloor:
		return types.Recommendation{
			Candidate: candidate,
			Tier:      types.TierRecommended,
			Reason:    fmt.Sprintf("good match (confidence %d)", candidate.Confidence),
		}
	default:
		return types.Recommendation{
			Candidate: candidate,
			Tier:      types.TierSuggested,
			Reason:    fmt.Sprintf("possible match (confidence %d)", candidate.Confidence),
		}
	}
}

// augment applies the fixed cross-category rules. Each rule injects the
// highest-priority descriptor of a target type unless one of that type
// is already recommended.
func (r *Recommender) augment(profile *types.ProjectProfile, recommendations []types.Recommendation, present map[string]bool) []types.Recommendation {
	if profile.HasWebFramework() {
		recommendations = r.inject(recommendations, present, "monitoring",
			types.TierSuggested, injectedSuggestedConfidence,
			"web framework detected, monitoring improves visibility")
		recommendations = r.inject(recommendations, present, "error_tracking",
			types.TierSuggested, injectedSuggestedConfidence,
			"web framework detected, error tracking catches runtime failures")
	}

	if r.hasORMDependency(profile) {
		recommendations = r.inject(recommendations, present, "backup_migration",
			types.TierSuggested, injectedSuggestedConfidence,
			"ORM dependency detected, schema migrations and backups apply")
	}

	if profile.HasDeploymentTarget() {
		recommendations = r.inject(recommendations, present, "security_scanner",
			types.TierRecommended, injectedRecommendedConfidence,
			"deployment target detected, scan artifacts before shipping")
	}

	return recommendations
}

// inject adds the best descriptor of the given type at a fixed tier.
// No-op when a descriptor of that type is already recommended or the
// catalog carries none.
func (r *Recommender) inject(recommendations []types.Recommendation, present map[string]bool, descType string, tier types.Tier, confidence int, reason string) []types.Recommendation {
	candidates := r.catalog.ByType(descType)
	if len(candidates) == 0 {
		return recommendations
	}
	for _, desc := range candidates {
		if present[desc.Name] {
			return recommendations
		}
	}

	desc := candidates[0]
	present[desc.Name] = true
	return append(recommendations, types.Recommendation{
		Candidate: types.Candidate{
			Descriptor: desc,
			Confidence: confidence,
			Reasons:    []string{reason},
		},
		Tier:        tier,
		Reason:      reason,
		AutoInstall: tier == types.TierEssential || tier == types.TierHighlyRecommended,
	})
}

func (r *Recommender) hasORMDependency(profile *types.ProjectProfile) bool {
	for _, name := range profile.DependencyNames() {
		if ormDependencies[strings.ToLower(name)] {
			return true
		}
	}
	return false
}
