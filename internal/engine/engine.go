// Package engine orchestrates a discovery run: profile the project,
// score the catalog, tier recommendations, build configurations,
// resolve conflicts and assemble the result. The pipeline is strictly
// one-directional and each stage is deterministic, so two runs over an
// unchanged project produce the same result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/codestats"
	"github.com/petrarca/stack-advisor/internal/configbuild"
	"github.com/petrarca/stack-advisor/internal/gitinfo"
	"github.com/petrarca/stack-advisor/internal/matcher"
	"github.com/petrarca/stack-advisor/internal/metadata"
	"github.com/petrarca/stack-advisor/internal/profiler"
	"github.com/petrarca/stack-advisor/internal/progress"
	"github.com/petrarca/stack-advisor/internal/provider"
	"github.com/petrarca/stack-advisor/internal/recommend"
	"github.com/petrarca/stack-advisor/internal/resolver"
	"github.com/petrarca/stack-advisor/internal/types"
)

// Options configures a discovery run. The zero value scans the given
// root with the embedded catalog and default depth.
type Options struct {
	// Catalog overrides the embedded default catalog.
	Catalog *catalog.Catalog

	// Provider overrides filesystem access, used by tests.
	Provider types.Provider

	MaxDepth        int
	ExcludePatterns []string
	Progress        *progress.Progress

	DetectLicenses   bool
	CollectGitInfo   bool
	CollectCodeStats bool

	// Version is recorded in the run metadata.
	Version string

	// Properties are free-form key/values carried into the metadata.
	Properties map[string]interface{}
}

// Discover runs the full pipeline against the project at root and
// returns the assembled result. Structural failures (missing root,
// catalog integrity) return a non-nil error together with a failure
// result whose errors field records the failing phase; per-item
// failures surface as warnings inside the result.
func Discover(ctx context.Context, root string, opts Options) (*types.Result, error) {
	start := time.Now()

	cat := opts.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.LoadDefault()
		if err != nil {
			err = fmt.Errorf("failed to load default catalog: %w", err)
			return failedResult(nil, nil, err), err
		}
	}

	prov := opts.Provider
	if prov == nil {
		prov = provider.NewFSProvider(root)
	}

	prog := opts.Progress
	if prog == nil {
		prog = progress.NewNull()
	}
	prog.DiscoveryStart(root, opts.ExcludePatterns)

	meta := metadata.NewRunMetadata(root, opts.Version)
	meta.SetProperties(opts.Properties)
	if opts.CollectGitInfo {
		meta.ProjectID = gitinfo.ProjectID(root)
	}

	var statsCollector *codestats.Collector
	if opts.CollectCodeStats {
		statsCollector = codestats.NewCollector()
	}

	prof := profiler.New(prov, profiler.Options{
		MaxDepth:        opts.MaxDepth,
		ExcludePatterns: opts.ExcludePatterns,
		Progress:        prog,
		DetectLicenses:  opts.DetectLicenses,
		CodeStats:       statsCollector,
	})

	profile, warnings, err := prof.Profile(ctx)
	if err != nil {
		err = fmt.Errorf("profiling failed: %w", err)
		return failedResult(nil, warnings, err), err
	}
	slog.Debug("Profiling complete",
		"languages", len(profile.Languages),
		"dependencies", len(profile.Dependencies),
		"warnings", len(warnings))

	if opts.CollectGitInfo {
		profile.Repository = gitinfo.Collect(root)
	}

	candidates, err := matcher.New(cat, prog).Match(ctx, profile)
	if err != nil {
		err = fmt.Errorf("matching failed: %w", err)
		return failedResult(profile, warnings, err), err
	}

	recommendations := recommend.New(cat).Recommend(profile, candidates)

	configs := configbuild.New().Build(recommendations)

	configs, conflicts, err := resolver.New(cat, prog).Resolve(configs)
	if err != nil {
		err = fmt.Errorf("conflict resolution failed: %w", err)
		return failedResult(profile, warnings, err), err
	}

	meta.SetCounts(cat.Len(), len(candidates), len(recommendations), len(conflicts))
	meta.SetDuration(time.Since(start))

	result := &types.Result{
		Metadata:        meta,
		Profile:         profile,
		Recommendations: recommendations,
		Configurations:  configs,
		Conflicts:       conflicts,
		Compatibility:   buildCompatibilityMatrix(configs),
		Warnings:        warnings,
	}
	if statsCollector != nil {
		if stats := statsCollector.Stats(); stats != nil {
			result.CodeStats = stats
		}
	}

	prog.DiscoveryComplete(len(profile.Files), len(profile.Directories), time.Since(start))
	return result, nil
}

// failedResult records a structural failure so a serialized result
// still carries the failing phase alongside whatever partial data the
// run produced.
func failedResult(profile *types.ProjectProfile, warnings []string, err error) *types.Result {
	return &types.Result{
		Profile:  profile,
		Warnings: warnings,
		Errors:   []string{err.Error()},
	}
}

// buildCompatibilityMatrix derives the pairwise verdicts between every
// configuration in the result. Requires wins over exclusive when both
// apply, since a declared dependency is the stronger statement.
func buildCompatibilityMatrix(configs []*types.ServiceConfiguration) types.CompatibilityMatrix {
	matrix := make(types.CompatibilityMatrix, len(configs))
	for _, a := range configs {
		row := make(map[string]string, len(configs)-1)
		for _, b := range configs {
			if a == b {
				continue
			}
			row[b.DescriptorName] = verdict(a, b)
		}
		matrix[a.DescriptorName] = row
	}
	return matrix
}

func verdict(a, b *types.ServiceConfiguration) string {
	for _, dep := range a.DependsOn {
		if dep == b.DescriptorName {
			return types.CompatRequires
		}
	}
	if a.Exclusive != "" && a.Exclusive == b.Exclusive {
		return types.CompatExclusive
	}
	return types.CompatCompatible
}
