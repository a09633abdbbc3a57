// Package matcher scores catalog descriptors against a project
// profile. Scoring is purely syntactic pattern matching: file names,
// directory names, dependency names, infrastructure markers and
// manifest content substrings. Score is a pure function of
// (profile, descriptor), so descriptor evaluation fans out freely.
package matcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/progress"
	"github.com/petrarca/stack-advisor/internal/types"
)

// Scoring constants.
const (
	baseConfidence       = 20
	patternMatchBonus    = 25
	exactFileBonus       = 10
	primaryLanguageBonus = 15
	frameworkBonus       = 20

	// MinConfidence is the floor below which candidates are discarded.
	MinConfidence = 30
)

// Matcher evaluates a catalog against project profiles.
type Matcher struct {
	catalog  *catalog.Catalog
	progress *progress.Progress
}

// New creates a matcher over the given catalog.
func New(cat *catalog.Catalog, prog *progress.Progress) *Matcher {
	if prog == nil {
		prog = progress.NewNull()
	}
	return &Matcher{catalog: cat, progress: prog}
}

// Match scores every descriptor in the catalog against the profile and
// returns the candidates at or above the confidence floor, sorted by
// descriptor name. Evaluation is concurrent per descriptor; the sort
// afterwards makes the output order independent of scheduling.
func (m *Matcher) Match(ctx context.Context, profile *types.ProjectProfile) ([]types.Candidate, error) {
	descriptors := m.catalog.Descriptors()

	results := make([]*types.Candidate, len(descriptors))
	var wg sync.WaitGroup
	for i, desc := range descriptors {
		wg.Add(1)
		go func(i int, desc *types.ServiceDescriptor) {
			defer wg.Done()
			candidate := Score(profile, desc)
			if candidate.Confidence >= MinConfidence {
				results[i] = &candidate
			}
		}(i, desc)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, candidate := range results {
		if candidate != nil {
			m.progress.DescriptorMatched(candidate.Descriptor.Name, candidate.Confidence)
			candidates = append(candidates, *candidate)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Descriptor.Name < candidates[j].Descriptor.Name
	})
	return candidates, nil
}

// Score computes the confidence of one descriptor against a profile.
// Confidence starts at a base value, grows per matched pattern with a
// bonus for exact file names, and gains fixed bonuses when a pattern
// mentions the primary language or a detected framework. The result is
// clamped to [0,100].
func Score(profile *types.ProjectProfile, desc *types.ServiceDescriptor) types.Candidate {
	confidence := baseConfidence
	var reasons []string

	for _, pattern := range desc.Patterns {
		evidence, matched := matchPattern(profile, pattern)
		if !matched {
			continue
		}
		confidence += patternMatchBonus
		if pattern.Kind == types.PatternFile && pattern.IsExactFile() {
			confidence += exactFileBonus
		}
		reasons = append(reasons, fmt.Sprintf("%s pattern %q matched %s", pattern.Kind, pattern.Value, evidence))
	}

	if profile.PrimaryLanguage != "" {
		lang := strings.ToLower(profile.PrimaryLanguage)
		for _, pattern := range desc.Patterns {
			if strings.Contains(strings.ToLower(pattern.Value), lang) {
				confidence += primaryLanguageBonus
				reasons = append(reasons, fmt.Sprintf("pattern mentions primary language %s", profile.PrimaryLanguage))
				break
			}
		}
	}

	for _, framework := range profile.FrameworkNames() {
		if patternsMention(desc.Patterns, framework) {
			confidence += frameworkBonus
			reasons = append(reasons, fmt.Sprintf("detected framework %s", framework))
		}
	}

	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	return types.Candidate{Descriptor: desc, Confidence: confidence, Reasons: reasons}
}

// patternsMention reports whether any pattern value names the given
// framework, case-insensitively.
func patternsMention(patterns []types.Pattern, framework string) bool {
	needle := strings.ToLower(framework)
	for _, pattern := range patterns {
		if strings.Contains(strings.ToLower(pattern.Value), needle) {
			return true
		}
	}
	return false
}

// matchPattern evaluates a single pattern against the profile and
// returns a short description of the evidence that matched it.
func matchPattern(profile *types.ProjectProfile, pattern types.Pattern) (string, bool) {
	switch pattern.Kind {
	case types.PatternFile:
		return matchFile(profile, pattern.Value)
	case types.PatternDirectory:
		return matchDirectory(profile, pattern.Value)
	case types.PatternDependency:
		return matchDependency(profile, pattern.Value)
	case types.PatternContent:
		return matchContent(profile, pattern.Value)
	}
	return "", false
}

// matchFile checks seen file names against the pattern (glob or exact)
// and falls back to infrastructure markers named inside the pattern, so
// "vercel.json" still matches a profile whose walk recorded the marker
// rather than the raw file list.
func matchFile(profile *types.ProjectProfile, value string) (string, bool) {
	for _, name := range profile.Files {
		if globMatch(value, name) {
			return fmt.Sprintf("file %s", name), true
		}
	}
	if marker, ok := markerInValue(profile, value); ok {
		return fmt.Sprintf("infrastructure marker %s", marker), true
	}
	return "", false
}

func matchDirectory(profile *types.ProjectProfile, value string) (string, bool) {
	for _, name := range profile.Directories {
		if globMatch(value, name) {
			return fmt.Sprintf("directory %s", name), true
		}
	}
	if marker, ok := markerInValue(profile, value); ok {
		return fmt.Sprintf("infrastructure marker %s", marker), true
	}
	return "", false
}

// matchDependency checks declared dependency names and detected
// framework names, so framework evidence counts even when the manifest
// itself was not parseable.
func matchDependency(profile *types.ProjectProfile, value string) (string, bool) {
	want := strings.ToLower(value)
	for _, name := range profile.DependencyNames() {
		if strings.ToLower(name) == want {
			return fmt.Sprintf("dependency %s", name), true
		}
	}
	for _, name := range profile.FrameworkNames() {
		if strings.ToLower(name) == want {
			return fmt.Sprintf("framework %s", name), true
		}
	}
	return "", false
}

func matchContent(profile *types.ProjectProfile, value string) (string, bool) {
	want := strings.ToLower(value)
	for _, name := range sortedManifestNames(profile.ManifestContents) {
		if strings.Contains(strings.ToLower(profile.ManifestContents[name]), want) {
			return fmt.Sprintf("content of %s", name), true
		}
	}
	return "", false
}

// markerInValue reports whether any infrastructure or environment
// marker is named inside the pattern value.
func markerInValue(profile *types.ProjectProfile, value string) (string, bool) {
	lowered := strings.ToLower(value)
	for _, marker := range profile.InfrastructureMarkers() {
		if strings.Contains(lowered, strings.ToLower(marker)) {
			return marker, true
		}
	}
	return "", false
}

// globMatch treats the pattern as a doublestar glob when it contains
// glob metacharacters and as a case-insensitive literal otherwise.
func globMatch(pattern, name string) bool {
	if strings.ContainsAny(pattern, "*?[") {
		matched, err := doublestar.Match(pattern, name)
		return err == nil && matched
	}
	return strings.EqualFold(pattern, name)
}

func sortedManifestNames(manifests map[string]string) []string {
	names := make([]string, 0, len(manifests))
	for name := range manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
