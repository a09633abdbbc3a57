// Package profiler walks a project tree and builds the project profile
// the matcher scores descriptors against: weighted languages, detected
// frameworks, dependency sets and infrastructure markers. The walk is
// depth-bounded and skip-listed; manifest parsing is fanned out and the
// partial results are merged at the end.
package profiler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/petrarca/stack-advisor/internal/codestats"
	"github.com/petrarca/stack-advisor/internal/profiler/manifests"
	"github.com/petrarca/stack-advisor/internal/progress"
	"github.com/petrarca/stack-advisor/internal/types"
)

// DefaultMaxDepth bounds the directory recursion.
const DefaultMaxDepth = 5

// skipDirs are generated or vendored directories never worth diving
// into. Their names are still recorded as directory evidence.
var skipDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	".git":             true,
	".svn":             true,
	".hg":              true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"target":           true,
	"coverage":         true,
	"__pycache__":      true,
	".venv":            true,
	"venv":             true,
	".tox":             true,
	".next":            true,
	".nuxt":            true,
	".cache":           true,
	".terraform":       true,
}

// Options configures a profiler run.
type Options struct {
	MaxDepth        int
	ExcludePatterns []string
	Progress        *progress.Progress
	DetectLicenses  bool

	// CodeStats, when set, receives the content of every source file
	// with a detected language.
	CodeStats *codestats.Collector
}

// Profiler builds a ProjectProfile from a project root.
type Profiler struct {
	provider     types.Provider
	opts         Options
	langDetector *LanguageDetector
	parsers      []manifests.Parser
}

// manifestJob is one manifest file queued for parsing after the walk.
type manifestJob struct {
	parser   manifests.Parser
	fileName string
	path     string
	content  []byte
}

// New creates a profiler for the given provider.
func New(provider types.Provider, opts Options) *Profiler {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Progress == nil {
		opts.Progress = progress.NewNull()
	}
	return &Profiler{
		provider:     provider,
		opts:         opts,
		langDetector: NewLanguageDetector(),
		parsers:      manifests.All(),
	}
}

// Profile scans the project tree and returns the profile plus the
// per-item warnings collected along the way. Only structural failures
// (missing root, unreadable root) return an error.
func (p *Profiler) Profile(ctx context.Context) (*types.ProjectProfile, []string, error) {
	root := p.provider.GetBasePath()

	exists, err := p.provider.Exists(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat project root %s: %w", root, err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("project root does not exist: %s", root)
	}
	if isDir, err := p.provider.IsDir(root); err != nil || !isDir {
		return nil, nil, fmt.Errorf("project root is not a directory: %s", root)
	}

	acc := newPartial()
	var jobs []manifestJob

	if err := p.walk(ctx, root, 0, acc, &jobs); err != nil {
		return nil, nil, err
	}

	// Manifest parsing is embarrassingly parallel; every job produces
	// an independent partial profile merged afterwards.
	partials := make([]*partial, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job manifestJob) {
			defer wg.Done()
			partials[i] = p.parseManifest(job)
		}(i, job)
	}
	wg.Wait()

	for _, part := range partials {
		acc.merge(part)
	}

	if p.opts.DetectLicenses {
		for _, license := range detectLicenses(root) {
			acc.addLicense(license)
		}
	}

	profile := acc.build(root)
	return profile, acc.warnings, nil
}

// walk processes one directory level.
func (p *Profiler) walk(ctx context.Context, path string, depth int, acc *partial, jobs *[]manifestJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.opts.Progress.EnterDirectory(path)
	defer p.opts.Progress.LeaveDirectory(path)

	files, err := p.provider.ListDir(path)
	if err != nil {
		if depth == 0 {
			return fmt.Errorf("failed to list project root %s: %w", path, err)
		}
		acc.addWarning(fmt.Sprintf("unreadable directory %s: %v", path, err))
		return nil
	}

	for _, file := range files {
		if file.Type != "file" {
			continue
		}
		if p.isExcluded(file.Name, path) {
			continue
		}
		p.processFile(path, file.Name, acc, jobs)
	}

	for _, file := range files {
		if file.Type != "dir" {
			continue
		}
		if p.isExcluded(file.Name, path) {
			continue
		}

		acc.addDir(file.Name)
		if marker, ok := infraForDir(file.Name); ok {
			acc.addInfra(marker.Bucket, marker.Marker)
		}
		if file.Name == "workflows" && filepath.Base(path) == ".github" {
			acc.addInfra(bucketCICD, "github-actions")
		}

		if skipDirs[file.Name] {
			continue
		}
		if depth+1 >= p.opts.MaxDepth {
			continue
		}

		subPath := filepath.Join(path, file.Name)
		if err := p.walk(ctx, subPath, depth+1, acc, jobs); err != nil {
			if ctx.Err() != nil {
				return err
			}
			// Keep scanning sibling directories on local failures
			acc.addWarning(fmt.Sprintf("failed to scan %s: %v", subPath, err))
		}
	}

	return nil
}

// processFile records every kind of evidence a single file contributes.
func (p *Profiler) processFile(dirPath, fileName string, acc *partial, jobs *[]manifestJob) {
	acc.addFile(fileName)

	if marker, ok := infraForFile(fileName); ok {
		acc.addInfra(marker.Bucket, marker.Marker)
	}
	if isEnvironmentFile(fileName) {
		acc.addEnv(fileName)
	}
	for _, fw := range frameworksByFile(fileName) {
		acc.addFramework(fw.Category, fw.Name)
	}
	fullPath := filepath.Join(dirPath, fileName)

	if lang := p.langDetector.Detect(fileName, nil); lang != "" {
		acc.addLanguage(lang, p.langDetector.Weight(lang))
		if p.opts.CodeStats != nil {
			if content, err := p.provider.ReadFile(fullPath); err == nil {
				p.opts.CodeStats.ProcessFile(fullPath, lang, content)
			}
		}
	}

	for _, parser := range p.parsers {
		if !parser.Matches(fileName) {
			continue
		}
		content, err := p.provider.ReadFile(fullPath)
		if err != nil {
			acc.addWarning(fmt.Sprintf("unreadable manifest %s: %v", fullPath, err))
			return
		}
		acc.addManifestContent(fileName, string(content))
		*jobs = append(*jobs, manifestJob{parser: parser, fileName: fileName, path: fullPath, content: content})
		return
	}

	// Non-manifest files that still carry content evidence
	if isContentEvidenceFile(fileName) {
		content, err := p.provider.ReadFile(fullPath)
		if err != nil {
			acc.addWarning(fmt.Sprintf("unreadable file %s: %v", fullPath, err))
			return
		}
		acc.addManifestContent(fileName, string(content))

		if strings.HasSuffix(fileName, ".tf") {
			for _, provider := range terraformProviders(fileName, content) {
				acc.addInfra(bucketDeployment, markerForTerraformProvider(provider))
			}
		}
	}
}

// isContentEvidenceFile reports whether a non-manifest file should be
// read so content patterns can match against it.
func isContentEvidenceFile(fileName string) bool {
	if isEnvironmentFile(fileName) {
		return true
	}
	if strings.HasSuffix(fileName, ".tf") {
		return true
	}
	switch fileName {
	case "docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml",
		"Dockerfile", "Makefile", "Procfile":
		return true
	}
	return false
}

// isExcluded checks CLI/config exclude patterns against the entry name
// and its path relative to the project root.
func (p *Profiler) isExcluded(name, dirPath string) bool {
	if len(p.opts.ExcludePatterns) == 0 {
		return false
	}

	relPath, err := filepath.Rel(p.provider.GetBasePath(), filepath.Join(dirPath, name))
	if err != nil {
		relPath = name
	}

	for _, pattern := range p.opts.ExcludePatterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// parseManifest runs a single parser job in isolation; a failure
// produces a warning, never an abort.
func (p *Profiler) parseManifest(job manifestJob) *partial {
	part := newPartial()

	manifest, err := job.parser.Parse(job.fileName, job.content)
	if err != nil {
		slog.Debug("Manifest parse failed", "parser", job.parser.Name(), "path", job.path, "error", err)
		p.opts.Progress.ManifestFailed(job.parser.Name(), job.path, err.Error())
		part.addWarning(fmt.Sprintf("failed to parse %s: %v", job.path, err))
		return part
	}
	p.opts.Progress.ManifestParsed(job.parser.Name(), job.path)

	for _, dep := range manifest.Dependencies {
		part.addDependency(dep)
		for _, fw := range frameworksByDependency(dep.Name) {
			part.addFramework(fw.Category, fw.Name)
		}
	}
	return part
}
