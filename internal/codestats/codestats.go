// Package codestats aggregates code statistics (lines, comments,
// blanks, complexity) for the scanned project and attaches them to the
// discovery result.
package codestats

import (
	"math"
	"sort"
	"sync"

	"github.com/boyter/scc/v3/processor"
	"github.com/go-enry/go-enry/v2"
)

var initOnce sync.Once

// Stats holds aggregate counters for a language or a total.
type Stats struct {
	Lines      int64 `json:"lines"`
	Code       int64 `json:"code"`
	Comments   int64 `json:"comments"`
	Blanks     int64 `json:"blanks"`
	Complexity int64 `json:"complexity"`
	Files      int   `json:"files"`
}

// LanguageStats is Stats plus the language name for sorted output.
type LanguageStats struct {
	Language   string `json:"language"`
	Type       string `json:"type"`
	Lines      int64  `json:"lines"`
	Code       int64  `json:"code"`
	Comments   int64  `json:"comments"`
	Blanks     int64  `json:"blanks"`
	Complexity int64  `json:"complexity"`
	Files      int    `json:"files"`
}

// Metrics holds derived code metrics over programming languages.
type Metrics struct {
	CommentRatio  float64 `json:"comment_ratio"`
	CodeDensity   float64 `json:"code_density"`
	AvgFileSize   float64 `json:"avg_file_size"`
	AvgComplexity float64 `json:"avg_complexity"`
}

// CodeStats is the aggregated result attached to a discovery Result.
type CodeStats struct {
	Total      Stats           `json:"total"`
	ByLanguage []LanguageStats `json:"by_language"` // sorted by lines descending
	Metrics    *Metrics        `json:"metrics,omitempty"`
}

// Collector accumulates per-file statistics. Safe for concurrent use.
type Collector struct {
	mu         sync.Mutex
	total      Stats
	byLanguage map[string]*Stats
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{byLanguage: make(map[string]*Stats)}
}

// ProcessFile counts one file and folds it into the totals. language is
// the go-enry detected name used for grouping; files with no detected
// language or no recognized counting rules are skipped.
func (c *Collector) ProcessFile(filename, language string, content []byte) {
	if language == "" || len(content) == 0 {
		return
	}

	initOnce.Do(processor.ProcessConstants)

	sccLangs, _ := processor.DetectLanguage(filename)
	if len(sccLangs) == 0 {
		return
	}

	job := &processor.FileJob{
		Filename: filename,
		Language: sccLangs[0],
		Content:  content,
		Bytes:    int64(len(content)),
	}
	processor.CountStats(job)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.total.Lines += job.Lines
	c.total.Code += job.Code
	c.total.Comments += job.Comment
	c.total.Blanks += job.Blank
	c.total.Complexity += job.Complexity
	c.total.Files++

	stats, ok := c.byLanguage[language]
	if !ok {
		stats = &Stats{}
		c.byLanguage[language] = stats
	}
	stats.Lines += job.Lines
	stats.Code += job.Code
	stats.Comments += job.Comment
	stats.Blanks += job.Blank
	stats.Complexity += job.Complexity
	stats.Files++
}

// Stats freezes the collected counters into a CodeStats snapshot.
func (c *Collector) Stats() *CodeStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.total.Files == 0 {
		return nil
	}

	byLanguage := make([]LanguageStats, 0, len(c.byLanguage))
	for lang, stats := range c.byLanguage {
		byLanguage = append(byLanguage, LanguageStats{
			Language: lang, Type: languageType(lang),
			Lines: stats.Lines, Code: stats.Code,
			Comments: stats.Comments, Blanks: stats.Blanks,
			Complexity: stats.Complexity, Files: stats.Files,
		})
	}
	sort.Slice(byLanguage, func(i, j int) bool {
		if byLanguage[i].Lines != byLanguage[j].Lines {
			return byLanguage[i].Lines > byLanguage[j].Lines
		}
		return byLanguage[i].Language < byLanguage[j].Language
	})

	return &CodeStats{
		Total:      c.total,
		ByLanguage: byLanguage,
		Metrics:    c.metrics(),
	}
}

// metrics derives ratios over programming languages only.
func (c *Collector) metrics() *Metrics {
	var prog Stats
	for lang, stats := range c.byLanguage {
		if enry.GetLanguageType(lang) != enry.Programming {
			continue
		}
		prog.Lines += stats.Lines
		prog.Code += stats.Code
		prog.Comments += stats.Comments
		prog.Complexity += stats.Complexity
		prog.Files += stats.Files
	}
	if prog.Code == 0 {
		return nil
	}

	m := &Metrics{
		CommentRatio: round2(float64(prog.Comments) / float64(prog.Code)),
	}
	if prog.Lines > 0 {
		m.CodeDensity = round2(float64(prog.Code) / float64(prog.Lines))
	}
	if prog.Files > 0 {
		m.AvgFileSize = round2(float64(prog.Lines) / float64(prog.Files))
		m.AvgComplexity = round2(float64(prog.Complexity) / float64(prog.Files))
	}
	return m
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// languageType names the enry classification of a language.
func languageType(lang string) string {
	switch enry.GetLanguageType(lang) {
	case enry.Programming:
		return "programming"
	case enry.Data:
		return "data"
	case enry.Markup:
		return "markup"
	case enry.Prose:
		return "prose"
	default:
		return "unknown"
	}
}
