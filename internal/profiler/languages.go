package profiler

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// languageWeights assigns per-file weights used to accumulate the
// weighted language counts. Statically typed languages weigh more than
// loosely typed ones so that a mixed tree resolves to the language the
// project is actually built in.
var languageWeights = map[string]int{
	"TypeScript": 10,
	"Go":         10,
	"Rust":       10,
	"Java":       9,
	"Kotlin":     9,
	"Swift":      9,
	"C#":         9,
	"C++":        9,
	"Scala":      9,
	"C":          8,
	"Dart":       8,
	"Elixir":     7,
	"Python":     6,
	"Ruby":       6,
	"PHP":        6,
	"JavaScript": 5,
	"Perl":       5,
	"Lua":        5,
	"Shell":      3,
}

const defaultLanguageWeight = 4

// LanguageDetector wraps go-enry language identification.
type LanguageDetector struct{}

// NewLanguageDetector creates a new language detector
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{}
}

// Detect identifies the language of a file by extension, falling back
// to content analysis for ambiguous extensions and to filename lookup
// for special files (Makefile, Dockerfile). Only programming languages
// are reported; data and markup files return "".
func (d *LanguageDetector) Detect(fileName string, content []byte) string {
	lang, safe := enry.GetLanguageByExtension(fileName)

	if !safe && lang != "" && len(content) > 0 {
		lang = enry.GetLanguage(filepath.Base(fileName), content)
	}

	if lang == "" {
		lang, _ = enry.GetLanguageByFilename(fileName)
	}

	if lang == "" || enry.GetLanguageType(lang) != enry.Programming {
		return ""
	}
	return lang
}

// Weight returns the accumulation weight for a language.
func (d *LanguageDetector) Weight(language string) int {
	if w, ok := languageWeights[language]; ok {
		return w
	}
	return defaultLanguageWeight
}
