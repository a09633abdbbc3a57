// Package manifests contains the per-ecosystem dependency manifest
// parsers used by the profiler. Each parser is independently
// fault-isolated: a parse failure surfaces as a warning on the run, not
// an abort.
package manifests

import "github.com/petrarca/stack-advisor/internal/types"

// Manifest is the parsed form of one dependency manifest file.
type Manifest struct {
	Ecosystem    string
	PackageName  string
	Dependencies []types.Dependency
}

// Parser parses one kind of dependency manifest.
type Parser interface {
	// Name identifies the parser in warnings and progress events
	Name() string

	// Matches reports whether the parser handles the given file name
	Matches(fileName string) bool

	// Parse extracts dependencies from manifest content
	Parse(fileName string, content []byte) (*Manifest, error)
}

// All returns the full parser set in a fixed order.
func All() []Parser {
	return []Parser{
		NewNodeJSParser(),
		NewGoParser(),
		NewPythonParser(),
		NewRustParser(),
		NewRubyParser(),
		NewPHPParser(),
	}
}
