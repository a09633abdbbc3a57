package manifests

import (
	"github.com/petrarca/stack-advisor/internal/types"
	"golang.org/x/mod/modfile"
)

// GoParser handles go.mod parsing via the official modfile parser.
type GoParser struct{}

// NewGoParser creates a new Go parser
func NewGoParser() *GoParser {
	return &GoParser{}
}

func (p *GoParser) Name() string {
	return "golang"
}

func (p *GoParser) Matches(fileName string) bool {
	return fileName == "go.mod"
}

// Parse extracts the module path and requirements from go.mod. Direct
// requirements land in the production scope; indirect ones are recorded
// as optional since the project does not import them itself.
func (p *GoParser) Parse(fileName string, content []byte) (*Manifest, error) {
	file, err := modfile.Parse(fileName, content, nil)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{Ecosystem: "go"}
	if file.Module != nil {
		manifest.PackageName = file.Module.Mod.Path
	}

	for _, req := range file.Require {
		scope := types.ScopeProduction
		if req.Indirect {
			scope = types.ScopeOptional
		}
		manifest.Dependencies = append(manifest.Dependencies, types.Dependency{
			Name:       req.Mod.Path,
			Version:    req.Mod.Version,
			Scope:      scope,
			Ecosystem:  "go",
			SourceFile: fileName,
		})
	}

	return manifest, nil
}
