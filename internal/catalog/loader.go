package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
	"github.com/petrarca/stack-advisor/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed all:services
var defaultCatalogFS embed.FS

// LoadDefault loads the embedded default catalog. One descriptor per
// YAML file; the category is derived from the folder name when the file
// does not set it.
func LoadDefault() (*Catalog, error) {
	return loadFromFS(defaultCatalogFS, "services", false)
}

// LoadExternal loads a catalog from an external directory, for custom
// registries and tests. The directory layout mirrors the embedded one:
// <category>/<descriptor>.yaml. External files are untrusted input and
// are additionally checked against the descriptor schema.
func LoadExternal(dir string) (*Catalog, error) {
	return loadFromFS(os.DirFS(dir), ".", true)
}

func loadFromFS(fsys fs.FS, rootDir string, schemaCheck bool) (*Catalog, error) {
	grouped := make(map[string][]*types.ServiceDescriptor)

	err := fs.WalkDir(fsys, rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read descriptor file %s: %w", path, err)
		}

		if schemaCheck {
			if err := validation.ValidateYAML("service-descriptor.json", content); err != nil {
				return fmt.Errorf("invalid descriptor file %s: %w", path, err)
			}
		}

		var desc types.ServiceDescriptor
		if err := yaml.Unmarshal(content, &desc); err != nil {
			return fmt.Errorf("failed to parse descriptor file %s: %w", path, err)
		}

		// Derive category from folder if not specified
		if desc.Category == "" {
			desc.Category = deriveCategoryFromPath(path, rootDir)
		}

		if err := validateDescriptor(&desc); err != nil {
			return fmt.Errorf("invalid descriptor in %s: %w", path, err)
		}

		grouped[desc.Category] = append(grouped[desc.Category], &desc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk catalog: %w", err)
	}

	return New(buildTree(grouped))
}

// buildTree assembles the category tree, splitting descriptors with a
// subcategory into nested categories. Categories and descriptors are
// sorted by name so the tree is deterministic regardless of walk order.
func buildTree(grouped map[string][]*types.ServiceDescriptor) *types.Category {
	root := &types.Category{Name: "services"}

	categories := make([]string, 0, len(grouped))
	for name := range grouped {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, name := range categories {
		descs := grouped[name]
		sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })

		cat := &types.Category{Name: name}
		subcats := make(map[string]*types.Category)
		for _, desc := range descs {
			if desc.Subcategory == "" {
				cat.Children = append(cat.Children, desc)
				continue
			}
			sub, ok := subcats[desc.Subcategory]
			if !ok {
				sub = &types.Category{Name: desc.Subcategory}
				subcats[desc.Subcategory] = sub
				cat.Children = append(cat.Children, sub)
			}
			sub.Children = append(sub.Children, desc)
		}
		root.Children = append(root.Children, cat)
	}

	return root
}

// deriveCategoryFromPath extracts the category from the folder name
// e.g. "services/monitoring/prometheus.yaml" -> "monitoring"
func deriveCategoryFromPath(path, rootDir string) string {
	dir := filepath.Dir(path)
	if dir == rootDir || dir == "." {
		return "uncategorized"
	}
	return filepath.Base(dir)
}

// validateDescriptor validates a descriptor definition
func validateDescriptor(desc *types.ServiceDescriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("name is required")
	}

	if desc.Type == "" {
		return fmt.Errorf("type is required")
	}

	if desc.Priority < 0 || desc.Priority > 100 {
		return fmt.Errorf("priority must be in [0,100], got %d", desc.Priority)
	}

	for i, pattern := range desc.Patterns {
		switch pattern.Kind {
		case types.PatternFile, types.PatternDirectory, types.PatternDependency, types.PatternContent:
		default:
			return fmt.Errorf("pattern %d: unknown kind %q", i, pattern.Kind)
		}
		if pattern.Value == "" {
			return fmt.Errorf("pattern %d: value is required", i)
		}
	}

	return nil
}
