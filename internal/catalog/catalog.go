// Package catalog holds the static registry of service descriptors the
// discovery engine matches against. The catalog is an explicit,
// injectable, immutable value: callers pass it into the matcher rather
// than reaching for global state, which keeps test doubles and
// alternate registries cheap.
package catalog

import (
	"fmt"
	"sort"

	"github.com/petrarca/stack-advisor/internal/types"
)

// CategoryCore names the category whose descriptors apply to every
// project regardless of confidence.
const CategoryCore = "core"

// Catalog is an immutable registry of service descriptors organized as
// a category tree.
type Catalog struct {
	root   *types.Category
	byName map[string]*types.ServiceDescriptor
}

// New builds a catalog from a category tree. Descriptor names must be
// unique across the whole tree.
func New(root *types.Category) (*Catalog, error) {
	byName := make(map[string]*types.ServiceDescriptor)
	for _, desc := range types.Descriptors(root) {
		if _, exists := byName[desc.Name]; exists {
			return nil, fmt.Errorf("duplicate descriptor name %q in catalog", desc.Name)
		}
		byName[desc.Name] = desc
	}
	return &Catalog{root: root, byName: byName}, nil
}

// Root returns the root category of the catalog tree.
func (c *Catalog) Root() *types.Category {
	return c.root
}

// Lookup returns the descriptor with the given name, or nil.
func (c *Catalog) Lookup(name string) *types.ServiceDescriptor {
	return c.byName[name]
}

// Len returns the number of descriptors in the catalog.
func (c *Catalog) Len() int {
	return len(c.byName)
}

// Descriptors returns every descriptor in the catalog sorted by name
// for deterministic iteration.
func (c *Catalog) Descriptors() []*types.ServiceDescriptor {
	out := make([]*types.ServiceDescriptor, 0, len(c.byName))
	for _, desc := range c.byName {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CoreDescriptors returns the descriptors in the core category, sorted
// by name. Core descriptors are always recommended as essential.
func (c *Catalog) CoreDescriptors() []*types.ServiceDescriptor {
	var out []*types.ServiceDescriptor
	for _, desc := range c.Descriptors() {
		if desc.Category == CategoryCore {
			out = append(out, desc)
		}
	}
	return out
}

// ByType returns the descriptors with the given type, sorted by
// descending priority then name. Augmentation rules use this to pick
// the strongest candidate for a functional role.
func (c *Catalog) ByType(descType string) []*types.ServiceDescriptor {
	var out []*types.ServiceDescriptor
	for _, desc := range c.Descriptors() {
		if desc.Type == descType {
			out = append(out, desc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}
