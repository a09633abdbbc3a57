package types

import "strings"

// PatternKind discriminates how a detection pattern is evaluated
// against a project profile.
type PatternKind string

const (
	// PatternFile matches a file name in the project tree. The value may
	// be an exact name (package.json) or a glob (next.config.*).
	PatternFile PatternKind = "file"

	// PatternDirectory matches a directory name anywhere in the tree.
	PatternDirectory PatternKind = "directory"

	// PatternDependency matches a dependency name from any parsed manifest.
	PatternDependency PatternKind = "dependency"

	// PatternContent matches a substring of a known manifest/config file.
	PatternContent PatternKind = "content"
)

// Pattern is a single detection pattern carried by a service descriptor.
type Pattern struct {
	Kind  PatternKind `yaml:"kind" json:"kind"`
	Value string      `yaml:"value" json:"value"`
}

// IsExactFile reports whether the pattern names a precise manifest or
// config file rather than a loose glob. Exact filename matches earn a
// scoring bonus over glob matches.
func (p Pattern) IsExactFile() bool {
	if p.Kind != PatternFile {
		return false
	}
	return !strings.ContainsAny(p.Value, "*?[")
}

// ServiceDescriptor is an immutable catalog entry describing one
// discoverable auxiliary integration and how to detect its relevance.
// Descriptors are owned by the catalog and never mutated at runtime.
type ServiceDescriptor struct {
	Category    string    `yaml:"category" json:"category"`
	Subcategory string    `yaml:"subcategory,omitempty" json:"subcategory,omitempty"`
	Name        string    `yaml:"name" json:"name"`
	Type        string    `yaml:"type" json:"type"`
	Priority    int       `yaml:"priority" json:"priority"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Patterns    []Pattern `yaml:"patterns,omitempty" json:"patterns,omitempty"`

	// Port is the default port the integration listens on, 0 if none.
	Port int `yaml:"port,omitempty" json:"port,omitempty"`

	// Requires lists descriptor names this integration depends on.
	Requires []string `yaml:"requires,omitempty" json:"requires,omitempty"`

	// Exclusive names the functional role this descriptor occupies when
	// at most one member of that role should be enabled (e.g. "bundler").
	// Empty means no exclusivity constraint.
	Exclusive string `yaml:"exclusive,omitempty" json:"exclusive,omitempty"`
}

// CatalogNode is a tagged variant: a node in the catalog tree is either
// a ServiceDescriptor leaf or a Category with children. The sealed
// interface replaces shape-sniffing on nested map literals.
type CatalogNode interface {
	catalogNode()
}

// Category groups catalog nodes under a named category or subcategory.
type Category struct {
	Name     string
	Children []CatalogNode
}

func (*Category) catalogNode()          {}
func (*ServiceDescriptor) catalogNode() {}

// Descriptors flattens the subtree rooted at the given node into a
// slice of descriptors, in declaration order.
func Descriptors(node CatalogNode) []*ServiceDescriptor {
	var out []*ServiceDescriptor
	walk(node, func(d *ServiceDescriptor) {
		out = append(out, d)
	})
	return out
}

func walk(node CatalogNode, fn func(*ServiceDescriptor)) {
	switch n := node.(type) {
	case *ServiceDescriptor:
		fn(n)
	case *Category:
		for _, child := range n.Children {
			walk(child, fn)
		}
	}
}
