package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/types"
	"github.com/spf13/cobra"
)

var catalogFormat string
var catalogDirFlag string
var catalogTypeFilter string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List service descriptors in the catalog",
	Long:  `List all service descriptors in the catalog, grouped by category.`,
	Run:   runCatalog,
}

func init() {
	setupFormatFlag(catalogCmd, &catalogFormat)
	catalogCmd.Flags().StringVar(&catalogDirFlag, "catalog", "", "Directory with a custom descriptor catalog (default: embedded)")
	catalogCmd.Flags().StringVar(&catalogTypeFilter, "type", "", "Filter descriptors by type")
}

// DescriptorInfo is a single catalog entry in the listing
type DescriptorInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Priority  int    `json:"priority"`
	Port      int    `json:"port,omitempty"`
	Exclusive string `json:"exclusive,omitempty"`
	Patterns  int    `json:"patterns"`
}

// CatalogResult is the output for the catalog command
type CatalogResult struct {
	Descriptors []DescriptorInfo `json:"descriptors"`
	Count       int              `json:"count"`
}

func (r *CatalogResult) ToJSON() interface{} {
	return r
}

func (r *CatalogResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "=== Service Descriptors (%d) ===\n\n", r.Count)

	byCategory := make(map[string][]DescriptorInfo)
	var categories []string
	for _, d := range r.Descriptors {
		if _, seen := byCategory[d.Category]; !seen {
			categories = append(categories, d.Category)
		}
		byCategory[d.Category] = append(byCategory[d.Category], d)
	}
	sort.Strings(categories)

	for _, category := range categories {
		fmt.Fprintf(w, "[%s]\n", category)
		for _, d := range byCategory[category] {
			extra := ""
			if d.Port > 0 {
				extra = fmt.Sprintf(" port=%d", d.Port)
			}
			if d.Exclusive != "" {
				extra += fmt.Sprintf(" exclusive=%s", d.Exclusive)
			}
			fmt.Fprintf(w, "  %-24s %-20s priority=%-3d patterns=%d%s\n", d.Name, d.Type, d.Priority, d.Patterns, extra)
		}
		fmt.Fprintln(w)
	}
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir != "" {
		return catalog.LoadExternal(dir)
	}
	return catalog.LoadDefault()
}

func runCatalog(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog(catalogDirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	var descriptors []DescriptorInfo
	for _, desc := range cat.Descriptors() {
		if catalogTypeFilter != "" && desc.Type != catalogTypeFilter {
			continue
		}
		descriptors = append(descriptors, DescriptorInfo{
			Name:      desc.Name,
			Type:      desc.Type,
			Category:  desc.Category,
			Priority:  desc.Priority,
			Port:      desc.Port,
			Exclusive: desc.Exclusive,
			Patterns:  len(desc.Patterns),
		})
	}

	result := &CatalogResult{
		Descriptors: descriptors,
		Count:       len(descriptors),
	}
	Output(result, catalogFormat)
}

// DescriptorResult is the output for the descriptor command
type DescriptorResult struct {
	Descriptor *types.ServiceDescriptor `json:"descriptor"`
}

func (r *DescriptorResult) ToJSON() interface{} {
	return r.Descriptor
}

func (r *DescriptorResult) ToText(w io.Writer) {
	d := r.Descriptor
	fmt.Fprintf(w, "=== %s ===\n\n", d.Name)
	fmt.Fprintf(w, "Type:     %s\n", d.Type)
	fmt.Fprintf(w, "Category: %s\n", d.Category)
	if d.Subcategory != "" {
		fmt.Fprintf(w, "Subcategory: %s\n", d.Subcategory)
	}
	fmt.Fprintf(w, "Priority: %d\n", d.Priority)
	if d.Port > 0 {
		fmt.Fprintf(w, "Port:     %d\n", d.Port)
	}
	if d.Exclusive != "" {
		fmt.Fprintf(w, "Exclusive role: %s\n", d.Exclusive)
	}
	if len(d.Requires) > 0 {
		fmt.Fprintf(w, "Requires: %v\n", d.Requires)
	}
	if d.Description != "" {
		fmt.Fprintf(w, "\n%s\n", d.Description)
	}
	if len(d.Patterns) > 0 {
		fmt.Fprintln(w, "\nDetection patterns:")
		for _, p := range d.Patterns {
			fmt.Fprintf(w, "  %-12s %s\n", p.Kind, p.Value)
		}
	}
}

var descriptorFormat string

var descriptorCmd = &cobra.Command{
	Use:   "descriptor <name>",
	Short: "Show details for a single service descriptor",
	Args:  cobra.ExactArgs(1),
	Run:   runDescriptor,
}

func init() {
	setupFormatFlag(descriptorCmd, &descriptorFormat)
	descriptorCmd.Flags().StringVar(&catalogDirFlag, "catalog", "", "Directory with a custom descriptor catalog (default: embedded)")
}

func runDescriptor(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog(catalogDirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	desc := cat.Lookup(args[0])
	if desc == nil {
		fmt.Fprintf(os.Stderr, "Unknown descriptor: %s\n", args[0])
		os.Exit(1)
	}

	Output(&DescriptorResult{Descriptor: desc}, descriptorFormat)
}
