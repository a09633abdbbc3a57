package types

// ConflictType classifies a detected configuration conflict.
type ConflictType string

const (
	ConflictPort          ConflictType = "port"
	ConflictFunctionality ConflictType = "functionality"
	ConflictDependency    ConflictType = "dependency"
)

// Conflict records one detected conflict and how it was resolved. The
// log is retained on the Result for observability.
type Conflict struct {
	Type       ConflictType `json:"type"`
	Involved   []string     `json:"involved"`
	Resolution string       `json:"resolution"`
}

// Compatibility verdicts for the pairwise matrix.
const (
	CompatCompatible = "compatible"
	CompatExclusive  = "exclusive"
	CompatRequires   = "requires"
)

// CompatibilityMatrix maps descriptor name -> descriptor name -> verdict
// for every pair of configurations in the result.
type CompatibilityMatrix map[string]map[string]string

// Result is the aggregate root handed to external collaborators. It is
// constructed once per discovery invocation and immutable once returned.
type Result struct {
	Metadata        interface{}             `json:"metadata,omitempty"`
	Profile         *ProjectProfile         `json:"profile"`
	Recommendations []Recommendation        `json:"recommendations"`
	Configurations  []*ServiceConfiguration `json:"configurations"`
	Conflicts       []Conflict              `json:"conflicts,omitempty"`
	Compatibility   CompatibilityMatrix     `json:"compatibility,omitempty"`
	CodeStats       interface{}             `json:"code_stats,omitempty"`
	Warnings        []string                `json:"warnings,omitempty"`
	Errors          []string                `json:"errors,omitempty"`
}

// Configuration returns the configuration for the named descriptor, or
// nil if none exists.
func (r *Result) Configuration(name string) *ServiceConfiguration {
	for _, cfg := range r.Configurations {
		if cfg.DescriptorName == name {
			return cfg
		}
	}
	return nil
}

// EnabledConfigurations returns the configurations left enabled after
// conflict resolution, in result order.
func (r *Result) EnabledConfigurations() []*ServiceConfiguration {
	out := make([]*ServiceConfiguration, 0, len(r.Configurations))
	for _, cfg := range r.Configurations {
		if cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}
