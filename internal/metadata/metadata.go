// Package metadata describes a single discovery run: when it ran, what
// it scanned and how much it found.
package metadata

import (
	"path/filepath"
	"time"
)

// RunMetadata contains information about the discovery run execution.
type RunMetadata struct {
	Timestamp           string                 `json:"timestamp"`
	ProjectPath         string                 `json:"project_path"`
	ProjectID           string                 `json:"project_id,omitempty"`
	EngineVersion       string                 `json:"engine_version"`
	DurationMs          int64                  `json:"duration_ms,omitempty"`
	DescriptorCount     int                    `json:"descriptor_count,omitempty"`
	CandidateCount      int                    `json:"candidate_count,omitempty"`
	RecommendationCount int                    `json:"recommendation_count,omitempty"`
	ConflictCount       int                    `json:"conflict_count,omitempty"`
	Properties          map[string]interface{} `json:"properties,omitempty"`
}

// NewRunMetadata creates metadata for a run over the given project path.
func NewRunMetadata(projectPath, version string) *RunMetadata {
	absPath, _ := filepath.Abs(projectPath)

	return &RunMetadata{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ProjectPath:   absPath,
		EngineVersion: version,
	}
}

// SetDuration records the run duration in milliseconds.
func (m *RunMetadata) SetDuration(duration time.Duration) {
	m.DurationMs = duration.Milliseconds()
}

// SetCounts records how much the run found at each pipeline stage.
func (m *RunMetadata) SetCounts(descriptors, candidates, recommendations, conflicts int) {
	m.DescriptorCount = descriptors
	m.CandidateCount = candidates
	m.RecommendationCount = recommendations
	m.ConflictCount = conflicts
}

// SetProperties attaches custom properties from configuration.
func (m *RunMetadata) SetProperties(properties map[string]interface{}) {
	if len(properties) > 0 {
		m.Properties = properties
	}
}
