package types

// Candidate pairs a descriptor with the confidence the matcher computed
// for it against a project profile. Candidates below the minimum
// confidence threshold are discarded before tiering.
type Candidate struct {
	Descriptor *ServiceDescriptor `json:"descriptor"`
	Confidence int                `json:"confidence"`
	Reasons    []string           `json:"reasons,omitempty"`
}

// Tier is the recommendation strength bucket assigned to a candidate.
type Tier string

const (
	TierEssential         Tier = "essential"
	TierHighlyRecommended Tier = "highly_recommended"
	TierRecommended       Tier = "recommended"
	TierSuggested         Tier = "suggested"
)

// rank orders tiers from strongest to weakest for comparisons.
func (t Tier) rank() int {
	switch t {
	case TierEssential:
		return 0
	case TierHighlyRecommended:
		return 1
	case TierRecommended:
		return 2
	case TierSuggested:
		return 3
	}
	return 4
}

// AtLeast reports whether t is the same strength as other or stronger.
func (t Tier) AtLeast(other Tier) bool {
	return t.rank() <= other.rank()
}

// Recommendation is a tiered candidate with its selection rationale.
type Recommendation struct {
	Candidate   Candidate `json:"candidate"`
	Tier        Tier      `json:"tier"`
	Reason      string    `json:"reason"`
	AutoInstall bool      `json:"auto_install"`
}

// CompositeScore is the deterministic ordering key for recommendations:
// confidence weighted at 0.6 against static priority at 0.4.
func (r Recommendation) CompositeScore() float64 {
	return 0.6*float64(r.Candidate.Confidence) + 0.4*float64(r.Candidate.Descriptor.Priority)
}
