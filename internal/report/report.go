// Package report renders a human-readable summary of a discovery
// result. Rendering is a pure formatting function over the result;
// styling is disabled when stdout is not a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/petrarca/stack-advisor/internal/types"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	sectionStyle   = lipgloss.NewStyle().Bold(true)
	essentialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	strongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
)

// Renderer formats discovery results.
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer. Color is enabled only when stdout is
// a terminal.
func NewRenderer() *Renderer {
	return &Renderer{color: isatty.IsTerminal(os.Stdout.Fd())}
}

// NewPlainRenderer creates a renderer with styling disabled.
func NewPlainRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Render writes the summary for a result.
func (r *Renderer) Render(w io.Writer, result *types.Result) {
	fmt.Fprintln(w, r.style(titleStyle, "Stack Advisor"))
	fmt.Fprintln(w)

	r.renderProfile(w, result.Profile)
	r.renderRecommendations(w, result.Recommendations)
	r.renderConflicts(w, result.Conflicts)
	r.renderWarnings(w, result.Warnings)
}

func (r *Renderer) renderProfile(w io.Writer, profile *types.ProjectProfile) {
	if profile == nil {
		return
	}

	fmt.Fprintln(w, r.style(sectionStyle, "Project"))
	if profile.PrimaryLanguage != "" {
		fmt.Fprintf(w, "  Primary language: %s\n", profile.PrimaryLanguage)
	}
	if frameworks := profile.FrameworkNames(); len(frameworks) > 0 {
		fmt.Fprintf(w, "  Frameworks: %s\n", strings.Join(frameworks, ", "))
	}
	if deps := profile.DependencyNames(); len(deps) > 0 {
		fmt.Fprintf(w, "  Dependencies: %d\n", len(deps))
	}
	if markers := profile.InfrastructureMarkers(); len(markers) > 0 {
		fmt.Fprintf(w, "  Infrastructure: %s\n", strings.Join(markers, ", "))
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderRecommendations(w io.Writer, recommendations []types.Recommendation) {
	fmt.Fprintln(w, r.style(sectionStyle, "Recommendations"))
	if len(recommendations) == 0 {
		fmt.Fprintln(w, r.style(dimStyle, "  none"))
		fmt.Fprintln(w)
		return
	}

	for _, rec := range recommendations {
		desc := rec.Candidate.Descriptor
		label := r.tierLabel(rec.Tier)
		auto := ""
		if rec.AutoInstall {
			auto = r.style(dimStyle, " [auto-install]")
		}
		fmt.Fprintf(w, "  %s %s%s\n", label, desc.Name, auto)
		fmt.Fprintf(w, "      %s\n", r.style(dimStyle,
			fmt.Sprintf("confidence %d, priority %d: %s", rec.Candidate.Confidence, desc.Priority, rec.Reason)))
	}
	fmt.Fprintln(w)
}

func (r *Renderer) tierLabel(tier types.Tier) string {
	switch tier {
	case types.TierEssential:
		return r.style(essentialStyle, "[essential]          ")
	case types.TierHighlyRecommended:
		return r.style(strongStyle, "[highly recommended] ")
	case types.TierRecommended:
		return r.style(normalStyle, "[recommended]        ")
	default:
		return r.style(dimStyle, "[suggested]          ")
	}
}

func (r *Renderer) renderConflicts(w io.Writer, conflicts []types.Conflict) {
	if len(conflicts) == 0 {
		return
	}

	fmt.Fprintln(w, r.style(sectionStyle, "Resolved conflicts"))
	for _, conflict := range conflicts {
		fmt.Fprintf(w, "  %s %s\n", r.style(dimStyle, "["+string(conflict.Type)+"]"), conflict.Resolution)
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(w, r.style(sectionStyle, "Warnings"))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  %s\n", r.style(warnStyle, warning))
	}
	fmt.Fprintln(w)
}
