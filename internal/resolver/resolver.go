// Package resolver detects and resolves conflicts among built service
// configurations: port collisions, exclusivity-group violations and
// unmet declared dependencies. Resolution runs to a fixed point because
// force-enabling a dependency can reintroduce a port or exclusivity
// conflict; a cyclic catalog that never converges fails loudly instead
// of looping.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/configbuild"
	"github.com/petrarca/stack-advisor/internal/progress"
	"github.com/petrarca/stack-advisor/internal/types"
)

// maxIterations caps the fixed-point loop. Each iteration either
// converges or force-enables at least one dependency, so a healthy
// catalog converges in a handful of passes.
const maxIterations = 10

// ErrResolutionDiverged reports a catalog whose dependency declarations
// never reach a fixed point, which indicates a cycle in the catalog
// itself rather than a problem with the scanned project.
type ErrResolutionDiverged struct {
	Iterations int
}

func (e *ErrResolutionDiverged) Error() string {
	return fmt.Sprintf("conflict resolution did not converge after %d iterations; catalog dependency declarations are likely cyclic", e.Iterations)
}

// Resolver resolves conflicts in a configuration set.
type Resolver struct {
	catalog  *catalog.Catalog
	builder  *configbuild.Builder
	progress *progress.Progress
}

// New creates a resolver over the given catalog.
func New(cat *catalog.Catalog, prog *progress.Progress) *Resolver {
	if prog == nil {
		prog = progress.NewNull()
	}
	return &Resolver{catalog: cat, builder: configbuild.New(), progress: prog}
}

// Resolve mutates the configuration set in place until no conflicts
// remain, returning the conflict log. Conflict classes run in a fixed
// order inside each pass: ports, then exclusivity, then dependency
// gaps.
func (r *Resolver) Resolve(configs []*types.ServiceConfiguration) ([]*types.ServiceConfiguration, []types.Conflict, error) {
	var conflicts []types.Conflict
	reportedUnresolved := make(map[string]bool)

	for iteration := 0; iteration < maxIterations; iteration++ {
		changed := false

		portConflicts, portChanged := resolvePorts(configs)
		conflicts = append(conflicts, portConflicts...)
		changed = changed || portChanged

		exclusivityConflicts, exclusivityChanged := resolveExclusivity(configs)
		conflicts = append(conflicts, exclusivityConflicts...)
		changed = changed || exclusivityChanged

		dependencyConflicts, added, dependencyChanged := r.resolveDependencyGaps(configs, reportedUnresolved)
		conflicts = append(conflicts, dependencyConflicts...)
		configs = append(configs, added...)
		changed = changed || dependencyChanged

		if !changed {
			for _, conflict := range conflicts {
				r.progress.ConflictResolved(string(conflict.Type), conflict.Resolution)
			}
			return configs, conflicts, nil
		}
	}

	return configs, conflicts, &ErrResolutionDiverged{Iterations: maxIterations}
}

// resolvePorts reassigns colliding ports. The lower-priority
// configuration moves to the next port unused by any enabled
// configuration, scanning upward from the colliding port.
func resolvePorts(configs []*types.ServiceConfiguration) ([]types.Conflict, bool) {
	var conflicts []types.Conflict
	changed := false

	enabled := enabledWithPorts(configs)

	for {
		collision := findPortCollision(enabled)
		if collision == nil {
			break
		}

		keeper, mover := collision[0], collision[1]
		oldPort := mover.Port
		mover.Port = nextFreePort(enabled, mover, oldPort+1)
		changed = true

		conflicts = append(conflicts, types.Conflict{
			Type:     types.ConflictPort,
			Involved: []string{keeper.DescriptorName, mover.DescriptorName},
			Resolution: fmt.Sprintf("moved %s from port %d to %d, %s keeps %d",
				mover.DescriptorName, oldPort, mover.Port, keeper.DescriptorName, keeper.Port),
		})
	}

	return conflicts, changed
}

// findPortCollision returns the first colliding pair in deterministic
// order, keeper first. Higher priority keeps the port; ties keep the
// alphabetically earlier name.
func findPortCollision(enabled []*types.ServiceConfiguration) []*types.ServiceConfiguration {
	for i := 0; i < len(enabled); i++ {
		for j := i + 1; j < len(enabled); j++ {
			if enabled[i].Port != enabled[j].Port {
				continue
			}
			keeper, mover := enabled[i], enabled[j]
			if mover.Priority > keeper.Priority {
				keeper, mover = mover, keeper
			}
			return []*types.ServiceConfiguration{keeper, mover}
		}
	}
	return nil
}

// nextFreePort scans upward from start for a port no other enabled
// configuration uses.
func nextFreePort(enabled []*types.ServiceConfiguration, mover *types.ServiceConfiguration, start int) int {
	used := make(map[int]bool, len(enabled))
	for _, config := range enabled {
		if config != mover {
			used[config.Port] = true
		}
	}
	port := start
	for used[port] {
		port++
	}
	return port
}

// enabledWithPorts returns the enabled configurations that carry a
// port, in deterministic name order.
func enabledWithPorts(configs []*types.ServiceConfiguration) []*types.ServiceConfiguration {
	var out []*types.ServiceConfiguration
	for _, config := range configs {
		if config.Enabled && config.Port > 0 {
			out = append(out, config)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DescriptorName < out[j].DescriptorName })
	return out
}

// resolveExclusivity enforces single-winner functional roles. Within
// each exclusivity group the highest-priority enabled configuration
// stays enabled; the rest are disabled but retained for auditability.
func resolveExclusivity(configs []*types.ServiceConfiguration) ([]types.Conflict, bool) {
	groups := make(map[string][]*types.ServiceConfiguration)
	for _, config := range configs {
		if config.Enabled && config.Exclusive != "" {
			groups[config.Exclusive] = append(groups[config.Exclusive], config)
		}
	}

	groupNames := make([]string, 0, len(groups))
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	var conflicts []types.Conflict
	changed := false

	for _, group := range groupNames {
		members := groups[group]
		if len(members) < 2 {
			continue
		}

		sort.Slice(members, func(i, j int) bool {
			if members[i].Priority != members[j].Priority {
				return members[i].Priority > members[j].Priority
			}
			return members[i].DescriptorName < members[j].DescriptorName
		})

		winner := members[0]
		involved := make([]string, 0, len(members))
		var losers []string
		for _, member := range members {
			involved = append(involved, member.DescriptorName)
			if member != winner {
				member.Enabled = false
				losers = append(losers, member.DescriptorName)
				changed = true
			}
		}

		conflicts = append(conflicts, types.Conflict{
			Type:     types.ConflictFunctionality,
			Involved: involved,
			Resolution: fmt.Sprintf("role %q kept %s, disabled %s",
				group, winner.DescriptorName, strings.Join(losers, ", ")),
		})
	}

	return conflicts, changed
}

// resolveDependencyGaps force-enables declared dependencies that are
// absent or disabled. Missing dependencies known to the catalog get a
// freshly built configuration; names the catalog does not know are
// reported as unresolved.
func (r *Resolver) resolveDependencyGaps(configs []*types.ServiceConfiguration, reportedUnresolved map[string]bool) ([]types.Conflict, []*types.ServiceConfiguration, bool) {
	byName := make(map[string]*types.ServiceConfiguration, len(configs))
	for _, config := range configs {
		byName[config.DescriptorName] = config
	}

	var conflicts []types.Conflict
	var added []*types.ServiceConfiguration
	changed := false

	for _, config := range configs {
		if !config.Enabled {
			continue
		}
		for _, depName := range config.DependsOn {
			dep, present := byName[depName]
			if present && dep.Enabled {
				continue
			}

			if present {
				dep.Enabled = true
				changed = true
				conflicts = append(conflicts, types.Conflict{
					Type:       types.ConflictDependency,
					Involved:   []string{config.DescriptorName, depName},
					Resolution: fmt.Sprintf("re-enabled %s, required by %s", depName, config.DescriptorName),
				})
				continue
			}

			desc := r.catalog.Lookup(depName)
			if desc == nil {
				key := config.DescriptorName + "->" + depName
				if reportedUnresolved[key] {
					continue
				}
				reportedUnresolved[key] = true
				conflicts = append(conflicts, types.Conflict{
					Type:       types.ConflictDependency,
					Involved:   []string{config.DescriptorName, depName},
					Resolution: fmt.Sprintf("unresolved: %s requires unknown descriptor %s", config.DescriptorName, depName),
				})
				continue
			}

			depConfig := r.builder.BuildOne(types.Recommendation{
				Candidate: types.Candidate{
					Descriptor: desc,
					Confidence: config.Confidence,
					Reasons:    []string{fmt.Sprintf("required by %s", config.DescriptorName)},
				},
				Tier:   types.TierRecommended,
				Reason: fmt.Sprintf("required by %s", config.DescriptorName),
			})
			byName[depName] = depConfig
			added = append(added, depConfig)
			changed = true

			conflicts = append(conflicts, types.Conflict{
				Type:       types.ConflictDependency,
				Involved:   []string{config.DescriptorName, depName},
				Resolution: fmt.Sprintf("enabled %s, required by %s", depName, config.DescriptorName),
			})
		}
	}

	return conflicts, added, changed
}
