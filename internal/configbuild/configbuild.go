// Package configbuild derives service configurations from
// recommendations. Every value is a deterministic function of the
// descriptor's priority and the candidate's confidence; building the
// same recommendations twice yields identical configurations.
package configbuild

import (
	"math"

	"github.com/petrarca/stack-advisor/internal/types"
)

// Environments, in build order.
var environments = []string{"development", "testing", "staging", "production"}

// resourceMultipliers scales the priority-derived base requests per
// environment.
var resourceMultipliers = map[string]float64{
	"development": 0.5,
	"testing":     0.7,
	"staging":     0.8,
	"production":  1.0,
}

// Builder derives service configurations.
type Builder struct{}

// New creates a configuration builder.
func New() *Builder {
	return &Builder{}
}

// Build derives one configuration per recommendation, preserving the
// recommendation order.
func (b *Builder) Build(recommendations []types.Recommendation) []*types.ServiceConfiguration {
	configs := make([]*types.ServiceConfiguration, 0, len(recommendations))
	for _, rec := range recommendations {
		configs = append(configs, b.BuildOne(rec))
	}
	return configs
}

// BuildOne derives the base configuration for a single recommendation
// plus one variant per target environment.
func (b *Builder) BuildOne(rec types.Recommendation) *types.ServiceConfiguration {
	desc := rec.Candidate.Descriptor
	priority := desc.Priority
	confidence := rec.Candidate.Confidence

	config := &types.ServiceConfiguration{
		DescriptorName: desc.Name,
		Enabled:        true,
		Priority:       priority,
		Confidence:     confidence,
		Port:           desc.Port,
		Connection: types.ConnectionSettings{
			MaxConnections: ceilDiv(priority, 20),
			TimeoutMS:      pick(priority > 80, 5000, 10000),
			PoolSize:       pick(priority > 85, 10, 5),
		},
		HealthCheck: types.HealthCheckSettings{
			IntervalMS:       pick(priority > 85, 30000, 60000),
			TimeoutMS:        pick(priority > 80, 5000, 10000),
			Retries:          3,
			FailureThreshold: 3,
			SuccessThreshold: 2,
		},
		Logging: types.LoggingSettings{
			Level: pickString(confidence > 80, "debug", "info"),
		},
		Security: types.SecuritySettings{
			RateLimit: types.RateLimit{
				Requests:      pick(priority > 80, 1000, 100),
				WindowSeconds: 60,
			},
		},
		DependsOn:    append([]string(nil), desc.Requires...),
		Exclusive:    desc.Exclusive,
		Environments: make(map[string]types.EnvironmentConfig, len(environments)),
	}

	for _, env := range environments {
		config.Environments[env] = environmentConfig(env, priority)
	}
	return config
}

// environmentConfig derives the per-environment resource and replica
// settings.
func environmentConfig(env string, priority int) types.EnvironmentConfig {
	multiplier := resourceMultipliers[env]

	baseCPU := maxInt(100, priority*2)
	baseMemory := maxInt(128, priority*4)

	requests := types.ResourceSpec{
		CPUMillis: int(math.Ceil(float64(baseCPU) * multiplier)),
		MemoryMi:  int(math.Ceil(float64(baseMemory) * multiplier)),
	}
	limits := types.ResourceSpec{
		CPUMillis: requests.CPUMillis * 2,
		MemoryMi:  requests.MemoryMi * 2,
	}

	config := types.EnvironmentConfig{
		Environment: env,
		Resources:   types.Resources{Requests: requests, Limits: limits},
		Replicas:    1,
	}

	if env == "production" {
		replicas := maxInt(1, ceilDiv(priority, 30))
		config.Replicas = replicas
		config.Autoscaling = &types.Autoscaling{
			MinReplicas:         1,
			MaxReplicas:         maxInt(3, ceilDiv(priority, 30)),
			TargetCPUPercent:    70,
			TargetMemoryPercent: 80,
		}
	}
	return config
}

// Environments returns the target environment names in build order.
func Environments() []string {
	out := make([]string, len(environments))
	copy(out, environments)
	return out
}

func ceilDiv(value, divisor int) int {
	return int(math.Ceil(float64(value) / float64(divisor)))
}

func pick(cond bool, ifTrue, ifFalse int) int {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func pickString(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
