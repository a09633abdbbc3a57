package configbuild

import (
	"testing"

	"github.com/petrarca/stack-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendation(name string, priority, confidence int) types.Recommendation {
	return types.Recommendation{
		Candidate: types.Candidate{
			Descriptor: &types.ServiceDescriptor{Name: name, Type: "test", Priority: priority},
			Confidence: confidence,
		},
		Tier: types.TierRecommended,
	}
}

func TestBuildOne_HighPriority(t *testing.T) {
	rec := recommendation("postgresql", 90, 85)
	rec.Candidate.Descriptor.Port = 5432
	rec.Candidate.Descriptor.Requires = []string{"pgbouncer"}
	rec.Candidate.Descriptor.Exclusive = "relational-db"

	config := New().BuildOne(rec)

	assert.Equal(t, "postgresql", config.DescriptorName)
	assert.True(t, config.Enabled)
	assert.Equal(t, 5432, config.Port)
	assert.Equal(t, []string{"pgbouncer"}, config.DependsOn)
	assert.Equal(t, "relational-db", config.Exclusive)

	// ceil(90/20) = 5 connections, priority > 85 widens the pool
	assert.Equal(t, 5, config.Connection.MaxConnections)
	assert.Equal(t, 10, config.Connection.PoolSize)
	assert.Equal(t, 5000, config.Connection.TimeoutMS)

	assert.Equal(t, 30000, config.HealthCheck.IntervalMS)
	assert.Equal(t, 5000, config.HealthCheck.TimeoutMS)
	assert.Equal(t, 3, config.HealthCheck.Retries)
	assert.Equal(t, 3, config.HealthCheck.FailureThreshold)
	assert.Equal(t, 2, config.HealthCheck.SuccessThreshold)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 1000, config.Security.RateLimit.Requests)
	assert.Equal(t, 60, config.Security.RateLimit.WindowSeconds)
}

func TestBuildOne_LowPriority(t *testing.T) {
	config := New().BuildOne(recommendation("mailhog", 40, 45))

	assert.Equal(t, 2, config.Connection.MaxConnections)
	assert.Equal(t, 5, config.Connection.PoolSize)
	assert.Equal(t, 10000, config.Connection.TimeoutMS)
	assert.Equal(t, 60000, config.HealthCheck.IntervalMS)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, 100, config.Security.RateLimit.Requests)
}

func TestBuildOne_Environments(t *testing.T) {
	config := New().BuildOne(recommendation("postgresql", 90, 85))

	require.Len(t, config.Environments, 4)

	// base CPU 180m, base memory 360Mi, scaled per environment
	dev := config.Environments["development"]
	assert.Equal(t, 90, dev.Resources.Requests.CPUMillis)
	assert.Equal(t, 180, dev.Resources.Requests.MemoryMi)
	assert.Equal(t, 180, dev.Resources.Limits.CPUMillis)
	assert.Equal(t, 360, dev.Resources.Limits.MemoryMi)
	assert.Equal(t, 1, dev.Replicas)
	assert.Nil(t, dev.Autoscaling)

	testEnv := config.Environments["testing"]
	assert.Equal(t, 126, testEnv.Resources.Requests.CPUMillis)

	staging := config.Environments["staging"]
	assert.Equal(t, 144, staging.Resources.Requests.CPUMillis)
	assert.Equal(t, 288, staging.Resources.Requests.MemoryMi)

	prod := config.Environments["production"]
	assert.Equal(t, 180, prod.Resources.Requests.CPUMillis)
	assert.Equal(t, 360, prod.Resources.Requests.MemoryMi)
	assert.Equal(t, 3, prod.Replicas) // ceil(90/30)
	require.NotNil(t, prod.Autoscaling)
	assert.Equal(t, 1, prod.Autoscaling.MinReplicas)
	assert.Equal(t, 3, prod.Autoscaling.MaxReplicas)
	assert.Equal(t, 70, prod.Autoscaling.TargetCPUPercent)
	assert.Equal(t, 80, prod.Autoscaling.TargetMemoryPercent)
}

func TestBuildOne_ResourceFloors(t *testing.T) {
	config := New().BuildOne(recommendation("tiny", 10, 35))

	// priority*2 = 20 and priority*4 = 40 fall below the floors
	prod := config.Environments["production"]
	assert.Equal(t, 100, prod.Resources.Requests.CPUMillis)
	assert.Equal(t, 128, prod.Resources.Requests.MemoryMi)
	assert.Equal(t, 1, prod.Replicas)
	require.NotNil(t, prod.Autoscaling)
	assert.Equal(t, 3, prod.Autoscaling.MaxReplicas)
}

func TestBuild_PreservesOrder(t *testing.T) {
	configs := New().Build([]types.Recommendation{
		recommendation("b", 50, 50),
		recommendation("a", 60, 60),
	})

	require.Len(t, configs, 2)
	assert.Equal(t, "b", configs[0].DescriptorName)
	assert.Equal(t, "a", configs[1].DescriptorName)
}

func TestBuildOne_Deterministic(t *testing.T) {
	rec := recommendation("redis", 80, 75)
	first := New().BuildOne(rec)
	second := New().BuildOne(rec)
	assert.Equal(t, first, second)
}

func TestEnvironments(t *testing.T) {
	assert.Equal(t, []string{"development", "testing", "staging", "production"}, Environments())
}
