package types

// ConnectionSettings sizes the connection pool for an integration.
type ConnectionSettings struct {
	MaxConnections int `json:"max_connections"`
	TimeoutMS      int `json:"timeout_ms"`
	PoolSize       int `json:"pool_size"`
}

// HealthCheckSettings describes the health-check cadence.
type HealthCheckSettings struct {
	IntervalMS       int `json:"interval_ms"`
	TimeoutMS        int `json:"timeout_ms"`
	Retries          int `json:"retries"`
	FailureThreshold int `json:"failure_threshold"`
	SuccessThreshold int `json:"success_threshold"`
}

// LoggingSettings holds logging verbosity for the integration.
type LoggingSettings struct {
	Level string `json:"level"`
}

// RateLimit is a fixed-window request budget.
type RateLimit struct {
	Requests      int `json:"requests"`
	WindowSeconds int `json:"window_seconds"`
}

// SecuritySettings holds the derived security policy.
type SecuritySettings struct {
	RateLimit RateLimit `json:"rate_limit"`
}

// ResourceSpec is a CPU/memory pair in milli-units and Mi-units.
type ResourceSpec struct {
	CPUMillis int `json:"cpu_millis"`
	MemoryMi  int `json:"memory_mi"`
}

// Resources carries the request and limit resource specs.
type Resources struct {
	Requests ResourceSpec `json:"requests"`
	Limits   ResourceSpec `json:"limits"`
}

// Autoscaling holds replica bounds and utilization targets. Only the
// production environment carries autoscaling.
type Autoscaling struct {
	MinReplicas         int `json:"min_replicas"`
	MaxReplicas         int `json:"max_replicas"`
	TargetCPUPercent    int `json:"target_cpu_percent"`
	TargetMemoryPercent int `json:"target_memory_percent"`
}

// EnvironmentConfig is the per-environment specialization of a service
// configuration: scaled resources and replica counts.
type EnvironmentConfig struct {
	Environment string       `json:"environment"`
	Resources   Resources    `json:"resources"`
	Replicas    int          `json:"replicas"`
	Autoscaling *Autoscaling `json:"autoscaling,omitempty"`
}

// ServiceConfiguration is the deployable configuration derived for one
// enabled recommendation. All fields are deterministic functions of the
// descriptor's priority and match confidence.
type ServiceConfiguration struct {
	DescriptorName string                       `json:"descriptor_name"`
	Enabled        bool                         `json:"enabled"`
	Priority       int                          `json:"priority"`
	Confidence     int                          `json:"confidence"`
	Port           int                          `json:"port,omitempty"`
	Connection     ConnectionSettings           `json:"connection"`
	HealthCheck    HealthCheckSettings          `json:"health_check"`
	Logging        LoggingSettings              `json:"logging"`
	Security       SecuritySettings             `json:"security"`
	DependsOn      []string                     `json:"depends_on,omitempty"`
	Exclusive      string                       `json:"exclusive,omitempty"`
	Environments   map[string]EnvironmentConfig `json:"environments"`
}
