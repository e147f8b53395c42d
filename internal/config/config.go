package config

import "time"

// RouterConfig is the root configuration document for the routing server.
type RouterConfig struct {
	APIVersion string     `yaml:"apiVersion" json:"apiVersion"`
	Kind       string     `yaml:"kind" json:"kind"`
	Metadata   Metadata   `yaml:"metadata" json:"metadata"`
	Spec       RouterSpec `yaml:"spec" json:"spec"`
}

// Metadata contains identifying information for the configuration.
type Metadata struct {
	Name        string            `yaml:"name" json:"name"`
	Labels      map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// RouterSpec contains the routing server specification.
type RouterSpec struct {
	Listener      ListenerConfig       `yaml:"listener" json:"listener"`
	Routes        []Route              `yaml:"routes" json:"routes"`
	Observability *ObservabilityConfig `yaml:"observability,omitempty" json:"observability,omitempty"`
}

// ListenerConfig defines the network listener configuration.
type ListenerConfig struct {
	// Address is the host:port to listen on.
	Address string `yaml:"address" json:"address"`

	ReadTimeout     Duration `yaml:"readTimeout,omitempty" json:"readTimeout,omitempty"`
	WriteTimeout    Duration `yaml:"writeTimeout,omitempty" json:"writeTimeout,omitempty"`
	IdleTimeout     Duration `yaml:"idleTimeout,omitempty" json:"idleTimeout,omitempty"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout,omitempty" json:"shutdownTimeout,omitempty"`
}

// ObservabilityConfig contains observability settings.
type ObservabilityConfig struct {
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty"`
	Tracing *TracingConfig `yaml:"tracing,omitempty" json:"tracing,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// TracingConfig contains tracing settings.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	Endpoint     string  `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	SamplingRate float64 `yaml:"samplingRate,omitempty" json:"samplingRate,omitempty"`
	ServiceName  string  `yaml:"serviceName,omitempty" json:"serviceName,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *RouterConfig {
	return &RouterConfig{
		APIVersion: "router.avarouter.io/v1",
		Kind:       "Router",
		Metadata: Metadata{
			Name: "avarouter",
		},
		Spec: RouterSpec{
			Listener: ListenerConfig{
				Address:         ":8080",
				ReadTimeout:     Duration(30 * time.Second),
				WriteTimeout:    Duration(30 * time.Second),
				IdleTimeout:     Duration(120 * time.Second),
				ShutdownTimeout: Duration(30 * time.Second),
			},
			Observability: &ObservabilityConfig{
				Logging: &LoggingConfig{
					Level:  "info",
					Format: "json",
					Output: "stdout",
				},
				Metrics: &MetricsConfig{
					Enabled: true,
					Address: ":9091",
					Path:    "/metrics",
				},
			},
		},
	}
}
