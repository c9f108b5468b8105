package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearOTELEnv blanks every variable LoadConfig reads
func clearOTELEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OTEL_SERVICE_NAME",
		"OTEL_SERVICE_VERSION",
		"OTEL_DEPLOYMENT_ENVIRONMENT",
		"GO_ENV",
		"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
		"OTEL_TRACES_ENABLED",
		"OTEL_TRACES_SAMPLER",
		"OTEL_TRACES_SAMPLER_ARG",
		"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT",
		"OTEL_METRICS_ENABLED",
		"LOG_LEVEL",
		"LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOTELEnv(t)

	cfg := LoadConfig()

	assert.Equal(t, "media-gallery", cfg.ServiceName)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.TracesEnabled, "export is opt-in")
	assert.False(t, cfg.MetricsEnabled, "export is opt-in")
	assert.Equal(t, SamplerAlwaysOn, cfg.TracesSampler)
	assert.Equal(t, "1.0", cfg.TracesSamplerArg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	tests := []struct {
		name       string
		goEnv      string
		deployment string
		want       string
	}{
		{name: "GO_ENV feeds the environment", goEnv: "staging", want: "staging"},
		{name: "deployment variable wins", goEnv: "staging", deployment: "prod-eu", want: "prod-eu"},
		{name: "neither set", want: "development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOTELEnv(t)
			t.Setenv("GO_ENV", tt.goEnv)
			t.Setenv("OTEL_DEPLOYMENT_ENVIRONMENT", tt.deployment)

			assert.Equal(t, tt.want, LoadConfig().Environment)
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearOTELEnv(t)
	t.Setenv("OTEL_SERVICE_NAME", "gallery-edge")
	t.Setenv("OTEL_TRACES_ENABLED", "yes")
	t.Setenv("OTEL_METRICS_ENABLED", "1")
	t.Setenv("OTEL_TRACES_SAMPLER", SamplerParentBasedTraceIDRatio)
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg := LoadConfig()

	assert.Equal(t, "gallery-edge", cfg.ServiceName)
	assert.True(t, cfg.TracesEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, SamplerParentBasedTraceIDRatio, cfg.TracesSampler)
	assert.Equal(t, "0.25", cfg.TracesSamplerArg)
	require.NoError(t, cfg.Validate())
}

func TestValidateSampler_Ratios(t *testing.T) {
	tests := []struct {
		sampler string
		arg     string
		wantErr string
	}{
		{sampler: SamplerAlwaysOn, arg: ""},
		{sampler: SamplerAlwaysOff, arg: "not-a-number"},
		{sampler: SamplerParentBasedAlwaysOn},
		{sampler: SamplerParentBasedAlwaysOff},
		{sampler: SamplerTraceIDRatio, arg: "0"},
		{sampler: SamplerTraceIDRatio, arg: "1"},
		{sampler: SamplerParentBasedTraceIDRatio, arg: "0.05"},
		{sampler: SamplerTraceIDRatio, arg: "2", wantErr: "between 0 and 1"},
		{sampler: SamplerParentBasedTraceIDRatio, arg: "-0.5", wantErr: "between 0 and 1"},
		{sampler: SamplerTraceIDRatio, arg: "half", wantErr: "invalid sampler arg"},
		{sampler: "probabilistic", arg: "0.5", wantErr: "unknown sampler type"},
	}

	for _, tt := range tests {
		t.Run(tt.sampler+"/"+tt.arg, func(t *testing.T) {
			err := validateSampler(tt.sampler, tt.arg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		ServiceName:      "media-gallery",
		TracesEndpoint:   "http://collector:4318/v1/traces",
		TracesSampler:    SamplerAlwaysOn,
		TracesSamplerArg: "1.0",
		MetricsEndpoint:  "http://collector:4318/v1/metrics",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "everything disabled", mutate: func(c *Config) {}},
		{name: "both signals enabled", mutate: func(c *Config) { c.TracesEnabled, c.MetricsEnabled = true, true }},
		{name: "no service name", mutate: func(c *Config) { c.ServiceName = "" }, wantErr: "service name"},
		{
			name:    "traces without endpoint",
			mutate:  func(c *Config) { c.TracesEnabled, c.TracesEndpoint = true, "" },
			wantErr: "traces endpoint",
		},
		{
			name:    "metrics without endpoint",
			mutate:  func(c *Config) { c.MetricsEnabled, c.MetricsEndpoint = true, "" },
			wantErr: "metrics endpoint",
		},
		{
			name:    "bad sampler with traces enabled",
			mutate:  func(c *Config) { c.TracesEnabled, c.TracesSampler = true, "sometimes" },
			wantErr: "unknown sampler type",
		},
		{
			name:   "bad sampler ignored while traces are off",
			mutate: func(c *Config) { c.TracesSampler = "sometimes" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
