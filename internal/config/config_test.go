package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[crm]
url = "http://crm.local"
service_id = "S"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Pool.TotalLanes)
	assert.Equal(t, 12, cfg.Pool.LaneCapacity)
	assert.Equal(t, 7, cfg.Pool.OpenHour)
	assert.Equal(t, 21, cfg.Pool.CloseHour)
	assert.Equal(t, 12, cfg.Pool.BreakHour)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, cfg.Pool.BreakWeekdays)
	assert.Equal(t, LaneModeAppointments, cfg.Pool.LaneMode)
	assert.Equal(t, SessionBackendMemory, cfg.Verification.Backend)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[crm]
url = "http://crm.local"
service_id = "S"
timeout = 5

[pool]
total_lanes = 6
lane_mode = "location"

[verification]
backend = "redis"

[database]
enabled = true
host = "db"
dbname = "pool"
user = "pool"
password = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5, cfg.CRM.Timeout)
	assert.Equal(t, 6, cfg.Pool.TotalLanes)
	assert.Equal(t, LaneModeLocation, cfg.Pool.LaneMode)
	assert.Equal(t, SessionBackendRedis, cfg.Verification.Backend)
	assert.Equal(t, "host=db port=5432 user=pool password=secret dbname=pool sslmode=disable", cfg.Database.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing crm url", mutate: func(c *Config) { c.CRM.URL = "" }},
		{name: "missing service id", mutate: func(c *Config) { c.CRM.ServiceID = "" }},
		{name: "zero lanes", mutate: func(c *Config) { c.Pool.TotalLanes = 0 }},
		{name: "zero capacity", mutate: func(c *Config) { c.Pool.LaneCapacity = 0 }},
		{name: "inverted hours", mutate: func(c *Config) { c.Pool.OpenHour, c.Pool.CloseHour = 21, 7 }},
		{name: "bad weekday", mutate: func(c *Config) { c.Pool.BreakWeekdays = []int{7} }},
		{name: "bad lane mode", mutate: func(c *Config) { c.Pool.LaneMode = "guess" }},
		{name: "bad lane pattern", mutate: func(c *Config) {
			c.Pool.LaneMode = LaneModeLocation
			c.Pool.LanePattern = "("
		}},
		{name: "bad backend", mutate: func(c *Config) { c.Verification.Backend = "etcd" }},
		{name: "bad timezone", mutate: func(c *Config) { c.Pool.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.CRM.URL = "http://crm.local"
			cfg.CRM.ServiceID = "S"
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
