package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chdirTemp moves into an empty temp dir so no config.yaml is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(512), cfg.Anthropic.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Anthropic.Temperature, 0.001)
	assert.InDelta(t, 1.0, cfg.Anthropic.RequestsPerSecond, 0.001)
	assert.Empty(t, cfg.Anthropic.Key)
	assert.Equal(t, 7, cfg.Scrape.TimeoutSecs)
	assert.Contains(t, cfg.Scrape.UserAgent, "Googlebot/2.1")
	assert.Equal(t, int64(2097152), cfg.Scrape.MaxBodyBytes)
	assert.Empty(t, cfg.Outreach.SalesGoal)
	assert.InDelta(t, 3.0, cfg.Notion.RateLimit, 0.001)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
anthropic:
  model: claude-sonnet-4-5-20250929
  requests_per_second: 0.5
  temperature: 0.2
outreach:
  sales_goal: fleet telematics
server:
  port: 9090
  allowed_origins:
    - https://app.example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.InDelta(t, 0.5, cfg.Anthropic.RequestsPerSecond, 0.001)
	assert.InDelta(t, 0.2, cfg.Anthropic.Temperature, 0.001)
	assert.Equal(t, "fleet telematics", cfg.Outreach.SalesGoal)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	// Defaults still apply for unset values
	assert.Equal(t, int64(512), cfg.Anthropic.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Anthropic.Temperature, 0.001)
	assert.Equal(t, 7, cfg.Scrape.TimeoutSecs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
anthropic:
  model: from-file
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("OUTREACH_LOG_LEVEL", "warn")
	t.Setenv("OUTREACH_ANTHROPIC_MODEL", "from-env")
	t.Setenv("OUTREACH_ANTHROPIC_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "from-env", cfg.Anthropic.Model)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("OUTREACH_SERVER_PORT", "3000")
	t.Setenv("OUTREACH_NOTION_TOKEN", "ntn_token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "ntn_token", cfg.Notion.Token)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Anthropic.MaxTokens = 512
	cfg.Anthropic.RequestsPerSecond = 1
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mode    string
		mutate  func(*Config)
		wantErr []string
	}{
		{name: "score needs nothing", mode: "score"},
		{
			name:    "openers requires key",
			mode:    "openers",
			wantErr: []string{"anthropic.key is required"},
		},
		{
			name:   "openers with key",
			mode:   "openers",
			mutate: func(c *Config) { c.Anthropic.Key = "sk-ant-key" },
		},
		{
			name:    "deepdive requires key",
			mode:    "deepdive",
			wantErr: []string{"anthropic.key is required"},
		},
		{
			name:    "subject requires key",
			mode:    "subject",
			wantErr: []string{"anthropic.key is required"},
		},
		{
			name:    "export requires notion",
			mode:    "export",
			wantErr: []string{"notion.token is required", "notion.lead_db is required"},
		},
		{
			name: "export with notion",
			mode: "export",
			mutate: func(c *Config) {
				c.Notion.Token = "ntn_token"
				c.Notion.LeadDB = "lead-db-id"
			},
		},
		{
			name:   "serve valid",
			mode:   "serve",
			mutate: func(c *Config) { c.Anthropic.Key = "sk-ant-key" },
		},
		{
			name: "serve invalid port",
			mode: "serve",
			mutate: func(c *Config) {
				c.Anthropic.Key = "sk-ant-key"
				c.Server.Port = 0
			},
			wantErr: []string{"server.port must be > 0"},
		},
		{
			name:    "max tokens",
			mode:    "score",
			mutate:  func(c *Config) { c.Anthropic.MaxTokens = 0 },
			wantErr: []string{"anthropic.max_tokens must be > 0"},
		},
		{
			name:    "temperature out of range",
			mode:    "score",
			mutate:  func(c *Config) { c.Anthropic.Temperature = 1.5 },
			wantErr: []string{"anthropic.temperature must be between 0 and 1"},
		},
		{
			name:    "negative rate",
			mode:    "score",
			mutate:  func(c *Config) { c.Anthropic.RequestsPerSecond = -1 },
			wantErr: []string{"requests_per_second must be >= 0"},
		},
		{name: "unknown mode", mode: "unknown", wantErr: []string{"unknown mode"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validDefaults()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate(tt.mode)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
