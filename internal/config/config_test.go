package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.Matching.GracePeriod)
	assert.Equal(t, 30*time.Second, cfg.Matching.LockTTL)
	assert.False(t, cfg.Matching.Transactional)
	assert.Equal(t, "@every 15m", cfg.Lookup.RefreshSchedule)
	assert.Equal(t, lookup.DefaultCodes(), cfg.Codes)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "vacancy-matcher.yaml", `
port: 9090
database_url: postgres://localhost/vacancy
matching:
  grace_period: 336h
  transactional: true
codes:
  match_status_pending_approval: PENDING_APPROVAL
  language_requirements:
    various: VARIOUS
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/vacancy", cfg.DatabaseURL)
	assert.Equal(t, 14*24*time.Hour, cfg.Matching.GracePeriod)
	assert.True(t, cfg.Matching.Transactional)
	assert.Equal(t, "PENDING_APPROVAL", cfg.Codes.MatchStatusPendingApproval)
	assert.Equal(t, "VARIOUS", cfg.Codes.LanguageRequirements.Various)
	assert.Equal(t, "EE", cfg.Codes.LanguageRequirements.EnglishEssential, "unset codes keep defaults")
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{"port": 7000, "log": {"json": true}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VACANCY_PORT", "8181")
	t.Setenv("VACANCY_MATCHING_LOCK_TTL", "5s")
	t.Setenv("VACANCY_CODES_PROFILE_STATUS_APPROVED", "ACTIVE")
	t.Setenv("DATABASE_URL", "postgres://env/vacancy")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Matching.LockTTL)
	assert.Equal(t, "ACTIVE", cfg.Codes.ProfileStatusApproved)
	assert.Equal(t, "postgres://env/vacancy", cfg.DatabaseURL)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = 0 }, "Port"},
		{"negative grace period", func(c *Config) { c.Matching.GracePeriod = -time.Hour }, "GracePeriod"},
		{"missing code", func(c *Config) { c.Codes.MatchStatusPendingApproval = "" }, "MatchStatusPendingApproval"},
		{"serialize without redis", func(c *Config) { c.Matching.SerializeRuns = true }, "redis_url"},
		{"duplicate language code", func(c *Config) { c.Codes.LanguageRequirements.Various = "EE" }, "configured twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
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

func TestEngineOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Matching.Transactional = true

	opts := cfg.EngineOptions()
	assert.True(t, opts.Transactional)
	require.NotNil(t, opts.GracePeriod)
	assert.Equal(t, cfg.Matching.GracePeriod, *opts.GracePeriod)
	assert.Nil(t, opts.Locker)
}

func TestEngineOptions_ZeroGracePeriodIsKept(t *testing.T) {
	t.Setenv("VACANCY_MATCHING_GRACE_PERIOD", "0s")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Matching.GracePeriod)

	opts := cfg.EngineOptions()
	require.NotNil(t, opts.GracePeriod)
	assert.Equal(t, time.Duration(0), *opts.GracePeriod)
}

func TestLoad_RateLimit(t *testing.T) {
	path := writeConfig(t, "vacancy-matcher.yaml", `
rate_limit:
  requests_per_minute: 5
  whitelist: ["127.0.0.1"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.RateLimit.Whitelist)
}
