// Package config loads service configuration from a file, the environment and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/matching"
	"github.com/jonathan/vacancy-matching/internal/server/ratelimit"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. VACANCY_MATCHING_GRACE_PERIOD.
const EnvPrefix = "VACANCY"

// DefaultConfigName is searched for in the working directory when no file is given.
const DefaultConfigName = "vacancy-matcher"

// Config is the complete service configuration.
type Config struct {
	Port        int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`
	NATSURL     string `mapstructure:"nats_url"`

	Log       LogConfig        `mapstructure:"log"`
	Matching  MatchingConfig   `mapstructure:"matching"`
	Lookup    LookupConfig     `mapstructure:"lookup"`
	RateLimit ratelimit.Config `mapstructure:"rate_limit"`
	Codes     lookup.Codes     `mapstructure:"codes"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// MatchingConfig holds the engine's run options.
type MatchingConfig struct {
	GracePeriod   time.Duration `mapstructure:"grace_period" validate:"gte=0"`
	Transactional bool          `mapstructure:"transactional"`
	SerializeRuns bool          `mapstructure:"serialize_runs"`
	LockTTL       time.Duration `mapstructure:"lock_ttl" validate:"gt=0"`
}

// LookupConfig controls the reference data cache.
type LookupConfig struct {
	// RefreshSchedule is a cron spec; empty disables periodic refresh.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

var validate = validator.New()

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Port: 8080,
		Matching: MatchingConfig{
			GracePeriod: matching.DefaultGracePeriod,
			LockTTL:     matching.DefaultLockTTL,
		},
		Lookup:    LookupConfig{RefreshSchedule: "@every 15m"},
		RateLimit: ratelimit.DefaultConfig(),
		Codes:     lookup.DefaultCodes(),
	}
}

// Load reads configuration from path (JSON or YAML), then applies VACANCY_*
// environment overrides on top of the defaults. An empty path searches the
// working directory for DefaultConfigName and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// DATABASE_URL is honored without the prefix, as elsewhere in the tooling.
	if err := v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("port", d.Port)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("redis_url", d.RedisURL)
	v.SetDefault("nats_url", d.NATSURL)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("matching.grace_period", d.Matching.GracePeriod)
	v.SetDefault("matching.transactional", d.Matching.Transactional)
	v.SetDefault("matching.serialize_runs", d.Matching.SerializeRuns)
	v.SetDefault("matching.lock_ttl", d.Matching.LockTTL)
	v.SetDefault("lookup.refresh_schedule", d.Lookup.RefreshSchedule)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.requests_per_minute", d.RateLimit.RequestsPerMinute)
	v.SetDefault("rate_limit.burst", d.RateLimit.Burst)
	v.SetDefault("rate_limit.whitelist", d.RateLimit.Whitelist)
	v.SetDefault("rate_limit.idle_ttl", d.RateLimit.IdleTTL)

	c := d.Codes
	v.SetDefault("codes.profile_status_approved", c.ProfileStatusApproved)
	v.SetDefault("codes.match_status_pending_approval", c.MatchStatusPendingApproval)
	v.SetDefault("codes.language_requirements.bilingual_imperative", c.LanguageRequirements.BilingualImperative)
	v.SetDefault("codes.language_requirements.bilingual_non_imperative", c.LanguageRequirements.BilingualNonImperative)
	v.SetDefault("codes.language_requirements.english_essential", c.LanguageRequirements.EnglishEssential)
	v.SetDefault("codes.language_requirements.french_essential", c.LanguageRequirements.FrenchEssential)
	v.SetDefault("codes.language_requirements.either_or", c.LanguageRequirements.EitherOr)
	v.SetDefault("codes.language_requirements.various", c.LanguageRequirements.Various)
	v.SetDefault("codes.language_referral_types.bilingual", c.LanguageReferralTypes.Bilingual)
	v.SetDefault("codes.language_referral_types.english", c.LanguageReferralTypes.English)
	v.SetDefault("codes.language_referral_types.french", c.LanguageReferralTypes.French)
}

// Validate checks field rules and cross-field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Matching.SerializeRuns && c.RedisURL == "" {
		return fmt.Errorf("config error: 'matching.serialize_runs' requires 'redis_url'")
	}
	reqs := c.Codes.LanguageRequirements
	seen := make(map[string]bool, 6)
	for _, code := range []string{
		reqs.BilingualImperative, reqs.BilingualNonImperative, reqs.EnglishEssential,
		reqs.FrenchEssential, reqs.EitherOr, reqs.Various,
	} {
		if seen[code] {
			return fmt.Errorf("config error: language requirement code %q is configured twice", code)
		}
		seen[code] = true
	}
	return nil
}

// EngineOptions maps the matching section onto engine options. Collaborators
// (locker, publisher, lookup, logger) are wired by the caller.
func (c *Config) EngineOptions() matching.Options {
	grace := c.Matching.GracePeriod
	return matching.Options{
		GracePeriod:   &grace,
		Transactional: c.Matching.Transactional,
		SerializeRuns: c.Matching.SerializeRuns,
		LockTTL:       c.Matching.LockTTL,
	}
}
