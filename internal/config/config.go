package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Ruleset RulesetConfig `yaml:"ruleset" mapstructure:"ruleset"`
	Advisor AdvisorConfig `yaml:"advisor" mapstructure:"advisor"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// RulesetConfig selects the rule index backend. Driver is one of
// "memory", "sqlite", or "postgres". With the memory driver, DatasetPath
// optionally points at a YAML dataset; empty means the built-in records.
type RulesetConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatasetPath string `yaml:"dataset_path" mapstructure:"dataset_path"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AdvisorConfig configures the optional conversational narration layer.
type AdvisorConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	Key               string  `yaml:"key" mapstructure:"key"`
	Model             string  `yaml:"model" mapstructure:"model"`
	MaxTokens         int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ServerConfig configures the HTTP consultation endpoint.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// BatchConfig configures batch consultations.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml, ASRS_* environment
// variables, and defaults, in that order of precedence.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ASRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ruleset.driver", "memory")
	v.SetDefault("ruleset.sqlite_path", "rules.db")
	v.SetDefault("advisor.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("advisor.max_tokens", 1024)
	v.SetDefault("advisor.requests_per_second", 1.0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// Validate checks the configuration needed for the given run mode:
// "consult", "serve", "batch", or "dataset".
func (c *Config) Validate(mode string) error {
	var missing []string

	switch c.Ruleset.Driver {
	case "", "memory":
	case "sqlite":
		if c.Ruleset.SQLitePath == "" {
			missing = append(missing, "ruleset.sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if c.Ruleset.DatabaseURL == "" {
			missing = append(missing, "ruleset.database_url is required for the postgres driver")
		}
	default:
		missing = append(missing, fmt.Sprintf("unknown ruleset.driver %q", c.Ruleset.Driver))
	}

	if c.Advisor.Enabled && c.Advisor.Key == "" {
		missing = append(missing, "advisor.key is required when the advisor is enabled")
	}

	switch mode {
	case "consult", "dataset":
	case "serve":
		if c.Server.Port <= 0 {
			missing = append(missing, "server.port must be > 0")
		}
	case "batch":
		if c.Batch.MaxConcurrent < 1 || c.Batch.MaxConcurrent > 50 {
			missing = append(missing, "batch.max_concurrent must be between 1 and 50")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger builds the global zap logger from config.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
