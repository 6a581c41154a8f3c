package config

import (
	"errors"
	"fmt"
	"strings"

	internal "github.com/ZanzyTHEbar/fibmemo/fibmemo"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file, environment variables or flags.
type Config struct {
	Sequence SequenceConfig `mapstructure:"sequence"`
	Driver   DriverConfig   `mapstructure:"driver"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// SequenceConfig selects the evaluator implementation.
type SequenceConfig struct {
	Arithmetic string `mapstructure:"arithmetic"` // "checked" (uint64, fails on overflow) or "big"
	Strategy   string `mapstructure:"strategy"`   // "recursive" or "iterative"
}

// DriverConfig controls which indices the host loop queries.
type DriverConfig struct {
	From        int  `mapstructure:"from"`        // First index queried
	To          int  `mapstructure:"to"`          // Last index queried, inclusive
	Interactive bool `mapstructure:"interactive"` // Read indices from stdin instead of sweeping
}

// LoggingConfig stores logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // zerolog level name
	Format string `mapstructure:"format"` // "console" or "json"
}

// MetricsConfig stores Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Addr      string `mapstructure:"addr"` // Listen address for /metrics, empty disables the server
}

var AppConfig Config

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"arithmetic":   "sequence.arithmetic",
	"strategy":     "sequence.strategy",
	"from":         "driver.from",
	"to":           "driver.to",
	"interactive":  "driver.interactive",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"metrics-addr": "metrics.addr",
}

// LoadConfig reads configuration from file, environment variables and flags.
// flags may be nil; only flags present in flagKeys are bound.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("sequence.arithmetic", internal.DefaultArithmetic)
	v.SetDefault("sequence.strategy", internal.DefaultStrategy)

	v.SetDefault("driver.from", internal.DefaultFrom)
	v.SetDefault("driver.to", internal.DefaultTo)
	v.SetDefault("driver.interactive", false)

	v.SetDefault("logging.level", internal.DefaultLogLevel)
	v.SetDefault("logging.format", internal.DefaultLogFormat)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", internal.DefaultMetricsNamespace)
	v.SetDefault("metrics.addr", "")

	v.SetEnvPrefix(internal.EnvPrefix)
	v.AutomaticEnv()
	// Replace dots with underscores in env var names e.g. driver.to becomes FIBMEMO_DRIVER_TO
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file in the search paths; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return &AppConfig, nil
}

// Validate checks option values that the evaluator and driver depend on.
func (c *Config) Validate() error {
	switch c.Sequence.Arithmetic {
	case "checked", "big":
	default:
		return fmt.Errorf("invalid sequence.arithmetic %q: want checked or big", c.Sequence.Arithmetic)
	}
	switch c.Sequence.Strategy {
	case "recursive", "iterative":
	default:
		return fmt.Errorf("invalid sequence.strategy %q: want recursive or iterative", c.Sequence.Strategy)
	}
	if c.Driver.From < 0 || c.Driver.To < 0 {
		return fmt.Errorf("invalid driver range %d..%d: indices must be non-negative", c.Driver.From, c.Driver.To)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q: want console or json", c.Logging.Format)
	}
	return nil
}
