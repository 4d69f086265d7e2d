package blindx

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hengadev/errsx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfigFromEnvironment builds a Config from BLINDX_* environment
// variables on top of DefaultConfig.
//
// Recognized variables:
//   - BLINDX_VERIFY_ORTHONORMALITY: true/false
//   - BLINDX_TOLERANCE: float, e.g. 1e-9
//   - BLINDX_INIT_TIMEOUT: duration, e.g. 5s
//   - BLINDX_LOG_LEVEL: debug, info, warn, error
//   - BLINDX_LOG_FORMAT: json, text, console
func LoadConfigFromEnvironment() (Config, error) {
	return loadConfig(os.LookupEnv)
}

// LoadConfigFromDotEnv reads BLINDX_* variables from the given .env file.
// Variables already present in the process environment take precedence
// over the file. The process environment itself is never modified.
func LoadConfigFromDotEnv(path string) (Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read env file: %w", err)
	}
	return loadConfig(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

// LoadConfigFromFile reads a YAML configuration file. Keys missing from the
// file keep their DefaultConfig values.
//
// Example file:
//
//	verify_orthonormality: true
//	tolerance: 1e-9
//	init_timeout: 10s
//	log_level: debug
//	log_format: console
func LoadConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse config file: %w", ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func loadConfig(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	errs := errsx.Map{}

	if v, ok := lookup(EnvVerifyOrthonormality); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Set(EnvVerifyOrthonormality, fmt.Errorf("must be a boolean, got %q", v))
		}
		cfg.VerifyOrthonormality = b
	}
	if v, ok := lookup(EnvTolerance); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs.Set(EnvTolerance, fmt.Errorf("must be a number, got %q", v))
		}
		cfg.Tolerance = f
	}
	if v, ok := lookup(EnvInitTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs.Set(EnvInitTimeout, fmt.Errorf("must be a duration, got %q", v))
		}
		cfg.InitTimeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}

	if err := errs.AsError(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}
