package blindx

import (
	"fmt"
	"time"

	"github.com/hengadev/errsx"

	"github.com/hengadev/blindx/internal/monitoring"
)

// Config holds the tunable parts of a Session.
//
// Nothing in Config is secret. Credentials, seeds and keys are only ever
// passed to Initialize.
//
// Example usage:
//
//	cfg := blindx.DefaultConfig()
//	cfg.InitTimeout = 5 * time.Second
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	session, err := blindx.NewSession(blindx.WithConfig(cfg))
type Config struct {
	// VerifyOrthonormality re-checks M·Mᵀ ≈ I after every matrix build and
	// fails initialization when the check does not hold. Default: true.
	VerifyOrthonormality bool `yaml:"verify_orthonormality"`

	// Tolerance is the largest accepted deviation from the identity during
	// verification. Default: 1e-9.
	Tolerance float64 `yaml:"tolerance"`

	// InitTimeout bounds how long Initialize waits for a derivation. Zero
	// means wait until the derivation finishes or the context is done.
	InitTimeout time.Duration `yaml:"init_timeout"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level"`

	// LogFormat is one of json, text, console. Default: json.
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		VerifyOrthonormality: true,
		Tolerance:            DefaultTolerance,
		LogLevel:             DefaultLogLevel,
		LogFormat:            DefaultLogFormat,
	}
}

// Validate checks every field and applies defaults to empty log settings.
// All problems are reported together as an errsx.Map keyed by field.
func (c *Config) Validate() error {
	errs := errsx.Map{}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}

	if c.Tolerance <= 0 || c.Tolerance >= 1e-3 {
		errs.Set("tolerance", fmt.Errorf("tolerance must be in (0, 1e-3), got %g", c.Tolerance))
	}
	if c.InitTimeout < 0 {
		errs.Set("init_timeout", fmt.Errorf("init timeout cannot be negative, got %s", c.InitTimeout))
	}
	if _, err := monitoring.ParseLogLevel(c.LogLevel); err != nil {
		errs.Set("log_level", err)
	}
	if _, err := monitoring.ParseLogFormat(c.LogFormat); err != nil {
		errs.Set("log_format", err)
	}

	return errs.AsError()
}

// loggerConfig converts the log settings of a validated Config.
func (c Config) loggerConfig() monitoring.LoggerConfig {
	level, _ := monitoring.ParseLogLevel(c.LogLevel)
	format, _ := monitoring.ParseLogFormat(c.LogFormat)
	return monitoring.LoggerConfig{
		Level:     level,
		Format:    format,
		Component: "blindx",
	}
}
