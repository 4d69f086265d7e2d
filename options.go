package blindx

import (
	"fmt"
	"log/slog"
)

// Option configures a Session at construction time.
type Option func(s *Session) error

// WithConfig validates cfg and uses it for the session.
func WithConfig(cfg Config) Option {
	return func(s *Session) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		s.cfg = cfg
		return nil
	}
}

// WithProvider replaces the standard library crypto provider.
func WithProvider(provider Provider) Option {
	return func(s *Session) error {
		if provider == nil {
			return fmt.Errorf("%w: provider cannot be nil", ErrInvalidConfiguration)
		}
		s.provider = provider
		return nil
	}
}

// WithTraceHook sets the hook receiving lifecycle and operation events.
func WithTraceHook(hook TraceHook) Option {
	return func(s *Session) error {
		if hook == nil {
			return fmt.Errorf("%w: trace hook cannot be nil", ErrInvalidConfiguration)
		}
		s.hook = hook
		return nil
	}
}

// WithLogger sets the logger used for derivation diagnostics. Without it the
// session builds one from its Config log settings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			return fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfiguration)
		}
		s.logger = logger
		return nil
	}
}
