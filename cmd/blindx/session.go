package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/hengadev/blindx"
)

const (
	envUsername        = "BLINDX_USERNAME"
	envPassword        = "BLINDX_PASSWORD"
	envSeed            = "BLINDX_SEED"
	envCredentialsHash = "BLINDX_CREDENTIALS_HASH"
)

// loadConfig resolves the configuration from --config, then --env-file,
// then the process environment, and applies the log flag overrides.
func (o *globalOptions) loadConfig() (blindx.Config, error) {
	var (
		cfg blindx.Config
		err error
	)
	switch {
	case o.configPath != "":
		cfg, err = blindx.LoadConfigFromFile(o.configPath)
	case o.envFile != "":
		cfg, err = blindx.LoadConfigFromDotEnv(o.envFile)
	default:
		cfg, err = blindx.LoadConfigFromEnvironment()
	}
	if err != nil {
		return blindx.Config{}, err
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return blindx.Config{}, fmt.Errorf("%w: %w", blindx.ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// newSession builds a session from the resolved configuration. The given
// hooks receive session events, plus a logging hook with --verbose.
func (o *globalOptions) newSession(cfg blindx.Config, hooks ...blindx.TraceHook) (*blindx.Session, *slog.Logger, error) {
	logger := blindx.NewLogger(cfg)
	if o.verbose {
		hooks = append(hooks, blindx.NewLoggingTraceHook(logger))
	}

	opts := []blindx.Option{blindx.WithConfig(cfg), blindx.WithLogger(logger)}
	if len(hooks) > 0 {
		opts = append(opts, blindx.WithTraceHook(blindx.NewCompositeTraceHook(hooks...)))
	}

	session, err := blindx.NewSession(opts...)
	if err != nil {
		return nil, nil, err
	}
	return session, logger, nil
}

// initialize derives the session material through whichever entry point
// the flags select.
func (o *globalOptions) initialize(ctx context.Context, session *blindx.Session) error {
	seed := firstNonEmpty(o.seed, os.Getenv(envSeed))
	if seed == "" {
		return errors.New("a seed is required: pass --seed or set " + envSeed)
	}

	if hash := firstNonEmpty(o.credentialsHash, os.Getenv(envCredentialsHash)); hash != "" {
		return session.InitializeWithCredentialsHash(ctx, hash, seed)
	}

	username := firstNonEmpty(o.username, os.Getenv(envUsername))
	if username == "" {
		return errors.New("a username is required: pass --username or set " + envUsername)
	}
	password, err := readPassword("Password for " + username + ": ")
	if err != nil {
		return err
	}
	return session.Initialize(ctx, username, password, seed)
}

// openSession loads configuration, builds a session and initializes it.
func (o *globalOptions) openSession(ctx context.Context) (*blindx.Session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	session, _, err := o.newSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := o.initialize(ctx, session); err != nil {
		session.Clear()
		return nil, err
	}
	return session, nil
}

// readPassword returns BLINDX_PASSWORD when set, otherwise prompts on the
// controlling terminal so stdin stays free for piped input.
func readPassword(prompt string) (string, error) {
	if p, ok := os.LookupEnv(envPassword); ok {
		return p, nil
	}

	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}
	tty, err := os.Open(ttyPath)
	if err != nil {
		return "", fmt.Errorf("no %s set and cannot open %s for a password prompt: %w", envPassword, ttyPath, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no %s set and %s is not a terminal", envPassword, ttyPath)
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
