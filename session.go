package blindx

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hengadev/blindx/internal/crypto"
	"github.com/hengadev/blindx/internal/matrix"
	"github.com/hengadev/blindx/internal/security"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// deriveFunc turns a pending seed hash into the session's matrix and key.
type deriveFunc func(ctx context.Context, seedHash func() (string, error)) (*matrix.Matrix, AEADKey, error)

// initCall is one in-flight derivation shared by every concurrent caller.
type initCall struct {
	done       chan struct{}
	err        error
	generation uint64
}

// Session holds the blinding matrix and AES key derived from one user's
// credentials and seed.
//
// A Session starts Uninitialized. Initialize or InitializeWithCredentialsHash
// moves it to Ready; Clear moves it back. It is safe for concurrent use.
type Session struct {
	id       string
	cfg      Config
	provider Provider
	hook     TraceHook
	logger   *slog.Logger
	derive   deriveFunc

	mu         sync.RWMutex
	state      State
	generation uint64
	inflight   *initCall
	matrix     *matrix.Matrix
	key        AEADKey
}

// NewSession creates an uninitialized session.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		id:       uuid.NewString(),
		cfg:      DefaultConfig(),
		provider: NewStdProvider(),
		hook:     NoOpTraceHook{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.logger == nil {
		s.logger = NewLogger(s.cfg)
	}
	s.logger = s.logger.With("session_id", s.id)
	s.derive = s.deriveKeys
	return s, nil
}

// ID returns the random identifier reported in trace events.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsReady reports whether the session can transform and encrypt.
func (s *Session) IsReady() bool {
	return s.State() == StateReady
}

// Initialize derives the session material from a username, password and
// six-digit seed.
//
// If a derivation is already running the call waits for it instead of
// starting another. If the session is already Ready it returns nil without
// re-deriving; call Clear first to switch users. Cancelling ctx only stops
// this caller from waiting.
func (s *Session) Initialize(ctx context.Context, username, password, seed string) error {
	if err := ValidateSeed(seed); err != nil {
		return err
	}
	return s.initialize(ctx, EntryPointCredentials, func() (string, error) {
		return seedHashFromCredentials(s.provider, username, password, seed)
	})
}

// InitializeWithCredentialsHash derives the session material from a
// precomputed 64-character hex credentials hash and a six-digit seed. It
// follows the same coalescing rules as Initialize.
func (s *Session) InitializeWithCredentialsHash(ctx context.Context, credentialsHash, seed string) error {
	if err := ValidateSeed(seed); err != nil {
		return err
	}
	if err := ValidateCredentialsHash(credentialsHash); err != nil {
		return err
	}
	return s.initialize(ctx, EntryPointCredentialsHash, func() (string, error) {
		return seedHashFromCredentialsHash(s.provider, credentialsHash, seed)
	})
}

func (s *Session) initialize(ctx context.Context, entryPoint string, seedHash func() (string, error)) error {
	s.mu.Lock()
	switch s.state {
	case StateReady:
		s.mu.Unlock()
		return nil
	case StateInitializing:
		call := s.inflight
		s.mu.Unlock()
		return s.wait(ctx, call)
	}

	call := &initCall{done: make(chan struct{}), generation: s.generation}
	s.inflight = call
	s.state = StateInitializing
	s.mu.Unlock()

	go s.run(context.WithoutCancel(ctx), call, entryPoint, seedHash)

	return s.wait(ctx, call)
}

// run performs the derivation and installs its result unless Clear was
// called in the meantime.
func (s *Session) run(ctx context.Context, call *initCall, entryPoint string, seedHash func() (string, error)) {
	metadata := map[string]any{
		"entry_point": entryPoint,
		"dimension":   Dimension,
	}
	start := time.Now()
	s.hook.OnInitializeStart(ctx, s.id, metadata)

	m, key, err := s.derive(ctx, seedHash)

	s.mu.Lock()
	switch {
	case call.generation != s.generation:
		s.mu.Unlock()
		destroy(m, key)
		err = fmt.Errorf("%w: session cleared during initialization", ErrNotInitialized)
	case err != nil:
		s.state = StateUninitialized
		s.inflight = nil
		s.mu.Unlock()
	default:
		s.matrix = m
		s.key = key
		s.state = StateReady
		s.inflight = nil
		s.mu.Unlock()
	}

	s.hook.OnInitializeComplete(ctx, s.id, time.Since(start), err, metadata)

	call.err = err
	close(call.done)
}

func (s *Session) wait(ctx context.Context, call *initCall) error {
	if s.cfg.InitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.InitTimeout)
		defer cancel()
	}
	select {
	case <-call.done:
		return call.err
	case <-ctx.Done():
		return fmt.Errorf("waiting for initialization: %w", ctx.Err())
	}
}

// deriveKeys chains the seed hash, builds and optionally verifies the
// matrix, then imports the AES key. The key always comes from the final seed
// hash, even when the matrix needed a reseed.
func (s *Session) deriveKeys(ctx context.Context, seedHash func() (string, error)) (*matrix.Matrix, AEADKey, error) {
	hash, err := seedHash()
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	m, attempt, err := matrix.Derive(Dimension, hash)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMatrixConstruction, err)
	}
	s.logger.DebugContext(ctx, "blinding matrix built", "dimension", Dimension, "reseeds", attempt, "duration", time.Since(start))

	if s.cfg.VerifyOrthonormality {
		if err := m.Verify(s.cfg.Tolerance); err != nil {
			m.Zero()
			return nil, nil, fmt.Errorf("%w: %w", ErrMatrixConstruction, err)
		}
	}

	raw, err := crypto.DeriveKeyMaterial(hash)
	if err != nil {
		m.Zero()
		return nil, nil, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	defer security.ZeroBytes(raw)

	key, err := s.provider.ImportAESKey(raw)
	if err != nil {
		m.Zero()
		return nil, nil, fmt.Errorf("%w: import key: %w", ErrEncryptionFailed, err)
	}
	return m, key, nil
}

// Clear zeroes the matrix, destroys the key and returns the session to
// Uninitialized. A derivation still running is discarded when it finishes.
func (s *Session) Clear() {
	s.mu.Lock()
	s.generation++
	destroy(s.matrix, s.key)
	s.matrix = nil
	s.key = nil
	s.inflight = nil
	s.state = StateUninitialized
	s.mu.Unlock()

	s.hook.OnClear(context.Background(), s.id)
}

func destroy(m *matrix.Matrix, key AEADKey) {
	if m != nil {
		m.Zero()
	}
	if key != nil {
		key.Destroy()
	}
}

// ready must be called with s.mu held.
func (s *Session) ready() error {
	if s.state != StateReady {
		return fmt.Errorf("%w: session is %s", ErrNotInitialized, s.state)
	}
	return nil
}
