// Package auth holds the single authenticated identity of the process and
// persists it between runs.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"taskboard/internal/metrics"
	"taskboard/internal/models"
	"taskboard/internal/storage"
)

// DefaultLoginDelay is the artificial latency applied before checking
// credentials.
const DefaultLoginDelay = 800 * time.Millisecond

// Authenticator checks a pair of credentials.
type Authenticator interface {
	Authenticate(email, password string) (models.Identity, error)
}

// Store holds at most one identity.
type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	dir      Authenticator
	logger   *slog.Logger
	delay    time.Duration
	identity *models.Identity
	pending  atomic.Int32
}

// Option customizes a Store.
type Option func(*Store)

// WithDelay overrides the artificial login latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// NewStore builds an unauthenticated store. Call Initialize to restore a
// persisted session.
func NewStore(kv storage.KV, dir Authenticator, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, dir: dir, logger: logger, delay: DefaultLoginDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores the identity saved under storage.KeyUser. An unreadable
// value is removed and the store stays unauthenticated.
func (s *Store) Initialize(ctx context.Context) {
	var saved *models.Identity
	ok, err := storage.LoadJSON(ctx, s.kv, storage.KeyUser, &saved)
	if err != nil {
		s.logger.Warn("stored session unreadable, clearing", slog.String("error", err.Error()))
		if err := s.kv.Remove(ctx, storage.KeyUser); err != nil {
			s.logger.Warn("clear stored session failed", slog.String("error", err.Error()))
		}
		return
	}
	if !ok || saved == nil {
		return
	}

	s.mu.Lock()
	s.identity = saved
	s.mu.Unlock()
}

// Login waits for the configured delay, then checks the credentials. On
// success the identity replaces any current one and is persisted. Concurrent
// logins are not coordinated: the last one to succeed wins.
func (s *Store) Login(ctx context.Context, email, password string) (models.Identity, error) {
	s.pending.Add(1)
	defer s.pending.Add(-1)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return models.Identity{}, ctx.Err()
		case <-timer.C:
		}
	}

	identity, err := s.dir.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Info("login rejected", slog.String("email", email))
		}
		return models.Identity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
	metrics.StoreMutations.WithLabelValues("auth", "login").Inc()
	storage.PersistJSON(ctx, s.kv, storage.KeyUser, identity, s.logger)
	return identity, nil
}

// Logout clears the identity and its persisted copy.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	metrics.StoreMutations.WithLabelValues("auth", "logout").Inc()
	if err := s.kv.Remove(ctx, storage.KeyUser); err != nil {
		s.logger.Warn("remove stored session failed", slog.String("error", err.Error()))
	}
}

// Current returns the authenticated identity, if any.
func (s *Store) Current() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Authenticated reports whether an identity is held.
func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Pending is the number of logins still waiting on their delay or check.
func (s *Store) Pending() int {
	return int(s.pending.Load())
}
