package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/ports"
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// Factory builds the state of a new session.
type Factory[T any] func(ctx context.Context, sessionID string) (T, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager[T any] struct {
	factory Factory[T]

	mu       sync.Mutex            // Global lock for the maps
	locks    map[string]*lockEntry // Map of active locks
	sessions map[string]*entry[T]

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*options)

type options struct {
	locker  ports.DistributedLocker
	lockTTL time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(o *options) {
		o.locker = locker
	}
}

// WithLockTTL bounds how long a distributed lock is held (default: 30s).
func WithLockTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.lockTTL = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewManager creates a session manager that builds new sessions with factory.
func NewManager[T any](factory Factory[T], opts ...Option) *Manager[T] {
	o := options{
		lockTTL: 30 * time.Second,
		now:     time.Now,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[T]{
		factory:  factory,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*entry[T]),
		locker:   o.locker,
		lockTTL:  o.lockTTL,
		now:      o.now,
		logger:   o.logger,
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager[T]) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.locks[sessionID]
	if !exists {
		e = &lockEntry{}
		m.locks[sessionID] = e
	}
	e.refs++
	return e
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager[T]) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.locks[sessionID]
	if !exists {
		return
	}

	e.refs--
	if e.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

func (m *Manager[T]) lookup(sessionID string) (*entry[T], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if ok {
		e.lastSeen = m.now()
	}
	return e, ok
}

// Load returns an existing session.
func (m *Manager[T]) Load(ctx context.Context, sessionID string) (T, error) {
	var value T
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		e, ok := m.lookup(sessionID)
		if !ok {
			return fmt.Errorf("%q: %w", sessionID, ErrSessionNotFound)
		}
		value = e.value
		return nil
	})
	return value, err
}

// LoadOrStart returns the session, creating it first if needed.
// created reports whether the factory ran.
func (m *Manager[T]) LoadOrStart(ctx context.Context, sessionID string) (value T, created bool, err error) {
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if e, ok := m.lookup(sessionID); ok {
			value = e.value
			return nil
		}

		v, err := m.factory(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		m.mu.Lock()
		m.sessions[sessionID] = &entry[T]{value: v, lastSeen: m.now()}
		m.mu.Unlock()

		value, created = v, true
		return nil
	})
	return value, created, err
}

// Delete forgets the session.
func (m *Manager[T]) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.sessions, sessionID)
		return nil
	})
}

// List returns the IDs of live sessions.
func (m *Manager[T]) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Prune forgets sessions unused for longer than maxIdle and returns how many went.
func (m *Manager[T]) Prune(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if _, busy := m.locks[id]; busy {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager[T]) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	e := m.acquire(sessionID)
	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
