package account

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
)

// Listener is called after every mutation with copies of the previous and
// the new account (nil when absent).
type Listener func(prev, next *Account)

type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

type Store struct {
	persister Persister
	logger    logging.Logger
	key       string

	// writeMu serialises mutations together with their saves so documents
	// reach the persister in the order the transitions happened.
	writeMu sync.Mutex

	mu      sync.RWMutex
	account *Account

	subsMu    sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewStore builds a Store backed by p and restores any previously saved state.
func NewStore(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		logger:    logging.Discard(),
		key:       DefaultKey,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("store", s.key)

	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context) error {
	raw, err := s.persister.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}
	if raw == nil {
		s.logger.Debug(ctx, "no saved state")
		return nil
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		s.logger.Warn(ctx, "discarding unreadable saved state", "error", err)
		return nil
	}

	s.account = st.Account
	s.logger.Debug(ctx, "state restored", "logged_in", s.IsLoggedIn())
	return nil
}

// Key returns the identifier the state is persisted under.
func (s *Store) Key() string {
	return s.key
}

// Account returns a copy of the current account, or nil when logged out.
func (s *Store) Account() *Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account.clone()
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != nil && s.account.ID != ""
}

// State returns a snapshot of the raw state document.
func (s *Store) State() State {
	return State{Account: s.Account()}
}

// Set replaces the current account with a. No fields are merged and none
// are validated.
func (s *Store) Set(ctx context.Context, a Account) error {
	next := &a
	if err := s.transition(ctx, next); err != nil {
		return err
	}
	s.logger.Debug(ctx, "account set", "id", a.ID, "username", a.Username)
	return nil
}

// Clear logs the account out. Clearing an empty store is a no-op transition
// that is still persisted.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.transition(ctx, nil); err != nil {
		return err
	}
	s.logger.Debug(ctx, "account cleared")
	return nil
}

func (s *Store) transition(ctx context.Context, next *Account) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	prev := s.account
	s.account = next
	s.mu.Unlock()

	s.notify(prev, next)

	return s.save(ctx, State{Account: next})
}

func (s *Store) save(ctx context.Context, st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.persister.Set(ctx, s.key, raw); err != nil {
		s.logger.Error(ctx, "saving state failed", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Subscribe registers fn for every subsequent mutation. Listeners run
// synchronously on the mutating goroutine before the state is saved, in
// registration order, and must not call Set or Clear.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.listeners, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) notify(prev, next *Account) {
	s.subsMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	fns := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(prev.clone(), next.clone())
	}
}
