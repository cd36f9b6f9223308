package account

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersister struct {
	mu     sync.Mutex
	data   map[string][]byte
	sets   int
	getErr error
	setErr error
}

func newFakePersister() *fakePersister {
	return &fakePersister{data: make(map[string][]byte)}
}

func (f *fakePersister) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data[key], nil
}

func (f *fakePersister) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func newStore(t *testing.T, p Persister, opts ...Option) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), p, opts...)
	require.NoError(t, err)
	return s
}

func TestNewStore_StartsLoggedOut(t *testing.T) {
	s := newStore(t, newFakePersister())

	assert.Nil(t, s.Account())
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, State{}, s.State())
	assert.Equal(t, DefaultKey, s.Key())
}

func TestSet_WithID_LogsIn(t *testing.T) {
	accounts := []Account{
		{ID: "1", Username: "alice"},
		{ID: "b6f1c1c2-0d7e-4a55-9c1e-1f0b1d2e3f40", Username: ""},
		{ID: " ", Username: "space"},
	}
	for _, a := range accounts {
		s := newStore(t, newFakePersister())
		require.NoError(t, s.Set(context.Background(), a))

		require.NotNil(t, s.Account())
		assert.Equal(t, a, *s.Account())
		assert.True(t, s.IsLoggedIn())
	}
}

func TestSet_EmptyID_IsStoredButNotLoggedIn(t *testing.T) {
	s := newStore(t, newFakePersister())
	a := Account{ID: "", Username: "ghost"}

	require.NoError(t, s.Set(context.Background(), a))

	require.NotNil(t, s.Account())
	assert.Equal(t, a, *s.Account())
	assert.False(t, s.IsLoggedIn())
}

func TestSet_OverwritesWithoutMerge(t *testing.T) {
	s := newStore(t, newFakePersister())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Account{ID: "1", Username: "alice"}))
	require.NoError(t, s.Set(ctx, Account{ID: "2"}))

	assert.Equal(t, &Account{ID: "2"}, s.Account())
}

func TestClear_FromAnyState(t *testing.T) {
	ctx := context.Background()
	prior := []*Account{nil, {ID: "1", Username: "alice"}, {Username: "no-id"}}

	for _, a := range prior {
		s := newStore(t, newFakePersister())
		if a != nil {
			require.NoError(t, s.Set(ctx, *a))
		}
		require.NoError(t, s.Clear(ctx))

		assert.Nil(t, s.Account())
		assert.False(t, s.IsLoggedIn())
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	p := newFakePersister()
	s := newStore(t, p)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Account{ID: "1", Username: "alice"}))
	require.NoError(t, s.Clear(ctx))
	once := s.State()
	onceDoc := string(p.data[DefaultKey])

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, once, s.State())
	assert.Equal(t, onceDoc, string(p.data[DefaultKey]))
}

func TestAccount_ReturnsCopy(t *testing.T) {
	s := newStore(t, newFakePersister())
	require.NoError(t, s.Set(context.Background(), Account{ID: "1", Username: "alice"}))

	got := s.Account()
	got.Username = "mallory"

	assert.Equal(t, "alice", s.Account().Username)
}

func TestMutations_PersistStateDocument(t *testing.T) {
	p := newFakePersister()
	s := newStore(t, p)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Account{ID: "42", Username: "alice"}))
	assert.JSONEq(t, `{"account":{"id":"42","username":"alice"}}`, string(p.data[DefaultKey]))

	require.NoError(t, s.Clear(ctx))
	assert.JSONEq(t, `{"account":null}`, string(p.data[DefaultKey]))
	assert.Equal(t, 2, p.sets)
}

func TestWithKey_UsesCustomKey(t *testing.T) {
	p := newFakePersister()
	s := newStore(t, p, WithKey("profile"))

	require.NoError(t, s.Set(context.Background(), Account{ID: "1"}))

	assert.Equal(t, "profile", s.Key())
	assert.Contains(t, p.data, "profile")
	assert.NotContains(t, p.data, DefaultKey)
}

func TestRestart_RestoresSavedAccount(t *testing.T) {
	p := newFakePersister()
	ctx := context.Background()
	a := Account{ID: "7", Username: "bob"}

	first := newStore(t, p)
	require.NoError(t, first.Set(ctx, a))

	second := newStore(t, p)
	assert.Equal(t, &a, second.Account())
	assert.True(t, second.IsLoggedIn())
}

func TestRestart_AfterClear_StaysLoggedOut(t *testing.T) {
	p := newFakePersister()
	ctx := context.Background()

	first := newStore(t, p)
	require.NoError(t, first.Set(ctx, Account{ID: "7", Username: "bob"}))
	require.NoError(t, first.Clear(ctx))

	second := newStore(t, p)
	assert.Nil(t, second.Account())
}

func TestNewStore_CorruptDocument_StartsLoggedOut(t *testing.T) {
	p := newFakePersister()
	p.data[DefaultKey] = []byte("{not json")

	s := newStore(t, p)
	assert.Nil(t, s.Account())
	assert.False(t, s.IsLoggedIn())
}

func TestNewStore_PersisterError_WrapsErrRestore(t *testing.T) {
	p := newFakePersister()
	p.getErr = errors.New("disk gone")

	s, err := NewStore(context.Background(), p)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrRestore)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestSet_PersistError_StateStillChanges(t *testing.T) {
	p := newFakePersister()
	s := newStore(t, p)
	p.setErr = errors.New("read-only")
	ctx := context.Background()

	err := s.Set(ctx, Account{ID: "1", Username: "alice"})
	require.ErrorIs(t, err, ErrPersist)
	assert.True(t, s.IsLoggedIn())

	err = s.Clear(ctx)
	require.ErrorIs(t, err, ErrPersist)
	assert.False(t, s.IsLoggedIn())
}

func TestSubscribe_ReceivesTransitions(t *testing.T) {
	s := newStore(t, newFakePersister())
	ctx := context.Background()

	type change struct{ prev, next *Account }
	var got []change
	unsubscribe := s.Subscribe(func(prev, next *Account) {
		got = append(got, change{prev, next})
	})

	alice := Account{ID: "1", Username: "alice"}
	require.NoError(t, s.Set(ctx, alice))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Set(ctx, alice))

	require.Len(t, got, 3)
	assert.Equal(t, change{nil, &alice}, got[0])
	assert.Equal(t, change{&alice, nil}, got[1])
	assert.Equal(t, change{nil, nil}, got[2])
}

func TestSubscribe_RunsBeforeSave(t *testing.T) {
	p := newFakePersister()
	s := newStore(t, p)

	var setsSeen int
	s.Subscribe(func(_, _ *Account) {
		p.mu.Lock()
		setsSeen = p.sets
		p.mu.Unlock()
	})

	require.NoError(t, s.Set(context.Background(), Account{ID: "1"}))
	assert.Equal(t, 0, setsSeen)
	assert.Equal(t, 1, p.sets)
}

func TestStore_ConcurrentReadsDuringWrites(t *testing.T) {
	s := newStore(t, newFakePersister())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Set(ctx, Account{ID: "1", Username: "alice"})
				_ = s.Clear(ctx)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if a := s.Account(); a != nil {
					assert.Equal(t, "alice", a.Username)
				}
				_ = s.IsLoggedIn()
			}
		}()
	}
	wg.Wait()
}
