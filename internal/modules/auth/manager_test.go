package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockBackend — управляемый из теста бэкенд аутентификации
type mockBackend struct {
	mu       sync.Mutex
	current  *AuthUser
	signUpFn func(email, password string) (*AuthUser, error)
	signInFn func(email, password string) (*AuthUser, error)
	signOutE error
	getUserE error
	getUserD time.Duration // искусственная задержка разового fetch

	subs    map[int64]func(*AuthUser)
	nextSub int64
}

func newMockBackend() *mockBackend {
	return &mockBackend{subs: make(map[int64]func(*AuthUser))}
}

func (b *mockBackend) SignUp(_ context.Context, email, password string) (*AuthUser, error) {
	if b.signUpFn != nil {
		return b.signUpFn(email, password)
	}
	return &AuthUser{ID: "user-123", Email: email}, nil
}

func (b *mockBackend) SignInWithPassword(_ context.Context, email, password string) (*AuthUser, error) {
	if b.signInFn != nil {
		return b.signInFn(email, password)
	}
	return &AuthUser{ID: "user-123", Email: email}, nil
}

func (b *mockBackend) SignOut(_ context.Context) error {
	return b.signOutE
}

func (b *mockBackend) GetUser(_ context.Context) (*AuthUser, error) {
	if b.getUserD > 0 {
		time.Sleep(b.getUserD)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.getUserE
}

func (b *mockBackend) OnAuthStateChange(cb func(*AuthUser)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSub++
	id := b.nextSub
	b.subs[id] = cb
	return &mockSubscription{backend: b, id: id}
}

func (b *mockBackend) emit(user *AuthUser) {
	b.mu.Lock()
	b.current = user
	cbs := make([]func(*AuthUser), 0, len(b.subs))
	for _, cb := range b.subs {
		cbs = append(cbs, cb)
	}
	b.mu.Unlock()
	for _, cb := range cbs {
		cb(user)
	}
}

type mockSubscription struct {
	backend *mockBackend
	id      int64
}

func (s *mockSubscription) Unsubscribe() {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	delete(s.backend.subs, s.id)
}

func TestManager_Activate_FetchFillsStore(t *testing.T) {
	backend := newMockBackend()
	backend.current = &AuthUser{ID: "user-123", Email: "test@example.com"}
	store := NewStore()
	manager := NewManager(backend, store)

	assert.True(t, store.Loading())

	manager.Activate(context.Background())
	defer manager.Deactivate()

	assert.Eventually(t, func() bool {
		u := store.User()
		return u != nil && u.ID == "user-123" && !store.Loading()
	}, time.Second, 5*time.Millisecond)
}

func TestManager_Activate_NoSession(t *testing.T) {
	backend := newMockBackend()
	store := NewStore()
	manager := NewManager(backend, store)

	manager.Activate(context.Background())
	defer manager.Deactivate()

	assert.Eventually(t, func() bool {
		return !store.Loading()
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, store.User())
}

func TestManager_Activate_FetchErrorStillClearsLoading(t *testing.T) {
	backend := newMockBackend()
	backend.getUserE = errors.New("network down")
	store := NewStore()
	manager := NewManager(backend, store)

	manager.Activate(context.Background())
	defer manager.Deactivate()

	// ошибка fetch не оставляет store в состоянии загрузки
	assert.Eventually(t, func() bool {
		return !store.Loading()
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, store.User())
}

func TestManager_EventDuringFetchWins(t *testing.T) {
	backend := newMockBackend()
	backend.getUserD = 50 * time.Millisecond
	store := NewStore()
	manager := NewManager(backend, store)

	manager.Activate(context.Background())
	defer manager.Deactivate()

	// событие приходит пока разовый fetch ещё спит; подписка оформлена
	// до запуска fetch, поэтому событие не теряется
	backend.emit(&AuthUser{ID: "user-123", Email: "test@example.com"})

	assert.Eventually(t, func() bool {
		u := store.User()
		return u != nil && u.ID == "user-123" && !store.Loading()
	}, time.Second, 5*time.Millisecond)

	// fetch догоняет с тем же пользователем; итог стабилен
	time.Sleep(80 * time.Millisecond)
	u := store.User()
	assert.NotNil(t, u)
	assert.Equal(t, "user-123", u.ID)
}

func TestManager_Deactivate_DropsLateFetch(t *testing.T) {
	backend := newMockBackend()
	backend.current = &AuthUser{ID: "user-123", Email: "test@example.com"}
	backend.getUserD = 50 * time.Millisecond
	store := NewStore()
	manager := NewManager(backend, store)

	manager.Activate(context.Background())
	manager.Deactivate()

	time.Sleep(100 * time.Millisecond)

	// результат fetch, завершившегося после деактивации, отброшен
	assert.Nil(t, store.User())
	assert.True(t, store.Loading())
}

func TestManager_Deactivate_IgnoresLateEvents(t *testing.T) {
	backend := newMockBackend()
	store := NewStore()
	manager := NewManager(backend, store)

	manager.Activate(context.Background())
	assert.Eventually(t, func() bool { return !store.Loading() }, time.Second, 5*time.Millisecond)

	manager.Deactivate()
	backend.emit(&AuthUser{ID: "user-123", Email: "test@example.com"})

	assert.Nil(t, store.User())
}

func TestManager_SignIn_Success(t *testing.T) {
	backend := newMockBackend()
	store := NewStore()
	manager := NewManager(backend, store)

	res := manager.SignIn(context.Background(), "test@example.com", "password123")

	assert.True(t, res.Success)
	assert.NotNil(t, res.User)
	assert.Equal(t, "user-123", res.User.ID)
	assert.Empty(t, res.Error)
	assert.Equal(t, "user-123", store.User().ID)
	assert.False(t, store.Loading())
}

func TestManager_SignIn_Failure(t *testing.T) {
	backend := newMockBackend()
	backend.signInFn = func(string, string) (*AuthUser, error) {
		return nil, ErrInvalidCredentials
	}
	store := NewStore()
	manager := NewManager(backend, store)

	res := manager.SignIn(context.Background(), "test@example.com", "wrong")

	assert.False(t, res.Success)
	assert.Nil(t, res.User)
	assert.Equal(t, ErrInvalidCredentials.Error(), res.Error)
	assert.Nil(t, store.User())
	assert.False(t, store.Loading())
}

func TestManager_SignIn_EmptyErrorMessageGetsFallback(t *testing.T) {
	backend := newMockBackend()
	backend.signInFn = func(string, string) (*AuthUser, error) {
		return nil, errors.New("")
	}
	store := NewStore()
	manager := NewManager(backend, store)

	res := manager.SignIn(context.Background(), "test@example.com", "password123")

	assert.False(t, res.Success)
	assert.Equal(t, "An error occurred during sign in", res.Error)
}

func TestManager_SignUp_EmptyErrorMessageGetsFallback(t *testing.T) {
	backend := newMockBackend()
	backend.signUpFn = func(string, string) (*AuthUser, error) {
		return nil, errors.New("")
	}
	store := NewStore()
	manager := NewManager(backend, store)

	res := manager.SignUp(context.Background(), "test@example.com", "password123")

	assert.False(t, res.Success)
	assert.Equal(t, "An error occurred during sign up", res.Error)
}

func TestManager_SignOut(t *testing.T) {
	backend := newMockBackend()
	store := NewStore()
	manager := NewManager(backend, store)

	manager.SignIn(context.Background(), "test@example.com", "password123")
	assert.NotNil(t, store.User())

	res := manager.SignOut(context.Background())

	assert.True(t, res.Success)
	assert.Nil(t, store.User())
	assert.False(t, store.Loading())
}

func TestManager_SignOut_Failure(t *testing.T) {
	backend := newMockBackend()
	backend.signOutE = errors.New("")
	store := NewStore()
	manager := NewManager(backend, store)

	res := manager.SignOut(context.Background())

	assert.False(t, res.Success)
	assert.Equal(t, "An error occurred during sign out", res.Error)
}
