package auth

import (
	"context"
	"sync"
)

// SessionBackend — локальная реализация Backend, привязанная к одной
// пользовательской сессии. Хранит текущую личность и рассылает события
// смены сессии своим подписчикам; учётные данные делегирует Accounts.
type SessionBackend struct {
	accounts *Accounts

	mu      sync.Mutex
	current *AuthUser
	subs    map[int64]func(*AuthUser)
	nextSub int64
}

func NewSessionBackend(accounts *Accounts) *SessionBackend {
	return &SessionBackend{
		accounts: accounts,
		subs:     make(map[int64]func(*AuthUser)),
	}
}

func (b *SessionBackend) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	user, err := b.accounts.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	b.setCurrent(user)
	return user, nil
}

func (b *SessionBackend) SignInWithPassword(ctx context.Context, email, password string) (*AuthUser, error) {
	user, err := b.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	b.setCurrent(user)
	return user, nil
}

func (b *SessionBackend) SignOut(ctx context.Context) error {
	b.setCurrent(nil)
	return nil
}

func (b *SessionBackend) GetUser(ctx context.Context) (*AuthUser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, nil
}

func (b *SessionBackend) OnAuthStateChange(cb func(*AuthUser)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	b.subs[id] = cb

	return &backendSubscription{backend: b, id: id}
}

// Restore устанавливает текущую личность без обращения к учётным данным.
// Используется при восстановлении сессии по валидному токену.
func (b *SessionBackend) Restore(user *AuthUser) {
	b.setCurrent(user)
}

func (b *SessionBackend) setCurrent(user *AuthUser) {
	b.mu.Lock()
	b.current = user
	cbs := make([]func(*AuthUser), 0, len(b.subs))
	for _, cb := range b.subs {
		cbs = append(cbs, cb)
	}
	b.mu.Unlock()

	// подписчики вызываются вне блокировки
	for _, cb := range cbs {
		cb(user)
	}
}

type backendSubscription struct {
	backend *SessionBackend
	id      int64
	once    sync.Once
}

func (s *backendSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.backend.mu.Lock()
		delete(s.backend.subs, s.id)
		s.backend.mu.Unlock()
	})
}
