package auth

import (
	"context"
	"sync"
)

// Manager управляет жизненным циклом сессии: при активации подписывается
// на поток смены сессии бэкенда и параллельно запрашивает текущую сессию.
// Любой из двух путей может первым заполнить Store; побеждает последняя
// запись. Операции SignUp/SignIn/SignOut нормализуют все сбои в AuthResult
// и никогда не возвращают ошибку вызывающему.
type Manager struct {
	backend Backend
	store   *Store

	mu     sync.Mutex
	active bool
	sub    Subscription
}

func NewManager(backend Backend, store *Store) *Manager {
	return &Manager{backend: backend, store: store}
}

// Activate подписывается на события бэкенда и запускает разовый запрос
// текущей сессии. Повторная активация — no-op.
func (m *Manager) Activate(ctx context.Context) {
	m.mu.Lock()
	if m.active {
		m.mu.Unlock()
		return
	}
	m.active = true

	// сначала подписка, затем разовый fetch: событие, пришедшее во время
	// fetch, не потеряется
	m.sub = m.backend.OnAuthStateChange(func(user *AuthUser) {
		if !m.isActive() {
			return
		}
		m.store.SetUser(user)
		m.store.SetLoading(false)
	})
	m.mu.Unlock()

	go m.fetchCurrent(ctx)
}

func (m *Manager) fetchCurrent(ctx context.Context) {
	user, err := m.backend.GetUser(ctx)
	if !m.isActive() {
		// менеджер деактивирован, результат запроса отбрасывается
		return
	}
	if err == nil {
		m.store.SetUser(user)
	}
	m.store.SetLoading(false)
}

// Deactivate отменяет подписку; результаты незавершённых запросов
// отбрасываются по флагу активности.
func (m *Manager) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	m.active = false
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
}

func (m *Manager) isActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) SignUp(ctx context.Context, email, password string) AuthResult {
	m.store.SetLoading(true)
	user, err := m.backend.SignUp(ctx, email, password)
	if err != nil {
		m.store.SetLoading(false)
		return AuthResult{Success: false, Error: errMessage(err, "An error occurred during sign up")}
	}
	m.store.SetUser(user)
	m.store.SetLoading(false)
	return AuthResult{Success: true, User: user}
}

func (m *Manager) SignIn(ctx context.Context, email, password string) AuthResult {
	m.store.SetLoading(true)
	user, err := m.backend.SignInWithPassword(ctx, email, password)
	if err != nil {
		m.store.SetLoading(false)
		return AuthResult{Success: false, Error: errMessage(err, "An error occurred during sign in")}
	}
	m.store.SetUser(user)
	m.store.SetLoading(false)
	return AuthResult{Success: true, User: user}
}

func (m *Manager) SignOut(ctx context.Context) AuthResult {
	m.store.SetLoading(true)
	err := m.backend.SignOut(ctx)
	if err != nil {
		m.store.SetLoading(false)
		return AuthResult{Success: false, Error: errMessage(err, "An error occurred during sign out")}
	}
	m.store.SetUser(nil)
	m.store.SetLoading(false)
	return AuthResult{Success: true}
}

// errMessage нормализует ошибку: пустое сообщение заменяется
// фиксированным текстом конкретной операции
func errMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
