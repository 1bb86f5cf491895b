// Package session держит серверные сессии пользователей: состояние
// аутентификации, кэш избранного и очередь уведомлений живут на сервере
// и создаются лениво при первом обращении по userID из токена.
package session

import (
	"context"
	"sync"

	"filmoteka/internal/domain"
	"filmoteka/internal/modules/auth"
	"filmoteka/internal/modules/favorites"
	"filmoteka/internal/modules/notification"
	"filmoteka/internal/modules/realtime"
)

// Session — всё состояние одного вошедшего пользователя
type Session struct {
	UserID    string
	Backend   *auth.SessionBackend
	Store     *auth.Store
	Manager   *auth.Manager
	Queue     *notification.Queue
	Favorites *favorites.Manager
}

// Registry создаёт и выдаёт сессии. Реализует узкие интерфейсы
// HTTP-слоёв: auth.SessionRegistry, favorites.SessionProvider,
// notification.QueueProvider и share.FavoritesSnapshotProvider.
type Registry struct {
	accounts *auth.Accounts
	favRepo  favorites.FavoriteStoreInterface
	hub      *realtime.Hub

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(accounts *auth.Accounts, favRepo favorites.FavoriteStoreInterface, hub *realtime.Hub) *Registry {
	return &Registry{
		accounts: accounts,
		favRepo:  favRepo,
		hub:      hub,
		sessions: make(map[string]*Session),
	}
}

// newSession собирает сессию: бэкенд, store, менеджеры и очередь,
// связанные подписками. Изменения очереди и смена личности уходят
// в realtime hub.
func (r *Registry) newSession() *Session {
	backend := auth.NewSessionBackend(r.accounts)
	store := auth.NewStore()
	queue := notification.NewQueue()

	s := &Session{
		Backend: backend,
		Store:   store,
		Manager: auth.NewManager(backend, store),
		Queue:   queue,
	}
	s.Favorites = favorites.NewManager(favorites.NewCache(), r.favRepo, queue, store)
	return s
}

// bind регистрирует сессию под userID и включает прокидывание событий
// в hub. Слот в реестре занимается под блокировкой: если другой запрос
// успел зарегистрировать сессию этого пользователя первым, свежесобранная
// сессия гасится и возвращается уже зарегистрированная — иначе два
// параллельных первых запроса разъехались бы по разным кэшам избранного.
func (r *Registry) bind(ctx context.Context, s *Session, userID string) *Session {
	r.mu.Lock()
	if existing, ok := r.sessions[userID]; ok {
		r.mu.Unlock()
		s.Manager.Deactivate()
		return existing
	}
	s.UserID = userID
	r.sessions[userID] = s
	r.mu.Unlock()

	s.Queue.SetListener(func(e notification.Event) {
		r.hub.Publish(userID, &realtime.Event{Type: string(e.Kind), Payload: e.Notification})
	})
	s.Store.Subscribe(func(user *auth.AuthUser) {
		r.hub.Publish(userID, &realtime.Event{Type: realtime.EventAuthState, Payload: user})
	})

	// подписка живёт дольше HTTP-запроса, создавшего сессию
	s.Favorites.Activate(context.WithoutCancel(ctx))

	return s
}

// GetOrCreate возвращает сессию пользователя, при необходимости
// восстанавливая её по личности из валидного токена.
func (r *Registry) GetOrCreate(ctx context.Context, userID string) (*Session, error) {
	r.mu.Lock()
	if s, ok := r.sessions[userID]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	user, err := r.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s := r.newSession()
	s.Manager.Activate(ctx)
	// восстановление по токену: личность известна, пароль не нужен
	s.Backend.Restore(user)
	return r.bind(ctx, s, userID), nil
}

// SignUp создаёт аккаунт в свежей сессии; при успехе сессия
// регистрируется под новым userID.
func (r *Registry) SignUp(ctx context.Context, email, password string) auth.AuthResult {
	s := r.newSession()
	s.Manager.Activate(ctx)

	res := s.Manager.SignUp(ctx, email, password)
	if res.Success {
		r.bind(ctx, s, res.User.ID)
	} else {
		s.Manager.Deactivate()
	}
	return res
}

// SignIn аутентифицирует пользователя; существующая сессия этого
// userID переиспользуется, иначе регистрируется новая.
func (r *Registry) SignIn(ctx context.Context, email, password string) auth.AuthResult {
	s := r.newSession()
	s.Manager.Activate(ctx)

	res := s.Manager.SignIn(ctx, email, password)
	if !res.Success {
		s.Manager.Deactivate()
		return res
	}

	if bound := r.bind(ctx, s, res.User.ID); bound != s {
		// вторая вкладка того же пользователя: состояние общее
		bound.Backend.Restore(res.User)
	}
	return res
}

// SignOut завершает сессию: отписки, отмена таймеров, удаление из реестра
func (r *Registry) SignOut(ctx context.Context, userID string) auth.AuthResult {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	if ok {
		delete(r.sessions, userID)
	}
	r.mu.Unlock()

	if !ok {
		return auth.AuthResult{Success: true}
	}

	res := s.Manager.SignOut(ctx)
	s.Favorites.Deactivate()
	s.Manager.Deactivate()
	s.Queue.Clear()
	return res
}

// CurrentUser возвращает личность сессии
func (r *Registry) CurrentUser(ctx context.Context, userID string) (*auth.AuthUser, error) {
	s, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Backend.GetUser(ctx)
}

// FavoritesManager реализует favorites.SessionProvider
func (r *Registry) FavoritesManager(ctx context.Context, userID string) (*favorites.Manager, error) {
	s, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Favorites, nil
}

// FavoritesSnapshot реализует share.FavoritesSnapshotProvider
func (r *Registry) FavoritesSnapshot(ctx context.Context, userID string) ([]domain.Movie, error) {
	s, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Favorites.List(), nil
}

// NotificationQueue реализует notification.QueueProvider
func (r *Registry) NotificationQueue(ctx context.Context, userID string) (*notification.Queue, error) {
	s, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Queue, nil
}
