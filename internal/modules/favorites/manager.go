package favorites

import (
	"context"
	"fmt"
	"log"
	"sync"

	"filmoteka/internal/domain"
	"filmoteka/internal/modules/auth"
	"filmoteka/internal/modules/notification"
)

// запасное название для уведомления, когда фильма уже нет в кэше
const fallbackTitle = "Movie"

// Manager связывает кэш избранного с хранилищем и очередью уведомлений.
// Мутации оптимистичны: кэш меняется до записи в хранилище, при сбое
// выполняется компенсация — точная отмена для добавления, полная
// перезагрузка из хранилища для удаления.
type Manager struct {
	cache   *Cache
	repo    FavoriteStoreInterface
	queue   NotifierInterface
	session *auth.Store

	mu         sync.Mutex
	lastUserID string
	sub        auth.Subscription
}

func NewManager(cache *Cache, repo FavoriteStoreInterface, queue NotifierInterface, session *auth.Store) *Manager {
	return &Manager{
		cache:   cache,
		repo:    repo,
		queue:   queue,
		session: session,
	}
}

// Activate подписывается на смену пользователя: новая личность —
// перезагрузка кэша из хранилища, выход — очистка кэша.
func (m *Manager) Activate(ctx context.Context) {
	m.mu.Lock()
	if m.sub != nil {
		m.mu.Unlock()
		return
	}
	m.sub = m.session.Subscribe(func(user *auth.AuthUser) {
		m.onUserChange(ctx, user)
	})
	m.mu.Unlock()

	m.onUserChange(ctx, m.session.User())
}

func (m *Manager) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
}

// onUserChange перезагружает кэш только при смене личности:
// повторная запись того же пользователя не вызывает лишнего чтения
func (m *Manager) onUserChange(ctx context.Context, user *auth.AuthUser) {
	id := ""
	if user != nil {
		id = user.ID
	}

	m.mu.Lock()
	if id == m.lastUserID {
		m.mu.Unlock()
		return
	}
	m.lastUserID = id
	m.mu.Unlock()

	if id == "" {
		m.cache.Set(nil)
		return
	}
	m.reload(ctx, id)
}

func (m *Manager) reload(ctx context.Context, userID string) {
	movies, err := m.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("level=error msg=\"favorites reload failed\" user_id=%s err=%q", userID, err)
		return
	}
	m.cache.Set(movies)
}

// AddFavorite добавляет фильм в избранное. Без пользователя — no-op.
// Повторное добавление уже избранного фильма не пишет в хранилище
// и не создаёт второго уведомления.
func (m *Manager) AddFavorite(ctx context.Context, movie domain.Movie) {
	user := m.session.User()
	if user == nil {
		return
	}

	if !m.cache.Add(movie) {
		return
	}

	m.queue.Add(fmt.Sprintf("Added %q to favorites", movie.Title), notification.TypeSuccess, notification.DefaultDuration)

	if err := m.repo.Add(ctx, user.ID, movie); err != nil {
		// откат ровно той записи, которую добавили
		m.cache.Remove(movie.ID)
		m.queue.Add(fmt.Sprintf("Failed to add %q to favorites", movie.Title), notification.TypeError, notification.DefaultDuration)
		log.Printf("level=error msg=\"favorite add failed\" user_id=%s movie_id=%d err=%q", user.ID, movie.ID, err)
	}
}

// RemoveFavorite удаляет фильм из избранного. Название для уведомления
// берётся из кэша до мутации; при сбое хранилища кэш перечитывается
// целиком — авторитетная сверка вместо точечной переустановки.
func (m *Manager) RemoveFavorite(ctx context.Context, movieID int) {
	user := m.session.User()
	if user == nil {
		return
	}

	title, ok := m.cache.TitleOf(movieID)
	if !ok {
		title = fallbackTitle
	}

	m.cache.Remove(movieID)
	m.queue.Add(fmt.Sprintf("Removed %q from favorites", title), notification.TypeSuccess, notification.DefaultDuration)

	if err := m.repo.Remove(ctx, user.ID, movieID); err != nil {
		m.reload(ctx, user.ID)
		m.queue.Add(fmt.Sprintf("Failed to remove %q from favorites", title), notification.TypeError, notification.DefaultDuration)
		log.Printf("level=error msg=\"favorite remove failed\" user_id=%s movie_id=%d err=%q", user.ID, movieID, err)
	}
}

// IsFavorite — чистая проверка по кэшу, без обращения к хранилищу
func (m *Manager) IsFavorite(movieID int) bool {
	return m.cache.Contains(movieID)
}

// List возвращает текущее содержимое кэша
func (m *Manager) List() []domain.Movie {
	return m.cache.List()
}

// Reload безусловно перечитывает избранное из хранилища.
// Без пользователя — no-op.
func (m *Manager) Reload(ctx context.Context) {
	user := m.session.User()
	if user == nil {
		return
	}
	m.reload(ctx, user.ID)
}
