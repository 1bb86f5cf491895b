package auth

import "sync"

// Store — контейнер состояния сессии: текущий AuthUser (или nil) и флаг
// загрузки. Начальное состояние — loading, пока менеджер не получит
// ответ бэкенда. Подписчики уведомляются о каждой записи пользователя.
type Store struct {
	mu      sync.Mutex
	user    *AuthUser
	loading bool
	subs    map[int64]func(*AuthUser)
	nextSub int64
}

func NewStore() *Store {
	return &Store{
		loading: true,
		subs:    make(map[int64]func(*AuthUser)),
	}
}

func (s *Store) User() *AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetUser заменяет текущую личность целиком и уведомляет подписчиков.
// Последняя запись выигрывает; иного порядка не гарантируется.
func (s *Store) SetUser(user *AuthUser) {
	s.mu.Lock()
	s.user = user
	cbs := make([]func(*AuthUser), 0, len(s.subs))
	for _, cb := range s.subs {
		cbs = append(cbs, cb)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(user)
	}
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Subscribe регистрирует обработчик смены пользователя. Возвращённую
// подписку нужно отменить при остановке подписчика, иначе обработчик
// продолжит получать записи в разобранное состояние.
func (s *Store) Subscribe(cb func(*AuthUser)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = cb

	return &storeSubscription{store: s, id: id}
}

type storeSubscription struct {
	store *Store
	id    int64
	once  sync.Once
}

func (s *storeSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.store.mu.Lock()
		delete(s.store.subs, s.id)
		s.store.mu.Unlock()
	})
}
