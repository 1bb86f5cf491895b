package favorites

import (
	"sync"

	"filmoteka/internal/domain"
)

// Cache — упорядоченный список избранных фильмов без дубликатов.
// Порядок вставки сохраняется; повторное добавление того же id — no-op.
// Владелец — Manager: он заменяет содержимое целиком при перезагрузке
// и мутирует точечно при add/remove.
type Cache struct {
	mu     sync.Mutex
	movies []domain.Movie
}

func NewCache() *Cache {
	return &Cache{}
}

// Add добавляет фильм в конец списка. Возвращает false, если фильм
// с таким id уже есть и вставка не произошла.
func (c *Cache) Add(movie domain.Movie) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.movies {
		if m.ID == movie.ID {
			return false
		}
	}
	c.movies = append(c.movies, movie)
	return true
}

// Remove удаляет фильм по id, сохраняя порядок остальных.
// Возвращает false, если id не найден.
func (c *Cache) Remove(movieID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, m := range c.movies {
		if m.ID == movieID {
			c.movies = append(c.movies[:i], c.movies[i+1:]...)
			return true
		}
	}
	return false
}

// Set заменяет содержимое кэша целиком
func (c *Cache) Set(movies []domain.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies = append([]domain.Movie(nil), movies...)
}

// List возвращает копию текущего списка
func (c *Cache) List() []domain.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Movie(nil), c.movies...)
}

// Contains — чистая проверка по кэшу, без I/O
func (c *Cache) Contains(movieID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// TitleOf возвращает название фильма из кэша и признак его наличия
func (c *Cache) TitleOf(movieID int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.movies {
		if m.ID == movieID {
			return m.Title, true
		}
	}
	return "", false
}

// Len возвращает количество фильмов в кэше
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.movies)
}
