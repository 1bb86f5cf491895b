package domain

import (
	"encoding/json"
	"time"
)

// Favorite представляет связь пользователя с избранным фильмом.
// MovieData хранит снимок фильма целиком, чтобы список избранного
// не зависел от доступности внешнего каталога.
type Favorite struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	UserID    string          `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_movie"`
	MovieID   int             `json:"movie_id" gorm:"not null;index;uniqueIndex:idx_user_movie"`
	MovieData json.RawMessage `json:"movie_data" gorm:"column:movie_data;type:jsonb"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName возвращает имя таблицы в БД
func (Favorite) TableName() string {
	return "favorites"
}

// Movie десериализует сохранённый снимок фильма
func (f *Favorite) Movie() (Movie, error) {
	var m Movie
	err := json.Unmarshal(f.MovieData, &m)
	return m, err
}
