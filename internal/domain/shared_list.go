package domain

import (
	"encoding/json"
	"time"
)

// SharedList — публичный снимок избранного, доступный по случайному токену.
// Запись неизменяема после создания: читается анонимно, может быть удалена.
type SharedList struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	ShareToken    string          `json:"share_token" gorm:"column:share_token;uniqueIndex;not null"`
	UserID        string          `json:"user_id" gorm:"column:user_id;index;not null"`
	FavoritesData json.RawMessage `json:"favorites_data" gorm:"column:favorites_data;type:jsonb"`
	CreatedAt     time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	ExpiresAt     *time.Time      `json:"expires_at" gorm:"column:expires_at"`
}

// TableName возвращает имя таблицы в БД
func (SharedList) TableName() string {
	return "shared_lists"
}

// Favorites десериализует снимок избранного
func (s *SharedList) Favorites() ([]Movie, error) {
	var movies []Movie
	err := json.Unmarshal(s.FavoritesData, &movies)
	return movies, err
}
