package domain

import "time"

// User — аккаунт пользователя. ID выдаётся бэкендом аутентификации (uuid).
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;column:id"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName возвращает имя таблицы в БД
func (User) TableName() string {
	return "users"
}
