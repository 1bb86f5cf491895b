package favorites

import (
	"context"

	"filmoteka/internal/domain"
	"filmoteka/internal/modules/notification"
)

// FavoriteStoreInterface — операции хранилища избранного, нужные менеджеру
type FavoriteStoreInterface interface {
	Add(ctx context.Context, userID string, movie domain.Movie) error
	Remove(ctx context.Context, userID string, movieID int) error
	ListByUser(ctx context.Context, userID string) ([]domain.Movie, error)
}

// FavoriteCheckerInterface — точечная проверка наличия в избранном
// по хранилищу, минуя кэш сессии
type FavoriteCheckerInterface interface {
	IsFavorited(ctx context.Context, userID string, movieID int) bool
}

// NotifierInterface — очередь уведомлений с точки зрения менеджера
type NotifierInterface interface {
	Add(message string, typ notification.Type, duration int) string
}
