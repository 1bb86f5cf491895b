package repository

import (
	"context"

	"filmoteka/internal/domain"

	"gorm.io/gorm"
)

type SharedListRepository struct {
	db *gorm.DB
}

func NewSharedListRepository(db *gorm.DB) *SharedListRepository {
	return &SharedListRepository{db: db}
}

func (r *SharedListRepository) Create(ctx context.Context, list *domain.SharedList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *SharedListRepository) GetByToken(ctx context.Context, token string) (*domain.SharedList, error) {
	var list domain.SharedList
	tx := r.db.WithContext(ctx).Where("share_token = ?", token).First(&list)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &list, nil
}

func (r *SharedListRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("share_token = ?", token).
		Delete(&domain.SharedList{}).Error
}

// ListByUser возвращает ссылки пользователя, новые сверху
func (r *SharedListRepository) ListByUser(ctx context.Context, userID string) ([]domain.SharedList, error) {
	var lists []domain.SharedList
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

// DeleteExpired удаляет ссылки с истёкшим сроком; возвращает число удалённых
func (r *SharedListRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < CURRENT_TIMESTAMP").
		Delete(&domain.SharedList{})
	return tx.RowsAffected, tx.Error
}
