package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"filmoteka/internal/domain"

	"gorm.io/gorm"
)

// FavoriteRepository хранит избранное как строки user_id+movie_id со
// снимком данных фильма в movie_data
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add добавляет фильм в избранное пользователя.
// Существующая строка с той же парой user_id+movie_id не трогается —
// check-then-insert, повторное добавление не ошибка.
func (r *FavoriteRepository) Add(ctx context.Context, userID string, movie domain.Movie) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND movie_id = ?", userID, movie.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := json.Marshal(movie)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&domain.Favorite{
		UserID:    userID,
		MovieID:   movie.ID,
		MovieData: data,
	}).Error
}

// Remove удаляет фильм из избранного; отсутствие строки не ошибка
func (r *FavoriteRepository) Remove(ctx context.Context, userID string, movieID int) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&domain.Favorite{}).Error
}

// ListByUser возвращает избранное пользователя в порядке добавления
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Movie, error) {
	var rows []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	movies := make([]domain.Movie, 0, len(rows))
	for _, row := range rows {
		movie, err := row.Movie()
		if err != nil {
			log.Printf("level=error msg=\"favorite row decode failed\" user_id=%s movie_id=%d err=%q", userID, row.MovieID, err)
			continue
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// IsFavorited сообщает, есть ли фильм в избранном пользователя.
// Отсутствие строки — тихое false; любая другая ошибка хранилища
// логируется и тоже разрешается в false.
func (r *FavoriteRepository) IsFavorited(ctx context.Context, userID string, movieID int) bool {
	var row domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("level=error msg=\"favorite lookup failed\" user_id=%s movie_id=%d err=%q", userID, movieID, err)
		}
		return false
	}
	return true
}
