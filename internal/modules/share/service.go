package share

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"log"
	"time"

	"filmoteka/internal/domain"

	"gorm.io/gorm"
)

const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	tokenLength   = 16
)

// SharedListStoreInterface — операции хранилища опубликованных списков
type SharedListStoreInterface interface {
	Create(ctx context.Context, list *domain.SharedList) error
	GetByToken(ctx context.Context, token string) (*domain.SharedList, error)
	DeleteByToken(ctx context.Context, token string) error
	ListByUser(ctx context.Context, userID string) ([]domain.SharedList, error)
}

// ShareResult — нормализованный результат создания ссылки
type ShareResult struct {
	Success    bool   `json:"success"`
	ShareToken string `json:"shareToken,omitempty"`
	ShareURL   string `json:"shareUrl,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ShareInfo — метаданные опубликованного списка без самого снимка
type ShareInfo struct {
	ShareToken string     `json:"shareToken"`
	ShareURL   string     `json:"shareUrl"`
	MovieCount int        `json:"movieCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// Service публикует снимки избранного по случайному токену.
// Уникальность токена не проверяется предварительно: пространство 62^16
// делает коллизию пренебрежимой, а уникальный индекс хранилища превращает
// невероятное совпадение в ошибку создания.
type Service struct {
	repo    SharedListStoreInterface
	baseURL string
}

func NewService(repo SharedListStoreInterface, baseURL string) *Service {
	return &Service{repo: repo, baseURL: baseURL}
}

// CreateShareLink создаёт неизменяемый снимок избранного и возвращает
// публичный URL с токеном. Все сбои нормализуются в ShareResult.
func (s *Service) CreateShareLink(ctx context.Context, userID string, favorites []domain.Movie, expiresAt *time.Time) ShareResult {
	if len(favorites) == 0 {
		return ShareResult{Success: false, Error: ErrEmptyFavorites.Error()}
	}

	data, err := json.Marshal(favorites)
	if err != nil {
		return ShareResult{Success: false, Error: err.Error()}
	}

	token, err := generateToken()
	if err != nil {
		return ShareResult{Success: false, Error: err.Error()}
	}

	list := &domain.SharedList{
		ShareToken:    token,
		UserID:        userID,
		FavoritesData: data,
		ExpiresAt:     expiresAt,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		log.Printf("level=error msg=\"share link create failed\" user_id=%s err=%q", userID, err)
		return ShareResult{Success: false, Error: err.Error()}
	}

	return ShareResult{Success: true, ShareToken: token, ShareURL: s.shareURL(token)}
}

// GetSharedList возвращает снимок по токену. Любой сбой — включая
// «не найдено», ошибку чтения и истёкший срок — схлопывается в nil.
func (s *Service) GetSharedList(ctx context.Context, token string) []domain.Movie {
	list, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("level=error msg=\"share link lookup failed\" token=%s err=%q", token, err)
		}
		return nil
	}

	if list.ExpiresAt != nil && list.ExpiresAt.Before(time.Now()) {
		return nil
	}

	movies, err := list.Favorites()
	if err != nil {
		log.Printf("level=error msg=\"share snapshot decode failed\" token=%s err=%q", token, err)
		return nil
	}
	return movies
}

// GetShareInfo возвращает метаданные ссылки без декодирования снимка целиком
func (s *Service) GetShareInfo(ctx context.Context, token string) (*ShareInfo, error) {
	list, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareLinkNotFound
		}
		return nil, err
	}

	movies, err := list.Favorites()
	if err != nil {
		return nil, err
	}

	return &ShareInfo{
		ShareToken: list.ShareToken,
		ShareURL:   s.shareURL(list.ShareToken),
		MovieCount: len(movies),
		CreatedAt:  list.CreatedAt,
		ExpiresAt:  list.ExpiresAt,
	}, nil
}

// DeleteShareLink удаляет ссылку; удалить можно только свою
func (s *Service) DeleteShareLink(ctx context.Context, userID, token string) error {
	list, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShareLinkNotFound
		}
		return err
	}
	if list.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteByToken(ctx, token)
}

// GetUserShareLinks возвращает ссылки пользователя, новые первыми
func (s *Service) GetUserShareLinks(ctx context.Context, userID string) ([]ShareInfo, error) {
	lists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]ShareInfo, 0, len(lists))
	for _, list := range lists {
		movies, err := list.Favorites()
		if err != nil {
			log.Printf("level=error msg=\"share snapshot decode failed\" token=%s err=%q", list.ShareToken, err)
			continue
		}
		infos = append(infos, ShareInfo{
			ShareToken: list.ShareToken,
			ShareURL:   s.shareURL(list.ShareToken),
			MovieCount: len(movies),
			CreatedAt:  list.CreatedAt,
			ExpiresAt:  list.ExpiresAt,
		})
	}
	return infos, nil
}

func (s *Service) shareURL(token string) string {
	return s.baseURL + "/shared/" + token
}

// generateToken выдаёт 16 символов из алфавита в 62 знака
func generateToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, tokenLength)
	for i, b := range buf {
		out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(out), nil
}
