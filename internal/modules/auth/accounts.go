package auth

import (
	"context"
	"errors"
	"strings"

	"filmoteka/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Accounts — хранилище аккаунтов локального бэкенда аутентификации.
// Таблица users совмещает учётные данные и публичную запись пользователя,
// поэтому «создать запись, если её ещё нет» сводится к check-then-insert
// при регистрации.
type Accounts struct {
	users UserRepositoryInterface
}

func NewAccounts(users UserRepositoryInterface) *Accounts {
	return &Accounts{users: users}
}

// SignUp создаёт новый аккаунт. Email уникален; повторная регистрация
// возвращает ErrEmailAlreadyExists без вставки.
func (a *Accounts) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	email = normalizeEmail(email)

	exists, err := a.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &AuthUser{ID: user.ID, Email: user.Email}, nil
}

// Authenticate проверяет пару email/пароль. Несуществующий email и
// неверный пароль неразличимы для вызывающего.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*AuthUser, error) {
	user, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthUser{ID: user.ID, Email: user.Email}, nil
}

// GetByID возвращает пользователя по идентификатору из токена
func (a *Accounts) GetByID(ctx context.Context, id string) (*AuthUser, error) {
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &AuthUser{ID: user.ID, Email: user.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
