package auth

import "context"

// AuthUser — текущая аутентифицированная личность. Email может быть пустым,
// если бэкенд его не сообщил.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Subscription — отменяемая подписка на события смены сессии
type Subscription interface {
	Unsubscribe()
}

// Backend описывает бэкенд аутентификации на границе его интерфейса:
// регистрация, вход, выход, получение текущей сессии и поток её изменений.
// GetUser возвращает (nil, nil), если активной сессии нет.
type Backend interface {
	SignUp(ctx context.Context, email, password string) (*AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*AuthUser, error)
	SignOut(ctx context.Context) error
	GetUser(ctx context.Context) (*AuthUser, error)
	OnAuthStateChange(cb func(*AuthUser)) Subscription
}

// AuthResult — нормализованный результат операции аутентификации.
// Операции менеджера никогда не возвращают ошибку наружу: любой сбой
// превращается в {Success:false, Error:<текст>}.
type AuthResult struct {
	Success bool      `json:"success"`
	User    *AuthUser `json:"user,omitempty"`
	Error   string    `json:"error,omitempty"`
}
