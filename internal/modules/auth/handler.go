package auth

import (
	"context"
	"net/http"

	"filmoteka/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionRegistry — часть реестра сессий, нужная HTTP-слою аутентификации
type SessionRegistry interface {
	SignUp(ctx context.Context, email, password string) AuthResult
	SignIn(ctx context.Context, email, password string) AuthResult
	SignOut(ctx context.Context, userID string) AuthResult
	CurrentUser(ctx context.Context, userID string) (*AuthUser, error)
}

type tokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	sessions SessionRegistry
	tokens   tokenIssuer
}

// NewHandler creates a new auth handler with injected dependencies
func NewHandler(sessions SessionRegistry, tokens tokenIssuer) *Handler {
	return &Handler{sessions: sessions, tokens: tokens}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/login", h.SignIn)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/logout", h.SignOut)
	protected.GET("/users/me", h.GetMe)
}

// SignUp регистрирует нового пользователя по email и паролю.
// @Summary		Зарегистрировать пользователя
// @Description	Создаёт новый аккаунт. Валидация (формат email, пароль от 6 символов) выполняется до обращения к бэкенду. Возвращает JWT токен для последующих запросов.
// @Tags		Аутентификация
// @Param		request	body	SignUpRequest	true	"Данные для регистрации (email, password)"
// @Success		201	{object}		map[string]interface{} "Пользователь зарегистрирован, возвращается JWT токен"
// @Failure		400	{object}		map[string]interface{} "Ошибка валидации: неверный формат данных"
// @Failure		409	{object}		map[string]interface{} "Ошибка: email уже зарегистрирован"
// @Router		/auth/signup [POST]
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res := h.sessions.SignUp(c.Request.Context(), req.Email, req.Password)
	if !res.Success {
		if res.Error == ErrEmailAlreadyExists.Error() {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", res.Error)
		return
	}

	token, err := h.tokens.GenerateToken(res.User.ID, res.User.Email)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "TOKEN_FAILED", "Failed to issue token")
		return
	}

	response.Success(c, http.StatusCreated, SessionResponse{User: res.User, Token: token})
}

// SignIn авторизует пользователя и выдаёт JWT токен.
// @Summary		Войти в аккаунт
// @Description	Авторизует пользователя по email и паролю. Возвращает JWT токен для защищённых эндпоинтов.
// @Tags		Аутентификация
// @Param		request	body	SignInRequest	true	"Учётные данные (email, password)"
// @Success		200	{object}		map[string]interface{} "Успешная авторизация, возвращается JWT токен"
// @Failure		400	{object}		map[string]interface{} "Ошибка валидации: неверный формат данных"
// @Failure		401	{object}		map[string]interface{} "Ошибка: неверный email или пароль"
// @Router		/auth/login [POST]
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if !res.Success {
		if res.Error == ErrInvalidCredentials.Error() {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", res.Error)
		return
	}

	token, err := h.tokens.GenerateToken(res.User.ID, res.User.Email)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "TOKEN_FAILED", "Failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, SessionResponse{User: res.User, Token: token})
}

// SignOut завершает сессию текущего пользователя.
// @Summary		Выйти из аккаунта
// @Description	Завершает серверную сессию пользователя: кэш избранного и очередь уведомлений освобождаются.
// @Tags		Аутентификация
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Сессия завершена"
// @Router		/auth/logout [POST]
func (h *Handler) SignOut(c *gin.Context) {
	userID := c.GetString("user_id")

	res := h.sessions.SignOut(c.Request.Context(), userID)
	if !res.Success {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", res.Error)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}

// GetMe возвращает профиль текущего пользователя.
// @Summary		Получить текущего пользователя
// @Tags		Аутентификация
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Текущий пользователь"
// @Failure		404	{object}		map[string]interface{} "Пользователь не найден"
// @Router		/users/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.sessions.CurrentUser(c.Request.Context(), userID)
	if err != nil || user == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
