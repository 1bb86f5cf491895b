package favorites

import (
	"context"
	"net/http"
	"strconv"

	"filmoteka/internal/domain"
	"filmoteka/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionProvider отдаёт менеджер избранного серверной сессии пользователя
type SessionProvider interface {
	FavoritesManager(ctx context.Context, userID string) (*Manager, error)
}

// Handler manages all HTTP interactions for the favorites list
type Handler struct {
	sessions SessionProvider
	checker  FavoriteCheckerInterface
}

func NewHandler(sessions SessionProvider, checker FavoriteCheckerInterface) *Handler {
	return &Handler{sessions: sessions, checker: checker}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	fav := protected.Group("/favorites")
	{
		fav.GET("", h.List)
		fav.POST("", h.Add)
		fav.DELETE("/:movieId", h.Remove)
		fav.GET("/:movieId/status", h.Status)
	}
}

func (h *Handler) manager(c *gin.Context) (*Manager, bool) {
	userID := c.GetString("user_id")
	manager, err := h.sessions.FavoritesManager(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "SESSION_NOT_FOUND", "Session is not available")
		return nil, false
	}
	return manager, true
}

// List возвращает избранное текущего пользователя.
// @Summary		Список избранного
// @Tags		Избранное
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Список избранных фильмов"
// @Router		/favorites [GET]
func (h *Handler) List(c *gin.Context) {
	manager, ok := h.manager(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": manager.List()})
}

// Add добавляет фильм в избранное.
// @Summary		Добавить фильм в избранное
// @Description	Кэш сессии обновляется до записи в хранилище; при сбое запись откатывается, пользователь получает уведомление об ошибке.
// @Tags		Избранное
// @Security	BearerAuth
// @Param		request	body	domain.Movie	true	"Фильм"
// @Success		200	{object}		map[string]interface{} "Фильм добавлен (или уже был в избранном)"
// @Failure		400	{object}		map[string]interface{} "Ошибка валидации"
// @Router		/favorites [POST]
func (h *Handler) Add(c *gin.Context) {
	var movie domain.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if movie.ID <= 0 || movie.Title == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Movie id and title are required")
		return
	}

	manager, ok := h.manager(c)
	if !ok {
		return
	}

	manager.AddFavorite(c.Request.Context(), movie)
	response.Success(c, http.StatusOK, gin.H{
		"favorited": manager.IsFavorite(movie.ID),
		"count":     len(manager.List()),
	})
}

// Remove удаляет фильм из избранного.
// @Summary		Удалить фильм из избранного
// @Tags		Избранное
// @Security	BearerAuth
// @Param		movieId	path	int	true	"ID фильма"
// @Success		200	{object}		map[string]interface{} "Фильм удалён"
// @Failure		400	{object}		map[string]interface{} "Неверный ID фильма"
// @Router		/favorites/{movieId} [DELETE]
func (h *Handler) Remove(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie id")
		return
	}

	manager, ok := h.manager(c)
	if !ok {
		return
	}

	manager.RemoveFavorite(c.Request.Context(), movieID)
	response.Success(c, http.StatusOK, gin.H{
		"favorited": manager.IsFavorite(movieID),
		"count":     len(manager.List()),
	})
}

// Status сообщает, находится ли фильм в избранном.
// @Summary		Проверить фильм в избранном
// @Description	Ответ читается напрямую из хранилища: он корректен и без прогретой сессии.
// @Tags		Избранное
// @Security	BearerAuth
// @Param		movieId	path	int	true	"ID фильма"
// @Success		200	{object}		map[string]interface{} "Признак наличия в избранном"
// @Router		/favorites/{movieId}/status [GET]
func (h *Handler) Status(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie id")
		return
	}

	userID := c.GetString("user_id")
	response.Success(c, http.StatusOK, gin.H{"favorited": h.checker.IsFavorited(c.Request.Context(), userID, movieID)})
}
