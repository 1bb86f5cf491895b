package share

import (
	"context"
	"errors"
	"net/http"
	"time"

	"filmoteka/internal/domain"
	"filmoteka/internal/pkg/response"
	"filmoteka/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// FavoritesSnapshotProvider отдаёт текущее избранное серверной сессии
type FavoritesSnapshotProvider interface {
	FavoritesSnapshot(ctx context.Context, userID string) ([]domain.Movie, error)
}

// Handler manages all HTTP interactions for shared favorites lists
type Handler struct {
	service  *Service
	sessions FavoritesSnapshotProvider
}

func NewHandler(service *Service, sessions FavoritesSnapshotProvider) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/shared/:token", h.GetShared)
	v1.GET("/shared/:token/info", h.GetSharedInfo)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	shareGroup := protected.Group("/share")
	{
		shareGroup.POST("", h.Create)
		shareGroup.GET("", h.ListMine)
		shareGroup.DELETE("/:token", h.Delete)
	}
}

// Create публикует снимок текущего избранного.
// @Summary		Создать публичную ссылку на избранное
// @Description	Снимок избранного берётся из серверной сессии на момент запроса; последующие изменения списка на снимок не влияют.
// @Tags		Публикация
// @Security	BearerAuth
// @Param		request	body	CreateShareRequest	false	"Параметры публикации"
// @Success		201	{object}		map[string]interface{} "Ссылка создана"
// @Failure		400	{object}		map[string]interface{} "Пустой список избранного или неверные параметры"
// @Router		/share [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateShareRequest
	// тело запроса опционально: пустое тело означает бессрочную ссылку
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid share parameters", fields)
		return
	}

	userID := c.GetString("user_id")
	favorites, err := h.sessions.FavoritesSnapshot(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "SESSION_NOT_FOUND", "Session is not available")
		return
	}

	var expiresAt *time.Time
	if req.ExpiresInDays != nil {
		t := time.Now().AddDate(0, 0, *req.ExpiresInDays)
		expiresAt = &t
	}

	res := h.service.CreateShareLink(c.Request.Context(), userID, favorites, expiresAt)
	if !res.Success {
		if res.Error == ErrEmptyFavorites.Error() {
			response.Error(c, http.StatusBadRequest, "EMPTY_FAVORITES", "Favorites list is empty")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SHARE_FAILED", res.Error)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// GetShared возвращает опубликованный снимок; аутентификация не требуется.
// @Summary		Получить опубликованный список
// @Tags		Публикация
// @Param		token	path	string	true	"Токен ссылки"
// @Success		200	{object}		map[string]interface{} "Снимок избранного"
// @Failure		404	{object}		map[string]interface{} "Ссылка не найдена или истекла"
// @Router		/shared/{token} [GET]
func (h *Handler) GetShared(c *gin.Context) {
	movies := h.service.GetSharedList(c.Request.Context(), c.Param("token"))
	if movies == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Shared list not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": movies})
}

// GetSharedInfo возвращает метаданные опубликованной ссылки.
// @Summary		Метаданные опубликованной ссылки
// @Tags		Публикация
// @Param		token	path	string	true	"Токен ссылки"
// @Success		200	{object}		map[string]interface{} "Метаданные ссылки"
// @Failure		404	{object}		map[string]interface{} "Ссылка не найдена"
// @Router		/shared/{token}/info [GET]
func (h *Handler) GetSharedInfo(c *gin.Context) {
	info, err := h.service.GetShareInfo(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, ErrShareLinkNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Shared list not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SHARE_FAILED", "Failed to load share link")
		return
	}
	response.Success(c, http.StatusOK, info)
}

// ListMine возвращает ссылки текущего пользователя.
// @Summary		Мои публичные ссылки
// @Tags		Публикация
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Список ссылок"
// @Router		/share [GET]
func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")

	infos, err := h.service.GetUserShareLinks(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SHARE_FAILED", "Failed to load share links")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"links": infos})
}

// Delete удаляет публичную ссылку текущего пользователя.
// @Summary		Удалить публичную ссылку
// @Tags		Публикация
// @Security	BearerAuth
// @Param		token	path	string	true	"Токен ссылки"
// @Success		204	"Ссылка удалена"
// @Failure		403	{object}		map[string]interface{} "Ссылка принадлежит другому пользователю"
// @Failure		404	{object}		map[string]interface{} "Ссылка не найдена"
// @Router		/share/{token} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	err := h.service.DeleteShareLink(c.Request.Context(), userID, c.Param("token"))
	switch {
	case errors.Is(err, ErrShareLinkNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Shared list not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Share link belongs to another user")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "SHARE_FAILED", "Failed to delete share link")
	default:
		response.NoContent(c)
	}
}
