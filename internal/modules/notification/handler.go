package notification

import (
	"context"
	"net/http"

	"filmoteka/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// QueueProvider отдаёт очередь уведомлений серверной сессии пользователя
type QueueProvider interface {
	NotificationQueue(ctx context.Context, userID string) (*Queue, error)
}

// Handler manages all HTTP interactions for the notification queue
type Handler struct {
	sessions QueueProvider
}

func NewHandler(sessions QueueProvider) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.DELETE("/:id", h.Remove)
		notifications.DELETE("", h.Clear)
	}
}

func (h *Handler) queue(c *gin.Context) (*Queue, bool) {
	userID := c.GetString("user_id")
	queue, err := h.sessions.NotificationQueue(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "SESSION_NOT_FOUND", "Session is not available")
		return nil, false
	}
	return queue, true
}

// List возвращает активные уведомления в порядке добавления.
// @Summary		Список уведомлений
// @Tags		Уведомления
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Активные уведомления"
// @Router		/notifications [GET]
func (h *Handler) List(c *gin.Context) {
	queue, ok := h.queue(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": queue.List()})
}

// Remove снимает уведомление по id; отсутствующий id — не ошибка.
// @Summary		Снять уведомление
// @Tags		Уведомления
// @Security	BearerAuth
// @Param		id	path	string	true	"ID уведомления"
// @Success		204	"Уведомление снято"
// @Router		/notifications/{id} [DELETE]
func (h *Handler) Remove(c *gin.Context) {
	queue, ok := h.queue(c)
	if !ok {
		return
	}
	queue.Remove(c.Param("id"))
	response.NoContent(c)
}

// Clear снимает все уведомления.
// @Summary		Очистить уведомления
// @Tags		Уведомления
// @Security	BearerAuth
// @Success		204	"Очередь очищена"
// @Router		/notifications [DELETE]
func (h *Handler) Clear(c *gin.Context) {
	queue, ok := h.queue(c)
	if !ok {
		return
	}
	queue.Clear()
	response.NoContent(c)
}
