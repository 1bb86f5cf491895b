package catalog

import (
	"context"
	"net/http"
	"strconv"

	"filmoteka/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler проксирует запросы каталога фильмов
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	movies := v1.Group("/movies")
	{
		movies.GET("/popular", h.Popular)
		movies.GET("/top-rated", h.TopRated)
		movies.GET("/upcoming", h.Upcoming)
		movies.GET("/search", h.Search)
		movies.GET("/:id", h.Details)
	}
}

// Popular возвращает страницу популярных фильмов.
// @Summary		Популярные фильмы
// @Tags		Каталог
// @Param		page	query	int	false	"Номер страницы"
// @Success		200	{object}		map[string]interface{} "Страница результатов"
// @Router		/movies/popular [GET]
func (h *Handler) Popular(c *gin.Context) {
	h.servePage(c, h.client.GetPopular)
}

// TopRated возвращает страницу фильмов с наивысшим рейтингом.
// @Summary		Фильмы с наивысшим рейтингом
// @Tags		Каталог
// @Param		page	query	int	false	"Номер страницы"
// @Success		200	{object}		map[string]interface{} "Страница результатов"
// @Router		/movies/top-rated [GET]
func (h *Handler) TopRated(c *gin.Context) {
	h.servePage(c, h.client.GetTopRated)
}

// Upcoming возвращает страницу будущих премьер.
// @Summary		Будущие премьеры
// @Tags		Каталог
// @Param		page	query	int	false	"Номер страницы"
// @Success		200	{object}		map[string]interface{} "Страница результатов"
// @Router		/movies/upcoming [GET]
func (h *Handler) Upcoming(c *gin.Context) {
	h.servePage(c, h.client.GetUpcoming)
}

// Search ищет фильмы по строке запроса.
// @Summary		Поиск фильмов
// @Tags		Каталог
// @Param		query	query	string	true	"Строка поиска"
// @Param		page	query	int	false	"Номер страницы"
// @Success		200	{object}		map[string]interface{} "Страница результатов"
// @Failure		400	{object}		map[string]interface{} "Пустая строка поиска"
// @Router		/movies/search [GET]
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := h.client.Search(c.Request.Context(), query, page)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "Movie catalog request failed")
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Details возвращает карточку одного фильма.
// @Summary		Карточка фильма
// @Tags		Каталог
// @Param		id	path	int	true	"ID фильма"
// @Success		200	{object}		map[string]interface{} "Карточка фильма"
// @Failure		400	{object}		map[string]interface{} "Неверный ID"
// @Router		/movies/{id} [GET]
func (h *Handler) Details(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie id")
		return
	}

	details, err := h.client.GetMovieDetails(c.Request.Context(), movieID)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "Movie catalog request failed")
		return
	}
	response.Success(c, http.StatusOK, details)
}

func (h *Handler) servePage(c *gin.Context, fetch func(ctx context.Context, page int) (*MoviePage, error)) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := fetch(c.Request.Context(), page)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "Movie catalog request failed")
		return
	}
	response.Success(c, http.StatusOK, result)
}
