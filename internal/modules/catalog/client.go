package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"filmoteka/internal/domain"
)

// PlaceholderImage отдаётся вместо постера, когда путь к картинке пуст
const PlaceholderImage = "/images/placeholder.jpg"

// Client — stateless обёртка над HTTP-сервисом метаданных фильмов.
// Все методы принимают context и возвращают внутреннее представление.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
}

func NewClient(baseURL, imageBaseURL, apiKey string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		apiKey:       apiKey,
	}
}

// GetPopular возвращает страницу популярных фильмов
func (c *Client) GetPopular(ctx context.Context, page int) (*MoviePage, error) {
	return c.fetchPage(ctx, "/movie/popular", page, "")
}

// GetTopRated возвращает страницу фильмов с наивысшим рейтингом
func (c *Client) GetTopRated(ctx context.Context, page int) (*MoviePage, error) {
	return c.fetchPage(ctx, "/movie/top_rated", page, "")
}

// GetUpcoming возвращает страницу будущих премьер
func (c *Client) GetUpcoming(ctx context.Context, page int) (*MoviePage, error) {
	return c.fetchPage(ctx, "/movie/upcoming", page, "")
}

// Search ищет фильмы по строке запроса
func (c *Client) Search(ctx context.Context, query string, page int) (*MoviePage, error) {
	return c.fetchPage(ctx, "/search/movie", page, query)
}

// GetMovieDetails возвращает карточку одного фильма
func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*domain.MovieDetails, error) {
	var wire movieDetailsWire
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &wire); err != nil {
		return nil, err
	}
	details := wire.toDomain()
	return &details, nil
}

// ImageURL строит полный URL картинки каталога. Размер — w300, w500
// или original; пустой путь разрешается в локальную заглушку.
func (c *Client) ImageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return PlaceholderImage
	}
	return c.imageBaseURL + "/" + size + *path
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, page int, query string) (*MoviePage, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if query != "" {
		params.Set("query", query)
	}

	var wire pageWire
	if err := c.get(ctx, endpoint, params, &wire); err != nil {
		return nil, err
	}
	return wire.toDomain(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog: %s returned status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", endpoint, err)
	}
	return nil
}
