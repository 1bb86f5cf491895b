package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"filmoteka/internal/database"
	"filmoteka/internal/domain"
	"filmoteka/internal/middleware"
	"filmoteka/internal/modules/auth"
	"filmoteka/internal/modules/favorites"
	"filmoteka/internal/modules/notification"
	"filmoteka/internal/modules/realtime"
	"filmoteka/internal/modules/share"
	jwtsvc "filmoteka/internal/pkg/jwt"
	"filmoteka/internal/repository"
	"filmoteka/internal/session"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	// Use in-memory SQLite for testing
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	models := []interface{}{
		&domain.User{},
		&domain.Favorite{},
		&domain.SharedList{},
	}
	for _, model := range models {
		err := db.AutoMigrate(model)
		require.NoError(t, err, fmt.Sprintf("Failed to migrate %T", model))
	}

	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	sharedListRepo := repository.NewSharedListRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	accounts := auth.NewAccounts(userRepo)
	hub := realtime.NewHub()
	registry := session.NewRegistry(accounts, favoriteRepo, hub)

	shareService := share.NewService(sharedListRepo, "http://localhost:3000")

	authHandler := auth.NewHandler(registry, jwtService)
	favoritesHandler := favorites.NewHandler(registry, favoriteRepo)
	notificationHandler := notification.NewHandler(registry)
	shareHandler := share.NewHandler(shareService, registry)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	// Public routes
	authHandler.RegisterPublicRoutes(v1)
	shareHandler.RegisterPublicRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		favoritesHandler.RegisterRoutes(protected)
		notificationHandler.RegisterRoutes(protected)
		shareHandler.RegisterProtectedRoutes(protected)
	}

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyBytes []byte
	var err error

	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w, nil
}

func parseResponse(w *httptest.ResponseRecorder) (*TestResponse, error) {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	if err != nil {
		log.Printf("Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	}
	return &resp, err
}

func (s *E2ETestSuite) signUp(t *testing.T, email, password string) string {
	w, err := s.makeRequest("POST", "/api/v1/auth/signup", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())

	resp, err := parseResponse(w)
	require.NoError(t, err)
	require.True(t, resp.Success)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func sampleMovie(id int, title string) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"title":       title,
		"overview":    "test overview",
		"releaseDate": "2010-07-16",
		"voteAverage": 8.4,
		"voteCount":   34000,
		"genreIds":    []int{28, 878},
	}
}

func TestFlow_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.signUp(t, "client@test.com", "Password123!")

	t.Run("duplicate signup is rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/auth/signup", map[string]string{
			"email":    "client@test.com",
			"password": "Password123!",
		}, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp, _ := parseResponse(w)
		assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/auth/login", map[string]string{
			"email":    "client@test.com",
			"password": "Password123!",
		}, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		resp, _ := parseResponse(w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/auth/login", map[string]string{
			"email":    "client@test.com",
			"password": "wrong-password",
		}, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp, _ := parseResponse(w)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})

	t.Run("GET /users/me", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/users/me", nil, token)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		resp, _ := parseResponse(w)
		user, _ := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "client@test.com", user["email"])
	})

	t.Run("protected route without token", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/users/me", nil, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow_FavoritesLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.signUp(t, "films@test.com", "Password123!")

	t.Run("add favorites", func(t *testing.T) {
		for _, m := range []map[string]interface{}{
			sampleMovie(27205, "Inception"),
			sampleMovie(949, "Heat"),
		} {
			w, err := suite.makeRequest("POST", "/api/v1/favorites", m, token)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w, _ := suite.makeRequest("GET", "/api/v1/favorites", nil, token)
		resp, _ := parseResponse(w)
		favs, _ := resp.Data["favorites"].([]interface{})
		assert.Len(t, favs, 2)
	})

	t.Run("duplicate add keeps one row", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/favorites", sampleMovie(27205, "Inception"), token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		suite.db.Model(&domain.Favorite{}).Where("movie_id = ?", 27205).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("favorite status", func(t *testing.T) {
		w, _ := suite.makeRequest("GET", "/api/v1/favorites/27205/status", nil, token)
		resp, _ := parseResponse(w)
		assert.Equal(t, true, resp.Data["favorited"])

		w, _ = suite.makeRequest("GET", "/api/v1/favorites/99999/status", nil, token)
		resp, _ = parseResponse(w)
		assert.Equal(t, false, resp.Data["favorited"])
	})

	t.Run("mutations emit notifications", func(t *testing.T) {
		w, _ := suite.makeRequest("GET", "/api/v1/notifications", nil, token)
		resp, _ := parseResponse(w)
		items, _ := resp.Data["notifications"].([]interface{})
		require.NotEmpty(t, items)

		first, _ := items[0].(map[string]interface{})
		assert.Equal(t, `Added "Inception" to favorites`, first["message"])
		assert.Equal(t, "success", first["type"])
	})

	t.Run("remove favorite", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", "/api/v1/favorites/949", nil, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = suite.makeRequest("GET", "/api/v1/favorites", nil, token)
		resp, _ := parseResponse(w)
		favs, _ := resp.Data["favorites"].([]interface{})
		assert.Len(t, favs, 1)
	})
}

func TestFlow_ShareLink(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.signUp(t, "sharer@test.com", "Password123!")

	t.Run("share with empty favorites is rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/share", nil, token)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp, _ := parseResponse(w)
		assert.Equal(t, "EMPTY_FAVORITES", resp.Error.Code)
	})

	var shareToken string

	t.Run("create share link", func(t *testing.T) {
		for _, m := range []map[string]interface{}{
			sampleMovie(27205, "Inception"),
			sampleMovie(949, "Heat"),
		} {
			w, _ := suite.makeRequest("POST", "/api/v1/favorites", m, token)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w, err := suite.makeRequest("POST", "/api/v1/share", nil, token)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp, _ := parseResponse(w)
		shareToken, _ = resp.Data["shareToken"].(string)
		assert.Len(t, shareToken, 16)
		shareURL, _ := resp.Data["shareUrl"].(string)
		assert.Contains(t, shareURL, shareToken)
	})

	t.Run("public fetch of shared list", func(t *testing.T) {
		// без токена авторизации
		w, err := suite.makeRequest("GET", "/api/v1/shared/"+shareToken, nil, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		resp, _ := parseResponse(w)
		favs, _ := resp.Data["favorites"].([]interface{})
		assert.Len(t, favs, 2)
	})

	t.Run("snapshot is immutable after later removals", func(t *testing.T) {
		w, _ := suite.makeRequest("DELETE", "/api/v1/favorites/949", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = suite.makeRequest("GET", "/api/v1/shared/"+shareToken, nil, "")
		resp, _ := parseResponse(w)
		favs, _ := resp.Data["favorites"].([]interface{})
		assert.Len(t, favs, 2)
	})

	t.Run("unknown token is 404", func(t *testing.T) {
		w, _ := suite.makeRequest("GET", "/api/v1/shared/doesnotexist12345", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete own share link", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", "/api/v1/share/"+shareToken, nil, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = suite.makeRequest("GET", "/api/v1/shared/"+shareToken, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow_SessionRestoredAfterRestart(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.signUp(t, "restart@test.com", "Password123!")

	w, _ := suite.makeRequest("POST", "/api/v1/favorites", sampleMovie(27205, "Inception"), token)
	require.Equal(t, http.StatusOK, w.Code)

	// новый процесс: та же БД, пустой реестр сессий, живой токен
	userRepo := repository.NewUserRepository(suite.db)
	favoriteRepo := repository.NewFavoriteRepository(suite.db)
	registry := session.NewRegistry(auth.NewAccounts(userRepo), favoriteRepo, realtime.NewHub())

	freshRouter := gin.New()
	protected := freshRouter.Group("/api/v1")
	protected.Use(middleware.JWTAuth(suite.jwtService))
	favorites.NewHandler(registry, favoriteRepo).RegisterRoutes(protected)

	req := httptest.NewRequest("GET", "/api/v1/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	freshRouter.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp TestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	favs, _ := resp.Data["favorites"].([]interface{})
	assert.Len(t, favs, 1)

	// статус отвечает из хранилища и не требует прогретой сессии
	req = httptest.NewRequest("GET", "/api/v1/favorites/27205/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	freshRouter.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var status TestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status.Data["favorited"])
}
